package logger

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"testing"
)

type recordingSender struct {
	messages []string
}

func (s *recordingSender) Send(_ context.Context, text string) error {
	s.messages = append(s.messages, text)
	return nil
}

func TestTelegramHandler(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	sender := &recordingSender{}
	log := slog.New(NewTelegramHandler(base, sender, slog.LevelError))

	log.With(slog.String("mod", "core")).Info("registered")
	log.With(slog.String("mod", "core")).Error("mail failed", slog.String("error", "timeout"))

	assert.Contains(t, buf.String(), "registered")
	assert.Contains(t, buf.String(), "mail failed")
	require.Len(t, sender.messages, 1)
	assert.Equal(t, "ERROR mail failed\nmod: core\nerror: timeout", sender.messages[0])
}

func TestTelegramHandler_Group(t *testing.T) {
	var buf bytes.Buffer
	sender := &recordingSender{}
	log := slog.New(NewTelegramHandler(slog.NewTextHandler(&buf, nil), sender, slog.LevelWarn))

	log.WithGroup("http").Warn("slow request")

	require.Len(t, sender.messages, 1)
	assert.Equal(t, "WARN http.slow request", sender.messages[0])
}
