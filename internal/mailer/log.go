package mailer

import (
	"context"
	"log/slog"
	"zylumine/entity"
	"zylumine/lib/sl"
)

// Log writes messages to the logger instead of sending them; used for local runs.
type Log struct {
	log *slog.Logger
}

func NewLog(log *slog.Logger) *Log {
	return &Log{log: log.With(sl.Module("mailer.log"))}
}

func (l *Log) Send(_ context.Context, msg *entity.MailMessage) error {
	l.log.With(
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.Int("html_size", len(msg.HTML)),
		slog.Int("text_size", len(msg.Text)),
	).Info("mail not sent: log transport")
	return nil
}
