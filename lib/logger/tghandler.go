package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

// Sender delivers a plain text message to the operator chat.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// TelegramHandler is a slog.Handler that also forwards records at or above
// minLevel to the operator chat
type TelegramHandler struct {
	handler  slog.Handler
	sender   Sender
	minLevel slog.Level
	mu       *sync.Mutex
	attrs    []slog.Attr
	group    string
}

func NewTelegramHandler(handler slog.Handler, sender Sender, minLevel slog.Level) *TelegramHandler {
	return &TelegramHandler{
		handler:  handler,
		sender:   sender,
		minLevel: minLevel,
		mu:       &sync.Mutex{},
		attrs:    make([]slog.Attr, 0),
	}
}

// Enabled defers to the wrapped handler; the chat threshold only filters forwarding.
func (h *TelegramHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *TelegramHandler) Handle(ctx context.Context, record slog.Record) error {
	if err := h.handler.Handle(ctx, record); err != nil {
		return err
	}
	if record.Level < h.minLevel || h.sender == nil {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	var b strings.Builder
	if h.group != "" {
		fmt.Fprintf(&b, "%s %s.%s", record.Level.String(), h.group, record.Message)
	} else {
		fmt.Fprintf(&b, "%s %s", record.Level.String(), record.Message)
	}
	for _, attr := range h.attrs {
		fmt.Fprintf(&b, "\n%s: %v", attr.Key, attr.Value)
	}
	record.Attrs(func(attr slog.Attr) bool {
		fmt.Fprintf(&b, "\n%s: %v", attr.Key, attr.Value)
		return true
	})

	// delivery failures must not turn into log failures
	_ = h.sender.Send(context.WithoutCancel(ctx), b.String())
	return nil
}

func (h *TelegramHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)

	return &TelegramHandler{
		handler:  h.handler.WithAttrs(attrs),
		sender:   h.sender,
		minLevel: h.minLevel,
		mu:       h.mu,
		attrs:    newAttrs,
		group:    h.group,
	}
}

func (h *TelegramHandler) WithGroup(name string) slog.Handler {
	group := name
	if h.group != "" {
		group = h.group + "." + name
	}

	return &TelegramHandler{
		handler:  h.handler.WithGroup(name),
		sender:   h.sender,
		minLevel: h.minLevel,
		mu:       h.mu,
		attrs:    h.attrs,
		group:    group,
	}
}
