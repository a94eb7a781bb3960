// Package events publishes portal events to NATS for downstream consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/nats-io/nats.go"
	"log/slog"
	"time"
	"zylumine/lib/sl"
)

const (
	GuestRegistered   = "guest.registered"
	FeedbackSubmitted = "feedback.submitted"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type GuestRegisteredEvent struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	MailSent   bool      `json:"mail_sent"`
	Registered time.Time `json:"registered_at"`
}

type FeedbackSubmittedEvent struct {
	Name        string    `json:"name"`
	Rating      int       `json:"rating"`
	Quality     string    `json:"quality"`
	Recommend   bool      `json:"recommend"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type NATS struct {
	conn    *nats.Conn
	log     *slog.Logger
	publish func(subject string, payload []byte) error
}

func NewNATS(url string, log *slog.Logger) (*NATS, error) {
	conn, err := nats.Connect(url,
		nats.Name("zylumine"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	return &NATS{
		conn:    conn,
		log:     log.With(sl.Module("events.nats")),
		publish: conn.Publish,
	}, nil
}

func (n *NATS) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	n.log.DebugContext(ctx, "publishing event", slog.String("subject", subject), slog.Int("size", len(payload)))
	return n.publish(subject, payload)
}

// Close flushes pending messages before closing the connection.
func (n *NATS) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Drain()
}

// Nop drops every event; used when no NATS url is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, interface{}) error { return nil }

func (Nop) Close() error { return nil }
