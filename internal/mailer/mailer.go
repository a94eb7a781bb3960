// Package mailer delivers templated email through SMTP, MailerSend or the log.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"zylumine/entity"
	"zylumine/internal/config"
)

const (
	ProviderSMTP       = "smtp"
	ProviderMailerSend = "mailersend"
	ProviderLog        = "log"
)

// Mailer sends one message; implementations do not retry.
type Mailer interface {
	Send(ctx context.Context, msg *entity.MailMessage) error
}

// New picks the transport named by conf.Provider.
func New(conf config.MailConfig, log *slog.Logger) (Mailer, error) {
	switch conf.Provider {
	case ProviderSMTP, "":
		return NewSMTP(conf.Host, conf.Port, conf.User, conf.AppPassword, conf.FromName), nil
	case ProviderMailerSend:
		ms, err := NewMailerSend(conf.MailerSendAPIKey, conf.FromName, conf.User)
		if err != nil {
			return nil, err
		}
		return ms, nil
	case ProviderLog:
		return NewLog(log), nil
	default:
		return nil, fmt.Errorf("unknown mail provider: %s", conf.Provider)
	}
}
