package mailer

import (
	"bytes"
	"context"
	"fmt"
	"github.com/google/uuid"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"zylumine/entity"
)

// SMTP sends through an authenticated SMTP relay (Gmail with an app password by default).
type SMTP struct {
	host     string
	port     int
	user     string
	password string
	fromName string
	// send is replaced in tests
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTP(host string, port int, user, password, fromName string) *SMTP {
	return &SMTP{
		host:     strings.TrimSpace(host),
		port:     port,
		user:     strings.TrimSpace(user),
		password: strings.TrimSpace(password),
		fromName: fromName,
		send:     smtp.SendMail,
	}
}

func (s *SMTP) Send(ctx context.Context, msg *entity.MailMessage) error {
	to := strings.TrimSpace(msg.To)
	if to == "" {
		return fmt.Errorf("empty recipient email")
	}
	if s.user == "" {
		return fmt.Errorf("smtp: mail account not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.password != "" {
		auth = smtp.PlainAuth("", s.user, s.password, s.host)
	}
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	// smtp.SendMail upgrades with STARTTLS when the server offers it
	if err := s.send(addr, auth, s.user, []string{to}, s.compose(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func (s *SMTP) compose(msg *entity.MailMessage) []byte {
	var buf bytes.Buffer
	from := mail.Address{Name: s.fromName, Address: s.user}
	to := mail.Address{Name: msg.ToName, Address: strings.TrimSpace(msg.To)}
	boundary := "zyl-" + uuid.NewString()

	fmt.Fprintf(&buf, "From: %s\r\n", from.String())
	fmt.Fprintf(&buf, "To: %s\r\n", to.String())
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	if msg.Text != "" {
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
		fmt.Fprintf(&buf, "%s\r\n\r\n", msg.Text)
	}
	if msg.HTML != "" {
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Type: text/html; charset=utf-8\r\n\r\n")
		fmt.Fprintf(&buf, "%s\r\n\r\n", msg.HTML)
	}
	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes()
}
