package entity

import (
	"net/http"
	"strings"
	"zylumine/lib/validate"
)

// MailMessage is one outgoing email. Either body may be empty, not both.
type MailMessage struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// MailRequest is the body of the generic send-mail endpoint; Message is sent as HTML.
type MailRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (m *MailRequest) Bind(_ *http.Request) error {
	m.To = strings.TrimSpace(m.To)
	return validate.Struct(m)
}

// NormalizeEmail is applied to every email before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
