package entity

import (
	"net/http"
	"strings"
	"time"
	"zylumine/lib/validate"
)

// Guest is a registered buyer holding the purchase code that was mailed to them.
// The record is written once at registration and only read afterwards.
type Guest struct {
	ID        string    `json:"_id,omitempty" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Code      string    `json:"code" bson:"code"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// GuestRegistration is the body of the registration variant of send-mail.
// Subject and Message replace the purchase-code template when present.
type GuestRegistration struct {
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name" validate:"required"`
	Code    string `json:"code" validate:"required"`
	Subject string `json:"subject,omitempty" validate:"omitempty"`
	Message string `json:"message,omitempty" validate:"omitempty"`
}

func (g *GuestRegistration) Bind(_ *http.Request) error {
	g.Email = NormalizeEmail(g.Email)
	g.Name = strings.TrimSpace(g.Name)
	return validate.Struct(g)
}

// CodeVerification is the body of verify-code and letter requests.
type CodeVerification struct {
	Code  string `json:"code" validate:"required"`
	Email string `json:"email" validate:"required"`
}

func (c *CodeVerification) Bind(_ *http.Request) error {
	c.Email = NormalizeEmail(c.Email)
	return validate.Struct(c)
}

// GuestIdentity is what a successful verification unlocks: enough to personalize
// the letter and show the delivery date.
type GuestIdentity struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (g *Guest) Identity() *GuestIdentity {
	return &GuestIdentity{
		Name:      g.Name,
		Email:     g.Email,
		CreatedAt: g.CreatedAt,
	}
}
