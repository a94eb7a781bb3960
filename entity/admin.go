package entity

import (
	"net/http"
	"strings"
	"time"
	"zylumine/lib/validate"
)

// Admin is an operator account. Password holds the bcrypt hash and is never rendered.
type Admin struct {
	ID        string    `json:"_id,omitempty" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

type AdminRegistration struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (a *AdminRegistration) Bind(_ *http.Request) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Email = NormalizeEmail(a.Email)
	return validate.Struct(a)
}

// Credentials is the credential pair submitted to the login endpoint.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (c *Credentials) Bind(_ *http.Request) error {
	c.Email = NormalizeEmail(c.Email)
	return validate.Struct(c)
}
