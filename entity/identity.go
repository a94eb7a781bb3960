package entity

import "time"

const (
	ProviderCredentials = "credentials"
	ProviderGoogle      = "google"
)

// Identity is the authenticated operator carried by a session.
type Identity struct {
	SessionID string    `json:"-"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Provider  string    `json:"provider"`
	ExpiresAt time.Time `json:"expiresAt"`
}
