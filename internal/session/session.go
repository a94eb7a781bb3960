// Package session issues and checks the signed session tokens of admin users.
package session

import (
	"context"
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"net/http"
	"strings"
	"time"
	"zylumine/entity"
)

const (
	CookieName = "session"
	issuer     = "zylumine"
)

var ErrInvalidSession = errors.New("invalid session")

// Registry remembers live session ids so a session can be revoked before it expires.
type Registry interface {
	Add(ctx context.Context, id, email string, ttl time.Duration) error
	Exists(ctx context.Context, id string) (bool, error)
	Remove(ctx context.Context, id string) error
}

type Claims struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret   []byte
	ttl      time.Duration
	registry Registry
}

// NewManager builds a manager; registry may be nil, in which case sessions are
// purely token based and logout only clears the cookie.
func NewManager(secret string, ttl time.Duration, registry Registry) *Manager {
	return &Manager{
		secret:   []byte(secret),
		ttl:      ttl,
		registry: registry,
	}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a session for the identity and returns its signed token.
func (m *Manager) Issue(ctx context.Context, name, email, provider string) (string, *entity.Identity, error) {
	now := time.Now()
	id := uuid.NewString()
	claims := Claims{
		Name:     name,
		Email:    email,
		Provider: provider,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Issuer:    issuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}
	if m.registry != nil {
		if err = m.registry.Add(ctx, id, email, m.ttl); err != nil {
			return "", nil, fmt.Errorf("register session: %w", err)
		}
	}
	return token, identity(&claims), nil
}

// Parse validates the token and returns the identity it carries.
func (m *Manager) Parse(ctx context.Context, token string) (*entity.Identity, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return nil, ErrInvalidSession
	}
	if m.registry != nil {
		ok, err := m.registry.Exists(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("session lookup: %w", err)
		}
		if !ok {
			return nil, ErrInvalidSession
		}
	}
	return identity(claims), nil
}

// Revoke drops the session from the registry.
func (m *Manager) Revoke(ctx context.Context, id *entity.Identity) error {
	if m.registry == nil || id == nil || id.SessionID == "" {
		return nil
	}
	return m.registry.Remove(ctx, id.SessionID)
}

func identity(c *Claims) *entity.Identity {
	id := &entity.Identity{
		SessionID: c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Provider:  c.Provider,
	}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Time
	}
	return id
}

// TokenFromRequest reads a bearer token first, then the session cookie.
func TokenFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

func SetCookie(w http.ResponseWriter, token string, expires time.Time, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
