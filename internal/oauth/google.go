// Package oauth signs admins in through their Google account.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"net/http"
	"strings"
	"time"
	"zylumine/entity"
)

const (
	StateCookie  = "oauth_state"
	CallbackPath = "/api/auth/callback/google"
	userInfoURL  = "https://www.googleapis.com/oauth2/v3/userinfo"
)

var ErrInvalidState = errors.New("invalid oauth state")

// UserInfo is the subset of the Google profile the portal uses.
type UserInfo struct {
	Subject       string `json:"sub"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

type Google struct {
	config      *oauth2.Config
	userInfoURL string
}

func NewGoogle(clientID, clientSecret, baseURL string) *Google {
	return &Google{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  strings.TrimSuffix(baseURL, "/") + CallbackPath,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		userInfoURL: userInfoURL,
	}
}

// Begin stores a fresh state in a short-lived cookie and returns the consent page URL.
func (g *Google) Begin(w http.ResponseWriter, secure bool) string {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     StateCookie,
		Value:    state,
		Path:     "/api/auth",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Complete checks the returned state against the cookie, exchanges the code and
// reads the profile of the signed-in account.
func (g *Google) Complete(ctx context.Context, w http.ResponseWriter, r *http.Request) (*UserInfo, error) {
	c, err := r.Cookie(StateCookie)
	http.SetCookie(w, &http.Cookie{Name: StateCookie, Path: "/api/auth", MaxAge: -1})
	if err != nil || c.Value == "" || c.Value != r.URL.Query().Get("state") {
		return nil, ErrInvalidState
	}
	if e := r.URL.Query().Get("error"); e != "" {
		return nil, fmt.Errorf("provider error: %s", e)
	}

	token, err := g.config.Exchange(ctx, r.URL.Query().Get("code"))
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	resp, err := g.config.Client(ctx, token).Get(g.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo status: %s", resp.Status)
	}

	var info UserInfo
	if err = json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	if info.Email == "" || !info.EmailVerified {
		return nil, fmt.Errorf("account email not verified")
	}
	info.Email = entity.NormalizeEmail(info.Email)
	return &info, nil
}
