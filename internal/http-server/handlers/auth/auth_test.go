package auth

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"zylumine/entity"
	"zylumine/internal/oauth"
	"zylumine/internal/session"
	"zylumine/lib/api/cont"
)

type mockCore struct {
	LoginFunc      func(ctx context.Context, cred *entity.Credentials) (string, *entity.Identity, error)
	OAuthLoginFunc func(ctx context.Context, name, email string) (string, *entity.Identity, error)
	revoked        []*entity.Identity
}

func (m *mockCore) Login(ctx context.Context, cred *entity.Credentials) (string, *entity.Identity, error) {
	return m.LoginFunc(ctx, cred)
}

func (m *mockCore) OAuthLogin(ctx context.Context, name, email string) (string, *entity.Identity, error) {
	return m.OAuthLoginFunc(ctx, name, email)
}

func (m *mockCore) Logout(_ context.Context, id *entity.Identity) error {
	m.revoked = append(m.revoked, id)
	return nil
}

type mockProvider struct {
	info *oauth.UserInfo
	err  error
}

func (m *mockProvider) Begin(w http.ResponseWriter, _ bool) string {
	return "https://accounts.google.com/o/oauth2/auth?state=s"
}

func (m *mockProvider) Complete(context.Context, http.ResponseWriter, *http.Request) (*oauth.UserInfo, error) {
	return m.info, m.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func identity() *entity.Identity {
	return &entity.Identity{SessionID: "sid", Name: "Op", Email: "op@x.com", Provider: entity.ProviderCredentials, ExpiresAt: time.Now().Add(time.Hour)}
}

func TestLogin(t *testing.T) {
	core := &mockCore{LoginFunc: func(_ context.Context, cred *entity.Credentials) (string, *entity.Identity, error) {
		if cred.Email == "op@x.com" && cred.Password == "secret1" {
			return "token", identity(), nil
		}
		return "", nil, entity.ErrInvalidCredentials
	}}
	h := Login(discard(), core, false)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"OP@x.com","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.Equal(t, "token", cookies[0].Value)
	assert.NotContains(t, w.Body.String(), "sid")
}

func TestLogin_CollapsesFailures(t *testing.T) {
	core := &mockCore{LoginFunc: func(context.Context, *entity.Credentials) (string, *entity.Identity, error) {
		return "", nil, entity.ErrInvalidCredentials
	}}
	h := Login(discard(), core, false)

	for _, body := range []string{
		`{"email":"op@x.com","password":"wrong12"}`,
		`{"email":"nobody@x.com","password":"secret1"}`,
		`{"email":"op@x.com","password":"123"}`,
		`{"email":"not-an-email","password":"secret1"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h(w, req)

		var out map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, http.StatusUnauthorized, w.Code, body)
		assert.Equal(t, "invalid credentials", out["error"], body)
		assert.Empty(t, w.Result().Cookies())
	}
}

func TestLogin_StoreFailure(t *testing.T) {
	core := &mockCore{LoginFunc: func(context.Context, *entity.Credentials) (string, *entity.Identity, error) {
		return "", nil, errors.New("store down")
	}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"op@x.com","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	Login(discard(), core, false)(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLogoutAndSession(t *testing.T) {
	core := &mockCore{}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	w := httptest.NewRecorder()
	Session(discard())(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	id := identity()
	req = req.WithContext(cont.PutIdentity(req.Context(), id))
	w = httptest.NewRecorder()
	Session(discard())(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"op@x.com"`)

	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req = req.WithContext(cont.PutIdentity(req.Context(), id))
	w = httptest.NewRecorder()
	Logout(discard(), core, false)(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, core.revoked, 1)
	assert.Equal(t, "sid", core.revoked[0].SessionID)
	assert.Equal(t, -1, w.Result().Cookies()[0].MaxAge)
}

func TestGoogle(t *testing.T) {
	w := httptest.NewRecorder()
	GoogleSignIn(discard(), nil, false)(w, httptest.NewRequest(http.MethodGet, "/api/auth/signin/google", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	provider := &mockProvider{info: &oauth.UserInfo{Name: "Op", Email: "op@x.com"}}
	w = httptest.NewRecorder()
	GoogleSignIn(discard(), provider, false)(w, httptest.NewRequest(http.MethodGet, "/api/auth/signin/google", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "accounts.google.com")

	core := &mockCore{OAuthLoginFunc: func(_ context.Context, name, email string) (string, *entity.Identity, error) {
		if email != "op@x.com" {
			return "", nil, entity.ErrInvalidCredentials
		}
		return "token", identity(), nil
	}}
	w = httptest.NewRecorder()
	GoogleCallback(discard(), core, provider, false)(w, httptest.NewRequest(http.MethodGet, "/api/auth/callback/google?code=c&state=s", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	require.Len(t, w.Result().Cookies(), 1)

	provider.info = &oauth.UserInfo{Name: "Eve", Email: "eve@x.com"}
	w = httptest.NewRecorder()
	GoogleCallback(discard(), core, provider, false)(w, httptest.NewRequest(http.MethodGet, "/api/auth/callback/google?code=c&state=s", nil))
	assert.Equal(t, "/login?error=AccessDenied", w.Header().Get("Location"))
	assert.Empty(t, w.Result().Cookies())
}
