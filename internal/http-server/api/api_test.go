package api

import (
	"context"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"zylumine/entity"
	"zylumine/impl/letter"
	"zylumine/internal/config"
	"zylumine/internal/session"
)

// fakeHandler answers every workflow with canned data; "token" is the only valid session.
type fakeHandler struct {
	registered []*entity.GuestRegistration
}

func (f *fakeHandler) AuthenticateByToken(_ context.Context, token string) (*entity.Identity, error) {
	if token == "token" {
		return &entity.Identity{Name: "Op", Email: "op@x.com"}, nil
	}
	return nil, session.ErrInvalidSession
}

func (f *fakeHandler) Login(context.Context, *entity.Credentials) (string, *entity.Identity, error) {
	return "", nil, entity.ErrInvalidCredentials
}

func (f *fakeHandler) OAuthLogin(context.Context, string, string) (string, *entity.Identity, error) {
	return "", nil, entity.ErrInvalidCredentials
}

func (f *fakeHandler) Logout(context.Context, *entity.Identity) error { return nil }

func (f *fakeHandler) RegisterAdmin(_ context.Context, reg *entity.AdminRegistration) (*entity.Admin, error) {
	return &entity.Admin{Name: reg.Name, Email: reg.Email}, nil
}

func (f *fakeHandler) GenerateCode(context.Context) (*entity.PurchaseCode, error) {
	return &entity.PurchaseCode{Code: "482913", Timestamp: time.Now()}, nil
}

func (f *fakeHandler) RegisterGuest(_ context.Context, reg *entity.GuestRegistration) (*entity.Guest, error) {
	f.registered = append(f.registered, reg)
	return &entity.Guest{Name: reg.Name, Email: reg.Email, Code: reg.Code}, nil
}

func (f *fakeHandler) VerifyCode(_ context.Context, req *entity.CodeVerification) (*entity.GuestIdentity, error) {
	if req.Code != "482913" {
		return nil, entity.ErrInvalidCode
	}
	return &entity.GuestIdentity{Name: "Ada", Email: req.Email}, nil
}

func (f *fakeHandler) Letter(ctx context.Context, req *entity.CodeVerification) (*letter.Letter, error) {
	id, err := f.VerifyCode(ctx, req)
	if err != nil {
		return nil, err
	}
	return letter.Compose(id), nil
}

func (f *fakeHandler) SubmitFeedback(context.Context, *entity.Feedback) error { return nil }

func (f *fakeHandler) SendMail(context.Context, *entity.MailRequest) error { return nil }

func newRouter(t *testing.T, h *fakeHandler, root string) http.Handler {
	t.Helper()
	conf := &config.Config{}
	conf.Web.BaseURL = "http://localhost:8080"
	conf.Web.Root = root
	return Router(conf, slog.New(slog.NewTextHandler(io.Discard, nil)), h, nil)
}

func do(router http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_GuestFlowIsPublic(t *testing.T) {
	router := newRouter(t, &fakeHandler{}, "")

	w := do(router, http.MethodPost, "/api/verify-code", `{"email":"ada@x.com","code":"482913"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Ada"`)

	w = do(router, http.MethodPost, "/api/verify-code", `{"email":"ada@x.com","code":"000000"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodPost, "/api/verify-code", `{"email":"ada@x.com","code":" 482913"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid code")

	w = do(router, http.MethodPost, "/api/letter", `{"email":"ada@x.com","code":"482913"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodPost, "/api/send-feedback", `{"name":"Ada","rating":5,"quality":"Good","recommend":true}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_AdminEndpointsNeedSession(t *testing.T) {
	h := &fakeHandler{}
	router := newRouter(t, h, "")
	body := `{"email":"ada@x.com","name":"Ada","code":"482913"}`

	w := do(router, http.MethodPost, "/api/send-mail", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, h.registered)

	w = do(router, http.MethodPost, "/api/send-mail", body, "forged")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(router, http.MethodPost, "/api/send-mail", body, "token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, h.registered, 1)

	w = do(router, http.MethodGet, "/api/code", "", "token")
	require.Equal(t, http.StatusOK, w.Code)
	var pc entity.PurchaseCode
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pc))
	assert.Equal(t, "482913", pc.Code)
}

func TestRouter_RejectsUnknownFields(t *testing.T) {
	router := newRouter(t, &fakeHandler{}, "")

	w := do(router, http.MethodPost, "/api/verify-code", `{"email":"ada@x.com","code":"482913","admin":true}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request")
}

func TestRouter_Pages(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>home</h1>"), 0600))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dashboard"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(root, "dashboard", "index.html"), []byte("<h1>console</h1>"), 0600))
	router := newRouter(t, &fakeHandler{}, root)

	w := do(router, http.MethodGet, "/dashboard", "", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?callbackUrl=%2Fdashboard", w.Header().Get("Location"))

	w = do(router, http.MethodGet, "/login", "", "token")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = do(router, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "home")
}

func TestRouter_NotFound(t *testing.T) {
	router := newRouter(t, &fakeHandler{}, "")
	w := do(router, http.MethodGet, "/api/nope", "", "token")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
