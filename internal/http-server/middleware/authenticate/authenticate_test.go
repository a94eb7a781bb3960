package authenticate

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"zylumine/entity"
	"zylumine/internal/session"
	"zylumine/lib/api/cont"
)

type authFunc func(ctx context.Context, token string) (*entity.Identity, error)

func (f authFunc) AuthenticateByToken(ctx context.Context, token string) (*entity.Identity, error) {
	return f(ctx, token)
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	auth := authFunc(func(_ context.Context, token string) (*entity.Identity, error) {
		if token == "good" {
			return &entity.Identity{Name: "Op", Email: "op@x.com"}, nil
		}
		return nil, session.ErrInvalidSession
	})

	var seen *entity.Identity
	h := New(log, auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = cont.GetIdentity(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	tests := []struct {
		name   string
		cookie string
		bearer string
		want   string
	}{
		{"anonymous", "", "", ""},
		{"cookie", "good", "", "op@x.com"},
		{"bearer", "", "good", "op@x.com"},
		{"invalid", "bad", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tt.cookie})
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			assert.Equal(t, http.StatusTeapot, w.Code)
			if tt.want == "" {
				assert.Nil(t, seen)
			} else {
				if assert.NotNil(t, seen) {
					assert.Equal(t, tt.want, seen.Email)
				}
			}
		})
	}
	assert.Contains(t, buf.String(), "incoming request")
	assert.Contains(t, buf.String(), "status=418")
}
