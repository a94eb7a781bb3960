package authenticate

import (
	"context"
	"errors"
	"github.com/go-chi/chi/v5/middleware"
	"log/slog"
	"net/http"
	"time"
	"zylumine/entity"
	"zylumine/internal/session"
	"zylumine/lib/api/cont"
	"zylumine/lib/sl"
)

type Authenticate interface {
	AuthenticateByToken(ctx context.Context, token string) (*entity.Identity, error)
}

// New logs every request and attaches the session identity when the request
// carries a valid token. Requests without one pass on anonymously; the gate
// decides what they may reach.
func New(log *slog.Logger, auth Authenticate) func(next http.Handler) http.Handler {
	mod := sl.Module("middleware.authenticate")
	log.With(mod).Info("authenticate middleware initialized")

	return func(next http.Handler) http.Handler {

		fn := func(w http.ResponseWriter, r *http.Request) {
			id := middleware.GetReqID(r.Context())
			remote := r.RemoteAddr
			// if the request is coming from a proxy, use the X-Forwarded-For header
			xRemote := r.Header.Get("X-Forwarded-For")
			if xRemote != "" {
				remote = xRemote
			}
			logger := log.With(
				mod,
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", remote),
				slog.String("request_id", id),
			)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			t1 := time.Now()
			defer func() {
				logger.With(
					slog.Int("status", ww.Status()),
					slog.Int("size", ww.BytesWritten()),
					slog.Float64("duration", time.Since(t1).Seconds()),
				).Info("incoming request")
			}()

			ww.Header().Set("X-Request-ID", id)

			token := session.TokenFromRequest(r)
			if token == "" || auth == nil {
				next.ServeHTTP(ww, r)
				return
			}
			logger = logger.With(sl.Secret("token", token))

			identity, err := auth.AuthenticateByToken(r.Context(), token)
			if err != nil {
				if !errors.Is(err, session.ErrInvalidSession) {
					logger = logger.With(sl.Err(err))
				}
				next.ServeHTTP(ww, r)
				return
			}
			logger = logger.With(
				slog.String("user", identity.Email),
			)
			ctx := cont.PutIdentity(r.Context(), identity)

			next.ServeHTTP(ww, r.WithContext(ctx))
		}

		return http.HandlerFunc(fn)
	}
}
