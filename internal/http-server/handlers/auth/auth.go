package auth

import (
	"context"
	"errors"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"zylumine/entity"
	"zylumine/internal/oauth"
	"zylumine/internal/session"
	"zylumine/lib/api/cont"
	"zylumine/lib/api/response"
	"zylumine/lib/sl"
)

const failedSignIn = "/login?error=AccessDenied"

type Core interface {
	Login(ctx context.Context, cred *entity.Credentials) (string, *entity.Identity, error)
	OAuthLogin(ctx context.Context, name, email string) (string, *entity.Identity, error)
	Logout(ctx context.Context, id *entity.Identity) error
}

// Provider is the OAuth identity provider.
type Provider interface {
	Begin(w http.ResponseWriter, secure bool) string
	Complete(ctx context.Context, w http.ResponseWriter, r *http.Request) (*oauth.UserInfo, error)
}

// Login opens a session for a valid credential pair. Malformed input, unknown
// email and wrong password are all answered with the same 401.
func Login(log *slog.Logger, handler Core, secure bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.auth")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var cred entity.Credentials
		if err := render.Bind(r, &cred); err != nil {
			logger.Warn("bind request", sl.Err(err))
			invalidCredentials(w, r)
			return
		}
		logger = logger.With(slog.String("email", cred.Email))

		token, id, err := handler.Login(r.Context(), &cred)
		if err != nil {
			if errors.Is(err, entity.ErrInvalidCredentials) {
				logger.Warn("invalid credentials")
				invalidCredentials(w, r)
				return
			}
			logger.Error("login", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to sign in"))
			return
		}
		logger.Info("signed in")

		session.SetCookie(w, token, id.ExpiresAt, secure)
		render.JSON(w, r, response.Ok("Signed in", id))
	}
}

func Logout(log *slog.Logger, handler Core, secure bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.auth")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if id := cont.GetIdentity(r.Context()); id != nil {
			if err := handler.Logout(r.Context(), id); err != nil {
				logger.Error("revoke session", sl.Err(err))
			}
			logger.With(slog.String("email", id.Email)).Info("signed out")
		}

		session.ClearCookie(w, secure)
		render.JSON(w, r, response.Ok("Signed out", nil))
	}
}

// Session returns the identity of the current session.
func Session(_ *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := cont.GetIdentity(r.Context())
		if id == nil {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("Not authenticated"))
			return
		}
		render.JSON(w, r, response.Ok("", id))
	}
}

func GoogleSignIn(log *slog.Logger, provider Provider, secure bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if provider == nil {
			log.With(sl.Module("http.handlers.auth")).Warn("oauth provider not configured")
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("OAuth provider not configured"))
			return
		}
		http.Redirect(w, r, provider.Begin(w, secure), http.StatusFound)
	}
}

// GoogleCallback finishes the OAuth flow and sends the browser home with a session.
func GoogleCallback(log *slog.Logger, handler Core, provider Provider, secure bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.auth")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if provider == nil {
			http.Redirect(w, r, failedSignIn, http.StatusFound)
			return
		}

		info, err := provider.Complete(r.Context(), w, r)
		if err != nil {
			logger.Warn("oauth callback", sl.Err(err))
			http.Redirect(w, r, failedSignIn, http.StatusFound)
			return
		}
		logger = logger.With(slog.String("email", info.Email))

		token, id, err := handler.OAuthLogin(r.Context(), info.Name, info.Email)
		if err != nil {
			logger.Warn("oauth login", sl.Err(err))
			http.Redirect(w, r, failedSignIn, http.StatusFound)
			return
		}
		logger.Info("signed in with google")

		session.SetCookie(w, token, id.ExpiresAt, secure)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

func invalidCredentials(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.Error(entity.ErrInvalidCredentials.Error()))
}
