package guest

import (
	"context"
	"errors"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"zylumine/entity"
	"zylumine/impl/letter"
	"zylumine/lib/api/response"
	"zylumine/lib/sl"
)

type Core interface {
	RegisterGuest(ctx context.Context, reg *entity.GuestRegistration) (*entity.Guest, error)
	VerifyCode(ctx context.Context, req *entity.CodeVerification) (*entity.GuestIdentity, error)
	Letter(ctx context.Context, req *entity.CodeVerification) (*letter.Letter, error)
}

// Register stores a guest and mails the purchase code.
func Register(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.guest")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var reg entity.GuestRegistration
		if err := render.Bind(r, &reg); err != nil {
			logger.Warn("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Invalid(err))
			return
		}
		logger = logger.With(
			slog.String("email", reg.Email),
			sl.Code(reg.Code),
		)

		guest, err := handler.RegisterGuest(r.Context(), &reg)
		if err != nil {
			logger.Error("register guest", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			if errors.Is(err, entity.ErrMailFailed) {
				render.JSON(w, r, response.Error("Failed to send email"))
			} else {
				render.JSON(w, r, response.Error("Failed to register guest"))
			}
			return
		}
		logger.Info("guest registered")

		render.JSON(w, r, response.Ok("Email sent!", guest))
	}
}

// Verify checks an email and code pair and returns the guest it belongs to.
func Verify(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.guest")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.CodeVerification
		if err := render.Bind(r, &req); err != nil {
			logger.Warn("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Invalid(err))
			return
		}
		logger = logger.With(slog.String("email", req.Email))

		id, err := handler.VerifyCode(r.Context(), &req)
		if err != nil {
			verifyFailed(w, r, logger, err, "Failed to verify code")
			return
		}
		logger.Debug("code verified")

		render.JSON(w, r, id)
	}
}

// Letter returns the personalized letter and care guide for a valid pair.
func Letter(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.guest")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.CodeVerification
		if err := render.Bind(r, &req); err != nil {
			logger.Warn("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Invalid(err))
			return
		}
		logger = logger.With(slog.String("email", req.Email))

		l, err := handler.Letter(r.Context(), &req)
		if err != nil {
			verifyFailed(w, r, logger, err, "Failed to load letter")
			return
		}

		render.JSON(w, r, l)
	}
}

func verifyFailed(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, message string) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		logger.Debug("guest not found")
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Guest not found"))
	case errors.Is(err, entity.ErrInvalidCode):
		logger.Debug("invalid code")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid code"))
	default:
		logger.Error("verify code", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error(message))
	}
}
