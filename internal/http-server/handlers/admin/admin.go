package admin

import (
	"context"
	"errors"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"zylumine/entity"
	"zylumine/lib/api/response"
	"zylumine/lib/sl"
)

type Core interface {
	RegisterAdmin(ctx context.Context, reg *entity.AdminRegistration) (*entity.Admin, error)
}

// Register creates an admin account and returns the stored record without its hash.
func Register(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.admin")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var reg entity.AdminRegistration
		if err := render.Bind(r, &reg); err != nil {
			logger.Warn("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Invalid(err))
			return
		}
		logger = logger.With(slog.String("email", reg.Email))

		admin, err := handler.RegisterAdmin(r.Context(), &reg)
		if err != nil {
			if errors.Is(err, entity.ErrDisabled) {
				logger.Warn("registration disabled")
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("Registration disabled"))
				return
			}
			logger.Error("register admin", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to register admin"))
			return
		}
		logger.Info("admin registered")

		render.JSON(w, r, admin)
	}
}
