package code

import (
	"context"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"log/slog"
	"net/http"
	"zylumine/entity"
	"zylumine/lib/api/response"
	"zylumine/lib/sl"
)

type Core interface {
	GenerateCode(ctx context.Context) (*entity.PurchaseCode, error)
}

// Generate returns a fresh purchase code for the admin console; nothing is stored.
func Generate(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.code")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		pc, err := handler.GenerateCode(r.Context())
		if err != nil {
			logger.Error("generate code", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to generate code"))
			return
		}

		render.JSON(w, r, pc)
	}
}
