package feedback

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
	SubmitFeedback(ctx context.Context, f *entity.Feedback) error
}

func Submit(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.feedback")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var f entity.Feedback
		if err := render.Bind(r, &f); err != nil {
			logger.Warn("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Invalid(err))
			return
		}
		logger = logger.With(
			slog.String("name", f.Name),
			slog.Int("rating", f.Rating),
		)

		if err := handler.SubmitFeedback(r.Context(), &f); err != nil {
			logger.Error("submit feedback", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			if errors.Is(err, entity.ErrMailFailed) {
				render.JSON(w, r, response.ErrorDetails("Failed to send feedback", err.Error()))
			} else {
				render.JSON(w, r, response.Error("An unexpected error occurred"))
			}
			return
		}
		logger.Debug("feedback submitted")

		render.JSON(w, r, response.Ok("Feedback sent successfully", nil))
	}
}
