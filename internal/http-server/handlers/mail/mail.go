package mail

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
	SendMail(ctx context.Context, req *entity.MailRequest) error
}

// Send delivers a message composed in the admin console.
func Send(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.mail")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req entity.MailRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Warn("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Invalid(err))
			return
		}
		logger = logger.With(
			slog.String("to", req.To),
			slog.String("subject", req.Subject),
		)

		if err := handler.SendMail(r.Context(), &req); err != nil {
			logger.Error("send mail", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to send email"))
			return
		}
		logger.Info("mail sent")

		render.JSON(w, r, response.Ok("Email sent!", nil))
	}
}
