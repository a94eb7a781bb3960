package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"log/slog"
	"net"
	"net/http"
	"time"
	"zylumine/internal/config"
	"zylumine/internal/http-server/handlers/admin"
	"zylumine/internal/http-server/handlers/auth"
	"zylumine/internal/http-server/handlers/code"
	errs "zylumine/internal/http-server/handlers/errors"
	"zylumine/internal/http-server/handlers/feedback"
	"zylumine/internal/http-server/handlers/guest"
	"zylumine/internal/http-server/handlers/mail"
	"zylumine/internal/http-server/middleware/authenticate"
	"zylumine/internal/http-server/middleware/gate"
	"zylumine/internal/http-server/middleware/timeout"
	"zylumine/lib/sl"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	auth.Core
	admin.Core
	code.Core
	guest.Core
	feedback.Core
	mail.Core
}

func init() {
	render.Decode = decodeStrict
}

// decodeStrict rejects bodies carrying fields the target schema does not declare.
func decodeStrict(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// New builds the server; provider may be nil when OAuth is not configured.
func New(conf *config.Config, log *slog.Logger, handler Handler, provider auth.Provider) *Server {
	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:      Router(conf, log, handler, provider),
		ErrorLog:     httpLog,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return &server
}

func Router(conf *config.Config, log *slog.Logger, handler Handler, provider auth.Provider) http.Handler {
	secure := conf.Auth.CookieSecure

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(conf),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(timeout.Timeout(5 * time.Second))
	router.Use(authenticate.New(log, handler))
	router.Use(gate.New(log))

	router.NotFound(errs.NotFound(log))
	router.MethodNotAllowed(errs.NotAllowed(log))

	router.Route("/api", func(rootApi chi.Router) {
		rootApi.Use(render.SetContentType(render.ContentTypeJSON))

		rootApi.Route("/auth", func(a chi.Router) {
			a.Post("/register", admin.Register(log, handler))
			a.Post("/login", auth.Login(log, handler, secure))
			a.Post("/logout", auth.Logout(log, handler, secure))
			a.Get("/session", auth.Session(log))
			a.Get("/signin/google", auth.GoogleSignIn(log, provider, secure))
			a.Get("/callback/google", auth.GoogleCallback(log, handler, provider, secure))
		})
		rootApi.Get("/code", code.Generate(log, handler))
		rootApi.Post("/send-mail", guest.Register(log, handler))
		rootApi.Post("/verify-code", guest.Verify(log, handler))
		rootApi.Post("/letter", guest.Letter(log, handler))
		rootApi.Post("/send-feedback", feedback.Submit(log, handler))
		rootApi.Post("/mail", mail.Send(log, handler))
	})

	if conf.Web.Root != "" {
		router.Handle("/*", http.FileServer(http.Dir(conf.Web.Root)))
	}

	return router
}

func allowedOrigins(conf *config.Config) []string {
	if len(conf.Web.AllowedOrigins) > 0 {
		return conf.Web.AllowedOrigins
	}
	return []string{conf.Web.BaseURL}
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIp, s.conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	s.log.Info("starting api server", slog.String("address", serverAddress))

	err = s.httpServer.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("stopping api server")
	return s.httpServer.Shutdown(ctx)
}
