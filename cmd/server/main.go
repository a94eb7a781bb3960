package main

import (
	"context"
	"flag"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
	"zylumine/impl/auth"
	"zylumine/impl/core"
	"zylumine/internal/config"
	"zylumine/internal/database"
	"zylumine/internal/events"
	"zylumine/internal/http-server/api"
	authhandler "zylumine/internal/http-server/handlers/auth"
	"zylumine/internal/mailer"
	"zylumine/internal/notify"
	"zylumine/internal/oauth"
	"zylumine/internal/session"
	"zylumine/lib/logger"
	"zylumine/lib/sl"
)

func main() {
	configPath := flag.String("conf", "config.yml", "path to config file")
	logPath := flag.String("log", "/var/log/", "path to log file directory")
	flag.Parse()

	// .env is optional; real environment variables win
	_ = godotenv.Load()

	conf := config.MustLoad(*configPath)
	lg := logger.SetupLogger(conf.Env, *logPath)

	var notifier *notify.Telegram
	if conf.Telegram.Enabled() {
		tg, err := notify.NewTelegram(conf.Telegram.APIKey, conf.Telegram.ChatID, lg)
		if err != nil {
			lg.Error("telegram notifier", sl.Err(err))
		} else {
			notifier = tg
			lg = slog.New(logger.NewTelegramHandler(lg.Handler(), tg, slog.Level(conf.Telegram.LogLevel)))
		}
	}
	lg.Info("starting zylumine", slog.String("config", *configPath), slog.String("env", conf.Env))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongo := database.NewMongoClient(conf, lg)
	if err := mongo.Connect(ctx); err != nil {
		// the gateway retries on the next request
		lg.Error("mongo connect", sl.Err(err))
	} else if err = mongo.EnsureIndexes(ctx); err != nil {
		lg.Error("mongo indexes", sl.Err(err))
	}

	mail, err := mailer.New(conf.Mail, lg)
	if err != nil {
		log.Fatal("mailer: ", err)
	}

	var registry session.Registry
	if conf.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		if err = rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("redis: ", err)
		}
		defer rdb.Close()
		registry = session.NewRedisRegistry(rdb, conf.Redis.Prefix)
		lg.Info("session registry enabled", slog.String("addr", conf.Redis.Addr))
	}
	sessions := session.NewManager(conf.Auth.Secret, conf.Auth.SessionTTL, registry)

	var publisher events.Publisher = events.Nop{}
	if conf.Nats.URL != "" {
		nc, err := events.NewNATS(conf.Nats.URL, lg)
		if err != nil {
			lg.Error("nats connect", sl.Err(err))
		} else {
			publisher = nc
		}
	}

	handler := core.New(mongo, mail, lg)
	handler.SetAuthService(auth.New(mongo))
	handler.SetSessionService(sessions)
	handler.SetPublisher(publisher)
	handler.SetFeedbackRecipient(conf.Mail.FeedbackTo())
	handler.SetAllowRegister(conf.Auth.AllowRegister)
	handler.SetRequireAdmin(conf.OAuth.RequireAdmin)
	if notifier != nil {
		handler.SetNotifier(notifier)
	}

	var provider authhandler.Provider
	if conf.OAuth.Enabled() {
		provider = oauth.NewGoogle(conf.OAuth.ClientID, conf.OAuth.ClientSecret, conf.Web.BaseURL)
	}

	server := api.New(conf, lg, handler, provider)
	go func() {
		if err := server.Start(); err != nil {
			lg.Error("server", sl.Err(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		lg.Error("server shutdown", sl.Err(err))
	}
	if err = publisher.Close(); err != nil {
		lg.Error("nats drain", sl.Err(err))
	}
	if err = mongo.Disconnect(shutdownCtx); err != nil {
		lg.Error("mongo disconnect", sl.Err(err))
	}
	lg.Info("stopped")
}
