package config

import (
	"errors"
	"fmt"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"os"
	"sync"
	"time"
)

type Listen struct {
	BindIp string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
	Port   string `yaml:"port" env:"PORT" env-default:"8080"`
}

type MongoConfig struct {
	URI      string `yaml:"uri" env:"MONGO_URI" env-description:"document store connection string"`
	Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"Zylumineqr"`
}

type MailConfig struct {
	Provider          string `yaml:"provider" env:"MAIL_PROVIDER" env-default:"smtp" env-description:"smtp, mailersend or log"`
	User              string `yaml:"user" env:"GMAIL_USER" env-description:"mail account, also the sender address"`
	AppPassword       string `yaml:"app_password" env:"GMAIL_APP_PASSWORD"`
	Host              string `yaml:"host" env:"SMTP_HOST" env-default:"smtp.gmail.com"`
	Port              int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	FromName          string `yaml:"from_name" env:"MAIL_FROM_NAME" env-default:"Zylumine"`
	FeedbackRecipient string `yaml:"feedback_recipient" env:"FEEDBACK_RECIPIENT_EMAIL"`
	MailerSendAPIKey  string `yaml:"mailersend_api_key" env:"MAILERSEND_API_KEY"`
}

// FeedbackTo is the operator inbox: the explicit override or the mail account itself.
func (m MailConfig) FeedbackTo() string {
	if m.FeedbackRecipient != "" {
		return m.FeedbackRecipient
	}
	return m.User
}

type AuthConfig struct {
	Secret        string        `yaml:"secret" env:"AUTH_SECRET" env-description:"session signing key"`
	SessionTTL    time.Duration `yaml:"session_ttl" env:"SESSION_TTL" env-default:"720h"`
	CookieSecure  bool          `yaml:"cookie_secure" env:"COOKIE_SECURE" env-default:"false"`
	AllowRegister bool          `yaml:"allow_register" env:"ALLOW_REGISTER" env-default:"true"`
}

type OAuthConfig struct {
	ClientID     string `yaml:"client_id" env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"GOOGLE_CLIENT_SECRET"`
	RequireAdmin bool   `yaml:"require_admin" env:"OAUTH_REQUIRE_ADMIN" env-default:"true"`
}

func (o OAuthConfig) Enabled() bool {
	return o.ClientID != "" && o.ClientSecret != ""
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	Prefix   string `yaml:"prefix" env:"REDIS_PREFIX" env-default:"session"`
}

type NatsConfig struct {
	URL string `yaml:"url" env:"NATS_URL"`
}

type TelegramConfig struct {
	APIKey   string `yaml:"api_key" env:"TELEGRAM_API_KEY"`
	ChatID   int64  `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
	LogLevel int    `yaml:"log_level" env:"TELEGRAM_LOG_LEVEL" env-default:"8"`
}

func (t TelegramConfig) Enabled() bool {
	return t.APIKey != "" && t.ChatID != 0
}

type WebConfig struct {
	BaseURL        string   `yaml:"base_url" env:"BASE_URL" env-default:"http://localhost:8080"`
	Root           string   `yaml:"root" env:"WEB_ROOT"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-separator:","`
}

type Config struct {
	Listen   Listen         `yaml:"listen"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Mail     MailConfig     `yaml:"mail"`
	Auth     AuthConfig     `yaml:"auth"`
	OAuth    OAuthConfig    `yaml:"oauth"`
	Redis    RedisConfig    `yaml:"redis"`
	Nats     NatsConfig     `yaml:"nats"`
	Telegram TelegramConfig `yaml:"telegram"`
	Web      WebConfig      `yaml:"web"`
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
}

var instance *Config
var once sync.Once

// MustLoad reads the config file when it exists and the environment otherwise;
// environment variables override file values in both cases.
func MustLoad(path string) *Config {
	once.Do(func() {
		conf, err := Load(path)
		if err != nil {
			desc, _ := cleanenv.GetDescription(&Config{}, nil)
			log.Fatal(fmt.Errorf("config: %s; %s", err, desc))
		}
		instance = conf
	})
	return instance
}

func Load(path string) (*Config, error) {
	conf := &Config{}
	var err error
	if _, statErr := os.Stat(path); path != "" && statErr == nil {
		err = cleanenv.ReadConfig(path, conf)
	} else {
		err = cleanenv.ReadEnv(conf)
	}
	if err != nil {
		return nil, err
	}
	if conf.Mongo.URI == "" {
		return nil, errors.New("MONGO_URI is not defined")
	}
	if conf.Auth.Secret == "" {
		return nil, errors.New("AUTH_SECRET is not defined")
	}
	return conf, nil
}
