package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppCfg struct {
	Env      string
	Port     string
	LogLevel string
}

type SalesDriveCfg struct {
	Domain     string
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

type DBCfg struct{ DSN string }
type RedisCfg struct{ Addr string }

type WebhookCfg struct {
	Token        string
	DedupTTL     time.Duration
	PollInterval time.Duration
	BatchSize    int
}

type Cfg struct {
	App        AppCfg
	SalesDrive SalesDriveCfg
	DB         DBCfg
	Redis      RedisCfg
	Webhook    WebhookCfg
}

// Load reads .env (if present) into the process environment and builds Cfg
// from the environment.
func Load() (Cfg, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SALESDRIVE_TIMEOUT", "30s")
	v.SetDefault("SALESDRIVE_MAX_RETRIES", 3)
	v.SetDefault("SALESDRIVE_RETRY_DELAY", "500ms")
	v.SetDefault("WEBHOOK_DEDUP_TTL", "24h")
	v.SetDefault("WEBHOOK_POLL_INTERVAL", "5s")
	v.SetDefault("WEBHOOK_BATCH_SIZE", 50)
	return v
}

// FromViper builds Cfg from v and validates it
func FromViper(v *viper.Viper) (Cfg, error) {
	cfg := Cfg{
		App: AppCfg{
			Env:      v.GetString("APP_ENV"),
			Port:     v.GetString("APP_PORT"),
			LogLevel: strings.ToLower(v.GetString("LOG_LEVEL")),
		},
		SalesDrive: SalesDriveCfg{
			Domain:     strings.TrimSpace(v.GetString("SALESDRIVE_DOMAIN")),
			APIKey:     strings.TrimSpace(v.GetString("SALESDRIVE_API_KEY")),
			BaseURL:    strings.TrimSpace(v.GetString("SALESDRIVE_BASE_URL")),
			Timeout:    v.GetDuration("SALESDRIVE_TIMEOUT"),
			MaxRetries: v.GetInt("SALESDRIVE_MAX_RETRIES"),
			RetryDelay: v.GetDuration("SALESDRIVE_RETRY_DELAY"),
		},
		DB:    DBCfg{DSN: v.GetString("DB_DSN")},
		Redis: RedisCfg{Addr: v.GetString("REDIS_ADDR")},
		Webhook: WebhookCfg{
			Token:        strings.TrimSpace(v.GetString("WEBHOOK_TOKEN")),
			DedupTTL:     v.GetDuration("WEBHOOK_DEDUP_TTL"),
			PollInterval: v.GetDuration("WEBHOOK_POLL_INTERVAL"),
			BatchSize:    v.GetInt("WEBHOOK_BATCH_SIZE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Cfg{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

var portRe = regexp.MustCompile(`^[0-9]{1,5}$`)

func absoluteURL(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("must be an absolute URL")
	}
	return nil
}

func (c Cfg) Validate() error {
	if err := validation.ValidateStruct(&c.App,
		validation.Field(&c.App.Port, validation.Required, validation.Match(portRe)),
		validation.Field(&c.App.LogLevel, validation.In("trace", "debug", "info", "warn", "error")),
	); err != nil {
		return err
	}
	return validation.ValidateStruct(&c.SalesDrive,
		validation.Field(&c.SalesDrive.APIKey, validation.Required),
		validation.Field(&c.SalesDrive.Domain, validation.When(c.SalesDrive.BaseURL == "", validation.Required)),
		validation.Field(&c.SalesDrive.BaseURL, validation.By(absoluteURL)),
		validation.Field(&c.SalesDrive.MaxRetries, validation.Min(0)),
		validation.Field(&c.SalesDrive.Timeout, validation.Required),
	)
}

// IsProduction reports whether the app runs with APP_ENV=production
func (c Cfg) IsProduction() bool {
	return c.App.Env == "production"
}
