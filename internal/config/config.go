package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	HTTPAddr      string `env:"HTTP_ADDR,      default=:8080"`
	Env           string `env:"ENV,            default=development"`
	LogLevel      string `env:"LOG_LEVEL,      default=info"`
	DatabaseURL   string `env:"DATABASE_URL,   default=postgres://localhost:5432/randohub?sslmode=disable"`
	Migrations    bool   `env:"MIGRATIONS,     default=true"`
	DefaultLocale string `env:"DEFAULT_LOCALE, default=fr"`

	JWT      JWTConfig
	SMTP     SMTPConfig
	Discord  DiscordConfig
	Redis    RedisConfig
	Reminder ReminderConfig
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET"`
	TTL    time.Duration `env:"JWT_TTL, default=24h"`
}

// SMTPConfig is optional: with an empty Host, notifications are only logged.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT, default=587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"MAIL_FROM, default=noreply@randohub.fr"`
}

type DiscordConfig struct {
	Token     string `env:"DISCORD_TOKEN"`
	ChannelID string `env:"DISCORD_CHANNEL_ID"`
}

// RedisConfig is optional: with an empty Addr, reminders are deduplicated in memory.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type ReminderConfig struct {
	Cron   string        `env:"REMINDER_CRON,   default=0 * * * *"`
	Window time.Duration `env:"REMINDER_WINDOW, default=24h"`
}

// Load charge la configuration depuis les variables d'environnement et la valide.
func Load(ctx context.Context) (*Config, error) {
	// .env est optionnel lorsque les variables sont fournies par l'environnement (Docker, CI, etc.).
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether logs should be human-readable.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// validate applique toutes les règles métier sur la configuration chargée.
func (c *Config) validate() error {
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("config: JWT_SECRET est requis et doit contenir au moins 32 caractères")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("config: JWT_TTL doit être positif")
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: DATABASE_URL invalide (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: DATABASE_URL invalide (%q): scheme ou host manquant", c.DatabaseURL)
	}

	if c.SMTP.Host != "" {
		if c.SMTP.Port < 1 || c.SMTP.Port > 65535 {
			return fmt.Errorf("config: SMTP_PORT hors limites (%d)", c.SMTP.Port)
		}
		if !strings.Contains(c.SMTP.From, "@") {
			return fmt.Errorf("config: MAIL_FROM invalide (%q)", c.SMTP.From)
		}
	}

	token := strings.TrimSpace(c.Discord.Token)
	channel := strings.TrimSpace(c.Discord.ChannelID)
	if (token == "") != (channel == "") {
		return fmt.Errorf("config: DISCORD_TOKEN et DISCORD_CHANNEL_ID doivent être fournis ensemble")
	}
	for _, r := range channel {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: DISCORD_CHANNEL_ID doit être un ID de salon Discord (chiffres uniquement)")
		}
	}

	if _, err := cron.ParseStandard(c.Reminder.Cron); err != nil {
		return fmt.Errorf("config: REMINDER_CRON invalide (%q): %w", c.Reminder.Cron, err)
	}
	if c.Reminder.Window <= 0 {
		return fmt.Errorf("config: REMINDER_WINDOW doit être positif")
	}

	return nil
}
