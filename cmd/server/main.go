package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"randohub/internal/adapters/api"
	"randohub/internal/adapters/api/handler"
	"randohub/internal/adapters/scheduler"
	"randohub/internal/application"
	"randohub/internal/config"
	"randohub/internal/infrastructure/cache"
	"randohub/internal/infrastructure/database"
	"randohub/internal/infrastructure/i18n"
	"randohub/internal/infrastructure/notify"
	"randohub/internal/ports/output"
	"randohub/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Pretty: true})
		boot.Fatal().Err(err).Msg("configuration")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment(), Service: "randohub"})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if cfg.Migrations {
		if err := database.RunMigrations(cfg.DatabaseURL, log); err != nil {
			return err
		}
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	checks := map[string]handler.Check{"postgres": pool.Ping}

	eventRepo := database.NewEventRepository(pool)
	participantRepo := database.NewParticipantRepository(pool)
	userRepo := database.NewUserRepository(pool)

	translator := i18n.NewTranslator(cfg.DefaultLocale, log)
	notifier, err := newNotifier(cfg, translator, logger.Component("notify"))
	if err != nil {
		return err
	}

	var guard output.ReminderGuard = cache.NewMemoryGuard()
	if cfg.Redis.Addr != "" {
		rdb, err := cache.Connect(ctx, cache.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB}, log)
		if err != nil {
			return err
		}
		defer rdb.Close()
		guard = cache.NewReminderGuard(rdb)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	bulk := application.NewBulkNotifier(eventRepo, participantRepo, notifier, log)
	participation := application.NewParticipationService(participantRepo, eventRepo, userRepo, notifier, log)
	events := application.NewEventService(eventRepo, participantRepo, userRepo, bulk, log)
	defer events.Wait()
	users := application.NewUserService(userRepo, notifier, log)
	auth := application.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.TTL)

	reminders := scheduler.NewReminderScheduler(cfg.Reminder.Cron, cfg.Reminder.Window, eventRepo, bulk, guard, log)
	if err := reminders.Start(); err != nil {
		return err
	}
	defer reminders.Stop()

	e := api.NewRouter(api.Deps{
		Events:        events,
		Participation: participation,
		Bulk:          bulk,
		Users:         users,
		Auth:          auth,
		Translator:    translator,
		JWTSecret:     cfg.JWT.Secret,
		Checks:        checks,
		Log:           logger.Component("http"),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http server listening")
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newNotifier sends email through SMTP when configured, else logs, and
// mirrors to Discord when a token is set.
func newNotifier(cfg *config.Config, t output.T, log zerolog.Logger) (output.Notifier, error) {
	renderer := notify.NewRenderer(t, cfg.DefaultLocale)

	var primary output.Notifier = notify.NewLogSender(renderer, log)
	if cfg.SMTP.Host != "" {
		primary = notify.NewEmailSender(notify.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}, renderer, log)
	}

	if cfg.Discord.Token == "" {
		return primary, nil
	}
	session, err := notify.NewDiscordSession(cfg.Discord.Token)
	if err != nil {
		return nil, err
	}
	return notify.NewFanout(primary, log, notify.NewDiscordSender(session, cfg.Discord.ChannelID, renderer)), nil
}
