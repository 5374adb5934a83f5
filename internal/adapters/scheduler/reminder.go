package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"randohub/internal/ports/input"
	"randohub/internal/ports/output"
)

// ReminderScheduler periodically reminds participants of hikes starting
// within the configured window.
type ReminderScheduler struct {
	cron     *cron.Cron
	spec     string
	window   time.Duration
	events   output.EventRepository
	notifier input.BulkNotifyUseCase
	guard    output.ReminderGuard
	log      zerolog.Logger
	now      func() time.Time
}

func NewReminderScheduler(
	spec string,
	window time.Duration,
	events output.EventRepository,
	notifier input.BulkNotifyUseCase,
	guard output.ReminderGuard,
	log zerolog.Logger,
) *ReminderScheduler {
	return &ReminderScheduler{
		cron:     cron.New(),
		spec:     spec,
		window:   window,
		events:   events,
		notifier: notifier,
		guard:    guard,
		log:      log.With().Str("component", "reminders").Logger(),
		now:      time.Now,
	}
}

// Start registers the reminder job and starts the cron loop.
func (s *ReminderScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce(context.Background()) }); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Str("spec", s.spec).Dur("window", s.window).Msg("scheduler started")
	return nil
}

// Stop waits for a running job to finish.
func (s *ReminderScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler stopped")
}

// RunOnce sends reminders for every event starting in [now, now+window).
// It returns the number of events notified.
func (s *ReminderScheduler) RunOnce(ctx context.Context) int {
	now := s.now()
	events, err := s.events.FindStartingBetween(ctx, now, now.Add(s.window))
	if err != nil {
		s.log.Error().Err(err).Msg("list upcoming events")
		return 0
	}

	notified := 0
	for _, e := range events {
		claimed, err := s.guard.Acquire(ctx, e.ID, e.Date, s.window)
		if err != nil {
			s.log.Warn().Err(err).Uint("event_id", e.ID).Msg("reminder guard unavailable, sending anyway")
		} else if !claimed {
			s.log.Debug().Uint("event_id", e.ID).Msg("reminder already sent")
			continue
		}

		res, err := s.notifier.NotifyAll(ctx, e.ID)
		if err != nil {
			s.log.Error().Err(err).Uint("event_id", e.ID).Msg("scheduled reminder failed")
			if claimed {
				if err := s.guard.Release(ctx, e.ID, e.Date); err != nil {
					s.log.Warn().Err(err).Uint("event_id", e.ID).Msg("release reminder guard")
				}
			}
			continue
		}
		notified++
		s.log.Info().Uint("event_id", e.ID).Int("sent", res.Count).Int("total", res.Total).Msg("scheduled reminder")
	}
	return notified
}
