package application

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"randohub/internal/domain"
	"randohub/internal/metrics"
	"randohub/internal/ports/input"
	"randohub/internal/ports/output"
)

var _ input.BulkNotifyUseCase = (*BulkNotifier)(nil)

// BulkNotifier sends the event reminder to every registered participant.
type BulkNotifier struct {
	eventRepo       output.EventRepository
	participantRepo output.ParticipantRepository
	notifier        output.Notifier
	log             zerolog.Logger
}

func NewBulkNotifier(
	eventRepo output.EventRepository,
	participantRepo output.ParticipantRepository,
	notifier output.Notifier,
	log zerolog.Logger,
) *BulkNotifier {
	return &BulkNotifier{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		notifier:        notifier,
		log:             log,
	}
}

// NotifyAll sends reminders one recipient at a time. A failed send is logged
// and skipped; only the event lookup and the participant query can fail the run.
func (n *BulkNotifier) NotifyAll(ctx context.Context, eventID uint) (input.NotifyResult, error) {
	start := time.Now()
	defer func() { metrics.BulkNotifyDuration.Observe(time.Since(start).Seconds()) }()

	event, err := n.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return input.NotifyResult{}, fmt.Errorf("notify all: %w", err)
	}
	contacts, err := n.participantRepo.ListRegisteredWithContact(ctx, eventID)
	if err != nil {
		return input.NotifyResult{}, fmt.Errorf("notify all: list participants: %w", err)
	}

	res := input.NotifyResult{Total: len(contacts)}
	for _, c := range contacts {
		err := n.notifier.Send(ctx, c.Email, domain.TemplateEventReminder, eventPayload(event, c.FirstName, c.LastName))
		metrics.ObserveNotification(string(domain.TemplateEventReminder), err)
		if err != nil {
			n.log.Warn().Err(err).
				Uint("event_id", eventID).
				Uint("user_id", c.UserID).
				Msg("reminder failed")
			continue
		}
		res.Count++
	}

	n.log.Info().
		Uint("event_id", eventID).
		Int("sent", res.Count).
		Int("total", res.Total).
		Msg("reminders sent")
	return res, nil
}
