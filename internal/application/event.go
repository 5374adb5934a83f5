package application

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"randohub/internal/domain"
	"randohub/internal/domain/entities"
	"randohub/internal/ports/input"
	"randohub/internal/ports/output"
)

var _ input.EventUseCase = (*EventService)(nil)

type EventService struct {
	eventRepo       output.EventRepository
	participantRepo output.ParticipantRepository
	userRepo        output.UserRepository
	bulk            input.BulkNotifyUseCase
	log             zerolog.Logger
	now             func() time.Time
	background      sync.WaitGroup
}

func NewEventService(
	eventRepo output.EventRepository,
	participantRepo output.ParticipantRepository,
	userRepo output.UserRepository,
	bulk input.BulkNotifyUseCase,
	log zerolog.Logger,
) *EventService {
	return &EventService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		bulk:            bulk,
		log:             log,
		now:             time.Now,
	}
}

// CreateEvent stores a new hike. With notifyUsers, reminders go out in the
// background; their outcome is only logged.
func (s *EventService) CreateEvent(ctx context.Context, in input.NewEvent, creatorID uint, notifyUsers bool) (*entities.Event, error) {
	creator, err := s.userRepo.FindByID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("load creator: %w", err)
	}
	if !creator.CanOrganize() {
		return nil, domain.ErrForbidden
	}
	if !in.Date.After(s.now()) {
		return nil, domain.ErrEventInPast
	}
	if !domain.ValidDifficulty(in.Difficulty) {
		return nil, domain.ErrInvalidDifficulty
	}

	event := &entities.Event{
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		Location:        strings.TrimSpace(in.Location),
		StartPoint:      strings.TrimSpace(in.StartPoint),
		Date:            in.Date,
		DurationMinutes: in.DurationMinutes,
		Difficulty:      in.Difficulty,
		CreatedBy:       &creator.ID,
		EffortIPB:       in.EffortIPB,
		Technicite:      in.Technicite,
		Risques:         in.Risques,
		AltitudeMin:     in.AltitudeMin,
		AltitudeMax:     in.AltitudeMax,
		Denivele:        in.Denivele,
		Visiorando:      in.Visiorando,
		Distance:        in.Distance,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	first, last := creator.FirstName, creator.LastName
	event.CreatorFirstName, event.CreatorLastName = &first, &last

	s.log.Info().Uint("event_id", event.ID).Uint("creator_id", creatorID).Msg("event created")

	if notifyUsers {
		// Detached from the request context so the run outlives the response.
		runCtx, id := context.WithoutCancel(ctx), event.ID
		s.background.Go(func() {
			res, err := s.bulk.NotifyAll(runCtx, id)
			if err != nil {
				s.log.Error().Err(err).Uint("event_id", id).Msg("notify on create failed")
				return
			}
			s.log.Info().Uint("event_id", id).Int("sent", res.Count).Int("total", res.Total).Msg("notify on create done")
		})
	}
	return event, nil
}

// Wait blocks until background reminder runs started by CreateEvent finish.
// Call it before closing the store.
func (s *EventService) Wait() {
	s.background.Wait()
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (*entities.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	participants, err := s.participantRepo.FindByEventID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	event.Participants = participants
	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context, filter output.EventFilter) ([]entities.Event, error) {
	if !domain.ValidDifficulty(filter.Difficulty) {
		return nil, domain.ErrInvalidDifficulty
	}
	if !filter.DateFrom.IsZero() && !filter.DateTo.IsZero() && filter.DateTo.Before(filter.DateFrom) {
		return nil, domain.ErrInvalidFilter
	}
	return s.eventRepo.List(ctx, filter)
}

// UpdateEvent applies patch when actorID created the event or is an admin.
func (s *EventService) UpdateEvent(ctx context.Context, id uint, patch output.EventPatch, actorID uint) (*entities.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, event, actorID); err != nil {
		return nil, err
	}
	if d, ok := patch["difficulty"].(string); ok && !domain.ValidDifficulty(d) {
		return nil, domain.ErrInvalidDifficulty
	}
	if d, ok := patch["date"].(time.Time); ok && !d.After(s.now()) {
		return nil, domain.ErrEventInPast
	}
	if err := s.eventRepo.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	return s.eventRepo.FindByID(ctx, id)
}

func (s *EventService) ListParticipants(ctx context.Context, id uint) ([]entities.ParticipantView, error) {
	if _, err := s.eventRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.participantRepo.FindByEventID(ctx, id)
}

// EnsureOpenForRegistration holds the preconditions of a registration:
// the event exists and has not started yet.
func (s *EventService) EnsureOpenForRegistration(ctx context.Context, id uint, now time.Time) (*entities.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.IsPast(now) {
		return nil, domain.ErrEventInPast
	}
	return event, nil
}

// CanNotify checks that actorID may trigger reminders for the event.
func (s *EventService) CanNotify(ctx context.Context, eventID, actorID uint) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	return s.authorize(ctx, event, actorID)
}

func (s *EventService) authorize(ctx context.Context, event *entities.Event, actorID uint) error {
	if event.CreatedBy != nil && *event.CreatedBy == actorID {
		return nil
	}
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("load actor: %w", err)
	}
	if actor.Admin || actor.SuperAdmin {
		return nil
	}
	return domain.ErrForbidden
}
