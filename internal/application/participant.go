package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"randohub/internal/domain"
	"randohub/internal/domain/entities"
	"randohub/internal/metrics"
	"randohub/internal/ports/input"
	"randohub/internal/ports/output"
)

var _ input.ParticipationUseCase = (*ParticipationService)(nil)

// ParticipationService drives the (event, user) lifecycle:
// NONE -> registered, registered -> canceled, canceled -> registered.
// Callers check that the event exists and is not in the past before Register.
type ParticipationService struct {
	participantRepo output.ParticipantRepository
	eventRepo       output.EventRepository
	userRepo        output.UserRepository
	notifier        output.Notifier
	log             zerolog.Logger
}

func NewParticipationService(
	participantRepo output.ParticipantRepository,
	eventRepo output.EventRepository,
	userRepo output.UserRepository,
	notifier output.Notifier,
	log zerolog.Logger,
) *ParticipationService {
	return &ParticipationService{
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		log:             log,
	}
}

func (s *ParticipationService) Register(ctx context.Context, eventID, userID uint) (input.RegistrationResult, error) {
	existing, err := s.participantRepo.FindByEventIDAndUserID(ctx, eventID, userID)
	if err != nil && !errors.Is(err, domain.ErrParticipationNotFound) {
		return input.RegistrationResult{}, fmt.Errorf("find participant: %w", err)
	}

	res := input.RegistrationResult{EventID: eventID, UserID: userID, Status: domain.StatusRegistered}
	switch {
	case existing == nil:
		p := &entities.Participant{EventID: eventID, UserID: userID, Status: domain.StatusRegistered}
		if err := s.participantRepo.Create(ctx, p); err != nil {
			// Lost the race against a concurrent registration for the same pair.
			if errors.Is(err, domain.ErrParticipantConflict) {
				return input.RegistrationResult{}, domain.ErrAlreadyRegistered
			}
			return input.RegistrationResult{}, fmt.Errorf("create participant: %w", err)
		}
		res.ParticipantID = p.ID
		metrics.ParticipationTransitionsTotal.WithLabelValues(metrics.TransitionRegister).Inc()
	case existing.Status == domain.StatusCanceled:
		if _, err := s.participantRepo.UpdateStatus(ctx, eventID, userID, domain.StatusRegistered); err != nil {
			return input.RegistrationResult{}, fmt.Errorf("reactivate participant: %w", err)
		}
		res.ParticipantID = existing.ID
		res.Reactivated = true
		metrics.ParticipationTransitionsTotal.WithLabelValues(metrics.TransitionReactivate).Inc()
	default:
		s.log.Debug().Uint("event_id", eventID).Uint("user_id", userID).Str("status", existing.Status.String()).Msg("already registered")
		return input.RegistrationResult{}, domain.ErrAlreadyRegistered
	}

	s.log.Info().
		Uint("event_id", eventID).
		Uint("user_id", userID).
		Bool("reactivated", res.Reactivated).
		Msg("participant registered")

	if err := s.notify(ctx, eventID, userID, domain.TemplateRegistrationConfirmation); err != nil {
		res.NotificationError = err.Error()
	} else {
		res.NotificationSent = true
	}
	return res, nil
}

func (s *ParticipationService) Cancel(ctx context.Context, eventID, userID uint) (input.CancellationResult, error) {
	existing, err := s.participantRepo.FindByEventIDAndUserID(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrParticipationNotFound) {
			return input.CancellationResult{}, domain.ErrParticipationNotFound
		}
		return input.CancellationResult{}, fmt.Errorf("find participant: %w", err)
	}

	switch existing.Status {
	case domain.StatusCanceled:
		return input.CancellationResult{AlreadyCanceled: true}, nil
	case domain.StatusAttended:
		return input.CancellationResult{}, domain.ErrParticipantAttended
	}

	if _, err := s.participantRepo.UpdateStatus(ctx, eventID, userID, domain.StatusCanceled); err != nil {
		return input.CancellationResult{}, fmt.Errorf("cancel participant: %w", err)
	}
	metrics.ParticipationTransitionsTotal.WithLabelValues(metrics.TransitionCancel).Inc()
	s.log.Info().Uint("event_id", eventID).Uint("user_id", userID).Msg("participation canceled")

	res := input.CancellationResult{}
	if err := s.notify(ctx, eventID, userID, domain.TemplateCancellationConfirmation); err != nil {
		res.NotificationError = err.Error()
	} else {
		res.NotificationSent = true
	}
	return res, nil
}

// notify sends one confirmation message. Every failure, including the lookups
// needed to render it, is logged and returned for the result flag only.
func (s *ParticipationService) notify(ctx context.Context, eventID, userID uint, kind domain.TemplateKind) error {
	err := s.send(ctx, eventID, userID, kind)
	metrics.ObserveNotification(string(kind), err)
	if err != nil {
		s.log.Warn().Err(err).
			Uint("event_id", eventID).
			Uint("user_id", userID).
			Str("kind", string(kind)).
			Msg("notification failed, transition kept")
	}
	return err
}

func (s *ParticipationService) send(ctx context.Context, eventID, userID uint, kind domain.TemplateKind) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("load event: %w", err)
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	return s.notifier.Send(ctx, user.Email, kind, eventPayload(event, user.FirstName, user.LastName))
}
