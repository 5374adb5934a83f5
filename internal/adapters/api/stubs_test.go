package api

import (
	"context"
	"time"

	"randohub/internal/domain"
	"randohub/internal/domain/entities"
	"randohub/internal/ports/input"
	"randohub/internal/ports/output"
)

type stubEvents struct {
	input.EventUseCase
	event     *entities.Event
	openErr   error
	notifyErr error
	patch     output.EventPatch
	filter    output.EventFilter
}

func (s *stubEvents) GetEvent(_ context.Context, id uint) (*entities.Event, error) {
	if s.event == nil || s.event.ID != id {
		return nil, domain.ErrEventNotFound
	}
	return s.event, nil
}

func (s *stubEvents) ListEvents(_ context.Context, f output.EventFilter) ([]entities.Event, error) {
	s.filter = f
	if s.event == nil {
		return nil, nil
	}
	return []entities.Event{*s.event}, nil
}

func (s *stubEvents) EnsureOpenForRegistration(ctx context.Context, id uint, _ time.Time) (*entities.Event, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	return s.GetEvent(ctx, id)
}

func (s *stubEvents) UpdateEvent(_ context.Context, _ uint, patch output.EventPatch, _ uint) (*entities.Event, error) {
	s.patch = patch
	return s.event, nil
}

func (s *stubEvents) CanNotify(context.Context, uint, uint) error { return s.notifyErr }

type stubParticipation struct {
	registerRes input.RegistrationResult
	registerErr error
	cancelRes   input.CancellationResult
	cancelErr   error
	calls       int
}

func (s *stubParticipation) Register(_ context.Context, eventID, userID uint) (input.RegistrationResult, error) {
	s.calls++
	res := s.registerRes
	res.EventID, res.UserID = eventID, userID
	return res, s.registerErr
}

func (s *stubParticipation) Cancel(context.Context, uint, uint) (input.CancellationResult, error) {
	s.calls++
	return s.cancelRes, s.cancelErr
}

type stubBulk struct {
	res input.NotifyResult
	err error
}

func (s *stubBulk) NotifyAll(context.Context, uint) (input.NotifyResult, error) { return s.res, s.err }

type stubUsers struct {
	input.UserUseCase
	organizerEmail string
}

func (s *stubUsers) SetOrganizer(_ context.Context, _ uint, email string, _ bool) error {
	s.organizerEmail = email
	return nil
}

type stubAuth struct{}

func (stubAuth) Login(context.Context, string, string) (string, *entities.User, error) {
	return "", nil, domain.ErrInvalidCredentials
}
