package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"randohub/internal/domain"
	"randohub/internal/domain/entities"
	"randohub/internal/metrics"
	"randohub/internal/ports/input"
	"randohub/internal/ports/output"
)

var _ input.UserUseCase = (*UserService)(nil)

type UserService struct {
	userRepo output.UserRepository
	notifier output.Notifier
	log      zerolog.Logger
}

func NewUserService(userRepo output.UserRepository, notifier output.Notifier, log zerolog.Logger) *UserService {
	return &UserService{userRepo: userRepo, notifier: notifier, log: log}
}

// Register creates an unverified account and emails its verification code.
// The account exists even when the email could not be sent.
func (s *UserService) Register(ctx context.Context, in input.NewUser) (*entities.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	code, err := newVerificationCode()
	if err != nil {
		return nil, err
	}
	user := &entities.User{
		Email:            email,
		PasswordHash:     string(hash),
		FirstName:        strings.TrimSpace(in.FirstName),
		LastName:         strings.TrimSpace(in.LastName),
		VerificationCode: code,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	err = s.notifier.Send(ctx, user.Email, domain.TemplateVerificationCode, output.Payload{
		"FirstName": user.FirstName,
		"Code":      code,
	})
	metrics.ObserveNotification(string(domain.TemplateVerificationCode), err)
	if err != nil {
		s.log.Warn().Err(err).Uint("user_id", user.ID).Msg("verification email failed")
	}
	return user, nil
}

func (s *UserService) Verify(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	code = strings.TrimSpace(code)
	if email == "" || code == "" {
		return domain.ErrInvalidVerificationCode
	}
	return s.userRepo.MarkVerified(ctx, email, code)
}

func (s *UserService) Me(ctx context.Context, id uint) (*entities.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *UserService) Events(ctx context.Context, id uint, now time.Time) (input.UserEvents, error) {
	past, future, err := s.userRepo.FindEvents(ctx, id, now)
	if err != nil {
		return input.UserEvents{}, err
	}
	return input.UserEvents{Past: past, Future: future}, nil
}

// SetOrganizer toggles the organizer flag; only super admins may do it.
func (s *UserService) SetOrganizer(ctx context.Context, actorID uint, email string, organizer bool) error {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return fmt.Errorf("load actor: %w", err)
	}
	if !actor.SuperAdmin {
		return domain.ErrForbidden
	}
	if err := s.userRepo.SetOrganizer(ctx, strings.ToLower(strings.TrimSpace(email)), organizer); err != nil {
		return err
	}
	s.log.Info().Str("email", email).Bool("organizer", organizer).Uint("actor_id", actorID).Msg("organizer flag updated")
	return nil
}

// newVerificationCode returns 3 random bytes as 6 hex characters.
func newVerificationCode() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return hex.EncodeToString(b), nil
}
