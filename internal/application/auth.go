package application

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"randohub/internal/domain"
	"randohub/internal/domain/entities"
	"randohub/internal/ports/input"
	"randohub/internal/ports/output"
)

var _ input.AuthUseCase = (*AuthService)(nil)

// AuthService implements login and issues HS256 tokens.
type AuthService struct {
	userRepo  output.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(userRepo output.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{userRepo: userRepo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entities.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return "", nil, domain.ErrUserNotVerified
	}
	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) generateToken(user *entities.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":         strconv.FormatUint(uint64(user.ID), 10),
		"admin":       user.Admin,
		"super_admin": user.SuperAdmin,
		"organizer":   user.Organizer,
		"exp":         time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
