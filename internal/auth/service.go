// Package auth handles farmer registration, login, and session tokens.
// Sessions are stateless HS256 JWTs carried in a cookie so the binary needs
// no session table.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/croppilot/croppilot/internal/domain"
	"github.com/croppilot/croppilot/internal/observability"
	"github.com/croppilot/croppilot/internal/store"
)

// ErrInvalidCredentials covers both unknown phone numbers and wrong
// passwords so login failures do not reveal which accounts exist.
var ErrInvalidCredentials = errors.New("invalid phone number or password")

const tokenIssuer = "croppilot"

type sessionClaims struct {
	jwt.RegisteredClaims
}

// Service issues and validates sessions against the user store.
type Service struct {
	users      store.UserStore
	signingKey []byte
	ttl        time.Duration
	logger     *slog.Logger
	metrics    *observability.Metrics
}

func NewService(users store.UserStore, signingKey string, ttl time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		users:      users,
		signingKey: []byte(signingKey),
		ttl:        ttl,
		logger:     logger,
		metrics:    metrics,
	}
}

// Register creates a new farmer account. The phone number is the unique login
// identifier.
func (s *Service) Register(ctx context.Context, name, phone, password string) (domain.User, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)

	if name == "" {
		return domain.User{}, fmt.Errorf("%w: name is required", domain.ErrInvalidQuery)
	}
	if err := domain.ValidatePhone(phone); err != nil {
		return domain.User{}, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Phone:        phone,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and returns the user with a signed session
// token.
func (s *Service) Login(ctx context.Context, phone, password string) (domain.User, string, error) {
	user, err := s.users.FindByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.metrics.LoginAttempts.WithLabelValues("failure").Inc()
			return domain.User{}, "", ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.metrics.LoginAttempts.WithLabelValues("failure").Inc()
		return domain.User{}, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return domain.User{}, "", err
	}

	s.metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.logger.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

func (s *Service) issueToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses a session token and returns the user ID it was issued
// for.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidCredentials
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidCredentials
	}
	return claims.Subject, nil
}

// SessionTTL reports the configured token lifetime so handlers can set
// matching cookie expiry.
func (s *Service) SessionTTL() time.Duration {
	return s.ttl
}
