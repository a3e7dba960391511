package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/brewline/cafe-pos/internal/core/domain"
	"github.com/brewline/cafe-pos/internal/core/ports"
)

const minPasswordLength = 6

// AuthService implements registration and login.
type AuthService struct {
	users   ports.UserRepository
	tokens  *TokenService
	limiter ports.LoginLimiter
	log     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *TokenService, limiter ports.LoginLimiter, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, limiter: limiter, log: log}
}

// Register creates a customer account. Staff roles are granted by admins.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.create(ctx, username, email, password, domain.RoleUser, nil)
}

// CreateUser creates an account with an explicit role; used by the admin CLI.
func (s *AuthService) CreateUser(ctx context.Context, username, email, password, role string, outletIDs []string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.NewValidationError("role must be one of: user, manager, admin")
	}
	return s.create(ctx, username, email, password, role, outletIDs)
}

func (s *AuthService) create(ctx context.Context, username, email, password, role string, outletIDs []string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, domain.NewValidationError("username, email and password are required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.NewValidationError("email must be a valid email")
	}
	if len(password) < minPasswordLength {
		return nil, domain.NewValidationError("password must be at least 6 characters")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if outletIDs == nil {
		outletIDs = []string{}
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
		OutletIDs:    outletIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Str("role", role).Msg("user registered")
	return user, nil
}

// Login verifies credentials and returns a bearer token. Repeated failures for
// the same username are throttled.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, domain.NewValidationError("username and password are required")
	}

	blocked, err := s.limiter.Blocked(ctx, username)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("login limiter check failed, continuing")
	} else if blocked {
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		s.recordFailure(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		return "", nil, domain.ErrUserInactive
	}

	if err := s.limiter.Reset(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login attempts")
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Me returns the stored user behind an identity.
func (s *AuthService) Me(ctx context.Context, id domain.Identity) (*domain.User, error) {
	return s.users.FindByID(ctx, id.UserID)
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if err := s.limiter.Fail(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
	}
}
