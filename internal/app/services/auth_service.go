package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/skillbridge/skillbridge/internal/app/models"
	"github.com/skillbridge/skillbridge/internal/app/models/dto"
	"github.com/skillbridge/skillbridge/internal/pkg/apperrors"
	"github.com/skillbridge/skillbridge/internal/pkg/auth"
	"github.com/skillbridge/skillbridge/internal/pkg/validation"
)

// authUserStore is the slice of the user repository AuthService depends on
type authUserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// authProfileStore answers whether a user already has a skill profile
type authProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.SkillProfile, error)
}

// AuthService handles registration, login and the current-user lookup
type AuthService struct {
	users      authUserStore
	profiles   authProfileStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users authUserStore, profiles authProfileStore, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		profiles:   profiles,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register creates an account and returns a fresh access token
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := validation.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	// Checked up front for a clean error; the unique index on users.email
	// still closes the race in Create.
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     email,
		Password:  hashed,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userId", user.ID).Str("email", user.Email).Msg("User registered")

	return s.buildTokenResponse(ctx, user)
}

// Login verifies credentials and returns an access token. A missing account
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to record last login")
	}

	return s.buildTokenResponse(ctx, user)
}

// GetCurrentUser returns the authenticated user's own record
func (s *AuthService) GetCurrentUser(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}

func (s *AuthService) buildTokenResponse(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	hasProfile := false
	if _, err := s.profiles.GetByUserID(ctx, user.ID); err == nil {
		hasProfile = true
	} else if !errors.Is(err, apperrors.ErrProfileNotFound) {
		s.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to check skill profile existence")
	}

	return &dto.TokenResponse{
		Token:           token,
		ExpiresIn:       expiresIn,
		User:            dto.ToUserResponse(user),
		HasSkillProfile: hasProfile,
	}, nil
}
