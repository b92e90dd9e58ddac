// Package services contains the business logic layer.
//
// Services defined in this package:
//   - AuthService: registration, login and the current-user lookup
//   - ProfileService: skill profile management and discovery
//   - RequestService: the mentorship request lifecycle
//   - NotificationService: the notification inbox and inline actions
//   - MessageService: request-scoped chat with expiring messages
package services

import (
	"github.com/rs/zerolog"
	"github.com/skillbridge/skillbridge/internal/app/repositories"
	"github.com/skillbridge/skillbridge/internal/config"
	"github.com/skillbridge/skillbridge/internal/pkg/auth"
	"github.com/skillbridge/skillbridge/internal/pkg/cache"
	"github.com/skillbridge/skillbridge/internal/pkg/filestorage"
)

// Services holds all service instances
type Services struct {
	AuthService         *AuthService
	ProfileService      *ProfileService
	RequestService      *RequestService
	NotificationService *NotificationService
	MessageService      *MessageService
}

// NewServices wires every service with its repositories and shared infrastructure
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	storage filestorage.FileStorage,
	locationCache *cache.LocationCache,
	cfg *config.Config,
	logger zerolog.Logger,
) *Services {
	requestService := NewRequestService(
		repos.RequestRepository,
		repos.UserRepository,
		repos.ProfileRepository,
		repos.NotificationRepository,
		logger.With().Str("service", "request").Logger(),
	)

	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			repos.ProfileRepository,
			jwtService,
			logger.With().Str("service", "auth").Logger(),
		),
		ProfileService: NewProfileService(
			repos.ProfileRepository,
			storage,
			locationCache,
			int64(cfg.Uploads.MaxPictureSizeMB)*1024*1024,
			logger.With().Str("service", "profile").Logger(),
		),
		RequestService: requestService,
		NotificationService: NewNotificationService(
			repos.NotificationRepository,
			requestService,
			logger.With().Str("service", "notification").Logger(),
		),
		MessageService: NewMessageService(
			repos.MessageRepository,
			repos.RequestRepository,
			storage,
			int64(cfg.Uploads.MaxDocumentSizeMB)*1024*1024,
			cfg.MessageTTL(),
			logger.With().Str("service", "message").Logger(),
		),
	}
}
