package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/skillbridge/skillbridge/internal/app/models"
	"github.com/skillbridge/skillbridge/internal/app/models/dto"
	"github.com/skillbridge/skillbridge/internal/pkg/apperrors"
)

// notificationListLimit caps how many notifications one listing returns
const notificationListLimit = 50

// notificationStore is the slice of the notification repository the service
// depends on
type notificationStore interface {
	ListByUser(ctx context.Context, userID int64, limit int) ([]*models.Notification, error)
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// requestTransitioner lets a notification drive an accept/reject inline
type requestTransitioner interface {
	Transition(ctx context.Context, requestID, userID int64, action models.RequestAction) (*dto.RequestResponse, error)
}

// NotificationService handles the notification inbox
type NotificationService struct {
	notifications notificationStore
	requests      requestTransitioner
	logger        zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications notificationStore, requests requestTransitioner, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		requests:      requests,
		logger:        logger,
	}
}

// List returns the user's newest notifications. A storage failure degrades
// to an empty inbox rather than an error: notifications are best-effort.
func (s *NotificationService) List(ctx context.Context, userID int64) []dto.NotificationResponse {
	notifications, err := s.notifications.ListByUser(ctx, userID, notificationListLimit)
	if err != nil {
		s.logger.Error().Err(err).Int64("userId", userID).Msg("Failed to list notifications")
		return []dto.NotificationResponse{}
	}

	results := make([]dto.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		results = append(results, dto.ToNotificationResponse(notification))
	}

	return results
}

// Get returns one notification owned by the user
func (s *NotificationService) Get(ctx context.Context, id, userID int64) (*dto.NotificationResponse, error) {
	notification, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	resp := dto.ToNotificationResponse(notification)
	return &resp, nil
}

// MarkRead marks a notification as read. Re-marking is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int64) error {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}
	return s.notifications.MarkRead(ctx, id)
}

// Delete removes a notification from the user's inbox
func (s *NotificationService) Delete(ctx context.Context, id, userID int64) error {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}
	return s.notifications.Delete(ctx, id)
}

// HandleAction accepts or rejects the request behind a REQUEST notification
// and removes the notification once the transition succeeds.
func (s *NotificationService) HandleAction(ctx context.Context, id, userID int64, action models.RequestAction) (*dto.RequestResponse, error) {
	notification, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if notification.Type != models.NotificationTypeRequest || notification.RelatedRequestID == nil {
		return nil, apperrors.ErrNotificationNotActionable
	}

	result, err := s.requests.Transition(ctx, *notification.RelatedRequestID, userID, action)
	if err != nil {
		return nil, err
	}

	// The notification has served its purpose
	if err := s.notifications.Delete(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("notificationId", id).Msg("Failed to remove actioned notification")
	}

	return result, nil
}

func (s *NotificationService) getOwned(ctx context.Context, id, userID int64) (*models.Notification, error) {
	notification, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if notification.UserID != userID {
		return nil, apperrors.NewForbiddenError("notification belongs to another user")
	}

	return notification, nil
}
