package dto

import (
	"time"

	"github.com/skillbridge/skillbridge/internal/app/models"
)

// NotificationActionRequest maps an inline accept/reject from a notification
type NotificationActionRequest struct {
	Action string `json:"action" binding:"required,oneof=accept reject"`
}

// NotificationResponse represents a notification populated with its related
// request summary when the reference is still live
type NotificationResponse struct {
	ID             int64            `json:"id"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	Type           string           `json:"type"`
	Read           bool             `json:"read"`
	CreatedAt      time.Time        `json:"createdAt"`
	RelatedRequest *RequestResponse `json:"relatedRequest,omitempty"`
}

// ToNotificationResponse converts a notification model to its response shape
func ToNotificationResponse(notification *models.Notification) NotificationResponse {
	if notification == nil {
		return NotificationResponse{}
	}

	resp := NotificationResponse{
		ID:        notification.ID,
		Title:     notification.Title,
		Message:   notification.Message,
		Type:      string(notification.Type),
		Read:      notification.Read,
		CreatedAt: notification.CreatedAt,
	}

	if notification.RelatedRequest != nil {
		related := ToRequestResponse(notification.RelatedRequest)
		resp.RelatedRequest = &related
	}

	return resp
}
