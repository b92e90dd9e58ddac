package models

import "time"

// NotificationType classifies a stored user-facing event
type NotificationType string

const (
	NotificationTypeRequest    NotificationType = "REQUEST"
	NotificationTypeAcceptance NotificationType = "ACCEPTANCE"
	NotificationTypeRejection  NotificationType = "REJECTION"
	NotificationTypeSystem     NotificationType = "SYSTEM"
)

// Notification is a stored, user-addressed event describing a request
// lifecycle transition. RelatedRequestID is nulled when the request is
// deleted, so readers must tolerate an absent reference.
type Notification struct {
	ID               int64            `json:"id" db:"id"`
	UserID           int64            `json:"userId" db:"user_id"`
	Title            string           `json:"title" db:"title"`
	Message          string           `json:"message" db:"message"`
	Type             NotificationType `json:"type" db:"type"`
	Read             bool             `json:"read" db:"read"`
	RelatedRequestID *int64           `json:"relatedRequestId,omitempty" db:"related_request_id"`
	CreatedAt        time.Time        `json:"createdAt" db:"created_at"`

	// Related entities
	RelatedRequest *Request `json:"relatedRequest,omitempty"`
}
