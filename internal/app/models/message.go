package models

import "time"

// MessageType discriminates text messages from document attachments
type MessageType string

const (
	MessageTypeText     MessageType = "TEXT"
	MessageTypeDocument MessageType = "DOCUMENT"
)

// Attachment holds document metadata for DOCUMENT messages
type Attachment struct {
	FileName     string `json:"fileName" db:"file_name"`         // generated name on disk
	OriginalName string `json:"originalName" db:"original_name"` // client-supplied name
	FileType     string `json:"fileType" db:"file_type"`         // MIME type
	FileSize     int64  `json:"fileSize" db:"file_size"`
	FileURL      string `json:"fileUrl" db:"file_url"`
}

// Message is a chat entry scoped to exactly one accepted request.
// Every message expires 24 hours after creation regardless of read state;
// the expiry is carried on the row and enforced by the retention reaper.
type Message struct {
	ID          int64       `json:"id" db:"id"`
	RequestID   int64       `json:"requestId" db:"request_id"`
	SenderID    int64       `json:"senderId" db:"sender_id"`
	ReceiverID  int64       `json:"receiverId" db:"receiver_id"`
	MessageType MessageType `json:"messageType" db:"message_type"`
	Content     string      `json:"content" db:"content"`
	Attachment  *Attachment `json:"attachment,omitempty"`
	Read        bool        `json:"read" db:"read"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	ExpiresAt   time.Time   `json:"expiresAt" db:"expires_at"`

	// Related entities
	Sender   *User `json:"sender,omitempty"`
	Receiver *User `json:"receiver,omitempty"`
}
