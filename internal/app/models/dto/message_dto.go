package dto

import (
	"time"

	"github.com/skillbridge/skillbridge/internal/app/models"
)

// SendMessageRequest represents the payload to send a chat message.
// Content may be empty when a document attachment accompanies the request.
type SendMessageRequest struct {
	RequestID int64  `json:"requestId" form:"requestId" binding:"required,min=1"`
	Content   string `json:"content" form:"content" binding:"max=5000"`
}

// AttachmentResponse represents document metadata in API responses
type AttachmentResponse struct {
	FileName     string `json:"fileName"`
	OriginalName string `json:"originalName"`
	FileType     string `json:"fileType"`
	FileSize     int64  `json:"fileSize"`
	FileURL      string `json:"fileUrl"`
}

// MessageResponse represents a chat message populated with party names
type MessageResponse struct {
	ID           int64               `json:"id"`
	RequestID    int64               `json:"requestId"`
	SenderID     int64               `json:"senderId"`
	SenderName   string              `json:"senderName,omitempty"`
	ReceiverID   int64               `json:"receiverId"`
	ReceiverName string              `json:"receiverName,omitempty"`
	MessageType  string              `json:"messageType"`
	Content      string              `json:"content,omitempty"`
	Attachment   *AttachmentResponse `json:"attachment,omitempty"`
	Read         bool                `json:"read"`
	CreatedAt    time.Time           `json:"createdAt"`
	ExpiresAt    time.Time           `json:"expiresAt"`
}

// ToMessageResponse converts a message model to its response shape
func ToMessageResponse(message *models.Message) MessageResponse {
	if message == nil {
		return MessageResponse{}
	}

	resp := MessageResponse{
		ID:          message.ID,
		RequestID:   message.RequestID,
		SenderID:    message.SenderID,
		ReceiverID:  message.ReceiverID,
		MessageType: string(message.MessageType),
		Content:     message.Content,
		Read:        message.Read,
		CreatedAt:   message.CreatedAt,
		ExpiresAt:   message.ExpiresAt,
	}

	if message.Attachment != nil {
		resp.Attachment = &AttachmentResponse{
			FileName:     message.Attachment.FileName,
			OriginalName: message.Attachment.OriginalName,
			FileType:     message.Attachment.FileType,
			FileSize:     message.Attachment.FileSize,
			FileURL:      message.Attachment.FileURL,
		}
	}

	if message.Sender != nil {
		resp.SenderName = message.Sender.FullName()
	}
	if message.Receiver != nil {
		resp.ReceiverName = message.Receiver.FullName()
	}

	return resp
}
