package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/skillbridge/skillbridge/internal/app/models"
	"github.com/skillbridge/skillbridge/internal/app/models/dto"
	"github.com/skillbridge/skillbridge/internal/pkg/apperrors"
	"github.com/skillbridge/skillbridge/internal/pkg/filestorage"
)

// allowedDocumentTypes lists the accepted chat attachment MIME types
var allowedDocumentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/vnd.ms-powerpoint":                                     true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"text/plain":      true,
	"text/csv":        true,
	"application/zip": true,
}

// messageStore is the slice of the message repository MessageService depends on
type messageStore interface {
	Create(ctx context.Context, message *models.Message) error
	ListByRequest(ctx context.Context, requestID int64) ([]*models.Message, error)
	MarkThreadRead(ctx context.Context, requestID, receiverID int64) error
}

// messageRequestStore resolves the request a message belongs to
type messageRequestStore interface {
	GetByID(ctx context.Context, id int64) (*models.Request, error)
}

// MessageService handles request-scoped chat with expiring messages
type MessageService struct {
	messages         messageStore
	requests         messageRequestStore
	storage          filestorage.FileStorage
	maxDocumentBytes int64
	messageTTL       time.Duration
	logger           zerolog.Logger
}

// NewMessageService creates a new MessageService
func NewMessageService(
	messages messageStore,
	requests messageRequestStore,
	storage filestorage.FileStorage,
	maxDocumentBytes int64,
	messageTTL time.Duration,
	logger zerolog.Logger,
) *MessageService {
	return &MessageService{
		messages:         messages,
		requests:         requests,
		storage:          storage,
		maxDocumentBytes: maxDocumentBytes,
		messageTTL:       messageTTL,
		logger:           logger,
	}
}

// Send posts a message into the chat of an accepted request. The caller
// must be a party; a document attachment may accompany or replace the text.
func (s *MessageService) Send(ctx context.Context, senderID int64, req dto.SendMessageRequest, document *multipart.FileHeader) (*dto.MessageResponse, error) {
	request, err := s.requests.GetByID(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}

	if !request.IsParty(senderID) {
		return nil, apperrors.NewForbiddenError("you are not a party to this request")
	}
	if request.Status != models.RequestStatusAccepted {
		return nil, apperrors.NewForbiddenError("chat is only available once the request is accepted")
	}

	content := strings.TrimSpace(req.Content)
	if content == "" && document == nil {
		return nil, apperrors.ErrMessageEmpty
	}

	message := &models.Message{
		RequestID:   request.ID,
		SenderID:    senderID,
		ReceiverID:  request.OtherParty(senderID),
		MessageType: models.MessageTypeText,
		Content:     content,
		ExpiresAt:   time.Now().Add(s.messageTTL),
	}

	var stored *filestorage.StoredFile
	if document != nil {
		stored, err = s.saveDocument(document)
		if err != nil {
			return nil, err
		}

		message.MessageType = models.MessageTypeDocument
		message.Attachment = &models.Attachment{
			FileName:     stored.FileName,
			OriginalName: stored.OriginalName,
			FileType:     stored.MimeType,
			FileSize:     stored.Size,
			FileURL:      stored.URL,
		}
	}

	if err := s.messages.Create(ctx, message); err != nil {
		if stored != nil {
			// The blob must not outlive the failed insert
			if delErr := s.storage.DeleteFile(stored.RelativePath); delErr != nil {
				s.logger.Warn().Err(delErr).Str("file", stored.RelativePath).Msg("Failed to remove orphaned attachment")
			}
		}
		return nil, err
	}

	s.logger.Debug().
		Int64("requestId", request.ID).
		Int64("messageId", message.ID).
		Str("type", string(message.MessageType)).
		Msg("Message sent")

	// The request row already carries both parties' names
	if request.StudentID == senderID {
		message.Sender, message.Receiver = request.Student, request.Mentor
	} else {
		message.Sender, message.Receiver = request.Mentor, request.Student
	}

	resp := dto.ToMessageResponse(message)
	return &resp, nil
}

// History returns the live messages of a request in chronological order.
// Fetching the thread marks everything addressed to the caller as read.
func (s *MessageService) History(ctx context.Context, requestID, userID int64) ([]dto.MessageResponse, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if !request.IsParty(userID) {
		return nil, apperrors.NewForbiddenError("you are not a party to this request")
	}

	// Mark before listing so the response reflects the read state
	if err := s.messages.MarkThreadRead(ctx, requestID, userID); err != nil {
		s.logger.Warn().Err(err).Int64("requestId", requestID).Msg("Failed to mark thread read")
	}

	messages, err := s.messages.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	// The expiry boundary holds here as well as in the store
	now := time.Now()
	results := make([]dto.MessageResponse, 0, len(messages))
	for _, message := range messages {
		if !message.ExpiresAt.After(now) {
			continue
		}
		results = append(results, dto.ToMessageResponse(message))
	}

	return results, nil
}

func (s *MessageService) saveDocument(document *multipart.FileHeader) (*filestorage.StoredFile, error) {
	mimeType := document.Header.Get("Content-Type")
	if !allowedDocumentTypes[mimeType] {
		return nil, apperrors.NewUnsupportedMediaTypeError(
			fmt.Sprintf("attachment type %q is not allowed", mimeType))
	}

	if document.Size > s.maxDocumentBytes {
		return nil, apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			fmt.Sprintf("attachment exceeds the %d MB limit", s.maxDocumentBytes/(1024*1024)))
	}

	stored, err := s.storage.SaveFile(document, "messages")
	if err != nil {
		return nil, fmt.Errorf("error storing attachment: %w", err)
	}

	return stored, nil
}

// AttachmentPath returns the storage-relative path of a chat attachment
func AttachmentPath(fileName string) string {
	return path.Join("messages", fileName)
}
