package services

import (
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/skillbridge/skillbridge/internal/app/models"
	"github.com/skillbridge/skillbridge/internal/app/models/dto"
	"github.com/skillbridge/skillbridge/internal/pkg/apperrors"
	"github.com/skillbridge/skillbridge/internal/pkg/filestorage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageStore struct {
	messages  []*models.Message
	createErr error
	readCalls [][2]int64
}

func (f *fakeMessageStore) Create(_ context.Context, message *models.Message) error {
	if f.createErr != nil {
		return f.createErr
	}
	message.ID = int64(len(f.messages) + 1)
	message.CreatedAt = time.Now()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeMessageStore) ListByRequest(_ context.Context, requestID int64) ([]*models.Message, error) {
	var result []*models.Message
	for _, message := range f.messages {
		if message.RequestID == requestID {
			result = append(result, message)
		}
	}
	return result, nil
}

func (f *fakeMessageStore) MarkThreadRead(_ context.Context, requestID, receiverID int64) error {
	f.readCalls = append(f.readCalls, [2]int64{requestID, receiverID})
	for _, message := range f.messages {
		if message.RequestID == requestID && message.ReceiverID == receiverID {
			message.Read = true
		}
	}
	return nil
}

type fakeStorage struct {
	saved   []*filestorage.StoredFile
	deleted []string
	saveErr error
}

func (f *fakeStorage) SaveFile(fileHeader *multipart.FileHeader, subPath string) (*filestorage.StoredFile, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	stored := &filestorage.StoredFile{
		FileName:     "generated.bin",
		OriginalName: fileHeader.Filename,
		RelativePath: subPath + "/generated.bin",
		URL:          "http://localhost:8080/uploads/" + subPath + "/generated.bin",
		Size:         fileHeader.Size,
		MimeType:     fileHeader.Header.Get("Content-Type"),
	}
	f.saved = append(f.saved, stored)
	return stored, nil
}

func (f *fakeStorage) DeleteFile(relativePath string) error {
	f.deleted = append(f.deleted, relativePath)
	return nil
}

func documentHeader(name, mimeType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": []string{mimeType}},
	}
}

func newMessageFixture() (*MessageService, *fakeMessageStore, *fakeStorage, *fakeRequestStore) {
	messages := &fakeMessageStore{}
	storage := &fakeStorage{}
	requests := newFakeRequestStore()

	student := &models.User{ID: 1, FirstName: "Ada", LastName: "Student"}
	mentor := &models.User{ID: 2, FirstName: "Grace", LastName: "Mentor"}

	requests.requests[1] = &models.Request{
		ID: 1, StudentID: 1, MentorID: 2, SkillProfileID: 10,
		Status:  models.RequestStatusAccepted,
		Student: student, Mentor: mentor,
	}
	requests.requests[2] = &models.Request{
		ID: 2, StudentID: 1, MentorID: 2, SkillProfileID: 10,
		Status:  models.RequestStatusPending,
		Student: student, Mentor: mentor,
	}

	service := NewMessageService(messages, requests, storage, 10*1024*1024, 24*time.Hour, zerolog.Nop())
	return service, messages, storage, requests
}

func TestMessageSend(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown request", func(t *testing.T) {
		service, _, _, _ := newMessageFixture()

		_, err := service.Send(ctx, 1, dto.SendMessageRequest{RequestID: 404, Content: "hi"}, nil)

		assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
	})

	t.Run("non-party may not chat", func(t *testing.T) {
		service, _, _, _ := newMessageFixture()

		_, err := service.Send(ctx, 42, dto.SendMessageRequest{RequestID: 1, Content: "hi"}, nil)

		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("chat requires an accepted request", func(t *testing.T) {
		service, _, _, _ := newMessageFixture()

		_, err := service.Send(ctx, 1, dto.SendMessageRequest{RequestID: 2, Content: "hi"}, nil)

		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("empty message rejected", func(t *testing.T) {
		service, _, _, _ := newMessageFixture()

		_, err := service.Send(ctx, 1, dto.SendMessageRequest{RequestID: 1, Content: "   "}, nil)

		assert.ErrorIs(t, err, apperrors.ErrMessageEmpty)
	})

	t.Run("text message addresses the other party and carries an expiry", func(t *testing.T) {
		service, messages, _, _ := newMessageFixture()

		result, err := service.Send(ctx, 1, dto.SendMessageRequest{RequestID: 1, Content: "hello"}, nil)

		require.NoError(t, err)
		assert.Equal(t, string(models.MessageTypeText), result.MessageType)
		assert.Equal(t, int64(2), result.ReceiverID)
		assert.Equal(t, "Ada Student", result.SenderName)
		assert.Equal(t, "Grace Mentor", result.ReceiverName)
		assert.WithinDuration(t, time.Now().Add(24*time.Hour), result.ExpiresAt, time.Minute)
		require.Len(t, messages.messages, 1)
	})

	t.Run("mentor replies address the student", func(t *testing.T) {
		service, _, _, _ := newMessageFixture()

		result, err := service.Send(ctx, 2, dto.SendMessageRequest{RequestID: 1, Content: "hello"}, nil)

		require.NoError(t, err)
		assert.Equal(t, int64(1), result.ReceiverID)
		assert.Equal(t, "Grace Mentor", result.SenderName)
		assert.Equal(t, "Ada Student", result.ReceiverName)
	})

	t.Run("disallowed attachment type", func(t *testing.T) {
		service, _, storage, _ := newMessageFixture()

		_, err := service.Send(ctx, 1, dto.SendMessageRequest{RequestID: 1},
			documentHeader("virus.exe", "application/x-msdownload", 100))

		assert.ErrorIs(t, err, apperrors.ErrUnsupportedMediaType)
		assert.Empty(t, storage.saved)
	})

	t.Run("oversized attachment rejected before storing", func(t *testing.T) {
		service, _, storage, _ := newMessageFixture()

		_, err := service.Send(ctx, 1, dto.SendMessageRequest{RequestID: 1},
			documentHeader("big.pdf", "application/pdf", 11*1024*1024))

		assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
		assert.Empty(t, storage.saved)
	})

	t.Run("document message stores the attachment", func(t *testing.T) {
		service, _, storage, _ := newMessageFixture()

		result, err := service.Send(ctx, 1, dto.SendMessageRequest{RequestID: 1},
			documentHeader("notes.pdf", "application/pdf", 1024))

		require.NoError(t, err)
		assert.Equal(t, string(models.MessageTypeDocument), result.MessageType)
		require.NotNil(t, result.Attachment)
		assert.Equal(t, "notes.pdf", result.Attachment.OriginalName)
		assert.Equal(t, "application/pdf", result.Attachment.FileType)
		require.Len(t, storage.saved, 1)
	})

	t.Run("failed insert removes the stored blob", func(t *testing.T) {
		service, messages, storage, _ := newMessageFixture()
		messages.createErr = errors.New("insert failed")

		_, err := service.Send(ctx, 1, dto.SendMessageRequest{RequestID: 1},
			documentHeader("notes.pdf", "application/pdf", 1024))

		require.Error(t, err)
		require.Len(t, storage.deleted, 1)
		assert.Equal(t, "messages/generated.bin", storage.deleted[0])
	})
}

func TestMessageHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("non-party may not read", func(t *testing.T) {
		service, _, _, _ := newMessageFixture()

		_, err := service.History(ctx, 1, 42)

		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("fetching marks the thread read for the caller", func(t *testing.T) {
		service, messages, _, _ := newMessageFixture()
		_, err := service.Send(ctx, 1, dto.SendMessageRequest{RequestID: 1, Content: "hello"}, nil)
		require.NoError(t, err)

		result, err := service.History(ctx, 1, 2)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.True(t, result[0].Read)
		require.Len(t, messages.readCalls, 1)
		assert.Equal(t, [2]int64{1, 2}, messages.readCalls[0])
	})

	t.Run("expired messages never appear", func(t *testing.T) {
		service, messages, _, _ := newMessageFixture()
		messages.messages = []*models.Message{
			{
				ID: 1, RequestID: 1, SenderID: 1, ReceiverID: 2,
				MessageType: models.MessageTypeText, Content: "still here",
				ExpiresAt: time.Now().Add(time.Hour),
			},
			{
				ID: 2, RequestID: 1, SenderID: 1, ReceiverID: 2,
				MessageType: models.MessageTypeText, Content: "gone",
				ExpiresAt: time.Now().Add(-time.Second),
			},
		}

		result, err := service.History(ctx, 1, 2)

		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "still here", result[0].Content)
	})
}
