package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillbridge/skillbridge/internal/app/models"
)

// MessageRepository handles database operations for chat messages.
// Every read path filters out expired rows so a message past its TTL is
// invisible even before the reaper physically removes it.
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create inserts a new message with its expiry stamp
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) error {
	query := `
		INSERT INTO messages (
			request_id, sender_id, receiver_id, message_type, content,
			file_name, original_name, file_type, file_size, file_url, expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	var fileName, originalName, fileType, fileURL *string
	var fileSize *int64
	if message.Attachment != nil {
		fileName = &message.Attachment.FileName
		originalName = &message.Attachment.OriginalName
		fileType = &message.Attachment.FileType
		fileSize = &message.Attachment.FileSize
		fileURL = &message.Attachment.FileURL
	}

	err := r.db.QueryRow(ctx, query,
		message.RequestID,
		message.SenderID,
		message.ReceiverID,
		message.MessageType,
		message.Content,
		fileName,
		originalName,
		fileType,
		fileSize,
		fileURL,
		message.ExpiresAt,
	).Scan(&message.ID, &message.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating message: %w", err)
	}

	return nil
}

// ListByRequest returns all live messages for a request in ascending
// chronological order, populated with party names.
func (r *MessageRepository) ListByRequest(ctx context.Context, requestID int64) ([]*models.Message, error) {
	query := `
		SELECT
			msg.id, msg.request_id, msg.sender_id, msg.receiver_id, msg.message_type,
			msg.content, msg.file_name, msg.original_name, msg.file_type, msg.file_size,
			msg.file_url, msg.read, msg.created_at, msg.expires_at,
			snd.first_name, snd.last_name, rcv.first_name, rcv.last_name
		FROM messages msg
		JOIN users snd ON msg.sender_id = snd.id
		JOIN users rcv ON msg.receiver_id = rcv.id
		WHERE msg.request_id = $1 AND msg.expires_at > NOW()
		ORDER BY msg.created_at ASC
	`

	rows, err := r.db.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		message, err := scanMessageRow(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}

	return messages, nil
}

// MarkThreadRead flips read = true on every live message in the thread
// addressed to the given receiver. Calling it twice is a no-op.
func (r *MessageRepository) MarkThreadRead(ctx context.Context, requestID, receiverID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE messages SET read = TRUE
		 WHERE request_id = $1 AND receiver_id = $2 AND read = FALSE AND expires_at > NOW()`,
		requestID, receiverID,
	)
	if err != nil {
		return fmt.Errorf("error marking thread read: %w", err)
	}
	return nil
}

// DeleteExpired removes every message past its TTL and returns the generated
// attachment filenames of the deleted rows so the caller can reap the blobs.
func (r *MessageRepository) DeleteExpired(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`DELETE FROM messages WHERE expires_at <= NOW() RETURNING file_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("error deleting expired messages: %w", err)
	}
	defer rows.Close()

	var fileNames []string
	for rows.Next() {
		var fileName *string
		if err := rows.Scan(&fileName); err != nil {
			return nil, fmt.Errorf("error scanning expired message row: %w", err)
		}
		if fileName != nil && *fileName != "" {
			fileNames = append(fileNames, *fileName)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expired message rows: %w", err)
	}

	return fileNames, nil
}

// scanMessageRow scans one joined message row
func scanMessageRow(row pgx.Row) (*models.Message, error) {
	var message models.Message
	var sender, receiver models.User
	var fileName, originalName, fileType, fileURL *string
	var fileSize *int64

	err := row.Scan(
		&message.ID,
		&message.RequestID,
		&message.SenderID,
		&message.ReceiverID,
		&message.MessageType,
		&message.Content,
		&fileName,
		&originalName,
		&fileType,
		&fileSize,
		&fileURL,
		&message.Read,
		&message.CreatedAt,
		&message.ExpiresAt,
		&sender.FirstName,
		&sender.LastName,
		&receiver.FirstName,
		&receiver.LastName,
	)
	if err != nil {
		return nil, err
	}

	if fileName != nil {
		message.Attachment = &models.Attachment{
			FileName: *fileName,
		}
		if originalName != nil {
			message.Attachment.OriginalName = *originalName
		}
		if fileType != nil {
			message.Attachment.FileType = *fileType
		}
		if fileSize != nil {
			message.Attachment.FileSize = *fileSize
		}
		if fileURL != nil {
			message.Attachment.FileURL = *fileURL
		}
	}

	sender.ID = message.SenderID
	receiver.ID = message.ReceiverID
	message.Sender = &sender
	message.Receiver = &receiver

	return &message, nil
}
