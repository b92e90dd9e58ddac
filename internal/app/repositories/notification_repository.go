package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillbridge/skillbridge/internal/app/models"
	"github.com/skillbridge/skillbridge/internal/pkg/apperrors"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a new notification
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (user_id, title, message, type, related_request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		notification.UserID,
		notification.Title,
		notification.Message,
		notification.Type,
		notification.RelatedRequestID,
	).Scan(&notification.ID, &notification.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}

	return nil
}

// ListByUser returns the newest notifications for a user, each populated with
// its related request summary when the reference is still live. Rows whose
// related request was deleted come back with a NULLed reference and are
// returned without a summary.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*models.Notification, error) {
	query := `
		SELECT
			n.id, n.user_id, n.title, n.message, n.type, n.read,
			n.related_request_id, n.created_at,
			r.id, r.student_id, r.mentor_id, r.skill_profile_id, r.message, r.status,
			r.created_at, r.updated_at,
			s.first_name, s.last_name, m.first_name, m.last_name, p.title
		FROM notifications n
		LEFT JOIN requests r ON n.related_request_id = r.id
		LEFT JOIN users s ON r.student_id = s.id
		LEFT JOIN users m ON r.mentor_id = m.id
		LEFT JOIN skill_profiles p ON r.skill_profile_id = p.id
		WHERE n.user_id = $1
		ORDER BY n.created_at DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		notification, err := scanNotificationRow(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning notification row: %w", err)
		}
		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}

	return notifications, nil
}

// GetByID retrieves a notification with its related request summary
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	query := `
		SELECT
			n.id, n.user_id, n.title, n.message, n.type, n.read,
			n.related_request_id, n.created_at,
			r.id, r.student_id, r.mentor_id, r.skill_profile_id, r.message, r.status,
			r.created_at, r.updated_at,
			s.first_name, s.last_name, m.first_name, m.last_name, p.title
		FROM notifications n
		LEFT JOIN requests r ON n.related_request_id = r.id
		LEFT JOIN users s ON r.student_id = s.id
		LEFT JOIN users m ON r.mentor_id = m.id
		LEFT JOIN skill_profiles p ON r.skill_profile_id = p.id
		WHERE n.id = $1
	`

	notification, err := scanNotificationRow(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("error retrieving notification: %w", err)
	}

	return notification, nil
}

// MarkRead sets read = true. Marking an already-read notification is a no-op.
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error marking notification read: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}

	return nil
}

// Delete removes a notification
func (r *NotificationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting notification: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}

	return nil
}

// scanNotificationRow scans one joined notification row. All request columns
// are scanned as nullable because the related request may be gone.
func scanNotificationRow(row pgx.Row) (*models.Notification, error) {
	var notification models.Notification
	var reqID, studentID, mentorID, profileID *int64
	var reqMessage, reqStatus *string
	var reqCreatedAt, reqUpdatedAt *time.Time
	var studentFirst, studentLast, mentorFirst, mentorLast, profileTitle *string

	err := row.Scan(
		&notification.ID,
		&notification.UserID,
		&notification.Title,
		&notification.Message,
		&notification.Type,
		&notification.Read,
		&notification.RelatedRequestID,
		&notification.CreatedAt,
		&reqID,
		&studentID,
		&mentorID,
		&profileID,
		&reqMessage,
		&reqStatus,
		&reqCreatedAt,
		&reqUpdatedAt,
		&studentFirst,
		&studentLast,
		&mentorFirst,
		&mentorLast,
		&profileTitle,
	)
	if err != nil {
		return nil, err
	}

	if reqID != nil && studentID != nil && mentorID != nil {
		request := &models.Request{
			ID:        *reqID,
			StudentID: *studentID,
			MentorID:  *mentorID,
		}
		if profileID != nil {
			request.SkillProfileID = *profileID
		}
		if reqMessage != nil {
			request.Message = *reqMessage
		}
		if reqStatus != nil {
			request.Status = models.RequestStatus(*reqStatus)
		}
		if reqCreatedAt != nil {
			request.CreatedAt = *reqCreatedAt
		}
		if reqUpdatedAt != nil {
			request.UpdatedAt = *reqUpdatedAt
		}
		if studentFirst != nil && studentLast != nil {
			request.Student = &models.User{ID: *studentID, FirstName: *studentFirst, LastName: *studentLast}
		}
		if mentorFirst != nil && mentorLast != nil {
			request.Mentor = &models.User{ID: *mentorID, FirstName: *mentorFirst, LastName: *mentorLast}
		}
		if profileTitle != nil && profileID != nil {
			request.SkillProfile = &models.SkillProfile{ID: *profileID, UserID: *mentorID, Title: *profileTitle}
		}
		notification.RelatedRequest = request
	}

	return &notification, nil
}
