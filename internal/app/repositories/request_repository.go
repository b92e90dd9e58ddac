package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/skillbridge/skillbridge/internal/app/models"
	"github.com/skillbridge/skillbridge/internal/pkg/apperrors"
	"github.com/skillbridge/skillbridge/internal/pkg/dberrors"
)

// requests_pending_unique is the partial unique index on
// (student_id, mentor_id, skill_profile_id) WHERE status = 'PENDING'.
// It closes the duplicate-pending race at the store level.
const pendingUniqueConstraint = "requests_pending_unique"

// RequestRepository handles database operations for mentorship requests
type RequestRepository struct {
	db *pgxpool.Pool
}

// NewRequestRepository creates a new RequestRepository
func NewRequestRepository(db *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create inserts a new pending request. A concurrent duplicate for the same
// (student, mentor, skill profile) triple surfaces as ErrDuplicatePendingExists.
func (r *RequestRepository) Create(ctx context.Context, request *models.Request) error {
	query := `
		INSERT INTO requests (student_id, mentor_id, skill_profile_id, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		request.StudentID,
		request.MentorID,
		request.SkillProfileID,
		request.Message,
		models.RequestStatusPending,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, pendingUniqueConstraint) {
			return apperrors.ErrDuplicatePendingExists
		}
		return fmt.Errorf("error creating request: %w", err)
	}

	request.Status = models.RequestStatusPending
	return nil
}

const requestJoinColumns = `
	r.id, r.student_id, r.mentor_id, r.skill_profile_id, r.message, r.status,
	r.created_at, r.updated_at,
	s.first_name, s.last_name, m.first_name, m.last_name, p.title`

// GetByID retrieves a request populated with party names and profile title
func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*models.Request, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM requests r
		JOIN users s ON r.student_id = s.id
		JOIN users m ON r.mentor_id = m.id
		LEFT JOIN skill_profiles p ON r.skill_profile_id = p.id
		WHERE r.id = $1
	`, requestJoinColumns)

	request, err := scanRequestRow(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("error retrieving request: %w", err)
	}

	return request, nil
}

// ListByUser returns requests the user is a party to, newest first.
// role restricts the side ("student" or "mentor"); status filters by state.
func (r *RequestRepository) ListByUser(ctx context.Context, userID int64, status, role string) ([]*models.Request, error) {
	builder := squirrel.Select(
		"r.id", "r.student_id", "r.mentor_id", "r.skill_profile_id", "r.message", "r.status",
		"r.created_at", "r.updated_at",
		"s.first_name", "s.last_name", "m.first_name", "m.last_name", "p.title",
	).
		From("requests r").
		Join("users s ON r.student_id = s.id").
		Join("users m ON r.mentor_id = m.id").
		LeftJoin("skill_profiles p ON r.skill_profile_id = p.id").
		OrderBy("r.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	switch role {
	case "student":
		builder = builder.Where("r.student_id = ?", userID)
	case "mentor":
		builder = builder.Where("r.mentor_id = ?", userID)
	default:
		builder = builder.Where("(r.student_id = ? OR r.mentor_id = ?)", userID, userID)
	}

	if status != "" {
		builder = builder.Where("r.status = ?", status)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building list SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.Request
	for rows.Next() {
		request, err := scanRequestRow(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning request row: %w", err)
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating request rows: %w", err)
	}

	return requests, nil
}

// UpdateStatus sets the status of a request
func (r *RequestRepository) UpdateStatus(ctx context.Context, id int64, status models.RequestStatus) error {
	result, err := r.db.Exec(ctx,
		`UPDATE requests SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("error updating request status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}

	return nil
}

// Delete removes a request. Messages cascade with it; notifications keep a
// NULLed reference (FK ON DELETE SET NULL).
func (r *RequestRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting request: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}

	return nil
}

// scanRequestRow scans one joined request row and attaches the party summaries
func scanRequestRow(row pgx.Row) (*models.Request, error) {
	var request models.Request
	var student, mentor models.User
	var profileTitle *string

	err := row.Scan(
		&request.ID,
		&request.StudentID,
		&request.MentorID,
		&request.SkillProfileID,
		&request.Message,
		&request.Status,
		&request.CreatedAt,
		&request.UpdatedAt,
		&student.FirstName,
		&student.LastName,
		&mentor.FirstName,
		&mentor.LastName,
		&profileTitle,
	)
	if err != nil {
		return nil, err
	}

	student.ID = request.StudentID
	mentor.ID = request.MentorID
	request.Student = &student
	request.Mentor = &mentor

	if profileTitle != nil {
		request.SkillProfile = &models.SkillProfile{
			ID:     request.SkillProfileID,
			UserID: request.MentorID,
			Title:  *profileTitle,
		}
	}

	return &request, nil
}
