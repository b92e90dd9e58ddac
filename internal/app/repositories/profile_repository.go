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
)

// ProfileRepository handles database operations for skill profiles
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `
	p.id, p.user_id, p.title, p.category, p.description, p.skills,
	p.experience_level, p.teaching_methods, p.address, p.city, p.state,
	p.country, p.portfolio_url, p.profile_picture_url, p.created_at, p.updated_at`

// Upsert creates or wholesale-replaces the user's profile. The unique
// constraint on user_id makes concurrent submissions converge on one row.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.SkillProfile) error {
	query := `
		INSERT INTO skill_profiles (
			user_id, title, category, description, skills, experience_level,
			teaching_methods, address, city, state, country, portfolio_url,
			profile_picture_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id) DO UPDATE SET
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			skills = EXCLUDED.skills,
			experience_level = EXCLUDED.experience_level,
			teaching_methods = EXCLUDED.teaching_methods,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			country = EXCLUDED.country,
			portfolio_url = EXCLUDED.portfolio_url,
			profile_picture_url = COALESCE(EXCLUDED.profile_picture_url, skill_profiles.profile_picture_url),
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		profile.UserID,
		profile.Title,
		profile.Category,
		profile.Description,
		profile.Skills,
		profile.ExperienceLevel,
		profile.TeachingMethods,
		profile.Address,
		profile.City,
		profile.State,
		profile.Country,
		profile.PortfolioURL,
		profile.ProfilePictureURL,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error upserting skill profile: %w", err)
	}

	return nil
}

// GetByUserID retrieves the profile owned by a user
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.SkillProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM skill_profiles p WHERE p.user_id = $1`, profileColumns)
	return r.scanOne(r.db.QueryRow(ctx, query, userID))
}

// GetByID retrieves a profile by its ID
func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*models.SkillProfile, error) {
	query := fmt.Sprintf(`SELECT %s FROM skill_profiles p WHERE p.id = $1`, profileColumns)
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// SearchFilter holds the structured filters for profile search
type SearchFilter struct {
	Query           string
	Country         string
	State           string
	City            string
	Category        string
	ExperienceLevel string
	TeachingMethod  string
	ExcludeUserID   int64
	Offset          uint64
	Limit           int
}

// Search returns profiles matching the filter, newest first, with the total
// match count for pagination. The caller's own profile is always excluded.
func (r *ProfileRepository) Search(ctx context.Context, filter SearchFilter) ([]*models.SkillProfile, int64, error) {
	base := squirrel.Select().
		From("skill_profiles p").
		Join("users u ON p.user_id = u.id").
		Where("p.user_id <> ?", filter.ExcludeUserID).
		PlaceholderFormat(squirrel.Dollar)

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		base = base.Where(
			"(p.title ILIKE ? OR p.description ILIKE ? OR EXISTS (SELECT 1 FROM unnest(p.skills) s WHERE s ILIKE ?))",
			pattern, pattern, pattern,
		)
	}
	if filter.Country != "" {
		base = base.Where("p.country ILIKE ?", filter.Country)
	}
	if filter.State != "" {
		base = base.Where("p.state ILIKE ?", filter.State)
	}
	if filter.City != "" {
		base = base.Where("p.city ILIKE ?", filter.City)
	}
	if filter.Category != "" {
		base = base.Where("p.category = ?", filter.Category)
	}
	if filter.ExperienceLevel != "" {
		base = base.Where("p.experience_level = ?", filter.ExperienceLevel)
	}
	if filter.TeachingMethod != "" {
		base = base.Where("? = ANY(p.teaching_methods)", filter.TeachingMethod)
	}

	// Total count first, then the page
	countSQL, countArgs, err := base.Column("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building count SQL: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting profiles: %w", err)
	}

	pageSQL, pageArgs, err := base.
		Columns(
			"p.id", "p.user_id", "p.title", "p.category", "p.description", "p.skills",
			"p.experience_level", "p.teaching_methods", "p.address", "p.city", "p.state",
			"p.country", "p.portfolio_url", "p.profile_picture_url", "p.created_at", "p.updated_at",
			"u.first_name", "u.last_name", "u.email",
		).
		OrderBy("p.created_at DESC").
		Offset(filter.Offset).
		Limit(uint64(filter.Limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building search SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing search: %w", err)
	}
	defer rows.Close()

	var profiles []*models.SkillProfile
	for rows.Next() {
		var profile models.SkillProfile
		var owner models.User

		err := rows.Scan(
			&profile.ID,
			&profile.UserID,
			&profile.Title,
			&profile.Category,
			&profile.Description,
			&profile.Skills,
			&profile.ExperienceLevel,
			&profile.TeachingMethods,
			&profile.Address,
			&profile.City,
			&profile.State,
			&profile.Country,
			&profile.PortfolioURL,
			&profile.ProfilePictureURL,
			&profile.CreatedAt,
			&profile.UpdatedAt,
			&owner.FirstName,
			&owner.LastName,
			&owner.Email,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning profile row: %w", err)
		}

		owner.ID = profile.UserID
		profile.Owner = &owner
		profiles = append(profiles, &profile)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating profile rows: %w", err)
	}

	return profiles, total, nil
}

// DistinctLocations returns the distinct non-empty values of a location
// column. The column name is validated by the service before it gets here.
func (r *ProfileRepository) DistinctLocations(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf(
		`SELECT DISTINCT %s FROM skill_profiles WHERE %s <> '' ORDER BY %s`,
		column, column, column,
	)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying distinct locations: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("error scanning location value: %w", err)
		}
		values = append(values, value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating location rows: %w", err)
	}

	return values, nil
}

func (r *ProfileRepository) scanOne(row pgx.Row) (*models.SkillProfile, error) {
	var profile models.SkillProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Title,
		&profile.Category,
		&profile.Description,
		&profile.Skills,
		&profile.ExperienceLevel,
		&profile.TeachingMethods,
		&profile.Address,
		&profile.City,
		&profile.State,
		&profile.Country,
		&profile.PortfolioURL,
		&profile.ProfilePictureURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error retrieving skill profile: %w", err)
	}

	return &profile, nil
}
