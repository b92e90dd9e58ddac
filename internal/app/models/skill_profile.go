package models

import "time"

// ExperienceLevel represents the self-declared teaching experience level
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "BEGINNER"
	ExperienceIntermediate ExperienceLevel = "INTERMEDIATE"
	ExperienceAdvanced     ExperienceLevel = "ADVANCED"
	ExperienceExpert       ExperienceLevel = "EXPERT"
	ExperienceMaster       ExperienceLevel = "MASTER"
)

// ValidExperienceLevel reports whether the value is a known level
func ValidExperienceLevel(level string) bool {
	switch ExperienceLevel(level) {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced, ExperienceExpert, ExperienceMaster:
		return true
	}
	return false
}

// SkillProfile describes one user's public teaching listing.
// At most one profile exists per user (unique user_id, create-or-replace).
type SkillProfile struct {
	ID                int64           `json:"id" db:"id"`
	UserID            int64           `json:"userId" db:"user_id"`
	Title             string          `json:"title" db:"title"`
	Category          string          `json:"category" db:"category"`
	Description       string          `json:"description" db:"description"`
	Skills            []string        `json:"skills" db:"skills"`
	ExperienceLevel   ExperienceLevel `json:"experienceLevel" db:"experience_level"`
	TeachingMethods   []string        `json:"teachingMethods" db:"teaching_methods"`
	Address           string          `json:"address" db:"address"`
	City              string          `json:"city" db:"city"`
	State             string          `json:"state" db:"state"`
	Country           string          `json:"country" db:"country"`
	PortfolioURL      *string         `json:"portfolioUrl,omitempty" db:"portfolio_url"`
	ProfilePictureURL *string         `json:"profilePictureUrl,omitempty" db:"profile_picture_url"`
	CreatedAt         time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time       `json:"updatedAt" db:"updated_at"`

	// Related entities
	Owner *User `json:"owner,omitempty"`
}
