package dto

import "github.com/skillbridge/skillbridge/internal/app/models"

// UpsertSkillProfileRequest represents the create-or-replace payload for the
// caller's skill profile. Submitted as JSON or as multipart form fields next
// to an optional profilePicture file.
type UpsertSkillProfileRequest struct {
	Title           string   `json:"title" form:"title" binding:"required,max=200"`
	Category        string   `json:"category" form:"category" binding:"required,max=100"`
	Description     string   `json:"description" form:"description" binding:"required"`
	Skills          []string `json:"skills" form:"skills" binding:"required,min=1"`
	ExperienceLevel string   `json:"experienceLevel" form:"experienceLevel" binding:"required"`
	TeachingMethods []string `json:"teachingMethods" form:"teachingMethods" binding:"required,min=1"`
	Address         string   `json:"address" form:"address"`
	City            string   `json:"city" form:"city"`
	State           string   `json:"state" form:"state"`
	Country         string   `json:"country" form:"country"`
	PortfolioURL    string   `json:"portfolioUrl" form:"portfolioUrl" binding:"omitempty,url"`
}

// SearchProfilesQuery holds the structured search filters. Page and Limit are
// parsed separately so malformed values fall back to defaults instead of
// failing the request.
type SearchProfilesQuery struct {
	Query           string `form:"query"`
	Country         string `form:"country"`
	State           string `form:"state"`
	City            string `form:"city"`
	Category        string `form:"category"`
	ExperienceLevel string `form:"experienceLevel"`
	TeachingMethod  string `form:"teachingMethod"`
	Page            int    `form:"-"`
	Limit           int    `form:"-"`
}

// SkillProfileResponse represents a skill profile in API responses
type SkillProfileResponse struct {
	ID                int64    `json:"id"`
	UserID            int64    `json:"userId"`
	OwnerName         string   `json:"ownerName,omitempty"`
	Title             string   `json:"title"`
	Category          string   `json:"category"`
	Description       string   `json:"description"`
	Skills            []string `json:"skills"`
	ExperienceLevel   string   `json:"experienceLevel"`
	TeachingMethods   []string `json:"teachingMethods"`
	Address           string   `json:"address,omitempty"`
	City              string   `json:"city,omitempty"`
	State             string   `json:"state,omitempty"`
	Country           string   `json:"country,omitempty"`
	PortfolioURL      string   `json:"portfolioUrl,omitempty"`
	ProfilePictureURL string   `json:"profilePictureUrl,omitempty"`
}

// SearchProfilesResponse is a paginated search result
type SearchProfilesResponse struct {
	Profiles   []SkillProfileResponse `json:"profiles"`
	Pagination PaginationInfo         `json:"pagination"`
}

// ToSkillProfileResponse converts a model to its response shape
func ToSkillProfileResponse(profile *models.SkillProfile) SkillProfileResponse {
	if profile == nil {
		return SkillProfileResponse{}
	}

	resp := SkillProfileResponse{
		ID:              profile.ID,
		UserID:          profile.UserID,
		Title:           profile.Title,
		Category:        profile.Category,
		Description:     profile.Description,
		Skills:          profile.Skills,
		ExperienceLevel: string(profile.ExperienceLevel),
		TeachingMethods: profile.TeachingMethods,
		Address:         profile.Address,
		City:            profile.City,
		State:           profile.State,
		Country:         profile.Country,
	}

	if profile.PortfolioURL != nil {
		resp.PortfolioURL = *profile.PortfolioURL
	}
	if profile.ProfilePictureURL != nil {
		resp.ProfilePictureURL = *profile.ProfilePictureURL
	}
	if profile.Owner != nil {
		resp.OwnerName = profile.Owner.FullName()
	}

	return resp
}
