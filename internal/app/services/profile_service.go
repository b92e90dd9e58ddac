package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	"github.com/skillbridge/skillbridge/internal/app/models"
	"github.com/skillbridge/skillbridge/internal/app/models/dto"
	"github.com/skillbridge/skillbridge/internal/app/repositories"
	"github.com/skillbridge/skillbridge/internal/pkg/apperrors"
	"github.com/skillbridge/skillbridge/internal/pkg/cache"
	"github.com/skillbridge/skillbridge/internal/pkg/filestorage"
	"github.com/skillbridge/skillbridge/internal/pkg/helpers"
)

// allowedPictureTypes lists the accepted profile picture MIME types
var allowedPictureTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// locationColumns maps the public location type to its table column. Only
// values in this map ever reach SQL.
var locationColumns = map[string]string{
	"country": "country",
	"state":   "state",
	"city":    "city",
}

// profileStore is the slice of the profile repository ProfileService depends on
type profileStore interface {
	Upsert(ctx context.Context, profile *models.SkillProfile) error
	GetByUserID(ctx context.Context, userID int64) (*models.SkillProfile, error)
	Search(ctx context.Context, filter repositories.SearchFilter) ([]*models.SkillProfile, int64, error)
	DistinctLocations(ctx context.Context, column string) ([]string, error)
}

// ProfileService handles skill profile management and discovery
type ProfileService struct {
	profiles        profileStore
	storage         filestorage.FileStorage
	locations       *cache.LocationCache
	maxPictureBytes int64
	logger          zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	profiles profileStore,
	storage filestorage.FileStorage,
	locations *cache.LocationCache,
	maxPictureBytes int64,
	logger zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		profiles:        profiles,
		storage:         storage,
		locations:       locations,
		maxPictureBytes: maxPictureBytes,
		logger:          logger,
	}
}

// Upsert creates or wholesale-replaces the caller's skill profile. An
// omitted picture preserves the previously stored one.
func (s *ProfileService) Upsert(ctx context.Context, userID int64, req dto.UpsertSkillProfileRequest, picture *multipart.FileHeader) (*dto.SkillProfileResponse, error) {
	level := strings.ToUpper(strings.TrimSpace(req.ExperienceLevel))
	if !models.ValidExperienceLevel(level) {
		return nil, apperrors.NewValidationError("experienceLevel must be one of BEGINNER, INTERMEDIATE, ADVANCED, EXPERT, MASTER")
	}

	profile := &models.SkillProfile{
		UserID:          userID,
		Title:           strings.TrimSpace(req.Title),
		Category:        strings.TrimSpace(req.Category),
		Description:     req.Description,
		Skills:          trimAll(req.Skills),
		ExperienceLevel: models.ExperienceLevel(level),
		TeachingMethods: trimAll(req.TeachingMethods),
		Address:         strings.TrimSpace(req.Address),
		City:            strings.TrimSpace(req.City),
		State:           strings.TrimSpace(req.State),
		Country:         strings.TrimSpace(req.Country),
	}

	if len(profile.Skills) == 0 {
		return nil, apperrors.NewValidationError("at least one skill is required")
	}
	if len(profile.TeachingMethods) == 0 {
		return nil, apperrors.NewValidationError("at least one teaching method is required")
	}

	if url := strings.TrimSpace(req.PortfolioURL); url != "" {
		profile.PortfolioURL = &url
	}

	if picture != nil {
		stored, err := s.savePicture(picture)
		if err != nil {
			return nil, err
		}
		profile.ProfilePictureURL = &stored.URL
	}

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	// New locations should be discoverable immediately
	s.locations.Invalidate(ctx)

	s.logger.Info().Int64("userId", userID).Int64("profileId", profile.ID).Msg("Skill profile saved")

	resp := dto.ToSkillProfileResponse(profile)
	return &resp, nil
}

// GetOwn returns the caller's skill profile
func (s *ProfileService) GetOwn(ctx context.Context, userID int64) (*dto.SkillProfileResponse, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := dto.ToSkillProfileResponse(profile)
	return &resp, nil
}

// Search returns profiles matching the query, excluding the caller's own
func (s *ProfileService) Search(ctx context.Context, userID int64, query dto.SearchProfilesQuery) (*dto.SearchProfilesResponse, error) {
	level := strings.ToUpper(strings.TrimSpace(query.ExperienceLevel))
	if level != "" && !models.ValidExperienceLevel(level) {
		return nil, apperrors.NewValidationError("unknown experience level filter")
	}

	offset, limit := helpers.CalculateOffsetLimit(query.Page, query.Limit)

	profiles, total, err := s.profiles.Search(ctx, repositories.SearchFilter{
		Query:           strings.TrimSpace(query.Query),
		Country:         strings.TrimSpace(query.Country),
		State:           strings.TrimSpace(query.State),
		City:            strings.TrimSpace(query.City),
		Category:        strings.TrimSpace(query.Category),
		ExperienceLevel: level,
		TeachingMethod:  strings.TrimSpace(query.TeachingMethod),
		ExcludeUserID:   userID,
		Offset:          offset,
		Limit:           limit,
	})
	if err != nil {
		return nil, err
	}

	results := make([]dto.SkillProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		results = append(results, dto.ToSkillProfileResponse(profile))
	}

	return &dto.SearchProfilesResponse{
		Profiles:   results,
		Pagination: helpers.NewPaginationInfo(total, query.Page, query.Limit),
	}, nil
}

// Locations returns the distinct values for a location type, served from
// cache when possible
func (s *ProfileService) Locations(ctx context.Context, locationType string) ([]string, error) {
	column, ok := locationColumns[strings.ToLower(strings.TrimSpace(locationType))]
	if !ok {
		return nil, apperrors.NewValidationError("location type must be country, state or city")
	}

	if values, hit := s.locations.Get(ctx, column); hit {
		return values, nil
	}

	values, err := s.profiles.DistinctLocations(ctx, column)
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = []string{}
	}

	s.locations.Set(ctx, column, values)
	return values, nil
}

func (s *ProfileService) savePicture(picture *multipart.FileHeader) (*filestorage.StoredFile, error) {
	mimeType := picture.Header.Get("Content-Type")
	if !allowedPictureTypes[mimeType] {
		return nil, apperrors.NewUnsupportedMediaTypeError("profile picture must be JPEG, PNG or WebP")
	}

	if picture.Size > s.maxPictureBytes {
		return nil, apperrors.NewCustomError(apperrors.ErrFileTooLarge,
			fmt.Sprintf("profile picture exceeds the %d MB limit", s.maxPictureBytes/(1024*1024)))
	}

	stored, err := s.storage.SaveFile(picture, "profiles")
	if err != nil {
		return nil, fmt.Errorf("error storing profile picture: %w", err)
	}

	return stored, nil
}

// trimAll trims every entry and drops empties
func trimAll(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}
