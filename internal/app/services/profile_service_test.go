package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/skillbridge/skillbridge/internal/app/models"
	"github.com/skillbridge/skillbridge/internal/app/models/dto"
	"github.com/skillbridge/skillbridge/internal/app/repositories"
	"github.com/skillbridge/skillbridge/internal/pkg/apperrors"
	"github.com/skillbridge/skillbridge/internal/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileStore struct {
	byUserID   map[int64]*models.SkillProfile
	lastFilter repositories.SearchFilter
	searchHits []*models.SkillProfile
	total      int64
	locations  map[string][]string
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{
		byUserID:  make(map[int64]*models.SkillProfile),
		locations: make(map[string][]string),
	}
}

func (f *fakeProfileStore) Upsert(_ context.Context, profile *models.SkillProfile) error {
	if existing, ok := f.byUserID[profile.UserID]; ok {
		profile.ID = existing.ID
		if profile.ProfilePictureURL == nil {
			profile.ProfilePictureURL = existing.ProfilePictureURL
		}
	} else {
		profile.ID = int64(len(f.byUserID) + 1)
	}
	f.byUserID[profile.UserID] = profile
	return nil
}

func (f *fakeProfileStore) GetByUserID(_ context.Context, userID int64) (*models.SkillProfile, error) {
	profile, ok := f.byUserID[userID]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	return profile, nil
}

func (f *fakeProfileStore) Search(_ context.Context, filter repositories.SearchFilter) ([]*models.SkillProfile, int64, error) {
	f.lastFilter = filter
	return f.searchHits, f.total, nil
}

func (f *fakeProfileStore) DistinctLocations(_ context.Context, column string) ([]string, error) {
	return f.locations[column], nil
}

func newProfileFixture() (*ProfileService, *fakeProfileStore, *fakeStorage) {
	store := newFakeProfileStore()
	storage := &fakeStorage{}
	locations := cache.NewLocationCache(nil, time.Minute, zerolog.Nop())
	service := NewProfileService(store, storage, locations, 5*1024*1024, zerolog.Nop())
	return service, store, storage
}

func validUpsertRequest() dto.UpsertSkillProfileRequest {
	return dto.UpsertSkillProfileRequest{
		Title:           "Jazz Guitar Fundamentals",
		Category:        "Music",
		Description:     "Comping and improvisation.",
		Skills:          []string{" Guitar ", "Jazz", ""},
		ExperienceLevel: "expert",
		TeachingMethods: []string{"online"},
		City:            "Osaka",
		Country:         "Japan",
		PortfolioURL:    "https://example.com/ken",
	}
}

func TestProfileUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown experience level", func(t *testing.T) {
		service, _, _ := newProfileFixture()
		req := validUpsertRequest()
		req.ExperienceLevel = "GURU"

		_, err := service.Upsert(ctx, 1, req, nil)

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("normalizes level and trims list values", func(t *testing.T) {
		service, store, _ := newProfileFixture()

		result, err := service.Upsert(ctx, 1, validUpsertRequest(), nil)

		require.NoError(t, err)
		assert.Equal(t, string(models.ExperienceExpert), result.ExperienceLevel)
		assert.Equal(t, []string{"Guitar", "Jazz"}, result.Skills)
		assert.Equal(t, "https://example.com/ken", result.PortfolioURL)
		assert.Len(t, store.byUserID, 1)
	})

	t.Run("rejects skills that trim to nothing", func(t *testing.T) {
		service, _, _ := newProfileFixture()
		req := validUpsertRequest()
		req.Skills = []string{"  ", ""}

		_, err := service.Upsert(ctx, 1, req, nil)

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects non-image pictures", func(t *testing.T) {
		service, _, storage := newProfileFixture()

		_, err := service.Upsert(ctx, 1, validUpsertRequest(),
			documentHeader("cv.pdf", "application/pdf", 1024))

		assert.ErrorIs(t, err, apperrors.ErrUnsupportedMediaType)
		assert.Empty(t, storage.saved)
	})

	t.Run("rejects oversized pictures", func(t *testing.T) {
		service, _, storage := newProfileFixture()

		_, err := service.Upsert(ctx, 1, validUpsertRequest(),
			documentHeader("huge.png", "image/png", 6*1024*1024))

		assert.ErrorIs(t, err, apperrors.ErrFileTooLarge)
		assert.Empty(t, storage.saved)
	})

	t.Run("stores the picture and keeps it across replacements", func(t *testing.T) {
		service, store, _ := newProfileFixture()

		first, err := service.Upsert(ctx, 1, validUpsertRequest(),
			documentHeader("me.png", "image/png", 1024))
		require.NoError(t, err)
		assert.NotEmpty(t, first.ProfilePictureURL)

		// Replacing without a picture keeps the stored one
		second, err := service.Upsert(ctx, 1, validUpsertRequest(), nil)
		require.NoError(t, err)
		assert.Equal(t, first.ProfilePictureURL, second.ProfilePictureURL)
		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, store.byUserID, 1)
	})
}

func TestProfileSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown level filter", func(t *testing.T) {
		service, _, _ := newProfileFixture()

		_, err := service.Search(ctx, 1, dto.SearchProfilesQuery{ExperienceLevel: "GURU"})

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("always excludes the caller and paginates", func(t *testing.T) {
		service, store, _ := newProfileFixture()
		store.searchHits = []*models.SkillProfile{
			{ID: 1, UserID: 2, Title: "Spanish", Owner: &models.User{ID: 2, FirstName: "Maria", LastName: "Gomez"}},
		}
		store.total = 25

		result, err := service.Search(ctx, 1, dto.SearchProfilesQuery{Query: "spanish", Page: 2, Limit: 10})

		require.NoError(t, err)
		assert.Equal(t, int64(1), store.lastFilter.ExcludeUserID)
		assert.Equal(t, uint64(10), store.lastFilter.Offset)
		assert.Equal(t, 10, store.lastFilter.Limit)
		require.Len(t, result.Profiles, 1)
		assert.Equal(t, "Maria Gomez", result.Profiles[0].OwnerName)
		assert.Equal(t, int64(25), result.Pagination.TotalItems)
		assert.Equal(t, 3, result.Pagination.TotalPages)
		assert.Equal(t, 2, result.Pagination.CurrentPage)
	})
}

func TestProfileLocations(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unknown types", func(t *testing.T) {
		service, _, _ := newProfileFixture()

		_, err := service.Locations(ctx, "continent")

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("returns distinct values", func(t *testing.T) {
		service, store, _ := newProfileFixture()
		store.locations["country"] = []string{"Japan", "Spain"}

		values, err := service.Locations(ctx, "Country")

		require.NoError(t, err)
		assert.Equal(t, []string{"Japan", "Spain"}, values)
	})

	t.Run("empty result is a slice, not nil", func(t *testing.T) {
		service, _, _ := newProfileFixture()

		values, err := service.Locations(ctx, "city")

		require.NoError(t, err)
		assert.NotNil(t, values)
		assert.Empty(t, values)
	})
}

func TestProfileGetOwn(t *testing.T) {
	ctx := context.Background()

	service, _, _ := newProfileFixture()

	_, err := service.GetOwn(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)

	_, err = service.Upsert(ctx, 1, validUpsertRequest(), nil)
	require.NoError(t, err)

	result, err := service.GetOwn(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Jazz Guitar Fundamentals", result.Title)
}
