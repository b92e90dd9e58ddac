package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/skillbridge/skillbridge/internal/app/models"
	"github.com/skillbridge/skillbridge/internal/app/models/dto"
	"github.com/skillbridge/skillbridge/internal/app/repositories"
	"github.com/skillbridge/skillbridge/internal/app/services"
	"github.com/skillbridge/skillbridge/internal/middleware"
	"github.com/skillbridge/skillbridge/internal/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearchStore struct {
	lastFilter repositories.SearchFilter
}

func (f *fakeSearchStore) Upsert(_ context.Context, _ *models.SkillProfile) error { return nil }

func (f *fakeSearchStore) GetByUserID(_ context.Context, _ int64) (*models.SkillProfile, error) {
	return nil, nil
}

func (f *fakeSearchStore) Search(_ context.Context, filter repositories.SearchFilter) ([]*models.SkillProfile, int64, error) {
	f.lastFilter = filter
	return nil, 0, nil
}

func (f *fakeSearchStore) DistinctLocations(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func newSearchTestRouter(store *fakeSearchStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	profileService := services.NewProfileService(
		store, nil,
		cache.NewLocationCache(nil, time.Minute, zerolog.Nop()),
		5*1024*1024, zerolog.Nop(),
	)
	controller := NewProfileController(profileService, zerolog.Nop())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, int64(7))
	})
	router.GET("/skill-profile/search", controller.Search)
	return router
}

func TestProfileSearchPagination(t *testing.T) {
	t.Run("malformed pagination falls back to defaults", func(t *testing.T) {
		store := &fakeSearchStore{}
		router := newSearchTestRouter(store)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet,
			"/skill-profile/search?page=abc&limit=-5", nil))

		require.Equal(t, http.StatusOK, recorder.Code)

		var body struct {
			Data dto.SearchProfilesResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

		assert.Equal(t, 1, body.Data.Pagination.CurrentPage)
		assert.Equal(t, 10, body.Data.Pagination.PageSize)
		assert.Equal(t, 10, store.lastFilter.Limit)
		assert.Equal(t, uint64(0), store.lastFilter.Offset)
	})

	t.Run("oversized limit is clamped", func(t *testing.T) {
		store := &fakeSearchStore{}
		router := newSearchTestRouter(store)

		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet,
			"/skill-profile/search?page=3&limit=9999", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, 10, store.lastFilter.Limit)
		assert.Equal(t, uint64(20), store.lastFilter.Offset)
		assert.Equal(t, int64(7), store.lastFilter.ExcludeUserID)
	})
}
