package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/skillbridge/skillbridge/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticFileServing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "photo.webp"), []byte("image bytes"), 0o644))

	var cfg config.Config
	cfg.Server.StoragePath = dir

	router := gin.New()
	setupStaticFileServing(router, &cfg, zerolog.Nop())

	t.Run("serves uploaded files with a one-year cache directive", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/uploads/photo.webp", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "image bytes", recorder.Body.String())
		assert.Equal(t, "public, max-age=31536000", recorder.Header().Get("Cache-Control"))
	})

	t.Run("missing files still carry the directive", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/uploads/gone.webp", nil))

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Equal(t, "public, max-age=31536000", recorder.Header().Get("Cache-Control"))
	})
}
