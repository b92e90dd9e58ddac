package controllers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/skillbridge/skillbridge/internal/app/models/dto"
	"github.com/skillbridge/skillbridge/internal/app/services"
	"github.com/skillbridge/skillbridge/internal/middleware"
	"github.com/skillbridge/skillbridge/internal/pkg/helpers"
)

// ProfileController handles skill profile operations
type ProfileController struct {
	profileService *services.ProfileService
	logger         zerolog.Logger
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService *services.ProfileService, logger zerolog.Logger) *ProfileController {
	return &ProfileController{
		profileService: profileService,
		logger:         logger,
	}
}

// Upsert creates or replaces the caller's skill profile. Accepts JSON or
// multipart form data with an optional profilePicture file.
// @Summary Create or replace the caller's skill profile
// @Tags skill-profile
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SkillProfileResponse}
// @Router /skill-profile [post]
func (c *ProfileController) Upsert(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	var req dto.UpsertSkillProfileRequest
	var picture *multipart.FileHeader

	if strings.HasPrefix(ctx.ContentType(), "multipart/form-data") {
		if err := ctx.ShouldBind(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid skill profile payload"))
			return
		}
		if file, err := ctx.FormFile("profilePicture"); err == nil {
			picture = file
		}
	} else {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid skill profile payload"))
			return
		}
	}

	result, err := c.profileService.Upsert(ctx.Request.Context(), userID, req, picture)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// GetOwn returns the caller's skill profile
// @Summary Get the caller's skill profile
// @Tags skill-profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SkillProfileResponse}
// @Router /skill-profile [get]
func (c *ProfileController) GetOwn(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	result, err := c.profileService.GetOwn(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// Search returns profiles matching the filters, excluding the caller's own
// @Summary Search skill profiles
// @Tags skill-profile
// @Produce json
// @Security BearerAuth
// @Param query query string false "Free-text search over title, description and skills"
// @Param page query int false "1-based page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.SearchProfilesResponse}
// @Router /skill-profile/search [get]
func (c *ProfileController) Search(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	var query dto.SearchProfilesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid search parameters"))
		return
	}
	query.Page, query.Limit = helpers.ParsePaginationParams(ctx)

	result, err := c.profileService.Search(ctx.Request.Context(), userID, query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// Locations returns the distinct values for a location type
// @Summary List distinct profile locations
// @Tags skill-profile
// @Produce json
// @Security BearerAuth
// @Param type path string true "Location type" Enums(country, state, city)
// @Success 200 {object} dto.APIResponse{data=[]string}
// @Router /skill-profile/locations/{type} [get]
func (c *ProfileController) Locations(ctx *gin.Context) {
	result, err := c.profileService.Locations(ctx.Request.Context(), ctx.Param("type"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}
