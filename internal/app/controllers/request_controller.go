package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/skillbridge/skillbridge/internal/app/models"
	"github.com/skillbridge/skillbridge/internal/app/models/dto"
	"github.com/skillbridge/skillbridge/internal/app/services"
	"github.com/skillbridge/skillbridge/internal/middleware"
)

// RequestController handles mentorship request operations
type RequestController struct {
	requestService *services.RequestService
	logger         zerolog.Logger
}

// NewRequestController creates a new RequestController
func NewRequestController(requestService *services.RequestService, logger zerolog.Logger) *RequestController {
	return &RequestController{
		requestService: requestService,
		logger:         logger,
	}
}

// Create opens a new mentorship request
// @Summary Create a mentorship request
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRequestRequest true "Request payload"
// @Success 201 {object} dto.APIResponse{data=dto.RequestResponse}
// @Router /requests [post]
func (c *RequestController) Create(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	var req dto.CreateRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request payload"))
		return
	}

	result, err := c.requestService.Create(ctx.Request.Context(), userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(result))
}

// List returns the caller's requests, newest first
// @Summary List mentorship requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(pending, accepted)
// @Param role query string false "Filter by side" Enums(student, mentor)
// @Success 200 {object} dto.APIResponse{data=[]dto.RequestResponse}
// @Router /requests [get]
func (c *RequestController) List(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	var query dto.ListRequestsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid list parameters"))
		return
	}

	result, err := c.requestService.List(ctx.Request.Context(), userID, query)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// Transition applies an accept or reject to a pending request
// @Summary Accept or reject a mentorship request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param requestId path int true "Request ID"
// @Param action path string true "Transition" Enums(accept, reject)
// @Success 200 {object} dto.APIResponse{data=dto.RequestResponse}
// @Router /requests/{requestId}/{action} [put]
func (c *RequestController) Transition(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	requestID, err := strconv.ParseInt(ctx.Param("requestId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request ID"))
		return
	}

	action := models.RequestAction(ctx.Param("action"))
	if action != models.RequestActionAccept && action != models.RequestActionReject {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Action must be accept or reject"))
		return
	}

	result, err := c.requestService.Transition(ctx.Request.Context(), requestID, userID, action)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// Delete removes a request the caller is a party to
// @Summary Delete a mentorship request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param requestId path int true "Request ID"
// @Success 200 {object} dto.APIResponse
// @Router /requests/{requestId} [delete]
func (c *RequestController) Delete(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	requestID, err := strconv.ParseInt(ctx.Param("requestId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid request ID"))
		return
	}

	if err := c.requestService.Delete(ctx.Request.Context(), requestID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"deleted": true}))
}
