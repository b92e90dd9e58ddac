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

// NotificationController handles notification inbox operations
type NotificationController struct {
	notificationService *services.NotificationService
	logger              zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService, logger zerolog.Logger) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		logger:              logger,
	}
}

// List returns the caller's newest notifications
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.NotificationResponse}
// @Router /notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	result := c.notificationService.List(ctx.Request.Context(), userID)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// Get returns one notification
// @Summary Get a notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=dto.NotificationResponse}
// @Router /notifications/{id} [get]
func (c *NotificationController) Get(ctx *gin.Context) {
	userID, notificationID, ok := c.identify(ctx)
	if !ok {
		return
	}

	result, err := c.notificationService.Get(ctx.Request.Context(), notificationID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// MarkRead marks a notification as read
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	userID, notificationID, ok := c.identify(ctx)
	if !ok {
		return
	}

	if err := c.notificationService.MarkRead(ctx.Request.Context(), notificationID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"read": true}))
}

// Delete removes a notification
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse
// @Router /notifications/{id} [delete]
func (c *NotificationController) Delete(ctx *gin.Context) {
	userID, notificationID, ok := c.identify(ctx)
	if !ok {
		return
	}

	if err := c.notificationService.Delete(ctx.Request.Context(), notificationID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"deleted": true}))
}

// HandleAction accepts or rejects the request behind a REQUEST notification
// @Summary Act on a request notification
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Param request body dto.NotificationActionRequest true "Action payload"
// @Success 200 {object} dto.APIResponse{data=dto.RequestResponse}
// @Router /notifications/{id}/action [put]
func (c *NotificationController) HandleAction(ctx *gin.Context) {
	userID, notificationID, ok := c.identify(ctx)
	if !ok {
		return
	}

	var req dto.NotificationActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Action must be accept or reject"))
		return
	}

	result, err := c.notificationService.HandleAction(ctx.Request.Context(), notificationID, userID, models.RequestAction(req.Action))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// identify resolves the caller and the notification ID path parameter,
// writing the error response itself when either is missing
func (c *NotificationController) identify(ctx *gin.Context) (userID, notificationID int64, ok bool) {
	userID, exists := middleware.CurrentUserID(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return 0, 0, false
	}

	notificationID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid notification ID"))
		return 0, 0, false
	}

	return userID, notificationID, true
}
