package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/skillbridge/skillbridge/internal/app/models/dto"
	"github.com/skillbridge/skillbridge/internal/app/services"
	"github.com/skillbridge/skillbridge/internal/middleware"
)

// MessageController handles request-scoped chat operations
type MessageController struct {
	messageService *services.MessageService
	logger         zerolog.Logger
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService *services.MessageService, logger zerolog.Logger) *MessageController {
	return &MessageController{
		messageService: messageService,
		logger:         logger,
	}
}

// Send posts a message. Accepts JSON for text-only messages or multipart
// form data with a document file.
// @Summary Send a chat message
// @Tags messages
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse}
// @Router /messages [post]
func (c *MessageController) Send(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse("Authentication required"))
		return
	}

	var req dto.SendMessageRequest
	var document *multipart.FileHeader

	if strings.HasPrefix(ctx.ContentType(), "multipart/form-data") {
		if err := ctx.ShouldBind(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid message payload"))
			return
		}
		if file, err := ctx.FormFile("document"); err == nil {
			document = file
		}
	} else {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid message payload"))
			return
		}
	}

	result, err := c.messageService.Send(ctx.Request.Context(), userID, req, document)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(result))
}

// History returns the live messages of a request in chronological order
// @Summary Get the chat history of a request
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param requestId path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.MessageResponse}
// @Router /messages/{requestId} [get]
func (c *MessageController) History(ctx *gin.Context) {
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

	result, err := c.messageService.History(ctx.Request.Context(), requestID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}
