package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/models/dto"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/app/services"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/middleware"
)

// MessageController handles direct messages
type MessageController struct {
	messageService services.MessageService
}

// NewMessageController creates a new MessageController
func NewMessageController(messageService services.MessageService) *MessageController {
	return &MessageController{messageService: messageService}
}

// List returns the caller's messages, or one thread when with is given
// @Summary List messages
// @Tags messages
// @Produce json
// @Security CookieAuth
// @Param with query string false "Other participant"
// @Success 200 {object} dto.APIResponse{data=[]models.Message}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /messages [get]
func (c *MessageController) List(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	respond(ctx, http.StatusOK, c.messageService.List(principal, ctx.Query("with")))
}

// Send delivers a direct message from the caller
// @Summary Send message
// @Tags messages
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=models.Message}
// @Failure 400 {object} dto.ErrorResponse "Recipient and message are required"
// @Router /messages [post]
func (c *MessageController) Send(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	var req dto.SendMessageRequest
	if !middleware.BindJSON(ctx, &req, "message") {
		return
	}
	message, err := c.messageService.Send(ctx.Request.Context(), principal, req.To, req.Message)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, message)
}

// MarkRead flags a received message as read
// @Summary Mark message read
// @Tags messages
// @Produce json
// @Security CookieAuth
// @Param id path string true "Message ID"
// @Success 200 {object} dto.APIResponse{data=models.Message}
// @Failure 403 {object} dto.ErrorResponse "Only the recipient may mark a message read"
// @Failure 404 {object} dto.ErrorResponse "Message not found"
// @Router /messages/{id}/read [put]
func (c *MessageController) MarkRead(ctx *gin.Context) {
	principal, ok := currentPrincipal(ctx)
	if !ok {
		return
	}
	message, err := c.messageService.MarkRead(ctx.Request.Context(), principal, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, message)
}
