package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hackmate/hackmate/internal/middleware"
	"github.com/hackmate/hackmate/internal/services"
)

type MessageHandler struct {
	messageService *services.TeamMessageService
}

func NewMessageHandler(messageService *services.TeamMessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

type messageRequest struct {
	Content string `json:"content" binding:"required"`
	ReplyTo string `json:"reply_to"`
}

type editMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// Post sends a message to the team chat
func (h *MessageHandler) Post(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.messageService.Post(c.Param("id"), middleware.CurrentUserID(c), req.Content, req.ReplyTo)
	if err != nil {
		c.JSON(messageErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// List returns team chat messages, oldest first
func (h *MessageHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	messages, total, err := h.messageService.List(c.Param("id"), middleware.CurrentUserID(c), page, pageSize)
	if err != nil {
		c.JSON(messageErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"total":    total,
	})
}

// Edit rewrites a message, sender only
func (h *MessageHandler) Edit(c *gin.Context) {
	var req editMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.messageService.Edit(c.Param("id"), c.Param("message_id"), middleware.CurrentUserID(c), req.Content)
	if err != nil {
		c.JSON(messageErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, msg)
}

// Delete removes a message, sender or leader only
func (h *MessageHandler) Delete(c *gin.Context) {
	if err := h.messageService.Delete(c.Param("id"), c.Param("message_id"), middleware.CurrentUserID(c)); err != nil {
		c.JSON(messageErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func messageErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrMessageNotFound),
		errors.Is(err, services.ErrTeamNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotMessageOwner),
		errors.Is(err, services.ErrNotActiveMember):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
