package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mo-shab/tutor/internal/middlewares"
	"github.com/mo-shab/tutor/internal/service"
)

type MessageHandler struct {
	svc *service.MessageSvc
}

func NewMessageHandler(svc *service.MessageSvc) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// GET /api/messages returns the caller's inbox.
func (h *MessageHandler) Conversations(c *gin.Context) {
	out, err := h.svc.Conversations(c.Request.Context(), middlewares.Subject(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/messages/:conversationId
func (h *MessageHandler) Messages(c *gin.Context) {
	out, err := h.svc.Messages(c.Request.Context(), middlewares.Subject(c), c.Param("conversationId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/messages
func (h *MessageHandler) Send(c *gin.Context) {
	var in struct {
		ReceiverID string `json:"receiverId" binding:"required"`
		Content    string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	msg, err := h.svc.Send(c.Request.Context(), middlewares.Subject(c), in.ReceiverID, in.Content)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// PATCH /api/messages/:conversationId/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	err := h.svc.MarkRead(c.Request.Context(), middlewares.Subject(c), c.Param("conversationId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "conversation marked as read"})
}
