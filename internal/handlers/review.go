package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mo-shab/tutor/internal/middlewares"
	"github.com/mo-shab/tutor/internal/service"
)

type ReviewHandler struct {
	svc *service.ReviewSvc
}

func NewReviewHandler(svc *service.ReviewSvc) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// POST /api/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var in struct {
		SessionID string `json:"sessionId" binding:"required"`
		Rating    int    `json:"rating" binding:"required"`
		Comment   string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	rv, err := h.svc.Create(c.Request.Context(), middlewares.Subject(c), in.SessionID, in.Rating, in.Comment)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rv)
}

// GET /api/reviews/tutor/:tutorId, public.
func (h *ReviewHandler) ForTutor(c *gin.Context) {
	out, err := h.svc.ForTutor(c.Request.Context(), c.Param("tutorId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
