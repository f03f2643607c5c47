package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mo-shab/tutor/internal/domain"
	"github.com/mo-shab/tutor/internal/middlewares"
	"github.com/mo-shab/tutor/internal/service"
)

type SessionHandler struct {
	svc *service.SessionSvc
}

func NewSessionHandler(svc *service.SessionSvc) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// POST /api/sessions. A student books a tutor's slot. Edge validation happens
// here (RFC3339 instant, positive duration, coarse future check); the core
// does not re-validate client clock skew.
func (h *SessionHandler) Create(c *gin.Context) {
	if middlewares.Role(c) != string(domain.RoleStudent) {
		c.JSON(http.StatusForbidden, gin.H{"message": "only students can book sessions"})
		return
	}
	var in struct {
		TutorID     string `json:"tutorId" binding:"required"`
		Subject     string `json:"subject" binding:"required"`
		ScheduledAt string `json:"scheduledAt" binding:"required"` // RFC3339
		Duration    int    `json:"duration" binding:"required"`    // minutes
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	at, err := time.Parse(time.RFC3339, in.ScheduledAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "scheduledAt must be RFC3339"})
		return
	}
	if in.Duration <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "duration must be positive"})
		return
	}
	if at.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "cannot book a session in the past"})
		return
	}

	sess, err := h.svc.Book(c.Request.Context(), middlewares.Subject(c), in.TutorID, in.Subject, at, in.Duration)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// GET /api/sessions/tutor
func (h *SessionHandler) ListForTutor(c *gin.Context) {
	if middlewares.Role(c) != string(domain.RoleTutor) {
		c.JSON(http.StatusForbidden, gin.H{"message": "only tutors can view their sessions"})
		return
	}
	out, err := h.svc.ForTutor(c.Request.Context(), middlewares.Subject(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/sessions/student
func (h *SessionHandler) ListForStudent(c *gin.Context) {
	if middlewares.Role(c) != string(domain.RoleStudent) {
		c.JSON(http.StatusForbidden, gin.H{"message": "only students can view their sessions"})
		return
	}
	out, err := h.svc.ForStudent(c.Request.Context(), middlewares.Subject(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PATCH /api/sessions/:id/status. The owning tutor moves the session along
// the state machine.
func (h *SessionHandler) UpdateStatus(c *gin.Context) {
	if middlewares.Role(c) != string(domain.RoleTutor) {
		c.JSON(http.StatusForbidden, gin.H{"message": "only tutors can update sessions"})
		return
	}
	var in struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	to := domain.SessionStatus(in.Status)
	if !to.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid status provided"})
		return
	}

	sess, err := h.svc.Transition(c.Request.Context(), c.Param("id"), middlewares.Subject(c), to)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// POST /api/sessions/:id/complete
func (h *SessionHandler) Complete(c *gin.Context) {
	if middlewares.Role(c) != string(domain.RoleTutor) {
		c.JSON(http.StatusForbidden, gin.H{"message": "only tutors can update sessions"})
		return
	}
	sess, err := h.svc.Complete(c.Request.Context(), c.Param("id"), middlewares.Subject(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}
