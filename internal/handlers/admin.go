package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mo-shab/tutor/internal/domain"
	"github.com/mo-shab/tutor/internal/service"
)

type AdminHandler struct {
	svc *service.AdminSvc
}

func NewAdminHandler(svc *service.AdminSvc) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	out, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PATCH /api/admin/users/:userId/role
func (h *AdminHandler) SetRole(c *gin.Context) {
	var in struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	u, err := h.svc.SetUserRole(c.Request.Context(), c.Param("userId"), domain.Role(in.Role))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// PATCH /api/admin/users/:userId/status
func (h *AdminHandler) SetStatus(c *gin.Context) {
	var in struct {
		IsActive *bool `json:"isActive" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "isActive must be a boolean"})
		return
	}
	u, err := h.svc.SetUserActive(c.Request.Context(), c.Param("userId"), *in.IsActive)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// GET /api/admin/tutors/pending
func (h *AdminHandler) PendingTutors(c *gin.Context) {
	out, err := h.svc.PendingTutorProfiles(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PATCH /api/admin/tutors/:profileId/approve
func (h *AdminHandler) ApproveTutor(c *gin.Context) {
	var in struct {
		IsApproved *bool `json:"isApproved" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "isApproved must be a boolean"})
		return
	}
	p, err := h.svc.SetTutorApproval(c.Request.Context(), c.Param("profileId"), *in.IsApproved)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
