package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mo-shab/tutor/internal/middlewares"
	"github.com/mo-shab/tutor/internal/service"
)

type ProfileHandler struct {
	svc *service.ProfileSvc
}

func NewProfileHandler(svc *service.ProfileSvc) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// GET /api/profiles, public listing of approved tutors.
func (h *ProfileHandler) ListPublic(c *gin.Context) {
	out, err := h.svc.ListApproved(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/profiles/:id, public tutor detail with reviews and stats.
func (h *ProfileHandler) GetPublic(c *gin.Context) {
	out, err := h.svc.PublicByUserID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/profiles/me
func (h *ProfileHandler) My(c *gin.Context) {
	out, err := h.svc.MyProfile(c.Request.Context(), middlewares.Subject(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PUT /api/profiles/me
func (h *ProfileHandler) Upsert(c *gin.Context) {
	var in struct {
		Bio        string   `json:"bio"`
		Subjects   []string `json:"subjects"`
		HourlyRate float64  `json:"hourlyRate"`
		Languages  []string `json:"languages"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	out, err := h.svc.Upsert(c.Request.Context(), middlewares.Subject(c), service.ProfileInput{
		Bio:        in.Bio,
		Subjects:   in.Subjects,
		HourlyRate: in.HourlyRate,
		Languages:  in.Languages,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
