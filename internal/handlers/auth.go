package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mo-shab/tutor/internal/middlewares"
	"github.com/mo-shab/tutor/internal/service"
	"github.com/mo-shab/tutor/pkg/auth"
	"github.com/mo-shab/tutor/pkg/config"
)

type AuthHandler struct {
	svc *service.AuthSvc
	cfg config.App
}

func NewAuthHandler(svc *service.AuthSvc, cfg config.App) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg}
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in struct {
		FullName string `json:"fullName" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	u, err := h.svc.Register(c.Request.Context(), in.Email, in.Password, in.FullName)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	u, err := h.svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		fail(c, err)
		return
	}

	ttl := time.Duration(h.cfg.JWTExpireMin) * time.Minute
	tok, err := auth.CreateAccessToken(h.cfg.JWTSecret, u.ID, string(u.Role), u.Email, ttl)
	if err != nil {
		fail(c, err)
		return
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", tok, int(ttl.Seconds()), "/", "", h.cfg.SecureCookies, true)
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", h.cfg.SecureCookies, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GET /api/users/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.svc.CurrentUser(c.Request.Context(), middlewares.Subject(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
