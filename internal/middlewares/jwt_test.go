package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mo-shab/tutor/pkg/auth"
)

func newRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWTAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sub": Subject(c), "role": Role(c)})
	})
	r.GET("/admin", JWTAuth(secret), RequireRole("ADMIN"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	r := newRouter("secret")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestJWTAuthAcceptsCookie(t *testing.T) {
	r := newRouter("secret")
	tok, err := auth.CreateAccessToken("secret", "u1", "STUDENT", "s@example.com", time.Minute)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: tok})
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestJWTAuthAcceptsBearerHeader(t *testing.T) {
	r := newRouter("secret")
	tok, err := auth.CreateAccessToken("secret", "u1", "STUDENT", "s@example.com", time.Minute)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	r := newRouter("secret")

	studentTok, _ := auth.CreateAccessToken("secret", "u1", "STUDENT", "s@example.com", time.Minute)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: studentTok})
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student, got %d", w.Code)
	}

	adminTok, _ := auth.CreateAccessToken("secret", "a1", "ADMIN", "a@example.com", time.Minute)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: adminTok})
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}
}
