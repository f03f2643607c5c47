package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mo-shab/tutor/internal/domain"
)

// fail translates service sentinels into response codes. Services never
// format responses themselves.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrAccountDisabled):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrSlotUnavailable),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrAlreadyReviewed):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrNotCompletable),
		errors.Is(err, domain.ErrNotReviewable),
		errors.Is(err, domain.ErrSelfMessage):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"message": "an unexpected error occurred"})
		return
	}
	c.JSON(status, gin.H{"message": err.Error()})
}
