package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Udilainer/referral-project/domain"
)

// clientErrors are surfaced to the caller verbatim with a 400. Note
// that ErrCodeInvalidOrExpired deliberately covers absent, expired and
// mismatched codes alike, so nothing leaks about a phone's existence.
var clientErrors = []error{
	domain.ErrInvalidPhone,
	domain.ErrInvalidCodeFormat,
	domain.ErrInvalidInviteFormat,
	domain.ErrCodeInvalidOrExpired,
	domain.ErrInviteAlreadyActivated,
	domain.ErrInviteNotFound,
	domain.ErrSelfReferral,
}

// respondError maps a service error onto the HTTP surface. Anything
// that is not a known client error is logged and hidden behind a
// generic 500.
func respondError(c *gin.Context, err error) {
	for _, clientErr := range clientErrors {
		if errors.Is(err, clientErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": clientErr.Error()})
			return
		}
	}

	log.Printf("INTERNAL_ERROR: path=%s error=%v", c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
