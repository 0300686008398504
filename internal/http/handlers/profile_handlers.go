package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Udilainer/referral-project/domain"
	"github.com/Udilainer/referral-project/internal/http/middleware"
)

// ProfileHandlers handles the authenticated profile endpoints
type ProfileHandlers struct {
	referralSvc domain.ReferralService
}

// NewProfileHandlers creates new profile handlers
func NewProfileHandlers(referralSvc domain.ReferralService) *ProfileHandlers {
	return &ProfileHandlers{referralSvc: referralSvc}
}

// ActivateInviteRequest represents the invite activation body
type ActivateInviteRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

// Get handles GET /profile/
func (h *ProfileHandlers) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	profile, err := h.referralSvc.Profile(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newProfilePayload(profile))
}

// Activate handles POST /profile/
func (h *ProfileHandlers) Activate(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req ActivateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.referralSvc.ActivateInvite(c.Request.Context(), user, req.InviteCode)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invite code activated successfully.",
		"profile": newProfilePayload(profile),
	})
}

func currentUser(c *gin.Context) (*domain.User, bool) {
	value, exists := c.Get(middleware.UserContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*domain.User)
	return user, ok
}
