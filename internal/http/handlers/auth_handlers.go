package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Udilainer/referral-project/domain"
)

// AuthHandlers handles the unauthenticated code request/verify endpoints
type AuthHandlers struct {
	authSvc domain.AuthService
	// devMode echoes the minted code in the request-code response.
	// Development convenience only; must be off in production.
	devMode bool
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, devMode bool) *AuthHandlers {
	return &AuthHandlers{
		authSvc: authSvc,
		devMode: devMode,
	}
}

// RequestCodeRequest represents the request-code body
type RequestCodeRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
}

// VerifyCodeRequest represents the verify-code body
type VerifyCodeRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Code        string `json:"code" binding:"required"`
}

// RequestCode handles POST /auth/request-code/
func (h *AuthHandlers) RequestCode(c *gin.Context) {
	var req RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := h.authSvc.RequestCode(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{
		"success": true,
		"message": "Verification code sent to your phone number.",
	}
	if h.devMode {
		resp["dev_code"] = code
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyCode handles POST /auth/verify-code/
func (h *AuthHandlers) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.VerifyCode(c.Request.Context(), req.PhoneNumber, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":       result.Token,
		"user":        newUserPayload(result.User, result.ReferrerPhone),
		"is_new_user": result.IsNewUser,
	})
}
