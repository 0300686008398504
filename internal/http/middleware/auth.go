package middleware

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Udilainer/referral-project/domain"
)

// UserContextKey is the gin context key holding the authenticated
// *domain.User.
const UserContextKey = "user"

// tokenKeyRe matches the opaque 40-hex-char token key.
var tokenKeyRe = regexp.MustCompile(`^[0-9a-f]{40}$`)

// TokenAuthMW wraps the stores the token middleware needs
type TokenAuthMW struct {
	tokenRepo domain.TokenRepository
	userRepo  domain.UserRepository
}

// NewTokenAuthMW creates new token auth middleware wrapper
func NewTokenAuthMW(tokenRepo domain.TokenRepository, userRepo domain.UserRepository) *TokenAuthMW {
	return &TokenAuthMW{
		tokenRepo: tokenRepo,
		userRepo:  userRepo,
	}
}

// WithToken returns the token middleware function
func (mw *TokenAuthMW) WithToken() gin.HandlerFunc {
	return TokenAuth(mw.tokenRepo, mw.userRepo)
}

// TokenAuth authenticates "Authorization: Token <40-hex>" headers by
// resolving the key through the token store and loading the user.
func TokenAuth(tokenRepo domain.TokenRepository, userRepo domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Token" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		key := parts[1]
		if !tokenKeyRe.MatchString(key) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		userID, err := tokenRepo.FindUserIDByKey(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, domain.ErrTokenNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			c.Abort()
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}
