package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/Udilainer/referral-project/internal/http/handlers"
	"github.com/Udilainer/referral-project/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, ph *handlers.ProfileHandlers, tokenMW *middleware.TokenAuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/request-code/", ah.RequestCode)
	auth.POST("/verify-code/", ah.VerifyCode)

	profile := r.Group("/profile").Use(tokenMW.WithToken())
	profile.GET("/", ph.Get)
	profile.POST("/", ph.Activate)

	return r
}
