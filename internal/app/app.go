package app

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Udilainer/referral-project/internal/config"
	httpx "github.com/Udilainer/referral-project/internal/http"
	"github.com/Udilainer/referral-project/internal/http/handlers"
	"github.com/Udilainer/referral-project/internal/http/middleware"
)

// Run wires the service and blocks serving HTTP until the listener
// fails.
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	container, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	// Initialize handlers
	authH := handlers.NewAuthHandlers(container.AuthSvc, cfg.DevMode)
	profileH := handlers.NewProfileHandlers(container.ReferralSvc)

	// Initialize middleware
	tokenMW := middleware.NewTokenAuthMW(container.TokenRepo, container.UserRepo)

	// Build router
	r := httpx.BuildRouter(authH, profileH, tokenMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
