package app

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Udilainer/referral-project/domain"
	"github.com/Udilainer/referral-project/internal/config"
	"github.com/Udilainer/referral-project/internal/infrastructure/audit"
	"github.com/Udilainer/referral-project/internal/infrastructure/database"
	"github.com/Udilainer/referral-project/internal/infrastructure/notifications"
	"github.com/Udilainer/referral-project/internal/infrastructure/repositories"
	"github.com/Udilainer/referral-project/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client

	// Repositories
	UserRepo  domain.UserRepository
	TokenRepo domain.TokenRepository

	// Services
	OTPStore        domain.OTPStore
	NotificationSvc domain.NotificationService
	Audit           domain.AuditLogger
	AuthSvc         domain.AuthService
	ReferralSvc     domain.ReferralService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	// Initialize infrastructure
	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		return nil, err
	}

	// Initialize repositories
	container.initRepositories()

	// Initialize services
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	c.DB = db
	return nil
}

func (c *Container) initRedis() error {
	rdb := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := rdb.Ping(context.Background()); err != nil {
		return err
	}
	c.RedisClient = rdb.Client
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.TokenRepo = repositories.NewTokenRepository(c.DB)
}

func (c *Container) initServices() {
	c.OTPStore = services.NewOTPStore(c.RedisClient, c.Config.OTPTTL)
	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
	)
	c.Audit = audit.NewLogAuditLogger(nil)

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.TokenRepo,
		c.OTPStore,
		c.NotificationSvc,
		c.Audit,
		services.AuthConfig{DispatchDelay: c.Config.OTPDispatchDelay},
	)
	c.ReferralSvc = services.NewReferralService(c.UserRepo, c.Audit)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
