package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Udilainer/referral-project/internal/infrastructure/repositories"
)

// Open creates a new database connection. TranslateError is on so
// unique-index violations surface as gorm.ErrDuplicatedKey regardless
// of the driver.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
}

// AutoMigrate creates the users and tokens tables with their unique
// indexes on phone_number, invite_code, user_id and key.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&repositories.DBUser{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	if err := db.AutoMigrate(&repositories.DBToken{}); err != nil {
		return fmt.Errorf("failed to migrate tokens table: %w", err)
	}
	return nil
}
