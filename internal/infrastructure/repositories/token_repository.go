package repositories

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Udilainer/referral-project/domain"
)

// tokenKeyBytes is the raw size of a token key; hex-encoded it yields
// the 40-character opaque credential.
const tokenKeyBytes = 20

// TokenRepositoryImpl implements domain.TokenRepository using GORM
type TokenRepositoryImpl struct {
	db *gorm.DB
}

// DBToken represents the database model for Token (with GORM tags)
type DBToken struct {
	Key       string    `gorm:"primaryKey;size:40"`
	UserID    uint      `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBToken) TableName() string {
	return "tokens"
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db *gorm.DB) domain.TokenRepository {
	return &TokenRepositoryImpl{db: db}
}

// IssueOrGet implements domain.TokenRepository. The first call for a
// user mints a key; every later call returns the same one. A lost
// insert race is resolved by re-reading the winner's row.
func (r *TokenRepositoryImpl) IssueOrGet(ctx context.Context, userID uint) (string, error) {
	var existing DBToken
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return existing.Key, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	key, err := generateKey()
	if err != nil {
		return "", err
	}

	token := DBToken{Key: key, UserID: userID}
	if err := r.db.WithContext(ctx).Create(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Another request minted the token first; its key wins.
			var winner DBToken
			if ferr := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&winner).Error; ferr != nil {
				return "", ferr
			}
			return winner.Key, nil
		}
		return "", err
	}
	return key, nil
}

// FindUserIDByKey implements domain.TokenRepository
func (r *TokenRepositoryImpl) FindUserIDByKey(ctx context.Context, key string) (uint, error) {
	var token DBToken
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrTokenNotFound
		}
		return 0, err
	}
	return token.UserID, nil
}

// generateKey mints a 40-hex-char opaque token key from crypto/rand.
func generateKey() (string, error) {
	raw := make([]byte, tokenKeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate token key: %w", err)
	}
	return hex.EncodeToString(raw), nil
}
