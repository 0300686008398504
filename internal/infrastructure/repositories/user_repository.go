package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Udilainer/referral-project/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags).
// Uniqueness of phone_number and invite_code is enforced here, at the
// persistence layer, so races across processes resolve consistently.
type DBUser struct {
	ID          uint    `gorm:"primaryKey"`
	PhoneNumber string  `gorm:"uniqueIndex;size:15;not null"`
	InviteCode  *string `gorm:"uniqueIndex;size:6"`
	// ReferrerID is the activated_invite_code pointer: the user whose
	// invite code this row activated.
	ReferrerID *uint     `gorm:"column:activated_invite_code_id;index"`
	Referrer   *DBUser   `gorm:"foreignKey:ReferrerID"`
	CreatedAt  time.Time `gorm:"index"`
	UpdatedAt  time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// GetOrCreateByPhone implements domain.UserRepository. The insert runs
// with ON CONFLICT DO NOTHING on the phone unique index, so concurrent
// callers observe at most one creation and the losers fetch the row
// the winner wrote.
func (r *UserRepositoryImpl) GetOrCreateByPhone(ctx context.Context, phone string) (*domain.User, bool, error) {
	dbUser := &DBUser{PhoneNumber: phone}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone_number"}},
			DoNothing: true,
		}).
		Create(dbUser)
	if res.Error != nil {
		return nil, false, res.Error
	}

	if res.RowsAffected == 1 {
		return r.dbToDomain(dbUser), true, nil
	}

	existing, err := r.FindByPhone(ctx, phone)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// SetInviteCode implements domain.UserRepository. The update is
// conditional on an empty invite slot; the unique index on invite_code
// resolves generation races and reports ErrInviteCodeTaken for the
// caller's retry loop.
func (r *UserRepositoryImpl) SetInviteCode(ctx context.Context, userID uint, code string) error {
	res := r.db.WithContext(ctx).
		Model(&DBUser{}).
		Where("id = ? AND invite_code IS NULL", userID).
		Update("invite_code", code)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrInviteCodeTaken
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		var dbUser DBUser
		if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&dbUser).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		return domain.ErrInviteAlreadySet
	}
	return nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByPhone implements domain.UserRepository
func (r *UserRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("phone_number = ?", phone).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByInvite implements domain.UserRepository. Rows whose invite code
// is still NULL can never match, which keeps invite-pending users
// invisible here.
func (r *UserRepositoryImpl) FindByInvite(ctx context.Context, code string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("invite_code = ?", code).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// SetReferrer implements domain.UserRepository. The conditional update
// on a NULL slot is the authoritative write-once guard; a miss reports
// ErrReferralConflict and the caller re-reads to find out why.
func (r *UserRepositoryImpl) SetReferrer(ctx context.Context, userID, referrerID uint) error {
	if userID == referrerID {
		return domain.ErrReferralConflict
	}
	res := r.db.WithContext(ctx).
		Model(&DBUser{}).
		Where("id = ? AND activated_invite_code_id IS NULL", userID).
		Update("activated_invite_code_id", referrerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrReferralConflict
	}
	return nil
}

// FindReferrals implements domain.UserRepository
func (r *UserRepositoryImpl) FindReferrals(ctx context.Context, referrerID uint) ([]*domain.User, error) {
	var dbUsers []DBUser
	err := r.db.WithContext(ctx).
		Where("activated_invite_code_id = ?", referrerID).
		Order("created_at").
		Find(&dbUsers).Error
	if err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		users = append(users, r.dbToDomain(&dbUsers[i]))
	}
	return users, nil
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	user := &domain.User{
		ID:          dbUser.ID,
		PhoneNumber: dbUser.PhoneNumber,
		ReferrerID:  dbUser.ReferrerID,
		CreatedAt:   dbUser.CreatedAt,
		UpdatedAt:   dbUser.UpdatedAt,
	}
	if dbUser.InviteCode != nil {
		user.InviteCode = *dbUser.InviteCode
	}
	return user
}
