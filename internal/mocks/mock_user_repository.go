package mocks

import (
	"context"

	"github.com/Udilainer/referral-project/domain"
)

// MockUserRepository implements domain.UserRepository for testing
type MockUserRepository struct {
	GetOrCreateByPhoneFunc func(ctx context.Context, phone string) (*domain.User, bool, error)
	SetInviteCodeFunc      func(ctx context.Context, userID uint, code string) error
	FindByIDFunc           func(ctx context.Context, id uint) (*domain.User, error)
	FindByPhoneFunc        func(ctx context.Context, phone string) (*domain.User, error)
	FindByInviteFunc       func(ctx context.Context, code string) (*domain.User, error)
	SetReferrerFunc        func(ctx context.Context, userID, referrerID uint) error
	FindReferralsFunc      func(ctx context.Context, referrerID uint) ([]*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) GetOrCreateByPhone(ctx context.Context, phone string) (*domain.User, bool, error) {
	if m.GetOrCreateByPhoneFunc != nil {
		return m.GetOrCreateByPhoneFunc(ctx, phone)
	}
	// Default behavior: fresh user
	return &domain.User{ID: 1, PhoneNumber: phone}, true, nil
}

func (m *MockUserRepository) SetInviteCode(ctx context.Context, userID uint, code string) error {
	if m.SetInviteCodeFunc != nil {
		return m.SetInviteCodeFunc(ctx, userID, code)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByInvite(ctx context.Context, code string) (*domain.User, error) {
	if m.FindByInviteFunc != nil {
		return m.FindByInviteFunc(ctx, code)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) SetReferrer(ctx context.Context, userID, referrerID uint) error {
	if m.SetReferrerFunc != nil {
		return m.SetReferrerFunc(ctx, userID, referrerID)
	}
	return nil
}

func (m *MockUserRepository) FindReferrals(ctx context.Context, referrerID uint) ([]*domain.User, error) {
	if m.FindReferralsFunc != nil {
		return m.FindReferralsFunc(ctx, referrerID)
	}
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
