package mocks

import (
	"context"

	"github.com/Udilainer/referral-project/domain"
)

// MockReferralService implements domain.ReferralService for testing
type MockReferralService struct {
	ActivateInviteFunc func(ctx context.Context, user *domain.User, inviteCode string) (*domain.Profile, error)
	ProfileFunc        func(ctx context.Context, userID uint) (*domain.Profile, error)
}

// NewMockReferralService creates a new MockReferralService with default behaviors
func NewMockReferralService() *MockReferralService {
	return &MockReferralService{}
}

func (m *MockReferralService) ActivateInvite(ctx context.Context, user *domain.User, inviteCode string) (*domain.Profile, error) {
	if m.ActivateInviteFunc != nil {
		return m.ActivateInviteFunc(ctx, user, inviteCode)
	}
	return nil, domain.ErrInviteNotFound
}

func (m *MockReferralService) Profile(ctx context.Context, userID uint) (*domain.Profile, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

// Compile-time interface compliance verification
var _ domain.ReferralService = (*MockReferralService)(nil)
