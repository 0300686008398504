package mocks

import (
	"context"

	"github.com/Udilainer/referral-project/domain"
)

// MockTokenRepository implements domain.TokenRepository for testing
type MockTokenRepository struct {
	IssueOrGetFunc      func(ctx context.Context, userID uint) (string, error)
	FindUserIDByKeyFunc func(ctx context.Context, key string) (uint, error)
}

// NewMockTokenRepository creates a new MockTokenRepository with default behaviors
func NewMockTokenRepository() *MockTokenRepository {
	return &MockTokenRepository{}
}

func (m *MockTokenRepository) IssueOrGet(ctx context.Context, userID uint) (string, error) {
	if m.IssueOrGetFunc != nil {
		return m.IssueOrGetFunc(ctx, userID)
	}
	// Default behavior: deterministic 40-hex key
	return "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef", nil
}

func (m *MockTokenRepository) FindUserIDByKey(ctx context.Context, key string) (uint, error) {
	if m.FindUserIDByKeyFunc != nil {
		return m.FindUserIDByKeyFunc(ctx, key)
	}
	return 0, domain.ErrTokenNotFound
}

// Compile-time interface compliance verification
var _ domain.TokenRepository = (*MockTokenRepository)(nil)
