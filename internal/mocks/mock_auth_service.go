package mocks

import (
	"context"

	"github.com/Udilainer/referral-project/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RequestCodeFunc func(ctx context.Context, phone string) (string, error)
	VerifyCodeFunc  func(ctx context.Context, phone, code string) (*domain.AuthResult, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) RequestCode(ctx context.Context, phone string) (string, error) {
	if m.RequestCodeFunc != nil {
		return m.RequestCodeFunc(ctx, phone)
	}
	return "4217", nil
}

func (m *MockAuthService) VerifyCode(ctx context.Context, phone, code string) (*domain.AuthResult, error) {
	if m.VerifyCodeFunc != nil {
		return m.VerifyCodeFunc(ctx, phone, code)
	}
	return nil, domain.ErrCodeInvalidOrExpired
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
