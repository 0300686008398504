package mocks

import (
	"context"

	"github.com/Udilainer/referral-project/domain"
)

// MockOTPStore implements domain.OTPStore for testing
type MockOTPStore struct {
	PutFunc         func(ctx context.Context, phone, code string) error
	TakeIfMatchFunc func(ctx context.Context, phone, code string) (bool, error)
}

// NewMockOTPStore creates a new MockOTPStore with default behaviors
func NewMockOTPStore() *MockOTPStore {
	return &MockOTPStore{}
}

func (m *MockOTPStore) Put(ctx context.Context, phone, code string) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, phone, code)
	}
	return nil
}

func (m *MockOTPStore) TakeIfMatch(ctx context.Context, phone, code string) (bool, error) {
	if m.TakeIfMatchFunc != nil {
		return m.TakeIfMatchFunc(ctx, phone, code)
	}
	// Default behavior: no match
	return false, nil
}

// Compile-time interface compliance verification
var _ domain.OTPStore = (*MockOTPStore)(nil)
