package domain

import "context"

// UserRepository defines user data access operations
type UserRepository interface {
	// GetOrCreateByPhone returns the user for phone, creating it when
	// absent. Concurrent callers for the same phone observe at most one
	// creation; the losers get the existing record and created=false.
	GetOrCreateByPhone(ctx context.Context, phone string) (user *User, created bool, err error)
	// SetInviteCode assigns code to a user that has none yet. Returns
	// ErrInviteCodeTaken when another user holds the code.
	SetInviteCode(ctx context.Context, userID uint, code string) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	FindByInvite(ctx context.Context, code string) (*User, error)
	// SetReferrer records a one-way referral. It succeeds only when the
	// user's referral slot is still empty and referrerID is not the user
	// itself; otherwise it returns ErrReferralConflict.
	SetReferrer(ctx context.Context, userID, referrerID uint) error
	// FindReferrals lists users whose referral slot points at referrerID.
	FindReferrals(ctx context.Context, referrerID uint) ([]*User, error)
}

// TokenRepository defines bearer token persistence
type TokenRepository interface {
	// IssueOrGet returns the user's token key, minting one on first use.
	IssueOrGet(ctx context.Context, userID uint) (string, error)
	FindUserIDByKey(ctx context.Context, key string) (uint, error)
}

// OTPStore is the ephemeral phone -> one-time-code mapping
type OTPStore interface {
	// Put sets the current code for phone, replacing any prior entry and
	// resetting its TTL.
	Put(ctx context.Context, phone, code string) error
	// TakeIfMatch consumes the entry for phone when it exists, has not
	// expired and equals code. A lost or evicted entry reads as no-match.
	TakeIfMatch(ctx context.Context, phone, code string) (bool, error)
}

// AuthService orchestrates the request-code / verify-code flow
type AuthService interface {
	// RequestCode mints an OTP for phone, stores it and hands it to the
	// SMS collaborator. The code is returned so development builds can
	// echo it; production handlers must not expose it.
	RequestCode(ctx context.Context, phone string) (string, error)
	VerifyCode(ctx context.Context, phone, code string) (*AuthResult, error)
}

// ReferralService manages the authenticated profile surface
type ReferralService interface {
	ActivateInvite(ctx context.Context, user *User, inviteCode string) (*Profile, error)
	Profile(ctx context.Context, userID uint) (*Profile, error)
}

// NotificationService defines notification operations
type NotificationService interface {
	SendSMS(to, message string) error
}
