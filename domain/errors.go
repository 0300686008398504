package domain

import "errors"

// Validation errors
var (
	ErrInvalidPhone        = errors.New("phone number must be 10-15 digits with an optional + prefix")
	ErrInvalidCodeFormat   = errors.New("verification code must be exactly 4 digits")
	ErrInvalidInviteFormat = errors.New("invite code must be 6 uppercase letters or digits")
)

// OTP errors
var (
	ErrCodeInvalidOrExpired = errors.New("invalid or expired verification code")
)

// Referral errors
var (
	ErrInviteAlreadyActivated = errors.New("you have already activated an invite code")
	ErrInviteNotFound         = errors.New("invalid invite code")
	ErrSelfReferral           = errors.New("you cannot use your own invite code")
	// ErrReferralConflict is returned by the identity store when the
	// conditional referrer update matched no row; callers re-read the user
	// to tell the two causes apart.
	ErrReferralConflict = errors.New("referral precondition failed")
)

// Invite issuance errors
var (
	ErrInviteCodeTaken  = errors.New("invite code already taken")
	ErrInviteAlreadySet = errors.New("user already has an invite code")
	ErrInviteExhausted  = errors.New("invite code generation exhausted retries")
)

// Lookup errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrTokenNotFound = errors.New("token not found")
)
