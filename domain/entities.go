package domain

import "time"

// User represents an account identified by its phone number.
type User struct {
	ID          uint
	PhoneNumber string
	// InviteCode is the user's own 6-char [A-Z0-9] code. It is empty only
	// transiently while account creation is still assigning one; such a
	// user is invisible to invite lookups.
	InviteCode string
	// ReferrerID points at the user whose invite code this user activated.
	// Nil until activation; write-once afterwards.
	ReferrerID *uint
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasActivatedInvite reports whether the user already activated a referrer.
func (u *User) HasActivatedInvite() bool {
	return u.ReferrerID != nil
}

// Token is the opaque bearer credential bound one-to-one to a user.
type Token struct {
	Key       string
	UserID    uint
	CreatedAt time.Time
}

// AuthResult represents the outcome of a successful code verification.
type AuthResult struct {
	User *User
	// ReferrerPhone is the phone number of the user's referrer, empty when
	// the user has not activated an invite code.
	ReferrerPhone string
	Token         string
	IsNewUser     bool
}

// Profile is the authenticated user's view of their own account,
// including the users they referred.
type Profile struct {
	User          *User
	ReferrerPhone string
	Referrals     []*User
}
