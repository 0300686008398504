package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	otpLength    = 4
	inviteLength = 6

	inviteCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateOTPCode returns a 4-digit one-time code. Leading zeros are
// preserved, so the result is always exactly 4 characters.
func GenerateOTPCode() (string, error) {
	digits := make([]byte, otpLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// GenerateInviteCode returns a 6-character code drawn uniformly from
// A-Z and 0-9. Invite codes are user-visible and globally unique, so
// the randomness source is crypto/rand.
func GenerateInviteCode() (string, error) {
	chars := make([]byte, inviteLength)
	for i := range chars {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(inviteCharset))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random character: %w", err)
		}
		chars[i] = inviteCharset[n.Int64()]
	}
	return string(chars), nil
}
