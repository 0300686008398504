package services

import (
	"regexp"
	"strings"

	"github.com/Udilainer/referral-project/domain"
)

var (
	phoneRe  = regexp.MustCompile(`^\+?[0-9]+$`)
	codeRe   = regexp.MustCompile(`^[0-9]{4}$`)
	inviteRe = regexp.MustCompile(`^[A-Z0-9]{6}$`)
)

// NormalizePhone strips spaces and hyphens from a raw phone number and
// validates the result: 10-15 characters, digits with an optional
// leading +. The normalized form is the canonical identity used by
// every store.
func NormalizePhone(raw string) (string, error) {
	phone := strings.NewReplacer(" ", "", "-", "").Replace(raw)
	if len(phone) < 10 || len(phone) > 15 || !phoneRe.MatchString(phone) {
		return "", domain.ErrInvalidPhone
	}
	return phone, nil
}

// ValidateOTPCode checks that code is exactly 4 digits.
func ValidateOTPCode(code string) error {
	if !codeRe.MatchString(code) {
		return domain.ErrInvalidCodeFormat
	}
	return nil
}

// ValidateInviteCode checks that code is exactly 6 uppercase
// alphanumeric characters.
func ValidateInviteCode(code string) error {
	if !inviteRe.MatchString(code) {
		return domain.ErrInvalidInviteFormat
	}
	return nil
}
