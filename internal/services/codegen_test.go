package services

import (
	"regexp"
	"strings"
	"testing"
)

var (
	otpPattern    = regexp.MustCompile(`^[0-9]{4}$`)
	invitePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)
)

func TestGenerateOTPCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateOTPCode()
		if err != nil {
			t.Fatalf("GenerateOTPCode() error: %v", err)
		}
		if !otpPattern.MatchString(code) {
			t.Fatalf("OTP code %q does not match ^[0-9]{4}$", code)
		}
	}
}

func TestGenerateInviteCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateInviteCode()
		if err != nil {
			t.Fatalf("GenerateInviteCode() error: %v", err)
		}
		if !invitePattern.MatchString(code) {
			t.Fatalf("invite code %q does not match ^[A-Z0-9]{6}$", code)
		}
	}
}

func TestGenerateInviteCode_CharsetOnly(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := GenerateInviteCode()
		if err != nil {
			t.Fatalf("GenerateInviteCode() error: %v", err)
		}
		for _, c := range code {
			if !strings.ContainsRune(inviteCharset, c) {
				t.Fatalf("invite code %q contains character %q outside the charset", code, c)
			}
		}
	}
}
