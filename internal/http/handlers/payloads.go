package handlers

import "github.com/Udilainer/referral-project/domain"

// UserPayload is the wire shape of a user. ActivatedInviteCode carries
// the referrer's phone number, not the 6-char invite code.
type UserPayload struct {
	ID                  uint    `json:"id"`
	PhoneNumber         string  `json:"phone_number"`
	InviteCode          string  `json:"invite_code"`
	ActivatedInviteCode *string `json:"activated_invite_code"`
}

// ReferralPayload is a single entry of a profile's referrals list
type ReferralPayload struct {
	PhoneNumber string `json:"phone_number"`
}

// ProfilePayload extends UserPayload with the list of users who
// activated this user's invite code.
type ProfilePayload struct {
	UserPayload
	Referrals []ReferralPayload `json:"referrals"`
}

func newUserPayload(user *domain.User, referrerPhone string) UserPayload {
	payload := UserPayload{
		ID:          user.ID,
		PhoneNumber: user.PhoneNumber,
		InviteCode:  user.InviteCode,
	}
	if referrerPhone != "" {
		payload.ActivatedInviteCode = &referrerPhone
	}
	return payload
}

func newProfilePayload(profile *domain.Profile) ProfilePayload {
	referrals := make([]ReferralPayload, 0, len(profile.Referrals))
	for _, u := range profile.Referrals {
		referrals = append(referrals, ReferralPayload{PhoneNumber: u.PhoneNumber})
	}
	return ProfilePayload{
		UserPayload: newUserPayload(profile.User, profile.ReferrerPhone),
		Referrals:   referrals,
	}
}
