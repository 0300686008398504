package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Udilainer/referral-project/domain"
)

// ReferralServiceImpl implements domain.ReferralService. The referral
// slot of a user moves Unset -> Set(referrer) exactly once; Set is
// terminal.
type ReferralServiceImpl struct {
	userRepo domain.UserRepository
	audit    domain.AuditLogger
}

// NewReferralService creates the referral service.
func NewReferralService(userRepo domain.UserRepository, audit domain.AuditLogger) domain.ReferralService {
	return &ReferralServiceImpl{
		userRepo: userRepo,
		audit:    audit,
	}
}

// ActivateInvite implements domain.ReferralService. The in-memory
// checks are advisory; the store's conditional update is authoritative
// under concurrency, and its failure is re-read to report the right
// cause.
func (s *ReferralServiceImpl) ActivateInvite(ctx context.Context, user *domain.User, inviteCode string) (*domain.Profile, error) {
	if err := ValidateInviteCode(inviteCode); err != nil {
		return nil, err
	}

	if user.HasActivatedInvite() {
		return nil, domain.ErrInviteAlreadyActivated
	}

	referrer, err := s.userRepo.FindByInvite(ctx, inviteCode)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to look up invite code: %w", err)
	}

	if referrer.ID == user.ID {
		return nil, domain.ErrSelfReferral
	}

	if err := s.userRepo.SetReferrer(ctx, user.ID, referrer.ID); err != nil {
		if errors.Is(err, domain.ErrReferralConflict) {
			cause := s.conflictCause(ctx, user.ID, referrer.ID)
			s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.InviteActivateFailedEvent).
				WithUser(user.ID).
				WithError(cause))
			return nil, cause
		}
		return nil, fmt.Errorf("failed to set referrer: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.InviteActivatedEvent).
		WithUser(user.ID).
		WithMetadata("referrer_id", referrer.ID))

	return s.Profile(ctx, user.ID)
}

// conflictCause re-reads the user after a conditional-update miss and
// maps it to the error the caller should see.
func (s *ReferralServiceImpl) conflictCause(ctx context.Context, userID, referrerID uint) error {
	fresh, err := s.userRepo.FindByID(ctx, userID)
	if err == nil && fresh.HasActivatedInvite() {
		return domain.ErrInviteAlreadyActivated
	}
	if userID == referrerID {
		return domain.ErrSelfReferral
	}
	return domain.ErrInviteAlreadyActivated
}

// Profile implements domain.ReferralService.
func (s *ReferralServiceImpl) Profile(ctx context.Context, userID uint) (*domain.Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	var referrerPhone string
	if user.ReferrerID != nil {
		referrer, err := s.userRepo.FindByID(ctx, *user.ReferrerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load referrer: %w", err)
		}
		referrerPhone = referrer.PhoneNumber
	}

	referrals, err := s.userRepo.FindReferrals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load referrals: %w", err)
	}

	return &domain.Profile{
		User:          user,
		ReferrerPhone: referrerPhone,
		Referrals:     referrals,
	}, nil
}
