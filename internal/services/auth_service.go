package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Udilainer/referral-project/domain"
)

// defaultInviteAttempts bounds the invite assignment retry loop. The
// code space is 36^6, so hitting the cap means something is badly
// wrong with the store or the randomness source.
const defaultInviteAttempts = 10

// AuthConfig carries the coordinator's tunables.
type AuthConfig struct {
	// DispatchDelay flattens the observable latency of SMS dispatch on
	// request-code. Zero disables it.
	DispatchDelay time.Duration
	// InviteAttempts caps the invite assignment retry loop. Zero means
	// the default of 10.
	InviteAttempts int
}

// AuthServiceImpl implements domain.AuthService. It is the only
// component that crosses the OTP, identity and token stores.
type AuthServiceImpl struct {
	userRepo        domain.UserRepository
	tokenRepo       domain.TokenRepository
	otpStore        domain.OTPStore
	notificationSvc domain.NotificationService
	audit           domain.AuditLogger
	config          AuthConfig
}

// NewAuthService creates the auth coordinator.
func NewAuthService(
	userRepo domain.UserRepository,
	tokenRepo domain.TokenRepository,
	otpStore domain.OTPStore,
	notificationSvc domain.NotificationService,
	audit domain.AuditLogger,
	config AuthConfig,
) domain.AuthService {
	if config.InviteAttempts <= 0 {
		config.InviteAttempts = defaultInviteAttempts
	}
	return &AuthServiceImpl{
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		otpStore:        otpStore,
		notificationSvc: notificationSvc,
		audit:           audit,
		config:          config,
	}
}

// RequestCode implements domain.AuthService. It never creates or reads
// a user; replaying it for the same phone replaces the code and resets
// its TTL.
func (s *AuthServiceImpl) RequestCode(ctx context.Context, rawPhone string) (string, error) {
	phone, err := NormalizePhone(rawPhone)
	if err != nil {
		return "", err
	}

	code, err := GenerateOTPCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate auth code: %w", err)
	}

	if err := s.otpStore.Put(ctx, phone, code); err != nil {
		return "", fmt.Errorf("failed to cache auth code: %w", err)
	}

	message := fmt.Sprintf("Your verification code is: %s", code)
	if err := s.notificationSvc.SendSMS(phone, message); err != nil {
		return "", fmt.Errorf("failed to send verification SMS: %w", err)
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.CodeRequestedEvent).WithPhone(phone))

	if s.config.DispatchDelay > 0 {
		select {
		case <-time.After(s.config.DispatchDelay):
		case <-ctx.Done():
		}
	}

	return code, nil
}

// VerifyCode implements domain.AuthService. The code is consumed before
// any user is materialised, so a failed verification never creates an
// account. Repeated successful verifications for one phone yield the
// same user, invite code and token.
func (s *AuthServiceImpl) VerifyCode(ctx context.Context, rawPhone, code string) (*domain.AuthResult, error) {
	phone, err := NormalizePhone(rawPhone)
	if err != nil {
		return nil, err
	}
	if err := ValidateOTPCode(code); err != nil {
		return nil, err
	}

	ok, err := s.otpStore.TakeIfMatch(ctx, phone, code)
	if err != nil {
		return nil, fmt.Errorf("failed to check auth code: %w", err)
	}
	if !ok {
		// Absent, expired and mismatched are indistinguishable here, and
		// so is a phone nobody ever requested a code for.
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.CodeVerifyFailedEvent).
			WithPhone(phone).
			WithError(domain.ErrCodeInvalidOrExpired))
		return nil, domain.ErrCodeInvalidOrExpired
	}

	user, created, err := s.userRepo.GetOrCreateByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create user: %w", err)
	}

	// A user without an invite code is still invite-pending: either we
	// just created it, or an earlier signup crashed between the two
	// writes. Both cases are repaired here, before the response returns.
	if user.InviteCode == "" {
		if err := s.assignInviteCode(ctx, user); err != nil {
			return nil, err
		}
	}

	if created {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserRegisteredEvent).
			WithUser(user.ID).
			WithPhone(phone))
	}

	token, err := s.tokenRepo.IssueOrGet(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	if created {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.TokenIssuedEvent).WithUser(user.ID))
	}

	referrerPhone, err := s.referrerPhone(ctx, user)
	if err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.CodeVerifiedEvent).
		WithUser(user.ID).
		WithPhone(phone).
		WithMetadata("is_new_user", created))

	return &domain.AuthResult{
		User:          user,
		ReferrerPhone: referrerPhone,
		Token:         token,
		IsNewUser:     created,
	}, nil
}

// assignInviteCode mints codes until one sticks. Collisions with other
// concurrent signups resolve at the unique index and retry here.
func (s *AuthServiceImpl) assignInviteCode(ctx context.Context, user *domain.User) error {
	for attempt := 0; attempt < s.config.InviteAttempts; attempt++ {
		code, err := GenerateInviteCode()
		if err != nil {
			return fmt.Errorf("failed to generate invite code: %w", err)
		}

		err = s.userRepo.SetInviteCode(ctx, user.ID, code)
		if err == nil {
			user.InviteCode = code
			return nil
		}
		if errors.Is(err, domain.ErrInviteCodeTaken) {
			continue
		}
		if errors.Is(err, domain.ErrInviteAlreadySet) {
			// A concurrent duplicate verification won the assignment race.
			fresh, ferr := s.userRepo.FindByID(ctx, user.ID)
			if ferr != nil {
				return fmt.Errorf("failed to reload user after invite race: %w", ferr)
			}
			*user = *fresh
			return nil
		}
		return fmt.Errorf("failed to assign invite code: %w", err)
	}
	return domain.ErrInviteExhausted
}

func (s *AuthServiceImpl) referrerPhone(ctx context.Context, user *domain.User) (string, error) {
	if user.ReferrerID == nil {
		return "", nil
	}
	referrer, err := s.userRepo.FindByID(ctx, *user.ReferrerID)
	if err != nil {
		return "", fmt.Errorf("failed to load referrer: %w", err)
	}
	return referrer.PhoneNumber, nil
}
