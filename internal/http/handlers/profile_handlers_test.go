package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Udilainer/referral-project/domain"
	"github.com/Udilainer/referral-project/internal/http/middleware"
	"github.com/Udilainer/referral-project/internal/mocks"
)

// profileRouter injects a fixed authenticated user so the handlers can
// be exercised without the token middleware.
func profileRouter(referralSvc domain.ReferralService, user *domain.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserContextKey, user)
		c.Next()
	})
	h := NewProfileHandlers(referralSvc)
	r.GET("/profile/", h.Get)
	r.POST("/profile/", h.Activate)
	return r
}

func TestProfileHandlers_Get(t *testing.T) {
	owner := &domain.User{ID: 1, PhoneNumber: "+15550000001", InviteCode: "AB12CD"}

	t.Run("returns profile with referrals", func(t *testing.T) {
		referralSvc := mocks.NewMockReferralService()
		referralSvc.ProfileFunc = func(ctx context.Context, userID uint) (*domain.Profile, error) {
			if userID != owner.ID {
				t.Errorf("Profile called with userID %d, want %d", userID, owner.ID)
			}
			return &domain.Profile{
				User: owner,
				Referrals: []*domain.User{
					{ID: 2, PhoneNumber: "+15550000002"},
					{ID: 3, PhoneNumber: "+15550000003"},
				},
			}, nil
		}

		w := performJSON(t, profileRouter(referralSvc, owner), http.MethodGet, "/profile/", nil, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		body := decodeBody(t, w)
		if body["phone_number"] != "+15550000001" {
			t.Errorf("unexpected phone %v", body["phone_number"])
		}
		if body["invite_code"] != "AB12CD" {
			t.Errorf("unexpected invite code %v", body["invite_code"])
		}

		referrals := body["referrals"].([]interface{})
		if len(referrals) != 2 {
			t.Fatalf("referrals length = %d, want 2", len(referrals))
		}
		first := referrals[0].(map[string]interface{})
		if first["phone_number"] != "+15550000002" {
			t.Errorf("unexpected referral %v", first)
		}
		if len(first) != 1 {
			t.Errorf("referral entries expose only phone_number, got %v", first)
		}
	})

	t.Run("empty referral list serializes as an array", func(t *testing.T) {
		referralSvc := mocks.NewMockReferralService()
		referralSvc.ProfileFunc = func(ctx context.Context, userID uint) (*domain.Profile, error) {
			return &domain.Profile{User: owner}, nil
		}

		w := performJSON(t, profileRouter(referralSvc, owner), http.MethodGet, "/profile/", nil, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		referrals, ok := decodeBody(t, w)["referrals"].([]interface{})
		if !ok {
			t.Fatalf("referrals is not an array: %s", w.Body.String())
		}
		if len(referrals) != 0 {
			t.Errorf("referrals length = %d, want 0", len(referrals))
		}
	})

	t.Run("store failure maps to generic 500", func(t *testing.T) {
		referralSvc := mocks.NewMockReferralService()
		referralSvc.ProfileFunc = func(ctx context.Context, userID uint) (*domain.Profile, error) {
			return nil, context.DeadlineExceeded
		}

		w := performJSON(t, profileRouter(referralSvc, owner), http.MethodGet, "/profile/", nil, nil)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want 500", w.Code)
		}
	})
}

func TestProfileHandlers_Activate(t *testing.T) {
	user := &domain.User{ID: 2, PhoneNumber: "+15550000002", InviteCode: "EF34GH"}

	t.Run("successful activation returns the updated profile", func(t *testing.T) {
		referrerID := uint(1)
		referralSvc := mocks.NewMockReferralService()
		referralSvc.ActivateInviteFunc = func(ctx context.Context, u *domain.User, code string) (*domain.Profile, error) {
			if code != "AB12CD" {
				t.Errorf("ActivateInvite called with code %q", code)
			}
			if u.ID != user.ID {
				t.Errorf("ActivateInvite called for user %d, want %d", u.ID, user.ID)
			}
			activated := *user
			activated.ReferrerID = &referrerID
			return &domain.Profile{User: &activated, ReferrerPhone: "+15550000001"}, nil
		}

		w := performJSON(t, profileRouter(referralSvc, user), http.MethodPost, "/profile/",
			gin.H{"invite_code": "AB12CD"}, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		body := decodeBody(t, w)
		if body["message"] != "Invite code activated successfully." {
			t.Errorf("unexpected message %v", body["message"])
		}
		profile := body["profile"].(map[string]interface{})
		if profile["activated_invite_code"] != "+15550000001" {
			t.Errorf("activated_invite_code = %v, want referrer phone", profile["activated_invite_code"])
		}
	})

	t.Run("client errors map to 400 with the sentinel message", func(t *testing.T) {
		for _, sentinel := range []error{
			domain.ErrInvalidInviteFormat,
			domain.ErrInviteNotFound,
			domain.ErrSelfReferral,
			domain.ErrInviteAlreadyActivated,
		} {
			referralSvc := mocks.NewMockReferralService()
			referralSvc.ActivateInviteFunc = func(ctx context.Context, u *domain.User, code string) (*domain.Profile, error) {
				return nil, sentinel
			}

			w := performJSON(t, profileRouter(referralSvc, user), http.MethodPost, "/profile/",
				gin.H{"invite_code": "AB12CD"}, nil)

			if w.Code != http.StatusBadRequest {
				t.Errorf("%v: status = %d, want 400", sentinel, w.Code)
			}
			if decodeBody(t, w)["error"] != sentinel.Error() {
				t.Errorf("%v: unexpected error body %s", sentinel, w.Body.String())
			}
		}
	})

	t.Run("missing invite_code maps to 400", func(t *testing.T) {
		w := performJSON(t, profileRouter(mocks.NewMockReferralService(), user), http.MethodPost,
			"/profile/", gin.H{}, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
	})
}
