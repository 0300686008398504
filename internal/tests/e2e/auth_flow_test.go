package e2e

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoint(t *testing.T) {
	srv := NewTestServer(t)

	w := srv.Do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

// TestFullAuthFlow walks one phone number through the complete journey:
// request code -> wrong guess -> verify -> replay -> second sign-in.
func TestFullAuthFlow(t *testing.T) {
	srv := NewTestServer(t)
	phone := "+15551234567"

	w := srv.Do(t, http.MethodPost, "/auth/request-code/", "", gin.H{"phone_number": phone})
	require.Equal(t, http.StatusOK, w.Code, "request-code should succeed: %s", w.Body.String())
	code, ok := JSON(t, w)["dev_code"].(string)
	require.True(t, ok, "dev mode should echo the code")
	assert.Regexp(t, `^\d{4}$`, code, "code should be 4 digits")

	// A wrong guess must not consume the stored code.
	if code == "0000" {
		t.Skip("generated code collides with the wrong-guess probe")
	}
	w = srv.Do(t, http.MethodPost, "/auth/verify-code/", "", gin.H{"phone_number": phone, "code": "0000"})
	require.Equal(t, http.StatusBadRequest, w.Code, "wrong code should be rejected")

	// The real code still verifies and registers the user.
	w = srv.Do(t, http.MethodPost, "/auth/verify-code/", "", gin.H{"phone_number": phone, "code": code})
	require.Equal(t, http.StatusOK, w.Code, "verify-code should succeed: %s", w.Body.String())
	body := JSON(t, w)
	assert.Equal(t, true, body["is_new_user"], "first verification should register the user")

	token, _ := body["token"].(string)
	assert.Regexp(t, `^[0-9a-f]{40}$`, token)

	user := body["user"].(map[string]interface{})
	assert.Regexp(t, `^[A-Z0-9]{6}$`, user["invite_code"])
	assert.Nil(t, user["activated_invite_code"], "fresh user has no referrer")

	// The code is single use.
	w = srv.Do(t, http.MethodPost, "/auth/verify-code/", "", gin.H{"phone_number": phone, "code": code})
	require.Equal(t, http.StatusBadRequest, w.Code, "replayed code should be rejected")

	// A second sign-in keeps the identity and the token stable.
	token2, user2 := srv.SignUp(t, phone)
	assert.Equal(t, token, token2, "token should be stable across sign-ins")
	assert.Equal(t, user["invite_code"], user2["invite_code"], "invite code should be stable across sign-ins")
}

func TestProfileRequiresToken(t *testing.T) {
	srv := NewTestServer(t)

	w := srv.Do(t, http.MethodGet, "/profile/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "missing token should be rejected")

	w = srv.Do(t, http.MethodGet, "/profile/", "ffffffffffffffffffffffffffffffffffffffff", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "unknown token should be rejected")
}

func TestInviteActivationFlow(t *testing.T) {
	srv := NewTestServer(t)

	referrerToken, referrerUser := srv.SignUp(t, "+15550000001")
	inviteCode := referrerUser["invite_code"].(string)
	inviteeToken, _ := srv.SignUp(t, "+15550000002")

	// Activate the referrer's invite.
	w := srv.Do(t, http.MethodPost, "/profile/", inviteeToken, gin.H{"invite_code": inviteCode})
	require.Equal(t, http.StatusOK, w.Code, "activation should succeed: %s", w.Body.String())
	profile := JSON(t, w)["profile"].(map[string]interface{})
	assert.Equal(t, "+15550000001", profile["activated_invite_code"],
		"activated invite serializes as the referrer's phone")

	// Activation is write-once, even for the same code.
	w = srv.Do(t, http.MethodPost, "/profile/", inviteeToken, gin.H{"invite_code": inviteCode})
	assert.Equal(t, http.StatusBadRequest, w.Code, "second activation should be rejected")

	// The invitee appears in the referrer's referral list.
	w = srv.Do(t, http.MethodGet, "/profile/", referrerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	referrals := JSON(t, w)["referrals"].([]interface{})
	require.Len(t, referrals, 1)
	assert.Equal(t, "+15550000002", referrals[0].(map[string]interface{})["phone_number"])

	// The invitee's own profile reflects the activation.
	w = srv.Do(t, http.MethodGet, "/profile/", inviteeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := JSON(t, w)
	assert.Equal(t, "+15550000001", body["activated_invite_code"])
	assert.Empty(t, body["referrals"], "invitee has no referrals of their own")
}

func TestInviteActivationRejections(t *testing.T) {
	srv := NewTestServer(t)

	token, user := srv.SignUp(t, "+15550000001")
	own := user["invite_code"].(string)

	cases := []struct {
		name string
		code string
	}{
		{"own code", own},
		{"unknown code", "ZZZZ99"},
		{"malformed code", "ab12cd"},
		{"too short", "AB12"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := srv.Do(t, http.MethodPost, "/profile/", token, gin.H{"invite_code": tc.code})
			assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", w.Body.String())
		})
	}
}

func TestOTPExpiry(t *testing.T) {
	srv := NewTestServer(t)
	phone := "+15551234567"

	w := srv.Do(t, http.MethodPost, "/auth/request-code/", "", gin.H{"phone_number": phone})
	require.Equal(t, http.StatusOK, w.Code)
	code := JSON(t, w)["dev_code"].(string)

	srv.Redis.FastForward(6 * time.Minute)

	w = srv.Do(t, http.MethodPost, "/auth/verify-code/", "", gin.H{"phone_number": phone, "code": code})
	require.Equal(t, http.StatusBadRequest, w.Code, "expired code should be rejected")
}
