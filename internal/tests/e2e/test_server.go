package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	httpx "github.com/Udilainer/referral-project/internal/http"
	"github.com/Udilainer/referral-project/internal/http/handlers"
	"github.com/Udilainer/referral-project/internal/http/middleware"
	"github.com/Udilainer/referral-project/internal/infrastructure/audit"
	"github.com/Udilainer/referral-project/internal/infrastructure/notifications"
	"github.com/Udilainer/referral-project/internal/infrastructure/repositories"
	"github.com/Udilainer/referral-project/internal/services"
	testconfig "github.com/Udilainer/referral-project/internal/tests/config"
)

// TestServer runs the full HTTP stack against in-process
// infrastructure: sqlite instead of postgres, miniredis instead of
// redis, and the mock-echo SMS sender.
type TestServer struct {
	Router *gin.Engine
	Redis  *miniredis.Miniredis
	DB     *gorm.DB
}

func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testconfig.SetupTestEnvironment(t)
	cfg := testconfig.LoadTestConfig(t)
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Each pooled connection would get its own in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&repositories.DBUser{}, &repositories.DBToken{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewTokenRepository(db)
	otpStore := services.NewOTPStore(rdb, cfg.OTPTTL)
	notificationSvc := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)
	auditLogger := audit.NewLogAuditLogger(nil)

	authSvc := services.NewAuthService(userRepo, tokenRepo, otpStore, notificationSvc, auditLogger,
		services.AuthConfig{DispatchDelay: cfg.OTPDispatchDelay})
	referralSvc := services.NewReferralService(userRepo, auditLogger)

	authH := handlers.NewAuthHandlers(authSvc, cfg.DevMode)
	profileH := handlers.NewProfileHandlers(referralSvc)
	tokenMW := middleware.NewTokenAuthMW(tokenRepo, userRepo)

	return &TestServer{
		Router: httpx.BuildRouter(authH, profileH, tokenMW),
		Redis:  mr,
		DB:     db,
	}
}

// Do performs a request against the in-process router.
func (s *TestServer) Do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

// JSON decodes a recorded response body.
func JSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

// SignUp walks a phone number through request-code and verify-code and
// returns the issued token. Relies on dev mode echoing the code.
func (s *TestServer) SignUp(t *testing.T, phone string) (token string, user map[string]interface{}) {
	t.Helper()

	w := s.Do(t, http.MethodPost, "/auth/request-code/", "", gin.H{"phone_number": phone})
	if w.Code != http.StatusOK {
		t.Fatalf("request-code for %s: status %d: %s", phone, w.Code, w.Body.String())
	}
	code, ok := JSON(t, w)["dev_code"].(string)
	if !ok {
		t.Fatalf("dev_code missing from request-code response: %s", w.Body.String())
	}

	w = s.Do(t, http.MethodPost, "/auth/verify-code/", "", gin.H{"phone_number": phone, "code": code})
	if w.Code != http.StatusOK {
		t.Fatalf("verify-code for %s: status %d: %s", phone, w.Code, w.Body.String())
	}
	body := JSON(t, w)
	return body["token"].(string), body["user"].(map[string]interface{})
}
