package config

import (
	"os"
	"testing"

	"github.com/joho/godotenv"

	"github.com/Udilainer/referral-project/internal/config"
)

// LoadTestConfig loads configuration for E2E testing, preferring a
// .env.test file when one exists.
func LoadTestConfig(t *testing.T) *config.Config {
	t.Helper()

	if err := godotenv.Load(".env.test"); err != nil {
		t.Logf("no .env.test file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load test configuration: %v", err)
	}
	return cfg
}

// SetupTestEnvironment sets environment variables for the test
// duration and restores the originals on cleanup.
func SetupTestEnvironment(t *testing.T) {
	t.Helper()

	testEnvVars := map[string]string{
		"GIN_MODE":           "test",
		"PORT":               "8081",
		"DEV_MODE":           "true",
		"OTP_TTL":            "5m",
		"OTP_DISPATCH_DELAY": "0s",
		// Mock Twilio credentials. Empty from number keeps SMS
		// dispatch in mock-echo mode.
		"TWILIO_ACCOUNT_SID": "test_sid",
		"TWILIO_AUTH_TOKEN":  "test_token",
		"TWILIO_FROM_NUMBER": "",
	}

	for key, value := range testEnvVars {
		originalValue := os.Getenv(key)
		os.Setenv(key, value)

		t.Cleanup(func() {
			if originalValue == "" {
				os.Unsetenv(key)
			} else {
				os.Setenv(key, originalValue)
			}
		})
	}
}
