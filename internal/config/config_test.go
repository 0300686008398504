package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	content := `
app:
  port: 9090
  gin_mode: debug
  dev_mode: true
database:
  dsn: "host=db user=u dbname=d"
redis:
  addr: "redis:6379"
  db: 3
otp:
  ttl: 120s
  dispatch_delay: 0s
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if !cfg.DevMode {
		t.Error("expected dev mode on")
	}
	if cfg.RedisAddr != "redis:6379" || cfg.RedisDB != 3 {
		t.Errorf("unexpected redis config %s/%d", cfg.RedisAddr, cfg.RedisDB)
	}
	if cfg.OTPTTL != 120*time.Second {
		t.Errorf("expected OTP TTL 120s, got %v", cfg.OTPTTL)
	}
	if cfg.OTPDispatchDelay != 0 {
		t.Errorf("expected zero dispatch delay, got %v", cfg.OTPDispatchDelay)
	}
}

func TestLoad_EnvFallback(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yml"))
	t.Setenv("PORT", "8181")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("OTP_TTL", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Port != "8181" {
		t.Errorf("expected port 8181, got %s", cfg.Port)
	}
	if !cfg.DevMode {
		t.Error("expected dev mode on")
	}
	if cfg.OTPTTL != 45*time.Second {
		t.Errorf("expected OTP TTL 45s, got %v", cfg.OTPTTL)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("otp:\n  ttl: nonsense\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONFIG_PATH", path)

	if _, err := Load(); err == nil {
		t.Error("expected error for invalid duration")
	}
}
