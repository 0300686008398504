package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	// DevMode gates the dev_code echo on /auth/request-code/. Must stay
	// off in production.
	DevMode bool `yaml:"dev_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type OTPConfig struct {
	TTL string `yaml:"ttl"`
	// DispatchDelay flattens the observable latency of SMS dispatch.
	// Latency shaping only, not a security control.
	DispatchDelay string `yaml:"dispatch_delay"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	OTP      OTPConfig      `yaml:"otp"`
	Twilio   TwilioConfig   `yaml:"twilio"`
}

type Config struct {
	Port             string
	GinMode          string
	DevMode          bool
	DSN              string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	OTPTTL           time.Duration
	OTPDispatchDelay time.Duration
	TwilioSID        string
	TwilioToken      string
	TwilioFrom       string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml (overridable via CONFIG_PATH) and falls
// back to environment variables when the file is absent.
func Load() (*Config, error) {
	path := env("CONFIG_PATH", "config/config.yml")

	configFile, err := loadConfigFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		return loadFromEnv()
	}

	otpTTL, err := time.ParseDuration(defaultStr(configFile.OTP.TTL, "300s"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP TTL: %w", err)
	}

	dispatchDelay, err := time.ParseDuration(defaultStr(configFile.OTP.DispatchDelay, "1500ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP dispatch delay: %w", err)
	}

	return &Config{
		Port:             fmt.Sprintf("%d", configFile.App.Port),
		GinMode:          defaultStr(configFile.App.GinMode, "release"),
		DevMode:          configFile.App.DevMode,
		DSN:              configFile.Database.DSN,
		RedisAddr:        configFile.Redis.Addr,
		RedisPassword:    configFile.Redis.Password,
		RedisDB:          configFile.Redis.DB,
		OTPTTL:           otpTTL,
		OTPDispatchDelay: dispatchDelay,
		TwilioSID:        configFile.Twilio.AccountSID,
		TwilioToken:      configFile.Twilio.AuthToken,
		TwilioFrom:       configFile.Twilio.FromNumber,
	}, nil
}

func loadFromEnv() (*Config, error) {
	otpTTL, err := time.ParseDuration(env("OTP_TTL", "300s"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP_TTL: %w", err)
	}

	dispatchDelay, err := time.ParseDuration(env("OTP_DISPATCH_DELAY", "1500ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid OTP_DISPATCH_DELAY: %w", err)
	}

	redisDB, err := strconv.Atoi(env("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	return &Config{
		Port:             env("PORT", "8080"),
		GinMode:          env("GIN_MODE", "release"),
		DevMode:          env("DEV_MODE", "false") == "true",
		DSN:              env("DATABASE_DSN", ""),
		RedisAddr:        env("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    env("REDIS_PASSWORD", ""),
		RedisDB:          redisDB,
		OTPTTL:           otpTTL,
		OTPDispatchDelay: dispatchDelay,
		TwilioSID:        env("TWILIO_ACCOUNT_SID", ""),
		TwilioToken:      env("TWILIO_AUTH_TOKEN", ""),
		TwilioFrom:       env("TWILIO_FROM_NUMBER", ""),
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func defaultStr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
