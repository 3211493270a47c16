package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Jeffreasy/LaventeCareTestAccount/internal/account"
	"github.com/Jeffreasy/LaventeCareTestAccount/internal/auth"
)

// Config holds all application configuration.
type Config struct {
	Env       string
	Port      string
	SentryDSN string

	UserIDType     account.UserIDType
	DefaultUserID  string
	DefaultAccount bool
	OmitNameOnce   bool
	Latency        time.Duration
	ResetLatency   time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		Env:       getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "8080"),
		SentryDSN: os.Getenv("SENTRY_DSN"),

		UserIDType:     getEnvAsUserIDType("ACCOUNT_USER_ID_TYPE", account.UserIDEmail),
		DefaultUserID:  os.Getenv("ACCOUNT_DEFAULT_USER_ID"),
		DefaultAccount: getEnvAsBool("ACCOUNT_DEFAULT_SIGNED_IN", false),
		OmitNameOnce:   getEnvAsBool("ACCOUNT_OMIT_NAME_ONCE", false),
		Latency:        getEnvAsDuration("ACCOUNT_LATENCY", auth.DefaultLatency),
		ResetLatency:   getEnvAsDuration("ACCOUNT_RESET_LATENCY", auth.DefaultResetLatency),

		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 100),
	}
}

// ServiceConfig projects the account settings for the mock service.
// A zero latency from the environment turns the delay off.
func (c Config) ServiceConfig() auth.ServiceConfig {
	return auth.ServiceConfig{
		UserIDType:     c.UserIDType,
		DefaultUserID:  c.DefaultUserID,
		DefaultAccount: c.DefaultAccount,
		OmitNameOnce:   c.OmitNameOnce,
		Latency:        orNoLatency(c.Latency),
		ResetLatency:   orNoLatency(c.ResetLatency),
	}
}

func orNoLatency(d time.Duration) time.Duration {
	if d == 0 {
		return auth.NoLatency
	}
	return d
}

func getEnv(name, defaultVal string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return defaultVal
}

// Helper to read boolean env vars
func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

func getEnvAsInt(name string, defaultVal int) int {
	val, err := strconv.Atoi(os.Getenv(name))
	if err != nil || val <= 0 {
		return defaultVal
	}
	return val
}

func getEnvAsFloat(name string, defaultVal float64) float64 {
	val, err := strconv.ParseFloat(os.Getenv(name), 64)
	if err != nil || val <= 0 {
		return defaultVal
	}
	return val
}

// Durations accept Go syntax ("1s", "250ms"); "0" disables the delay.
func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}
	val, err := time.ParseDuration(valStr)
	if err != nil || val < 0 {
		return defaultVal
	}
	return val
}

func getEnvAsUserIDType(name string, defaultVal account.UserIDType) account.UserIDType {
	switch strings.ToLower(os.Getenv(name)) {
	case "email", "emailaddress":
		return account.UserIDEmail
	case "username":
		return account.UserIDUsername
	default:
		return defaultVal
	}
}
