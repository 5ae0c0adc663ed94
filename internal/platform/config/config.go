package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	IsProduction bool

	// Durable session store (rememberMe=true sessions and branch preferences).
	SessionStorePath string

	// Session token signing.
	SessionSecret string
	SessionIssuer string
	SessionExpiry time.Duration

	// Password reset tokens.
	ResetTokenTTL time.Duration

	// Second-factor challenges.
	SecondFactorTTL         time.Duration
	SecondFactorMaxAttempts int

	// Login attempt rate in ulule/limiter format, e.g. "10-M".
	LoginAttemptRate string

	// Cron spec for the overdue-debt sweep.
	DebtSweepSpec string
}

// LoadConfig loads configuration from environment variables and a .env file if
// present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("SESSION_STORE_PATH", "backoffice_sessions.db")
	viper.SetDefault("SESSION_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("SESSION_ISSUER", "tableside-backoffice")
	viper.SetDefault("SESSION_EXPIRY", "720h")
	viper.SetDefault("RESET_TOKEN_TTL", "1h")
	viper.SetDefault("SECOND_FACTOR_TTL", "5m")
	viper.SetDefault("SECOND_FACTOR_MAX_ATTEMPTS", 5)
	viper.SetDefault("LOGIN_ATTEMPT_RATE", "10-M")
	viper.SetDefault("DEBT_SWEEP_SPEC", "@hourly")

	viper.AutomaticEnv()

	cfg := &Config{}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.SessionStorePath = viper.GetString("SESSION_STORE_PATH")

	cfg.SessionSecret = viper.GetString("SESSION_SECRET")
	if cfg.SessionSecret == "a-very-secret-key-should-be-longer-and-random" && cfg.IsProduction {
		log.Println("Warning: SESSION_SECRET is the default insecure key. Set it in production.")
	}

	cfg.SessionIssuer = viper.GetString("SESSION_ISSUER")

	cfg.SessionExpiry = parseDurationOr("SESSION_EXPIRY", 720*time.Hour)
	cfg.ResetTokenTTL = parseDurationOr("RESET_TOKEN_TTL", time.Hour)
	cfg.SecondFactorTTL = parseDurationOr("SECOND_FACTOR_TTL", 5*time.Minute)

	cfg.SecondFactorMaxAttempts = viper.GetInt("SECOND_FACTOR_MAX_ATTEMPTS")
	if cfg.SecondFactorMaxAttempts <= 0 {
		cfg.SecondFactorMaxAttempts = 5
		log.Printf("Warning: SECOND_FACTOR_MAX_ATTEMPTS must be positive. Defaulting to %d.\n", cfg.SecondFactorMaxAttempts)
	}

	cfg.LoginAttemptRate = viper.GetString("LOGIN_ATTEMPT_RATE")
	cfg.DebtSweepSpec = viper.GetString("DEBT_SWEEP_SPEC")

	return cfg, nil
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
