package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/klinikore/klinik-ledger/internal/core/domain"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// LoginRateLimit is a ulule/limiter formatted rate, e.g. "10-M".
	LoginRateLimit string

	// OverdraftPolicy states which account kinds may go below zero.
	OverdraftPolicy domain.OverdraftPolicy
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "8h")
	viper.SetDefault("JWT_ISSUER", "klinik-ledger")
	viper.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	viper.SetDefault("ALLOW_NEGATIVE_CASH", true)
	viper.SetDefault("ALLOW_NEGATIVE_BANK", true)
	viper.SetDefault("ALLOW_NEGATIVE_POS", true)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 8 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	cfg.OverdraftPolicy = domain.OverdraftPolicy{
		AllowNegative: map[domain.AccountKind]bool{
			domain.Cash: viper.GetBool("ALLOW_NEGATIVE_CASH"),
			domain.Bank: viper.GetBool("ALLOW_NEGATIVE_BANK"),
			domain.POS:  viper.GetBool("ALLOW_NEGATIVE_POS"),
		},
	}

	return cfg, nil
}
