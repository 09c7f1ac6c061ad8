package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Ledger processor
	AskTimeout             time.Duration
	MailboxSize            int
	SupervisorMinBackoff   time.Duration
	SupervisorMaxBackoff   time.Duration
	SupervisorRandomFactor float64

	ShutdownTimeout time.Duration

	// RateLimit is a ulule/limiter formatted rate, e.g. "1000-S". Empty disables it.
	RateLimit          string
	CORSAllowedOrigins []string
}

const (
	defaultPort                   = "8080"
	defaultAskTimeout             = 100 * time.Millisecond
	defaultMailboxSize            = 1024
	defaultSupervisorMinBackoff   = time.Second
	defaultSupervisorMaxBackoff   = 10 * time.Second
	defaultSupervisorRandomFactor = 0.2
	defaultShutdownTimeout        = 10 * time.Second
	defaultRateLimit              = "1000-S"
	defaultCORSAllowedOrigins     = "*"
)

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ASK_TIMEOUT", defaultAskTimeout.String())
	v.SetDefault("MAILBOX_SIZE", defaultMailboxSize)
	v.SetDefault("SUPERVISOR_MIN_BACKOFF", defaultSupervisorMinBackoff.String())
	v.SetDefault("SUPERVISOR_MAX_BACKOFF", defaultSupervisorMaxBackoff.String())
	v.SetDefault("SUPERVISOR_RANDOM_FACTOR", defaultSupervisorRandomFactor)
	v.SetDefault("SHUTDOWN_TIMEOUT", defaultShutdownTimeout.String())
	v.SetDefault("RATE_LIMIT", defaultRateLimit)
	v.SetDefault("CORS_ALLOWED_ORIGINS", defaultCORSAllowedOrigins)

	// Actual environment variables override .env values and defaults.
	// An empty RATE_LIMIT must stay empty, so empty variables count as set.
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = defaultPort
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")

	cfg.AskTimeout = durationOrDefault(v, "ASK_TIMEOUT", defaultAskTimeout)
	cfg.SupervisorMinBackoff = durationOrDefault(v, "SUPERVISOR_MIN_BACKOFF", defaultSupervisorMinBackoff)
	cfg.SupervisorMaxBackoff = durationOrDefault(v, "SUPERVISOR_MAX_BACKOFF", defaultSupervisorMaxBackoff)
	cfg.ShutdownTimeout = durationOrDefault(v, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout)

	if cfg.SupervisorMaxBackoff < cfg.SupervisorMinBackoff {
		log.Printf("Warning: SUPERVISOR_MAX_BACKOFF (%s) is below SUPERVISOR_MIN_BACKOFF (%s). Using %s for both.\n",
			cfg.SupervisorMaxBackoff, cfg.SupervisorMinBackoff, cfg.SupervisorMinBackoff)
		cfg.SupervisorMaxBackoff = cfg.SupervisorMinBackoff
	}

	cfg.MailboxSize = v.GetInt("MAILBOX_SIZE")
	if cfg.MailboxSize <= 0 {
		log.Printf("Warning: Invalid value for MAILBOX_SIZE ('%s'). Defaulting to %d.\n", v.GetString("MAILBOX_SIZE"), defaultMailboxSize)
		cfg.MailboxSize = defaultMailboxSize
	}

	cfg.SupervisorRandomFactor = v.GetFloat64("SUPERVISOR_RANDOM_FACTOR")
	if cfg.SupervisorRandomFactor < 0 || cfg.SupervisorRandomFactor >= 1 {
		log.Printf("Warning: SUPERVISOR_RANDOM_FACTOR must be in [0, 1). Defaulting to %.2f.\n", defaultSupervisorRandomFactor)
		cfg.SupervisorRandomFactor = defaultSupervisorRandomFactor
	}

	cfg.RateLimit = strings.TrimSpace(v.GetString("RATE_LIMIT"))
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

// durationOrDefault reads key as a duration such as "100ms" or "10s",
// falling back to def with a warning when it is missing or invalid.
func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
