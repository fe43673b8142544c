package salesform

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config containing all the configuration values for a service.
type Config struct {
	// Port the web server listens on.  0 picks a free port.
	Port uint16
	// CookieName is the name of the session cookie.
	CookieName string
	// DBPath is the sqlite DSN of the session store.
	DBPath string
	// FormPath is an optional YAML form definition replacing the built-in
	// client information form.
	FormPath string
	// SessionTTL is how long an idle session is kept.
	SessionTTL time.Duration
	// SweepInterval is how often expired sessions are removed.
	SweepInterval time.Duration
}

const (
	defaultCookieName    = "salesform"
	defaultDBPath        = "file::memory:?cache=shared"
	defaultSessionTTL    = 24 * time.Hour
	defaultSweepInterval = 10 * time.Minute
	defaultPort          = 3000
)

// Environment variables read by LoadConfig.
const (
	EnvPort          = "SALESFORM_PORT"
	EnvCookie        = "SALESFORM_COOKIE"
	EnvDB            = "SALESFORM_DB"
	EnvForm          = "SALESFORM_FORM"
	EnvSessionTTL    = "SALESFORM_SESSION_TTL"
	EnvSweepInterval = "SALESFORM_SWEEP_INTERVAL"
)

// LoadConfig reads the given .env files (".env" when none are given) into
// the environment and builds a Config from the environment.  Missing files
// are not an error.  Unset values get defaults, each of which is logged.
func LoadConfig(logger *log.Logger, envfiles ...string) (Config, error) {
	if err := godotenv.Load(envfiles...); err != nil {
		logger.Printf("[config] No env file loaded: %v", err)
	}

	config := Config{
		CookieName: os.Getenv(EnvCookie),
		DBPath:     os.Getenv(EnvDB),
		FormPath:   os.Getenv(EnvForm),
	}
	if port := os.Getenv(EnvPort); port != "" {
		p, err := strconv.ParseUint(port, 10, 16)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvPort, port, err)
		}
		config.Port = uint16(p)
	} else {
		config.Port = defaultPort
		logger.Printf("[config] Setting default port: %d", config.Port)
	}
	var err error
	if config.SessionTTL, err = envDuration(EnvSessionTTL); err != nil {
		return Config{}, err
	}
	if config.SweepInterval, err = envDuration(EnvSweepInterval); err != nil {
		return Config{}, err
	}
	config.setDefaults(logger)
	return config, nil
}

func envDuration(key string) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, value)
	}
	return d, nil
}

// setDefaults fills in unset values.  The port is left alone since 0 is a
// valid choice.
func (config *Config) setDefaults(logger *log.Logger) {
	if config.CookieName == "" {
		config.CookieName = defaultCookieName
		logger.Printf("[config] Setting default cookie name: %s", config.CookieName)
	}
	if config.DBPath == "" {
		config.DBPath = defaultDBPath
		logger.Printf("[config] Setting default dbpath: %s", config.DBPath)
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = defaultSessionTTL
		logger.Printf("[config] Setting default session TTL: %s", config.SessionTTL)
	}
	if config.SweepInterval <= 0 {
		config.SweepInterval = defaultSweepInterval
		logger.Printf("[config] Setting default sweep interval: %s", config.SweepInterval)
	}
}
