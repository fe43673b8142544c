package salesform

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func unsetConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvPort, EnvCookie, EnvDB, EnvForm, EnvSessionTTL, EnvSweepInterval} {
		// restored after the test, including keys set from env files
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	unsetConfigEnv(t)
	lb := new(LogBuffer)
	config, err := LoadConfig(log.New(lb, "", 0), filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	expected := Config{
		Port:          defaultPort,
		CookieName:    defaultCookieName,
		DBPath:        defaultDBPath,
		SessionTTL:    defaultSessionTTL,
		SweepInterval: defaultSweepInterval,
	}
	if config != expected {
		t.Fatalf("Unexpected config: %+v", config)
	}

	logstring := lb.String()
	for _, msg := range []string{
		"[config] No env file loaded",
		"[config] Setting default port: 3000",
		"[config] Setting default cookie name: salesform",
		"[config] Setting default dbpath",
		"[config] Setting default session TTL: 24h0m0s",
		"[config] Setting default sweep interval: 10m0s",
	} {
		if !strings.Contains(logstring, msg) {
			t.Errorf("Expected message %q not found in log", msg)
		}
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	unsetConfigEnv(t)
	envfile := filepath.Join(t.TempDir(), "test.env")
	content := strings.Join([]string{
		"SALESFORM_PORT=8123",
		"SALESFORM_COOKIE=visit",
		"SALESFORM_DB=/tmp/visits.db",
		"SALESFORM_FORM=visits.yaml",
		"SALESFORM_SESSION_TTL=2h",
		"SALESFORM_SWEEP_INTERVAL=30s",
	}, "\n")
	if err := ioutil.WriteFile(envfile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	config, err := LoadConfig(log.New(ioutil.Discard, "", 0), envfile)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	expected := Config{
		Port:          8123,
		CookieName:    "visit",
		DBPath:        "/tmp/visits.db",
		FormPath:      "visits.yaml",
		SessionTTL:    2 * time.Hour,
		SweepInterval: 30 * time.Second,
	}
	if config != expected {
		t.Fatalf("Unexpected config: %+v", config)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	unsetConfigEnv(t)
	envfile := filepath.Join(t.TempDir(), "test.env")
	if err := ioutil.WriteFile(envfile, []byte("SALESFORM_COOKIE=fromfile\n"), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	t.Setenv(EnvCookie, "fromenv")

	config, err := LoadConfig(log.New(ioutil.Discard, "", 0), envfile)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.CookieName != "fromenv" {
		t.Fatalf("Env file overrode environment: %q", config.CookieName)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	for key, value := range map[string]string{
		EnvPort:          "99999",
		EnvSessionTTL:    "forever",
		EnvSweepInterval: "-1m",
	} {
		t.Run(key, func(t *testing.T) {
			unsetConfigEnv(t)
			t.Setenv(key, value)
			if _, err := LoadConfig(log.New(ioutil.Discard, "", 0), filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Fatalf("Config with %s=%q loaded; should have failed", key, value)
			} else if !strings.Contains(err.Error(), key) {
				t.Fatalf("Error does not name %s: %v", key, err)
			}
		})
	}
}
