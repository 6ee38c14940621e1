package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var managedEnv = []string{
	"PORT", "TRUST_PROXY_HEADERS",
	"STORAGE_TYPE", "DATABASE_URL",
	"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "REDIS_VIOLATIONS_KEY",
	"RATE_LIMIT_WINDOW_SECONDS", "RATE_LIMIT_MAX_REQUESTS", "RATE_LIMIT_SWEEP_INTERVAL_SECONDS",
	"VALID_ACCESS_TOKEN",
	"EMAIL_HOST", "EMAIL_PORT", "EMAIL_USER", "EMAIL_PASS", "EMAIL_FROM", "ALERT_EMAIL",
	"EMAIL_INSECURE_SKIP_VERIFY", "ALERT_RATE_PER_SECOND", "ALERT_BURST", "ALERT_SEND_TIMEOUT_SECONDS", "ALERT_MAX_IN_FLIGHT",
}

// clearEnv garante que o ambiente do processo não vaze para os testes.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range managedEnv {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func noEnvFile(t *testing.T) LoadOptions {
	return LoadOptions{EnvFile: filepath.Join(t.TempDir(), "missing.env")}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(noEnvFile(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("expected port 3000, got %s", cfg.Server.Port)
	}
	if cfg.Storage.Type != StorageSQLite {
		t.Errorf("expected sqlite storage, got %s", cfg.Storage.Type)
	}
	rule := cfg.RateLimiter.Rule()
	if rule.Requests != 5 || rule.Window != 10*time.Minute {
		t.Errorf("expected 5 requests per 10m, got %+v", rule)
	}
	if cfg.RateLimiter.SweepInterval() != 5*time.Minute {
		t.Errorf("expected sweep every 5m, got %s", cfg.RateLimiter.SweepInterval())
	}
	if cfg.Mail.Host != "smtp.gmail.com" || cfg.Mail.Port != 587 {
		t.Errorf("unexpected mail relay %s:%d", cfg.Mail.Host, cfg.Mail.Port)
	}
	if !cfg.Mail.InsecureSkipVerify {
		t.Errorf("expected certificate verification disabled by default")
	}
	if cfg.Auth.AccessToken != "" {
		t.Errorf("expected no access token by default")
	}
	if cfg.Mail.MaxInFlight != 32 {
		t.Errorf("expected 32 alerts in flight by default, got %d", cfg.Mail.MaxInFlight)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("STORAGE_TYPE", "Redis")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "60")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "3")
	t.Setenv("VALID_ACCESS_TOKEN", "s3cret")
	t.Setenv("EMAIL_USER", "bot@example.com")
	t.Setenv("ALERT_EMAIL", "ops@example.com")
	t.Setenv("TRUST_PROXY_HEADERS", "true")

	cfg, err := Load(noEnvFile(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != "8080" || !cfg.Server.TrustProxyHeaders {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.Storage.Type != StorageRedis || cfg.Storage.Redis.Port != 6380 {
		t.Errorf("unexpected storage config %+v", cfg.Storage)
	}
	if rule := cfg.RateLimiter.Rule(); rule.Requests != 3 || rule.Window != time.Minute {
		t.Errorf("unexpected rule %+v", rule)
	}
	if cfg.Auth.AccessToken != "s3cret" {
		t.Errorf("unexpected token %q", cfg.Auth.AccessToken)
	}
	if cfg.Mail.Sender() != "bot@example.com" || cfg.Mail.AlertRecipient != "ops@example.com" {
		t.Errorf("unexpected mail config %+v", cfg.Mail)
	}
}

func TestLoad_ConfigFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlDoc := `
server:
  port: "9000"
storage:
  type: memory
rate_limiter:
  window_seconds: 30
  max_requests: 2
mail:
  from: alerts@example.com
  alert_recipient: file@example.com
`
	if err := os.WriteFile(path, []byte(yamlDoc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ALERT_EMAIL", "env@example.com")

	opts := noEnvFile(t)
	opts.ConfigFile = path
	cfg, err := Load(opts)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != "9000" || cfg.Storage.Type != StorageMemory {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.RateLimiter.MaxRequests != 2 || cfg.RateLimiter.WindowSeconds != 30 {
		t.Errorf("unexpected limiter config %+v", cfg.RateLimiter)
	}
	if cfg.Mail.AlertRecipient != "env@example.com" {
		t.Errorf("environment should win over file, got %s", cfg.Mail.AlertRecipient)
	}
	if cfg.Mail.Sender() != "alerts@example.com" {
		t.Errorf("expected explicit sender, got %s", cfg.Mail.Sender())
	}
	// Campos ausentes no arquivo mantêm o default.
	if cfg.Mail.Port != 587 || cfg.RateLimiter.SweepIntervalSeconds != 300 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("VALID_ACCESS_TOKEN=from-dotenv\nRATE_LIMIT_MAX_REQUESTS=7\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}

	cfg, err := Load(LoadOptions{EnvFile: path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Auth.AccessToken != "from-dotenv" || cfg.RateLimiter.MaxRequests != 7 {
		t.Fatalf("env file not applied: %+v", cfg)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "non numeric window", key: "RATE_LIMIT_WINDOW_SECONDS", value: "ten", wantErr: "invalid RATE_LIMIT_WINDOW_SECONDS"},
		{name: "zero threshold", key: "RATE_LIMIT_MAX_REQUESTS", value: "0", wantErr: "max requests must be positive"},
		{name: "negative window", key: "RATE_LIMIT_WINDOW_SECONDS", value: "-1", wantErr: "window must be positive"},
		{name: "bad port", key: "EMAIL_PORT", value: "smtp", wantErr: "invalid EMAIL_PORT"},
		{name: "bad bool", key: "TRUST_PROXY_HEADERS", value: "maybe", wantErr: "invalid TRUST_PROXY_HEADERS"},
		{name: "zero alerts in flight", key: "ALERT_MAX_IN_FLIGHT", value: "0", wantErr: "alert max in flight must be positive"},
		{name: "unknown storage", key: "STORAGE_TYPE", value: "mongo", wantErr: "unsupported storage type"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load(noEnvFile(t))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected %q in %v", tc.wantErr, err)
			}
		})
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	opts := noEnvFile(t)
	opts.ConfigFile = filepath.Join(t.TempDir(), "nope.yaml")

	if _, err := Load(opts); err == nil {
		t.Fatalf("expected error for explicit config file that does not exist")
	}
}
