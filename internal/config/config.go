// Package config centraliza o carregamento de configurações da aplicação.
//
// Ordem de precedência: defaults < arquivo YAML < arquivo .env < variáveis de ambiente.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/JeanGrijp/alerting-system/internal/core/domain"
)

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Storage     StorageConfig     `yaml:"storage"`
	RateLimiter RateLimiterConfig `yaml:"rate_limiter"`
	Auth        AuthConfig        `yaml:"auth"`
	Mail        MailConfig        `yaml:"mail"`
}

type ServerConfig struct {
	Port              string `yaml:"port"`
	TrustProxyHeaders bool   `yaml:"trust_proxy_headers"`
}

type StorageConfig struct {
	Type        string      `yaml:"type"`
	DatabaseURL string      `yaml:"database_url"`
	Redis       RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	Password      string `yaml:"password"`
	DB            int    `yaml:"db"`
	ViolationsKey string `yaml:"violations_key"`
}

type RateLimiterConfig struct {
	WindowSeconds        int `yaml:"window_seconds"`
	MaxRequests          int `yaml:"max_requests"`
	SweepIntervalSeconds int `yaml:"sweep_interval_seconds"`
}

func (c RateLimiterConfig) Rule() domain.FixedWindowRule {
	return domain.FixedWindowRule{
		Requests: c.MaxRequests,
		Window:   time.Duration(c.WindowSeconds) * time.Second,
	}
}

func (c RateLimiterConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalSeconds) * time.Second
}

type AuthConfig struct {
	AccessToken string `yaml:"access_token"`
}

type MailConfig struct {
	Host               string  `yaml:"host"`
	Port               int     `yaml:"port"`
	Username           string  `yaml:"username"`
	Password           string  `yaml:"password"`
	From               string  `yaml:"from"`
	AlertRecipient     string  `yaml:"alert_recipient"`
	InsecureSkipVerify bool    `yaml:"insecure_skip_verify"`
	RatePerSecond      float64 `yaml:"rate_per_second"`
	Burst              int     `yaml:"burst"`
	SendTimeoutSeconds int     `yaml:"send_timeout_seconds"`
	MaxInFlight        int     `yaml:"max_in_flight"`
}

// Sender é o remetente efetivo: EMAIL_FROM, ou o usuário do relay.
func (c MailConfig) Sender() string {
	if c.From != "" {
		return c.From
	}
	return c.Username
}

func (c MailConfig) SendTimeout() time.Duration {
	return time.Duration(c.SendTimeoutSeconds) * time.Second
}

type LoadOptions struct {
	EnvFile    string
	ConfigFile string
}

func Default() Config {
	return Config{
		Server: ServerConfig{Port: "3000"},
		Storage: StorageConfig{
			Type:        StorageSQLite,
			DatabaseURL: "file:alerting_system.db?_busy_timeout=5000",
			Redis: RedisConfig{
				Host:          "localhost",
				Port:          6379,
				ViolationsKey: "alerting_system:failed_requests",
			},
		},
		RateLimiter: RateLimiterConfig{
			WindowSeconds:        600,
			MaxRequests:          5,
			SweepIntervalSeconds: 300,
		},
		Mail: MailConfig{
			Host:               "smtp.gmail.com",
			Port:               587,
			InsecureSkipVerify: true,
			RatePerSecond:      1,
			Burst:              5,
			SendTimeoutSeconds: 15,
			MaxInFlight:        32,
		},
	}
}

func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	if opts.ConfigFile != "" {
		if err := loadFile(opts.ConfigFile, &cfg); err != nil {
			return Config{}, err
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	var err error

	cfg.Server.Port = getEnv("PORT", cfg.Server.Port)
	if cfg.Server.TrustProxyHeaders, err = getEnvBool("TRUST_PROXY_HEADERS", cfg.Server.TrustProxyHeaders); err != nil {
		return err
	}

	cfg.Storage.Type = strings.ToLower(getEnv("STORAGE_TYPE", cfg.Storage.Type))
	cfg.Storage.DatabaseURL = getEnv("DATABASE_URL", cfg.Storage.DatabaseURL)
	if err := applyRedisEnv(&cfg.Storage.Redis); err != nil {
		return err
	}

	if cfg.RateLimiter.WindowSeconds, err = getEnvInt("RATE_LIMIT_WINDOW_SECONDS", cfg.RateLimiter.WindowSeconds); err != nil {
		return err
	}
	if cfg.RateLimiter.MaxRequests, err = getEnvInt("RATE_LIMIT_MAX_REQUESTS", cfg.RateLimiter.MaxRequests); err != nil {
		return err
	}
	if cfg.RateLimiter.SweepIntervalSeconds, err = getEnvInt("RATE_LIMIT_SWEEP_INTERVAL_SECONDS", cfg.RateLimiter.SweepIntervalSeconds); err != nil {
		return err
	}

	cfg.Auth.AccessToken = getEnv("VALID_ACCESS_TOKEN", cfg.Auth.AccessToken)

	return applyMailEnv(&cfg.Mail)
}

func applyRedisEnv(r *RedisConfig) error {
	var err error
	r.Host = getEnv("REDIS_HOST", r.Host)
	if r.Port, err = getEnvInt("REDIS_PORT", r.Port); err != nil {
		return err
	}
	if r.DB, err = getEnvInt("REDIS_DB", r.DB); err != nil {
		return err
	}
	r.Password = getEnv("REDIS_PASSWORD", r.Password)
	r.ViolationsKey = getEnv("REDIS_VIOLATIONS_KEY", r.ViolationsKey)
	return nil
}

func applyMailEnv(m *MailConfig) error {
	var err error
	m.Host = getEnv("EMAIL_HOST", m.Host)
	if m.Port, err = getEnvInt("EMAIL_PORT", m.Port); err != nil {
		return err
	}
	m.Username = getEnv("EMAIL_USER", m.Username)
	m.Password = getEnv("EMAIL_PASS", m.Password)
	m.From = getEnv("EMAIL_FROM", m.From)
	m.AlertRecipient = getEnv("ALERT_EMAIL", m.AlertRecipient)
	if m.InsecureSkipVerify, err = getEnvBool("EMAIL_INSECURE_SKIP_VERIFY", m.InsecureSkipVerify); err != nil {
		return err
	}
	if m.RatePerSecond, err = getEnvFloat("ALERT_RATE_PER_SECOND", m.RatePerSecond); err != nil {
		return err
	}
	if m.Burst, err = getEnvInt("ALERT_BURST", m.Burst); err != nil {
		return err
	}
	if m.SendTimeoutSeconds, err = getEnvInt("ALERT_SEND_TIMEOUT_SECONDS", m.SendTimeoutSeconds); err != nil {
		return err
	}
	if m.MaxInFlight, err = getEnvInt("ALERT_MAX_IN_FLIGHT", m.MaxInFlight); err != nil {
		return err
	}
	return nil
}

func (c Config) Validate() error {
	if c.RateLimiter.WindowSeconds <= 0 {
		return fmt.Errorf("rate limit window must be positive, got %d seconds", c.RateLimiter.WindowSeconds)
	}
	if c.RateLimiter.MaxRequests <= 0 {
		return fmt.Errorf("rate limit max requests must be positive, got %d", c.RateLimiter.MaxRequests)
	}
	if c.RateLimiter.SweepIntervalSeconds < 0 {
		return fmt.Errorf("rate limit sweep interval must not be negative, got %d", c.RateLimiter.SweepIntervalSeconds)
	}
	if c.Mail.MaxInFlight <= 0 {
		return fmt.Errorf("alert max in flight must be positive, got %d", c.Mail.MaxInFlight)
	}

	switch c.Storage.Type {
	case StorageSQLite:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for sqlite storage")
		}
	case StorageRedis, StorageMemory:
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
