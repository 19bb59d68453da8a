package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/supplysight/sync-agent/internal/version"
)

type Config struct {
	// Bridge identity
	BridgeID string `json:"bridge_id"`
	Version  string `json:"version"`

	// Supply chain backend
	BackendHost string `json:"backend_host"`
	BackendPort int    `json:"backend_port"`
	TLSEnabled  bool   `json:"tls_enabled"`
	Token       string `json:"token"`

	// REST client
	RequestTimeout time.Duration `json:"request_timeout"`

	// WebSocket client
	ReconnectDelay       time.Duration `json:"reconnect_delay"`
	MaxReconnectAttempts int           `json:"max_reconnect_attempts"`

	// Polling
	ApprovalPollInterval time.Duration `json:"approval_poll_interval"`
	RefreshInterval      time.Duration `json:"refresh_interval"`

	// Local API server
	ListenAddress string `json:"listen_address"`
	ListenPort    int    `json:"listen_port"`
	APIKey        string `json:"api_key"`

	// Snapshot cache
	RedisEnabled  bool   `json:"redis_enabled"`
	RedisAddress  string `json:"redis_address"`
	RedisPassword string `json:"-"`
	RedisDB       int    `json:"redis_db"`

	Debug bool `json:"debug"`
}

func Load() (*Config, error) {
	cfg := &Config{
		BridgeID: getBridgeID(),
		Version:  version.GetVersion(),

		BackendHost: getEnv("BACKEND_HOST", "localhost"),
		BackendPort: getEnvInt("BACKEND_PORT", 8000),
		TLSEnabled:  getEnvBool("BACKEND_TLS", false),
		Token:       getEnv("BACKEND_TOKEN", ""),

		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 5*time.Second),

		ReconnectDelay:       getEnvDuration("WS_RECONNECT_DELAY", 3*time.Second),
		MaxReconnectAttempts: getEnvInt("WS_MAX_RECONNECT_ATTEMPTS", 5),

		ApprovalPollInterval: getEnvDuration("APPROVAL_POLL_INTERVAL", 5*time.Second),
		RefreshInterval:      getEnvDuration("REFRESH_INTERVAL", 30*time.Second),

		ListenAddress: getEnv("LISTEN_ADDRESS", "0.0.0.0"),
		ListenPort:    getEnvInt("LISTEN_PORT", 3580),
		APIKey:        getEnv("API_KEY", ""),

		RedisEnabled:  getEnvBool("REDIS_ENABLED", false),
		RedisAddress:  getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		Debug: getEnvBool("DEBUG", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BackendHost == "" {
		return fmt.Errorf("BACKEND_HOST cannot be empty")
	}
	if c.BackendPort <= 0 || c.BackendPort > 65535 {
		return fmt.Errorf("invalid BACKEND_PORT: %d", c.BackendPort)
	}
	if c.ListenPort <= 0 || c.ListenPort > 65535 {
		return fmt.Errorf("invalid LISTEN_PORT: %d", c.ListenPort)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if c.MaxReconnectAttempts < 0 {
		return fmt.Errorf("WS_MAX_RECONNECT_ATTEMPTS cannot be negative")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBridgeID() string {
	if id := os.Getenv("BRIDGE_ID"); id != "" {
		return id
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return fmt.Sprintf("sync-bridge-%s", hostname)
}
