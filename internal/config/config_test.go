package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Save original env vars
	originalEnv := map[string]string{
		"BACKEND_HOST":              os.Getenv("BACKEND_HOST"),
		"BACKEND_PORT":              os.Getenv("BACKEND_PORT"),
		"BRIDGE_ID":                 os.Getenv("BRIDGE_ID"),
		"REQUEST_TIMEOUT":           os.Getenv("REQUEST_TIMEOUT"),
		"WS_RECONNECT_DELAY":        os.Getenv("WS_RECONNECT_DELAY"),
		"WS_MAX_RECONNECT_ATTEMPTS": os.Getenv("WS_MAX_RECONNECT_ATTEMPTS"),
		"APPROVAL_POLL_INTERVAL":    os.Getenv("APPROVAL_POLL_INTERVAL"),
		"BACKEND_TLS":               os.Getenv("BACKEND_TLS"),
		"LISTEN_PORT":               os.Getenv("LISTEN_PORT"),
	}

	defer func() {
		for key, value := range originalEnv {
			if value == "" {
				os.Unsetenv(key)
			} else {
				os.Setenv(key, value)
			}
		}
	}()

	// Clear all env vars
	for key := range originalEnv {
		os.Unsetenv(key)
	}

	t.Run("default values", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() failed: %v", err)
		}

		if cfg.BackendHost != "localhost" {
			t.Errorf("Expected BackendHost 'localhost', got '%s'", cfg.BackendHost)
		}

		if cfg.BackendPort != 8000 {
			t.Errorf("Expected BackendPort 8000, got %d", cfg.BackendPort)
		}

		if cfg.RequestTimeout != 5*time.Second {
			t.Errorf("Expected RequestTimeout 5s, got %v", cfg.RequestTimeout)
		}

		if cfg.ReconnectDelay != 3*time.Second {
			t.Errorf("Expected ReconnectDelay 3s, got %v", cfg.ReconnectDelay)
		}

		if cfg.MaxReconnectAttempts != 5 {
			t.Errorf("Expected MaxReconnectAttempts 5, got %d", cfg.MaxReconnectAttempts)
		}

		if cfg.ApprovalPollInterval != 5*time.Second {
			t.Errorf("Expected ApprovalPollInterval 5s, got %v", cfg.ApprovalPollInterval)
		}

		if cfg.ListenPort != 3580 {
			t.Errorf("Expected ListenPort 3580, got %d", cfg.ListenPort)
		}

		if cfg.TLSEnabled != false {
			t.Errorf("Expected TLSEnabled false, got %v", cfg.TLSEnabled)
		}

		if cfg.BridgeID == "" {
			t.Error("Expected BridgeID to be generated, got empty string")
		}
	})

	t.Run("custom values from env", func(t *testing.T) {
		os.Setenv("BACKEND_HOST", "example.com")
		os.Setenv("BACKEND_PORT", "9000")
		os.Setenv("BRIDGE_ID", "test-bridge-123")
		os.Setenv("REQUEST_TIMEOUT", "10s")
		os.Setenv("WS_RECONNECT_DELAY", "1s")
		os.Setenv("WS_MAX_RECONNECT_ATTEMPTS", "3")
		os.Setenv("BACKEND_TLS", "true")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() failed: %v", err)
		}

		if cfg.BackendHost != "example.com" {
			t.Errorf("Expected BackendHost 'example.com', got '%s'", cfg.BackendHost)
		}

		if cfg.BackendPort != 9000 {
			t.Errorf("Expected BackendPort 9000, got %d", cfg.BackendPort)
		}

		if cfg.BridgeID != "test-bridge-123" {
			t.Errorf("Expected BridgeID 'test-bridge-123', got '%s'", cfg.BridgeID)
		}

		if cfg.RequestTimeout != 10*time.Second {
			t.Errorf("Expected RequestTimeout 10s, got %v", cfg.RequestTimeout)
		}

		if cfg.ReconnectDelay != 1*time.Second {
			t.Errorf("Expected ReconnectDelay 1s, got %v", cfg.ReconnectDelay)
		}

		if cfg.MaxReconnectAttempts != 3 {
			t.Errorf("Expected MaxReconnectAttempts 3, got %d", cfg.MaxReconnectAttempts)
		}

		if cfg.TLSEnabled != true {
			t.Errorf("Expected TLSEnabled true, got %v", cfg.TLSEnabled)
		}
	})

	t.Run("invalid port fails validation", func(t *testing.T) {
		os.Setenv("BACKEND_PORT", "99999")
		defer os.Unsetenv("BACKEND_PORT")

		if _, err := Load(); err == nil {
			t.Error("Expected validation error for BACKEND_PORT 99999")
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			BackendHost:          "localhost",
			BackendPort:          8000,
			ListenPort:           3580,
			RequestTimeout:       5 * time.Second,
			MaxReconnectAttempts: 5,
		}
	}

	t.Run("valid config", func(t *testing.T) {
		if err := valid().Validate(); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("empty backend host", func(t *testing.T) {
		cfg := valid()
		cfg.BackendHost = ""
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for empty BackendHost")
		}
	})

	t.Run("negative timeout", func(t *testing.T) {
		cfg := valid()
		cfg.RequestTimeout = -1 * time.Second
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for negative RequestTimeout")
		}
	})

	t.Run("negative reconnect attempts", func(t *testing.T) {
		cfg := valid()
		cfg.MaxReconnectAttempts = -1
		if err := cfg.Validate(); err == nil {
			t.Error("Expected error for negative MaxReconnectAttempts")
		}
	})
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue time.Duration
		envValue     string
		expected     time.Duration
	}{
		{
			name:         "returns env value when valid duration",
			key:          "TEST_DURATION",
			defaultValue: 5 * time.Second,
			envValue:     "250ms",
			expected:     250 * time.Millisecond,
		},
		{
			name:         "returns default when env not set",
			key:          "NONEXISTENT_DURATION",
			defaultValue: 5 * time.Second,
			envValue:     "",
			expected:     5 * time.Second,
		},
		{
			name:         "returns default when env invalid",
			key:          "INVALID_DURATION",
			defaultValue: 5 * time.Second,
			envValue:     "not_a_duration",
			expected:     5 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			result := getEnvDuration(tt.key, tt.defaultValue)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue bool
		envValue     string
		expected     bool
	}{
		{
			name:         "returns env value when valid bool",
			key:          "TEST_BOOL",
			defaultValue: false,
			envValue:     "true",
			expected:     true,
		},
		{
			name:         "returns default when env not set",
			key:          "NONEXISTENT_BOOL",
			defaultValue: true,
			envValue:     "",
			expected:     true,
		},
		{
			name:         "returns default when env invalid",
			key:          "INVALID_BOOL",
			defaultValue: true,
			envValue:     "maybe",
			expected:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			result := getEnvBool(tt.key, tt.defaultValue)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}
