// File: internal/services/assistant/config.go
package assistant

import (
	"fmt"
	"time"
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string

	// Timeout bounds a single Ask end to end, retries included; past it the
	// call fails instead of hanging.
	Timeout     time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
	Temperature float32
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("ASSISTANT_API_KEY is required")
	}
	if c.Model == "" {
		return fmt.Errorf("ASSISTANT_MODEL is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:     90 * time.Second,
		MaxRetries:  2,
		RetryDelay:  2 * time.Second,
		Temperature: 0.1,
	}
}
