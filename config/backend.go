package config

import (
	"strings"
	"time"
)

// BackendConfig contains the upstream employee-management API connection
// settings.
type BackendConfig struct {
	// BaseURL is the root of the employee backend, without a trailing
	// slash (e.g. "https://api.internal.example.com").
	BaseURL string `env:"BASE_URL,required"`

	// Timeout bounds each outbound request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.BaseURL = strings.TrimRight(b.BaseURL, "/")
	if b.Timeout <= 0 {
		b.Timeout = 15 * time.Second
	}
}
