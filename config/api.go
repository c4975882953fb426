package config

import "time"

// APIConfig contains settings for the upstream course-management API.
// The portal is a pure client of this API: every list, search, and
// submit operation is a pass-through call with no caching or retries.
type APIConfig struct {
	// BaseURL is the root of the upstream REST API.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// Timeout bounds each upstream round-trip.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	if a.Timeout <= 0 {
		a.Timeout = 15 * time.Second
	}
}
