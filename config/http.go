package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	// The portal serves a single user, so the default binds loopback only.
	Addr string `env:"HTTP_ADDR" envDefault:"127.0.0.1:3000"`

	// BaseURL is the base URL of the application (e.g., "http://localhost:3000").
	// Used for generating absolute URLs where a relative redirect won't do.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:3000"`

	// LoadingRefreshSeconds is the refresh interval of the transient loading
	// page shown while the persisted identity is still being restored.
	LoadingRefreshSeconds int `env:"HTTP_LOADING_REFRESH_SECONDS" envDefault:"1"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.LoadingRefreshSeconds < 1 {
		h.LoadingRefreshSeconds = 1
	}
	if h.LoadingRefreshSeconds > 10 {
		h.LoadingRefreshSeconds = 10
	}
}
