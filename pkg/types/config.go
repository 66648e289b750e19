package types

import "time"

// HTTPConfig holds shared HTTP settings for requests to the remote API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "researchpal/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ClientConfig holds settings for the remote API client.
type ClientConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the scheme and host of the API server; paths under /api are
	// appended to it (default "http://localhost:8000").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Token is an optional bearer token sent in the Authorization header.
	Token string `json:"token,omitempty" yaml:"token,omitempty" mapstructure:"token"`

	// RateLimitRetries is how many times an HTTP 429 is retried with backoff.
	// Zero disables retries; every other failure is returned immediately.
	RateLimitRetries int `json:"rate_limit_retries" yaml:"rate_limit_retries" mapstructure:"rate_limit_retries"`
}

// StorageConfig holds settings for client-local storage.
type StorageConfig struct {
	// Path is the SQLite database file backing local storage.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// RecentConfig holds settings for the recent-searches cache.
type RecentConfig struct {
	// Max is the number of distinct topics remembered (default 10).
	Max int `json:"max" yaml:"max" mapstructure:"max"`
}

// Config groups all client settings.
type Config struct {
	API     ClientConfig  `json:"api" yaml:"api" mapstructure:"api"`
	Storage StorageConfig `json:"storage" yaml:"storage" mapstructure:"storage"`
	Recent  RecentConfig  `json:"recent" yaml:"recent" mapstructure:"recent"`
}
