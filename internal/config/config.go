// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer sources.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RedisAddr points at the key-value store backing profiles and sessions.
	RedisAddr string `koanf:"redis_addr"`

	// RedisPassword authenticates against the key-value store; empty means none.
	RedisPassword string `koanf:"redis_password"`

	// RedisDB selects the logical database.
	RedisDB int `koanf:"redis_db"`

	// AdminUsername and AdminPassword form the single fixed credential pair.
	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`

	// SessionTTLSeconds is the fixed (non-sliding) session lifetime.
	SessionTTLSeconds int `koanf:"session_ttl_seconds"`

	// SiteTitle is rendered in the page header and footer.
	SiteTitle string `koanf:"site_title"`

	// GitHubURL is linked from the page footer.
	GitHubURL string `koanf:"github_url"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":8080",
		RedisAddr:         "localhost:6379",
		RedisPassword:     "",
		RedisDB:           0,
		AdminUsername:     "admin",
		AdminPassword:     "password",
		SessionTTLSeconds: 7200,
		SiteTitle:         "81神人榜",
		GitHubURL:         "https://github.com/your/repo",
	}
}
