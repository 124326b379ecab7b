// Package config defines analyzer configuration options.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// RedirectPolicy defines how redirects are handled.
type RedirectPolicy string

const (
	RedirectFollow     RedirectPolicy = "follow"      // Follow redirects
	RedirectNoFollow   RedirectPolicy = "no_follow"   // Don't follow redirects
	RedirectFollowSame RedirectPolicy = "follow_same" // Follow only same-host redirects
)

// EnvPrefix is prepended to every environment override, e.g. SEOTAGS_LISTEN_ADDR.
const EnvPrefix = "SEOTAGS"

// DefaultUserAgent identifies the analyzer to the sites it fetches.
const DefaultUserAgent = "Mozilla/5.0 (compatible; SEOTagAnalyzer/1.0; +https://seoanalyzer.example.com)"

// Config holds all configuration for the analyzer service.
type Config struct {
	// === Server ===

	// Address the HTTP server listens on
	ListenAddr string `mapstructure:"listen_addr"`

	// Grace period for in-flight requests on shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// Log level: debug, info, warn, error
	LogLevel string `mapstructure:"log_level"`

	// === Fetching ===

	// User-Agent string
	UserAgent string `mapstructure:"user_agent"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout"`

	// Maximum number of redirects to follow
	MaxRedirects int `mapstructure:"max_redirects"`

	// Redirect handling policy
	RedirectPolicy RedirectPolicy `mapstructure:"redirect_policy"`

	// Maximum response size in bytes (0 = unlimited)
	MaxResponseSize int64 `mapstructure:"max_response_size"`

	// Maximum outbound requests per second (0 = unlimited)
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`

	// Burst allowed above RequestsPerSecond
	Burst int `mapstructure:"burst"`

	// Minimum gap between two requests to the same host (0 = none)
	HostDelay time.Duration `mapstructure:"host_delay"`

	// Custom headers to inject
	CustomHeaders map[string]string `mapstructure:"custom_headers"`

	// Skip TLS certificate verification
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		// Server
		ListenAddr:      ":5000",
		ShutdownTimeout: 10 * time.Second,
		LogLevel:        "info",

		// Fetching
		UserAgent:         DefaultUserAgent,
		Timeout:           30 * time.Second,
		MaxRedirects:      10,
		RedirectPolicy:    RedirectFollow,
		MaxResponseSize:   10 * 1024 * 1024, // 10MB
		RequestsPerSecond: 10,
		Burst:             5,
	}
}

// Validate clamps out-of-range values and rejects unusable ones.
func (c *Config) Validate() error {
	if c.Timeout < time.Second {
		c.Timeout = time.Second
	}
	if c.MaxRedirects < 0 {
		c.MaxRedirects = 0
	}
	if c.MaxResponseSize < 0 {
		c.MaxResponseSize = 0
	}
	if c.RequestsPerSecond < 0 {
		c.RequestsPerSecond = 0
	}
	if c.Burst < 1 {
		c.Burst = 1
	}
	if c.HostDelay < 0 {
		c.HostDelay = 0
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = time.Second
	}

	switch c.RedirectPolicy {
	case RedirectFollow, RedirectNoFollow, RedirectFollowSame:
	case "":
		c.RedirectPolicy = RedirectFollow
	default:
		return fmt.Errorf("unknown redirect policy %q", c.RedirectPolicy)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}

	if strings.TrimSpace(c.UserAgent) == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address is required")
	}

	return nil
}

// Load reads configuration from defaults, an optional file and the
// environment, in increasing order of precedence.
func Load(filePath string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("listen_addr", def.ListenAddr)
	v.SetDefault("shutdown_timeout", def.ShutdownTimeout)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("user_agent", def.UserAgent)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("max_redirects", def.MaxRedirects)
	v.SetDefault("redirect_policy", string(def.RedirectPolicy))
	v.SetDefault("max_response_size", def.MaxResponseSize)
	v.SetDefault("requests_per_second", def.RequestsPerSecond)
	v.SetDefault("burst", def.Burst)
	v.SetDefault("host_delay", def.HostDelay)
	v.SetDefault("custom_headers", map[string]string{})
	v.SetDefault("insecure_skip_verify", def.InsecureSkipVerify)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if filePath != "" {
		v.SetConfigFile(filePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}
