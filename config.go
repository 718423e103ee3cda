package authkit

import (
	"errors"
	"net/http"
)

// Config configures a [Manager]. Config instances are consumed by
// [Builder.Build] and treated as immutable afterwards.
type Config struct {
	Transport TransportConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

/*
====================================
TRANSPORT CONFIG
====================================
*/

// TransportConfig configures the backend transport built by default when no
// custom [Backend] is supplied.
type TransportConfig struct {
	// BaseURL is the backend origin. Required unless the Builder is given
	// a Backend directly.
	BaseURL string
	// HTTPClient overrides the underlying client. Optional; the transport
	// default applies a 15-second timeout.
	HTTPClient *http.Client
	// UserAgent overrides the User-Agent header. Optional.
	UserAgent string
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig configures the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig configures the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 64,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate checks the configuration for values Build cannot work with.
func (c Config) Validate() error {
	if c.Audit.Enabled && c.Audit.BufferSize < 0 {
		return errors.New("audit buffer size must not be negative")
	}
	return nil
}
