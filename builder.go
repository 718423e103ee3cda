package authkit

import (
	"errors"
	"net/http"

	"github.com/gridpulse/authkit/credstore"
	"github.com/gridpulse/authkit/transport"
)

// Builder assembles a [Manager]. A Builder is single-use: Build succeeds at
// most once.
type Builder struct {
	config Config

	store     credstore.Store
	backend   Backend
	auditSink AuditSink

	built bool
}

// New creates a Builder seeded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithBaseURL sets the backend origin for the default transport.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.Transport.BaseURL = baseURL
	return b
}

// WithHTTPClient sets the http.Client used by the default transport.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.config.Transport.HTTPClient = client
	return b
}

// WithStore sets the credential store. Required.
func (b *Builder) WithStore(store credstore.Store) *Builder {
	b.store = store
	return b
}

// WithBackend substitutes a custom [Backend] for the default transport
// client. When set, TransportConfig is ignored.
func (b *Builder) WithBackend(backend Backend) *Builder {
	b.backend = backend
	return b
}

// WithAuditSink sets the sink receiving audit events and enables auditing.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = true
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and assembles the Manager. The Manager
// starts in [StateUninitialized]; callers must run [Manager.Rehydrate]
// before evaluating the session gate.
func (b *Builder) Build() (*Manager, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.store == nil {
		return nil, errors.New("credential store required")
	}

	backend := b.backend
	if backend == nil {
		if cfg.Transport.BaseURL == "" {
			return nil, errors.New("base URL required when no backend is supplied")
		}
		client, err := transport.New(transport.Config{
			BaseURL:    cfg.Transport.BaseURL,
			HTTPClient: cfg.Transport.HTTPClient,
			UserAgent:  cfg.Transport.UserAgent,
		})
		if err != nil {
			return nil, err
		}
		backend = client
	}

	m := &Manager{
		config:  cfg,
		backend: backend,
		store:   b.store,
		audit:   newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics: NewMetrics(cfg.Metrics),
		state:   StateUninitialized,
	}

	b.built = true

	return m, nil
}
