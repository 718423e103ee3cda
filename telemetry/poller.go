package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultInterval = 10 * time.Second

// Reading is one telemetry sample from the readings endpoint.
type Reading struct {
	Timestamp time.Time `json:"timestamp"`
	Current   float64   `json:"current"`
}

// Stats summarizes a window of readings for the dashboard header cards.
type Stats struct {
	// Current is the most recent sample value.
	Current float64
	// Average is the arithmetic mean over the window.
	Average float64
	// Peak is the maximum over the window.
	Peak float64
}

// Snapshot is one poll result: the window ordered oldest to newest plus its
// summary stats.
type Snapshot struct {
	Readings []Reading
	Stats    Stats
}

// Config configures a [Poller].
type Config struct {
	// URL is the readings endpoint. Required.
	URL string
	// Interval between polls. Defaults to 10 seconds.
	Interval time.Duration
	// HTTPClient overrides the underlying client. Optional.
	HTTPClient *http.Client
	// OnUpdate receives each successful poll result. Required.
	OnUpdate func(Snapshot)
	// OnError receives poll failures. Optional; failures are otherwise
	// dropped and the next tick retries.
	OnError func(error)
}

// Poller fetches telemetry readings on a fixed interval and summarizes
// them for display. It has no state machine: every tick is an independent
// fetch-and-render, and it coordinates with nothing — in particular not
// with the auth session, whose expiry surfaces here as ordinary fetch
// failures.
type Poller struct {
	cfg        Config
	httpClient *http.Client
}

// NewPoller creates a Poller from cfg.
func NewPoller(cfg Config) (*Poller, error) {
	if cfg.URL == "" {
		return nil, errors.New("telemetry: url required")
	}
	if cfg.OnUpdate == nil {
		return nil, errors.New("telemetry: OnUpdate callback required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Interval}
	}
	return &Poller{
		cfg:        cfg,
		httpClient: httpClient,
	}, nil
}

// Run polls immediately, then on every interval tick, until ctx is done.
// It always returns ctx.Err().
func (p *Poller) Run(ctx context.Context) error {
	p.poll(ctx)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.poll(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	snap, err := p.fetch(ctx)
	if err != nil {
		if p.cfg.OnError != nil && !errors.Is(err, context.Canceled) {
			p.cfg.OnError(err)
		}
		return
	}
	p.cfg.OnUpdate(snap)
}

func (p *Poller) fetch(ctx context.Context) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.URL, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("telemetry: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("telemetry: fetch readings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("telemetry: fetch readings: status %d", resp.StatusCode)
	}

	var readings []Reading
	if err := json.NewDecoder(resp.Body).Decode(&readings); err != nil {
		return Snapshot{}, fmt.Errorf("telemetry: decode readings: %w", err)
	}

	// The endpoint returns newest first; the chart wants oldest first.
	reverse(readings)

	return Snapshot{
		Readings: readings,
		Stats:    Summarize(readings),
	}, nil
}

// Summarize computes the display stats over a window of readings ordered
// oldest to newest. An empty window yields zero stats.
func Summarize(readings []Reading) Stats {
	if len(readings) == 0 {
		return Stats{}
	}

	var sum float64
	peak := readings[0].Current
	for _, r := range readings {
		sum += r.Current
		if r.Current > peak {
			peak = r.Current
		}
	}
	return Stats{
		Current: readings[len(readings)-1].Current,
		Average: sum / float64(len(readings)),
		Peak:    peak,
	}
}

func reverse(readings []Reading) {
	for i, j := 0, len(readings)-1; i < j; i, j = i+1, j-1 {
		readings[i], readings[j] = readings[j], readings[i]
	}
}
