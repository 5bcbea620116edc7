package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker/v2"
)

// CircuitBreakerConfig tunes the breaker in front of one upstream.
type CircuitBreakerConfig struct {
	Name string

	// HalfOpenRequests is how many requests may pass while half-open.
	HalfOpenRequests uint32

	// Window clears the closed-state counts on this period.
	Window time.Duration

	// Cooldown is how long the breaker stays open.
	Cooldown time.Duration

	// TripRatio of failed requests opens the breaker once MinRequests is reached.
	TripRatio   float64
	MinRequests uint32
}

// DefaultCircuitBreakerConfig returns the settings used for the design and listings upstreams.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		HalfOpenRequests: 1,
		Window:           60 * time.Second,
		Cooldown:         30 * time.Second,
		TripRatio:        0.5,
		MinRequests:      5,
	}
}

var circuitBreakerState = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "circuit_breaker_state",
		Help: "Current state of the upstream circuit breaker (0=closed, 1=half-open, 2=open)",
	},
	[]string{"name"},
)

func init() {
	prometheus.MustRegister(circuitBreakerState)
}

var breakerGauge = map[gobreaker.State]float64{
	gobreaker.StateClosed:   0,
	gobreaker.StateHalfOpen: 1,
	gobreaker.StateOpen:     2,
}

// ErrCircuitOpen is returned without contacting the upstream while the breaker is open.
var ErrCircuitOpen = gobreaker.ErrOpenState

// errCallerGone marks a failure caused by the caller's context ending.
// It says nothing about upstream health and is not counted against it.
var errCallerGone = errors.New("caller went away")

// upstreamHealthy reports whether an Execute outcome leaves the upstream's record clean.
func upstreamHealthy(err error) bool {
	return err == nil || errors.Is(err, errCallerGone)
}

// CircuitBreakerClient guards a Client with a breaker that opens when
// transport errors and 5xx responses dominate.
type CircuitBreakerClient struct {
	client  *Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
	name    string
}

// NewCircuitBreakerClient wraps client.
func NewCircuitBreakerClient(client *Client, cfg CircuitBreakerConfig, logger *slog.Logger) *CircuitBreakerClient {
	if logger == nil {
		logger = slog.Default()
	}
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Interval:    cfg.Window,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.TripRatio
		},
		IsSuccessful: upstreamHealthy,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("upstream circuit breaker state change",
				"upstream", name,
				"from", from.String(),
				"to", to.String(),
			)
			circuitBreakerState.WithLabelValues(name).Set(breakerGauge[to])
		},
	}

	circuitBreakerState.WithLabelValues(cfg.Name).Set(breakerGauge[gobreaker.StateClosed])

	return &CircuitBreakerClient{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker[*http.Response](settings),
		name:    cfg.Name,
	}
}

// Do sends req through the breaker. A 5xx response is consumed and
// returned as a *StatusError so it counts as a failure.
func (c *CircuitBreakerClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.breaker.Execute(func() (*http.Response, error) {
		resp, err := c.client.Do(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %w", errCallerGone, err)
			}
			return nil, err
		}
		if resp.StatusCode >= 500 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			_ = resp.Body.Close()
			return nil, &StatusError{Service: c.name, Status: resp.StatusCode, Body: string(body)}
		}
		return resp, nil
	})
}

// State returns the current breaker state.
func (c *CircuitBreakerClient) State() gobreaker.State {
	return c.breaker.State()
}
