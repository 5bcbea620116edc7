package httpclient

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Doer executes an outbound request. Both Client and CircuitBreakerClient satisfy it.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Config holds the settings for one upstream.
type Config struct {
	// Name labels metrics for this upstream, e.g. "design" or "listings".
	Name            string
	Timeout         time.Duration
	MaxConnsPerHost int
}

// DefaultConfig returns the settings used for the design and listings upstreams.
func DefaultConfig(name string) Config {
	return Config{
		Name:            name,
		Timeout:         15 * time.Second,
		MaxConnsPerHost: 50,
	}
}

var (
	upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total outbound requests by upstream, method and status code (0 for transport errors)",
		},
		[]string{"upstream", "method", "code"},
	)

	upstreamRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Outbound request latency by upstream and method",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"upstream", "method"},
	)
)

func init() {
	prometheus.MustRegister(upstreamRequestsTotal)
	prometheus.MustRegister(upstreamRequestDuration)
}

// Client is a pooled http.Client for one upstream that records metrics.
// Each Do is exactly one outbound attempt; retrying is up to the caller.
type Client struct {
	httpClient *http.Client
	name       string
}

// New creates a client with its own connection pool.
func New(cfg Config) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   cfg.MaxConnsPerHost,
		MaxConnsPerHost:       cfg.MaxConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		name: cfg.Name,
	}
}

// HTTPClient exposes the underlying client for libraries that need one (oauth2).
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Do sends req once, bound to ctx.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	upstreamRequestDuration.WithLabelValues(c.name, req.Method).Observe(time.Since(start).Seconds())

	code := "0"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	upstreamRequestsTotal.WithLabelValues(c.name, req.Method, code).Inc()

	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	return resp, nil
}
