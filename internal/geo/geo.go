// Package geo resolves Nigerian states and their LGAs. Lookups go to a
// remote service first; when it fails or the breaker is open, the
// bundled static table answers instead.
package geo

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

//go:embed states.json
var staticFS embed.FS

type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]string]
	logger  *zap.Logger

	static map[string][]string
}

func NewClient(baseURL string, logger *zap.Logger) (*Client, error) {
	data, err := staticFS.ReadFile("states.json")
	if err != nil {
		return nil, fmt.Errorf("read static states table: %w", err)
	}

	var static map[string][]string
	if err := json.Unmarshal(data, &static); err != nil {
		return nil, fmt.Errorf("parse static states table: %w", err)
	}

	breaker := gobreaker.NewCircuitBreaker[[]string](gobreaker.Settings{
		Name:    "geo-lookup",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   5 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: breaker,
		logger:  logger,
		static:  static,
	}, nil
}

// States returns all known state names. Remote first, static fallback.
func (c *Client) States(ctx context.Context) []string {
	states, err := c.breaker.Execute(func() ([]string, error) {
		return c.fetchList(ctx, c.baseURL+"/fetch")
	})
	if err != nil {
		c.logger.Warn("remote state lookup failed, using static table", zap.Error(err))
		return c.staticStates()
	}
	return states
}

// LGAs returns the local government areas of a state. Remote first,
// static fallback; an unknown state yields an empty list.
func (c *Client) LGAs(ctx context.Context, state string) []string {
	lgas, err := c.breaker.Execute(func() ([]string, error) {
		return c.fetchList(ctx, c.baseURL+"/?state="+url.QueryEscape(state))
	})
	if err != nil {
		c.logger.Warn("remote LGA lookup failed, using static table",
			zap.String("state", state), zap.Error(err))
		return c.staticLGAs(state)
	}
	return lgas
}

func (c *Client) fetchList(ctx context.Context, rawURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build geo request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geo lookup returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read geo response: %w", err)
	}

	var list []string
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("parse geo response: %w", err)
	}
	return list, nil
}

func (c *Client) staticStates() []string {
	states := make([]string, 0, len(c.static))
	for s := range c.static {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

func (c *Client) staticLGAs(state string) []string {
	for s, lgas := range c.static {
		if strings.EqualFold(s, state) {
			return lgas
		}
	}
	return []string{}
}
