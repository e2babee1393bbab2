package stationapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sm8ta/station_control_console/internal/core/domain"
	"github.com/sm8ta/station_control_console/internal/core/ports"
)

type tokenKey struct{}

// ContextWithToken attaches the caller's bearer token so requests made with
// ctx are authenticated as that caller.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

type Options struct {
	BaseURL string
	// Timeout bounds a whole request. Zero leaves it to the transport.
	Timeout time.Duration
	// Retries is the number of extra attempts for idempotent reads.
	Retries int
	// PerRetryTimeout bounds each read attempt.
	PerRetryTimeout time.Duration
	Backoff         time.Duration
}

// Client talks to the station-control API.
type Client struct {
	baseURL string
	http    *http.Client
	log     ports.LoggerPort
	opts    Options
}

func NewClient(opts Options, log ports.LoggerPort) (*Client, error) {
	const op = "stationapi.NewClient"

	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%s: base url %q must be absolute", op, opts.BaseURL)
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}

	log.Info("Station API client configured", map[string]interface{}{
		"base_url": base.String(),
		"retries":  opts.Retries,
	})

	return &Client{
		baseURL: base.String(),
		http:    &http.Client{Timeout: opts.Timeout},
		log:     log,
		opts:    opts,
	}, nil
}

// FindAll lists countries matching filter.
func (c *Client) FindAll(ctx context.Context, filter domain.CountryFilter) ([]domain.Country, error) {
	const op = "Client.FindAll"

	query := url.Values{}
	if filter.Name != "" {
		query.Set("nome", filter.Name)
	}
	endpoint := c.baseURL + "/paises"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	c.log.Debug("Calling station API", map[string]interface{}{
		"op":  op,
		"url": endpoint,
	})

	var countries []domain.Country
	err := c.withRetry(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		return c.do(req, &countries)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c.log.Debug("Received countries from station API", map[string]interface{}{
		"count": len(countries),
	})
	return countries, nil
}

// CreateEmployee posts the multipart payload for the given country. It is
// never retried.
func (c *Client) CreateEmployee(ctx context.Context, countryID string, payload *domain.MultipartPayload) (*domain.Employee, error) {
	const op = "Client.CreateEmployee"

	endpoint := c.baseURL + "/paises/" + url.PathEscape(countryID) + "/funcionarios"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload.Body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", payload.ContentType)
	req.Header.Set("Accept", "application/json")

	var employee domain.Employee
	if err := c.do(req, &employee); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &employee, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if token := tokenFromContext(req.Context()); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &domain.APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &payload); err == nil {
			apiErr.Message = strings.TrimSpace(payload.Message)
		}
		c.log.Warn("Station API returned an error", map[string]interface{}{
			"url":    req.URL.String(),
			"status": resp.StatusCode,
		})
		return apiErr
	}

	if out == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

// withRetry runs call up to Retries+1 times. Client errors (4xx) are not
// retried, nor is a cancelled parent context.
func (c *Client) withRetry(ctx context.Context, call func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt <= c.opts.Retries; attempt++ {
		if attempt > 0 {
			c.log.Debug("Retrying station API call", map[string]interface{}{
				"attempt": attempt,
				"error":   err.Error(),
			})
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.opts.Backoff * time.Duration(attempt)):
			}
		}

		err = c.attempt(ctx, call)
		if err == nil || !retryable(ctx, err) {
			return err
		}
	}
	return err
}

func (c *Client) attempt(ctx context.Context, call func(ctx context.Context) error) error {
	if c.opts.PerRetryTimeout <= 0 {
		return call(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, c.opts.PerRetryTimeout)
	defer cancel()
	return call(attemptCtx)
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == http.StatusTooManyRequests
	}
	return true
}

var (
	_ ports.CountryProvider = (*Client)(nil)
	_ ports.EmployeeAPI     = (*Client)(nil)
)
