// Package apiclient is the single outbound transport for every backend
// call. It binds one client per service, injects the stored bearer token,
// applies the fixed timeout and retry budget, and turns a 401 into a
// credential wipe plus an Unauthorized notification. Navigation concerns
// stay with the subscriber, never in here.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Service string

const (
	ServiceClients   Service = "clients"
	ServiceProduits  Service = "produits"
	ServiceCommandes Service = "commandes"
)

// Services lists every backend in probe order.
var Services = []Service{ServiceClients, ServiceProduits, ServiceCommandes}

// ErrUnauthorized marks a 401; callers must not treat it as recoverable.
var ErrUnauthorized = errors.New("unauthorized")

// APIError carries a non-2xx response back to the caller.
type APIError struct {
	Service    Service
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("service %s responded %d: %s", e.Service, e.StatusCode, e.Message)
}

// CredentialSource reads and wipes the durably stored bearer token.
type CredentialSource interface {
	Token() string
	Clear() error
}

type Config struct {
	ClientsURL   string
	ProduitsURL  string
	CommandesURL string

	Timeout       time.Duration
	RetryAttempts int
}

type Client struct {
	baseURLs       map[Service]string
	http           *http.Client
	retries        int
	creds          CredentialSource
	onUnauthorized func()
}

func New(cfg Config, creds CredentialSource) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURLs: map[Service]string{
			ServiceClients:   strings.TrimRight(cfg.ClientsURL, "/"),
			ServiceProduits:  strings.TrimRight(cfg.ProduitsURL, "/"),
			ServiceCommandes: strings.TrimRight(cfg.CommandesURL, "/"),
		},
		http:    &http.Client{Timeout: timeout},
		retries: cfg.RetryAttempts,
		creds:   creds,
	}
}

// OnUnauthorized registers the callback fired after a 401 has cleared the
// stored credentials. Exactly one subscriber is expected.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// Request performs one call against a service and decodes the JSON body
// into out when out is non-nil. For idempotent methods, transport failures
// and 5xx responses are retried up to the configured budget; a POST goes
// out exactly once and a 401 is never retried.
func (c *Client) Request(ctx context.Context, service Service, method, path string, query url.Values, body, out any) error {
	base, ok := c.baseURLs[service]
	if !ok || base == "" {
		return fmt.Errorf("unknown service: %s", service)
	}

	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", service, err)
		}
		payload = encoded
	}

	target := base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		if c.creds != nil {
			if token := c.creds.Token(); token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil || !retryableMethod(method) {
				break
			}
			continue
		}

		retry, err := c.handleResponse(service, resp, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry || !retryableMethod(method) {
			break
		}
	}

	log.Printf("[API] [ERROR] %s request failed: %v", service, lastErr)
	return lastErr
}

// retryableMethod limits the retry budget to idempotent calls. Replaying a
// POST after a timeout or a 500 could double-submit the write behind it.
func retryableMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// handleResponse consumes the body and reports whether the call may be
// retried.
func (c *Client) handleResponse(service Service, resp *http.Response, out any) (bool, error) {
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.creds != nil {
			if err := c.creds.Clear(); err != nil {
				log.Printf("[API] [ERROR] clearing credentials failed: %v", err)
			}
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return false, fmt.Errorf("service %s: %w", service, ErrUnauthorized)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return false, nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, fmt.Errorf("decode %s response: %w", service, err)
		}
		return false, nil
	}

	apiErr := &APIError{Service: service, StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	return resp.StatusCode >= 500, apiErr
}

func readErrorMessage(body io.Reader) string {
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return strings.TrimSpace(string(raw))
	}
	if parsed.Error != "" {
		return parsed.Error
	}
	return parsed.Message
}

// CheckHealth probes every service independently. One unreachable service
// never affects another's result.
func (c *Client) CheckHealth(ctx context.Context) map[Service]bool {
	status := make(map[Service]bool, len(Services))
	for _, service := range Services {
		status[service] = c.probe(ctx, service)
	}
	return status
}

func (c *Client) probe(ctx context.Context, service Service) bool {
	base := c.baseURLs[service]
	if base == "" {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK
}
