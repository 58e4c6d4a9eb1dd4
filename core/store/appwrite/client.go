package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"payment-relay/core/store"
)

// uniqueID asks the platform to generate the resource id.
const uniqueID = "unique()"

// pageSize is the limit sent with list queries.
const pageSize = 100

// Client talks to the platform REST API.
type Client struct {
	base    string
	project string
	key     string
	http    *http.Client
}

// NewClient creates a client for the configured endpoint.
func NewClient(cfg Config) (*Client, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid appwrite endpoint %q", cfg.Endpoint)
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &Client{
		base:    strings.TrimRight(cfg.Endpoint, "/"),
		project: cfg.ProjectID,
		key:     cfg.APIKey,
		http:    &http.Client{Transport: transport},
	}, nil
}

// apiError is the error body returned by the platform.
type apiError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Appwrite-Project", c.project)
	if c.key != "" {
		req.Header.Set("X-Appwrite-Key", c.key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %v", method, path, store.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %v", method, path, store.ErrUnavailable, err)
	}

	if resp.StatusCode >= 300 {
		return statusError(method, path, resp.StatusCode, raw)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}

func statusError(method, path string, status int, raw []byte) error {
	var ae apiError
	msg := http.StatusText(status)
	if json.Unmarshal(raw, &ae) == nil && ae.Message != "" {
		msg = ae.Message
	}

	var kind error
	switch {
	case status == http.StatusNotFound:
		kind = store.ErrNotFound
	case status == http.StatusConflict:
		kind = store.ErrConflict
	case status == http.StatusUnauthorized, status == http.StatusForbidden,
		status == http.StatusTooManyRequests, status >= 500:
		kind = store.ErrUnavailable
	default:
		return fmt.Errorf("%s %s: status %d: %s", method, path, status, msg)
	}
	return fmt.Errorf("%s %s: %w: %s", method, path, kind, msg)
}

// query is one entry of the JSON query form.
type query struct {
	Method    string        `json:"method"`
	Attribute string        `json:"attribute,omitempty"`
	Values    []interface{} `json:"values,omitempty"`
}

func queries(qs ...query) url.Values {
	v := url.Values{}
	for _, q := range qs {
		raw, _ := json.Marshal(q)
		v.Add("queries[]", string(raw))
	}
	return v
}

func equal(attribute string, value interface{}) query {
	return query{Method: "equal", Attribute: attribute, Values: []interface{}{value}}
}

func limit(n int) query {
	return query{Method: "limit", Values: []interface{}{n}}
}

func offset(n int) query {
	return query{Method: "offset", Values: []interface{}{n}}
}

func seg(id string) string {
	return url.PathEscape(id)
}
