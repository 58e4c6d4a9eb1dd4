package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrGateway wraps every transport or HTTP status failure.
var ErrGateway = errors.New("gateway request failed")

// Result codes of the response field.
const (
	ResultApproved = "1"
	ResultDeclined = "2"
	ResultError    = "3"
)

// Response is a parsed gateway reply.
type Response struct {
	Fields map[string]string `json:"fields"`
}

// Get returns a field or "".
func (r Response) Get(key string) string { return r.Fields[key] }

// Approved reports whether the request was approved.
func (r Response) Approved() bool { return r.Fields["response"] == ResultApproved }

// Result returns the raw response field.
func (r Response) Result() string { return r.Fields["response"] }

// Code returns the numeric response_code.
func (r Response) Code() string { return r.Fields["response_code"] }

// Text returns responsetext.
func (r Response) Text() string { return r.Fields["responsetext"] }

// TransactionID returns transactionid.
func (r Response) TransactionID() string { return r.Fields["transactionid"] }

// Status summarizes the result as approved, declined or error.
func (r Response) Status() string {
	switch r.Result() {
	case ResultApproved:
		return "approved"
	case ResultDeclined:
		return "declined"
	default:
		return "error"
	}
}

// Doer sends a request to the gateway.
type Doer interface {
	Do(ctx context.Context, params url.Values) (Response, error)
}

// Client posts to the gateway.
type Client struct {
	endpoint string
	key      string
	http     *http.Client
}

// NewClient creates a client for the configured endpoint.
func NewClient(cfg Config) (*Client, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid gateway endpoint %q", cfg.Endpoint)
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
		MaxIdleConns:          20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ResponseHeaderTimeout: timeoutDuration,
	}

	return &Client{
		endpoint: cfg.Endpoint,
		key:      cfg.SecurityKey,
		http:     &http.Client{Transport: transport, Timeout: timeoutDuration},
	}, nil
}

// Do posts params with the security key and parses the reply.
func (c *Client) Do(ctx context.Context, params url.Values) (Response, error) {
	form := url.Values{}
	for k, v := range params {
		form[k] = append([]string(nil), v...)
	}
	form.Set("security_key", c.key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Response{}, fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Response{}, fmt.Errorf("%w: reading body: %v", ErrGateway, err)
	}
	if resp.StatusCode >= 400 {
		return Response{}, fmt.Errorf("%w: status %d", ErrGateway, resp.StatusCode)
	}

	return Parse(string(raw))
}

// Parse decodes a form-encoded gateway reply. Repeated keys keep their
// first value.
func Parse(body string) (Response, error) {
	values, err := url.ParseQuery(strings.TrimSpace(body))
	if err != nil {
		return Response{}, fmt.Errorf("%w: malformed response: %v", ErrGateway, err)
	}
	fields := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			fields[k] = v[0]
		}
	}
	if _, ok := fields["response"]; !ok {
		return Response{}, fmt.Errorf("%w: response field missing", ErrGateway)
	}
	return Response{Fields: fields}, nil
}
