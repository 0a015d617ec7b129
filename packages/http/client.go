package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/easyfetch/packages/httperr"
	"github.com/go-playground/validator/v10"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 5000 * time.Millisecond
)

// DefaultMethods are the methods a client accepts unless configured otherwise.
var DefaultMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH"}

var validate = validator.New()

// Client executes single requests and normalizes their outcome. After
// NewClient returns it is only read, so one Client may serve many goroutines.
type Client struct {
	timeout        time.Duration
	methods        []string
	userAgent      string
	defaultHeaders map[string]string
	transports     map[string]http.RoundTripper
	clients        map[string]*http.Client
	initErr        error
}

type ClientOption func(*Client)

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		timeout:        DefaultTimeout,
		methods:        DefaultMethods,
		userAgent:      DefaultUserAgent,
		defaultHeaders: make(map[string]string),
		transports:     make(map[string]http.RoundTripper),
	}

	for _, opt := range opts {
		opt(c)
	}

	if _, ok := c.transports[ProtocolHTTP]; !ok {
		c.transports[ProtocolHTTP] = newTransport()
	}
	if _, ok := c.transports[ProtocolHTTPS]; !ok {
		t, _, err := newSecureTransport(c.timeout)
		if err != nil {
			c.initErr = err
		} else {
			c.transports[ProtocolHTTPS] = t
		}
	}

	c.clients = make(map[string]*http.Client, len(c.transports))
	for protocol, rt := range c.transports {
		c.clients[protocol] = &http.Client{
			Transport:     rt,
			CheckRedirect: noRedirect,
		}
	}

	return c
}

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithSupportedMethods replaces the accepted method list.
func WithSupportedMethods(methods ...string) ClientOption {
	return func(c *Client) {
		if len(methods) > 0 {
			c.methods = append([]string(nil), methods...)
		}
	}
}

func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

func WithDefaultHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.defaultHeaders[key] = value
	}
}

// WithDefaultHeaders sets headers sent on every request, after the fixed
// defaults and before the request's own headers.
func WithDefaultHeaders(headers map[string]string) ClientOption {
	return func(c *Client) {
		for k, v := range headers {
			c.defaultHeaders[k] = v
		}
	}
}

// WithTransport overrides the round tripper used for a protocol ("http" or "https").
func WithTransport(protocol string, rt http.RoundTripper) ClientOption {
	return func(c *Client) {
		c.transports[protocol] = rt
	}
}

func (c *Client) Timeout() time.Duration {
	return c.timeout
}

func (c *Client) SupportedMethods() []string {
	return append([]string(nil), c.methods...)
}

// Validate checks a request before anything touches the network.
// Failures are *httperr.Error values with status code 400.
func (c *Client) Validate(cfg RequestConfig) error {
	cfg = cfg.WithDefaults()

	if err := validate.Var(cfg.URL, "required"); err != nil {
		return httperr.Validation("URL is required")
	}

	if err := validate.Var(cfg.Method, "oneof="+strings.Join(c.methods, " ")); err != nil {
		return httperr.Validation("Unsupported method. Supported methods are: " + strings.Join(c.methods, ", "))
	}

	return nil
}

// Do issues one request. The error, when non-nil, is always an *httperr.Error.
func (c *Client) Do(ctx context.Context, cfg RequestConfig) (*Success, error) {
	if err := c.Validate(cfg); err != nil {
		return nil, err
	}
	cfg = cfg.WithDefaults()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if cfg.HasBody() {
		body = strings.NewReader(cfg.Body)
	}

	httpReq, err := http.NewRequestWithContext(reqCtx, cfg.Method, cfg.URL, body)
	if err != nil {
		return nil, httperr.FromTransport(err)
	}

	httpReq.Header = cfg.ResolveHeaders(c.userAgent, c.defaultHeaders)
	if host := httpReq.Header.Get("Host"); host != "" {
		httpReq.Host = host
		httpReq.Header.Del("Host")
	}

	client, ok := c.clients[Protocol(cfg.URL)]
	if !ok {
		return nil, httperr.FromTransport(c.initErr)
	}

	start := time.Now()
	httpResp, err := client.Do(httpReq)
	if err != nil {
		return nil, c.failure(ctx, reqCtx, err)
	}
	defer httpResp.Body.Close()

	var data strings.Builder
	if _, err := io.Copy(&data, httpResp.Body); err != nil {
		return nil, c.failure(ctx, reqCtx, err)
	}
	duration := time.Since(start)

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, httperr.FromStatus(httpResp.StatusCode, data.String())
	}

	headers := make(map[string]string)
	for k := range httpResp.Header {
		headers[k] = httpResp.Header.Get(k)
	}

	return &Success{
		Status:   httpResp.StatusCode,
		Data:     data.String(),
		Time:     FormatDuration(duration),
		Duration: duration,
		Headers:  headers,
	}, nil
}

// failure normalizes a transport error. A deadline hit by our own timeout is
// always reported as a timeout, whatever error the transport surfaced.
func (c *Client) failure(parent, reqCtx context.Context, err error) error {
	if parent.Err() == nil && errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		return httperr.Timeout()
	}
	return httperr.FromTransport(err)
}

// Request is Do folded into an Outcome.
func (c *Client) Request(ctx context.Context, cfg RequestConfig) Outcome {
	return NewOutcome(c.Do(ctx, cfg))
}

func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*Success, error) {
	return c.Do(ctx, RequestConfig{
		Method:  "GET",
		URL:     url,
		Headers: headers,
	})
}

func (c *Client) Post(ctx context.Context, url, body string, headers map[string]string) (*Success, error) {
	return c.Do(ctx, RequestConfig{
		Method:  "POST",
		URL:     url,
		Body:    body,
		Headers: headers,
	})
}

func (c *Client) Put(ctx context.Context, url, body string, headers map[string]string) (*Success, error) {
	return c.Do(ctx, RequestConfig{
		Method:  "PUT",
		URL:     url,
		Body:    body,
		Headers: headers,
	})
}

func (c *Client) Patch(ctx context.Context, url, body string, headers map[string]string) (*Success, error) {
	return c.Do(ctx, RequestConfig{
		Method:  "PATCH",
		URL:     url,
		Body:    body,
		Headers: headers,
	})
}

func (c *Client) Delete(ctx context.Context, url string, headers map[string]string) (*Success, error) {
	return c.Do(ctx, RequestConfig{
		Method:  "DELETE",
		URL:     url,
		Headers: headers,
	})
}
