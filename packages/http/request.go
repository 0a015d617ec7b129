package http

import (
	"net/http"
	"net/url"
)

const (
	// DefaultUserAgent identifies the client on every request
	DefaultUserAgent = "EasyFetch/1.0.0"
	// DefaultAccept accepts any media type
	DefaultAccept = "*/*"
	// DefaultContentType is sent when the request does not name one
	DefaultContentType = "application/json"
	// DefaultMethod is used when the request does not name one
	DefaultMethod = "GET"
)

const (
	ProtocolHTTP  = "http"
	ProtocolHTTPS = "https"
)

// RequestConfig describes a single request.
type RequestConfig struct {
	URL         string            `json:"url" yaml:"url"`
	Method      string            `json:"method,omitempty" yaml:"method,omitempty"`
	Headers     map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Body        string            `json:"body,omitempty" yaml:"body,omitempty"`
	ContentType string            `json:"contentType,omitempty" yaml:"contentType,omitempty"`
}

// WithDefaults returns a copy with an empty method and content type filled in.
func (r RequestConfig) WithDefaults() RequestConfig {
	if r.Method == "" {
		r.Method = DefaultMethod
	}
	if r.ContentType == "" {
		r.ContentType = DefaultContentType
	}
	return r
}

// HasBody reports whether the request carries a payload.
func (r RequestConfig) HasBody() bool {
	return r.Body != ""
}

// Protocol returns "https" for https URLs and "http" for everything else,
// including URLs that do not parse.
func Protocol(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ProtocolHTTP
	}
	if u.Scheme == ProtocolHTTPS {
		return ProtocolHTTPS
	}
	return ProtocolHTTP
}

// ResolveHeaders builds the outgoing header set. Fixed defaults go first,
// then extra (client-wide headers), then the request's own headers; later
// values win on key collision.
func (r RequestConfig) ResolveHeaders(userAgent string, extra map[string]string) http.Header {
	r = r.WithDefaults()
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	h := make(http.Header)
	h.Set("User-Agent", userAgent)
	h.Set("Accept", DefaultAccept)
	if u, err := url.Parse(r.URL); err == nil && u.Host != "" {
		h.Set("Host", u.Host)
	}
	h.Set("Content-Type", r.ContentType)

	for k, v := range extra {
		h.Set(k, v)
	}
	for k, v := range r.Headers {
		h.Set(k, v)
	}
	return h
}
