package http

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

// newTransport returns a transport that opens a fresh connection per request.
func newTransport() *http.Transport {
	return &http.Transport{
		DisableKeepAlives: true,
	}
}

// newSecureTransport is newTransport with HTTP/2 configured explicitly. An h2
// connection that stays silent for timeout is health-checked with a PING
// and torn down if the PING is not answered within timeout.
func newSecureTransport(timeout time.Duration) (*http.Transport, *http2.Transport, error) {
	t := newTransport()
	h2, err := http2.ConfigureTransports(t)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to configure HTTP/2: %w", err)
	}
	h2.ReadIdleTimeout = timeout
	h2.PingTimeout = timeout
	return t, h2, nil
}

// noRedirect hands 3xx responses back to the caller untouched.
func noRedirect(req *http.Request, via []*http.Request) error {
	return http.ErrUseLastResponse
}
