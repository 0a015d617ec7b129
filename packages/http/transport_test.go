package http

import (
	"context"
	"crypto/x509"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSecureTransport_HealthCheckTimeouts(t *testing.T) {
	tr, h2, err := newSecureTransport(2 * time.Second)
	require.NoError(t, err)

	assert.True(t, tr.DisableKeepAlives)
	assert.Contains(t, tr.TLSNextProto, "h2")
	assert.Equal(t, 2*time.Second, h2.ReadIdleTimeout)
	assert.Equal(t, 2*time.Second, h2.PingTimeout)
}

func TestNewSecureTransport_SpeaksHTTP2(t *testing.T) {
	server := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Proto))
	}))
	server.EnableHTTP2 = true
	server.StartTLS()
	defer server.Close()

	tr, _, err := newSecureTransport(time.Second)
	require.NoError(t, err)
	pool := x509.NewCertPool()
	pool.AddCert(server.Certificate())
	tr.TLSClientConfig.RootCAs = pool

	client := NewClient(WithTransport(ProtocolHTTPS, tr))
	resp, err := client.Get(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, "HTTP/2.0", resp.Data)
}

func TestNewClient_DefaultSecureTransportIsHTTP2(t *testing.T) {
	client := NewClient()

	tr, ok := client.transports[ProtocolHTTPS].(*http.Transport)
	require.True(t, ok)
	assert.Contains(t, tr.TLSNextProto, "h2")
	assert.True(t, tr.DisableKeepAlives)

	plain, ok := client.transports[ProtocolHTTP].(*http.Transport)
	require.True(t, ok)
	assert.NotContains(t, plain.TLSNextProto, "h2")
}
