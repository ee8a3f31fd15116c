package web

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_WithAddress(t *testing.T) {
	srv := NewServer(http.NotFoundHandler(), WithAddress(":9999"), WithShutdownTimeout(time.Second))
	assert.Equal(t, ":9999", srv.Addr())
	assert.Equal(t, time.Second, srv.shutdownTimeout)
}

func TestNewServer_Defaults(t *testing.T) {
	srv := NewServer(http.NotFoundHandler(), WithShutdownTimeout(0))
	assert.Equal(t, ":8080", srv.Addr())
	assert.Equal(t, defaultShutdownTimeout, srv.shutdownTimeout)
}

func TestServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewServer(newTestRouter(t, 1<<20))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
