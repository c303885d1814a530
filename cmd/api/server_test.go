package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertypro-backend/internal/config"
)

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{
		App:    config.AppConfig{Port: "8080"},
		Upload: config.UploadConfig{MaxImageBytes: 5 * 1024 * 1024},
	}

	srv := newHTTPServer(cfg, http.NotFoundHandler())

	assert.Equal(t, ":8080", srv.Addr)
	// 15s + 5MB / 256KB/s
	assert.Equal(t, 35*time.Second, srv.ReadTimeout)
	assert.Equal(t, srv.ReadTimeout, srv.WriteTimeout)
	assert.Equal(t, 5*time.Second, srv.ReadHeaderTimeout)
}

func TestShutdown_IdleServer(t *testing.T) {
	srv := newHTTPServer(&config.Config{App: config.AppConfig{Port: "0"}}, http.NotFoundHandler())
	require.NoError(t, shutdown(srv, 0))
}
