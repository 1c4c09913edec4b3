package entrypoint

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mrlokans/highlights-reader/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "app.db")
	cfg.HTTP.Host = "127.0.0.1"
	cfg.Global.ShutdownTimeoutInSeconds = 1
	return cfg
}

func freePort(t *testing.T) int32 {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return int32(l.Addr().(*net.TCPAddr).Port)
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(testConfig(t), nil)
	require.NoError(t, err)
	defer app.Close()

	assert.NotNil(t, app.Imports)
	assert.NotNil(t, app.Reader)
	assert.NotNil(t, app.Router("test"))
}

func TestNewApp_InvalidLocale(t *testing.T) {
	cfg := testConfig(t)
	cfg.Locale.Default = "xx"

	_, err := NewApp(cfg, nil)
	assert.Error(t, err)
}

func TestServe_GracefulShutdown(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTP.Port = freePort(t)

	app, err := NewApp(cfg, nil)
	require.NoError(t, err)
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, app.Router("test"), cfg, zap.NewNop()) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/ping", cfg.HTTP.Port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
