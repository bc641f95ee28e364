//go:build integration

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/fulfillment-service/internal/config"
	"github.com/light-bringer/fulfillment-service/internal/services"
	"github.com/light-bringer/fulfillment-service/tests/testutil"
)

// env is a running service backed by the emulator database.
type env struct {
	Server  *httptest.Server
	Options *services.ServiceOptions
}

// setupTest wires the whole service the way cmd/server does and serves it
// over httptest. The scheduler is left stopped.
func setupTest(t *testing.T) (*env, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// Clean database through the shared helper
	_, cleanDB := testutil.SetupSpannerTest(t)

	cfg, err := config.Load("")
	require.NoError(t, err)
	parts := strings.Split(testutil.GetTestSpannerDB(), "/")
	require.Len(t, parts, 6, "unexpected database path")
	cfg.Spanner.Project, cfg.Spanner.Instance, cfg.Spanner.Database = parts[1], parts[3], parts[5]

	opts, err := services.NewServiceOptions(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	srv := httptest.NewServer(opts.Router)
	return &env{Server: srv, Options: opts}, func() {
		srv.Close()
		opts.Close()
		cleanDB()
	}
}

// do sends body as JSON and decodes the response into out when non-nil.
func (e *env) do(t *testing.T, method, path string, body any, out any) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.Server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}
