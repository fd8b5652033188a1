package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/comparekart/catalog-engine/pkg/config"
)

func healthMux() *http.ServeMux {
	cfg := &config.Config{Env: "test", Version: "test-version"}
	mux := http.NewServeMux()
	NewHealthHandler(cfg, zap.NewNop()).RegisterRoutes(mux)
	return mux
}

func TestRoot(t *testing.T) {
	rec := doRequest(t, healthMux(), http.MethodGet, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Backend running successfully!", rec.Body.String())
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, healthMux(), http.MethodGet, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestPing(t *testing.T) {
	rec := doRequest(t, healthMux(), http.MethodGet, "/ping")

	require.Equal(t, http.StatusOK, rec.Code)
	var got PingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, "catalog-engine", got.Service)
	assert.Equal(t, "test-version", got.Version)
}

func TestImportInfo(t *testing.T) {
	mux := http.NewServeMux()
	NewImportInfoHandler(zap.NewNop()).RegisterRoutes(mux)

	rec := doRequest(t, mux, http.MethodGet, "/api/import")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cmd/import")
}
