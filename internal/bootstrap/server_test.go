package bootstrap

import (
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Domenick1991/servicehub/api"
	"github.com/Domenick1991/servicehub/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, swaggerSpec), []byte(`{"swagger":"2.0"}`), 0o600))
	return &config.Config{
		HTTP: config.HTTPConfig{Address: "127.0.0.1:0", SwaggerDir: dir},
		GRPC: config.GRPCConfig{Address: "127.0.0.1:0"},
	}
}

func TestNewServers_Healthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := testConfig(t)
	cfg.GRPC.Address = lis.Addr().String()

	s, err := newServers(cfg, api.Services{})
	require.NoError(t, err)
	go func() { _ = s.grpcServer.Serve(lis) }()
	t.Cleanup(func() {
		s.grpcServer.Stop()
		s.healthConn.Close()
	})

	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SERVING")
}

func TestNewServers_Swagger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s, err := newServers(testConfig(t), api.Services{})
	require.NoError(t, err)
	t.Cleanup(func() { s.healthConn.Close() })

	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, httptest.NewRequest("GET", "/swagger/"+swaggerSpec, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"swagger":"2.0"}`, w.Body.String())

	w = httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, httptest.NewRequest("GET", "/docs/index.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewServers_NoSwaggerDir(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	cfg.HTTP.SwaggerDir = ""

	s, err := newServers(cfg, api.Services{})
	require.NoError(t, err)
	t.Cleanup(func() { s.healthConn.Close() })

	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, httptest.NewRequest("GET", "/docs/index.html", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
