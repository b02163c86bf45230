package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/abgdnv/gocrud/internal/user/config"
	"github.com/abgdnv/gocrud/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SetupHttpHandler_Seeded(t *testing.T) {
	// given
	seed := filepath.Join(t.TempDir(), "user.json")
	require.NoError(t, os.WriteFile(seed, []byte(`{"name":"John Doe","age":30}`), 0o600))
	cfg := &config.Config{}
	cfg.Seed.File = seed
	cfg.CORS.AllowedOrigins = []string{"*"}
	h, err := SetupHttpHandler(cfg, logger.Discard())
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	defer srv.Close()
	// when
	resp, err := srv.Client().Get(srv.URL + "/user")
	// then
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func Test_SetupHttpHandler_BadSeed(t *testing.T) {
	cfg := &config.Config{}
	cfg.Seed.File = filepath.Join(t.TempDir(), "missing.json")
	_, err := SetupHttpHandler(cfg, logger.Discard())
	assert.Error(t, err)
}
