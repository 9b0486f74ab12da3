package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"recipeapp.com/internal/config"
	"recipeapp.com/internal/domain"
	"recipeapp.com/internal/engine"
	"recipeapp.com/internal/infra"
)

type testEnv struct {
	app *fiber.App
	eng *engine.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Server:   config.ServerConfig{AppName: "recipe-api-test"},
		Database: config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:?_pragma=foreign_keys(1)"},
		Auth:     config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
	}

	db, err := infra.NewDatabaseClient(cfg.Database)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	mr := miniredis.RunT(t)
	rdb := infra.NewRedisClient(config.RedisConfig{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	eng, err := engine.NewEngine(cfg, db.DB, rdb)
	require.NoError(t, err)
	eng.Start()
	t.Cleanup(eng.Stop)

	return &testEnv{app: NewServer(eng, Options{}), eng: eng}
}

// do sends a request and returns the status and raw body.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func (e *testEnv) doObject(t *testing.T, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	status, raw := e.do(t, method, path, token, body)
	out := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return status, out
}

func (e *testEnv) doList(t *testing.T, method, path, token string) (int, []map[string]interface{}) {
	t.Helper()
	status, raw := e.do(t, method, path, token, nil)
	var out []map[string]interface{}
	if status == http.StatusOK {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return status, out
}

// register creates an account through the service and returns a token.
func (e *testEnv) register(t *testing.T, email, password string) string {
	t.Helper()
	_, err := e.eng.UserService().CreateUser(t.Context(), email, password, domain.UserFields{Name: "Test User"})
	require.NoError(t, err)
	return e.login(t, email, password)
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	status, body := e.doObject(t, http.MethodPost, "/api/user/token", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status, body)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}
