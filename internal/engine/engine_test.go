package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"recipeapp.com/internal/config"
	"recipeapp.com/internal/constants"
	"recipeapp.com/internal/domain"
	"recipeapp.com/internal/infra"
	"recipeapp.com/internal/model"
)

func testConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:?_pragma=foreign_keys(1)"},
		Auth:     config.AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour},
	}
}

func newTestEngine(t *testing.T, rdb *redis.Client) *Engine {
	t.Helper()
	cfg := testConfig()
	client, err := infra.NewDatabaseClient(cfg.Database)
	require.NoError(t, err)
	require.NoError(t, client.Migrate())
	t.Cleanup(func() { _ = client.Close() })

	eng, err := NewEngine(cfg, client.DB, rdb)
	require.NoError(t, err)
	return eng
}

func TestEngine_StartSubscribesEveryEvent(t *testing.T) {
	eng := newTestEngine(t, nil)
	eng.Start()
	defer eng.Stop()

	for _, ev := range []string{
		constants.EventUserCreated,
		constants.EventUserDeleted,
		constants.EventRecipeCreated,
		constants.EventRecipeUpdated,
		constants.EventRecipeDeleted,
	} {
		assert.Equal(t, 2, eng.bus.SubscriberCount(ev), ev)
	}
}

func TestEngine_DomainEventsReachMetrics(t *testing.T) {
	eng := newTestEngine(t, nil)
	eng.Start()

	_, err := eng.UserService().CreateUser(t.Context(), "events@example.com", "testpass123", domain.UserFields{Name: "Events"})
	require.NoError(t, err)

	// Stop drains the queue before returning.
	eng.Stop()
	expected := `
# HELP domain_events_total Domain events by type.
# TYPE domain_events_total counter
domain_events_total{type="user.created"} 1
`
	err = testutil.GatherAndCompare(eng.Metrics().Registry, strings.NewReader(expected), "domain_events_total")
	assert.NoError(t, err)
}

func TestEngine_LogoutNeedsRedis(t *testing.T) {
	eng := newTestEngine(t, nil)
	user := &model.User{ID: 1, Email: "a@example.com", IsActive: true}

	token, err := eng.Tokens().Issue(user)
	require.NoError(t, err)
	claims, err := eng.Tokens().Resolve(t.Context(), token)
	require.NoError(t, err)

	err = eng.Tokens().Revoke(t.Context(), claims)
	require.ErrorIs(t, err, domain.ErrInternalError)
}

func TestEngine_LogoutWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	eng := newTestEngine(t, rdb)
	user := &model.User{ID: 1, Email: "a@example.com", IsActive: true}

	token, err := eng.Tokens().Issue(user)
	require.NoError(t, err)
	claims, err := eng.Tokens().Resolve(t.Context(), token)
	require.NoError(t, err)
	require.NoError(t, eng.Tokens().Revoke(t.Context(), claims))

	_, err = eng.Tokens().Resolve(t.Context(), token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}
