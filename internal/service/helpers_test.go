package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"recipeapp.com/internal/config"
	"recipeapp.com/internal/domain"
	"recipeapp.com/internal/event"
	"recipeapp.com/internal/infra"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	client, err := infra.NewDatabaseClient(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file::memory:?_pragma=foreign_keys(1)",
	})
	require.NoError(t, err)
	require.NoError(t, client.Migrate())
	t.Cleanup(func() { _ = client.Close() })
	return client.DB
}

func newTestServices(t *testing.T) (*UserServiceImpl, *RecipeServiceImpl, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	bus := event.NewBus(64)
	t.Cleanup(bus.Shutdown)

	users := NewUserService(db, bus)
	users.hashCost = bcrypt.MinCost
	return users, NewRecipeService(db, bus), db
}

func requireAppError(t *testing.T, err error, code int, sentinel error) {
	t.Helper()
	var appErr *domain.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
	if sentinel != nil {
		assert.ErrorIs(t, err, sentinel)
	}
}

func ptr[T any](v T) *T { return &v }
