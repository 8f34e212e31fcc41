package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// startPostgres runs a throwaway postgres container for the duration of
// the test. Requires a local docker daemon; skipped in short mode.
func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)
	require.NoError(t, pool.Client.Ping())

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=tracker",
			"POSTGRES_PASSWORD=tracker",
			"POSTGRES_DB=tracker_test",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})
	_ = resource.Expire(120)

	dsn := fmt.Sprintf("host=localhost port=%s user=tracker password=tracker dbname=tracker_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	var gormDB *gorm.DB
	pool.MaxWait = 60 * time.Second
	err = pool.Retry(func() error {
		var err error
		gormDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return err
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	})
	require.NoError(t, err)
	require.NoError(t, InitTables(gormDB))

	return gormDB
}

func TestUserDAO(t *testing.T) {
	ctx := context.Background()
	userDAO := NewUserDAO(startPostgres(t))

	created, err := userDAO.Insert(ctx, User{
		Email:    "sam@example.com",
		Password: "hashed",
		Name:     "Sam",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := userDAO.Insert(ctx, User{
			Email:    "sam@example.com",
			Password: "hashed",
			Name:     "Other Sam",
		})
		assert.ErrorIs(t, err, ErrUserEmailExists)
	})

	t.Run("find by ID", func(t *testing.T) {
		found, err := userDAO.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "sam@example.com", found.Email)

		_, err = userDAO.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("find by email", func(t *testing.T) {
		found, err := userDAO.FindByEmail(ctx, "sam@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)

		_, err = userDAO.FindByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
