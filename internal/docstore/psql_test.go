//go:build integration_test || all_tests

package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/2beens/fitxp/internal/db"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPsqlStoreSetup(t *testing.T) *PsqlStore {
	t.Helper()

	dockerPool, err := dockertest.NewPool("")
	require.NoError(t, err)
	require.NoError(t, dockerPool.Client.Ping())

	pgResource, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=fitxp",
			"POSTGRES_HOST_AUTH_METHOD=trust",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgResource.Close(); err != nil {
			t.Logf("postgres teardown: %s", err)
		}
	})

	pgPort := pgResource.GetPort("5432/tcp")
	dsn := fmt.Sprintf("postgres://postgres@localhost:%s/fitxp?sslmode=disable", pgPort)
	require.NoError(t, dockerPool.Retry(func() error {
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		return sqlDB.Ping()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         "localhost",
		DBPort:         pgPort,
		DBName:         "fitxp",
		TracingEnabled: false,
	})
	require.NoError(t, err)
	t.Cleanup(dbPool.Close)

	store := NewPsqlStore(dbPool)
	require.NoError(t, store.Migrate(ctx))
	return store
}

func TestPsqlStore_CRUDAndQuery(t *testing.T) {
	store := testPsqlStoreSetup(t)
	ctx := context.Background()

	doc, err := store.Create(ctx, "entries", "", Fields{
		"userId":   "u1",
		"date":     "2024-01-01",
		"calories": 500,
	}, OwnerPermissions("u1"))
	require.NoError(t, err)
	require.NotEmpty(t, doc.ID)
	assert.Equal(t, 500, doc.Fields.Int("calories", 0))
	assert.Len(t, doc.Permissions, 3)

	_, err = store.Create(ctx, "entries", doc.ID, Fields{}, nil)
	assert.ErrorIs(t, err, ErrConflict)

	updated, err := store.Update(ctx, "entries", doc.ID, Fields{"calories": 700})
	require.NoError(t, err)
	assert.Equal(t, 700, updated.Fields.Int("calories", 0))
	assert.Equal(t, "2024-01-01", updated.Fields.String("date"))

	_, err = store.Create(ctx, "entries", "", Fields{"userId": "u1", "date": "2024-01-02"}, nil)
	require.NoError(t, err)
	_, err = store.Create(ctx, "entries", "", Fields{"userId": "u2", "date": "2024-01-02"}, nil)
	require.NoError(t, err)

	docs, err := store.Query(ctx, "entries", Query{
		Filters: []Filter{Equal("userId", "u1")},
		OrderBy: OrderDesc("date"),
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "2024-01-02", docs[0].Fields.String("date"))

	require.NoError(t, store.Delete(ctx, "entries", doc.ID))
	_, err = store.Get(ctx, "entries", doc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "entries", doc.ID), ErrNotFound)
}
