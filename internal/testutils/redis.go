// Package testutils provides shared test helpers: an in-memory Redis
// instance and canonical gamebook fixtures.
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// CreateTestRedisClient creates an in-memory Redis client for testing
func CreateTestRedisClient(t *testing.T) (redis.UniversalClient, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cleanup := func() {
		_ = client.Close()
		mr.Close()
	}

	return client, cleanup
}

// CreateTestRedisClientWithSetup creates an in-memory Redis client and
// lets the test populate it before the client connects
func CreateTestRedisClientWithSetup(t *testing.T, setupFunc func(mr *miniredis.Miniredis)) (redis.UniversalClient, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to create miniredis")

	if setupFunc != nil {
		setupFunc(mr)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cleanup := func() {
		_ = client.Close()
		mr.Close()
	}

	return client, cleanup
}
