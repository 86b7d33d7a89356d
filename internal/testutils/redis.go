// Package testutils holds fixtures shared by package tests: a miniredis
// backed client and a registry loaded from the testdata dataset.
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-charbuilder/internal/redis"
)

// CreateTestRedisClient starts miniredis and returns a client for it
func CreateTestRedisClient(t *testing.T) (redis.Client, func()) {
	return CreateTestRedisClientWithContext(t, nil)
}

// CreateTestRedisClientWithContext is CreateTestRedisClient that also hands
// the server to setupFunc, for seeding keys or calling FastForward.
func CreateTestRedisClientWithContext(t *testing.T, setupFunc func(mr *miniredis.Miniredis)) (redis.Client, func()) {
	t.Helper()

	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start(), "start miniredis")
	if setupFunc != nil {
		setupFunc(mr)
	}

	client, err := redis.Dial(redis.Topology{Addrs: []string{mr.Addr()}}, nil)
	require.NoError(t, err, "dial miniredis")

	return client, func() {
		_ = client.Close()
		mr.Close()
	}
}
