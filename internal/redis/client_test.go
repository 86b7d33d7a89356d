package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	"github.com/KirkDiggler/rpg-charbuilder/internal/redis"
)

func TestDialPicksClientType(t *testing.T) {
	testCases := []struct {
		name string
		topo redis.Topology
		want any
	}{
		{"single", redis.Topology{Addrs: []string{"localhost:6379"}}, &goredis.Client{}},
		{"cluster", redis.Topology{Addrs: []string{"a:7000", "b:7001"}}, &goredis.ClusterClient{}},
		{"sentinel", redis.Topology{Addrs: []string{"s:26379"}, MasterName: "drafts"}, &goredis.Client{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			client, err := redis.Dial(tc.topo, &redis.Options{ReadOnly: true})
			require.NoError(t, err)
			defer client.Close()
			assert.IsType(t, tc.want, client)
		})
	}
}

func TestDialRejectsMissingAddresses(t *testing.T) {
	for _, topo := range []redis.Topology{
		{},
		{MasterName: "drafts"},
		{Addrs: []string{"localhost:6379", ""}},
	} {
		_, err := redis.Dial(topo, nil)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidArgument(err))
	}
}

func TestDialedClientTalksToServer(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redis.Dial(redis.Topology{Addrs: []string{mr.Addr()}}, &redis.Options{MaxRetries: -1})
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Set(context.Background(), "charbuilder:active", "draft_1", 0).Err())
	got, err := mr.Get("charbuilder:active")
	require.NoError(t, err)
	assert.Equal(t, "draft_1", got)
}
