package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is what the draft store and the batch cache hold. It is the
// go-redis universal client so single, cluster and sentinel setups share
// one code path; tests put miniredis or redismock behind it.
type Client = redis.UniversalClient
