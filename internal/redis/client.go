// Package redis wraps go-redis client construction for the draft store and
// the reference batch cache
package redis

import (
	"crypto/tls"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
)

// Options tunes the connection pool. Zero values keep go-redis defaults;
// MaxRetries of -1 disables retries, which the CLI uses when it checks
// the server is reachable.
type Options struct {
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	ConnMaxIdleTime time.Duration
	DialTimeout     time.Duration
	MaxRetries      int
	UseTLS          bool
	// ReadOnly routes cluster reads to replicas
	ReadOnly bool
}

// Topology names the servers to talk to. One address is a single instance,
// several are a cluster, and a master name switches to Sentinel with Addrs
// as the sentinels.
type Topology struct {
	Addrs      []string
	MasterName string
}

// Dial builds the client matching topo. Nothing is contacted until the
// first command.
func Dial(topo Topology, opts *Options) (Client, error) {
	if len(topo.Addrs) == 0 {
		if topo.MasterName != "" {
			return nil, errors.InvalidArgumentf("redis master %q needs at least one sentinel address", topo.MasterName)
		}
		return nil, errors.InvalidArgument("redis address is required")
	}
	for _, addr := range topo.Addrs {
		if addr == "" {
			return nil, errors.InvalidArgument("redis address must not be empty")
		}
	}

	if opts == nil {
		opts = &Options{}
	}

	uo := &redis.UniversalOptions{
		Addrs:           topo.Addrs,
		MasterName:      topo.MasterName,
		Password:        opts.Password,
		DB:              opts.DB,
		PoolSize:        opts.PoolSize,
		MinIdleConns:    opts.MinIdleConns,
		ConnMaxIdleTime: opts.ConnMaxIdleTime,
		DialTimeout:     opts.DialTimeout,
		MaxRetries:      opts.MaxRetries,
		ReadOnly:        opts.ReadOnly,
	}
	if opts.UseTLS {
		uo.TLSConfig = &tls.Config{
			InsecureSkipVerify: true, // #nosec G402 self-signed certs
		}
	}

	return redis.NewUniversalClient(uo), nil
}
