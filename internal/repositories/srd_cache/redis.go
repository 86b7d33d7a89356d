package srdcache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-charbuilder/internal/redis"
)

const (
	batchKeyPrefix = "charbuilder:srd:"

	// DefaultTTL keeps remote data for a day, matching the API client cache
	DefaultTTL = 24 * time.Hour

	// Error messages
	errSourceEmpty   = "source cannot be empty"
	errCategoryEmpty = "category cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis batch cache
type RedisConfig struct {
	Client redisclient.Client
	// TTL of each batch (optional, defaults to DefaultTTL)
	TTL time.Duration
	// Clock stamps stored batches (optional)
	Clock clock.Clock
}

// Validate validates the RedisConfig
func (cfg *RedisConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateNotNil("Client", cfg.Client != nil, vb)
	if cfg.TTL < 0 {
		vb.InvalidField("TTL", "must not be negative")
	}

	return vb.Build()
}

// NewRedis creates a Redis-backed batch cache
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    ttl,
		clock:  clk,
	}, nil
}

// batchData is what gets serialized to Redis. Entries keep their dataset
// JSON shape so they decode through the same path as the files.
type batchData struct {
	Category    srd.Category     `json:"category"`
	FetchedAt   time.Time        `json:"fetched_at"`
	Entries     json.RawMessage  `json:"entries"`
	Diagnostics []srd.Diagnostic `json:"diagnostics,omitempty"`
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := checkKey(input.Source, input.Category); err != nil {
		return nil, err
	}

	key := GetKey(input.Source, input.Category)
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no cached %s from %s", input.Category, input.Source)
		}
		return nil, errors.Wrapf(err, "failed to get cached %s", input.Category)
	}

	var data batchData
	if err := json.Unmarshal([]byte(result), &data); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal cached %s", input.Category)
	}

	batch := srd.DecodeBatch(input.Category, data.Entries)
	batch.Diagnostics = append(data.Diagnostics, batch.Diagnostics...)

	return &GetOutput{
		Batch:     batch,
		FetchedAt: data.FetchedAt,
	}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.Batch == nil {
		return nil, errors.InvalidArgument("batch cannot be nil")
	}
	if err := checkKey(input.Source, input.Batch.Category); err != nil {
		return nil, err
	}

	entries, err := json.Marshal(input.Batch.Entries)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal %s entries", input.Batch.Category)
	}
	if input.Batch.Entries == nil {
		entries = []byte("[]")
	}

	jsonData, err := json.Marshal(batchData{
		Category:    input.Batch.Category,
		FetchedAt:   r.clock.Now().UTC(),
		Entries:     entries,
		Diagnostics: input.Batch.Diagnostics,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal cached %s", input.Batch.Category)
	}

	key := GetKey(input.Source, input.Batch.Category)
	if err := r.client.Set(ctx, key, jsonData, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to cache %s", input.Batch.Category)
	}

	slog.Debug("Cached reference batch",
		"source", input.Source,
		"category", input.Batch.Category,
		"entries", len(input.Batch.Entries),
		"bytes", len(jsonData))

	return &PutOutput{}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := checkKey(input.Source, input.Category); err != nil {
		return nil, err
	}

	key := GetKey(input.Source, input.Category)

	deleted, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete cached %s", input.Category)
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("no cached %s from %s", input.Category, input.Source)
	}

	return &DeleteOutput{}, nil
}

func checkKey(source string, category srd.Category) error {
	if source == "" {
		return errors.InvalidArgument(errSourceEmpty)
	}
	if category == "" {
		return errors.InvalidArgument(errCategoryEmpty)
	}
	return nil
}

// GetKey returns the Redis key of a cached batch
// Exposed for testing purposes
func GetKey(source string, category srd.Category) string {
	return fmt.Sprintf("%s%s:%s", batchKeyPrefix, source, category)
}
