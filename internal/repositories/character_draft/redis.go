package characterdraft

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-charbuilder/internal/redis"
)

const (
	draftKeyPrefix = "charbuilder:draft:"
	activeKey      = "charbuilder:active"
	defaultTTL     = 30 * 24 * time.Hour

	errDraftNil     = "draft cannot be nil"
	errDraftIDEmpty = "draft ID cannot be empty"
)

// Config holds the dependencies for the Redis repository
type Config struct {
	Client redisclient.Client
	// TTL bounds how long an untouched draft is kept. Defaults to 30 days.
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateNotNil("Client", c.Client != nil, vb)
	if c.TTL < 0 {
		vb.Field("TTL", "must not be negative")
	}

	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed draft repository
func NewRedis(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	return &redisRepository{client: cfg.Client, ttl: ttl}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := checkDraft(input.Draft); err != nil {
		return nil, err
	}

	previous, err := r.client.Get(ctx, activeKey).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrap(err, "failed to read active draft")
	}

	data, err := json.Marshal(input.Draft)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal draft")
	}

	pipe := r.client.TxPipeline()
	if previous != "" && previous != input.Draft.ID {
		pipe.Del(ctx, draftKeyPrefix+previous)
	}
	pipe.Set(ctx, draftKeyPrefix+input.Draft.ID, data, r.ttl)
	pipe.Set(ctx, activeKey, input.Draft.ID, r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to create draft")
	}

	out := &CreateOutput{}
	if previous != input.Draft.ID {
		out.Replaced = previous
	}
	if out.Replaced != "" {
		slog.Info("Replaced active draft", "draft_id", input.Draft.ID, "replaced", out.Replaced)
	}
	return out, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errDraftIDEmpty)
	}

	draft, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Draft: draft}, nil
}

func (r *redisRepository) GetActive(ctx context.Context) (*GetActiveOutput, error) {
	id, err := r.client.Get(ctx, activeKey).Result()
	if err == redis.Nil {
		return nil, errors.NotFound("no active draft")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read active draft")
	}

	draft, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &GetActiveOutput{Draft: draft}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := checkDraft(input.Draft); err != nil {
		return nil, err
	}

	key := draftKeyPrefix + input.Draft.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to check draft existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("draft %s not found", input.Draft.ID)
	}

	data, err := json.Marshal(input.Draft)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal draft")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, r.ttl)
	pipe.Expire(ctx, activeKey, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to update draft")
	}

	return &UpdateOutput{}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errDraftIDEmpty)
	}

	key := draftKeyPrefix + input.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to check draft existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("draft %s not found", input.ID)
	}

	active, err := r.client.Get(ctx, activeKey).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrap(err, "failed to read active draft")
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, key)
	if active == input.ID {
		pipe.Del(ctx, activeKey)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to delete draft")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) load(ctx context.Context, id string) (*character.Draft, error) {
	data, err := r.client.Get(ctx, draftKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, errors.NotFoundf("draft %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get draft")
	}

	var draft character.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal draft %s", id)
	}
	if draft.Locks == nil {
		draft.Locks = character.Locks{}
	}
	return &draft, nil
}

func checkDraft(d *character.Draft) error {
	if d == nil {
		return errors.InvalidArgument(errDraftNil)
	}
	if d.ID == "" {
		return errors.InvalidArgument(errDraftIDEmpty)
	}
	return nil
}
