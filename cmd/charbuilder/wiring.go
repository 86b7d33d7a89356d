package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-charbuilder/internal/clients/dataset"
	"github.com/KirkDiggler/rpg-charbuilder/internal/clients/external"
	"github.com/KirkDiggler/rpg-charbuilder/internal/config"
	"github.com/KirkDiggler/rpg-charbuilder/internal/engine"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	"github.com/KirkDiggler/rpg-charbuilder/internal/exporters/actor"
	"github.com/KirkDiggler/rpg-charbuilder/internal/exporters/statblock"
	"github.com/KirkDiggler/rpg-charbuilder/internal/flavor"
	"github.com/KirkDiggler/rpg-charbuilder/internal/orchestrators/builder"
	dicesvc "github.com/KirkDiggler/rpg-charbuilder/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-charbuilder/internal/orchestrators/synthesizer"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/rng"
	redisclient "github.com/KirkDiggler/rpg-charbuilder/internal/redis"
	"github.com/KirkDiggler/rpg-charbuilder/internal/registry"
	characterdraft "github.com/KirkDiggler/rpg-charbuilder/internal/repositories/character_draft"
	srdcache "github.com/KirkDiggler/rpg-charbuilder/internal/repositories/srd_cache"
)

const (
	// draftIDPrefix names drafts created by the CLI
	draftIDPrefix = "draft"

	cachePingTimeout = 300 * time.Millisecond
)

// app holds the services every command shares. The registry loads in the
// background while the command parses its input.
type app struct {
	registry  *registry.Loader
	tuning    *config.Tuning
	engine    engine.Engine
	synth     synthesizer.Synthesizer
	actor     actor.Exporter
	statblock statblock.Renderer
	bus       events.EventBus
	ids       idgen.Generator
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	src, err := newSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	loader := registry.LoadAsync(ctx, &registry.Config{
		Source:       src,
		OverridesDir: cfg.OverridesDir,
	})

	tuning := config.DefaultTuning()
	if cfg.TuningFile != "" {
		tuning, err = config.LoadTuning(cfg.TuningFile)
		if err != nil {
			return nil, err
		}
	}

	eng, err := engine.New(&engine.Config{PreparedCasters: tuning.PreparedCasters})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create engine")
	}

	roller := rng.NewRoller(nil)
	diceService, err := dicesvc.NewOrchestrator(&dicesvc.Config{Roller: roller})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create dice service")
	}

	biographer := flavor.NewTemplateBiographer()
	synth, err := synthesizer.New(&synthesizer.Config{
		Tuning:     tuning,
		Dice:       diceService,
		Engine:     eng,
		Biographer: biographer,
		Roller:     roller,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create synthesizer")
	}

	exporter, err := actor.New(&actor.Config{
		IDGen: idgen.NewDocument(),
		Clock: clock.New(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create actor exporter")
	}

	return &app{
		registry:  loader,
		tuning:    tuning,
		engine:    eng,
		synth:     synth,
		actor:     exporter,
		statblock: statblock.New(biographer),
		bus:       events.NewBus(),
		ids:       idgen.NewUUID(draftIDPrefix),
	}, nil
}

// newSource reads the local dataset, or the remote API backed by the local
// dataset for the categories the API client does not cover
func newSource(ctx context.Context, cfg *config.Config) (registry.Source, error) {
	local, err := dataset.New(&dataset.Config{Root: cfg.DataDir})
	if err != nil && !cfg.Remote {
		return nil, err
	}

	if !cfg.Remote {
		return local, nil
	}

	remoteCfg := &external.Config{BaseURL: cfg.RemoteURL, Cache: remoteCache(ctx, cfg)}
	if local != nil {
		remoteCfg.Fallback = local
	} else {
		slog.Warn("Local dataset unavailable, remote source has no fallback",
			"data", cfg.DataDir,
			"error", err)
	}
	return external.New(remoteCfg)
}

// remoteCache returns the redis batch cache, or nil when redis does not
// answer quickly
func remoteCache(ctx context.Context, cfg *config.Config) srdcache.Repository {
	client, err := redisclient.Dial(
		redisclient.Topology{Addrs: cfg.RedisAddrs(), MasterName: cfg.RedisMaster},
		&redisclient.Options{MaxRetries: -1},
	)
	if err != nil {
		slog.Debug("Remote cache disabled", "error", err)
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, cachePingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		slog.Debug("Remote cache disabled, redis not reachable", "redis", cfg.RedisAddr, "error", err)
		_ = client.Close()
		return nil
	}

	cache, err := srdcache.NewRedis(&srdcache.RedisConfig{Client: client})
	if err != nil {
		_ = client.Close()
		return nil
	}
	return cache
}

// controller builds a draft controller resuming initial, or a fresh draft
// when initial is nil
func (a *app) controller(initial *character.Draft) (*builder.Orchestrator, error) {
	return builder.New(&builder.Config{
		Registry:    a.registry,
		Engine:      a.engine,
		Synthesizer: a.synth,
		Actor:       a.actor,
		Statblock:   a.statblock,
		EventBus:    a.bus,
		Tuning:      a.tuning,
		Initial:     initial,
		IDGen:       a.ids,
	})
}

// openDrafts connects to the draft store
func openDrafts(cfg *config.Config) (characterdraft.Repository, func(), error) {
	client, err := redisclient.Dial(
		redisclient.Topology{Addrs: cfg.RedisAddrs(), MasterName: cfg.RedisMaster},
		&redisclient.Options{},
	)
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		if err := client.Close(); err != nil {
			slog.Warn("Failed to close redis client", "error", err)
		}
	}

	repo, err := characterdraft.NewRedis(&characterdraft.Config{Client: client, TTL: cfg.DraftTTL})
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return repo, closeFn, nil
}
