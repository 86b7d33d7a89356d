// Package external loads reference records from the public D&D 5e API.
// Races, spells and equipment come from the API; every other category is
// delegated to a fallback source, usually the local dataset.
package external

//go:generate mockgen -destination=mock/mock_api.go -package=externalmock github.com/KirkDiggler/rpg-charbuilder/internal/clients/external API

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	"github.com/KirkDiggler/rpg-charbuilder/internal/registry"
	srdcache "github.com/KirkDiggler/rpg-charbuilder/internal/repositories/srd_cache"
)

const (
	defaultBaseURL     = "https://www.dnd5eapi.co/api/2014/"
	defaultHTTPTimeout = 30 * time.Second
	defaultCacheTTL    = 24 * time.Hour
	defaultConcurrency = 8
)

// API is the part of the dnd5e-api client the source uses
type API interface {
	ListRaces() ([]*entities.ReferenceItem, error)
	GetRace(key string) (*entities.Race, error)
	ListSpells(input *dnd5e.ListSpellsInput) ([]*entities.ReferenceItem, error)
	GetSpell(key string) (*entities.Spell, error)
	ListEquipment() ([]*entities.ReferenceItem, error)
	GetEquipment(key string) (dnd5e.EquipmentInterface, error)
}

// Config contains configuration options for the remote source
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
	// Concurrency bounds parallel detail requests (optional, defaults to 8)
	Concurrency int

	// Fallback serves the categories the API client does not expose
	Fallback registry.Source
	// Cache keeps converted batches between runs (optional)
	Cache srdcache.Repository
	// API replaces the HTTP client, for tests
	API API
}

// Validate checks the config and fills in defaults
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if cfg.HTTPTimeout < 0 {
		vb.Field("HTTPTimeout", "must not be negative")
	}
	if cfg.Concurrency < 0 {
		vb.Field("Concurrency", "must not be negative")
	}
	if err := vb.Build(); err != nil {
		return err
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = defaultConcurrency
	}
	return nil
}

// Source implements registry.Source over the remote API
type Source struct {
	api         API
	baseURL     string
	fallback    registry.Source
	cache       srdcache.Repository
	concurrency int
}

var _ registry.Source = (*Source)(nil)

// New creates a remote source with the given configuration
func New(cfg *Config) (*Source, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	api := cfg.API
	if api == nil {
		baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
			Client:  &http.Client{Timeout: cfg.HTTPTimeout},
			BaseURL: cfg.BaseURL,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create D&D 5e API client")
		}
		api = dnd5e.NewCachedClient(baseClient, cfg.CacheTTL)
	}

	return &Source{
		api:         api,
		baseURL:     cfg.BaseURL,
		fallback:    cfg.Fallback,
		cache:       cfg.Cache,
		concurrency: cfg.Concurrency,
	}, nil
}

// Fetch loads one category. List failures are errors; a record whose
// detail request fails becomes a diagnostic. Remote batches are served from
// the cache when one is configured and holds a fresh copy.
func (s *Source) Fetch(ctx context.Context, category srd.Category) (*srd.Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "remote load canceled")
	}

	if !remote(category) {
		if s.fallback == nil {
			return &srd.Batch{Category: category}, nil
		}
		return s.fallback.Fetch(ctx, category)
	}

	if s.cache != nil {
		out, err := s.cache.Get(ctx, srdcache.GetInput{Source: s.baseURL, Category: category})
		switch {
		case err == nil:
			slog.Debug("Using cached remote records",
				"category", category,
				"entries", len(out.Batch.Entries),
				"fetched_at", out.FetchedAt)
			return out.Batch, nil
		case !errors.IsNotFound(err):
			slog.Warn("Remote cache unavailable", "category", category, "error", err)
		}
	}

	batch, err := s.fetch(ctx, category)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if _, err := s.cache.Put(ctx, srdcache.PutInput{Source: s.baseURL, Batch: batch}); err != nil {
			slog.Warn("Failed to cache remote records", "category", category, "error", err)
		}
	}
	return batch, nil
}

func remote(category srd.Category) bool {
	switch category {
	case srd.CategoryRace, srd.CategorySpell, srd.CategoryEquipment:
		return true
	}
	return false
}

func (s *Source) fetch(ctx context.Context, category srd.Category) (*srd.Batch, error) {
	switch category {
	case srd.CategoryRace:
		refs, err := s.api.ListRaces()
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoad, "failed to list races")
		}
		return s.details(ctx, category, refs, func(key string) (srd.Entry, error) {
			race, err := s.api.GetRace(key)
			if err != nil {
				return nil, err
			}
			return convertRace(race), nil
		})

	case srd.CategorySpell:
		refs, err := s.api.ListSpells(&dnd5e.ListSpellsInput{})
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoad, "failed to list spells")
		}
		return s.details(ctx, category, refs, func(key string) (srd.Entry, error) {
			spell, err := s.api.GetSpell(key)
			if err != nil {
				return nil, err
			}
			return convertSpell(spell), nil
		})

	case srd.CategoryEquipment:
		refs, err := s.api.ListEquipment()
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeDataLoad, "failed to list equipment")
		}
		return s.details(ctx, category, refs, func(key string) (srd.Entry, error) {
			item, err := s.api.GetEquipment(key)
			if err != nil {
				return nil, err
			}
			return convertEquipment(item), nil
		})
	}

	return nil, errors.InvalidArgumentf("category %s is not served remotely", category)
}

// details fetches every referenced record with bounded concurrency. The
// batch keeps the list order.
func (s *Source) details(ctx context.Context, category srd.Category, refs []*entities.ReferenceItem, get func(key string) (srd.Entry, error)) (*srd.Batch, error) {
	slog.Info("Loading remote records", "category", category, "count", len(refs))

	entries := make([]srd.Entry, len(refs))
	reasons := make([]string, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, ref := range refs {
		if ref == nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entry, err := get(ref.Key)
			switch {
			case err != nil:
				reasons[i] = err.Error()
			case entry == nil || entry.GetIndex() == "":
				reasons[i] = "record has no index"
			default:
				entries[i] = entry
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "remote load canceled")
	}

	batch := &srd.Batch{Category: category}
	for i, ref := range refs {
		if ref == nil {
			continue
		}
		if entries[i] != nil {
			batch.Entries = append(batch.Entries, entries[i])
			continue
		}
		slog.Warn("Dropped remote record", "category", category, "key", ref.Key, "reason", reasons[i])
		batch.Diagnostics = append(batch.Diagnostics, srd.Diagnostic{
			Category: category,
			Index:    ref.Key,
			Position: i,
			Reason:   reasons[i],
		})
	}
	return batch, nil
}
