// Package registry loads the SRD reference dataset once and serves it as an
// immutable, indexed lookup for the rest of the builder.
package registry

//go:generate mockgen -destination=mock/mock_source.go -package=registrymock github.com/KirkDiggler/rpg-charbuilder/internal/registry Source

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
)

// DefaultSubclassLevel is used when a subclass has no leveled features
const DefaultSubclassLevel = 3

// Source yields the raw records of one category. Malformed records are
// reported as diagnostics in the batch, never as an error.
type Source interface {
	Fetch(ctx context.Context, category srd.Category) (*srd.Batch, error)
}

// Config holds the dependencies for loading a registry
type Config struct {
	Source Source

	// OverridesDir may hold names.csv and hometowns.csv. Empty disables overrides.
	OverridesDir string

	// Required categories must load at least one entry. Defaults to
	// races, classes and levels.
	Required []srd.Category
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Source == nil {
		vb.RequiredField("Source")
	}

	return vb.Build()
}

func (c *Config) required() []srd.Category {
	if len(c.Required) > 0 {
		return c.Required
	}
	return []srd.Category{srd.CategoryRace, srd.CategoryClass, srd.CategoryLevel}
}

// Registry is the read-only reference dataset. It is safe for concurrent
// readers once Load returns.
type Registry struct {
	entries     map[srd.Category]map[string]srd.Entry
	byName      map[srd.Category]map[string]srd.Entry
	ordered     map[srd.Category][]srd.Entry
	classLevels map[string]map[int]*srd.Level
	subLevels   map[string][]*srd.Level
	diagnostics []srd.Diagnostic
	names       *NameTable
	hometowns   *PlaceTable
}

// Load pulls every category from the source, links cross references and
// reads the override tables.
func Load(ctx context.Context, cfg *Config) (*Registry, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	categories := srd.Categories()
	batches := make([]*srd.Batch, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	for i, cat := range categories {
		g.Go(func() error {
			batch, err := cfg.Source.Fetch(gctx, cat)
			if err != nil {
				return errors.WrapWithCodef(err, errors.CodeDataLoad, "failed to load %s", cat)
			}
			batches[i] = batch
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	r := newRegistry()
	for i, batch := range batches {
		if batch == nil {
			batch = &srd.Batch{Category: categories[i]}
		}
		r.diagnostics = append(r.diagnostics, batch.Diagnostics...)
		for _, entry := range batch.Entries {
			r.add(categories[i], entry)
		}
	}

	r.addBuiltins()
	r.link()
	r.index()

	for _, d := range r.diagnostics {
		slog.Warn("dropped reference record",
			"category", d.Category,
			"index", d.Index,
			"position", d.Position,
			"reason", d.Reason,
		)
	}

	for _, cat := range cfg.required() {
		if len(r.ordered[cat]) == 0 {
			return nil, errors.DataLoadf("required category %s has no entries", cat).
				WithMeta("category", string(cat))
		}
	}

	names, hometowns := loadOverrides(cfg.OverridesDir)
	r.names = names
	r.hometowns = hometowns

	slog.Info("reference registry loaded",
		"races", len(r.ordered[srd.CategoryRace]),
		"classes", len(r.ordered[srd.CategoryClass]),
		"spells", len(r.ordered[srd.CategorySpell]),
		"equipment", len(r.ordered[srd.CategoryEquipment]),
		"diagnostics", len(r.diagnostics),
		"custom_names", names.Len(),
		"custom_hometowns", hometowns.Len(),
	)

	return r, nil
}

func newRegistry() *Registry {
	return &Registry{
		entries:     make(map[srd.Category]map[string]srd.Entry),
		byName:      make(map[srd.Category]map[string]srd.Entry),
		ordered:     make(map[srd.Category][]srd.Entry),
		classLevels: make(map[string]map[int]*srd.Level),
		subLevels:   make(map[string][]*srd.Level),
		names:       NewNameTable(),
		hometowns:   NewPlaceTable(),
	}
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (r *Registry) add(cat srd.Category, entry srd.Entry) {
	if entry == nil || entry.GetIndex() == "" {
		return
	}
	if r.entries[cat] == nil {
		r.entries[cat] = make(map[string]srd.Entry)
	}
	r.entries[cat][key(entry.GetIndex())] = entry
}

func (r *Registry) drop(cat srd.Category, index, reason string) {
	delete(r.entries[cat], key(index))
	r.diagnostics = append(r.diagnostics, srd.Diagnostic{Category: cat, Index: index, Reason: reason})
}

func (r *Registry) has(cat srd.Category, index string) bool {
	_, ok := r.entries[cat][key(index)]
	return ok
}

// index builds the ordered lists and secondary lookups after linking
func (r *Registry) index() {
	for cat, m := range r.entries {
		list := make([]srd.Entry, 0, len(m))
		names := make(map[string]srd.Entry, len(m))
		for _, e := range m {
			list = append(list, e)
			if n := key(e.GetName()); n != "" {
				names[n] = e
			}
		}
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].GetIndex() < list[j].GetIndex()
		})
		r.ordered[cat] = list
		r.byName[cat] = names
	}

	for _, e := range r.ordered[srd.CategoryLevel] {
		lvl := e.(*srd.Level)
		if lvl.Subclass != nil && lvl.Subclass.Key() != "" {
			sub := key(lvl.Subclass.Key())
			r.subLevels[sub] = append(r.subLevels[sub], lvl)
			continue
		}
		class := key(lvl.Class.Key())
		if r.classLevels[class] == nil {
			r.classLevels[class] = make(map[int]*srd.Level)
		}
		r.classLevels[class][lvl.Level] = lvl
	}
	for sub := range r.subLevels {
		levels := r.subLevels[sub]
		sort.SliceStable(levels, func(i, j int) bool { return levels[i].Level < levels[j].Level })
	}
}

// Diagnostics returns the records dropped while loading
func (r *Registry) Diagnostics() []srd.Diagnostic {
	return append([]srd.Diagnostic(nil), r.diagnostics...)
}

// Get looks an entry up by index or name, case-insensitively
func (r *Registry) Get(category srd.Category, index string) (srd.Entry, bool) {
	k := key(index)
	if k == "" {
		return nil, false
	}
	if e, ok := r.entries[category][k]; ok {
		return e, true
	}
	e, ok := r.byName[category][k]
	return e, ok
}

// List returns every entry of a category sorted by index
func (r *Registry) List(category srd.Category) []srd.Entry {
	return append([]srd.Entry(nil), r.ordered[category]...)
}

// Indexes returns the sorted indexes of a category
func (r *Registry) Indexes(category srd.Category) []string {
	out := make([]string, 0, len(r.ordered[category]))
	for _, e := range r.ordered[category] {
		out = append(out, e.GetIndex())
	}
	return out
}

// Names returns the custom name table, empty when no override file exists
func (r *Registry) Names() *NameTable {
	return r.names
}

// Hometowns returns the custom hometown table
func (r *Registry) Hometowns() *PlaceTable {
	return r.hometowns
}

// Wait lets a loaded registry stand in wherever a Provider is expected
func (r *Registry) Wait(_ context.Context) (*Registry, error) {
	return r, nil
}

// Provider yields a ready registry, blocking while it loads
type Provider interface {
	Wait(ctx context.Context) (*Registry, error)
}

// Loader loads a registry in the background
type Loader struct {
	done chan struct{}
	once sync.Once
	reg  *Registry
	err  error
}

// LoadAsync starts loading and returns immediately
func LoadAsync(ctx context.Context, cfg *Config) *Loader {
	l := &Loader{done: make(chan struct{})}
	go func() {
		reg, err := Load(ctx, cfg)
		l.finish(reg, err)
	}()
	return l
}

func (l *Loader) finish(reg *Registry, err error) {
	l.once.Do(func() {
		l.reg = reg
		l.err = err
		close(l.done)
	})
}

// Ready reports whether loading has finished, successfully or not
func (l *Loader) Ready() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the registry is loaded or ctx is done
func (l *Loader) Wait(ctx context.Context) (*Registry, error) {
	select {
	case <-l.done:
		return l.reg, l.err
	case <-ctx.Done():
		return nil, errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "registry not ready")
	}
}
