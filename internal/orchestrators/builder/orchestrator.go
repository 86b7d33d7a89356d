// Package builder owns the single active character draft. Every change goes
// through it: validate, apply to a copy, prune, derive, commit, notify.
package builder

//go:generate mockgen -destination=mock/mock_controller.go -package=buildermock github.com/KirkDiggler/rpg-charbuilder/internal/orchestrators/builder Controller

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-charbuilder/internal/config"
	"github.com/KirkDiggler/rpg-charbuilder/internal/engine"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	"github.com/KirkDiggler/rpg-charbuilder/internal/exporters/actor"
	"github.com/KirkDiggler/rpg-charbuilder/internal/exporters/statblock"
	"github.com/KirkDiggler/rpg-charbuilder/internal/orchestrators/synthesizer"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-charbuilder/internal/registry"
)

// Controller is the draft controller
type Controller interface {
	Set(ctx context.Context, input *SetInput) (*SetOutput, error)
	Unlock(ctx context.Context, field character.Field) error
	Clear(ctx context.Context) error
	SnapshotLocks() map[character.Field]bool
	Current(ctx context.Context) (*CurrentOutput, error)
	Randomize(ctx context.Context, input *RandomizeInput) (*RandomizeOutput, error)
	Export(ctx context.Context, input *ExportInput) (*ExportOutput, error)
	Options(ctx context.Context, field character.Field) (*OptionsOutput, error)
	Subscribe(fn func(ctx context.Context, n *Notification) error) (unsubscribe func())
}

// Config holds the dependencies for the controller
type Config struct {
	Registry    registry.Provider
	Engine      engine.Engine
	Synthesizer synthesizer.Synthesizer
	Actor       actor.Exporter
	Statblock   statblock.Renderer
	EventBus    events.EventBus

	// Tuning supplies the legal ability score range. Defaults apply when nil.
	Tuning *config.Tuning
	// Initial is the draft to resume. A blank draft is created when nil.
	Initial *character.Draft
	// IDGen names new drafts
	IDGen idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateNotNil("Registry", c.Registry != nil, vb)
	errors.ValidateNotNil("Engine", c.Engine != nil, vb)
	errors.ValidateNotNil("Synthesizer", c.Synthesizer != nil, vb)
	errors.ValidateNotNil("Actor", c.Actor != nil, vb)
	errors.ValidateNotNil("Statblock", c.Statblock != nil, vb)
	errors.ValidateNotNil("EventBus", c.EventBus != nil, vb)
	if c.Initial == nil && c.IDGen == nil {
		vb.Field("IDGen", "is required when no initial draft is given")
	}

	return vb.Build()
}

// Orchestrator implements Controller
type Orchestrator struct {
	registry  registry.Provider
	engine    engine.Engine
	synth     synthesizer.Synthesizer
	actor     actor.Exporter
	statblock statblock.Renderer
	bus       events.EventBus
	tuning    *config.Tuning

	mu       sync.Mutex
	draft    *character.Draft
	snapshot *engine.Snapshot
	revision uint64
}

var _ Controller = (*Orchestrator)(nil)

// New creates a controller holding the initial draft
func New(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	tuning := cfg.Tuning
	if tuning == nil {
		tuning = config.DefaultTuning()
	}

	draft := cfg.Initial
	if draft == nil {
		draft = character.New(cfg.IDGen.Generate())
	} else {
		draft = draft.Clone()
	}
	if draft.Locks == nil {
		draft.Locks = character.Locks{}
	}

	return &Orchestrator{
		registry:  cfg.Registry,
		engine:    cfg.Engine,
		synth:     cfg.Synthesizer,
		actor:     cfg.Actor,
		statblock: cfg.Statblock,
		bus:       cfg.EventBus,
		tuning:    tuning,
		draft:     draft,
	}, nil
}

// Set validates the value against the options the current draft allows,
// applies it to a copy, locks the field, clears dependent fields the change
// made illegal, derives, and only then commits. A failed Set leaves the
// draft untouched.
func (o *Orchestrator) Set(ctx context.Context, input *SetInput) (*SetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if _, ok := character.ParseField(string(input.Field)); !ok {
		return nil, errors.InvalidArgumentf("unknown field %q", input.Field)
	}

	reg, err := o.registry.Wait(ctx)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	next := o.draft.Clone()
	opts := reg.ResolveChoiceOptions(next)
	if err := o.apply(next, opts, input.Field, input.Value); err != nil {
		o.mu.Unlock()
		slog.Debug("Rejected selection", "field", input.Field, "error", err)
		return nil, err
	}
	cleared := reg.Prune(next)

	derived, err := o.engine.Derive(ctx, &engine.DeriveInput{Draft: next, Registry: reg})
	if err != nil {
		o.mu.Unlock()
		return nil, errors.Wrap(err, "failed to derive draft")
	}

	rev := o.commit(next, derived.Snapshot)
	out := &SetOutput{Draft: next.Clone(), Snapshot: derived.Snapshot, Cleared: cleared}
	o.mu.Unlock()

	slog.Info("Draft field set",
		"field", input.Field,
		"revision", rev,
		"cleared", cleared)

	o.publish(ctx, EventDraftChanged, input.Field, rev, out.Draft, out.Snapshot)
	return out, nil
}

// Unlock releases a field to the synthesizer without touching its value
func (o *Orchestrator) Unlock(ctx context.Context, field character.Field) error {
	if _, ok := character.ParseField(string(field)); !ok {
		return errors.InvalidArgumentf("unknown field %q", field)
	}

	o.mu.Lock()
	if !o.draft.Locked(field) {
		o.mu.Unlock()
		return nil
	}
	next := o.draft.Clone()
	next.Unlock(field)
	rev := o.commit(next, o.snapshot)
	draft, snap := next.Clone(), o.snapshot
	o.mu.Unlock()

	slog.Info("Draft field unlocked", "field", field, "revision", rev)
	o.publish(ctx, EventDraftChanged, field, rev, draft, snap)
	return nil
}

// Clear resets the draft and every lock in one step. The revision bump
// makes an in-flight randomize discard its result.
func (o *Orchestrator) Clear(ctx context.Context) error {
	o.mu.Lock()
	next := o.draft.Clone()
	next.Reset()
	rev := o.commit(next, nil)
	draft := next.Clone()
	o.mu.Unlock()

	slog.Info("Draft cleared", "draft_id", draft.ID, "revision", rev)
	o.publish(ctx, EventDraftCleared, "", rev, draft, nil)
	return nil
}

// SnapshotLocks returns the lock state of every field
func (o *Orchestrator) SnapshotLocks() map[character.Field]bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.draft.Locks.Snapshot()
}

// Current returns a copy of the draft with its derived snapshot. Draft,
// snapshot, locks and revision all belong to the same commit.
func (o *Orchestrator) Current(ctx context.Context) (*CurrentOutput, error) {
	view := o.view()
	snap, err := o.derived(ctx, view)
	if err != nil {
		return nil, err
	}
	view.Snapshot = snap
	return view, nil
}

// Randomize fills every unlocked field. The synthesizer runs on a copy
// outside the lock; the result is committed only if no other change landed
// in the meantime.
func (o *Orchestrator) Randomize(ctx context.Context, input *RandomizeInput) (*RandomizeOutput, error) {
	if input == nil {
		input = &RandomizeInput{}
	}

	reg, err := o.registry.Wait(ctx)
	if err != nil {
		return nil, err
	}

	o.mu.Lock()
	base := o.draft.Clone()
	startRev := o.revision
	o.mu.Unlock()

	synthInput := &synthesizer.RandomizeInput{Draft: base, Registry: reg}
	if input.Seed != nil {
		synthInput.Roller = rng.NewSeeded(*input.Seed)
	}
	result, err := o.synth.Randomize(ctx, synthInput)
	if err != nil {
		return nil, errors.Wrap(err, "failed to randomize draft")
	}
	derived, err := o.engine.Derive(ctx, &engine.DeriveInput{Draft: result.Draft, Registry: reg})
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive randomized draft")
	}

	o.mu.Lock()
	if o.revision != startRev {
		out := &RandomizeOutput{Draft: o.draft.Clone(), Snapshot: o.snapshot, Discarded: true}
		rev := o.revision
		o.mu.Unlock()
		slog.Info("Discarded stale randomize result", "started_at", startRev, "revision", rev)
		return out, nil
	}
	next := result.Draft.Clone()
	next.ID = base.ID
	next.Locks = base.Locks.Clone()
	rev := o.commit(next, derived.Snapshot)
	out := &RandomizeOutput{Draft: next.Clone(), Snapshot: derived.Snapshot}
	o.mu.Unlock()

	slog.Info("Draft randomized",
		"draft_id", next.ID,
		"revision", rev,
		"race", next.Race,
		"class", next.Class,
		"level", next.Level)

	o.publish(ctx, EventDraftRandomized, "", rev, out.Draft, out.Snapshot)
	return out, nil
}

// commit installs a new draft and bumps the revision. Callers hold mu.
func (o *Orchestrator) commit(next *character.Draft, snap *engine.Snapshot) uint64 {
	o.draft = next
	o.snapshot = snap
	o.revision++
	return o.revision
}

// view copies the committed state in one lock section. Snapshot is nil when
// the commit has not been derived yet.
func (o *Orchestrator) view() *CurrentOutput {
	o.mu.Lock()
	defer o.mu.Unlock()
	return &CurrentOutput{
		Draft:    o.draft.Clone(),
		Snapshot: o.snapshot,
		Locks:    o.draft.Locks.Snapshot(),
		Revision: o.revision,
	}
}

// derived returns the snapshot of view's draft, deriving it outside the lock
// when missing. The result is cached only if view is still the latest commit.
func (o *Orchestrator) derived(ctx context.Context, view *CurrentOutput) (*engine.Snapshot, error) {
	if view.Snapshot != nil {
		return view.Snapshot, nil
	}

	reg, err := o.registry.Wait(ctx)
	if err != nil {
		return nil, err
	}
	out, err := o.engine.Derive(ctx, &engine.DeriveInput{Draft: view.Draft, Registry: reg})
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive draft")
	}

	o.mu.Lock()
	if o.revision == view.Revision && o.snapshot == nil {
		o.snapshot = out.Snapshot
	}
	o.mu.Unlock()
	return out.Snapshot, nil
}
