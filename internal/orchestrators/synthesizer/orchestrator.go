// Package synthesizer fills every unlocked field of a draft with a random but
// coherent value, treating locked fields as fixed context
package synthesizer

//go:generate mockgen -destination=mock/mock_synthesizer.go -package=synthesizermock github.com/KirkDiggler/rpg-charbuilder/internal/orchestrators/synthesizer Synthesizer

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-charbuilder/internal/config"
	"github.com/KirkDiggler/rpg-charbuilder/internal/engine"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	"github.com/KirkDiggler/rpg-charbuilder/internal/flavor"
	dicesvc "github.com/KirkDiggler/rpg-charbuilder/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-charbuilder/internal/registry"
)

// Synthesizer completes partial drafts
type Synthesizer interface {
	Randomize(ctx context.Context, input *RandomizeInput) (*RandomizeOutput, error)
}

// Config holds the dependencies for the synthesizer
type Config struct {
	Tuning     *config.Tuning
	Dice       dicesvc.Service
	Engine     engine.Engine
	Biographer flavor.Biographer
	// Roller is used when an input does not carry its own
	Roller dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Tuning == nil {
		vb.RequiredField("Tuning")
	}
	if c.Dice == nil {
		vb.RequiredField("Dice")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.Biographer == nil {
		vb.RequiredField("Biographer")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// Orchestrator implements Synthesizer
type Orchestrator struct {
	tuning     *config.Tuning
	dice       dicesvc.Service
	engine     engine.Engine
	biographer flavor.Biographer
	roller     dice.Roller
}

var _ Synthesizer = (*Orchestrator)(nil)

// New creates a synthesizer
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if err := cfg.Tuning.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid tuning")
	}

	return &Orchestrator{
		tuning:     cfg.Tuning,
		dice:       cfg.Dice,
		engine:     cfg.Engine,
		biographer: cfg.Biographer,
		roller:     cfg.Roller,
	}, nil
}

// run is the state of one Randomize call
type run struct {
	ctx    context.Context
	o      *Orchestrator
	reg    *registry.Registry
	roller dice.Roller
	draft  *character.Draft
}

func (r *run) locked(f character.Field) bool {
	return r.draft.Locked(f)
}

// Randomize fills the draft in dependency order: identity, abilities,
// proficiencies, spells, gear, coin, then the narrative fields
func (o *Orchestrator) Randomize(ctx context.Context, input *RandomizeInput) (*RandomizeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateNotNil("Draft", input.Draft != nil, vb)
	errors.ValidateNotNil("Registry", input.Registry != nil, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	r := &run{
		ctx:    ctx,
		o:      o,
		reg:    input.Registry,
		roller: input.Roller,
		draft:  input.Draft.Clone(),
	}
	if r.roller == nil {
		r.roller = o.roller
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"level", r.level},
		{"race", r.race},
		{"subrace", r.subrace},
		{"class", r.class},
		{"subclass", r.subclass},
		{"background", r.background},
		{"alignment", r.alignment},
		{"locked choices", r.prune},
		{"abilities", r.abilities},
		{"proficiencies", r.proficiencies},
		{"expertise", r.expertise},
		{"spells", r.spells},
		{"equipment", r.equipment},
		{"hit points", r.hitPoints},
		{"currency", r.currency},
		{"gender", r.gender},
		{"name", r.name},
		{"hometown", r.hometown},
		{"biography", r.biography},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "randomize canceled")
		}
		if err := step.fn(); err != nil {
			return nil, errors.Wrapf(err, "failed to randomize %s", step.name)
		}
	}

	slog.Debug("draft randomized",
		"draft_id", r.draft.ID,
		"level", r.draft.Level,
		"race", r.draft.Race,
		"class", r.draft.Class,
		"background", r.draft.Background,
	)

	return &RandomizeOutput{Draft: r.draft}, nil
}
