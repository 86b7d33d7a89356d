// Package actor exports a resolved character as a Foundry VTT dnd5e actor
// document.
package actor

//go:generate mockgen -destination=mock/mock_exporter.go -package=actormock github.com/KirkDiggler/rpg-charbuilder/internal/exporters/actor Exporter

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/rpg-charbuilder/internal/engine"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	"github.com/KirkDiggler/rpg-charbuilder/internal/exporters"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-charbuilder/internal/registry"
)

// UnnamedActor is used when the draft has no name
const UnnamedActor = "Unnamed Adventurer"

// Exporter builds actor documents
type Exporter interface {
	Export(ctx context.Context, input *ExportInput) (*ExportOutput, error)
}

// Config holds the exporter dependencies
type Config struct {
	IDGen idgen.Generator
	Clock clock.Clock
}

// Validate validates the config
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateNotNil("IDGen", c.IDGen != nil, vb)
	errors.ValidateNotNil("Clock", c.Clock != nil, vb)
	return vb.Build()
}

type exporter struct {
	idGen  idgen.Generator
	clock  clock.Clock
	schema *documentSchema
}

// New creates an actor exporter
func New(cfg *Config) (Exporter, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, errors.Wrap(err, "failed to compile actor schema")
	}

	return &exporter{
		idGen:  cfg.IDGen,
		clock:  cfg.Clock,
		schema: schema,
	}, nil
}

// Export builds the actor, encodes it and validates the encoding against
// the embedded document schema
func (e *exporter) Export(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateNotNil("Draft", input.Draft != nil, vb)
	errors.ValidateNotNil("Snapshot", input.Snapshot != nil, vb)
	errors.ValidateNotNil("Registry", input.Registry != nil, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "export canceled")
	}
	if err := exporters.CheckComplete(input.Draft); err != nil {
		return nil, err
	}

	b := &builder{
		idGen: e.idGen,
		draft: input.Draft,
		snap:  input.Snapshot,
		reg:   input.Registry,
	}
	doc := b.actor(e.clock.Now().UnixMilli())

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeExportMapping, "failed to encode actor")
	}
	if err := e.schema.validate(data); err != nil {
		return nil, err
	}

	slog.Debug("Exported actor",
		"name", doc.Name,
		"items", len(doc.Items))

	return &ExportOutput{Actor: doc, JSON: data}, nil
}

// builder assembles one document
type builder struct {
	idGen idgen.Generator
	draft *character.Draft
	snap  *engine.Snapshot
	reg   *registry.Registry
}

func (b *builder) actor(nowMillis int64) *Actor {
	name := b.draft.Name
	if name == "" {
		name = UnnamedActor
	}

	return &Actor{
		ID:      b.idGen.Generate(),
		Name:    name,
		Type:    ActorType,
		Img:     DefaultActorImage,
		System:  b.system(),
		Items:   b.items(),
		Effects: []any{},
		Flags: map[string]any{
			SystemID: map[string]any{
				"exportSource": map[string]any{
					"world":  "",
					"system": SystemID,
					"type":   ActorType,
				},
			},
		},
		Ownership:      map[string]int{"default": 0},
		PrototypeToken: b.token(name),
		Stats: Stats{
			SystemID:      SystemID,
			SystemVersion: SystemVersion,
			CoreVersion:   CoreVersion,
			CreatedTime:   nowMillis,
			ModifiedTime:  nowMillis,
		},
	}
}

func (b *builder) system() System {
	c := b.draft.Currency
	return System{
		Currency: Currency{
			PP: max(c.PP, 0),
			GP: max(c.GP, 0),
			EP: max(c.EP, 0),
			SP: max(c.SP, 0),
			CP: max(c.CP, 0),
		},
		Abilities:  b.abilities(),
		Skills:     b.skills(),
		Tools:      b.tools(),
		Spells:     b.spellSlots(),
		Attributes: b.attributes(),
		Bastion:    map[string]any{},
		Details:    b.details(),
		Traits:     b.traits(),
		Resources: map[string]Resource{
			"primary":   {},
			"secondary": {},
			"tertiary":  {},
		},
		Favorites: []any{},
	}
}

func (b *builder) abilities() map[string]Ability {
	out := make(map[string]Ability, 6)
	for _, a := range character.Abilities() {
		proficient := 0
		if b.snap.SavingThrows[a].Proficient {
			proficient = 1
		}
		out[string(a)] = Ability{
			Value:      b.snap.Abilities[a].Total,
			Proficient: proficient,
			Max:        20,
		}
	}
	return out
}

func (b *builder) skills() map[string]Skill {
	out := make(map[string]Skill, len(SkillKeys))
	for _, skill := range character.Skills() {
		bonus := b.snap.Skills[skill]
		out[SkillKeys[skill]] = Skill{
			Ability: string(character.SkillAbilities[skill]),
			Value:   bonus.Multiplier,
		}
	}
	return out
}

func (b *builder) tools() map[string]Tool {
	out := map[string]Tool{}
	for _, idx := range b.snap.ToolProficiencies {
		out[toolKey(idx)] = Tool{Value: 1, Ability: string(character.AbilityIntelligence)}
	}
	return out
}

func toolKey(index string) string {
	k := strings.TrimPrefix(strings.ToLower(index), "tool-")
	k = strings.ReplaceAll(k, " ", "-")
	return strings.ReplaceAll(k, "'", "")
}

func (b *builder) spellSlots() map[string]SpellSlot {
	cantrips := 0
	for idx, sel := range b.draft.Spells {
		if !sel.Known && !sel.Prepared {
			continue
		}
		if spell, ok := b.reg.Spell(idx); ok && spell.Level == 0 {
			cantrips++
		}
	}

	out := map[string]SpellSlot{
		"spell0": {Value: cantrips, Max: cantrips},
		"pact":   {},
	}
	for lvl := 1; lvl <= 9; lvl++ {
		n := 0
		if b.snap.Spellcasting != nil {
			n = b.snap.Spellcasting.Slots[lvl]
		}
		out[slotKey(lvl)] = SpellSlot{Value: n, Max: n}
	}
	return out
}

func slotKey(level int) string {
	return "spell" + strconv.Itoa(level)
}

func (b *builder) attributes() Attributes {
	hp := max(b.snap.MaxHitPoints, 1)
	spellAbility := ""
	if b.snap.Spellcasting != nil {
		spellAbility = string(b.snap.Spellcasting.Ability)
	}

	return Attributes{
		AC:   AC{Calc: "flat", Flat: b.snap.ArmorClass},
		Init: Init{Ability: string(character.AbilityDexterity)},
		Movement: Movement{
			Walk:                    b.snap.Speed,
			Units:                   "ft",
			IgnoredDifficultTerrain: []string{},
		},
		Attunement:    Attunement{Max: 3},
		Senses:        Senses{Darkvision: b.snap.Darkvision, Units: "ft"},
		Spellcasting:  spellAbility,
		Concentration: Concentration{Limit: 1, Roll: Roll{Mode: 1}},
		Loyalty:       map[string]any{},
		HP:            HP{Value: hp, Max: hp},
	}
}

// xpThresholds is the experience needed to reach each level
var xpThresholds = [character.MaxLevel + 1]int{
	0, 0, 300, 900, 2700, 6500, 14000, 23000, 34000, 48000, 64000,
	85000, 100000, 120000, 140000, 165000, 195000, 225000, 265000, 305000, 355000,
}

func (b *builder) details() Details {
	d := b.draft
	bio := paragraphs(append(strings.Split(d.Biography, "\n"), strings.Split(d.Notes, "\n")...)...)

	alignment := ""
	if d.Alignment != "" {
		alignment = b.reg.DisplayName(srd.CategoryAlignment, d.Alignment)
	}
	race := b.reg.DisplayName(srd.CategoryRace, d.Race)
	if d.Subrace != "" {
		race = b.reg.DisplayName(srd.CategorySubrace, d.Subrace)
	}
	background := ""
	if d.Background != "" {
		background = b.reg.DisplayName(srd.CategoryBackground, d.Background)
	}

	return Details{
		Biography:     Biography{Value: bio, Public: bio},
		Alignment:     alignment,
		Race:          race,
		Background:    background,
		OriginalClass: d.Class,
		XP:            XP{Value: xpThresholds[min(max(b.snap.Level, 0), character.MaxLevel)]},
		Gender:        cases.Title(language.English).String(d.Gender),
	}
}

func (b *builder) traits() Traits {
	return Traits{
		Size: SizeKey(b.snap.Size),
		DI:   emptySet(),
		DR:   emptySet(),
		DV:   emptySet(),
		DM:   emptySet(),
		CI:   emptySet(),
		Languages: LanguageSet{
			Value:         nonNil(b.snap.Languages),
			Communication: map[string]any{},
		},
		WeaponProf: WeaponProfs{
			Value:   nonNil(b.snap.WeaponProficiencies),
			Mastery: Mastery{Value: []string{}, Bonus: []string{}},
		},
		ArmorProf: TraitSet{Value: nonNil(b.snap.ArmorProficiencies)},
		ToolProf:  TraitSet{Value: nonNil(b.snap.ToolProficiencies)},
	}
}

func emptySet() TraitSet {
	return TraitSet{Value: []string{}}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func (b *builder) token(name string) Token {
	sightRange, visionMode := 0, "basic"
	if b.snap.Darkvision > 0 {
		sightRange, visionMode = b.snap.Darkvision, "darkvision"
	}
	return Token{
		Name:        name,
		ActorLink:   true,
		Texture:     map[string]any{"src": DefaultActorImage, "alphaThreshold": 0.75},
		Width:       1,
		Height:      1,
		Disposition: 1,
		Bar1:        map[string]any{"attribute": "attributes.hp"},
		Bar2:        map[string]any{"attribute": nil},
		Flags:       map[string]any{},
		Sight: map[string]any{
			"enabled":    true,
			"range":      sightRange,
			"angle":      360,
			"visionMode": visionMode,
		},
		Light: map[string]any{"alpha": 0.5, "angle": 360, "bright": 0, "dim": 0},
	}
}
