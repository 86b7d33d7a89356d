package builder_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-charbuilder/internal/config"
	"github.com/KirkDiggler/rpg-charbuilder/internal/engine"
	enginemock "github.com/KirkDiggler/rpg-charbuilder/internal/engine/mock"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	"github.com/KirkDiggler/rpg-charbuilder/internal/exporters"
	"github.com/KirkDiggler/rpg-charbuilder/internal/exporters/actor"
	actormock "github.com/KirkDiggler/rpg-charbuilder/internal/exporters/actor/mock"
	"github.com/KirkDiggler/rpg-charbuilder/internal/exporters/statblock"
	statblockmock "github.com/KirkDiggler/rpg-charbuilder/internal/exporters/statblock/mock"
	"github.com/KirkDiggler/rpg-charbuilder/internal/flavor"
	"github.com/KirkDiggler/rpg-charbuilder/internal/orchestrators/builder"
	dicesvc "github.com/KirkDiggler/rpg-charbuilder/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-charbuilder/internal/orchestrators/synthesizer"
	synthesizermock "github.com/KirkDiggler/rpg-charbuilder/internal/orchestrators/synthesizer/mock"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-charbuilder/internal/registry"
	"github.com/KirkDiggler/rpg-charbuilder/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctx           context.Context
	ctrl          *gomock.Controller
	reg           *registry.Registry
	engine        engine.Engine
	bus           events.EventBus
	mockSynth     *synthesizermock.MockSynthesizer
	mockActor     *actormock.MockExporter
	mockStatblock *statblockmock.MockRenderer
	controller    *builder.Orchestrator
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupSuite() {
	s.reg = testutils.LoadRegistry(s.T())
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockSynth = synthesizermock.NewMockSynthesizer(s.ctrl)
	s.mockActor = actormock.NewMockExporter(s.ctrl)
	s.mockStatblock = statblockmock.NewMockRenderer(s.ctrl)
	s.bus = events.NewBus()

	e, err := engine.New(nil)
	s.Require().NoError(err)
	s.engine = e

	s.controller = s.newController(s.mockSynth, nil)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) newController(synth synthesizer.Synthesizer, initial *character.Draft) *builder.Orchestrator {
	c, err := builder.New(&builder.Config{
		Registry:    s.reg,
		Engine:      s.engine,
		Synthesizer: synth,
		Actor:       s.mockActor,
		Statblock:   s.mockStatblock,
		EventBus:    s.bus,
		Initial:     initial,
		IDGen:       idgen.NewSequential("draft"),
	})
	s.Require().NoError(err)
	return c
}

func (s *OrchestratorTestSuite) set(field character.Field, value any) *builder.SetOutput {
	out, err := s.controller.Set(s.ctx, &builder.SetInput{Field: field, Value: value})
	s.Require().NoError(err, "set %s", field)
	return out
}

func (s *OrchestratorTestSuite) current() *builder.CurrentOutput {
	out, err := s.controller.Current(s.ctx)
	s.Require().NoError(err)
	return out
}

func (s *OrchestratorTestSuite) completeDraft() *character.Draft {
	d := character.New("draft_1")
	d.Race = "human"
	d.Class = "fighter"
	d.Level = 3
	for _, a := range character.Abilities() {
		d.SetAbilityScore(a, 12)
	}
	return d
}

func (s *OrchestratorTestSuite) TestNewValidatesConfig() {
	_, err := builder.New(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = builder.New(&builder.Config{})
	s.Require().Error(err)
	for _, field := range []string{"Registry", "Engine", "Synthesizer", "Actor", "Statblock", "EventBus", "IDGen"} {
		s.Contains(err.Error(), field)
	}
}

func (s *OrchestratorTestSuite) TestNewStartsBlankAndNamed() {
	out := s.current()
	s.Equal("draft_1", out.Draft.ID)
	s.False(out.Draft.IsSet(character.FieldRace))
	s.Zero(out.Revision)
	s.Len(out.Locks, len(character.Fields()))
}

func (s *OrchestratorTestSuite) TestSetLocksAndDerives() {
	out := s.set(character.FieldRace, "elf")

	s.Equal("elf", out.Draft.Race)
	s.True(out.Draft.Locked(character.FieldRace))
	s.Require().NotNil(out.Snapshot)
	s.Equal(60, out.Snapshot.Darkvision)
	s.True(s.controller.SnapshotLocks()[character.FieldRace])
	s.Equal(uint64(1), s.current().Revision)
}

func (s *OrchestratorTestSuite) TestSetRejectsIllegalValuesWithoutMutating() {
	s.set(character.FieldClass, "wizard")
	s.set(character.FieldLevel, 1)
	before := s.current()

	testCases := []struct {
		name  string
		field character.Field
		value any
	}{
		{name: "unknown race", field: character.FieldRace, value: "dragon"},
		{name: "level too high", field: character.FieldLevel, value: 21},
		{name: "level zero", field: character.FieldLevel, value: 0},
		{name: "subclass before unlock", field: character.FieldSubclass, value: "evocation"},
		{name: "subclass of another class", field: character.FieldSubclass, value: "champion"},
		{name: "skill not offered", field: character.FieldSkills, value: []string{"athletics"}},
		{name: "skills over allowance", field: character.FieldSkills, value: []string{"arcana", "history", "insight"}},
		{name: "ability above range", field: character.FieldAbilities, value: map[character.Ability]int{character.AbilityStrength: 25}},
		{name: "ability below range", field: character.FieldAbilities, value: map[character.Ability]int{character.AbilityStrength: 0}},
		{name: "spell above slot level", field: character.FieldSpells, value: map[string]character.SpellSelection{"fireball": {Known: true}}},
		{name: "unknown equipment", field: character.FieldEquipment, value: []character.Item{{Index: "lightsaber", Quantity: 1}}},
		{name: "negative coins", field: character.FieldCurrency, value: character.Currency{GP: -1}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.controller.Set(s.ctx, &builder.SetInput{Field: tc.field, Value: tc.value})
			s.Require().Error(err)
			s.True(errors.IsInvalidSelection(err), err.Error())
			s.Equal(string(tc.field), errors.GetMeta(err)["field"])

			after := s.current()
			s.Equal(before.Revision, after.Revision)
			s.Equal(before.Draft, after.Draft)
		})
	}
}

func (s *OrchestratorTestSuite) TestSetRejectsWrongTypeAndUnknownField() {
	_, err := s.controller.Set(s.ctx, &builder.SetInput{Field: character.FieldLevel, Value: "five"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.controller.Set(s.ctx, &builder.SetInput{Field: "charisma", Value: "x"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.controller.Set(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestSkillsWithinAllowance() {
	s.set(character.FieldClass, "wizard")
	out := s.set(character.FieldSkills, []string{"History", "arcana"})

	s.Equal([]string{"arcana", "history"}, out.Draft.Skills)
	s.LessOrEqual(len(out.Draft.Skills), s.reg.SkillAllowance(out.Draft))
}

func (s *OrchestratorTestSuite) TestRaceChangeClearsSubrace() {
	s.set(character.FieldRace, "elf")
	s.set(character.FieldSubrace, "high-elf")

	out := s.set(character.FieldRace, "human")

	s.Empty(out.Draft.Subrace)
	s.False(out.Draft.Locked(character.FieldSubrace))
	s.Contains(out.Cleared, character.FieldSubrace)
}

func (s *OrchestratorTestSuite) TestRaceChangeKeepsCompatibleSubrace() {
	s.set(character.FieldRace, "elf")
	s.set(character.FieldSubrace, "high-elf")

	out := s.set(character.FieldRace, "elf")
	s.Equal("high-elf", out.Draft.Subrace)
	s.Empty(out.Cleared)
}

func (s *OrchestratorTestSuite) TestClassChangeClearsSubclassSpellsAndSkills() {
	s.set(character.FieldClass, "wizard")
	s.set(character.FieldLevel, 5)
	s.set(character.FieldSubclass, "evocation")
	s.set(character.FieldSkills, []string{"arcana", "history"})
	s.set(character.FieldSpells, map[string]character.SpellSelection{
		"fire-bolt":     {Known: true},
		"magic-missile": {Known: true, Prepared: true},
	})

	out := s.set(character.FieldClass, "fighter")

	s.Empty(out.Draft.Subclass)
	s.Empty(out.Draft.Spells)
	s.Equal([]string{"history"}, out.Draft.Skills, "history is also a fighter skill")
	s.ElementsMatch([]character.Field{
		character.FieldSubclass, character.FieldSkills, character.FieldSpells,
	}, out.Cleared)
}

func (s *OrchestratorTestSuite) TestLevelDropClearsLockedSubclass() {
	s.set(character.FieldClass, "wizard")
	s.set(character.FieldLevel, 5)
	s.set(character.FieldSubclass, "evocation")

	out := s.set(character.FieldLevel, 1)

	s.Empty(out.Draft.Subclass)
	s.False(out.Draft.Locked(character.FieldSubclass))
}

func (s *OrchestratorTestSuite) TestSetNilClearsAndUnlocks() {
	s.set(character.FieldName, "Lyra")
	out := s.set(character.FieldName, nil)

	s.Empty(out.Draft.Name)
	s.False(out.Draft.Locked(character.FieldName))
}

func (s *OrchestratorTestSuite) TestUnlockKeepsValue() {
	s.set(character.FieldRace, "dwarf")

	s.Require().NoError(s.controller.Unlock(s.ctx, character.FieldRace))

	out := s.current()
	s.Equal("dwarf", out.Draft.Race)
	s.False(out.Locks[character.FieldRace])

	s.True(errors.IsInvalidArgument(s.controller.Unlock(s.ctx, "nope")))
}

func (s *OrchestratorTestSuite) TestClearResetsEverything() {
	s.set(character.FieldRace, "elf")
	s.set(character.FieldName, "Lyra")

	var got []*builder.Notification
	unsubscribe := s.controller.Subscribe(func(_ context.Context, n *builder.Notification) error {
		got = append(got, n)
		return nil
	})
	defer unsubscribe()

	s.Require().NoError(s.controller.Clear(s.ctx))

	out := s.current()
	s.Equal("draft_1", out.Draft.ID)
	s.Empty(out.Draft.Race)
	s.Empty(out.Draft.Name)
	for f, locked := range out.Locks {
		s.False(locked, f)
	}

	s.Require().Len(got, 1)
	s.Equal(builder.EventDraftCleared, got[0].Type)
	s.Equal(uint64(3), got[0].Revision)
}

func (s *OrchestratorTestSuite) TestSubscribeReceivesCommittedChanges() {
	var got []*builder.Notification
	unsubscribe := s.controller.Subscribe(func(_ context.Context, n *builder.Notification) error {
		got = append(got, n)
		return nil
	})

	s.set(character.FieldRace, "elf")
	s.set(character.FieldClass, "wizard")
	_, _ = s.controller.Set(s.ctx, &builder.SetInput{Field: character.FieldRace, Value: "dragon"})

	s.Require().Len(got, 2, "rejected selections are not published")
	s.Equal(builder.EventDraftChanged, got[0].Type)
	s.Equal(character.FieldRace, got[0].Field)
	s.Equal(uint64(1), got[0].Revision)
	s.Equal("elf", got[0].Draft.Race)
	s.Require().NotNil(got[0].Snapshot)
	s.Equal(character.FieldClass, got[1].Field)
	s.Equal(uint64(2), got[1].Revision)

	unsubscribe()
	s.set(character.FieldName, "Lyra")
	s.Len(got, 2)
}

func (s *OrchestratorTestSuite) TestRandomizeCommitsAndKeepsLocks() {
	s.set(character.FieldRace, "human")
	seed := int64(7)

	s.mockSynth.EXPECT().
		Randomize(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, in *synthesizer.RandomizeInput) (*synthesizer.RandomizeOutput, error) {
			s.NotNil(in.Roller, "seeded roller")
			s.True(in.Draft.Locked(character.FieldRace))
			d := s.completeDraft()
			d.ID = "something-else"
			return &synthesizer.RandomizeOutput{Draft: d}, nil
		})

	out, err := s.controller.Randomize(s.ctx, &builder.RandomizeInput{Seed: &seed})
	s.Require().NoError(err)
	s.False(out.Discarded)
	s.Equal("draft_1", out.Draft.ID)
	s.Equal("fighter", out.Draft.Class)
	s.True(out.Draft.Locked(character.FieldRace))
	s.False(out.Draft.Locked(character.FieldClass))
	s.Require().NotNil(out.Snapshot)
	s.Equal(2, out.Snapshot.ProficiencyBonus)
}

func (s *OrchestratorTestSuite) TestRandomizeDiscardedWhenDraftChangesInFlight() {
	s.mockSynth.EXPECT().
		Randomize(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *synthesizer.RandomizeInput) (*synthesizer.RandomizeOutput, error) {
			// the user edits while the run is in flight
			s.set(character.FieldName, "Mid Flight")
			return &synthesizer.RandomizeOutput{Draft: s.completeDraft()}, nil
		})

	out, err := s.controller.Randomize(s.ctx, nil)
	s.Require().NoError(err)
	s.True(out.Discarded)
	s.Equal("Mid Flight", out.Draft.Name)
	s.Empty(out.Draft.Class)
	s.Equal("Mid Flight", s.current().Draft.Name)
}

func (s *OrchestratorTestSuite) TestRandomizeDiscardedAfterClear() {
	s.mockSynth.EXPECT().
		Randomize(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *synthesizer.RandomizeInput) (*synthesizer.RandomizeOutput, error) {
			s.Require().NoError(s.controller.Clear(s.ctx))
			return &synthesizer.RandomizeOutput{Draft: s.completeDraft()}, nil
		})

	out, err := s.controller.Randomize(s.ctx, nil)
	s.Require().NoError(err)
	s.True(out.Discarded)
	s.Empty(s.current().Draft.Race)
}

func (s *OrchestratorTestSuite) TestRandomizeFailure() {
	s.mockSynth.EXPECT().
		Randomize(s.ctx, gomock.Any()).
		Return(nil, errors.Internal("boom"))

	_, err := s.controller.Randomize(s.ctx, nil)
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to randomize draft")
	s.Zero(s.current().Revision)
}

func (s *OrchestratorTestSuite) useSynthesizer() {
	d, err := dicesvc.NewOrchestrator(&dicesvc.Config{Roller: rng.NewSeeded(1)})
	s.Require().NoError(err)
	synth, err := synthesizer.New(&synthesizer.Config{
		Tuning:     config.DefaultTuning(),
		Dice:       d,
		Engine:     s.engine,
		Biographer: flavor.NewTemplateBiographer(),
		Roller:     rng.NewSeeded(3),
	})
	s.Require().NoError(err)
	s.controller = s.newController(synth, nil)
}

func (s *OrchestratorTestSuite) TestRandomizeRespectsLockedRace() {
	s.useSynthesizer()

	s.set(character.FieldRace, "human")
	for seed := int64(0); seed < 20; seed++ {
		out, err := s.controller.Randomize(s.ctx, &builder.RandomizeInput{Seed: &seed})
		s.Require().NoError(err)
		s.Equal("human", out.Draft.Race)
		s.NotEmpty(out.Draft.Class)
		s.LessOrEqual(len(out.Draft.Skills), s.reg.SkillAllowance(out.Draft))
	}
}

func (s *OrchestratorTestSuite) TestRandomizeAfterClassUnlockKeepsSkillsLegal() {
	s.useSynthesizer()
	s.set(character.FieldRace, "human")
	s.set(character.FieldClass, "rogue")
	s.set(character.FieldSkills, []string{"acrobatics", "deception", "stealth", "sleight-of-hand"})
	s.Require().NoError(s.controller.Unlock(s.ctx, character.FieldClass))

	for seed := int64(0); seed < 20; seed++ {
		out, err := s.controller.Randomize(s.ctx, &builder.RandomizeInput{Seed: &seed})
		s.Require().NoError(err)
		d := out.Draft

		opts := s.reg.ResolveChoiceOptions(d)
		s.LessOrEqual(len(d.Skills), s.reg.SkillAllowance(d), "seed %d class %s", seed, d.Class)
		for _, skill := range d.Skills {
			s.True(opts.Allows(character.FieldSkills, skill), "seed %d: %s not offered to %s", seed, skill, d.Class)
		}
		for _, skill := range d.Expertise {
			s.True(opts.Allows(character.FieldExpertise, skill), "seed %d: expertise %s", seed, skill)
		}
	}
}

func (s *OrchestratorTestSuite) TestRandomizeAfterClassUnlockDropsForeignSpells() {
	s.useSynthesizer()
	s.set(character.FieldRace, "elf")
	s.set(character.FieldClass, "wizard")
	s.set(character.FieldLevel, 1)
	s.set(character.FieldSpells, map[string]character.SpellSelection{
		"fire-bolt":     {Known: true, Prepared: true},
		"magic-missile": {Known: true, Prepared: true},
	})
	s.Require().NoError(s.controller.Unlock(s.ctx, character.FieldClass))

	sawOtherClass := false
	for seed := int64(0); seed < 20; seed++ {
		out, err := s.controller.Randomize(s.ctx, &builder.RandomizeInput{Seed: &seed})
		s.Require().NoError(err)
		d := out.Draft

		opts := s.reg.ResolveChoiceOptions(d)
		for idx := range d.Spells {
			s.True(opts.Allows(character.FieldSpells, idx), "seed %d: %s kept for %s", seed, idx, d.Class)
		}
		if d.Class != "wizard" {
			sawOtherClass = true
		}
	}
	s.True(sawOtherClass, "class was redrawn at least once")
}

func (s *OrchestratorTestSuite) TestExportRequiresCompleteDraft() {
	_, err := s.controller.Export(s.ctx, &builder.ExportInput{Format: exporters.FormatActor})
	s.Require().Error(err)
	s.True(errors.IsExportMapping(err))
	s.Equal([]string{"race", "class", "level"}, errors.GetMeta(err)["missing"])
}

func (s *OrchestratorTestSuite) TestExportActor() {
	s.controller = s.newController(s.mockSynth, s.completeDraft())

	s.mockActor.EXPECT().
		Export(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, in *actor.ExportInput) (*actor.ExportOutput, error) {
			s.Equal("fighter", in.Draft.Class)
			s.NotNil(in.Snapshot)
			s.Same(s.reg, in.Registry)
			return &actor.ExportOutput{Actor: &actor.Actor{Name: "x"}, JSON: []byte(`{"name":"x"}`)}, nil
		})

	out, err := s.controller.Export(s.ctx, &builder.ExportInput{Format: exporters.FormatActor})
	s.Require().NoError(err)
	s.Equal(exporters.FormatActor, out.Format)
	s.JSONEq(`{"name":"x"}`, string(out.Data))
	s.Equal("x", out.Actor.Name)
}

func (s *OrchestratorTestSuite) TestExportStatblock() {
	s.controller = s.newController(s.mockSynth, s.completeDraft())

	s.mockStatblock.EXPECT().
		Render(s.ctx, gomock.Any()).
		Return(&statblock.RenderOutput{Text: "Unnamed Adventurer\n"}, nil)

	out, err := s.controller.Export(s.ctx, &builder.ExportInput{Format: exporters.FormatStatblock})
	s.Require().NoError(err)
	s.Equal("Unnamed Adventurer\n", string(out.Data))
	s.Nil(out.Actor)
}

// racingEngine commits a level change from inside the first derive, the way
// a Set landing between a cache miss and its result would
func (s *OrchestratorTestSuite) racingEngine() {
	eng := enginemock.NewMockEngine(s.ctrl)
	raced := false
	eng.EXPECT().Derive(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in *engine.DeriveInput) (*engine.DeriveOutput, error) {
			level := in.Draft.Level
			if !raced {
				raced = true
				s.set(character.FieldLevel, 5)
			}
			return &engine.DeriveOutput{Snapshot: &engine.Snapshot{Level: level}}, nil
		}).AnyTimes()

	c, err := builder.New(&builder.Config{
		Registry:    s.reg,
		Engine:      eng,
		Synthesizer: s.mockSynth,
		Actor:       s.mockActor,
		Statblock:   s.mockStatblock,
		EventBus:    s.bus,
		Initial:     s.completeDraft(),
	})
	s.Require().NoError(err)
	s.controller = c
}

func (s *OrchestratorTestSuite) TestCurrentPairsDraftWithItsSnapshot() {
	s.racingEngine()

	first := s.current()
	s.Equal(3, first.Draft.Level)
	s.Equal(first.Draft.Level, first.Snapshot.Level)
	s.Equal(uint64(0), first.Revision)

	second := s.current()
	s.Equal(5, second.Draft.Level)
	s.Equal(5, second.Snapshot.Level, "the stale derive is not cached over the newer commit")
	s.Equal(uint64(1), second.Revision)
}

func (s *OrchestratorTestSuite) TestExportPairsDraftWithItsSnapshot() {
	s.racingEngine()

	s.mockStatblock.EXPECT().
		Render(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, in *statblock.RenderInput) (*statblock.RenderOutput, error) {
			s.Equal(3, in.Draft.Level)
			s.Equal(in.Draft.Level, in.Snapshot.Level)
			return &statblock.RenderOutput{Text: "x\n"}, nil
		})

	_, err := s.controller.Export(s.ctx, &builder.ExportInput{Format: exporters.FormatStatblock})
	s.Require().NoError(err)
	s.Equal(5, s.current().Draft.Level)
}

func (s *OrchestratorTestSuite) TestExportUnknownFormat() {
	s.controller = s.newController(s.mockSynth, s.completeDraft())

	_, err := s.controller.Export(s.ctx, &builder.ExportInput{Format: "pdf"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestExportPropagatesExporterErrors() {
	s.controller = s.newController(s.mockSynth, s.completeDraft())

	s.mockActor.EXPECT().
		Export(s.ctx, gomock.Any()).
		Return(nil, errors.ExportMapping("schema violation"))

	_, err := s.controller.Export(s.ctx, &builder.ExportInput{Format: exporters.FormatActor})
	s.True(errors.IsExportMapping(err))
}

func (s *OrchestratorTestSuite) TestOptions() {
	races, err := s.controller.Options(s.ctx, character.FieldRace)
	s.Require().NoError(err)
	s.True(races.Constrained)
	s.Contains(races.Values, "elf")

	s.set(character.FieldClass, "rogue")
	skills, err := s.controller.Options(s.ctx, character.FieldSkills)
	s.Require().NoError(err)
	s.Equal(4, skills.Limit)
	s.Contains(skills.Values, "stealth")

	name, err := s.controller.Options(s.ctx, character.FieldName)
	s.Require().NoError(err)
	s.False(name.Constrained)

	_, err = s.controller.Options(s.ctx, "nope")
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestResumesInitialDraft() {
	d := s.completeDraft()
	d.Lock(character.FieldClass)

	c := s.newController(s.mockSynth, d)
	d.Class = "rogue"

	out, err := c.Current(s.ctx)
	s.Require().NoError(err)
	s.Equal("fighter", out.Draft.Class, "controller holds its own copy")
	s.True(out.Locks[character.FieldClass])
}
