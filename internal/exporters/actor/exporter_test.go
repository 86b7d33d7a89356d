package actor_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-charbuilder/internal/engine"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	"github.com/KirkDiggler/rpg-charbuilder/internal/exporters/actor"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/idgen"
	idgenmock "github.com/KirkDiggler/rpg-charbuilder/internal/pkg/idgen/mock"
	"github.com/KirkDiggler/rpg-charbuilder/internal/registry"
	"github.com/KirkDiggler/rpg-charbuilder/internal/testutils"
)

type ExporterTestSuite struct {
	suite.Suite
	ctx      context.Context
	reg      *registry.Registry
	engine   engine.Engine
	now      time.Time
	exporter actor.Exporter
	draft    *character.Draft
}

func TestExporterSuite(t *testing.T) {
	suite.Run(t, new(ExporterTestSuite))
}

func (s *ExporterTestSuite) SetupSuite() {
	s.reg = testutils.LoadRegistry(s.T())
}

func (s *ExporterTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	e, err := engine.New(nil)
	s.Require().NoError(err)
	s.engine = e

	s.exporter = s.newExporter(idgen.NewSequentialDocument())
	s.draft = s.wizard()
}

func (s *ExporterTestSuite) newExporter(gen idgen.Generator) actor.Exporter {
	exp, err := actor.New(&actor.Config{IDGen: gen, Clock: clock.NewFixed(s.now)})
	s.Require().NoError(err)
	return exp
}

func (s *ExporterTestSuite) wizard() *character.Draft {
	d := character.New("draft_1")
	d.Name = "Lyra Moonwhisper"
	d.Gender = character.GenderFemale
	d.Level = 5
	d.Race = "elf"
	d.Subrace = "high-elf"
	d.Class = "wizard"
	d.Subclass = "evocation"
	d.Background = "acolyte"
	d.Alignment = "neutral-good"
	for a, v := range map[character.Ability]int{
		character.AbilityStrength:     8,
		character.AbilityDexterity:    14,
		character.AbilityConstitution: 13,
		character.AbilityIntelligence: 16,
		character.AbilityWisdom:       12,
		character.AbilityCharisma:     10,
	} {
		d.SetAbilityScore(a, v)
	}
	d.Skills = []string{"arcana", "history"}
	d.Spells = map[string]character.SpellSelection{
		"fire-bolt":     {Known: true, Prepared: true},
		"magic-missile": {Known: true, Prepared: true},
		"sleep":         {Known: true},
	}
	d.AddItem(character.Item{Index: "longsword", Quantity: 1, MagicBonus: 1, Equipped: true})
	d.AddItem(character.Item{Index: "leather-armor", Quantity: 1, Equipped: true})
	d.AddItem(character.Item{Index: "spellbook", Quantity: 1})
	d.AddItem(character.Item{Index: "thieves-tools", Quantity: 2})
	d.Currency = character.Currency{GP: 42, SP: 7}
	d.Biography = "Lyra Moonwhisper is a seasoned elf wizard."
	return d
}

func (s *ExporterTestSuite) export() *actor.ExportOutput {
	out, err := s.exporter.Export(s.ctx, &actor.ExportInput{
		Draft:    s.draft,
		Snapshot: s.derive(),
		Registry: s.reg,
	})
	s.Require().NoError(err)
	s.Require().NotNil(out.Actor)
	return out
}

func (s *ExporterTestSuite) derive() *engine.Snapshot {
	out, err := s.engine.Derive(s.ctx, &engine.DeriveInput{Draft: s.draft, Registry: s.reg})
	s.Require().NoError(err)
	return out.Snapshot
}

func (s *ExporterTestSuite) itemNamed(doc *actor.Actor, name string) actor.Item {
	for _, item := range doc.Items {
		if item.Name == name {
			return item
		}
	}
	s.FailNow("item not found", name)
	return actor.Item{}
}

func (s *ExporterTestSuite) TestNewValidatesConfig() {
	_, err := actor.New(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = actor.New(&actor.Config{Clock: clock.New()})
	s.Require().Error(err)
	s.Contains(err.Error(), "IDGen")
}

func (s *ExporterTestSuite) TestExportRequiresRaceClassAndLevel() {
	testCases := []struct {
		name    string
		mutate  func(d *character.Draft)
		missing []string
	}{
		{
			name:    "no race",
			mutate:  func(d *character.Draft) { d.Race, d.Subrace = "", "" },
			missing: []string{"race"},
		},
		{
			name:    "no class",
			mutate:  func(d *character.Draft) { d.Class, d.Subclass = "", "" },
			missing: []string{"class"},
		},
		{
			name:    "no level",
			mutate:  func(d *character.Draft) { d.Level = 0 },
			missing: []string{"level"},
		},
		{
			name:    "blank draft",
			mutate:  func(d *character.Draft) { d.Reset() },
			missing: []string{"race", "class", "level"},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			d := s.wizard()
			tc.mutate(d)

			out, err := s.exporter.Export(s.ctx, &actor.ExportInput{
				Draft:    d,
				Snapshot: &engine.Snapshot{},
				Registry: s.reg,
			})
			s.Nil(out)
			s.Require().Error(err)
			s.True(errors.IsExportMapping(err))
			s.Equal(tc.missing, errors.GetMeta(err)["missing"])
		})
	}
}

func (s *ExporterTestSuite) TestExportValidatesInput() {
	_, err := s.exporter.Export(s.ctx, nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = s.exporter.Export(s.ctx, &actor.ExportInput{Draft: s.draft})
	s.Require().Error(err)
	s.Contains(err.Error(), "Snapshot")
	s.Contains(err.Error(), "Registry")
}

func (s *ExporterTestSuite) TestExportCanceled() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.exporter.Export(ctx, &actor.ExportInput{Draft: s.draft, Snapshot: s.derive(), Registry: s.reg})
	s.True(errors.IsCanceled(err))
}

func (s *ExporterTestSuite) TestDocumentHeader() {
	doc := s.export().Actor

	s.Len(doc.ID, idgen.DocumentIDLength)
	s.Equal("Lyra Moonwhisper", doc.Name)
	s.Equal(actor.ActorType, doc.Type)
	s.Equal(actor.SystemID, doc.Stats.SystemID)
	s.Equal(s.now.UnixMilli(), doc.Stats.CreatedTime)
	s.Equal(s.now.UnixMilli(), doc.Stats.ModifiedTime)
	s.Equal("Lyra Moonwhisper", doc.PrototypeToken.Name)
	s.Equal(60, doc.PrototypeToken.Sight["range"])
}

func (s *ExporterTestSuite) TestSystemBlock() {
	doc := s.export().Actor
	sys := doc.System

	s.Len(sys.Abilities, 6)
	s.Equal(16, sys.Abilities["dex"].Value, "base 14 plus elf +2")
	s.Equal(17, sys.Abilities["int"].Value, "base 16 plus high elf +1")
	s.Equal(1, sys.Abilities["int"].Proficient)
	s.Equal(0, sys.Abilities["str"].Proficient)

	s.Len(sys.Skills, 18)
	s.Equal(1, sys.Skills["arc"].Value)
	s.Equal("int", sys.Skills["arc"].Ability)
	s.Equal(1, sys.Skills["prc"].Value, "keen senses grants perception")
	s.Equal(0, sys.Skills["ath"].Value)

	s.Equal(1, sys.Spells["spell0"].Value)
	s.Equal(4, sys.Spells["spell1"].Max)
	s.Equal(3, sys.Spells["spell2"].Max)
	s.Equal(2, sys.Spells["spell3"].Max)
	s.Equal(0, sys.Spells["spell9"].Max)

	s.Equal("int", sys.Attributes.Spellcasting)
	s.Equal(60, sys.Attributes.Senses.Darkvision)
	s.Equal(30, sys.Attributes.Movement.Walk)
	s.GreaterOrEqual(sys.Attributes.HP.Max, 1)
	s.Equal(sys.Attributes.HP.Max, sys.Attributes.HP.Value)
	s.Equal(14, sys.Attributes.AC.Flat, "leather 11 plus dex +3")

	s.Equal("med", sys.Traits.Size)
	s.Contains(sys.Traits.Languages.Value, "elvish")
	s.Equal(actor.Currency{GP: 42, SP: 7}, sys.Currency)

	s.Equal("High Elf", sys.Details.Race)
	s.Equal("Neutral Good", sys.Details.Alignment)
	s.Equal("Female", sys.Details.Gender)
	s.Equal(6500, sys.Details.XP.Value)
	s.Equal("<p>Lyra Moonwhisper is a seasoned elf wizard.</p>", sys.Details.Biography.Value)
}

func (s *ExporterTestSuite) TestItemsCarryIDsAndSourceIndex() {
	doc := s.export().Actor
	s.Require().NotEmpty(doc.Items)

	ids := map[string]bool{}
	for _, item := range doc.Items {
		s.Len(item.ID, idgen.DocumentIDLength, item.Name)
		s.False(ids[item.ID], "duplicate id %s", item.ID)
		ids[item.ID] = true
		s.NotEmpty(item.SourceIndex(), item.Name)
	}

	var types []string
	for _, item := range doc.Items[:5] {
		types = append(types, item.Type+":"+item.SourceIndex())
	}
	s.Equal([]string{
		"class:wizard",
		"subclass:evocation",
		"race:elf",
		"race:high-elf",
		"background:acolyte",
	}, types)

	class := doc.Items[0]
	s.Equal(5, class.System["levels"])
	s.Equal("evocation", class.System["subclass"])
}

func (s *ExporterTestSuite) TestFeatureItems() {
	doc := s.export().Actor

	sources := map[string]bool{}
	for _, item := range doc.Items {
		if item.Type == actor.ItemFeat {
			sources[item.SourceIndex()] = true
		}
	}
	s.True(sources["darkvision"])
	s.True(sources["arcane-recovery"])
	s.True(sources["evocation-savant"])
	s.True(sources["acolyte-feature"])
	s.False(sources["potent-cantrip"], "granted at level 6")
}

func (s *ExporterTestSuite) TestSpellItems() {
	doc := s.export().Actor

	missile := s.itemNamed(doc, "Magic Missile")
	s.Equal(actor.ItemSpell, missile.Type)
	s.Equal(1, missile.System["level"])
	s.Equal(true, missile.System["prepared"])
	s.Equal(map[string]any{"mode": "prepared", "prepared": true}, missile.System["preparation"])
	s.Equal("ft", missile.System["range"].(map[string]any)["units"])
	s.Equal("120", missile.System["range"].(map[string]any)["value"])

	activities := missile.System["activities"].(map[string]any)
	s.Len(activities, 1)
	for id := range activities {
		s.Len(id, idgen.DocumentIDLength)
	}

	sleep := s.itemNamed(doc, "Sleep")
	s.Equal(false, sleep.System["prepared"])
	s.Equal("minute", sleep.System["duration"].(map[string]any)["units"])
}

func (s *ExporterTestSuite) TestEquipmentItems() {
	doc := s.export().Actor

	sword := s.itemNamed(doc, "Longsword +1")
	s.Equal(actor.ItemWeapon, sword.Type)
	s.Equal("longsword", sword.SourceIndex())
	s.Contains(sword.System["properties"], actor.MagicProperty)
	s.Equal(map[string]any{"attack": "1", "damage": "1"}, sword.System["bonuses"])
	s.Equal("martialM", sword.System["type"].(map[string]any)["value"])
	s.Equal(true, sword.System["equipped"])

	armor := s.itemNamed(doc, "Leather Armor")
	s.Equal(actor.ItemEquipment, armor.Type)
	s.Equal(11, armor.System["armor"].(map[string]any)["value"])

	book := s.itemNamed(doc, "Spellbook")
	s.Equal(actor.ItemLoot, book.Type)

	tools := s.itemNamed(doc, "Thieves' Tools")
	s.Equal(actor.ItemLoot, tools.Type)
	s.Equal(2, tools.System["quantity"])
	s.Equal("thieves-tools", tools.SourceIndex())
	s.Equal("Tools", tools.System["type"].(map[string]any)["value"])
}

func (s *ExporterTestSuite) TestJSONEncoding() {
	out := s.export()

	var doc map[string]any
	s.Require().NoError(json.Unmarshal(out.JSON, &doc))
	s.Equal("character", doc["type"])

	system := doc["system"].(map[string]any)
	skills := system["skills"].(map[string]any)
	s.Contains(skills, "ste")
	s.Contains(skills, "slt")

	stats := doc["_stats"].(map[string]any)
	s.Equal(float64(s.now.UnixMilli()), stats["createdTime"])
}

func (s *ExporterTestSuite) TestExportIsDeterministic() {
	snap := s.derive()
	input := &actor.ExportInput{Draft: s.draft, Snapshot: snap, Registry: s.reg}

	first, err := s.newExporter(idgen.NewSequentialDocument()).Export(s.ctx, input)
	s.Require().NoError(err)
	second, err := s.newExporter(idgen.NewSequentialDocument()).Export(s.ctx, input)
	s.Require().NoError(err)

	s.JSONEq(string(first.JSON), string(second.JSON))
}

func (s *ExporterTestSuite) TestUnnamedDraftGetsPlaceholder() {
	s.draft.Name = ""
	doc := s.export().Actor
	s.Equal(actor.UnnamedActor, doc.Name)
}

func (s *ExporterTestSuite) TestSchemaRejectsMalformedIDs() {
	ctrl := gomock.NewController(s.T())
	defer ctrl.Finish()

	gen := idgenmock.NewMockGenerator(ctrl)
	gen.EXPECT().Generate().Return("not-an-id").AnyTimes()

	_, err := s.newExporter(gen).Export(s.ctx, &actor.ExportInput{
		Draft:    s.draft,
		Snapshot: s.derive(),
		Registry: s.reg,
	})
	s.Require().Error(err)
	s.True(errors.IsExportMapping(err))
	s.NotEmpty(errors.GetMeta(err)["violations"])
}
