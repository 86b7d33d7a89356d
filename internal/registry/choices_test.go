package registry_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
	"github.com/KirkDiggler/rpg-charbuilder/internal/registry"
	"github.com/KirkDiggler/rpg-charbuilder/internal/testutils"
)

type ChoicesTestSuite struct {
	suite.Suite
	reg   *registry.Registry
	draft *character.Draft
}

func TestChoicesSuite(t *testing.T) {
	suite.Run(t, new(ChoicesTestSuite))
}

func (s *ChoicesTestSuite) SetupSuite() {
	s.reg = testutils.LoadRegistry(s.T())
}

func (s *ChoicesTestSuite) SetupTest() {
	s.draft = character.New("draft_1")
}

func (s *ChoicesTestSuite) TestGrants() {
	s.draft.Race = "elf"
	s.draft.Subrace = "high-elf"
	s.draft.Class = "wizard"
	s.draft.Background = "acolyte"

	g := s.reg.Grants(s.draft)
	s.Equal([]string{"insight", "perception", "religion"}, g.Skills)
	s.Equal([]character.Ability{character.AbilityIntelligence, character.AbilityWisdom}, g.SavingThrows)
	s.Equal([]string{"common", "elvish"}, g.Languages)
	s.Contains(g.Weapons, "longswords")
	s.Contains(g.Weapons, "daggers")
	s.Empty(g.Armor)
}

func (s *ChoicesTestSuite) TestChoiceGroups() {
	s.draft.Race = "half-elf"
	s.draft.Class = "fighter"
	s.draft.Background = "acolyte"

	groups := s.reg.ChoiceGroups(s.draft)
	s.Require().Len(groups, 4)

	s.Equal("race:half-elf", groups[0].Source)
	s.Equal(srd.KindSkill, groups[0].Kind)
	s.Equal(2, groups[0].Choose)
	s.Len(groups[0].Options, 18)

	s.Equal(srd.KindLanguage, groups[1].Kind)
	s.Equal(1, groups[1].Choose)
	s.NotContains(groups[1].Options, "common")

	s.Equal("class:fighter", groups[2].Source)
	s.Equal(srd.KindSkill, groups[2].Kind)
	s.Contains(groups[2].Options, "athletics")

	s.Equal("background:acolyte", groups[3].Source)
	s.Equal(srd.KindLanguage, groups[3].Kind)
	s.Equal(2, groups[3].Choose)
	s.Len(groups[3].Options, 9, "resource list expands to every language")
}

func (s *ChoicesTestSuite) TestSkillAllowance() {
	testCases := []struct {
		name  string
		race  string
		class string
		want  int
	}{
		{name: "blank", want: 0},
		{name: "fighter", class: "fighter", want: 2},
		{name: "rogue", class: "rogue", want: 4},
		{name: "half-elf fighter", race: "half-elf", class: "fighter", want: 4},
		{name: "human wizard", race: "human", class: "wizard", want: 2},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			d := character.New("d")
			d.Race = tc.race
			d.Class = tc.class
			s.Equal(tc.want, s.reg.SkillAllowance(d))
		})
	}
}

func (s *ChoicesTestSuite) TestSubclassOptionsFollowLevel() {
	s.draft.Class = "wizard"

	s.draft.Level = 1
	opts := s.reg.ResolveChoiceOptions(s.draft)
	s.Empty(opts.For(character.FieldSubclass))
	s.False(opts.Allows(character.FieldSubclass, "evocation"))

	s.draft.Level = 2
	opts = s.reg.ResolveChoiceOptions(s.draft)
	s.Equal([]string{"evocation"}, opts.For(character.FieldSubclass))

	s.draft.Class = "fighter"
	opts = s.reg.ResolveChoiceOptions(s.draft)
	s.False(opts.Allows(character.FieldSubclass, "evocation"), "subclass of another class")
}

func (s *ChoicesTestSuite) TestSpellOptionsFollowSlotLevel() {
	s.draft.Class = "wizard"
	s.draft.Level = 1

	opts := s.reg.ResolveChoiceOptions(s.draft)
	s.True(opts.Allows(character.FieldSpells, "fire-bolt"))
	s.True(opts.Allows(character.FieldSpells, "magic-missile"))
	s.False(opts.Allows(character.FieldSpells, "fireball"))

	s.draft.Level = 5
	opts = s.reg.ResolveChoiceOptions(s.draft)
	s.True(opts.Allows(character.FieldSpells, "fireball"))
	s.False(opts.Allows(character.FieldSpells, "cone-of-cold"))

	s.draft.Class = "fighter"
	opts = s.reg.ResolveChoiceOptions(s.draft)
	s.Empty(opts.For(character.FieldSpells))
}

func (s *ChoicesTestSuite) TestMultiValueLimits() {
	s.draft.Race = "human"
	s.draft.Class = "rogue"
	s.draft.Background = "acolyte"

	opts := s.reg.ResolveChoiceOptions(s.draft)
	s.Equal(4, opts.Limit(character.FieldSkills))
	s.Equal(3, opts.Limit(character.FieldLanguages))
	s.Equal(0, opts.Limit(character.FieldTools))
	s.Equal(-1, opts.Limit(character.FieldFeats))
	s.True(opts.Constrained(character.FieldRace))
	s.False(opts.Constrained(character.FieldName))
	s.True(opts.Allows(character.FieldName, "anything"))
}

func (s *ChoicesTestSuite) TestExpertiseFromProficientSkills() {
	s.draft.Race = "elf"
	s.draft.Class = "rogue"
	s.draft.Skills = []string{"stealth", "deception"}

	opts := s.reg.ResolveChoiceOptions(s.draft)
	s.Equal([]string{"deception", "perception", "stealth"}, opts.For(character.FieldExpertise))
}

func (s *ChoicesTestSuite) TestFeatPrerequisites() {
	opts := s.reg.ResolveChoiceOptions(s.draft)
	s.True(opts.Allows(character.FieldFeats, "grappler"), "no scores yet")

	for _, a := range character.Abilities() {
		s.draft.SetAbilityScore(a, 10)
	}
	opts = s.reg.ResolveChoiceOptions(s.draft)
	s.False(opts.Allows(character.FieldFeats, "grappler"))

	s.draft.SetAbilityScore(character.AbilityStrength, 13)
	opts = s.reg.ResolveChoiceOptions(s.draft)
	s.True(opts.Allows(character.FieldFeats, "grappler"))
}

func (s *ChoicesTestSuite) TestMaxSpellLevel() {
	lvl, casts := s.reg.MaxSpellLevel("wizard", 17)
	s.True(casts)
	s.Equal(9, lvl)

	_, casts = s.reg.MaxSpellLevel("rogue", 17)
	s.False(casts)
}

func (s *ChoicesTestSuite) TestPruneAfterClassChange() {
	s.draft.Race = "elf"
	s.draft.Subrace = "hill-dwarf"
	s.draft.Class = "fighter"
	s.draft.Level = 1
	s.draft.Subclass = "evocation"
	s.draft.Lock(character.FieldSubclass)
	s.draft.Skills = []string{"acrobatics", "arcana", "athletics", "history"}
	s.draft.Lock(character.FieldSkills)
	s.draft.Expertise = []string{"arcana"}
	s.draft.Spells = map[string]character.SpellSelection{"magic-missile": {Known: true}}

	pruned := s.reg.Prune(s.draft)

	s.ElementsMatch([]character.Field{
		character.FieldSubrace, character.FieldSubclass, character.FieldSkills,
		character.FieldExpertise, character.FieldSpells,
	}, pruned)
	s.Empty(s.draft.Subrace)
	s.Empty(s.draft.Subclass)
	s.False(s.draft.Locked(character.FieldSubclass))
	s.Equal([]string{"acrobatics", "athletics"}, s.draft.Skills, "fighter chooses two")
	s.True(s.draft.Locked(character.FieldSkills))
	s.Empty(s.draft.Expertise)
	s.Nil(s.draft.Spells)
}

func (s *ChoicesTestSuite) TestPruneLeavesLegalDraftAlone() {
	s.draft.Race = "elf"
	s.draft.Subrace = "high-elf"
	s.draft.Class = "wizard"
	s.draft.Level = 1
	s.draft.Skills = []string{"arcana", "history"}
	s.draft.Spells = map[string]character.SpellSelection{"magic-missile": {Known: true}}

	s.Empty(s.reg.Prune(s.draft))
	s.Equal([]string{"arcana", "history"}, s.draft.Skills)
	s.Len(s.draft.Spells, 1)
}
