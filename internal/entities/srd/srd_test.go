package srd_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
)

type SRDTestSuite struct {
	suite.Suite
}

func TestSRDSuite(t *testing.T) {
	suite.Run(t, new(SRDTestSuite))
}

func (s *SRDTestSuite) TestReferenceKeyFallsBackToURL() {
	s.Equal("elf", srd.Reference{Index: "elf", URL: "/api/races/high-elf"}.Key())
	s.Equal("high-elf", srd.Reference{URL: "/api/subraces/high-elf/"}.Key())
	s.Equal("", srd.Reference{}.Key())
}

func (s *SRDTestSuite) TestChoiceReferencesFlattensNestedOptions() {
	raw := `{
		"desc": "(a) a rapier or (b) a longsword",
		"choose": 1,
		"type": "equipment",
		"from": {
			"option_set_type": "options_array",
			"options": [
				{"option_type": "counted_reference", "count": 2, "of": {"index": "handaxe", "name": "Handaxe"}},
				{"option_type": "choice", "choice": {
					"choose": 1, "type": "equipment",
					"from": {"option_set_type": "options_array", "options": [
						{"option_type": "reference", "item": {"index": "rapier", "name": "Rapier"}}
					]}
				}},
				{"option_type": "multiple", "items": [
					{"option_type": "counted_reference", "count": 1, "of": {"index": "longbow", "name": "Longbow"}},
					{"option_type": "counted_reference", "count": 20, "of": {"index": "arrow", "name": "Arrow"}}
				]}
			]
		}
	}`

	var choice srd.Choice
	s.Require().NoError(json.Unmarshal([]byte(raw), &choice))

	refs := choice.References()
	indexes := make([]string, 0, len(refs))
	for _, r := range refs {
		indexes = append(indexes, r.Key())
	}
	s.Equal([]string{"handaxe", "rapier", "longbow", "arrow"}, indexes)
	s.Equal(2, choice.From.Options[0].Quantity())
	s.Equal(1, choice.From.Options[1].Quantity())
}

func (s *SRDTestSuite) TestKindOf() {
	testCases := []struct {
		index    string
		expected srd.ProficiencyKind
	}{
		{"skill-perception", srd.KindSkill},
		{"saving-throw-str", srd.KindSave},
		{"elvish", srd.KindLanguage},
		{"thieves-tools", srd.KindTool},
		{"lute", srd.KindTool},
		{"dice-set", srd.KindTool},
		{"light-armor", srd.KindArmor},
		{"shields", srd.KindArmor},
		{"martial-weapons", srd.KindWeapon},
		{"longswords", srd.KindWeapon},
		{"vehicles-land", srd.KindOther},
	}

	for _, tc := range testCases {
		s.Run(tc.index, func() {
			s.Equal(tc.expected, srd.KindOf(tc.index))
		})
	}
}

func (s *SRDTestSuite) TestLevelSpellcasting() {
	level := &srd.Level{Spellcasting: map[string]int{
		"cantrips_known":      3,
		"spells_known":        4,
		"spell_slots_level_1": 4,
		"spell_slots_level_2": 2,
	}}

	s.Equal(3, level.CantripsKnown())
	s.Equal(4, level.SpellsKnown())
	slots := level.SpellSlots()
	s.Equal(4, slots[1])
	s.Equal(2, slots[2])
	s.Equal(0, slots[9])
}

func (s *SRDTestSuite) TestEquipmentClassification() {
	shield := &srd.Equipment{Index: "shield", ArmorCategory: "Shield", EquipmentCategory: srd.Reference{Index: "armor"}}
	s.True(shield.IsArmor())
	s.True(shield.IsShield())
	s.False(shield.IsWeapon())

	rapier := &srd.Equipment{
		Index:             "rapier",
		WeaponCategory:    "Martial",
		EquipmentCategory: srd.Reference{Index: "weapon"},
		Properties:        []srd.Reference{{Index: "finesse", Name: "Finesse"}},
	}
	s.True(rapier.IsWeapon())
	s.True(rapier.HasProperty("finesse"))
	s.False(rapier.HasProperty("reach"))
}
