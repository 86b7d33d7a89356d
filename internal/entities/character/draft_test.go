package character_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
)

type DraftTestSuite struct {
	suite.Suite
	draft *character.Draft
}

func TestDraftSuite(t *testing.T) {
	suite.Run(t, new(DraftTestSuite))
}

func (s *DraftTestSuite) SetupTest() {
	s.draft = character.New("draft_1")
}

func (s *DraftTestSuite) TestBlankSheet() {
	for _, f := range character.Fields() {
		s.False(s.draft.IsSet(f), "field %s", f)
		s.False(s.draft.Locked(f), "field %s", f)
	}
	s.Equal(1, s.draft.EffectiveLevel())
	s.Equal(character.EntityType, s.draft.GetType())
	s.Equal("draft_1", s.draft.GetID())
}

func (s *DraftTestSuite) TestCloneIsDeep() {
	s.draft.Race = "elf"
	s.draft.Skills = []string{"perception"}
	s.draft.SetAbilityScore(character.AbilityDexterity, 15)
	s.draft.Spells = map[string]character.SpellSelection{"light": {Known: true}}
	s.draft.AddItem(character.Item{Index: "longsword", Quantity: 1})
	s.draft.Lock(character.FieldRace)

	clone := s.draft.Clone()
	clone.Skills[0] = "stealth"
	clone.AbilityScores[character.AbilityDexterity] = 8
	clone.Spells["fire-bolt"] = character.SpellSelection{Known: true}
	clone.Inventory[0].Quantity = 5
	clone.Unlock(character.FieldRace)

	s.Equal([]string{"perception"}, s.draft.Skills)
	s.Equal(15, s.draft.AbilityScore(character.AbilityDexterity))
	s.Len(s.draft.Spells, 1)
	s.Equal(1, s.draft.Inventory[0].Quantity)
	s.True(s.draft.Locked(character.FieldRace))
}

func (s *DraftTestSuite) TestResetKeepsID() {
	s.draft.Name = "Lyra"
	s.draft.Level = 7
	s.draft.Lock(character.FieldName)

	s.draft.Reset()

	s.Equal("draft_1", s.draft.ID)
	s.False(s.draft.IsSet(character.FieldName))
	s.False(s.draft.Locked(character.FieldName))
	s.Equal(0, s.draft.Level)
}

func (s *DraftTestSuite) TestAddItemMergesMatchingLines() {
	s.draft.AddItem(character.Item{Index: "dagger", Quantity: 1})
	s.draft.AddItem(character.Item{Index: "dagger"})
	s.draft.AddItem(character.Item{Index: "dagger", Quantity: 1, MagicBonus: 1})

	s.Require().Len(s.draft.Inventory, 2)
	s.Equal(2, s.draft.Inventory[0].Quantity)
	s.Equal(1, s.draft.Inventory[1].MagicBonus)
}

func (s *DraftTestSuite) TestCurrencyTotal() {
	c := character.Currency{PP: 1, GP: 2, EP: 1, SP: 3, CP: 4}
	s.Equal(1000+200+50+30+4, c.TotalCopper())
	s.False(c.IsZero())
	s.True(character.Currency{}.IsZero())
}

func (s *DraftTestSuite) TestParseAbility() {
	a, ok := character.ParseAbility("Strength")
	s.True(ok)
	s.Equal(character.AbilityStrength, a)

	a, ok = character.ParseAbility("wis")
	s.True(ok)
	s.Equal(character.AbilityWisdom, a)

	_, ok = character.ParseAbility("luck")
	s.False(ok)
}

func (s *DraftTestSuite) TestLockSnapshotCoversEveryField() {
	s.draft.Lock(character.FieldClass)
	snap := s.draft.Locks.Snapshot()
	s.Len(snap, len(character.Fields()))
	s.True(snap[character.FieldClass])
	s.False(snap[character.FieldRace])
}

func (s *DraftTestSuite) TestSortedSet() {
	s.Equal([]string{"arcana", "history"}, character.SortedSet([]string{"history", "", "arcana", "history"}))
}
