package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-charbuilder/internal/config"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
)

type TuningTestSuite struct {
	suite.Suite
}

func TestTuningSuite(t *testing.T) {
	suite.Run(t, new(TuningTestSuite))
}

func (s *TuningTestSuite) writeTuning(body string) string {
	path := filepath.Join(s.T().TempDir(), "tuning.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(body), 0o600))
	return path
}

func (s *TuningTestSuite) TestDefaultsAreValid() {
	t := config.DefaultTuning()
	s.NoError(t.Validate())
	s.Len(t.LevelWeights, character.MaxLevel)
	s.Equal(config.AbilityStandardArray, t.AbilityMethod)
}

func (s *TuningTestSuite) TestEmptyPathReturnsDefaults() {
	t, err := config.LoadTuning("")
	s.Require().NoError(err)
	s.Equal(config.DefaultTuning(), t)
}

func (s *TuningTestSuite) TestFileOverridesDefaults() {
	path := s.writeTuning(`
ability_method: 4d6-drop-lowest
hit_points: rolled
level_weights: [1, 1, 1]
currency_bands:
  - {min_level: 1, max_level: 20, min_gold: 5, max_gold: 10}
`)
	t, err := config.LoadTuning(path)
	s.Require().NoError(err)
	s.Equal(config.AbilityDropLowest, t.AbilityMethod)
	s.Equal(config.HitPointsRolled, t.HitPoints)
	s.Equal([]int{1, 1, 1}, t.LevelWeights)
	s.Require().Len(t.CurrencyBands, 1)
	s.Equal(10, t.CurrencyBands[0].MaxGold)
	// untouched keys keep their defaults
	s.Equal(20, t.AbilityMax)
	s.True(t.PreparesSpells("wizard"))
}

func (s *TuningTestSuite) TestUnknownKeyRejected() {
	path := s.writeTuning("ability_metod: 3d6\n")
	_, err := config.LoadTuning(path)
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *TuningTestSuite) TestMissingFile() {
	_, err := config.LoadTuning(filepath.Join(s.T().TempDir(), "missing.yaml"))
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *TuningTestSuite) TestValidate() {
	testCases := []struct {
		name   string
		mutate func(t *config.Tuning)
	}{
		{name: "unknown method", mutate: func(t *config.Tuning) { t.AbilityMethod = "point-buy" }},
		{name: "unknown hit point method", mutate: func(t *config.Tuning) { t.HitPoints = "max" }},
		{name: "min above max", mutate: func(t *config.Tuning) { t.AbilityMin = 18; t.AbilityMax = 10 }},
		{name: "too many weights", mutate: func(t *config.Tuning) { t.LevelWeights = make([]int, 21) }},
		{name: "negative weight", mutate: func(t *config.Tuning) { t.LevelWeights = []int{1, -1} }},
		{name: "magic tier level", mutate: func(t *config.Tuning) { t.MagicTiers = []config.MagicTier{{MinLevel: 25, Bonus: 1}} }},
		{name: "magic tier bonus above cap", mutate: func(t *config.Tuning) { t.MagicTiers = []config.MagicTier{{MinLevel: 5, Bonus: 4}} }},
		{name: "inverted gold", mutate: func(t *config.Tuning) {
			t.CurrencyBands = []config.CurrencyBand{{MinLevel: 1, MaxLevel: 20, MinGold: 50, MaxGold: 10}}
		}},
		{name: "overlapping bands", mutate: func(t *config.Tuning) {
			t.CurrencyBands = []config.CurrencyBand{
				{MinLevel: 1, MaxLevel: 10, MinGold: 1, MaxGold: 10},
				{MinLevel: 8, MaxLevel: 20, MinGold: 10, MaxGold: 20},
			}
		}},
		{name: "unknown priority ability", mutate: func(t *config.Tuning) {
			t.ClassPriorities["fighter"] = []string{"luck"}
		}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			t := config.DefaultTuning()
			tc.mutate(t)
			err := t.Validate()
			s.Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *TuningTestSuite) TestCurrencyBandsIncreaseWithLevel() {
	t := config.DefaultTuning()
	prev := config.CurrencyBand{}
	for level := 1; level <= character.MaxLevel; level++ {
		band, ok := t.CurrencyBandFor(level)
		s.Require().True(ok)
		s.LessOrEqual(band.MinLevel, level)
		s.GreaterOrEqual(band.MaxLevel, level)
		s.GreaterOrEqual(band.MinGold, prev.MinGold)
		s.GreaterOrEqual(band.MaxGold, prev.MaxGold)
		prev = band
	}

	low, _ := t.CurrencyBandFor(1)
	high, _ := t.CurrencyBandFor(15)
	s.Less(low.MaxGold, high.MinGold)
}

func (s *TuningTestSuite) TestCurrencyBandPastLastBand() {
	t := config.DefaultTuning()
	t.CurrencyBands = []config.CurrencyBand{{MinLevel: 1, MaxLevel: 5, MinGold: 1, MaxGold: 2}}
	band, ok := t.CurrencyBandFor(12)
	s.True(ok)
	s.Equal(5, band.MaxLevel)

	t.CurrencyBands = nil
	_, ok = t.CurrencyBandFor(1)
	s.False(ok)
}

func (s *TuningTestSuite) TestMagicBonusFor() {
	t := config.DefaultTuning()
	for level, want := range map[int]int{1: 0, 4: 0, 5: 1, 10: 1, 11: 2, 15: 2, 16: 3, 20: 3} {
		s.Equal(want, t.MagicBonusFor(level), "level %d", level)
	}
}

func (s *TuningTestSuite) TestMagicBonusForStaysInItemRange() {
	t := config.DefaultTuning()
	t.MagicTiers = []config.MagicTier{{MinLevel: 1, Bonus: -2}, {MinLevel: 10, Bonus: 5}}

	s.Equal(0, t.MagicBonusFor(5))
	s.Equal(character.MaxMagicBonus, t.MagicBonusFor(12))
}

func (s *TuningTestSuite) TestPriorities() {
	t := config.DefaultTuning()
	s.Equal([]character.Ability{"int", "dex", "con", "wis", "cha", "str"}, t.Priorities("wizard"))
	s.Equal(character.Abilities(), t.Priorities("artificer"))

	t.ClassPriorities["artificer"] = []string{"int", "con"}
	s.Equal([]character.Ability{"int", "con", "str", "dex", "wis", "cha"}, t.Priorities("artificer"))
}

func (s *TuningTestSuite) TestLoadouts() {
	t := config.DefaultTuning()
	fighter, ok := t.LoadoutFor("fighter")
	s.True(ok)
	s.Equal([]string{"chain-mail", "shield"}, fighter.Armor)
	s.Equal(config.LoadoutItem{Index: "longsword", Quantity: 2}, fighter.Weapons[0])

	_, ok = t.LoadoutFor("artificer")
	s.False(ok)
}
