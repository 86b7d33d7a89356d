package config

import (
	"os"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
)

// Ability generation methods
const (
	AbilityStandardArray = "standard-array"
	AbilityDropLowest    = "4d6-drop-lowest"
	Ability3d6           = "3d6"
	AbilityHeroic        = "4d6-reroll-1s"
)

// Hit point methods
const (
	HitPointsAverage = "average"
	HitPointsRolled  = "rolled"
)

// Tuning controls how random characters are synthesized
type Tuning struct {
	AbilityMethod   string              `yaml:"ability_method"`
	AbilityMin      int                 `yaml:"ability_min"`
	AbilityMax      int                 `yaml:"ability_max"`
	LevelWeights    []int               `yaml:"level_weights"`
	WeightedChoices bool                `yaml:"weighted_choices"`
	HitPoints       string              `yaml:"hit_points"`
	MagicTiers      []MagicTier         `yaml:"magic_tiers"`
	CurrencyBands   []CurrencyBand      `yaml:"currency_bands"`
	ClassPriorities map[string][]string `yaml:"class_priorities"`
	PreparedCasters []string            `yaml:"prepared_casters"`
	Loadouts        map[string]Loadout  `yaml:"loadouts"`
	DefaultLoadout  Loadout             `yaml:"default_loadout"`
	SpellThemes     map[string][]string `yaml:"spell_themes"`
}

// MagicTier grants a bonus to the first weapon from MinLevel on
type MagicTier struct {
	MinLevel int `yaml:"min_level"`
	Bonus    int `yaml:"bonus"`
}

// CurrencyBand is the gold range rolled for a level range
type CurrencyBand struct {
	MinLevel int `yaml:"min_level"`
	MaxLevel int `yaml:"max_level"`
	MinGold  int `yaml:"min_gold"`
	MaxGold  int `yaml:"max_gold"`
}

// LoadoutItem is one line of a loadout
type LoadoutItem struct {
	Index    string `yaml:"index"`
	Quantity int    `yaml:"quantity"`
}

// Loadout is the starter kit for a class
type Loadout struct {
	Armor   []string      `yaml:"armor"`
	Weapons []LoadoutItem `yaml:"weapons"`
	Gear    []string      `yaml:"gear"`
}

// DefaultTuning returns the built-in profile
func DefaultTuning() *Tuning {
	return &Tuning{
		AbilityMethod:   AbilityStandardArray,
		AbilityMin:      1,
		AbilityMax:      20,
		LevelWeights:    []int{20, 18, 16, 14, 12, 10, 9, 8, 7, 6, 5, 4, 4, 4, 3, 3, 2, 2, 2, 1},
		WeightedChoices: true,
		HitPoints:       HitPointsAverage,
		MagicTiers: []MagicTier{
			{MinLevel: 5, Bonus: 1},
			{MinLevel: 11, Bonus: 2},
			{MinLevel: 16, Bonus: 3},
		},
		CurrencyBands: []CurrencyBand{
			{MinLevel: 1, MaxLevel: 4, MinGold: 10, MaxGold: 100},
			{MinLevel: 5, MaxLevel: 10, MinGold: 150, MaxGold: 600},
			{MinLevel: 11, MaxLevel: 16, MinGold: 800, MaxGold: 3000},
			{MinLevel: 17, MaxLevel: 20, MinGold: 4000, MaxGold: 15000},
		},
		ClassPriorities: map[string][]string{
			"barbarian": {"str", "con", "dex", "wis", "cha", "int"},
			"bard":      {"cha", "dex", "con", "wis", "int", "str"},
			"cleric":    {"wis", "con", "str", "dex", "int", "cha"},
			"druid":     {"wis", "con", "dex", "int", "str", "cha"},
			"fighter":   {"str", "con", "dex", "wis", "cha", "int"},
			"monk":      {"dex", "wis", "con", "str", "int", "cha"},
			"paladin":   {"str", "cha", "con", "wis", "dex", "int"},
			"ranger":    {"dex", "wis", "con", "str", "int", "cha"},
			"rogue":     {"dex", "int", "cha", "wis", "con", "str"},
			"sorcerer":  {"cha", "con", "dex", "wis", "int", "str"},
			"warlock":   {"cha", "con", "dex", "wis", "int", "str"},
			"wizard":    {"int", "dex", "con", "wis", "cha", "str"},
		},
		PreparedCasters: []string{"cleric", "druid", "paladin", "wizard"},
		Loadouts: map[string]Loadout{
			"barbarian": {Armor: []string{"scale-mail"}, Weapons: []LoadoutItem{{"greataxe", 1}, {"handaxe", 2}}, Gear: []string{"explorers-pack"}},
			"bard":      {Armor: []string{"leather-armor"}, Weapons: []LoadoutItem{{"rapier", 1}, {"dagger", 1}}, Gear: []string{"entertainers-pack", "lute"}},
			"cleric":    {Armor: []string{"scale-mail", "shield"}, Weapons: []LoadoutItem{{"mace", 1}}, Gear: []string{"priests-pack", "holy-water-flask"}},
			"druid":     {Armor: []string{"leather-armor", "shield"}, Weapons: []LoadoutItem{{"scimitar", 1}, {"quarterstaff", 1}}, Gear: []string{"explorers-pack"}},
			"fighter":   {Armor: []string{"chain-mail", "shield"}, Weapons: []LoadoutItem{{"longsword", 2}, {"longbow", 1}, {"arrow", 20}}, Gear: []string{"dungeoneers-pack"}},
			"monk":      {Weapons: []LoadoutItem{{"shortsword", 1}, {"dart", 4}}, Gear: []string{"explorers-pack"}},
			"paladin":   {Armor: []string{"chain-mail", "shield"}, Weapons: []LoadoutItem{{"longsword", 1}, {"warhammer", 1}}, Gear: []string{"priests-pack", "holy-water-flask"}},
			"ranger":    {Armor: []string{"scale-mail"}, Weapons: []LoadoutItem{{"longbow", 1}, {"arrow", 20}, {"shortsword", 2}}, Gear: []string{"explorers-pack"}},
			"rogue":     {Armor: []string{"leather-armor"}, Weapons: []LoadoutItem{{"rapier", 1}, {"shortbow", 1}, {"arrow", 20}}, Gear: []string{"burglars-pack"}},
			"sorcerer":  {Weapons: []LoadoutItem{{"dagger", 2}, {"crossbow-light", 1}, {"crossbow-bolt", 20}}, Gear: []string{"explorers-pack", "crystal"}},
			"warlock":   {Armor: []string{"leather-armor"}, Weapons: []LoadoutItem{{"crossbow-light", 1}, {"crossbow-bolt", 20}, {"dagger", 2}}, Gear: []string{"scholars-pack"}},
			"wizard":    {Weapons: []LoadoutItem{{"quarterstaff", 1}, {"dagger", 1}}, Gear: []string{"scholars-pack", "spellbook", "crystal"}},
		},
		DefaultLoadout: Loadout{
			Armor:   []string{"leather-armor"},
			Weapons: []LoadoutItem{{"quarterstaff", 1}},
			Gear:    []string{"explorers-pack"},
		},
		SpellThemes: map[string][]string{
			"evocation": {"evocation"},
			"lore":      {"enchantment", "illusion"},
			"life":      {"abjuration", "evocation"},
			"land":      {"conjuration", "transmutation"},
			"devotion":  {"abjuration"},
			"hunter":    {"divination"},
			"draconic":  {"evocation"},
			"fiend":     {"evocation", "necromancy"},
			"thief":     {"illusion"},
		},
	}
}

// LoadTuning reads a YAML profile over the defaults. An empty path returns
// the defaults.
func LoadTuning(path string) (*Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to read tuning file %s", path)
	}
	if err := yaml.UnmarshalWithOptions(data, t, yaml.DisallowUnknownField()); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to parse tuning file %s", path)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the profile for values the synthesizer cannot use
func (t *Tuning) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateEnum("ability_method", t.AbilityMethod,
		[]string{AbilityStandardArray, AbilityDropLowest, Ability3d6, AbilityHeroic}, vb)
	errors.ValidateEnum("hit_points", t.HitPoints, []string{HitPointsAverage, HitPointsRolled}, vb)
	errors.ValidateRange("ability_min", t.AbilityMin, 1, 30, vb)
	errors.ValidateRange("ability_max", t.AbilityMax, 1, 30, vb)
	if t.AbilityMin > t.AbilityMax {
		vb.InvalidField("ability_min", "must not exceed ability_max")
	}

	if len(t.LevelWeights) > character.MaxLevel {
		vb.Fieldf("level_weights", "must have at most %d entries", character.MaxLevel)
	}
	for _, w := range t.LevelWeights {
		if w < 0 {
			vb.InvalidField("level_weights", "weights must not be negative")
			break
		}
	}

	for i, tier := range t.MagicTiers {
		if tier.MinLevel < 1 || tier.MinLevel > character.MaxLevel {
			vb.Fieldf("magic_tiers", "tier %d min_level must be between 1 and %d", i, character.MaxLevel)
		}
		if tier.Bonus < 0 || tier.Bonus > character.MaxMagicBonus {
			vb.Fieldf("magic_tiers", "tier %d bonus must be between 0 and %d", i, character.MaxMagicBonus)
		}
	}

	bands := append([]CurrencyBand(nil), t.CurrencyBands...)
	sort.SliceStable(bands, func(i, j int) bool { return bands[i].MinLevel < bands[j].MinLevel })
	for i, b := range bands {
		if b.MinLevel < 1 || b.MaxLevel > character.MaxLevel || b.MinLevel > b.MaxLevel {
			vb.Fieldf("currency_bands", "band %d-%d has an invalid level range", b.MinLevel, b.MaxLevel)
		}
		if b.MinGold < 0 || b.MinGold > b.MaxGold {
			vb.Fieldf("currency_bands", "band %d-%d has an invalid gold range", b.MinLevel, b.MaxLevel)
		}
		if i > 0 && b.MinLevel <= bands[i-1].MaxLevel {
			vb.Fieldf("currency_bands", "band %d-%d overlaps the previous band", b.MinLevel, b.MaxLevel)
		}
	}

	for class, order := range t.ClassPriorities {
		for _, a := range order {
			if _, ok := character.ParseAbility(a); !ok {
				vb.Fieldf("class_priorities", "%s lists unknown ability %q", class, a)
			}
		}
	}

	return vb.Build()
}

// CurrencyBandFor returns the band covering level. Levels past the last band
// use the last band.
func (t *Tuning) CurrencyBandFor(level int) (CurrencyBand, bool) {
	if len(t.CurrencyBands) == 0 {
		return CurrencyBand{}, false
	}
	var last CurrencyBand
	for _, b := range t.CurrencyBands {
		if level >= b.MinLevel && level <= b.MaxLevel {
			return b, true
		}
		if b.MaxLevel >= last.MaxLevel {
			last = b
		}
	}
	if level > last.MaxLevel {
		return last, true
	}
	return t.CurrencyBands[0], true
}

// MagicBonusFor returns the weapon bonus earned at level, kept within the
// range inventory items accept
func (t *Tuning) MagicBonusFor(level int) int {
	bonus := 0
	best := 0
	for _, tier := range t.MagicTiers {
		if level >= tier.MinLevel && tier.MinLevel >= best {
			best = tier.MinLevel
			bonus = tier.Bonus
		}
	}
	return min(max(bonus, 0), character.MaxMagicBonus)
}

// Priorities returns the ability order for a class, falling back to the
// sheet order
func (t *Tuning) Priorities(class string) []character.Ability {
	order := t.ClassPriorities[class]
	out := make([]character.Ability, 0, len(character.Abilities()))
	seen := map[character.Ability]bool{}
	for _, s := range order {
		if a, ok := character.ParseAbility(s); ok && !seen[a] {
			out = append(out, a)
			seen[a] = true
		}
	}
	for _, a := range character.Abilities() {
		if !seen[a] {
			out = append(out, a)
		}
	}
	return out
}

// PreparesSpells reports whether the class prepares from its full list
func (t *Tuning) PreparesSpells(class string) bool {
	for _, c := range t.PreparedCasters {
		if c == class {
			return true
		}
	}
	return false
}

// LoadoutFor returns the class loadout and whether one is configured
func (t *Tuning) LoadoutFor(class string) (Loadout, bool) {
	l, ok := t.Loadouts[class]
	return l, ok
}
