package engine

import (
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/registry"
)

// DeriveInput contains the draft to derive
type DeriveInput struct {
	Draft    *character.Draft
	Registry *registry.Registry
}

// DeriveOutput contains the derived snapshot
type DeriveOutput struct {
	Snapshot *Snapshot
}

// Spellcasting progressions
const (
	ProgressionFull  = "full"
	ProgressionHalf  = "half"
	ProgressionThird = "third"
)

// Feature sources, in the order features are listed
const (
	SourceRace       = "race"
	SourceSubrace    = "subrace"
	SourceClass      = "class"
	SourceSubclass   = "subclass"
	SourceBackground = "background"
	SourceFeat       = "feat"
)

// Snapshot is the read-only result of derivation. It is never persisted.
type Snapshot struct {
	Level            int
	ProficiencyBonus int

	Abilities    map[character.Ability]AbilityScore
	SavingThrows map[character.Ability]SavingThrow
	Skills       map[string]SkillBonus

	HitDie       int
	MaxHitPoints int

	ArmorClass int
	ArmorName  string
	Shield     bool

	Initiative        int
	Speed             int
	Size              string
	Darkvision        int
	PassivePerception int

	// Spellcasting is nil for classes that do not cast
	Spellcasting *Spellcasting

	Features []Feature

	Languages           []string
	ArmorProficiencies  []string
	WeaponProficiencies []string
	ToolProficiencies   []string

	WealthCopper int
	WealthGold   float64
}

// AbilityScore breaks a score into its sources
type AbilityScore struct {
	Base     int
	Racial   int
	Bonus    int
	Total    int
	Modifier int
}

// SavingThrow is the bonus for one saving throw
type SavingThrow struct {
	Modifier   int
	Proficient bool
}

// SkillBonus is the bonus for one skill. Multiplier is 0, 1 or 2.
type SkillBonus struct {
	Ability    character.Ability
	Multiplier int
	Bonus      int
}

// Spellcasting summarizes the class's casting at the current level
type Spellcasting struct {
	Ability       character.Ability
	SaveDC        int
	AttackBonus   int
	Progression   string
	Prepares      bool
	CantripsKnown int
	SpellsKnown   int
	PreparedLimit int
	MaxSpellLevel int

	// Slots holds slot counts for spell levels 1 through 9. Index 0 is unused.
	Slots [10]int
}

// Feature is one granted feature or trait
type Feature struct {
	Index  string
	Name   string
	Source string
	Level  int
	Desc   string

	// Text is the full description, one paragraph per entry
	Text []string
}

// Modifier returns the ability modifier, 0 for unknown abilities
func (s *Snapshot) Modifier(a character.Ability) int {
	return s.Abilities[a].Modifier
}

// HasFeature reports whether a feature or trait was granted
func (s *Snapshot) HasFeature(index string) bool {
	for _, f := range s.Features {
		if f.Index == index {
			return true
		}
	}
	return false
}
