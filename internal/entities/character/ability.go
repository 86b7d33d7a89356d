package character

import "strings"

// Ability is one of the six ability scores, keyed by its SRD index
type Ability string

// Abilities
const (
	AbilityStrength     Ability = "str"
	AbilityDexterity    Ability = "dex"
	AbilityConstitution Ability = "con"
	AbilityIntelligence Ability = "int"
	AbilityWisdom       Ability = "wis"
	AbilityCharisma     Ability = "cha"
)

// Abilities returns the six abilities in sheet order
func Abilities() []Ability {
	return []Ability{
		AbilityStrength, AbilityDexterity, AbilityConstitution,
		AbilityIntelligence, AbilityWisdom, AbilityCharisma,
	}
}

// ParseAbility accepts a short index or a full ability name
func ParseAbility(s string) (Ability, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if len(key) > 3 {
		key = key[:3]
	}
	for _, a := range Abilities() {
		if string(a) == key {
			return a, true
		}
	}
	return "", false
}

// Upper returns the three letter uppercase label (STR, DEX, ...)
func (a Ability) Upper() string {
	return strings.ToUpper(string(a))
}

// SkillAbilities maps each skill index to the ability it keys off
var SkillAbilities = map[string]Ability{
	"acrobatics":      AbilityDexterity,
	"animal-handling": AbilityWisdom,
	"arcana":          AbilityIntelligence,
	"athletics":       AbilityStrength,
	"deception":       AbilityCharisma,
	"history":         AbilityIntelligence,
	"insight":         AbilityWisdom,
	"intimidation":    AbilityCharisma,
	"investigation":   AbilityIntelligence,
	"medicine":        AbilityWisdom,
	"nature":          AbilityIntelligence,
	"perception":      AbilityWisdom,
	"performance":     AbilityCharisma,
	"persuasion":      AbilityCharisma,
	"religion":        AbilityIntelligence,
	"sleight-of-hand": AbilityDexterity,
	"stealth":         AbilityDexterity,
	"survival":        AbilityWisdom,
}

// Skills returns every skill index in alphabetical order
func Skills() []string {
	return []string{
		"acrobatics", "animal-handling", "arcana", "athletics", "deception",
		"history", "insight", "intimidation", "investigation", "medicine",
		"nature", "perception", "performance", "persuasion", "religion",
		"sleight-of-hand", "stealth", "survival",
	}
}
