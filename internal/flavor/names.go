package flavor

import (
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-charbuilder/internal/registry"
)

// GivenNames returns the built-in given names for race and gender, walking
// exact race, race parts, then the default table. An unknown gender draws
// from both lists.
func GivenNames(race, gender string) []string {
	t := tableFor(race)
	return givenFrom(t, gender)
}

// Surnames returns the built-in surnames for race
func Surnames(race string) []string {
	return append([]string(nil), tableFor(race).Surnames...)
}

// BuiltinName draws "Given Surname" from the built-in tables
func BuiltinName(roller dice.Roller, race, gender string) (string, error) {
	given, err := rng.Pick(roller, GivenNames(race, gender))
	if err != nil {
		return "", errors.Wrap(err, "failed to pick given name")
	}
	surname, err := rng.Pick(roller, Surnames(race))
	if err != nil {
		return "", errors.Wrap(err, "failed to pick surname")
	}
	return given + " " + surname, nil
}

// BuiltinOrigin draws one of the built-in hometowns
func BuiltinOrigin(roller dice.Roller) (string, error) {
	origin, err := rng.Pick(roller, Origins)
	if err != nil {
		return "", errors.Wrap(err, "failed to pick origin")
	}
	return origin, nil
}

func tableFor(race string) nameTable {
	for _, key := range registry.RaceCandidates(race) {
		if t, ok := builtinNames[key]; ok {
			return t
		}
	}
	return builtinNames[defaultNameKey]
}

func givenFrom(t nameTable, gender string) []string {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case character.GenderMale:
		return append([]string(nil), t.Male...)
	case character.GenderFemale:
		return append([]string(nil), t.Female...)
	}
	out := make([]string, 0, len(t.Male)+len(t.Female))
	out = append(out, t.Male...)
	return append(out, t.Female...)
}
