package flavor

import (
	"strings"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
)

// Pronouns are the forms used in generated prose
type Pronouns struct {
	Subject    string
	Object     string
	Possessive string
	Reflexive  string
}

// PronounsFor returns the pronouns for a gender. Anything other than male or
// female uses they/them.
func PronounsFor(gender string) Pronouns {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case character.GenderMale:
		return Pronouns{Subject: "he", Object: "him", Possessive: "his", Reflexive: "himself"}
	case character.GenderFemale:
		return Pronouns{Subject: "she", Object: "her", Possessive: "her", Reflexive: "herself"}
	default:
		return Pronouns{Subject: "they", Object: "them", Possessive: "their", Reflexive: "themselves"}
	}
}

// Plural reports whether verbs should agree with a plural subject
func (p Pronouns) Plural() bool {
	return p.Subject == "they"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (p Pronouns) replacer(extra ...string) *strings.Replacer {
	pairs := []string{
		"{Subject}", capitalize(p.Subject),
		"{subject}", p.Subject,
		"{object}", p.Object,
		"{possessive}", p.Possessive,
		"{reflexive}", p.Reflexive,
	}
	return strings.NewReplacer(append(pairs, extra...)...)
}
