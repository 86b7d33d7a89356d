package actor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
)

// SkillKeys maps skill indexes to the three letter dnd5e keys
var SkillKeys = map[string]string{
	"acrobatics":      "acr",
	"animal-handling": "ani",
	"arcana":          "arc",
	"athletics":       "ath",
	"deception":       "dec",
	"history":         "his",
	"insight":         "ins",
	"intimidation":    "itm",
	"investigation":   "inv",
	"medicine":        "med",
	"nature":          "nat",
	"perception":      "prc",
	"performance":     "prf",
	"persuasion":      "per",
	"religion":        "rel",
	"sleight-of-hand": "slt",
	"stealth":         "ste",
	"survival":        "sur",
}

var sizeKeys = map[string]string{
	"tiny":       "tiny",
	"small":      "sm",
	"medium":     "med",
	"large":      "lg",
	"huge":       "huge",
	"gargantuan": "grg",
}

// SizeKey maps an SRD size to the dnd5e size key, medium when unknown
func SizeKey(size string) string {
	if k, ok := sizeKeys[strings.ToLower(strings.TrimSpace(size))]; ok {
		return k
	}
	return "med"
}

var (
	leadingNumber = regexp.MustCompile(`^(\d+)\s*(.*)$`)
	anyNumber     = regexp.MustCompile(`(\d+)`)
)

// activation units matched by prefix, longest first
var activationUnits = []struct {
	prefix string
	unit   string
}{
	{"bonus action", "bonus"},
	{"bonus", "bonus"},
	{"action", "action"},
	{"reaction", "reaction"},
	{"minute", "minute"},
	{"hour", "hour"},
	{"round", "round"},
	{"turn", "turn"},
	{"day", "day"},
}

func parseActivation(text string) map[string]any {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return map[string]any{"type": "action", "value": 1, "condition": "", "override": false}
	}

	main, condition, _ := strings.Cut(raw, ",")
	main = strings.ToLower(strings.TrimSpace(main))
	condition = strings.TrimSpace(condition)

	cost := 1
	unit := main
	if m := leadingNumber.FindStringSubmatch(main); m != nil {
		cost, _ = strconv.Atoi(m[1])
		unit = strings.TrimSpace(m[2])
	}

	kind := "special"
	for _, u := range activationUnits {
		if strings.HasPrefix(unit, u.prefix) {
			kind = u.unit
			break
		}
	}
	return map[string]any{"type": kind, "value": cost, "condition": condition, "override": false}
}

func parseRange(text string) map[string]any {
	out := func(units, value string) map[string]any {
		return map[string]any{"units": units, "value": value, "override": false}
	}

	cleaned := strings.TrimSpace(text)
	lower := strings.ToLower(cleaned)
	switch {
	case lower == "":
		return out("self", "")
	case strings.HasPrefix(lower, "self"):
		return out("self", "")
	case strings.HasPrefix(lower, "touch"):
		return out("touch", "")
	case strings.Contains(lower, "unlimited"):
		return out("any", "")
	case strings.Contains(lower, "sight"):
		return out("spec", "sight")
	}

	number := anyNumber.FindString(lower)
	switch {
	case strings.Contains(lower, "mile"):
		return out("mi", orDefault(number, "1"))
	case strings.Contains(lower, "foot"), strings.Contains(lower, "feet"):
		return out("ft", orDefault(number, "0"))
	case strings.Contains(lower, "yard"):
		n, err := strconv.Atoi(number)
		if err != nil {
			return out("ft", orDefault(number, "0"))
		}
		return out("ft", strconv.Itoa(n*3))
	case lower == "special":
		return out("spec", "")
	}
	return out("spec", cleaned)
}

func parseDuration(text string) map[string]any {
	out := func(value, units string) map[string]any {
		return map[string]any{"value": value, "units": units, "override": false}
	}

	cleaned := strings.TrimSpace(text)
	lower := strings.ToLower(cleaned)
	switch {
	case lower == "", strings.Contains(lower, "instant"):
		return out("0", "inst")
	case strings.Contains(lower, "permanent"):
		return out("", "perm")
	case strings.Contains(lower, "until dispelled"), strings.Contains(lower, "special"):
		return out("", "spec")
	}

	number := orDefault(anyNumber.FindString(lower), "1")
	for _, unit := range []string{"hour", "minute", "round", "turn", "day"} {
		if strings.Contains(lower, unit) {
			return out(number, unit)
		}
	}
	return out(cleaned, "spec")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// weaponType returns simpleM, simpleR, martialM or martialR
func weaponType(e *srd.Equipment) string {
	prefix := "simple"
	if strings.EqualFold(e.WeaponCategory, "martial") {
		prefix = "martial"
	}
	if strings.EqualFold(e.WeaponRange, "melee") {
		return prefix + "M"
	}
	return prefix + "R"
}

func weaponAbility(e *srd.Equipment) string {
	if e.HasProperty("finesse") || strings.EqualFold(e.WeaponRange, "ranged") {
		return "dex"
	}
	return "str"
}

func attackType(e *srd.Equipment) string {
	if strings.EqualFold(e.WeaponRange, "melee") {
		return "mwak"
	}
	return "rwak"
}

func spellActivityType(s *srd.Spell) string {
	switch {
	case s.AttackType != "":
		return "attack"
	case s.Damage != nil:
		return "damage"
	}
	return "utility"
}

func spellProgression(p string) string {
	if p == "" {
		return "none"
	}
	return p
}

// paragraphs wraps each non-empty line in <p> tags
func paragraphs(lines ...string) string {
	var b strings.Builder
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(line)
		b.WriteString("</p>")
	}
	return b.String()
}
