package builder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
)

var (
	itemPattern  = regexp.MustCompile(`^([a-z0-9-]+)(?:\+(\d+))?(?:\*(\d+))?(!)?$`)
	coinPattern  = regexp.MustCompile(`^(\d+)\s*(pp|gp|ep|sp|cp)$`)
	scorePattern = regexp.MustCompile(`^([a-z]+)\s*=\s*(-?\d+)$`)
)

// ParseValue converts a CLI string into the value type Set expects for the
// field. Formats:
//
//	level      5
//	abilities  "15,14,13,12,10,8" in STR..CHA order, or "str=15,int=16"
//	skills     "arcana,history" (also expertise, languages, tools, feats)
//	spells     "fire-bolt,magic-missile:prepared"
//	equipment  "longsword+1!,arrow*20" (+bonus, *quantity, ! equipped)
//	currency   "42gp,7sp"
//
// Other fields take the string as is. An empty string clears the field.
func ParseValue(field character.Field, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	switch field {
	case character.FieldLevel:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.InvalidArgumentf("level must be a number, got %q", raw).WithMeta("field", string(field))
		}
		return n, nil

	case character.FieldAbilities:
		return parseAbilities(raw)

	case character.FieldSkills, character.FieldExpertise, character.FieldLanguages,
		character.FieldTools, character.FieldFeats:
		return splitList(raw), nil

	case character.FieldSpells:
		out := map[string]character.SpellSelection{}
		for _, entry := range splitList(raw) {
			index, mode, _ := strings.Cut(entry, ":")
			sel := character.SpellSelection{Known: true}
			switch mode {
			case "":
			case "prepared":
				sel.Prepared = true
			default:
				return nil, errors.InvalidArgumentf("unknown spell mode %q", mode).WithMeta("field", string(field))
			}
			out[index] = sel
		}
		return out, nil

	case character.FieldEquipment:
		var items []character.Item
		for _, entry := range splitList(raw) {
			m := itemPattern.FindStringSubmatch(entry)
			if m == nil {
				return nil, errors.InvalidArgumentf("cannot parse item %q", entry).WithMeta("field", string(field))
			}
			item := character.Item{Index: m[1], Quantity: 1, Equipped: m[4] != ""}
			if m[2] != "" {
				item.MagicBonus, _ = strconv.Atoi(m[2])
			}
			if m[3] != "" {
				item.Quantity, _ = strconv.Atoi(m[3])
			}
			items = append(items, item)
		}
		return items, nil

	case character.FieldCurrency:
		var c character.Currency
		for _, entry := range splitList(raw) {
			m := coinPattern.FindStringSubmatch(entry)
			if m == nil {
				return nil, errors.InvalidArgumentf("cannot parse coins %q", entry).WithMeta("field", string(field))
			}
			n, _ := strconv.Atoi(m[1])
			switch m[2] {
			case "pp":
				c.PP += n
			case "gp":
				c.GP += n
			case "ep":
				c.EP += n
			case "sp":
				c.SP += n
			case "cp":
				c.CP += n
			}
		}
		return c, nil
	}

	return raw, nil
}

func parseAbilities(raw string) (map[character.Ability]int, error) {
	parts := splitList(raw)
	out := make(map[character.Ability]int, len(parts))

	if len(parts) == len(character.Abilities()) && !strings.Contains(raw, "=") {
		for i, a := range character.Abilities() {
			n, err := strconv.Atoi(parts[i])
			if err != nil {
				return nil, errors.InvalidArgumentf("ability score must be a number, got %q", parts[i])
			}
			out[a] = n
		}
		return out, nil
	}

	for _, p := range parts {
		m := scorePattern.FindStringSubmatch(p)
		if m == nil {
			return nil, errors.InvalidArgumentf("cannot parse ability score %q", p)
		}
		a, ok := character.ParseAbility(m[1])
		if !ok {
			return nil, errors.InvalidArgumentf("unknown ability %q", m[1])
		}
		out[a], _ = strconv.Atoi(m[2])
	}
	return out, nil
}

// splitList splits on commas, lowercases, trims, and drops empties
func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FormatValue renders a field of the draft the way ParseValue reads it
func FormatValue(d *character.Draft, field character.Field) string {
	switch field {
	case character.FieldName:
		return d.Name
	case character.FieldLevel:
		if d.Level == 0 {
			return ""
		}
		return strconv.Itoa(d.Level)
	case character.FieldRace:
		return d.Race
	case character.FieldSubrace:
		return d.Subrace
	case character.FieldClass:
		return d.Class
	case character.FieldSubclass:
		return d.Subclass
	case character.FieldBackground:
		return d.Background
	case character.FieldAlignment:
		return d.Alignment
	case character.FieldGender:
		return d.Gender
	case character.FieldHometown:
		return d.Hometown
	case character.FieldBiography:
		return d.Biography
	case character.FieldNotes:
		return d.Notes
	case character.FieldAbilities:
		var parts []string
		for _, a := range character.Abilities() {
			if v, ok := d.AbilityScores[a]; ok {
				parts = append(parts, fmt.Sprintf("%s=%d", a, v))
			}
		}
		return strings.Join(parts, ",")
	case character.FieldSkills:
		return strings.Join(d.Skills, ",")
	case character.FieldExpertise:
		return strings.Join(d.Expertise, ",")
	case character.FieldLanguages:
		return strings.Join(d.Languages, ",")
	case character.FieldTools:
		return strings.Join(d.Tools, ",")
	case character.FieldFeats:
		return strings.Join(d.Feats, ",")
	case character.FieldSpells:
		var parts []string
		for _, idx := range d.SpellIndexes() {
			if d.Spells[idx].Prepared {
				idx += ":prepared"
			}
			parts = append(parts, idx)
		}
		return strings.Join(parts, ",")
	case character.FieldEquipment:
		var parts []string
		for _, item := range d.Inventory {
			s := item.Index
			if item.MagicBonus > 0 {
				s += "+" + strconv.Itoa(item.MagicBonus)
			}
			if item.Quantity > 1 {
				s += "*" + strconv.Itoa(item.Quantity)
			}
			if item.Equipped {
				s += "!"
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ",")
	case character.FieldCurrency:
		var parts []string
		for _, c := range []struct {
			n    int
			unit string
		}{{d.Currency.PP, "pp"}, {d.Currency.GP, "gp"}, {d.Currency.EP, "ep"}, {d.Currency.SP, "sp"}, {d.Currency.CP, "cp"}} {
			if c.n > 0 {
				parts = append(parts, strconv.Itoa(c.n)+c.unit)
			}
		}
		return strings.Join(parts, ",")
	}
	return ""
}
