package builder

import (
	"strings"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	"github.com/KirkDiggler/rpg-charbuilder/internal/registry"
)

// apply validates value for field against opts and writes it to d, locking
// the field. A nil value clears the field and its lock.
func (o *Orchestrator) apply(d *character.Draft, opts *registry.Options, field character.Field, value any) error {
	if value == nil {
		clearField(d, field)
		d.Unlock(field)
		return nil
	}

	invalid := func(format string, args ...any) *errors.Error {
		return errors.InvalidSelectionf(format, args...).WithMeta("field", string(field))
	}

	switch field {
	case character.FieldName, character.FieldHometown, character.FieldBiography, character.FieldNotes:
		s, ok := value.(string)
		if !ok {
			return wrongType(field, value, "string")
		}
		s = strings.TrimSpace(s)
		switch field {
		case character.FieldName:
			d.Name = s
		case character.FieldHometown:
			d.Hometown = s
		case character.FieldBiography:
			d.Biography = s
		case character.FieldNotes:
			d.Notes = s
		}

	case character.FieldRace, character.FieldSubrace, character.FieldClass, character.FieldSubclass,
		character.FieldBackground, character.FieldAlignment, character.FieldGender:
		s, ok := value.(string)
		if !ok {
			return wrongType(field, value, "string")
		}
		s = strings.ToLower(strings.TrimSpace(s))
		if !opts.Allows(field, s) {
			return invalid("%q is not a legal %s", s, field).WithMeta("options", opts.For(field))
		}
		setChoice(d, field, s)

	case character.FieldLevel:
		n, ok := value.(int)
		if !ok {
			return wrongType(field, value, "int")
		}
		if n < 1 || n > character.MaxLevel {
			return invalid("level must be between 1 and %d, got %d", character.MaxLevel, n)
		}
		d.Level = n

	case character.FieldAbilities:
		scores, ok := value.(map[character.Ability]int)
		if !ok {
			return wrongType(field, value, "map[character.Ability]int")
		}
		normalized := make(map[character.Ability]int, len(scores))
		for a, v := range scores {
			ability, known := character.ParseAbility(string(a))
			if !known {
				return invalid("unknown ability %q", a)
			}
			if v < o.tuning.AbilityMin || v > o.tuning.AbilityMax {
				return invalid("%s must be between %d and %d, got %d", ability.Upper(), o.tuning.AbilityMin, o.tuning.AbilityMax, v)
			}
			normalized[ability] = v
		}
		for a, v := range normalized {
			d.SetAbilityScore(a, v)
		}

	case character.FieldSkills, character.FieldExpertise, character.FieldLanguages,
		character.FieldTools, character.FieldFeats:
		values, ok := value.([]string)
		if !ok {
			return wrongType(field, value, "[]string")
		}
		values = character.SortedSet(lowerAll(values))
		for _, v := range values {
			if !opts.Allows(field, v) {
				return invalid("%q is not a legal choice for %s", v, field).WithMeta("options", opts.For(field))
			}
		}
		if limit := opts.Limit(field); limit >= 0 && len(values) > limit {
			return invalid("%s allows %d choices, got %d", field, limit, len(values)).WithMeta("limit", limit)
		}
		setList(d, field, values)

	case character.FieldSpells:
		spells, ok := value.(map[string]character.SpellSelection)
		if !ok {
			return wrongType(field, value, "map[string]character.SpellSelection")
		}
		next := make(map[string]character.SpellSelection, len(spells))
		for idx, sel := range spells {
			idx = strings.ToLower(strings.TrimSpace(idx))
			if !opts.Allows(field, idx) {
				return invalid("%q is not a legal spell for this class and level", idx)
			}
			sel.Known = true
			next[idx] = sel
		}
		d.Spells = next

	case character.FieldEquipment:
		items, ok := value.([]character.Item)
		if !ok {
			return wrongType(field, value, "[]character.Item")
		}
		d.Inventory = nil
		for _, item := range items {
			if !opts.Allows(field, item.Index) {
				return invalid("unknown equipment %q", item.Index)
			}
			if item.Quantity < 1 {
				return invalid("quantity of %s must be at least 1", item.Index)
			}
			if item.MagicBonus < 0 || item.MagicBonus > character.MaxMagicBonus {
				return invalid("magic bonus of %s must be between 0 and %d", item.Index, character.MaxMagicBonus)
			}
			d.AddItem(item)
		}

	case character.FieldCurrency:
		c, ok := value.(character.Currency)
		if !ok {
			return wrongType(field, value, "character.Currency")
		}
		if c.PP < 0 || c.GP < 0 || c.EP < 0 || c.SP < 0 || c.CP < 0 {
			return invalid("coin counts must not be negative")
		}
		d.Currency = c

	default:
		return errors.InvalidArgumentf("field %q cannot be set", field)
	}

	d.Lock(field)
	return nil
}

func wrongType(field character.Field, value any, want string) error {
	return errors.InvalidArgumentf("%s expects %s, got %T", field, want, value).WithMeta("field", string(field))
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}

func setChoice(d *character.Draft, field character.Field, s string) {
	switch field {
	case character.FieldRace:
		d.Race = s
	case character.FieldSubrace:
		d.Subrace = s
	case character.FieldClass:
		d.Class = s
	case character.FieldSubclass:
		d.Subclass = s
	case character.FieldBackground:
		d.Background = s
	case character.FieldAlignment:
		d.Alignment = s
	case character.FieldGender:
		d.Gender = s
	}
}

func setList(d *character.Draft, field character.Field, values []string) {
	switch field {
	case character.FieldSkills:
		d.Skills = values
	case character.FieldExpertise:
		d.Expertise = values
	case character.FieldLanguages:
		d.Languages = values
	case character.FieldTools:
		d.Tools = values
	case character.FieldFeats:
		d.Feats = values
	}
}

func clearField(d *character.Draft, field character.Field) {
	switch field {
	case character.FieldName:
		d.Name = ""
	case character.FieldLevel:
		d.Level = 0
	case character.FieldHometown:
		d.Hometown = ""
	case character.FieldBiography:
		d.Biography = ""
	case character.FieldNotes:
		d.Notes = ""
	case character.FieldAbilities:
		d.AbilityScores = nil
	case character.FieldSpells:
		d.Spells = nil
	case character.FieldEquipment:
		d.Inventory = nil
	case character.FieldCurrency:
		d.Currency = character.Currency{}
	case character.FieldSkills, character.FieldExpertise, character.FieldLanguages,
		character.FieldTools, character.FieldFeats:
		setList(d, field, nil)
	default:
		setChoice(d, field, "")
	}
}
