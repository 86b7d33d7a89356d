package external

import (
	"regexp"
	"strings"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slug builds an index from a display name
func slug(s string) string {
	return strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func reference(item *entities.ReferenceItem) srd.Reference {
	if item == nil {
		return srd.Reference{}
	}
	index := item.Key
	if index == "" {
		index = slug(item.Name)
	}
	return srd.Reference{Index: index, Name: item.Name}
}

func references(items []*entities.ReferenceItem) []srd.Reference {
	if len(items) == 0 {
		return nil
	}
	out := make([]srd.Reference, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, reference(item))
		}
	}
	return out
}

func convertRace(race *entities.Race) srd.Entry {
	if race == nil {
		return nil
	}

	out := &srd.Race{
		Index:                      race.Key,
		Name:                       race.Name,
		Speed:                      race.Speed,
		Size:                       race.Size,
		SizeDescription:            race.SizeDescription,
		StartingProficiencies:      references(race.StartingProficiencies),
		StartingProficiencyOptions: convertChoice(race.StartingProficiencyOptions),
		Languages:                  references(race.Languages),
		LanguageOptions:            convertChoice(race.LanguageOptions),
		Traits:                     references(race.Traits),
		Subraces:                   references(race.SubRaces),
	}
	for _, bonus := range race.AbilityBonuses {
		if bonus.AbilityScore == nil {
			continue
		}
		out.AbilityBonuses = append(out.AbilityBonuses, srd.AbilityBonus{
			AbilityScore: reference(bonus.AbilityScore),
			Bonus:        bonus.Bonus,
		})
	}
	return out
}

func convertSpell(spell *entities.Spell) srd.Entry {
	if spell == nil {
		return nil
	}

	out := &srd.Spell{
		Index:         spell.Key,
		Name:          spell.Name,
		Level:         spell.SpellLevel,
		Range:         spell.Range,
		CastingTime:   spell.CastingTime,
		Duration:      spell.Duration,
		Ritual:        spell.Ritual,
		Concentration: spell.Concentration,
		Classes:       references(spell.SpellClasses),
	}
	if spell.SpellSchool != nil {
		out.School = reference(spell.SpellSchool)
	}
	if spell.SpellDamage != nil && spell.SpellDamage.SpellDamageType != nil {
		damageType := reference(spell.SpellDamage.SpellDamageType)
		out.Damage = &srd.SpellDamage{DamageType: &damageType}
	}
	return out
}

func convertEquipment(item dnd5e.EquipmentInterface) srd.Entry {
	switch eq := item.(type) {
	case *entities.Weapon:
		if eq == nil {
			return nil
		}
		out := &srd.Equipment{
			Index:             eq.Key,
			Name:              eq.Name,
			EquipmentCategory: category(eq.EquipmentCategory, "weapon", "Weapon"),
			WeaponCategory:    eq.WeaponCategory,
			WeaponRange:       eq.WeaponRange,
			CategoryRange:     strings.TrimSpace(eq.WeaponCategory + " " + eq.WeaponRange),
			Cost:              cost(eq.Cost),
			Weight:            float64(eq.Weight),
			Properties:        references(eq.Properties),
		}
		if eq.Damage != nil {
			out.Damage = &srd.Damage{DamageDice: eq.Damage.DamageDice}
			if eq.Damage.DamageType != nil {
				out.Damage.DamageType = reference(eq.Damage.DamageType)
			}
		}
		return out

	case *entities.Armor:
		if eq == nil {
			return nil
		}
		out := &srd.Equipment{
			Index:               eq.Key,
			Name:                eq.Name,
			EquipmentCategory:   category(eq.EquipmentCategory, "armor", "Armor"),
			ArmorCategory:       eq.ArmorCategory,
			Cost:                cost(eq.Cost),
			Weight:              float64(eq.Weight),
			StrMinimum:          eq.StrMinimum,
			StealthDisadvantage: eq.StealthDisadvantage,
		}
		if eq.ArmorClass != nil {
			out.ArmorClass = &srd.ArmorClass{Base: eq.ArmorClass.Base, DexBonus: eq.ArmorClass.DexBonus}
			// the API does not carry the cap; medium armor always allows +2
			if strings.EqualFold(eq.ArmorCategory, "medium") {
				out.ArmorClass.MaxBonus = 2
			}
		}
		return out

	case *entities.Equipment:
		if eq == nil {
			return nil
		}
		return &srd.Equipment{
			Index:             eq.Key,
			Name:              eq.Name,
			EquipmentCategory: category(eq.EquipmentCategory, "adventuring-gear", "Adventuring Gear"),
			Cost:              cost(eq.Cost),
			Weight:            float64(eq.Weight),
		}
	}
	return nil
}

func category(item *entities.ReferenceItem, index, name string) srd.Reference {
	if item == nil {
		return srd.Reference{Index: index, Name: name}
	}
	return reference(item)
}

func cost(c *entities.Cost) srd.Cost {
	if c == nil {
		return srd.Cost{}
	}
	return srd.Cost{Quantity: c.Quantity, Unit: c.Unit}
}

// convertChoice maps an API option block onto the dataset's choice shape
func convertChoice(choice *entities.ChoiceOption) *srd.Choice {
	if choice == nil {
		return nil
	}

	out := &srd.Choice{
		Desc:   choice.Description,
		Choose: choice.ChoiceCount,
		Type:   choice.ChoiceType,
		From:   srd.OptionSet{OptionSetType: srd.OptionSetOptionsArray},
	}
	if choice.OptionList != nil {
		for _, option := range choice.OptionList.Options {
			if opt, ok := convertOption(option); ok {
				out.From.Options = append(out.From.Options, opt)
			}
		}
	}
	return out
}

func convertOption(option entities.Option) (srd.Option, bool) {
	switch opt := option.(type) {
	case *entities.ReferenceOption:
		if opt.Reference == nil {
			return srd.Option{}, false
		}
		item := reference(opt.Reference)
		return srd.Option{OptionType: srd.OptionTypeReference, Item: &item}, true

	case *entities.CountedReferenceOption:
		if opt.Reference == nil {
			return srd.Option{}, false
		}
		of := reference(opt.Reference)
		return srd.Option{OptionType: srd.OptionTypeCountedReference, Count: opt.Count, Of: &of}, true

	case *entities.MultipleOption:
		out := srd.Option{OptionType: srd.OptionTypeMultiple}
		for _, item := range opt.Items {
			if nested, ok := convertOption(item); ok {
				out.Items = append(out.Items, nested)
			}
		}
		return out, len(out.Items) > 0

	case *entities.ChoiceOption:
		nested := convertChoice(opt)
		return srd.Option{OptionType: srd.OptionTypeChoice, Choice: nested}, true
	}
	return srd.Option{}, false
}
