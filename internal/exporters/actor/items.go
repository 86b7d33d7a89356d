package actor

import (
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-charbuilder/internal/engine"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
)

// Item types
const (
	ItemClass      = "class"
	ItemSubclass   = "subclass"
	ItemRace       = "race"
	ItemBackground = "background"
	ItemFeat       = "feat"
	ItemSpell      = "spell"
	ItemWeapon     = "weapon"
	ItemEquipment  = "equipment"
	ItemLoot       = "loot"
)

// MagicProperty marks an item as magical
const MagicProperty = "mgc"

const (
	imgBook   = "icons/svg/book.svg"
	imgSpell  = "icons/magic/arcane/bolt-spiral-blue.webp"
	imgWeapon = "systems/dnd5e/icons/svg/items/sword.svg"
	imgArmor  = "systems/dnd5e/icons/svg/items/armor.svg"
	imgLoot   = "systems/dnd5e/icons/svg/items/loot.svg"
)

func (b *builder) item(sourceIndex, name, itemType, img string, system map[string]any) Item {
	return Item{
		ID:      b.idGen.Generate(),
		Name:    name,
		Type:    itemType,
		Img:     img,
		System:  system,
		Effects: []any{},
		Flags: map[string]any{
			FlagScope: map[string]any{"sourceIndex": sourceIndex},
		},
	}
}

func source(custom string) map[string]any {
	return map[string]any{"book": "SRD 5.1", "page": "", "custom": custom}
}

func description(lines ...string) map[string]any {
	return map[string]any{"value": paragraphs(lines...)}
}

// items lists class, subclass, race, subrace and background items, then
// granted features, spells and equipment
func (b *builder) items() []Item {
	var out []Item
	d := b.draft

	if class, ok := b.reg.Class(d.Class); ok {
		out = append(out, b.classItem(class))
	}
	if sub, ok := b.reg.Subclass(d.Subclass); ok {
		out = append(out, b.item(sub.Index, sub.Name, ItemSubclass, imgBook, map[string]any{
			"description":     description(sub.Desc...),
			"identifier":      sub.Index,
			"classIdentifier": sub.Class.Key(),
			"source":          source(""),
		}))
	}
	if race, ok := b.reg.Race(d.Race); ok {
		out = append(out, b.item(race.Index, race.Name, ItemRace, imgBook, map[string]any{
			"description": description(race.Alignment, race.Age, race.SizeDescription, race.LanguageDesc),
			"identifier":  race.Index,
			"source":      source(""),
		}))
	}
	if sub, ok := b.reg.Subrace(d.Subrace); ok {
		out = append(out, b.item(sub.Index, sub.Name, ItemRace, imgBook, map[string]any{
			"description": description(sub.Desc),
			"identifier":  sub.Index,
			"source":      source(b.reg.DisplayName(srd.CategoryRace, sub.Race.Key())),
		}))
	}
	if bg, ok := b.reg.Background(d.Background); ok {
		var desc []string
		if bg.Feature != nil {
			desc = bg.Feature.Desc
		}
		out = append(out, b.item(bg.Index, bg.Name, ItemBackground, imgBook, map[string]any{
			"description": description(desc...),
			"identifier":  bg.Index,
			"source":      source(""),
		}))
	}

	for _, f := range b.snap.Features {
		out = append(out, b.featureItem(f))
	}
	out = append(out, b.spellItems()...)
	out = append(out, b.equipmentItems()...)
	return out
}

func (b *builder) classItem(class *srd.Class) Item {
	hitDie := ""
	if class.HitDie > 0 {
		hitDie = "d" + strconv.Itoa(class.HitDie)
	}
	spellcasting := map[string]any{
		"ability":     "",
		"progression": "none",
		"preparation": map[string]any{"formula": ""},
	}
	if sc := b.snap.Spellcasting; sc != nil {
		spellcasting["ability"] = string(sc.Ability)
		spellcasting["progression"] = spellProgression(sc.Progression)
	}

	system := map[string]any{
		"description":  description(),
		"identifier":   class.Index,
		"levels":       b.snap.Level,
		"hd":           map[string]any{"denomination": hitDie, "additional": "", "spent": 0},
		"source":       source(""),
		"spellcasting": spellcasting,
	}
	if b.draft.Subclass != "" {
		system["subclass"] = b.draft.Subclass
	}
	return b.item(class.Index, class.Name, ItemClass, imgBook, system)
}

// featureTypes maps feature sources to the dnd5e feat type
var featureTypes = map[string]string{
	engine.SourceRace:       "race",
	engine.SourceSubrace:    "race",
	engine.SourceClass:      "class",
	engine.SourceSubclass:   "class",
	engine.SourceBackground: "background",
	engine.SourceFeat:       "feat",
}

func (b *builder) featureItem(f engine.Feature) Item {
	text := f.Text
	if len(text) == 0 && f.Desc != "" {
		text = []string{f.Desc}
	}
	custom := f.Source
	if f.Level > 0 {
		custom = f.Source + " " + strconv.Itoa(f.Level)
	}
	return b.item(f.Index, f.Name, ItemFeat, imgBook, map[string]any{
		"description": description(text...),
		"type":        map[string]any{"value": featureTypes[f.Source]},
		"source":      source(custom),
	})
}

func (b *builder) spellItems() []Item {
	indexes := make([]string, 0, len(b.draft.Spells))
	for idx, sel := range b.draft.Spells {
		if sel.Known || sel.Prepared {
			indexes = append(indexes, idx)
		}
	}
	sort.Strings(indexes)

	var out []Item
	for _, idx := range indexes {
		spell, ok := b.reg.Spell(idx)
		if !ok {
			continue
		}
		out = append(out, b.spellItem(spell, b.draft.Spells[idx].Prepared))
	}
	return out
}

func (b *builder) spellItem(spell *srd.Spell, prepared bool) Item {
	components := map[string]bool{}
	for _, c := range spell.Components {
		components[strings.ToLower(c)] = true
	}
	var props []string
	for _, p := range []struct {
		on   bool
		name string
	}{
		{components["v"], "verbal"},
		{components["s"], "somatic"},
		{components["m"], "material"},
		{spell.Concentration, "concentration"},
		{spell.Ritual, "ritual"},
	} {
		if p.on {
			props = append(props, p.name)
		}
	}
	if props == nil {
		props = []string{}
	}

	classes := make([]string, 0, len(spell.Classes))
	for _, ref := range spell.Classes {
		classes = append(classes, ref.Key())
	}

	mode := "known"
	if prepared {
		mode = "prepared"
	}

	activation := parseActivation(spell.CastingTime)
	duration := parseDuration(spell.Duration)
	spellRange := parseRange(spell.Range)

	activityID := b.idGen.Generate()
	activity := map[string]any{
		"_id":        activityID,
		"type":       spellActivityType(spell),
		"sort":       0,
		"activation": activation,
		"consumption": map[string]any{
			"targets":   []any{},
			"spellSlot": spell.Level > 0,
			"scaling":   map[string]any{"allowed": false, "max": ""},
		},
		"duration": map[string]any{
			"units":         duration["units"],
			"value":         duration["value"],
			"concentration": spell.Concentration,
			"override":      false,
		},
		"effects": []any{},
		"range":   spellRange,
		"uses":    map[string]any{"spent": 0, "recovery": []any{}},
	}

	system := map[string]any{
		"description": description(append(append([]string{}, spell.Desc...), spell.HigherLevel...)...),
		"identifier":  spell.Index,
		"level":       spell.Level,
		"school":      spell.School.Key(),
		"activation":  activation,
		"range":       spellRange,
		"duration":    duration,
		"source":      source(""),
		"activities":  map[string]any{activityID: activity},
		"components": map[string]any{
			"v":             components["v"],
			"s":             components["s"],
			"m":             components["m"],
			"ritual":        spell.Ritual,
			"concentration": spell.Concentration,
			"material":      spell.Material,
		},
		"materials": map[string]any{
			"value":    spell.Material,
			"consumed": false,
			"cost":     0,
			"supply":   0,
		},
		"properties":  props,
		"method":      "spell",
		"prepared":    prepared,
		"preparation": map[string]any{"mode": mode, "prepared": prepared},
		"uses":        map[string]any{"spent": 0, "max": "", "recovery": []any{}},
		"sourceClass": classes,
	}
	return b.item(spell.Index, spell.Name, ItemSpell, imgSpell, system)
}

func (b *builder) equipmentItems() []Item {
	var out []Item
	for _, line := range b.draft.Inventory {
		if line.Quantity <= 0 {
			continue
		}
		entry, ok := b.reg.Equipment(line.Index)
		if !ok {
			// Derive already rejects unknown equipment
			continue
		}
		switch {
		case entry.IsWeapon() && entry.Damage != nil:
			out = append(out, b.weaponItem(line, entry))
		case entry.IsArmor() && entry.ArmorClass != nil:
			out = append(out, b.armorItem(line, entry))
		default:
			out = append(out, b.lootItem(line, entry))
		}
	}
	return out
}

func magicName(name string, bonus int) string {
	if bonus > 0 {
		return name + " +" + strconv.Itoa(bonus)
	}
	return name
}

func price(e *srd.Equipment) map[string]any {
	unit := e.Cost.Unit
	if unit == "" {
		unit = "gp"
	}
	return map[string]any{"value": e.Cost.Quantity, "denomination": unit}
}

func (b *builder) weaponItem(line character.Item, e *srd.Equipment) Item {
	var parts [][]string
	if e.Damage != nil && e.Damage.DamageDice != "" && e.Damage.DamageType.Key() != "" {
		parts = append(parts, []string{e.Damage.DamageDice, e.Damage.DamageType.Key()})
	}
	if parts == nil {
		parts = [][]string{}
	}
	versatile := ""
	if e.TwoHandedDamage != nil {
		versatile = e.TwoHandedDamage.DamageDice
	}

	normal, long := 5, ""
	if e.Range != nil {
		if e.Range.Normal > 0 {
			normal = e.Range.Normal
		}
		if e.Range.Long > 0 {
			long = strconv.Itoa(e.Range.Long)
		}
	}

	props := []string{}
	seen := map[string]bool{}
	for _, p := range e.Properties {
		if k := p.Key(); k != "" && !seen[k] {
			seen[k] = true
			props = append(props, k)
		}
	}

	system := map[string]any{
		"description": description(e.Desc...),
		"identifier":  e.Index,
		"quantity":    line.Quantity,
		"weight":      map[string]any{"value": e.Weight, "units": "lb"},
		"price":       price(e),
		"equipped":    line.Equipped,
		"attunement":  "none",
		"attuned":     false,
		"container":   nil,
		"activation":  map[string]any{"type": "action", "value": 1, "condition": ""},
		"range": map[string]any{
			"value": strconv.Itoa(normal),
			"long":  long,
			"units": "ft",
		},
		"damage":     map[string]any{"parts": parts, "versatile": versatile},
		"properties": props,
		"proficient": nil,
		"ability":    weaponAbility(e),
		"attackType": attackType(e),
		"type":       map[string]any{"value": weaponType(e), "baseItem": e.Index},
	}
	if line.MagicBonus > 0 {
		bonus := strconv.Itoa(line.MagicBonus)
		system["bonuses"] = map[string]any{"attack": bonus, "damage": bonus}
		if !seen[MagicProperty] {
			system["properties"] = append(props, MagicProperty)
		}
	}
	return b.item(e.Index, magicName(e.Name, line.MagicBonus), ItemWeapon, imgWeapon, system)
}

func (b *builder) armorItem(line character.Item, e *srd.Equipment) Item {
	armorType := strings.ToLower(e.ArmorCategory)
	dex := 0
	if e.ArmorClass.DexBonus {
		dex = e.ArmorClass.MaxBonus
	}
	stealth := ""
	if e.StealthDisadvantage {
		stealth = "disadvantage"
	}

	system := map[string]any{
		"description": description(e.Desc...),
		"identifier":  e.Index,
		"quantity":    line.Quantity,
		"weight":      map[string]any{"value": e.Weight, "units": "lb"},
		"price":       price(e),
		"equipped":    line.Equipped,
		"attunement":  "none",
		"attuned":     false,
		"container":   nil,
		"armor": map[string]any{
			"value": e.ArmorClass.Base + line.MagicBonus,
			"dex":   dex,
		},
		"type":       map[string]any{"value": armorType, "baseItem": e.Index},
		"strength":   e.StrMinimum,
		"stealth":    stealth,
		"properties": []string{},
	}
	if line.MagicBonus > 0 {
		system["bonuses"] = map[string]any{"ac": strconv.Itoa(line.MagicBonus)}
		system["properties"] = []string{MagicProperty}
	}
	return b.item(e.Index, magicName(e.Name, line.MagicBonus), ItemEquipment, imgArmor, system)
}

func (b *builder) lootItem(line character.Item, e *srd.Equipment) Item {
	system := map[string]any{
		"description":  description(e.Desc...),
		"identifier":   line.Index,
		"quantity":     line.Quantity,
		"weight":       map[string]any{"value": e.Weight, "units": "lb"},
		"price":        price(e),
		"type":         map[string]any{"value": e.EquipmentCategory.Name, "subtype": ""},
		"identified":   true,
		"unidentified": map[string]any{"description": ""},
		"container":    nil,
		"properties":   []string{},
	}
	if line.MagicBonus > 0 {
		system["properties"] = []string{MagicProperty}
	}
	return b.item(line.Index, magicName(e.Name, line.MagicBonus), ItemLoot, imgLoot, system)
}
