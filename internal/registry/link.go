package registry

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
)

var builtinAlignments = []srd.Alignment{
	{Index: "lawful-good", Name: "Lawful Good", Abbreviation: "LG"},
	{Index: "neutral-good", Name: "Neutral Good", Abbreviation: "NG"},
	{Index: "chaotic-good", Name: "Chaotic Good", Abbreviation: "CG"},
	{Index: "lawful-neutral", Name: "Lawful Neutral", Abbreviation: "LN"},
	{Index: "neutral", Name: "Neutral", Abbreviation: "N"},
	{Index: "chaotic-neutral", Name: "Chaotic Neutral", Abbreviation: "CN"},
	{Index: "lawful-evil", Name: "Lawful Evil", Abbreviation: "LE"},
	{Index: "neutral-evil", Name: "Neutral Evil", Abbreviation: "NE"},
	{Index: "chaotic-evil", Name: "Chaotic Evil", Abbreviation: "CE"},
}

// addBuiltins fills the small fixed categories when a source omits them
func (r *Registry) addBuiltins() {
	if len(r.entries[srd.CategoryAlignment]) == 0 {
		for i := range builtinAlignments {
			a := builtinAlignments[i]
			r.add(srd.CategoryAlignment, &a)
		}
	}
	if len(r.entries[srd.CategorySkill]) == 0 {
		title := cases.Title(language.English)
		for _, idx := range character.Skills() {
			r.add(srd.CategorySkill, &srd.Skill{
				Index:        idx,
				Name:         title.String(hyphensToSpaces(idx)),
				AbilityScore: srd.Reference{Index: string(character.SkillAbilities[idx])},
			})
		}
	}
}

// link drops records whose parent is missing, then prunes dangling
// references out of the surviving records.
func (r *Registry) link() {
	for _, e := range r.sorted(srd.CategorySubrace) {
		sub := e.(*srd.Subrace)
		if !r.has(srd.CategoryRace, sub.Race.Key()) {
			r.drop(srd.CategorySubrace, sub.Index, "unknown race "+sub.Race.Key())
		}
	}
	for _, e := range r.sorted(srd.CategorySubclass) {
		sub := e.(*srd.Subclass)
		if !r.has(srd.CategoryClass, sub.Class.Key()) {
			r.drop(srd.CategorySubclass, sub.Index, "unknown class "+sub.Class.Key())
		}
	}
	for _, e := range r.sorted(srd.CategoryLevel) {
		lvl := e.(*srd.Level)
		switch {
		case !r.has(srd.CategoryClass, lvl.Class.Key()):
			r.drop(srd.CategoryLevel, lvl.Index, "unknown class "+lvl.Class.Key())
		case lvl.Subclass != nil && !r.has(srd.CategorySubclass, lvl.Subclass.Key()):
			r.drop(srd.CategoryLevel, lvl.Index, "unknown subclass "+lvl.Subclass.Key())
		case lvl.Level < 1 || lvl.Level > character.MaxLevel:
			r.drop(srd.CategoryLevel, lvl.Index, "level out of range")
		}
	}
	for _, e := range r.sorted(srd.CategoryFeature) {
		f := e.(*srd.Feature)
		switch {
		case !r.has(srd.CategoryClass, f.Class.Key()):
			r.drop(srd.CategoryFeature, f.Index, "unknown class "+f.Class.Key())
		case f.Subclass != nil && f.Subclass.Key() != "" && !r.has(srd.CategorySubclass, f.Subclass.Key()):
			r.drop(srd.CategoryFeature, f.Index, "unknown subclass "+f.Subclass.Key())
		}
	}

	// Reference lists are rebuilt, never edited in place.
	for _, e := range r.sorted(srd.CategoryRace) {
		race := *e.(*srd.Race)
		race.Subraces = r.keep(srd.CategorySubrace, race.Subraces)
		race.Traits = r.keep(srd.CategoryTrait, race.Traits)
		r.add(srd.CategoryRace, &race)
	}
	for _, e := range r.sorted(srd.CategorySubrace) {
		sub := *e.(*srd.Subrace)
		sub.RacialTraits = r.keep(srd.CategoryTrait, sub.RacialTraits)
		r.add(srd.CategorySubrace, &sub)
	}
	for _, e := range r.sorted(srd.CategoryClass) {
		class := *e.(*srd.Class)
		class.Subclasses = r.keep(srd.CategorySubclass, class.Subclasses)
		r.add(srd.CategoryClass, &class)
	}
	for _, e := range r.sorted(srd.CategoryLevel) {
		lvl := *e.(*srd.Level)
		lvl.Features = r.keep(srd.CategoryFeature, lvl.Features)
		r.add(srd.CategoryLevel, &lvl)
	}
	for _, e := range r.sorted(srd.CategorySpell) {
		spell := *e.(*srd.Spell)
		spell.Classes = r.keep(srd.CategoryClass, spell.Classes)
		spell.Subclasses = r.keep(srd.CategorySubclass, spell.Subclasses)
		r.add(srd.CategorySpell, &spell)
	}
	for _, e := range r.sorted(srd.CategoryEquipmentCategory) {
		cat := *e.(*srd.EquipmentCategory)
		cat.Equipment = r.keep(srd.CategoryEquipment, cat.Equipment)
		r.add(srd.CategoryEquipmentCategory, &cat)
	}
}

// keep filters refs down to the ones that resolve
func (r *Registry) keep(cat srd.Category, refs []srd.Reference) []srd.Reference {
	if len(refs) == 0 {
		return refs
	}
	out := make([]srd.Reference, 0, len(refs))
	for _, ref := range refs {
		if r.has(cat, ref.Key()) {
			out = append(out, ref)
		}
	}
	return out
}

// sorted lists the raw entries of a category by index, before index() runs
func (r *Registry) sorted(cat srd.Category) []srd.Entry {
	m := r.entries[cat]
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortStrings(keys)
	out := make([]srd.Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
