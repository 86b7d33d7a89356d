package registry

import (
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
)

func get[T srd.Entry](r *Registry, cat srd.Category, index string) (T, bool) {
	var zero T
	e, ok := r.Get(cat, index)
	if !ok {
		return zero, false
	}
	t, ok := e.(T)
	return t, ok
}

func listOf[T srd.Entry](r *Registry, cat srd.Category) []T {
	out := make([]T, 0, len(r.ordered[cat]))
	for _, e := range r.ordered[cat] {
		if t, ok := e.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Race returns a race by index or name
func (r *Registry) Race(index string) (*srd.Race, bool) {
	return get[*srd.Race](r, srd.CategoryRace, index)
}

// Subrace returns a subrace by index or name
func (r *Registry) Subrace(index string) (*srd.Subrace, bool) {
	return get[*srd.Subrace](r, srd.CategorySubrace, index)
}

// Class returns a class by index or name
func (r *Registry) Class(index string) (*srd.Class, bool) {
	return get[*srd.Class](r, srd.CategoryClass, index)
}

// Subclass returns a subclass by index or name
func (r *Registry) Subclass(index string) (*srd.Subclass, bool) {
	return get[*srd.Subclass](r, srd.CategorySubclass, index)
}

// Background returns a background by index or name
func (r *Registry) Background(index string) (*srd.Background, bool) {
	return get[*srd.Background](r, srd.CategoryBackground, index)
}

// Feat returns a feat by index or name
func (r *Registry) Feat(index string) (*srd.Feat, bool) {
	return get[*srd.Feat](r, srd.CategoryFeat, index)
}

// Spell returns a spell by index or name
func (r *Registry) Spell(index string) (*srd.Spell, bool) {
	return get[*srd.Spell](r, srd.CategorySpell, index)
}

// Equipment returns an item by index or name
func (r *Registry) Equipment(index string) (*srd.Equipment, bool) {
	return get[*srd.Equipment](r, srd.CategoryEquipment, index)
}

// Feature returns a class feature by index or name
func (r *Registry) Feature(index string) (*srd.Feature, bool) {
	return get[*srd.Feature](r, srd.CategoryFeature, index)
}

// Trait returns a racial trait by index or name
func (r *Registry) Trait(index string) (*srd.Trait, bool) {
	return get[*srd.Trait](r, srd.CategoryTrait, index)
}

// Proficiency returns a proficiency by index or name
func (r *Registry) Proficiency(index string) (*srd.Proficiency, bool) {
	return get[*srd.Proficiency](r, srd.CategoryProficiency, index)
}

// Language returns a language by index or name
func (r *Registry) Language(index string) (*srd.Language, bool) {
	return get[*srd.Language](r, srd.CategoryLanguage, index)
}

// Alignment returns an alignment by index or name
func (r *Registry) Alignment(index string) (*srd.Alignment, bool) {
	return get[*srd.Alignment](r, srd.CategoryAlignment, index)
}

// Skill returns a skill by index or name
func (r *Registry) Skill(index string) (*srd.Skill, bool) {
	return get[*srd.Skill](r, srd.CategorySkill, index)
}

// Races lists every race
func (r *Registry) Races() []*srd.Race { return listOf[*srd.Race](r, srd.CategoryRace) }

// Classes lists every class
func (r *Registry) Classes() []*srd.Class { return listOf[*srd.Class](r, srd.CategoryClass) }

// Backgrounds lists every background
func (r *Registry) Backgrounds() []*srd.Background {
	return listOf[*srd.Background](r, srd.CategoryBackground)
}

// Alignments lists every alignment
func (r *Registry) Alignments() []*srd.Alignment {
	return listOf[*srd.Alignment](r, srd.CategoryAlignment)
}

// Feats lists every feat
func (r *Registry) Feats() []*srd.Feat { return listOf[*srd.Feat](r, srd.CategoryFeat) }

// Subraces lists the subraces of a race, whichever side declares the link
func (r *Registry) Subraces(race string) []*srd.Subrace {
	parent, ok := r.Race(race)
	if !ok {
		return nil
	}
	seen := map[string]bool{}
	var out []*srd.Subrace
	for _, ref := range parent.Subraces {
		if sub, ok := r.Subrace(ref.Key()); ok && !seen[sub.Index] {
			seen[sub.Index] = true
			out = append(out, sub)
		}
	}
	for _, sub := range listOf[*srd.Subrace](r, srd.CategorySubrace) {
		if key(sub.Race.Key()) == key(parent.Index) && !seen[sub.Index] {
			seen[sub.Index] = true
			out = append(out, sub)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Subclasses lists the subclasses of a class
func (r *Registry) Subclasses(class string) []*srd.Subclass {
	parent, ok := r.Class(class)
	if !ok {
		return nil
	}
	var out []*srd.Subclass
	for _, sub := range listOf[*srd.Subclass](r, srd.CategorySubclass) {
		if key(sub.Class.Key()) == key(parent.Index) {
			out = append(out, sub)
		}
	}
	return out
}

// ClassLevel returns a class's progression row at a level
func (r *Registry) ClassLevel(class string, level int) (*srd.Level, bool) {
	c, ok := r.Class(class)
	if !ok {
		return nil, false
	}
	lvl, ok := r.classLevels[key(c.Index)][level]
	return lvl, ok
}

// SubclassLevels returns a subclass's progression rows in level order
func (r *Registry) SubclassLevels(subclass string) []*srd.Level {
	s, ok := r.Subclass(subclass)
	if !ok {
		return nil
	}
	return append([]*srd.Level(nil), r.subLevels[key(s.Index)]...)
}

// SubclassUnlockLevel is the first level at which a subclass grants a feature
func (r *Registry) SubclassUnlockLevel(subclass string) int {
	lowest := 0
	for _, lvl := range r.SubclassLevels(subclass) {
		if len(lvl.Features) == 0 {
			continue
		}
		if lowest == 0 || lvl.Level < lowest {
			lowest = lvl.Level
		}
	}
	if lowest == 0 {
		s, ok := r.Subclass(subclass)
		if ok {
			for _, f := range listOf[*srd.Feature](r, srd.CategoryFeature) {
				if f.Subclass != nil && key(f.Subclass.Key()) == key(s.Index) && f.Level > 0 {
					if lowest == 0 || f.Level < lowest {
						lowest = f.Level
					}
				}
			}
		}
	}
	if lowest == 0 {
		return DefaultSubclassLevel
	}
	return lowest
}

// SpellsForClass lists spells on the class list or granted by the subclass,
// ordered by spell level then index
func (r *Registry) SpellsForClass(class, subclass string) []*srd.Spell {
	var out []*srd.Spell
	for _, spell := range listOf[*srd.Spell](r, srd.CategorySpell) {
		if refersTo(spell.Classes, class) || (subclass != "" && refersTo(spell.Subclasses, subclass)) {
			out = append(out, spell)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Level != out[j].Level {
			return out[i].Level < out[j].Level
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// EquipmentInCategory lists the items of an equipment category
func (r *Registry) EquipmentInCategory(category string) []*srd.Equipment {
	cat, ok := get[*srd.EquipmentCategory](r, srd.CategoryEquipmentCategory, category)
	if !ok {
		return nil
	}
	var out []*srd.Equipment
	for _, ref := range cat.Equipment {
		if item, ok := r.Equipment(ref.Key()); ok {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// DisplayName returns the registry name of an index, or the index itself
func (r *Registry) DisplayName(category srd.Category, index string) string {
	if e, ok := r.Get(category, index); ok && e.GetName() != "" {
		return e.GetName()
	}
	return index
}

func refersTo(refs []srd.Reference, index string) bool {
	if index == "" {
		return false
	}
	for _, ref := range refs {
		if key(ref.Key()) == key(index) || key(ref.Name) == key(index) {
			return true
		}
	}
	return false
}

func hyphensToSpaces(s string) string {
	return strings.ReplaceAll(s, "-", " ")
}

func sortStrings(s []string) {
	sort.Strings(s)
}
