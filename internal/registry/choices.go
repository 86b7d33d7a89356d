package registry

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
)

// Grants are the fixed proficiencies a draft receives without choosing
type Grants struct {
	Skills       []string
	SavingThrows []character.Ability
	Languages    []string
	Tools        []string
	Armor        []string
	Weapons      []string
}

// ChoiceGroup is one "choose N" block the draft can fill
type ChoiceGroup struct {
	ID      string
	Source  string
	Kind    srd.ProficiencyKind
	Choose  int
	Options []string
	Desc    string
}

// Grants collects fixed proficiencies from race, subrace, class and background
func (r *Registry) Grants(d *character.Draft) *Grants {
	g := &Grants{}
	var profs []srd.Reference
	if race, ok := r.Race(d.Race); ok {
		profs = append(profs, race.StartingProficiencies...)
		g.Languages = append(g.Languages, refKeys(race.Languages)...)
	}
	if sub, ok := r.Subrace(d.Subrace); ok {
		profs = append(profs, sub.StartingProficiencies...)
		g.Languages = append(g.Languages, refKeys(sub.Languages)...)
	}
	if class, ok := r.Class(d.Class); ok {
		profs = append(profs, class.Proficiencies...)
		for _, save := range class.SavingThrows {
			if a, ok := character.ParseAbility(save.Key()); ok {
				g.SavingThrows = append(g.SavingThrows, a)
			}
		}
	}
	if bg, ok := r.Background(d.Background); ok {
		profs = append(profs, bg.StartingProficiencies...)
	}

	for _, p := range profs {
		idx := p.Key()
		switch srd.KindOf(idx) {
		case srd.KindSkill:
			g.Skills = append(g.Skills, srd.SkillIndex(idx))
		case srd.KindSave:
			if a, ok := character.ParseAbility(srd.SaveAbility(idx)); ok && !hasAbility(g.SavingThrows, a) {
				g.SavingThrows = append(g.SavingThrows, a)
			}
		case srd.KindLanguage:
			g.Languages = append(g.Languages, idx)
		case srd.KindArmor:
			g.Armor = append(g.Armor, idx)
		case srd.KindWeapon:
			g.Weapons = append(g.Weapons, idx)
		default:
			g.Tools = append(g.Tools, idx)
		}
	}

	g.Skills = character.SortedSet(g.Skills)
	g.Languages = character.SortedSet(g.Languages)
	g.Tools = character.SortedSet(g.Tools)
	g.Armor = character.SortedSet(g.Armor)
	g.Weapons = character.SortedSet(g.Weapons)
	return g
}

// ChoiceGroups lists the option blocks that apply to the draft's race,
// subrace, class and background
func (r *Registry) ChoiceGroups(d *character.Draft) []ChoiceGroup {
	var groups []ChoiceGroup
	add := func(source string, n int, choice *srd.Choice, hint srd.ProficiencyKind) {
		if g, ok := r.choiceGroup(fmt.Sprintf("%s:%d", source, n), source, choice, hint); ok {
			groups = append(groups, g)
		}
	}

	if race, ok := r.Race(d.Race); ok {
		src := "race:" + race.Index
		add(src, 0, race.StartingProficiencyOptions, "")
		add(src, 1, race.LanguageOptions, srd.KindLanguage)
	}
	if sub, ok := r.Subrace(d.Subrace); ok {
		add("subrace:"+sub.Index, 0, sub.LanguageOptions, srd.KindLanguage)
	}
	if class, ok := r.Class(d.Class); ok {
		for i := range class.ProficiencyChoices {
			add("class:"+class.Index, i, &class.ProficiencyChoices[i], "")
		}
	}
	if bg, ok := r.Background(d.Background); ok {
		add("background:"+bg.Index, 0, bg.LanguageOptions, srd.KindLanguage)
	}
	return groups
}

func (r *Registry) choiceGroup(id, source string, choice *srd.Choice, hint srd.ProficiencyKind) (ChoiceGroup, bool) {
	if choice == nil {
		return ChoiceGroup{}, false
	}

	var indexes []string
	if choice.From.OptionSetType == srd.OptionSetResourceList {
		if strings.Contains(choice.From.ResourceListURL, "languages") || hint == srd.KindLanguage {
			indexes = r.Indexes(srd.CategoryLanguage)
			hint = srd.KindLanguage
		}
	} else {
		for _, ref := range choice.References() {
			indexes = append(indexes, ref.Key())
		}
	}

	kind := hint
	if kind == "" {
		kind = dominantKind(indexes)
	}

	var options []string
	for _, idx := range indexes {
		if hint == "" && srd.KindOf(idx) != kind {
			continue
		}
		if kind == srd.KindSkill {
			idx = srd.SkillIndex(idx)
		}
		options = append(options, idx)
	}
	options = character.SortedSet(options)
	if len(options) == 0 {
		return ChoiceGroup{}, false
	}

	choose := choice.Choose
	if choose < 1 {
		choose = 1
	}
	if choose > len(options) {
		choose = len(options)
	}

	return ChoiceGroup{
		ID:      id,
		Source:  source,
		Kind:    kind,
		Choose:  choose,
		Options: options,
		Desc:    choice.Desc,
	}, true
}

func dominantKind(indexes []string) srd.ProficiencyKind {
	counts := map[srd.ProficiencyKind]int{}
	for _, idx := range indexes {
		counts[srd.KindOf(idx)]++
	}
	best := srd.KindOther
	for _, k := range []srd.ProficiencyKind{srd.KindSkill, srd.KindLanguage, srd.KindTool, srd.KindArmor, srd.KindWeapon} {
		if counts[k] > counts[best] {
			best = k
		}
	}
	if best == srd.KindOther && counts[srd.KindOther] > 0 {
		return srd.KindTool
	}
	return best
}

// SkillAllowance is the number of skills the draft may choose
func (r *Registry) SkillAllowance(d *character.Draft) int {
	return r.allowance(d, srd.KindSkill)
}

func (r *Registry) allowance(d *character.Draft, kind srd.ProficiencyKind) int {
	total := 0
	for _, g := range r.ChoiceGroups(d) {
		if g.Kind == kind {
			total += g.Choose
		}
	}
	return total
}

// Options is the set of currently legal values per field
type Options struct {
	fields map[character.Field][]string
	limits map[character.Field]int
}

// For returns the legal values of a field. Nil means the field is not
// constrained to a list.
func (o *Options) For(f character.Field) []string {
	return o.fields[f]
}

// Constrained reports whether the field's values come from a list
func (o *Options) Constrained(f character.Field) bool {
	_, ok := o.fields[f]
	return ok
}

// Allows reports whether value is legal for the field
func (o *Options) Allows(f character.Field, value string) bool {
	values, ok := o.fields[f]
	if !ok {
		return true
	}
	v := key(value)
	for _, x := range values {
		if key(x) == v {
			return true
		}
	}
	return false
}

// Limit returns the maximum number of values for a multi-valued field,
// or -1 when unbounded
func (o *Options) Limit(f character.Field) int {
	if n, ok := o.limits[f]; ok {
		return n
	}
	return -1
}

// ResolveChoiceOptions computes the legal values of every constrained field
// given what the draft already holds
func (r *Registry) ResolveChoiceOptions(d *character.Draft) *Options {
	o := &Options{
		fields: make(map[character.Field][]string),
		limits: make(map[character.Field]int),
	}

	levels := make([]string, 0, character.MaxLevel)
	for i := 1; i <= character.MaxLevel; i++ {
		levels = append(levels, strconv.Itoa(i))
	}
	o.fields[character.FieldLevel] = levels
	o.fields[character.FieldRace] = r.Indexes(srd.CategoryRace)
	o.fields[character.FieldClass] = r.Indexes(srd.CategoryClass)
	o.fields[character.FieldBackground] = r.Indexes(srd.CategoryBackground)
	o.fields[character.FieldAlignment] = r.Indexes(srd.CategoryAlignment)
	o.fields[character.FieldGender] = []string{character.GenderFemale, character.GenderMale, character.GenderNonbinary}
	o.fields[character.FieldEquipment] = r.Indexes(srd.CategoryEquipment)

	subraces := []string{}
	for _, sub := range r.Subraces(d.Race) {
		subraces = append(subraces, sub.Index)
	}
	o.fields[character.FieldSubrace] = subraces

	subclasses := []string{}
	for _, sub := range r.Subclasses(d.Class) {
		if r.SubclassUnlockLevel(sub.Index) <= d.EffectiveLevel() {
			subclasses = append(subclasses, sub.Index)
		}
	}
	o.fields[character.FieldSubclass] = subclasses

	feats := []string{}
	for _, feat := range r.Feats() {
		if featAllowed(feat, d) {
			feats = append(feats, feat.Index)
		}
	}
	o.fields[character.FieldFeats] = feats

	var skills, languages, tools []string
	for _, g := range r.ChoiceGroups(d) {
		switch g.Kind {
		case srd.KindSkill:
			skills = append(skills, g.Options...)
			o.limits[character.FieldSkills] += g.Choose
		case srd.KindLanguage:
			languages = append(languages, g.Options...)
			o.limits[character.FieldLanguages] += g.Choose
		case srd.KindTool:
			tools = append(tools, g.Options...)
			o.limits[character.FieldTools] += g.Choose
		}
	}
	o.fields[character.FieldSkills] = character.SortedSet(skills)
	o.fields[character.FieldLanguages] = character.SortedSet(languages)
	o.fields[character.FieldTools] = character.SortedSet(tools)
	for _, f := range []character.Field{character.FieldSkills, character.FieldLanguages, character.FieldTools} {
		if _, ok := o.limits[f]; !ok {
			o.limits[f] = 0
		}
	}

	grants := r.Grants(d)
	o.fields[character.FieldExpertise] = character.SortedSet(append(append([]string{}, grants.Skills...), d.Skills...))

	o.fields[character.FieldSpells] = r.legalSpells(d)

	return o
}

// MaxSpellLevel returns the highest spell level with slots for the draft's
// class at its level, and whether the class casts at all
func (r *Registry) MaxSpellLevel(class string, level int) (int, bool) {
	lvl, ok := r.ClassLevel(class, level)
	if !ok || lvl.Spellcasting == nil {
		return 0, false
	}
	slots := lvl.SpellSlots()
	highest := 0
	for i := 1; i <= 9; i++ {
		if slots[i] > 0 {
			highest = i
		}
	}
	return highest, highest > 0 || lvl.CantripsKnown() > 0
}

func (r *Registry) legalSpells(d *character.Draft) []string {
	out := []string{}
	maxLevel, casts := r.MaxSpellLevel(d.Class, d.EffectiveLevel())
	if !casts {
		return out
	}
	for _, spell := range r.SpellsForClass(d.Class, d.Subclass) {
		if spell.Level <= maxLevel {
			out = append(out, spell.Index)
		}
	}
	sort.Strings(out)
	return out
}

func featAllowed(feat *srd.Feat, d *character.Draft) bool {
	if len(d.AbilityScores) == 0 {
		return true
	}
	for _, p := range feat.Prerequisites {
		a, ok := character.ParseAbility(p.AbilityScore.Key())
		if !ok {
			continue
		}
		if d.AbilityScores[a]+d.AbilityBonuses[a] < p.MinimumScore {
			return false
		}
	}
	return true
}

func refKeys(refs []srd.Reference) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.Key())
	}
	return out
}

func hasAbility(list []character.Ability, a character.Ability) bool {
	for _, x := range list {
		if x == a {
			return true
		}
	}
	return false
}
