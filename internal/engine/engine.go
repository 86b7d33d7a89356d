package engine

import (
	"context"
	"sort"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	"github.com/KirkDiggler/rpg-charbuilder/internal/registry"
)

// Defaults applied when the config leaves a value empty
const (
	DefaultScoreCap = 30
)

// DefaultPreparedCasters are the classes that prepare spells from their list
var DefaultPreparedCasters = []string{"cleric", "druid", "paladin", "wizard"}

// Config tunes the rules the engine applies
type Config struct {
	// ScoreCap bounds ability totals after bonuses
	ScoreCap int

	// PreparedCasters lists classes that prepare spells daily
	PreparedCasters []string
}

// Validate checks the config values
func (cfg *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if cfg.ScoreCap < 0 {
		vb.InvalidField("ScoreCap", "must not be negative")
	}
	return vb.Build()
}

type engine struct {
	scoreCap int
	prepared map[string]bool
}

// New creates an engine. A nil config uses the defaults.
func New(cfg *Config) (Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid engine config")
	}

	e := &engine{
		scoreCap: cfg.ScoreCap,
		prepared: make(map[string]bool),
	}
	if e.scoreCap == 0 {
		e.scoreCap = DefaultScoreCap
	}
	casters := cfg.PreparedCasters
	if casters == nil {
		casters = DefaultPreparedCasters
	}
	for _, c := range casters {
		e.prepared[c] = true
	}
	return e, nil
}

// CalculateAbilityModifier returns floor((score - 10) / 2)
func CalculateAbilityModifier(score int) int {
	diff := score - 10
	if diff < 0 && diff%2 != 0 {
		return diff/2 - 1
	}
	return diff / 2
}

// CalculateProficiencyBonus returns 2 + floor((level - 1) / 4). Unset
// levels count as level 1.
func CalculateProficiencyBonus(level int) int {
	if level < 1 {
		level = 1
	}
	return 2 + (level-1)/4
}

// resolved holds the registry records a draft points at
type resolved struct {
	race       *srd.Race
	subrace    *srd.Subrace
	class      *srd.Class
	subclass   *srd.Subclass
	background *srd.Background
}

func (e *engine) Derive(ctx context.Context, input *DeriveInput) (*DeriveOutput, error) {
	if input == nil || input.Draft == nil {
		return nil, errors.InvalidArgument("draft is required")
	}
	if input.Registry == nil {
		return nil, errors.InvalidArgument("registry is required")
	}

	d := input.Draft
	reg := input.Registry

	refs, err := resolve(d, reg)
	if err != nil {
		return nil, err
	}

	level := d.EffectiveLevel()
	snap := &Snapshot{
		Level:            level,
		ProficiencyBonus: CalculateProficiencyBonus(level),
	}

	snap.Abilities = e.abilities(d, refs)
	grants := reg.Grants(d)
	snap.SavingThrows = savingThrows(snap, grants)
	snap.Skills = skills(snap, d, grants)

	if refs.class != nil {
		snap.HitDie = refs.class.HitDie
		snap.MaxHitPoints = hitPoints(refs.class.HitDie, level, snap.Modifier(character.AbilityConstitution), d.HitPointRolls)
	}

	armorClass(snap, d, reg)
	snap.Initiative = snap.Modifier(character.AbilityDexterity)
	if refs.race != nil {
		snap.Speed = refs.race.Speed
		snap.Size = refs.race.Size
	}
	snap.PassivePerception = 10 + snap.Skills["perception"].Bonus

	snap.Spellcasting = e.spellcasting(snap, d, refs, reg)
	snap.Features = features(d, refs, reg, level)
	snap.Darkvision = darkvision(snap.Features)

	snap.Languages = character.SortedSet(append(append([]string{}, grants.Languages...), d.Languages...))
	snap.ArmorProficiencies = grants.Armor
	snap.WeaponProficiencies = grants.Weapons
	snap.ToolProficiencies = character.SortedSet(append(append([]string{}, grants.Tools...), d.Tools...))

	snap.WealthCopper = d.Currency.TotalCopper()
	snap.WealthGold = float64(snap.WealthCopper) / character.CopperPerGP

	return &DeriveOutput{Snapshot: snap}, nil
}

// resolve looks up every entry the draft references. A draft that names
// unknown entries or mismatched parents could not have passed validation.
func resolve(d *character.Draft, reg *registry.Registry) (*resolved, error) {
	out := &resolved{}

	if d.Level < 0 || d.Level > character.MaxLevel {
		return nil, errors.InconsistentDraftf("level %d is outside 1..%d", d.Level, character.MaxLevel).
			WithMeta("field", string(character.FieldLevel))
	}

	var ok bool
	if d.Race != "" {
		if out.race, ok = reg.Race(d.Race); !ok {
			return nil, unknown(character.FieldRace, d.Race)
		}
	}
	if d.Subrace != "" {
		if out.subrace, ok = reg.Subrace(d.Subrace); !ok {
			return nil, unknown(character.FieldSubrace, d.Subrace)
		}
		if out.race == nil || out.subrace.Race.Key() != out.race.Index {
			return nil, errors.InconsistentDraftf("subrace %s does not belong to race %q", d.Subrace, d.Race).
				WithMeta("field", string(character.FieldSubrace))
		}
	}
	if d.Class != "" {
		if out.class, ok = reg.Class(d.Class); !ok {
			return nil, unknown(character.FieldClass, d.Class)
		}
	}
	if d.Subclass != "" {
		if out.subclass, ok = reg.Subclass(d.Subclass); !ok {
			return nil, unknown(character.FieldSubclass, d.Subclass)
		}
		if out.class == nil || out.subclass.Class.Key() != out.class.Index {
			return nil, errors.InconsistentDraftf("subclass %s does not belong to class %q", d.Subclass, d.Class).
				WithMeta("field", string(character.FieldSubclass))
		}
	}
	if d.Background != "" {
		if out.background, ok = reg.Background(d.Background); !ok {
			return nil, unknown(character.FieldBackground, d.Background)
		}
	}

	for _, feat := range d.Feats {
		if _, ok := reg.Feat(feat); !ok {
			return nil, unknown(character.FieldFeats, feat)
		}
	}
	for _, spell := range d.SpellIndexes() {
		if _, ok := reg.Spell(spell); !ok {
			return nil, unknown(character.FieldSpells, spell)
		}
	}
	for _, item := range d.Inventory {
		if _, ok := reg.Equipment(item.Index); !ok {
			return nil, unknown(character.FieldEquipment, item.Index)
		}
	}
	for _, skill := range append(append([]string{}, d.Skills...), d.Expertise...) {
		if _, ok := character.SkillAbilities[skill]; !ok {
			return nil, unknown(character.FieldSkills, skill)
		}
	}

	return out, nil
}

func unknown(field character.Field, value string) error {
	return errors.InconsistentDraftf("unknown %s %q", field, value).WithMeta("field", string(field))
}

func (e *engine) abilities(d *character.Draft, refs *resolved) map[character.Ability]AbilityScore {
	racial := map[character.Ability]int{}
	var bonuses []srd.AbilityBonus
	if refs.race != nil {
		bonuses = append(bonuses, refs.race.AbilityBonuses...)
	}
	if refs.subrace != nil {
		bonuses = append(bonuses, refs.subrace.AbilityBonuses...)
	}
	for _, b := range bonuses {
		if a, ok := character.ParseAbility(b.AbilityScore.Key()); ok {
			racial[a] += b.Bonus
		}
	}

	out := make(map[character.Ability]AbilityScore, len(character.Abilities()))
	for _, a := range character.Abilities() {
		base, ok := d.AbilityScores[a]
		if !ok {
			base = 10
		}
		total := base + racial[a] + d.AbilityBonuses[a]
		if total > e.scoreCap {
			total = e.scoreCap
		}
		out[a] = AbilityScore{
			Base:     base,
			Racial:   racial[a],
			Bonus:    d.AbilityBonuses[a],
			Total:    total,
			Modifier: CalculateAbilityModifier(total),
		}
	}
	return out
}

func savingThrows(snap *Snapshot, grants *registry.Grants) map[character.Ability]SavingThrow {
	out := make(map[character.Ability]SavingThrow, len(character.Abilities()))
	for _, a := range character.Abilities() {
		st := SavingThrow{Modifier: snap.Modifier(a)}
		for _, p := range grants.SavingThrows {
			if p == a {
				st.Proficient = true
				st.Modifier += snap.ProficiencyBonus
			}
		}
		out[a] = st
	}
	return out
}

func skills(snap *Snapshot, d *character.Draft, grants *registry.Grants) map[string]SkillBonus {
	proficient := map[string]bool{}
	for _, s := range grants.Skills {
		proficient[s] = true
	}
	for _, s := range d.Skills {
		proficient[s] = true
	}

	out := make(map[string]SkillBonus, len(character.SkillAbilities))
	for _, skill := range character.Skills() {
		ability := character.SkillAbilities[skill]
		multiplier := 0
		switch {
		case d.HasExpertise(skill):
			multiplier = 2
		case proficient[skill]:
			multiplier = 1
		}
		out[skill] = SkillBonus{
			Ability:    ability,
			Multiplier: multiplier,
			Bonus:      snap.Modifier(ability) + snap.ProficiencyBonus*multiplier,
		}
	}
	return out
}

// hitPoints gives the die maximum at level 1 and the recorded roll or the
// rounded-up average for each later level. Every level adds at least 1.
func hitPoints(die, level, con int, rolls []int) int {
	if die <= 0 {
		return 0
	}
	total := 0
	for lvl := 1; lvl <= level; lvl++ {
		gain := die/2 + 1
		switch {
		case lvl == 1:
			gain = die
		case lvl-2 < len(rolls) && rolls[lvl-2] > 0:
			gain = rolls[lvl-2]
		}
		gain += con
		if gain < 1 {
			gain = 1
		}
		total += gain
	}
	return total
}

func armorClass(snap *Snapshot, d *character.Draft, reg *registry.Registry) {
	dex := snap.Modifier(character.AbilityDexterity)
	best := 10 + dex
	name := ""
	shield := 0

	for _, item := range d.Inventory {
		if !item.Equipped {
			continue
		}
		eq, ok := reg.Equipment(item.Index)
		if !ok || eq.ArmorClass == nil {
			continue
		}
		if eq.IsShield() {
			if v := eq.ArmorClass.Base + item.MagicBonus; v > shield {
				shield = v
			}
			continue
		}

		ac := eq.ArmorClass.Base + item.MagicBonus
		if eq.ArmorClass.DexBonus {
			bonus := dex
			if eq.ArmorClass.MaxBonus > 0 && bonus > eq.ArmorClass.MaxBonus {
				bonus = eq.ArmorClass.MaxBonus
			}
			ac += bonus
		}
		if name == "" || ac > best {
			best = ac
			name = eq.Name
		}
	}

	snap.ArmorClass = best + shield
	snap.ArmorName = name
	snap.Shield = shield > 0
}

func (e *engine) spellcasting(snap *Snapshot, d *character.Draft, refs *resolved, reg *registry.Registry) *Spellcasting {
	if refs.class == nil || refs.class.Spellcasting == nil {
		return nil
	}

	ability, ok := character.ParseAbility(refs.class.Spellcasting.SpellcastingAbility.Key())
	if !ok {
		return nil
	}
	mod := snap.Modifier(ability)

	sc := &Spellcasting{
		Ability:     ability,
		SaveDC:      8 + snap.ProficiencyBonus + mod,
		AttackBonus: snap.ProficiencyBonus + mod,
		Progression: progression(refs.class, reg),
		Prepares:    e.prepared[refs.class.Index],
	}

	if row, ok := reg.ClassLevel(refs.class.Index, snap.Level); ok {
		sc.CantripsKnown = row.CantripsKnown()
		sc.SpellsKnown = row.SpellsKnown()
		sc.Slots = row.SpellSlots()
	}
	for lvl := 1; lvl <= 9; lvl++ {
		if sc.Slots[lvl] > 0 {
			sc.MaxSpellLevel = lvl
		}
	}

	if sc.Prepares {
		casterLevel := snap.Level
		if sc.Progression == ProgressionHalf {
			casterLevel = snap.Level / 2
		}
		sc.PreparedLimit = mod + casterLevel
		if sc.PreparedLimit < 1 {
			sc.PreparedLimit = 1
		}
	}
	return sc
}

// progression infers the caster table from the highest slot the class ever
// reaches, falling back to the level at which casting starts
func progression(class *srd.Class, reg *registry.Registry) string {
	if row, ok := reg.ClassLevel(class.Index, character.MaxLevel); ok {
		slots := row.SpellSlots()
		highest := 0
		for lvl := 1; lvl <= 9; lvl++ {
			if slots[lvl] > 0 {
				highest = lvl
			}
		}
		switch {
		case highest >= 6:
			return ProgressionFull
		case highest == 5:
			return ProgressionHalf
		case highest > 0:
			return ProgressionThird
		}
	}
	switch class.Spellcasting.Level {
	case 0, 1:
		return ProgressionFull
	case 2:
		return ProgressionHalf
	}
	return ProgressionThird
}

func features(d *character.Draft, refs *resolved, reg *registry.Registry, level int) []Feature {
	var out []Feature
	seen := map[string]bool{}
	add := func(f Feature) {
		if f.Index == "" || seen[f.Index] {
			return
		}
		seen[f.Index] = true
		out = append(out, f)
	}
	trait := func(source, index string) {
		t, ok := reg.Trait(index)
		if !ok {
			return
		}
		add(Feature{Index: t.Index, Name: t.Name, Source: source, Desc: first(t.Desc), Text: t.Desc})
	}
	feature := func(source, index string, at int) {
		f, ok := reg.Feature(index)
		if !ok {
			return
		}
		add(Feature{Index: f.Index, Name: f.Name, Source: source, Level: at, Desc: first(f.Desc), Text: f.Desc})
	}

	if refs.race != nil {
		for _, ref := range refs.race.Traits {
			trait(SourceRace, ref.Key())
		}
	}
	if refs.subrace != nil {
		for _, ref := range refs.subrace.RacialTraits {
			trait(SourceSubrace, ref.Key())
		}
	}
	if refs.class != nil {
		for lvl := 1; lvl <= level; lvl++ {
			row, ok := reg.ClassLevel(refs.class.Index, lvl)
			if !ok {
				continue
			}
			for _, ref := range row.Features {
				feature(SourceClass, ref.Key(), lvl)
			}
		}
	}
	if refs.subclass != nil {
		for _, row := range reg.SubclassLevels(refs.subclass.Index) {
			if row.Level > level {
				continue
			}
			for _, ref := range row.Features {
				feature(SourceSubclass, ref.Key(), row.Level)
			}
		}
	}
	if refs.background != nil && refs.background.Feature != nil {
		add(Feature{
			Index:  refs.background.Index + "-feature",
			Name:   refs.background.Feature.Name,
			Source: SourceBackground,
			Desc:   first(refs.background.Feature.Desc),
			Text:   refs.background.Feature.Desc,
		})
	}
	for _, index := range d.Feats {
		if feat, ok := reg.Feat(index); ok {
			add(Feature{Index: feat.Index, Name: feat.Name, Source: SourceFeat, Desc: first(feat.Desc), Text: feat.Desc})
		}
	}

	rank := map[string]int{
		SourceRace: 0, SourceSubrace: 1, SourceClass: 2, SourceSubclass: 3, SourceBackground: 4, SourceFeat: 5,
	}
	sort.SliceStable(out, func(i, j int) bool {
		if rank[out[i].Source] != rank[out[j].Source] {
			return rank[out[i].Source] < rank[out[j].Source]
		}
		return out[i].Level < out[j].Level
	})
	return out
}

// darkvision returns the sight range granted by a darkvision trait
func darkvision(features []Feature) int {
	for _, f := range features {
		switch f.Index {
		case "superior-darkvision":
			return 120
		case "darkvision":
			return 60
		}
	}
	return 0
}

func first(desc []string) string {
	if len(desc) == 0 {
		return ""
	}
	return desc[0]
}
