package synthesizer

import (
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/rng"
)

// Weights applied to racial bonuses when scoring race and class synergy
const (
	primaryWeight   = 2.0
	secondaryWeight = 1.5
	otherWeight     = 0.75
	neutralScore    = 1.0
)

func (r *run) level() error {
	if r.locked(character.FieldLevel) {
		return nil
	}
	lvl := 1
	if weights := r.o.tuning.LevelWeights; len(weights) > 0 {
		levels := make([]int, len(weights))
		for i := range levels {
			levels[i] = i + 1
		}
		picked, err := rng.Weighted(r.roller, levels, func(l int) float64 { return float64(weights[l-1]) })
		if err != nil {
			return err
		}
		lvl = picked
	}

	// a locked subclass needs a level that unlocks it
	if r.locked(character.FieldSubclass) {
		if unlock := r.reg.SubclassUnlockLevel(r.draft.Subclass); lvl < unlock {
			lvl = unlock
		}
	}
	r.draft.Level = lvl
	return nil
}

func (r *run) race() error {
	if r.locked(character.FieldRace) {
		return nil
	}
	if r.locked(character.FieldSubrace) {
		if sub, ok := r.reg.Subrace(r.draft.Subrace); ok {
			r.draft.Race = sub.Race.Key()
			return nil
		}
	}

	races := r.reg.Races()
	if len(races) == 0 {
		r.draft.Race = ""
		return nil
	}

	weigh := func(*srd.Race) float64 { return neutralScore }
	if r.locked(character.FieldClass) && r.draft.Class != "" && r.o.tuning.WeightedChoices {
		priorities := r.o.tuning.Priorities(r.draft.Class)
		weigh = func(race *srd.Race) float64 { return synergy(race.AbilityBonuses, priorities) }
	}
	race, err := rng.Weighted(r.roller, races, weigh)
	if err != nil {
		return err
	}
	r.draft.Race = race.Index
	return nil
}

func (r *run) subrace() error {
	if r.locked(character.FieldSubrace) {
		return nil
	}
	subraces := r.reg.Subraces(r.draft.Race)
	if len(subraces) == 0 {
		r.draft.Subrace = ""
		return nil
	}

	weigh := func(*srd.Subrace) float64 { return neutralScore }
	if r.locked(character.FieldClass) && r.draft.Class != "" && r.o.tuning.WeightedChoices {
		priorities := r.o.tuning.Priorities(r.draft.Class)
		weigh = func(sub *srd.Subrace) float64 { return synergy(sub.AbilityBonuses, priorities) }
	}
	sub, err := rng.Weighted(r.roller, subraces, weigh)
	if err != nil {
		return err
	}
	r.draft.Subrace = sub.Index
	return nil
}

func (r *run) class() error {
	if r.locked(character.FieldClass) {
		return nil
	}
	if r.locked(character.FieldSubclass) {
		if sub, ok := r.reg.Subclass(r.draft.Subclass); ok {
			r.draft.Class = sub.Class.Key()
			return nil
		}
	}

	classes := r.reg.Classes()
	if len(classes) == 0 {
		r.draft.Class = ""
		return nil
	}

	weigh := func(*srd.Class) float64 { return neutralScore }
	if r.o.tuning.WeightedChoices {
		bonuses := r.racialBonuses()
		weigh = func(c *srd.Class) float64 { return synergy(bonuses, r.o.tuning.Priorities(c.Index)) }
	}
	class, err := rng.Weighted(r.roller, classes, weigh)
	if err != nil {
		return err
	}
	r.draft.Class = class.Index
	return nil
}

func (r *run) subclass() error {
	if r.locked(character.FieldSubclass) {
		return nil
	}
	var eligible []*srd.Subclass
	for _, sub := range r.reg.Subclasses(r.draft.Class) {
		if r.reg.SubclassUnlockLevel(sub.Index) <= r.draft.EffectiveLevel() {
			eligible = append(eligible, sub)
		}
	}
	if len(eligible) == 0 {
		r.draft.Subclass = ""
		return nil
	}
	sub, err := rng.Pick(r.roller, eligible)
	if err != nil {
		return err
	}
	r.draft.Subclass = sub.Index
	return nil
}

func (r *run) background() error {
	if r.locked(character.FieldBackground) {
		return nil
	}
	bgs := r.reg.Backgrounds()
	if len(bgs) == 0 {
		r.draft.Background = ""
		return nil
	}
	bg, err := rng.Pick(r.roller, bgs)
	if err != nil {
		return err
	}
	r.draft.Background = bg.Index
	return nil
}

func (r *run) alignment() error {
	if r.locked(character.FieldAlignment) {
		return nil
	}
	alignments := r.reg.Alignments()
	if len(alignments) == 0 {
		r.draft.Alignment = ""
		return nil
	}
	a, err := rng.Pick(r.roller, alignments)
	if err != nil {
		return err
	}
	r.draft.Alignment = a.Index
	return nil
}

func (r *run) racialBonuses() []srd.AbilityBonus {
	var out []srd.AbilityBonus
	if race, ok := r.reg.Race(r.draft.Race); ok {
		out = append(out, race.AbilityBonuses...)
	}
	if sub, ok := r.reg.Subrace(r.draft.Subrace); ok {
		out = append(out, sub.AbilityBonuses...)
	}
	return out
}

// synergy scores ability bonuses against a class's priority order. Bonuses
// to the primary ability count double, the secondary one and a half, and
// anything else three quarters. No matching bonus scores neutral.
func synergy(bonuses []srd.AbilityBonus, priorities []character.Ability) float64 {
	score := 0.0
	for _, b := range bonuses {
		a, ok := character.ParseAbility(b.AbilityScore.Key())
		if !ok || b.Bonus <= 0 {
			continue
		}
		switch {
		case len(priorities) > 0 && a == priorities[0]:
			score += float64(b.Bonus) * primaryWeight
		case len(priorities) > 1 && a == priorities[1]:
			score += float64(b.Bonus) * secondaryWeight
		default:
			score += float64(b.Bonus) * otherWeight
		}
	}
	if score == 0 {
		return neutralScore
	}
	return score
}
