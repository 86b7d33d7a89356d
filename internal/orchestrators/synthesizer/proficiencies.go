package synthesizer

import (
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
	dicesvc "github.com/KirkDiggler/rpg-charbuilder/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-charbuilder/internal/registry"
)

// expertisePerFeature is how many skills one expertise feature doubles
const expertisePerFeature = 2

func (r *run) abilities() error {
	if r.locked(character.FieldAbilities) {
		return nil
	}

	out, err := r.o.dice.RollAbilityScores(r.ctx, &dicesvc.RollAbilityScoresInput{
		Method: r.o.tuning.AbilityMethod,
		Roller: r.roller,
	})
	if err != nil {
		return err
	}

	r.draft.AbilityScores = make(map[character.Ability]int, len(character.Abilities()))
	for i, a := range r.o.tuning.Priorities(r.draft.Class) {
		score := 10
		if i < len(out.Scores) {
			score = out.Scores[i]
		}
		r.draft.AbilityScores[a] = clamp(score, r.o.tuning.AbilityMin, r.o.tuning.AbilityMax)
	}
	return nil
}

// prune drops locked picks the freshly drawn race, class, background or
// level no longer offer, so the top-up below starts from legal values
func (r *run) prune() error {
	if fields := r.reg.Prune(r.draft); len(fields) > 0 {
		slog.Debug("locked choices pruned", "draft_id", r.draft.ID, "fields", fields)
	}
	return nil
}

// proficiencies fills skill, language and tool choice groups. An unlocked
// field is drawn fresh; a locked one keeps its picks and only tops up
// groups that still have room.
func (r *run) proficiencies() error {
	groups := r.reg.ChoiceGroups(r.draft)
	grants := r.reg.Grants(r.draft)

	targets := []struct {
		field   character.Field
		kind    srd.ProficiencyKind
		current *[]string
		granted []string
	}{
		{character.FieldSkills, srd.KindSkill, &r.draft.Skills, grants.Skills},
		{character.FieldLanguages, srd.KindLanguage, &r.draft.Languages, grants.Languages},
		{character.FieldTools, srd.KindTool, &r.draft.Tools, grants.Tools},
	}

	for _, t := range targets {
		var existing []string
		if r.locked(t.field) {
			existing = *t.current
		}
		picked, err := r.fillGroups(groups, t.kind, existing, t.granted)
		if err != nil {
			return err
		}
		*t.current = picked
	}
	return nil
}

func (r *run) fillGroups(groups []registry.ChoiceGroup, kind srd.ProficiencyKind, existing, granted []string) ([]string, error) {
	chosen := character.SortedSet(existing)
	taken := make(map[string]bool, len(chosen)+len(granted))
	for _, v := range granted {
		taken[v] = true
	}
	consumed := make(map[string]bool, len(chosen))

	for _, g := range groups {
		if g.Kind != kind {
			continue
		}
		need := g.Choose
		for _, v := range chosen {
			if need == 0 {
				break
			}
			if !consumed[v] && contains(g.Options, v) {
				consumed[v] = true
				need--
			}
		}
		if need <= 0 {
			continue
		}

		var pool []string
		for _, opt := range g.Options {
			if !taken[opt] && !contains(chosen, opt) {
				pool = append(pool, opt)
			}
		}
		picks, err := rng.Sample(r.roller, pool, need)
		if err != nil {
			return nil, err
		}
		for _, p := range picks {
			consumed[p] = true
			chosen = append(chosen, p)
		}
	}
	return character.SortedSet(chosen), nil
}

func (r *run) expertise() error {
	if r.locked(character.FieldExpertise) {
		return nil
	}
	count := r.expertiseSlots()
	if count == 0 {
		r.draft.Expertise = nil
		return nil
	}

	grants := r.reg.Grants(r.draft)
	pool := character.SortedSet(append(append([]string{}, grants.Skills...), r.draft.Skills...))
	picks, err := rng.Sample(r.roller, pool, count)
	if err != nil {
		return err
	}
	r.draft.Expertise = character.SortedSet(picks)
	return nil
}

// expertiseSlots counts the expertise features the class has reached
func (r *run) expertiseSlots() int {
	slots := 0
	for lvl := 1; lvl <= r.draft.EffectiveLevel(); lvl++ {
		row, ok := r.reg.ClassLevel(r.draft.Class, lvl)
		if !ok {
			continue
		}
		for _, f := range row.Features {
			if strings.HasPrefix(f.Key(), "expertise") {
				slots += expertisePerFeature
			}
		}
	}
	return slots
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
