package registry

import (
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
)

// Prune drops the values a structural change made illegal: a subrace of
// another race, a subclass of another class or above the level, list
// choices the race, class, background or level no longer offer, and
// spells outside the class list. Cleared subrace and subclass lose their
// lock; list fields keep their legal part and their lock. It returns the
// fields it touched.
func (r *Registry) Prune(d *character.Draft) []character.Field {
	var pruned []character.Field
	opts := r.ResolveChoiceOptions(d)

	if d.Subrace != "" && !opts.Allows(character.FieldSubrace, d.Subrace) {
		d.Subrace = ""
		d.Unlock(character.FieldSubrace)
		pruned = append(pruned, character.FieldSubrace)
	}
	if d.Subclass != "" && !opts.Allows(character.FieldSubclass, d.Subclass) {
		d.Subclass = ""
		d.Unlock(character.FieldSubclass)
		pruned = append(pruned, character.FieldSubclass)
	}
	if len(pruned) > 0 {
		opts = r.ResolveChoiceOptions(d)
	}

	for _, f := range []character.Field{
		character.FieldSkills, character.FieldLanguages, character.FieldTools, character.FieldFeats,
	} {
		if pruneList(d.List(f), opts, f) {
			pruned = append(pruned, f)
		}
	}

	// expertise options follow the skills that survived
	opts = r.ResolveChoiceOptions(d)
	if pruneList(d.List(character.FieldExpertise), opts, character.FieldExpertise) {
		pruned = append(pruned, character.FieldExpertise)
	}

	dropped := false
	for idx := range d.Spells {
		if !opts.Allows(character.FieldSpells, idx) {
			delete(d.Spells, idx)
			dropped = true
		}
	}
	if dropped {
		if len(d.Spells) == 0 {
			d.Spells = nil
		}
		pruned = append(pruned, character.FieldSpells)
	}

	return pruned
}

func pruneList(values *[]string, opts *Options, f character.Field) bool {
	var kept []string
	for _, v := range *values {
		if opts.Allows(f, v) {
			kept = append(kept, v)
		}
	}
	if limit := opts.Limit(f); limit >= 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	if len(kept) == len(*values) {
		return false
	}
	*values = kept
	return true
}
