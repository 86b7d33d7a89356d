package synthesizer

import (
	"github.com/KirkDiggler/rpg-charbuilder/internal/engine"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/rng"
)

// spells picks cantrips and leveled spells up to the limits the derived
// snapshot reports. Themed spells fill up to half of each pick.
func (r *run) spells() error {
	if r.locked(character.FieldSpells) {
		return nil
	}
	r.draft.Spells = nil

	out, err := r.o.engine.Derive(r.ctx, &engine.DeriveInput{Draft: r.draft, Registry: r.reg})
	if err != nil {
		return err
	}
	sc := out.Snapshot.Spellcasting
	if sc == nil {
		return nil
	}

	var cantrips, leveled []*srd.Spell
	for _, spell := range r.reg.SpellsForClass(r.draft.Class, r.draft.Subclass) {
		switch {
		case spell.Level == 0:
			cantrips = append(cantrips, spell)
		case spell.Level <= sc.MaxSpellLevel:
			leveled = append(leveled, spell)
		}
	}

	selection := map[string]character.SpellSelection{}

	picked, err := r.pickThemed(cantrips, sc.CantripsKnown)
	if err != nil {
		return err
	}
	for _, spell := range picked {
		selection[spell.Index] = character.SpellSelection{Known: true, Prepared: true}
	}

	count := sc.SpellsKnown
	if sc.Prepares {
		count = sc.PreparedLimit
	}
	if count == 0 {
		for _, n := range sc.Slots {
			count += n
		}
	}
	picked, err = r.pickThemed(leveled, count)
	if err != nil {
		return err
	}
	for _, spell := range picked {
		selection[spell.Index] = character.SpellSelection{Known: true, Prepared: sc.Prepares}
	}

	if len(selection) > 0 {
		r.draft.Spells = selection
	}
	return nil
}

func (r *run) pickThemed(pool []*srd.Spell, n int) ([]*srd.Spell, error) {
	if n <= 0 || len(pool) == 0 {
		return nil, nil
	}

	schools := r.o.tuning.SpellThemes[r.draft.Subclass]
	var themed, rest []*srd.Spell
	for _, spell := range pool {
		if r.isThemed(spell, schools) {
			themed = append(themed, spell)
		} else {
			rest = append(rest, spell)
		}
	}

	picked, err := rng.Sample(r.roller, themed, (n+1)/2)
	if err != nil {
		return nil, err
	}
	chosen := make(map[string]bool, len(picked))
	for _, s := range picked {
		chosen[s.Index] = true
	}
	for _, s := range themed {
		if !chosen[s.Index] {
			rest = append(rest, s)
		}
	}

	more, err := rng.Sample(r.roller, rest, n-len(picked))
	if err != nil {
		return nil, err
	}
	return append(picked, more...), nil
}

func (r *run) isThemed(spell *srd.Spell, schools []string) bool {
	if r.draft.Subclass != "" {
		for _, sub := range spell.Subclasses {
			if sub.Key() == r.draft.Subclass {
				return true
			}
		}
	}
	school := spell.School.Key()
	for _, s := range schools {
		if s == school {
			return true
		}
	}
	return false
}
