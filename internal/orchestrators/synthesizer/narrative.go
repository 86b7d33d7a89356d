package synthesizer

import (
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/flavor"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/rng"
)

var drawnGenders = []string{character.GenderMale, character.GenderFemale}

func (r *run) gender() error {
	if r.locked(character.FieldGender) {
		return nil
	}
	g, err := rng.Pick(r.roller, drawnGenders)
	if err != nil {
		return err
	}
	r.draft.Gender = g
	return nil
}

// name prefers the override table and falls back to the built-in tables
func (r *run) name() error {
	if r.locked(character.FieldName) {
		return nil
	}
	if names := r.reg.Names().Lookup(r.draft.Race, r.draft.Gender); len(names) > 0 {
		name, err := rng.Pick(r.roller, names)
		if err != nil {
			return err
		}
		r.draft.Name = name
		return nil
	}
	name, err := flavor.BuiltinName(r.roller, r.draft.Race, r.draft.Gender)
	if err != nil {
		return err
	}
	r.draft.Name = name
	return nil
}

func (r *run) hometown() error {
	if r.locked(character.FieldHometown) {
		return nil
	}
	if places := r.reg.Hometowns().Lookup(r.draft.Race); len(places) > 0 {
		place, err := rng.Pick(r.roller, places)
		if err != nil {
			return err
		}
		r.draft.Hometown = place
		return nil
	}
	place, err := flavor.BuiltinOrigin(r.roller)
	if err != nil {
		return err
	}
	r.draft.Hometown = place
	return nil
}

func (r *run) biography() error {
	if r.locked(character.FieldBiography) {
		return nil
	}
	out, err := r.o.biographer.Write(r.ctx, &flavor.WriteInput{
		Draft:    r.draft,
		Registry: r.reg,
		Roller:   r.roller,
	})
	if err != nil {
		return err
	}
	r.draft.Biography = out.Biography
	return nil
}
