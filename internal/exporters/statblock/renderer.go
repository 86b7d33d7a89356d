// Package statblock renders a character as a plain-text NPC statblock in the
// layout the 5e Statblock Importer reads.
package statblock

//go:generate mockgen -destination=mock/mock_renderer.go -package=statblockmock github.com/KirkDiggler/rpg-charbuilder/internal/exporters/statblock Renderer

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/rpg-charbuilder/internal/engine"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	"github.com/KirkDiggler/rpg-charbuilder/internal/exporters"
	"github.com/KirkDiggler/rpg-charbuilder/internal/flavor"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-charbuilder/internal/registry"
)

// UnnamedCreature is the heading used when the draft has no name
const UnnamedCreature = "Unnamed Adventurer"

// Renderer renders statblocks
type Renderer interface {
	Render(ctx context.Context, input *RenderInput) (*RenderOutput, error)
}

// RenderInput carries the resolved draft and its derived snapshot
type RenderInput struct {
	Draft    *character.Draft
	Snapshot *engine.Snapshot
	Registry *registry.Registry
}

// RenderOutput holds the statblock text, newline terminated
type RenderOutput struct {
	Text string
}

type renderer struct {
	biographer flavor.Biographer
}

// New returns a statblock renderer. When biographer is set, a draft without
// a biography gets one written for its Description section; the roller is
// seeded from the draft ID so the same draft renders the same text. A nil
// biographer leaves the section out.
func New(biographer flavor.Biographer) Renderer {
	return &renderer{biographer: biographer}
}

// Render writes the sections in importer order: heading, defenses, ability
// table, proficiencies and senses, challenge, traits, actions, description
func (r *renderer) Render(ctx context.Context, input *RenderInput) (*RenderOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateNotNil("Draft", input.Draft != nil, vb)
	errors.ValidateNotNil("Snapshot", input.Snapshot != nil, vb)
	errors.ValidateNotNil("Registry", input.Registry != nil, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "render canceled")
	}
	if err := exporters.CheckComplete(input.Draft); err != nil {
		return nil, err
	}

	s := &sheet{draft: input.Draft, snap: input.Snapshot, reg: input.Registry}
	s.name = s.draft.Name
	if s.name == "" {
		s.name = UnnamedCreature
	}

	var lines []string
	add := func(l ...string) { lines = append(lines, l...) }

	add(s.name, s.subtitle(), "")
	add(s.armorClass(), s.hitPoints(), fmt.Sprintf("Speed %d ft.", s.snap.Speed), "")
	add(s.abilityTable()...)
	add("")
	if l := s.savingThrows(); l != "" {
		add("Saving Throws " + l)
	}
	if l := s.skills(); l != "" {
		add("Skills " + l)
	}
	add("Senses " + s.senses())
	if l := s.languages(); l != "" {
		add("Languages " + l)
	}
	if l := s.classLine(); l != "" {
		add(l)
	}
	add(challengeLine(s.snap.Level))
	add(fmt.Sprintf("Proficiency Bonus %+d", s.snap.ProficiencyBonus), "")

	if traits := s.traits(); len(traits) > 0 {
		add("Traits")
		add(traits...)
		add("")
	}

	add("Actions")
	if actions := s.actions(); len(actions) > 0 {
		add(actions...)
	} else {
		add(s.unarmedStrike())
	}

	bio, err := r.description(ctx, s)
	if err != nil {
		return nil, err
	}
	if bio != "" {
		add("", "Description", thirdPerson(bio, s.name))
	}

	slog.Debug("Rendered statblock", "name", s.name, "lines", len(lines))

	return &RenderOutput{Text: strings.Join(lines, "\n") + "\n"}, nil
}

func (r *renderer) description(ctx context.Context, s *sheet) (string, error) {
	if bio := strings.TrimSpace(s.draft.Biography); bio != "" || r.biographer == nil {
		return bio, nil
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(s.draft.ID))
	out, err := r.biographer.Write(ctx, &flavor.WriteInput{
		Draft:    s.draft,
		Registry: s.reg,
		Roller:   rng.NewSeeded(int64(h.Sum64())), // #nosec G115 seed only
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to write statblock description")
	}
	return strings.TrimSpace(out.Biography), nil
}

// sheet holds one render's inputs
type sheet struct {
	name  string
	draft *character.Draft
	snap  *engine.Snapshot
	reg   *registry.Registry
}

func (s *sheet) subtitle() string {
	size := "Medium"
	if s.snap.Size != "" {
		size = titleCase(s.snap.Size)
	}
	race := "humanoid"
	if entry, ok := s.reg.Race(s.draft.Race); ok {
		race = strings.ToLower(entry.Name)
	}
	alignment := "unaligned"
	if s.draft.Alignment != "" {
		alignment = strings.ToLower(s.reg.DisplayName(srd.CategoryAlignment, s.draft.Alignment))
	}
	return fmt.Sprintf("%s humanoid (%s), %s", size, race, alignment)
}

func (s *sheet) armorClass() string {
	var detail []string
	if s.snap.ArmorName != "" {
		detail = append(detail, s.snap.ArmorName)
	}
	if s.snap.Shield {
		detail = append(detail, "Shield")
	}
	if len(detail) == 0 {
		return fmt.Sprintf("Armor Class %d", s.snap.ArmorClass)
	}
	return fmt.Sprintf("Armor Class %d (%s)", s.snap.ArmorClass, strings.Join(detail, ", "))
}

func (s *sheet) hitPoints() string {
	hp := max(s.snap.MaxHitPoints, 1)
	if s.snap.HitDie == 0 {
		return fmt.Sprintf("Hit Points %d", hp)
	}
	dice := fmt.Sprintf("%dd%d", s.snap.Level, s.snap.HitDie)
	return fmt.Sprintf("Hit Points %d (%s)", hp, withBonus(dice, s.snap.Level*s.snap.Modifier(character.AbilityConstitution)))
}

func (s *sheet) abilityTable() []string {
	header := make([]string, 0, 6)
	values := make([]string, 0, 6)
	for _, a := range character.Abilities() {
		score := s.snap.Abilities[a]
		header = append(header, a.Upper())
		values = append(values, fmt.Sprintf("%d (%+d)", score.Total, score.Modifier))
	}
	return []string{strings.Join(header, " "), strings.Join(values, "  ")}
}

func (s *sheet) savingThrows() string {
	var parts []string
	for _, a := range character.Abilities() {
		if st := s.snap.SavingThrows[a]; st.Proficient {
			parts = append(parts, fmt.Sprintf("%s %+d", a.Upper(), st.Modifier))
		}
	}
	return strings.Join(parts, ", ")
}

func (s *sheet) skills() string {
	var parts []string
	for _, skill := range character.Skills() {
		bonus := s.snap.Skills[skill]
		if bonus.Multiplier == 0 {
			continue
		}
		name := titleCase(strings.ReplaceAll(skill, "-", " "))
		if entry, ok := s.reg.Skill(skill); ok {
			name = entry.Name
		}
		parts = append(parts, fmt.Sprintf("%s %+d", name, bonus.Bonus))
	}
	return strings.Join(parts, ", ")
}

func (s *sheet) senses() string {
	passive := fmt.Sprintf("passive Perception %d", s.snap.PassivePerception)
	if s.snap.Darkvision > 0 {
		return fmt.Sprintf("darkvision %d ft., %s", s.snap.Darkvision, passive)
	}
	return passive
}

func (s *sheet) languages() string {
	names := make([]string, 0, len(s.snap.Languages))
	for _, idx := range s.snap.Languages {
		if idx == "" {
			continue
		}
		name := s.reg.DisplayName(srd.CategoryLanguage, idx)
		if name == idx {
			name = titleCase(strings.ReplaceAll(idx, "-", " "))
		}
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}

func (s *sheet) classLine() string {
	class, ok := s.reg.Class(s.draft.Class)
	if !ok {
		return ""
	}
	parts := []string{ordinal(s.snap.Level) + "-level"}
	if sub, ok := s.reg.Subclass(s.draft.Subclass); ok {
		parts = append(parts, sub.Name)
	}
	parts = append(parts, class.Name)
	return "Class " + strings.Join(parts, " ")
}

// traits lists the spellcasting summary first, then every granted feature
// with its text rewritten to the third person
func (s *sheet) traits() []string {
	var out []string
	if sc := s.spellcasting(); sc != "" {
		out = append(out, "Spellcasting. "+sc)
	}
	for _, f := range s.snap.Features {
		text := f.Text
		if len(text) == 0 && f.Desc != "" {
			text = []string{f.Desc}
		}
		var parts []string
		for _, line := range text {
			if line = strings.TrimSpace(line); line != "" {
				parts = append(parts, thirdPerson(line, s.name))
			}
		}
		name := f.Name
		if name == "" {
			name = "Trait"
		}
		if len(parts) == 0 {
			out = append(out, name+".")
			continue
		}
		out = append(out, name+". "+strings.Join(parts, " "))
	}
	return out
}
