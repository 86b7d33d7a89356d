// Package flavor produces the narrative parts of a character: names,
// hometowns and the biography paragraph.
package flavor

//go:generate mockgen -destination=mock/mock_biographer.go -package=flavormock github.com/KirkDiggler/rpg-charbuilder/internal/flavor Biographer

import (
	"context"
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
	"github.com/KirkDiggler/rpg-charbuilder/internal/pkg/rng"
	"github.com/KirkDiggler/rpg-charbuilder/internal/registry"
)

// Biographer writes a biography for a draft
type Biographer interface {
	Write(ctx context.Context, input *WriteInput) (*WriteOutput, error)
}

// WriteInput carries the draft and the random source
type WriteInput struct {
	Draft    *character.Draft
	Registry *registry.Registry
	Roller   dice.Roller
}

// WriteOutput holds the generated text
type WriteOutput struct {
	Biography string
}

type templateBiographer struct{}

// NewTemplateBiographer returns the built-in biographer
func NewTemplateBiographer() Biographer {
	return &templateBiographer{}
}

// Write composes the opening line, a background sentence, a goal with a
// quirk, and a physical description
func (b *templateBiographer) Write(ctx context.Context, input *WriteInput) (*WriteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateNotNil("Draft", input.Draft != nil, vb)
	errors.ValidateNotNil("Registry", input.Registry != nil, vb)
	errors.ValidateNotNil("Roller", input.Roller != nil, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "biography canceled")
	}

	w := &writer{draft: input.Draft, reg: input.Registry, roller: input.Roller, pronouns: PronounsFor(input.Draft.Gender)}

	var sentences []string
	for _, step := range []func() (string, error){w.opening, w.background, w.hook, w.physical} {
		s, err := step()
		if err != nil {
			return nil, errors.Wrap(err, "failed to write biography")
		}
		if s != "" {
			sentences = append(sentences, s)
		}
	}

	return &WriteOutput{Biography: strings.Join(sentences, " ")}, nil
}

type writer struct {
	draft    *character.Draft
	reg      *registry.Registry
	roller   dice.Roller
	pronouns Pronouns
}

func (w *writer) opening() (string, error) {
	descriptor, err := rng.Pick(w.roller, levelDescriptors[levelBand(w.draft.EffectiveLevel())])
	if err != nil {
		return "", err
	}

	raceName := "humanoid"
	if race, ok := w.reg.Race(w.draft.Race); ok {
		raceName = strings.ToLower(race.Name)
	}

	classLabel := "adventurer"
	if class, ok := w.reg.Class(w.draft.Class); ok {
		classLabel = class.Name
		if sub, ok := w.reg.Subclass(w.draft.Subclass); ok {
			classLabel = sub.Name + " " + class.Name
		}
	}

	origin := w.draft.Hometown
	if origin == "" {
		if places := w.reg.Hometowns().Lookup(w.draft.Race); len(places) > 0 {
			origin, err = rng.Pick(w.roller, places)
		} else {
			origin, err = BuiltinOrigin(w.roller)
		}
		if err != nil {
			return "", err
		}
	}

	name := w.draft.Name
	if name == "" {
		name = "This wanderer"
	}

	return fmt.Sprintf("%s is %s %s %s %s from %s.",
		name, article(descriptor), descriptor, raceName, classLabel, origin), nil
}

func (w *writer) background() (string, error) {
	bgName := "wanderer"
	if bg, ok := w.reg.Background(w.draft.Background); ok {
		bgName = strings.ToLower(bg.Name)
		if tmpl, ok := backgroundSentences[strings.ToLower(bg.Index)]; ok {
			return w.fill(tmpl, bgName), nil
		}
	}
	tmpl, err := rng.Pick(w.roller, genericBackgrounds)
	if err != nil {
		return "", err
	}
	return w.fill(tmpl, bgName), nil
}

func (w *writer) hook() (string, error) {
	goal, err := rng.Pick(w.roller, goals)
	if err != nil {
		return "", err
	}
	quirk, err := rng.Pick(w.roller, quirks)
	if err != nil {
		return "", err
	}
	ideal, err := rng.Pick(w.roller, ideals)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s while %s, guided above all by %s.",
		capitalize(w.pronouns.Subject), w.agree(w.fill(goal, "")), w.fill(quirk, ""), ideal), nil
}

func (w *writer) physical() (string, error) {
	if w.draft.Race == "" {
		return "", nil
	}
	p := ProfileFor(w.draft.Race)

	heightRoll, err := rollSum(w.roller, p.HeightDice)
	if err != nil {
		return "", err
	}
	weightRoll, err := rollSum(w.roller, p.WeightDice)
	if err != nil {
		return "", err
	}
	age, err := rng.Between(w.roller, p.MinAge, p.MaxAge)
	if err != nil {
		return "", err
	}

	height := p.BaseHeight + heightRoll
	weight := p.BaseWeight + weightRoll*p.WeightMultiplier
	return fmt.Sprintf("Standing %d'%d\" and weighing about %d pounds, %s %s to be roughly %d years old.",
		height/12, height%12, weight, w.pronouns.Subject, w.agree("appears"), age), nil
}

func (w *writer) fill(tmpl, background string) string {
	return w.pronouns.replacer("{background}", background).Replace(tmpl)
}

// agree drops the third person "s" from the leading verb for they/them
func (w *writer) agree(phrase string) string {
	if !w.pronouns.Plural() {
		return phrase
	}
	verb, rest, _ := strings.Cut(phrase, " ")
	verb = strings.TrimSuffix(verb, "s")
	if rest == "" {
		return verb
	}
	return verb + " " + rest
}

// ProfileFor returns the physical profile for a race, trying the race index
// and its hyphen parts before falling back to human
func ProfileFor(race string) PhysicalProfile {
	for _, key := range registry.RaceCandidates(race) {
		if p, ok := physicalProfiles[key]; ok {
			return p
		}
	}
	return physicalProfiles["human"]
}

func levelBand(level int) string {
	switch {
	case level >= 15:
		return bandLegend
	case level >= 9:
		return bandVeteran
	case level >= 5:
		return bandJourneyman
	default:
		return bandNovice
	}
}

func article(word string) string {
	if word != "" && strings.ContainsRune("aeiouAEIOU", rune(word[0])) {
		return "an"
	}
	return "a"
}

func rollSum(roller dice.Roller, d diceSpec) (int, error) {
	rolls, err := roller.RollN(d.Count, d.Sides)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to roll %dd%d", d.Count, d.Sides)
	}
	total := 0
	for _, r := range rolls {
		total += r
	}
	return total, nil
}
