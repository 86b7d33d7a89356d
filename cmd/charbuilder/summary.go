package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/rpg-charbuilder/internal/engine"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/orchestrators/builder"
)

// formatSummary prints the draft as field lines instead of an export
const formatSummary = "summary"

var title = cases.Title(language.English)

// writeSummary prints every field with its lock marker, followed by the
// headline numbers of the snapshot when there is one
func writeSummary(w io.Writer, d *character.Draft, snap *engine.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "draft\t%s\n", d.ID)
	for _, f := range character.Fields() {
		value := builder.FormatValue(d, f)
		if value == "" {
			value = "-"
		}
		if r := []rune(value); f == character.FieldBiography && len(r) > 60 {
			value = string(r[:57]) + "..."
		}
		marker := " "
		if d.Locked(f) {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s %s\t%s\n", marker, f, value)
	}

	if snap != nil {
		fmt.Fprintln(tw, "")
		fmt.Fprintf(tw, "level\t%d (proficiency +%d)\n", snap.Level, snap.ProficiencyBonus)
		fmt.Fprintf(tw, "hit points\t%d (d%d)\n", snap.MaxHitPoints, snap.HitDie)
		fmt.Fprintf(tw, "armor class\t%d%s\n", snap.ArmorClass, armorNote(snap))
		fmt.Fprintf(tw, "speed\t%d ft\n", snap.Speed)
		fmt.Fprintf(tw, "abilities\t%s\n", abilityLine(snap))
		fmt.Fprintf(tw, "passive perception\t%d\n", snap.PassivePerception)
		if sc := snap.Spellcasting; sc != nil {
			fmt.Fprintf(tw, "spellcasting\t%s, DC %d, %+d to hit\n", sc.Ability.Upper(), sc.SaveDC, sc.AttackBonus)
		}
		fmt.Fprintf(tw, "wealth\t%.2f gp\n", snap.WealthGold)
	}

	return tw.Flush()
}

func armorNote(snap *engine.Snapshot) string {
	var parts []string
	if snap.ArmorName != "" {
		parts = append(parts, title.String(strings.ReplaceAll(snap.ArmorName, "-", " ")))
	}
	if snap.Shield {
		parts = append(parts, "shield")
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func abilityLine(snap *engine.Snapshot) string {
	parts := make([]string, 0, len(character.Abilities()))
	for _, a := range character.Abilities() {
		score := snap.Abilities[a]
		parts = append(parts, fmt.Sprintf("%s %d (%+d)", a.Upper(), score.Total, score.Modifier))
	}
	return strings.Join(parts, "  ")
}
