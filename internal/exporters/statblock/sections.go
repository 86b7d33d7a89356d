package statblock

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
	"github.com/KirkDiggler/rpg-charbuilder/internal/flavor"
)

// challengeXP is the experience award for each challenge rating 0 through 30
var challengeXP = [...]int{
	10, 200, 450, 700, 1100, 1800, 2300, 2900, 3900, 5000,
	5900, 7200, 8400, 10000, 11500, 13000, 15000, 18000, 20000, 22000,
	25000, 33000, 41000, 50000, 62000, 75000, 90000, 105000, 120000, 135000,
	155000,
}

var abilityNames = map[character.Ability]string{
	character.AbilityStrength:     "Strength",
	character.AbilityDexterity:    "Dexterity",
	character.AbilityConstitution: "Constitution",
	character.AbilityIntelligence: "Intelligence",
	character.AbilityWisdom:       "Wisdom",
	character.AbilityCharisma:     "Charisma",
}

var (
	secondPerson = regexp.MustCompile(`\b(?:You|you|Your|your)\b`)
	diceCount    = regexp.MustCompile(`^(\d+)d(\d+)`)
	titleCaser   = cases.Title(language.English)
)

// challengeLine uses character level as the challenge rating
func challengeLine(level int) string {
	cr := min(max(level, 0), len(challengeXP)-1)
	return fmt.Sprintf("Challenge %d (%s XP)", cr, thousands(challengeXP[cr]))
}

func thousands(n int) string {
	s := strconv.Itoa(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}

func ordinal(n int) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	suffix := "th"
	if n%100 < 10 || n%100 > 20 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

func titleCase(s string) string {
	return titleCaser.String(s)
}

// withBonus appends a signed flat bonus to dice notation: "1d8 + 3", "1d8 - 1"
func withBonus(dice string, bonus int) string {
	switch {
	case bonus > 0:
		return fmt.Sprintf("%s + %d", dice, bonus)
	case bonus < 0:
		return fmt.Sprintf("%s - %d", dice, -bonus)
	}
	return dice
}

// averageDamage is the floored mean of the dice plus bonus, never negative
func averageDamage(dice string, bonus int) int {
	m := diceCount.FindStringSubmatch(dice)
	if m == nil {
		return max(bonus, 0)
	}
	count, _ := strconv.Atoi(m[1])
	faces, _ := strconv.Atoi(m[2])
	avg := float64(count)*float64(faces+1)/2 + float64(bonus)
	return max(int(math.Floor(avg)), 0)
}

// thirdPerson rewrites "you" and "your" to refer to subject. A proper name
// keeps its case; the generic subject follows the case of the word it replaces.
func thirdPerson(text, subject string) string {
	generic := subject == ""
	if generic {
		subject = "the creature"
	}
	return secondPerson.ReplaceAllStringFunc(text, func(word string) string {
		out := subject
		if generic && word[0] == 'Y' {
			out = titleCase(out[:1]) + out[1:]
		}
		if strings.EqualFold(word, "your") {
			out += "'s"
		}
		return out
	})
}

// spellcasting summarizes casting ability and the draft's spells by level.
// Prepared spells are listed when any are marked, otherwise every known spell.
func (s *sheet) spellcasting() string {
	sc := s.snap.Spellcasting
	if sc == nil || len(s.draft.Spells) == 0 {
		return ""
	}

	anyPrepared := false
	for _, sel := range s.draft.Spells {
		if sel.Prepared {
			anyPrepared = true
			break
		}
	}

	byLevel := map[int][]string{}
	for _, idx := range s.draft.SpellIndexes() {
		sel := s.draft.Spells[idx]
		spell, ok := s.reg.Spell(idx)
		if !ok {
			continue
		}
		if anyPrepared && !sel.Prepared && spell.Level > 0 {
			continue
		}
		byLevel[spell.Level] = append(byLevel[spell.Level], spell.Name)
	}
	if len(byLevel) == 0 {
		return ""
	}

	levels := make([]int, 0, len(byLevel))
	for lvl := range byLevel {
		levels = append(levels, lvl)
	}
	sort.Ints(levels)

	possessive := flavor.PronounsFor(s.draft.Gender).Possessive
	parts := []string{fmt.Sprintf(
		"%s is a %s-level spellcaster. %s spellcasting ability is %s (spell save DC %d, %+d to hit with spell attacks).",
		s.name, ordinal(s.snap.Level), titleCase(possessive), abilityNames[sc.Ability], sc.SaveDC, sc.AttackBonus,
	)}
	for _, lvl := range levels {
		names := byLevel[lvl]
		sort.Strings(names)
		prefix := "Cantrips (at will)"
		if lvl > 0 {
			prefix = ordinal(lvl) + " level"
			if lvl < len(sc.Slots) && sc.Slots[lvl] > 0 {
				prefix += fmt.Sprintf(" (%d slots)", sc.Slots[lvl])
			}
		}
		parts = append(parts, prefix+": "+strings.Join(names, ", "))
	}
	return strings.Join(parts, " ")
}

// actions lists one attack per distinct weapon in the inventory. A weapon
// carried more than once is listed with its best magic bonus.
func (s *sheet) actions() []string {
	var order []string
	best := map[string]int{}
	for _, line := range s.draft.Inventory {
		e, ok := s.reg.Equipment(line.Index)
		if !ok || !e.IsWeapon() || e.Damage == nil || e.Damage.DamageDice == "" {
			continue
		}
		bonus, seen := best[e.Index]
		if !seen {
			order = append(order, e.Index)
		}
		if !seen || line.MagicBonus > bonus {
			best[e.Index] = line.MagicBonus
		}
	}

	out := make([]string, 0, len(order))
	for _, idx := range order {
		e, _ := s.reg.Equipment(idx)
		out = append(out, s.weaponAction(e, best[idx]))
	}
	return out
}

func (s *sheet) weaponAction(e *srd.Equipment, magic int) string {
	name := e.Name
	if magic > 0 && !strings.HasSuffix(name, fmt.Sprintf("+%d", magic)) {
		name = fmt.Sprintf("%s +%d", name, magic)
	}

	ranged := strings.EqualFold(e.WeaponRange, "ranged")
	mod := s.snap.Modifier(character.AbilityStrength)
	if ranged {
		mod = s.snap.Modifier(character.AbilityDexterity)
	} else if e.HasProperty("finesse") {
		mod = max(mod, s.snap.Modifier(character.AbilityDexterity))
	}

	attack := mod + s.snap.ProficiencyBonus + magic
	damageBonus := mod + magic
	dice := e.Damage.DamageDice
	damageType := strings.ToLower(e.Damage.DamageType.Name)
	if damageType == "" {
		damageType = strings.ReplaceAll(e.Damage.DamageType.Key(), "-", " ")
	}
	if damageType == "" {
		damageType = "damage"
	}

	kind, reach := "Melee Weapon Attack", "reach 5 ft."
	switch {
	case ranged:
		normal, long := 20, 60
		if e.Range != nil {
			if e.Range.Normal > 0 {
				normal = e.Range.Normal
			}
			if e.Range.Long > 0 {
				long = e.Range.Long
			}
		}
		kind, reach = "Ranged Weapon Attack", fmt.Sprintf("range %d/%d ft.", normal, long)
	case e.HasProperty("reach"):
		reach = "reach 10 ft."
	}

	return fmt.Sprintf("%s. %s: %+d to hit, %s, one target. Hit: %d (%s) %s damage.",
		name, kind, attack, reach, averageDamage(dice, damageBonus), withBonus(dice, damageBonus), damageType)
}

func (s *sheet) unarmedStrike() string {
	mod := s.snap.Modifier(character.AbilityStrength)
	return fmt.Sprintf("Unarmed Strike. Melee Weapon Attack: %+d to hit, reach 5 ft., one target. Hit: %d bludgeoning damage.",
		mod+s.snap.ProficiencyBonus, max(1, 1+mod))
}
