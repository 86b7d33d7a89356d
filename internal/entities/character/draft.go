// Package character holds the mutable character draft and the field and
// lock vocabulary shared by the builder, the synthesizer and the exporters.
package character

import (
	"sort"

	"github.com/KirkDiggler/rpg-toolkit/core"
)

// EntityType identifies drafts when they act as an event source
const EntityType = "character_draft"

// Genders the builder understands. The synthesizer only draws male or female.
const (
	GenderMale      = "male"
	GenderFemale    = "female"
	GenderNonbinary = "nonbinary"
)

// MaxLevel is the highest character level
const MaxLevel = 20

// MaxMagicBonus caps the enhancement bonus of an inventory item
const MaxMagicBonus = 3

// Draft is the single in-progress character. Zero values mean unset.
type Draft struct {
	ID             string                    `json:"id"`
	Name           string                    `json:"name,omitempty"`
	Level          int                       `json:"level,omitempty"`
	Race           string                    `json:"race,omitempty"`
	Subrace        string                    `json:"subrace,omitempty"`
	Class          string                    `json:"class,omitempty"`
	Subclass       string                    `json:"subclass,omitempty"`
	Background     string                    `json:"background,omitempty"`
	Alignment      string                    `json:"alignment,omitempty"`
	Gender         string                    `json:"gender,omitempty"`
	Hometown       string                    `json:"hometown,omitempty"`
	AbilityScores  map[Ability]int           `json:"ability_scores,omitempty"`
	AbilityBonuses map[Ability]int           `json:"ability_bonuses,omitempty"`
	Skills         []string                  `json:"skills,omitempty"`
	Expertise      []string                  `json:"expertise,omitempty"`
	Languages      []string                  `json:"languages,omitempty"`
	Tools          []string                  `json:"tools,omitempty"`
	Feats          []string                  `json:"feats,omitempty"`
	Spells         map[string]SpellSelection `json:"spells,omitempty"`
	Inventory      []Item                    `json:"inventory,omitempty"`
	Currency       Currency                  `json:"currency"`
	HitPointRolls  []int                     `json:"hit_point_rolls,omitempty"`
	Biography      string                    `json:"biography,omitempty"`
	Notes          string                    `json:"notes,omitempty"`
	Locks          Locks                     `json:"locks,omitempty"`
}

// SpellSelection flags a chosen spell
type SpellSelection struct {
	Known    bool `json:"known"`
	Prepared bool `json:"prepared"`
}

// Item is one inventory line
type Item struct {
	Index      string `json:"index"`
	Quantity   int    `json:"quantity"`
	MagicBonus int    `json:"magic_bonus,omitempty"`
	Equipped   bool   `json:"equipped,omitempty"`
}

// Currency counts coins per denomination
type Currency struct {
	PP int `json:"pp"`
	GP int `json:"gp"`
	EP int `json:"ep"`
	SP int `json:"sp"`
	CP int `json:"cp"`
}

// Copper values of each denomination
const (
	CopperPerPP = 1000
	CopperPerGP = 100
	CopperPerEP = 50
	CopperPerSP = 10
)

// TotalCopper returns the total value in copper pieces
func (c Currency) TotalCopper() int {
	return c.PP*CopperPerPP + c.GP*CopperPerGP + c.EP*CopperPerEP + c.SP*CopperPerSP + c.CP
}

// IsZero reports whether no coins are held
func (c Currency) IsZero() bool {
	return c == Currency{}
}

// New returns a blank sheet
func New(id string) *Draft {
	return &Draft{
		ID:    id,
		Locks: Locks{},
	}
}

var _ core.Entity = (*Draft)(nil)

// GetID implements core.Entity
func (d *Draft) GetID() string {
	return d.ID
}

// GetType implements core.Entity
func (d *Draft) GetType() string {
	return EntityType
}

// Reset returns the draft to the blank sheet, keeping its ID
func (d *Draft) Reset() {
	*d = Draft{ID: d.ID, Locks: Locks{}}
}

// EffectiveLevel returns the level, treating unset as 1
func (d *Draft) EffectiveLevel() int {
	if d.Level < 1 {
		return 1
	}
	return d.Level
}

// IsSet reports whether a field holds a value
func (d *Draft) IsSet(f Field) bool {
	switch f {
	case FieldName:
		return d.Name != ""
	case FieldLevel:
		return d.Level > 0
	case FieldRace:
		return d.Race != ""
	case FieldSubrace:
		return d.Subrace != ""
	case FieldClass:
		return d.Class != ""
	case FieldSubclass:
		return d.Subclass != ""
	case FieldBackground:
		return d.Background != ""
	case FieldAlignment:
		return d.Alignment != ""
	case FieldGender:
		return d.Gender != ""
	case FieldHometown:
		return d.Hometown != ""
	case FieldAbilities:
		return len(d.AbilityScores) == len(Abilities())
	case FieldSkills:
		return len(d.Skills) > 0
	case FieldExpertise:
		return len(d.Expertise) > 0
	case FieldLanguages:
		return len(d.Languages) > 0
	case FieldTools:
		return len(d.Tools) > 0
	case FieldFeats:
		return len(d.Feats) > 0
	case FieldSpells:
		return len(d.Spells) > 0
	case FieldEquipment:
		return len(d.Inventory) > 0
	case FieldCurrency:
		return !d.Currency.IsZero()
	case FieldBiography:
		return d.Biography != ""
	case FieldNotes:
		return d.Notes != ""
	}
	return false
}

// Missing returns the fields among fs that hold no value
func (d *Draft) Missing(fs ...Field) []Field {
	var out []Field
	for _, f := range fs {
		if !d.IsSet(f) {
			out = append(out, f)
		}
	}
	return out
}

// Locked reports whether the user set the field
func (d *Draft) Locked(f Field) bool {
	return d.Locks.Locked(f)
}

// Lock marks the field as user-set
func (d *Draft) Lock(f Field) {
	if d.Locks == nil {
		d.Locks = Locks{}
	}
	d.Locks[f] = true
}

// Unlock clears the field's lock without touching its value
func (d *Draft) Unlock(f Field) {
	delete(d.Locks, f)
}

// Clone returns a deep copy
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	out := *d
	out.AbilityScores = cloneAbilityMap(d.AbilityScores)
	out.AbilityBonuses = cloneAbilityMap(d.AbilityBonuses)
	out.Skills = cloneStrings(d.Skills)
	out.Expertise = cloneStrings(d.Expertise)
	out.Languages = cloneStrings(d.Languages)
	out.Tools = cloneStrings(d.Tools)
	out.Feats = cloneStrings(d.Feats)
	out.HitPointRolls = append([]int(nil), d.HitPointRolls...)
	if d.Inventory != nil {
		out.Inventory = append([]Item(nil), d.Inventory...)
	}
	if d.Spells != nil {
		out.Spells = make(map[string]SpellSelection, len(d.Spells))
		for k, v := range d.Spells {
			out.Spells[k] = v
		}
	}
	out.Locks = d.Locks.Clone()
	return &out
}

// AbilityScore returns the base score for an ability, 0 when unset
func (d *Draft) AbilityScore(a Ability) int {
	return d.AbilityScores[a]
}

// SetAbilityScore sets one base score
func (d *Draft) SetAbilityScore(a Ability, score int) {
	if d.AbilityScores == nil {
		d.AbilityScores = make(map[Ability]int, len(Abilities()))
	}
	d.AbilityScores[a] = score
}

// HasSkill reports whether the skill was chosen
func (d *Draft) HasSkill(skill string) bool {
	return contains(d.Skills, skill)
}

// HasExpertise reports whether the skill has expertise
func (d *Draft) HasExpertise(skill string) bool {
	return contains(d.Expertise, skill)
}

// List returns the slice behind a multi-valued string field, or nil for
// any other field
func (d *Draft) List(f Field) *[]string {
	switch f {
	case FieldSkills:
		return &d.Skills
	case FieldExpertise:
		return &d.Expertise
	case FieldLanguages:
		return &d.Languages
	case FieldTools:
		return &d.Tools
	case FieldFeats:
		return &d.Feats
	}
	return nil
}

// SpellIndexes returns chosen spell indexes in order
func (d *Draft) SpellIndexes() []string {
	out := make([]string, 0, len(d.Spells))
	for k := range d.Spells {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// AddItem appends an item or increases the quantity of a matching line
func (d *Draft) AddItem(item Item) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range d.Inventory {
		existing := &d.Inventory[i]
		if existing.Index == item.Index && existing.MagicBonus == item.MagicBonus {
			existing.Quantity += item.Quantity
			existing.Equipped = existing.Equipped || item.Equipped
			return
		}
	}
	d.Inventory = append(d.Inventory, item)
}

// SortedSet returns a sorted copy of values without duplicates or blanks
func SortedSet(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneAbilityMap(in map[Ability]int) map[Ability]int {
	if in == nil {
		return nil
	}
	out := make(map[Ability]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
