// Package srd holds the immutable reference records of the 5e System
// Reference Document as the builder consumes them. Field names and JSON
// tags follow the 5e-bits dataset so records decode straight from the
// vendored files or the public API.
package srd

import (
	"strconv"
	"strings"
)

// Category names one collection of reference entries
type Category string

// Reference categories
const (
	CategoryRace              Category = "races"
	CategorySubrace           Category = "subraces"
	CategoryClass             Category = "classes"
	CategorySubclass          Category = "subclasses"
	CategoryLevel             Category = "levels"
	CategoryBackground        Category = "backgrounds"
	CategoryFeat              Category = "feats"
	CategorySpell             Category = "spells"
	CategoryEquipment         Category = "equipment"
	CategoryEquipmentCategory Category = "equipment-categories"
	CategoryFeature           Category = "features"
	CategoryTrait             Category = "traits"
	CategoryProficiency       Category = "proficiencies"
	CategoryLanguage          Category = "languages"
	CategoryAlignment         Category = "alignments"
	CategorySkill             Category = "skills"
)

// Categories lists every category in load order
func Categories() []Category {
	return []Category{
		CategoryRace, CategorySubrace, CategoryClass, CategorySubclass, CategoryLevel,
		CategoryBackground, CategoryFeat, CategorySpell, CategoryEquipment,
		CategoryEquipmentCategory, CategoryFeature, CategoryTrait, CategoryProficiency,
		CategoryLanguage, CategoryAlignment, CategorySkill,
	}
}

// Entry is any reference record
type Entry interface {
	GetIndex() string
	GetName() string
	GetCategory() Category
}

// Reference points at another entry by index
type Reference struct {
	Index string `json:"index"`
	Name  string `json:"name"`
	URL   string `json:"url,omitempty"`
}

// Key returns the index, falling back to the last URL segment
func (r Reference) Key() string {
	if r.Index != "" {
		return r.Index
	}
	url := strings.TrimRight(r.URL, "/")
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}

// Batch is the result of loading one category. Each raw record becomes
// either an entry or a diagnostic.
type Batch struct {
	Category    Category
	Entries     []Entry
	Diagnostics []Diagnostic
}

// Diagnostic describes a record that was dropped during loading
type Diagnostic struct {
	Category Category
	Index    string
	Position int
	Reason   string
}

// AbilityBonus is a fixed bonus granted to one ability score
type AbilityBonus struct {
	AbilityScore Reference `json:"ability_score"`
	Bonus        int       `json:"bonus"`
}

// Race is a playable race
type Race struct {
	Index                      string         `json:"index"`
	Name                       string         `json:"name"`
	Speed                      int            `json:"speed"`
	AbilityBonuses             []AbilityBonus `json:"ability_bonuses"`
	Alignment                  string         `json:"alignment"`
	Age                        string         `json:"age"`
	Size                       string         `json:"size"`
	SizeDescription            string         `json:"size_description"`
	StartingProficiencies      []Reference    `json:"starting_proficiencies"`
	StartingProficiencyOptions *Choice        `json:"starting_proficiency_options,omitempty"`
	Languages                  []Reference    `json:"languages"`
	LanguageDesc               string         `json:"language_desc"`
	LanguageOptions            *Choice        `json:"language_options,omitempty"`
	Traits                     []Reference    `json:"traits"`
	Subraces                   []Reference    `json:"subraces"`
}

// Subrace refines a race
type Subrace struct {
	Index                 string         `json:"index"`
	Name                  string         `json:"name"`
	Race                  Reference      `json:"race"`
	Desc                  string         `json:"desc"`
	AbilityBonuses        []AbilityBonus `json:"ability_bonuses"`
	StartingProficiencies []Reference    `json:"starting_proficiencies"`
	Languages             []Reference    `json:"languages"`
	LanguageOptions       *Choice        `json:"language_options,omitempty"`
	RacialTraits          []Reference    `json:"racial_traits"`
}

// StartingEquipment is a fixed item grant
type StartingEquipment struct {
	Equipment Reference `json:"equipment"`
	Quantity  int       `json:"quantity"`
}

// ClassSpellcasting describes how a class casts
type ClassSpellcasting struct {
	Level               int       `json:"level"`
	SpellcastingAbility Reference `json:"spellcasting_ability"`
}

// Class is a character class
type Class struct {
	Index                    string              `json:"index"`
	Name                     string              `json:"name"`
	HitDie                   int                 `json:"hit_die"`
	ProficiencyChoices       []Choice            `json:"proficiency_choices"`
	Proficiencies            []Reference         `json:"proficiencies"`
	SavingThrows             []Reference         `json:"saving_throws"`
	StartingEquipment        []StartingEquipment `json:"starting_equipment"`
	StartingEquipmentOptions []Choice            `json:"starting_equipment_options"`
	Spellcasting             *ClassSpellcasting  `json:"spellcasting,omitempty"`
	Subclasses               []Reference         `json:"subclasses"`
}

// Subclass is a class specialization
type Subclass struct {
	Index          string    `json:"index"`
	Name           string    `json:"name"`
	Class          Reference `json:"class"`
	SubclassFlavor string    `json:"subclass_flavor"`
	Desc           []string  `json:"desc"`
}

// Level is one row of a class or subclass progression table
type Level struct {
	Index               string         `json:"index"`
	Level               int            `json:"level"`
	AbilityScoreBonuses int            `json:"ability_score_bonuses"`
	ProfBonus           int            `json:"prof_bonus"`
	Features            []Reference    `json:"features"`
	Spellcasting        map[string]int `json:"spellcasting,omitempty"`
	Class               Reference      `json:"class"`
	Subclass            *Reference     `json:"subclass,omitempty"`
}

// CantripsKnown returns the cantrip limit at this level
func (l *Level) CantripsKnown() int {
	return l.Spellcasting["cantrips_known"]
}

// SpellsKnown returns the leveled spell limit at this level
func (l *Level) SpellsKnown() int {
	return l.Spellcasting["spells_known"]
}

// SpellSlots returns slot counts for spell levels 1 through 9. Index 0 is unused.
func (l *Level) SpellSlots() [10]int {
	var slots [10]int
	for lvl := 1; lvl <= 9; lvl++ {
		slots[lvl] = l.Spellcasting[spellSlotKey(lvl)]
	}
	return slots
}

func spellSlotKey(level int) string {
	return "spell_slots_level_" + strconv.Itoa(level)
}

// BackgroundFeature is the narrative feature of a background
type BackgroundFeature struct {
	Name string   `json:"name"`
	Desc []string `json:"desc"`
}

// Background is a character background
type Background struct {
	Index                    string              `json:"index"`
	Name                     string              `json:"name"`
	StartingProficiencies    []Reference         `json:"starting_proficiencies"`
	LanguageOptions          *Choice             `json:"language_options,omitempty"`
	StartingEquipment        []StartingEquipment `json:"starting_equipment"`
	StartingEquipmentOptions []Choice            `json:"starting_equipment_options"`
	Feature                  *BackgroundFeature  `json:"feature,omitempty"`
}

// FeatPrerequisite is a minimum ability score
type FeatPrerequisite struct {
	AbilityScore Reference `json:"ability_score"`
	MinimumScore int       `json:"minimum_score"`
}

// Feat is an optional feat
type Feat struct {
	Index         string             `json:"index"`
	Name          string             `json:"name"`
	Prerequisites []FeatPrerequisite `json:"prerequisites"`
	Desc          []string           `json:"desc"`
}

// SpellDamage marks a damaging spell
type SpellDamage struct {
	DamageType *Reference `json:"damage_type,omitempty"`
}

// Spell is a spell
type Spell struct {
	Index         string       `json:"index"`
	Name          string       `json:"name"`
	Desc          []string     `json:"desc"`
	HigherLevel   []string     `json:"higher_level"`
	Range         string       `json:"range"`
	Components    []string     `json:"components"`
	Material      string       `json:"material"`
	Ritual        bool         `json:"ritual"`
	Duration      string       `json:"duration"`
	Concentration bool         `json:"concentration"`
	CastingTime   string       `json:"casting_time"`
	Level         int          `json:"level"`
	AttackType    string       `json:"attack_type"`
	Damage        *SpellDamage `json:"damage,omitempty"`
	School        Reference    `json:"school"`
	Classes       []Reference  `json:"classes"`
	Subclasses    []Reference  `json:"subclasses"`
}

// Cost is a price in one denomination
type Cost struct {
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
}

// Damage is a dice expression with a type
type Damage struct {
	DamageDice string    `json:"damage_dice"`
	DamageType Reference `json:"damage_type"`
}

// Range is a weapon's normal and long range in feet
type Range struct {
	Normal int `json:"normal"`
	Long   int `json:"long"`
}

// ArmorClass describes how armor sets AC
type ArmorClass struct {
	Base     int  `json:"base"`
	DexBonus bool `json:"dex_bonus"`
	MaxBonus int  `json:"max_bonus"`
}

// Equipment is any item: weapon, armor, gear, pack or tool
type Equipment struct {
	Index               string      `json:"index"`
	Name                string      `json:"name"`
	Desc                []string    `json:"desc"`
	EquipmentCategory   Reference   `json:"equipment_category"`
	GearCategory        *Reference  `json:"gear_category,omitempty"`
	WeaponCategory      string      `json:"weapon_category"`
	WeaponRange         string      `json:"weapon_range"`
	CategoryRange       string      `json:"category_range"`
	Cost                Cost        `json:"cost"`
	Damage              *Damage     `json:"damage,omitempty"`
	TwoHandedDamage     *Damage     `json:"two_handed_damage,omitempty"`
	Range               *Range      `json:"range,omitempty"`
	Weight              float64     `json:"weight"`
	Properties          []Reference `json:"properties"`
	ArmorCategory       string      `json:"armor_category"`
	ArmorClass          *ArmorClass `json:"armor_class,omitempty"`
	StrMinimum          int         `json:"str_minimum"`
	StealthDisadvantage bool        `json:"stealth_disadvantage"`
}

// IsWeapon reports whether the item is a weapon
func (e *Equipment) IsWeapon() bool {
	return e.EquipmentCategory.Key() == "weapon" || e.WeaponCategory != ""
}

// IsArmor reports whether the item is armor or a shield
func (e *Equipment) IsArmor() bool {
	return e.EquipmentCategory.Key() == "armor" || e.ArmorCategory != ""
}

// IsShield reports whether the item is a shield
func (e *Equipment) IsShield() bool {
	return strings.EqualFold(e.ArmorCategory, "shield")
}

// HasProperty reports whether the item carries the property index
func (e *Equipment) HasProperty(index string) bool {
	for _, p := range e.Properties {
		if strings.EqualFold(p.Key(), index) || strings.EqualFold(p.Name, index) {
			return true
		}
	}
	return false
}

// EquipmentCategory groups equipment
type EquipmentCategory struct {
	Index     string      `json:"index"`
	Name      string      `json:"name"`
	Equipment []Reference `json:"equipment"`
}

// Feature is a class or subclass feature
type Feature struct {
	Index    string     `json:"index"`
	Name     string     `json:"name"`
	Level    int        `json:"level"`
	Class    Reference  `json:"class"`
	Subclass *Reference `json:"subclass,omitempty"`
	Desc     []string   `json:"desc"`
}

// Trait is a racial trait
type Trait struct {
	Index    string      `json:"index"`
	Name     string      `json:"name"`
	Desc     []string    `json:"desc"`
	Races    []Reference `json:"races"`
	Subraces []Reference `json:"subraces"`
}

// Proficiency is a skill, saving throw, tool, armor or weapon proficiency
type Proficiency struct {
	Index     string      `json:"index"`
	Name      string      `json:"name"`
	Type      string      `json:"type"`
	Classes   []Reference `json:"classes"`
	Races     []Reference `json:"races"`
	Reference *Reference  `json:"reference,omitempty"`
}

// Language is a spoken language
type Language struct {
	Index string `json:"index"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Desc  string `json:"desc"`
}

// Alignment is one of the nine alignments
type Alignment struct {
	Index        string `json:"index"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Desc         string `json:"desc"`
}

// Skill is one of the eighteen skills
type Skill struct {
	Index        string    `json:"index"`
	Name         string    `json:"name"`
	AbilityScore Reference `json:"ability_score"`
	Desc         []string  `json:"desc"`
}
