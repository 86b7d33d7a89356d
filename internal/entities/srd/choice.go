package srd

import "strings"

// Option types used by the dataset's choice blocks
const (
	OptionTypeReference        = "reference"
	OptionTypeCountedReference = "counted_reference"
	OptionTypeChoice           = "choice"
	OptionTypeMultiple         = "multiple"
)

// Choice is an option block: choose N from a set
type Choice struct {
	Desc   string    `json:"desc"`
	Choose int       `json:"choose"`
	Type   string    `json:"type"`
	From   OptionSet `json:"from"`
}

// OptionSet is either an explicit option list or an equipment category
type OptionSet struct {
	OptionSetType     string     `json:"option_set_type"`
	Options           []Option   `json:"options"`
	EquipmentCategory *Reference `json:"equipment_category,omitempty"`
	ResourceListURL   string     `json:"resource_list_url,omitempty"`
}

// Option set types
const (
	OptionSetOptionsArray      = "options_array"
	OptionSetEquipmentCategory = "equipment_category"
	OptionSetResourceList      = "resource_list"
)

// Option is one entry in an option set
type Option struct {
	OptionType string     `json:"option_type"`
	Item       *Reference `json:"item,omitempty"`
	Choice     *Choice    `json:"choice,omitempty"`
	Count      int        `json:"count,omitempty"`
	Of         *Reference `json:"of,omitempty"`
	Items      []Option   `json:"items,omitempty"`
}

// References flattens the option set into the references it can yield.
// Nested choices are expanded; multiple-item bundles contribute every item.
func (c *Choice) References() []Reference {
	if c == nil {
		return nil
	}
	var out []Reference
	for _, opt := range c.From.Options {
		out = append(out, opt.References()...)
	}
	return out
}

// References returns the references an option can yield
func (o Option) References() []Reference {
	switch o.OptionType {
	case OptionTypeCountedReference:
		if o.Of != nil {
			return []Reference{*o.Of}
		}
	case OptionTypeChoice:
		return o.Choice.References()
	case OptionTypeMultiple:
		var out []Reference
		for _, item := range o.Items {
			out = append(out, item.References()...)
		}
		return out
	}
	if o.Item != nil {
		return []Reference{*o.Item}
	}
	return nil
}

// Quantity is the number of items an option grants
func (o Option) Quantity() int {
	if o.Count > 0 {
		return o.Count
	}
	return 1
}

// ProficiencyKind classifies a proficiency or option index
type ProficiencyKind string

// Proficiency kinds
const (
	KindSkill    ProficiencyKind = "skill"
	KindLanguage ProficiencyKind = "language"
	KindTool     ProficiencyKind = "tool"
	KindSave     ProficiencyKind = "saving-throw"
	KindArmor    ProficiencyKind = "armor"
	KindWeapon   ProficiencyKind = "weapon"
	KindOther    ProficiencyKind = "other"
)

var toolMarkers = []string{"tools", "kit", "instrument", "supplies", "set", "utensils"}

// KindOf infers the proficiency kind from an index
func KindOf(index string) ProficiencyKind {
	idx := strings.ToLower(index)
	switch {
	case strings.HasPrefix(idx, "skill-"):
		return KindSkill
	case strings.HasPrefix(idx, "saving-throw-"):
		return KindSave
	case strings.HasPrefix(idx, "language-") || isLanguageIndex(idx):
		return KindLanguage
	case strings.Contains(idx, "armor") || idx == "shields":
		return KindArmor
	case strings.Contains(idx, "weapon") || weaponNames[strings.TrimSuffix(idx, "s")]:
		return KindWeapon
	}
	for _, marker := range toolMarkers {
		if strings.Contains(idx, marker) {
			return KindTool
		}
	}
	for _, instrument := range instruments {
		if idx == instrument {
			return KindTool
		}
	}
	return KindOther
}

// SkillIndex strips the skill- prefix from a proficiency index
func SkillIndex(proficiency string) string {
	return strings.TrimPrefix(strings.ToLower(proficiency), "skill-")
}

// SaveAbility returns the ability index of a saving-throw proficiency
func SaveAbility(proficiency string) string {
	return strings.TrimPrefix(strings.ToLower(proficiency), "saving-throw-")
}

var languageIndexes = map[string]bool{
	"common": true, "dwarvish": true, "elvish": true, "giant": true, "gnomish": true,
	"goblin": true, "halfling": true, "orc": true, "abyssal": true, "celestial": true,
	"draconic": true, "deep-speech": true, "infernal": true, "primordial": true,
	"sylvan": true, "undercommon": true,
}

func isLanguageIndex(idx string) bool {
	return languageIndexes[idx]
}

var weaponNames = map[string]bool{
	"club": true, "dagger": true, "dart": true, "handaxe": true, "javelin": true,
	"longsword": true, "rapier": true, "scimitar": true, "shortsword": true,
	"sickle": true, "sling": true, "spear": true, "quarterstaff": true,
	"longbow": true, "shortbow": true, "mace": true,
	"warhammer": true, "greataxe": true, "battleaxe": true,
}

var instruments = []string{
	"bagpipes", "drum", "dulcimer", "flute", "lute", "lyre", "horn",
	"pan-flute", "shawm", "viol",
}
