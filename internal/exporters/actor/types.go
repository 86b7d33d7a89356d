package actor

import (
	"github.com/KirkDiggler/rpg-charbuilder/internal/engine"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/registry"
)

// ExportInput carries the resolved draft and its derived snapshot
type ExportInput struct {
	Draft    *character.Draft
	Snapshot *engine.Snapshot
	Registry *registry.Registry
}

// ExportOutput holds the actor document and its indented JSON encoding
type ExportOutput struct {
	Actor *Actor
	JSON  []byte
}

// Document constants of the dnd5e system
const (
	ActorType     = "character"
	SystemID      = "dnd5e"
	SystemVersion = "5.1.9"
	CoreVersion   = "11"

	// FlagScope is the flags namespace items record their source under
	FlagScope = "charbuilder"

	DefaultActorImage = "icons/svg/mystery-man.svg"
)

// Actor is a Foundry VTT dnd5e actor document
type Actor struct {
	ID             string         `json:"_id"`
	Name           string         `json:"name"`
	Type           string         `json:"type"`
	Img            string         `json:"img"`
	System         System         `json:"system"`
	Items          []Item         `json:"items"`
	Effects        []any          `json:"effects"`
	Flags          map[string]any `json:"flags"`
	Folder         *string        `json:"folder"`
	Ownership      map[string]int `json:"ownership"`
	PrototypeToken Token          `json:"prototypeToken"`
	Stats          Stats          `json:"_stats"`
}

// Stats is the document bookkeeping block
type Stats struct {
	SystemID       string  `json:"systemId"`
	SystemVersion  string  `json:"systemVersion"`
	CoreVersion    string  `json:"coreVersion"`
	CreatedTime    int64   `json:"createdTime"`
	ModifiedTime   int64   `json:"modifiedTime"`
	LastModifiedBy *string `json:"lastModifiedBy"`
}

// Roll is a roll override; nil bounds mean no override
type Roll struct {
	Min  *int `json:"min"`
	Max  *int `json:"max"`
	Mode int  `json:"mode"`
}

// System is the dnd5e data model of the actor
type System struct {
	Currency   Currency             `json:"currency"`
	Abilities  map[string]Ability   `json:"abilities"`
	Bonuses    Bonuses              `json:"bonuses"`
	Skills     map[string]Skill     `json:"skills"`
	Tools      map[string]Tool      `json:"tools"`
	Spells     map[string]SpellSlot `json:"spells"`
	Attributes Attributes           `json:"attributes"`
	Bastion    map[string]any       `json:"bastion"`
	Details    Details              `json:"details"`
	Traits     Traits               `json:"traits"`
	Resources  map[string]Resource  `json:"resources"`
	Favorites  []any                `json:"favorites"`
}

// Currency is carried coin
type Currency struct {
	PP int `json:"pp"`
	GP int `json:"gp"`
	EP int `json:"ep"`
	SP int `json:"sp"`
	CP int `json:"cp"`
}

// Ability is one ability score entry
type Ability struct {
	Value      int            `json:"value"`
	Proficient int            `json:"proficient"`
	Max        int            `json:"max"`
	Bonuses    AbilityBonuses `json:"bonuses"`
	Check      RollHolder     `json:"check"`
	Save       RollHolder     `json:"save"`
}

// AbilityBonuses are formula bonuses to checks and saves
type AbilityBonuses struct {
	Check string `json:"check"`
	Save  string `json:"save"`
}

// RollHolder wraps a roll override
type RollHolder struct {
	Roll Roll `json:"roll"`
}

// AttackBonuses are formula bonuses for one attack kind
type AttackBonuses struct {
	Attack string `json:"attack"`
	Damage string `json:"damage"`
}

// Bonuses are the actor-wide formula bonuses
type Bonuses struct {
	MWAK      AttackBonuses    `json:"mwak"`
	RWAK      AttackBonuses    `json:"rwak"`
	MSAK      AttackBonuses    `json:"msak"`
	RSAK      AttackBonuses    `json:"rsak"`
	Abilities GlobalBonuses    `json:"abilities"`
	Spell     SpellDCBonusOnly `json:"spell"`
}

// GlobalBonuses apply to every check, save or skill
type GlobalBonuses struct {
	Check string `json:"check"`
	Save  string `json:"save"`
	Skill string `json:"skill"`
}

// SpellDCBonusOnly is the spell DC bonus formula
type SpellDCBonusOnly struct {
	DC string `json:"dc"`
}

// Skill is one skill entry. Value is the proficiency multiplier.
type Skill struct {
	Ability string       `json:"ability"`
	Value   int          `json:"value"`
	Bonuses SkillBonuses `json:"bonuses"`
	Roll    Roll         `json:"roll"`
}

// SkillBonuses are formula bonuses for a skill
type SkillBonuses struct {
	Check   string `json:"check"`
	Passive string `json:"passive"`
}

// Tool is one tool proficiency entry
type Tool struct {
	Value   int           `json:"value"`
	Ability string        `json:"ability"`
	Bonuses ToolBonusOnly `json:"bonuses"`
	Roll    Roll          `json:"roll"`
}

// ToolBonusOnly is the check bonus formula of a tool
type ToolBonusOnly struct {
	Check string `json:"check"`
}

// SpellSlot is one spell level's slot pool
type SpellSlot struct {
	Value    int `json:"value"`
	Max      int `json:"max"`
	Override int `json:"override"`
	Used     int `json:"used"`
}

// Attributes groups AC, hit points, movement, senses and spellcasting
type Attributes struct {
	AC            AC             `json:"ac"`
	Init          Init           `json:"init"`
	Movement      Movement       `json:"movement"`
	Attunement    Attunement     `json:"attunement"`
	Senses        Senses         `json:"senses"`
	Spellcasting  string         `json:"spellcasting"`
	Exhaustion    int            `json:"exhaustion"`
	Concentration Concentration  `json:"concentration"`
	Loyalty       map[string]any `json:"loyalty"`
	HP            HP             `json:"hp"`
	Death         Death          `json:"death"`
	Inspiration   bool           `json:"inspiration"`
}

// AC is exported as a flat value computed by the engine
type AC struct {
	Calc    string `json:"calc"`
	Flat    int    `json:"flat"`
	Formula string `json:"formula"`
}

// Init is the initiative configuration
type Init struct {
	Ability string `json:"ability"`
	Bonus   string `json:"bonus"`
	Roll    Roll   `json:"roll"`
}

// Movement holds speeds in Units
type Movement struct {
	Burrow                  int      `json:"burrow"`
	Climb                   int      `json:"climb"`
	Fly                     int      `json:"fly"`
	Swim                    int      `json:"swim"`
	Walk                    int      `json:"walk"`
	Units                   string   `json:"units"`
	Hover                   bool     `json:"hover"`
	IgnoredDifficultTerrain []string `json:"ignoredDifficultTerrain"`
}

// Attunement caps attuned items
type Attunement struct {
	Max int `json:"max"`
}

// Senses holds sense ranges in Units
type Senses struct {
	Blindsight  int    `json:"blindsight"`
	Darkvision  int    `json:"darkvision"`
	Tremorsense int    `json:"tremorsense"`
	Truesight   int    `json:"truesight"`
	Units       string `json:"units"`
	Special     string `json:"special"`
}

// Concentration configures concentration saves
type Concentration struct {
	Ability string        `json:"ability"`
	Bonuses SaveBonusOnly `json:"bonuses"`
	Limit   int           `json:"limit"`
	Roll    Roll          `json:"roll"`
}

// SaveBonusOnly is a save bonus formula
type SaveBonusOnly struct {
	Save string `json:"save"`
}

// HP is the hit point pool
type HP struct {
	Value   int       `json:"value"`
	Max     int       `json:"max"`
	Temp    int       `json:"temp"`
	TempMax int       `json:"tempmax"`
	Bonuses HPBonuses `json:"bonuses"`
}

// HPBonuses are hit point formula bonuses
type HPBonuses struct {
	Level   string `json:"level"`
	Overall string `json:"overall"`
}

// Death tracks death saves
type Death struct {
	Success int           `json:"success"`
	Failure int           `json:"failure"`
	Bonuses SaveBonusOnly `json:"bonuses"`
	Roll    Roll          `json:"roll"`
}

// Details is the descriptive block of the sheet
type Details struct {
	Biography     Biography `json:"biography"`
	Alignment     string    `json:"alignment"`
	Ideal         string    `json:"ideal"`
	Bond          string    `json:"bond"`
	Flaw          string    `json:"flaw"`
	Race          string    `json:"race"`
	Background    string    `json:"background"`
	OriginalClass string    `json:"originalClass"`
	XP            XP        `json:"xp"`
	Appearance    string    `json:"appearance"`
	Trait         string    `json:"trait"`
	Gender        string    `json:"gender"`
	Eyes          string    `json:"eyes"`
	Height        string    `json:"height"`
	Faith         string    `json:"faith"`
	Hair          string    `json:"hair"`
	Skin          string    `json:"skin"`
	Age           string    `json:"age"`
	Weight        string    `json:"weight"`
}

// Biography is HTML shown on the biography tab
type Biography struct {
	Value  string `json:"value"`
	Public string `json:"public"`
}

// XP is the experience total
type XP struct {
	Value int `json:"value"`
}

// Traits holds size, resistances, languages and proficiencies
type Traits struct {
	Size       string      `json:"size"`
	DI         TraitSet    `json:"di"`
	DR         TraitSet    `json:"dr"`
	DV         TraitSet    `json:"dv"`
	DM         TraitSet    `json:"dm"`
	CI         TraitSet    `json:"ci"`
	Languages  LanguageSet `json:"languages"`
	WeaponProf WeaponProfs `json:"weaponProf"`
	ArmorProf  TraitSet    `json:"armorProf"`
	ToolProf   TraitSet    `json:"toolProf"`
}

// TraitSet is a list of keys plus free text
type TraitSet struct {
	Value  []string `json:"value"`
	Custom string   `json:"custom"`
}

// LanguageSet is the known languages
type LanguageSet struct {
	Value         []string       `json:"value"`
	Custom        string         `json:"custom"`
	Communication map[string]any `json:"communication"`
}

// WeaponProfs adds weapon mastery to a trait set
type WeaponProfs struct {
	Value   []string `json:"value"`
	Custom  string   `json:"custom"`
	Mastery Mastery  `json:"mastery"`
}

// Mastery lists mastered weapons
type Mastery struct {
	Value []string `json:"value"`
	Bonus []string `json:"bonus"`
}

// Resource is a tracked class resource
type Resource struct {
	Value int    `json:"value"`
	Max   int    `json:"max"`
	SR    bool   `json:"sr"`
	LR    bool   `json:"lr"`
	Label string `json:"label"`
}

// Token is the prototype token of the actor
type Token struct {
	Name        string         `json:"name"`
	ActorLink   bool           `json:"actorLink"`
	Texture     map[string]any `json:"texture"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	DisplayName int            `json:"displayName"`
	DisplayBars int            `json:"displayBars"`
	Disposition int            `json:"disposition"`
	Bar1        map[string]any `json:"bar1"`
	Bar2        map[string]any `json:"bar2"`
	Flags       map[string]any `json:"flags"`
	Sight       map[string]any `json:"sight"`
	Light       map[string]any `json:"light"`
}

// Item is an embedded item document. System varies by item type.
type Item struct {
	ID      string         `json:"_id"`
	Name    string         `json:"name"`
	Type    string         `json:"type"`
	Img     string         `json:"img"`
	System  map[string]any `json:"system"`
	Effects []any          `json:"effects"`
	Flags   map[string]any `json:"flags"`
}

// SourceIndex returns the registry index the item was built from
func (i Item) SourceIndex() string {
	scope, ok := i.Flags[FlagScope].(map[string]any)
	if !ok {
		return ""
	}
	s, _ := scope["sourceIndex"].(string)
	return s
}
