package flavor

// Level bands for the opening descriptor
const (
	bandNovice     = "novice"
	bandJourneyman = "journeyman"
	bandVeteran    = "veteran"
	bandLegend     = "legend"
)

var levelDescriptors = map[string][]string{
	bandNovice:     {"fresh-faced", "aspiring", "green", "wide-eyed"},
	bandJourneyman: {"seasoned", "battle-tested", "resourceful", "hardened"},
	bandVeteran:    {"renowned", "wily", "veteran", "blooded"},
	bandLegend:     {"legendary", "mythic", "formidable", "famed"},
}

// Origins are the built-in hometowns used when no override matches
var Origins = []string{
	"the frontier village of Briar Glen",
	"the river ports of Highfall",
	"the storm-battered cliffs of Seafarer's Rest",
	"the bustling markets of Hightower",
	"the lantern-lit alleys of Duskwall",
	"a nomadic caravan crossing the Ember Expanse",
	"the mist-veiled forests of Greyfen",
	"the labyrinthine library-city of Callios",
	"the war-torn borderlands of Redridge",
	"the sun-baked dunes of Sahri Oasis",
}

var backgroundSentences = map[string]string{
	"acolyte":       "{Subject} once tended the quiet halls of a remote sanctuary, offering solace to weary pilgrims.",
	"charlatan":     "No stranger to masks and aliases, {subject} slipped coins from noble purses with disarming charm.",
	"criminal":      "Years spent among thieves taught {object} the value of secrets, favors, and quick getaways.",
	"entertainer":   "Crowded stages and raucous taverns still echo in {possessive} step; applause was {possessive} first addiction.",
	"folk-hero":     "Neighbors still whisper of the day {subject} stood alone against danger to shield humble folk.",
	"guild-artisan": "Guild workshops honed {possessive} craft, and contracts still bear {possessive} meticulous seal.",
	"hermit":        "Seasons of solitude in the wilds left {object} thoughtful, listening to the wind for forgotten truths.",
	"noble":         "Born to titles and responsibilities, {subject} learned courtly poise alongside sharp political instincts.",
	"outlander":     "Endless trails under open skies taught {object} to read the land and trust {possessive} instincts.",
	"sage":          "Libraries became second homes, and {subject} still quotes obscure tomes from memory.",
	"sailor":        "Rolling decks and salt-stung winds seasoned {object} into a sailor who still sways with phantom tides.",
	"soldier":       "Discipline, drills, and the thunder of war drums hardened {object} into a stalwart fighter.",
	"urchin":        "Streets and rooftops were classrooms, and survival the only test that mattered to {object}.",
}

var genericBackgrounds = []string{
	"Old habits from {possessive} days as a {background} still color every decision.",
	"Experiences far from home tempered {object}, leaving scars and stories in equal measure.",
	"Few guess how {subject} earned {possessive} lessons, but the past shadows every choice.",
}

var goals = []string{
	"seeks to redeem {reflexive} for a costly mistake",
	"hunts for lore that could change the realms",
	"works to unite rivals before darker threats prevail",
	"aims to carve {possessive} name into the ballads of tomorrow",
	"plans to repay a life debt that still weighs on {object}",
	"strives to safeguard innocents caught between clashing powers",
}

var quirks = []string{
	"keeping {possessive} weathered journal close at hand",
	"whittling charms whenever nerves begin to fray",
	"reciting half-remembered proverbs for confidence",
	"collecting small tokens from every new ally",
	"touching a hidden talisman before every bold move",
	"tracing protective sigils on nearby surfaces",
}

var ideals = []string{"justice", "freedom", "knowledge", "loyalty", "ambition", "mercy"}

// diceSpec is NdS
type diceSpec struct {
	Count int
	Sides int
}

// PhysicalProfile drives height, weight and age rolls for a race
type PhysicalProfile struct {
	BaseHeight       int
	HeightDice       diceSpec
	BaseWeight       int
	WeightDice       diceSpec
	WeightMultiplier int
	MinAge           int
	MaxAge           int
}

var physicalProfiles = map[string]PhysicalProfile{
	"human":      {58, diceSpec{2, 10}, 120, diceSpec{2, 4}, 4, 18, 70},
	"elf":        {54, diceSpec{2, 10}, 90, diceSpec{2, 4}, 3, 100, 750},
	"dwarf":      {48, diceSpec{2, 8}, 130, diceSpec{2, 6}, 4, 50, 350},
	"halfling":   {31, diceSpec{2, 4}, 35, diceSpec{1, 1}, 1, 20, 150},
	"gnome":      {35, diceSpec{2, 4}, 40, diceSpec{1, 1}, 1, 40, 400},
	"half-elf":   {57, diceSpec{2, 8}, 110, diceSpec{2, 4}, 3, 20, 180},
	"half-orc":   {58, diceSpec{2, 10}, 150, diceSpec{2, 6}, 4, 14, 75},
	"tiefling":   {57, diceSpec{2, 8}, 110, diceSpec{2, 4}, 3, 18, 110},
	"dragonborn": {66, diceSpec{2, 8}, 175, diceSpec{2, 6}, 6, 15, 80},
}

// nameTable holds the built-in given names and surnames for one race
type nameTable struct {
	Male     []string
	Female   []string
	Surnames []string
}

const defaultNameKey = "default"

var builtinNames = map[string]nameTable{
	"human": {
		Male:     []string{"Alden", "Derrik", "Marcus", "Tristan", "Roland"},
		Female:   []string{"Elena", "Lysa", "Marian", "Seren", "Talia"},
		Surnames: []string{"Blackwood", "Cavalier", "Harrow", "Rivers", "Thorne"},
	},
	"elf": {
		Male:     []string{"Aelar", "Theren", "Varis", "Erevan", "Syllion"},
		Female:   []string{"Aeris", "Lia", "Naivara", "Sylwen", "Thia"},
		Surnames: []string{"Evenwood", "Moonwhisper", "Nightbreeze", "Silvertree", "Windrunner"},
	},
	"dwarf": {
		Male:     []string{"Baern", "Bruen", "Dorn", "Harbek", "Rurik"},
		Female:   []string{"Amber", "Eldeth", "Finellen", "Mardred", "Torbera"},
		Surnames: []string{"Battlehammer", "Fireforge", "Ironfist", "Rockseeker", "Stonehelm"},
	},
	"halfling": {
		Male:     []string{"Alton", "Cade", "Eldon", "Milo", "Wellby"},
		Female:   []string{"Bree", "Callie", "Lavinia", "Myria", "Seraphina"},
		Surnames: []string{"Brushgather", "Goodbarrel", "Greenbottle", "Highhill", "Tealeaf"},
	},
	"dragonborn": {
		Male:     []string{"Aryx", "Balasar", "Khagrax", "Rhogar", "Torinn"},
		Female:   []string{"Akra", "Kaida", "Mizra", "Sora", "Thyana"},
		Surnames: []string{"Clethtinthiallor", "Daardendrian", "Delmirev", "Kepeshkmolik", "Turnuroth"},
	},
	"gnome": {
		Male:     []string{"Alston", "Boddynock", "Dimble", "Finnan", "Orin"},
		Female:   []string{"Bimpnottin", "Ella", "Lilli", "Nissa", "Zanna"},
		Surnames: []string{"Beren", "Daergel", "Folkor", "Murnig", "Nackle"},
	},
	"half-elf": {
		Male:     []string{"Aeric", "Corin", "Laethan", "Syllas", "Theron"},
		Female:   []string{"Ara", "Elora", "Maia", "Rinn", "Sylia"},
		Surnames: []string{"Amastacia", "Galanodel", "Ilphelkiir", "Siannodel", "Holimion"},
	},
	"half-orc": {
		Male:     []string{"Dorn", "Grysh", "Krusk", "Mogar", "Thokk"},
		Female:   []string{"Arha", "Baggi", "Emen", "Sutha", "Yevelda"},
		Surnames: []string{"Bonecrusher", "Ironhide", "Skullcleaver", "Stormcaller", "Thrash"},
	},
	"tiefling": {
		Male:     []string{"Akmenos", "Damien", "Leucis", "Morthos", "Zephiros"},
		Female:   []string{"Akmena", "Beleth", "Kasdeya", "Orianna", "Zephra"},
		Surnames: []string{"Fateborn", "Hellfire", "Nightbloom", "Runeweaver", "Shadowstep"},
	},
	defaultNameKey: {
		Male:     []string{"Rowan", "Galen", "Tobin", "Lucan", "Merrick"},
		Female:   []string{"Ayla", "Celia", "Daphne", "Lyra", "Mira"},
		Surnames: []string{"Ashford", "Brightwood", "Fairwind", "Starling", "Waverly"},
	},
}
