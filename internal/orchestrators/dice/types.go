package dice

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// Roll records one dice expression and its individual results
type Roll struct {
	Notation    string
	Dice        []int
	Dropped     []int
	Total       int
	Description string
}

// RollDiceInput defines the request for rolling a dice expression
type RollDiceInput struct {
	Notation    string
	Description string
	// Roller overrides the orchestrator's roller, typically with a seeded one
	Roller dice.Roller
}

// RollDiceOutput defines the response for rolling dice
type RollDiceOutput struct {
	Roll *Roll
}

// RollAbilityScoresInput defines the request for generating a pool of six scores
type RollAbilityScoresInput struct {
	Method string // "standard-array", "4d6-drop-lowest", "3d6", "4d6-reroll-1s"
	Roller dice.Roller
}

// RollAbilityScoresOutput holds the generated pool, highest first
type RollAbilityScoresOutput struct {
	Rolls  []*Roll
	Scores []int
}

// RollHitPointsInput defines the request for rolling hit dice past first level
type RollHitPointsInput struct {
	HitDie int
	Level  int
	Roller dice.Roller
}

// RollHitPointsOutput holds one roll per level above the first
type RollHitPointsOutput struct {
	Rolls []int
}
