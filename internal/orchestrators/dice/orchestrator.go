// Package dice implements ability score and hit point generation on top of
// the rpg-toolkit dice roller
package dice

//go:generate mockgen -destination=mock/mock_service.go -package=dicemock github.com/KirkDiggler/rpg-charbuilder/internal/orchestrators/dice Service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
)

const (
	// Ability score generation methods
	MethodStandardArray = "standard-array"
	MethodStandard      = "4d6-drop-lowest"
	MethodClassic       = "3d6"
	MethodHeroic        = "4d6-reroll-1s"

	// Standard ability score dice notation
	AbilityScoreNotation = "4d6"
)

// StandardArray is the fixed score pool, highest first
var StandardArray = []int{15, 14, 13, 12, 10, 8}

var (
	// Regex for parsing simple dice notation like "2d6", "1d20", "3d8"
	diceNotationRegex = regexp.MustCompile(`^(\d+)d(\d+)$`)
)

// Methods lists the supported generation methods
func Methods() []string {
	return []string{MethodStandardArray, MethodStandard, MethodClassic, MethodHeroic}
}

// Service defines the interface for dice operations
type Service interface {
	RollDice(ctx context.Context, input *RollDiceInput) (*RollDiceOutput, error)

	// Specialized rolling for character synthesis
	RollAbilityScores(ctx context.Context, input *RollAbilityScoresInput) (*RollAbilityScoresOutput, error)
	RollHitPoints(ctx context.Context, input *RollHitPointsInput) (*RollHitPointsOutput, error)
}

// Config holds the dependencies for the dice orchestrator
type Config struct {
	// Roller is used when an input does not carry its own
	Roller dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

type orchestrator struct {
	roller dice.Roller
}

// NewOrchestrator creates a new dice orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		roller: cfg.Roller,
	}, nil
}

func (o *orchestrator) rollerFor(r dice.Roller) dice.Roller {
	if r != nil {
		return r
	}
	return o.roller
}

// parseDiceNotation parses simple dice notation like "2d6" and returns count and size
func parseDiceNotation(notation string) (count, size int, err error) {
	matches := diceNotationRegex.FindStringSubmatch(strings.ToLower(strings.TrimSpace(notation)))
	if len(matches) != 3 {
		return 0, 0, errors.InvalidArgumentf("invalid dice notation: %s (expected format: XdY)", notation)
	}

	count, err = strconv.Atoi(matches[1])
	if err != nil {
		return 0, 0, errors.InvalidArgumentf("invalid dice count in notation: %s", notation)
	}

	size, err = strconv.Atoi(matches[2])
	if err != nil {
		return 0, 0, errors.InvalidArgumentf("invalid die size in notation: %s", notation)
	}

	if count <= 0 || size <= 0 {
		return 0, 0, errors.InvalidArgumentf("dice count and size must be positive: %s", notation)
	}

	return count, size, nil
}

// roll rolls count dice, optionally rerolling ones once and dropping the lowest
func roll(roller dice.Roller, count, size, dropLowest int, rerollOnes bool) (*Roll, error) {
	values, err := roller.RollN(count, size)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll %dd%d", count, size)
	}

	if rerollOnes {
		for i, v := range values {
			if v != 1 {
				continue
			}
			again, err := roller.Roll(size)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to reroll d%d", size)
			}
			values[i] = again
		}
	}

	kept := append([]int(nil), values...)
	var dropped []int
	if dropLowest > 0 && len(kept) > dropLowest {
		sorted := append([]int(nil), values...)
		sort.Ints(sorted)
		dropped = sorted[:dropLowest]
		for _, d := range dropped {
			for i, v := range kept {
				if v == d {
					kept = append(kept[:i], kept[i+1:]...)
					break
				}
			}
		}
	}

	total := 0
	for _, v := range kept {
		total += v
	}

	return &Roll{
		Notation: fmt.Sprintf("%dd%d", count, size),
		Dice:     kept,
		Dropped:  dropped,
		Total:    total,
	}, nil
}

func (o *orchestrator) RollDice(_ context.Context, input *RollDiceInput) (*RollDiceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	count, size, err := parseDiceNotation(input.Notation)
	if err != nil {
		return nil, err
	}

	r, err := roll(o.rollerFor(input.Roller), count, size, 0, false)
	if err != nil {
		return nil, err
	}
	r.Description = input.Description

	return &RollDiceOutput{Roll: r}, nil
}

func (o *orchestrator) RollAbilityScores(_ context.Context, input *RollAbilityScoresInput) (*RollAbilityScoresOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Method == "" {
		input.Method = MethodStandardArray
	}

	if input.Method == MethodStandardArray {
		return &RollAbilityScoresOutput{Scores: append([]int(nil), StandardArray...)}, nil
	}

	notation := ""
	dropLowest := 0
	rerollOnes := false
	switch input.Method {
	case MethodStandard:
		notation = AbilityScoreNotation
		dropLowest = 1
	case MethodClassic:
		notation = "3d6"
	case MethodHeroic:
		notation = AbilityScoreNotation
		dropLowest = 1
		rerollOnes = true
	default:
		return nil, errors.InvalidArgumentf("unsupported ability score method: %s", input.Method)
	}

	count, size, err := parseDiceNotation(notation)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse ability score notation")
	}

	roller := o.rollerFor(input.Roller)
	rolls := make([]*Roll, 0, 6)
	scores := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		r, err := roll(roller, count, size, dropLowest, rerollOnes)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to roll ability score %d", i+1)
		}
		r.Description = fmt.Sprintf("Ability Score %d (%s)", i+1, input.Method)
		rolls = append(rolls, r)
		scores = append(scores, r.Total)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(scores)))

	slog.Debug("ability scores rolled",
		"method", input.Method,
		"scores", scores,
	)

	return &RollAbilityScoresOutput{
		Rolls:  rolls,
		Scores: scores,
	}, nil
}

func (o *orchestrator) RollHitPoints(_ context.Context, input *RollHitPointsInput) (*RollHitPointsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.HitDie <= 0 {
		return nil, errors.InvalidArgumentf("hit die must be positive, got %d", input.HitDie)
	}
	if input.Level <= 1 {
		return &RollHitPointsOutput{}, nil
	}

	rolls, err := o.rollerFor(input.Roller).RollN(input.Level-1, input.HitDie)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll hit dice d%d", input.HitDie)
	}

	return &RollHitPointsOutput{Rolls: rolls}, nil
}
