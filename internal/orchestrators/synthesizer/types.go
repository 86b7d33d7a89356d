package synthesizer

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/registry"
)

// RandomizeInput carries the draft to complete. The draft is not modified;
// its locks mark the fields that must be kept.
type RandomizeInput struct {
	Draft    *character.Draft
	Registry *registry.Registry
	// Roller overrides the orchestrator's roller, typically with a seeded one
	Roller dice.Roller
}

// RandomizeOutput holds the completed draft
type RandomizeOutput struct {
	Draft *character.Draft
}
