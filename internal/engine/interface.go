// Package engine derives every dependent statistic of a character draft
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/KirkDiggler/rpg-charbuilder/internal/engine Engine

import (
	"context"
)

// Engine computes the derived snapshot of a draft. Derive is a pure
// function of the draft and the registry.
type Engine interface {
	Derive(ctx context.Context, input *DeriveInput) (*DeriveOutput, error)
}
