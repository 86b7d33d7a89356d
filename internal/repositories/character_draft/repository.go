// Package characterdraft persists the active character draft between CLI
// invocations
package characterdraft

//go:generate mockgen -destination=mock/mock_repository.go -package=characterdraftmock github.com/KirkDiggler/rpg-charbuilder/internal/repositories/character_draft Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
)

// Repository stores drafts and tracks which one is active.
// There is at most one active draft.
type Repository interface {
	// Create stores a draft and makes it the active one, replacing any
	// previously active draft.
	// Returns errors.InvalidArgument for a nil draft or empty ID
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a draft by ID
	// Returns errors.NotFound if the draft doesn't exist or has expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetActive retrieves the active draft
	// Returns errors.NotFound when no draft is active
	GetActive(ctx context.Context) (*GetActiveOutput, error)

	// Update overwrites an existing draft and refreshes its expiry
	// Returns errors.NotFound if the draft doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a draft, and the active pointer if it points at it
	// Returns errors.NotFound if the draft doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// CreateInput defines the input for creating a draft
type CreateInput struct {
	Draft *character.Draft
}

// CreateOutput defines the output for creating a draft
type CreateOutput struct {
	// Replaced is the ID of the draft that was active before, if any
	Replaced string
}

// GetInput defines the input for getting a draft
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a draft
type GetOutput struct {
	Draft *character.Draft
}

// GetActiveOutput defines the output for getting the active draft
type GetActiveOutput struct {
	Draft *character.Draft
}

// UpdateInput defines the input for updating a draft
type UpdateInput struct {
	Draft *character.Draft
}

// UpdateOutput defines the output for updating a draft
type UpdateOutput struct{}

// DeleteInput defines the input for deleting a draft
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a draft
type DeleteOutput struct{}
