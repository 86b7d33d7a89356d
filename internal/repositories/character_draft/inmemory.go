package characterdraft

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage
type InMemoryRepository struct {
	mu     sync.RWMutex
	store  map[string]*character.Draft
	active string
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*character.Draft),
	}
}

// Create stores a draft and makes it active
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if err := checkDraft(input.Draft); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := &CreateOutput{}
	if r.active != "" && r.active != input.Draft.ID {
		delete(r.store, r.active)
		out.Replaced = r.active
	}
	r.store[input.Draft.ID] = input.Draft.Clone()
	r.active = input.Draft.ID

	return out, nil
}

// Get retrieves a draft by ID
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errDraftIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.store[input.ID]
	if !ok {
		return nil, errors.NotFoundf("draft %s not found", input.ID)
	}
	return &GetOutput{Draft: d.Clone()}, nil
}

// GetActive retrieves the active draft
func (r *InMemoryRepository) GetActive(_ context.Context) (*GetActiveOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.store[r.active]
	if r.active == "" || !ok {
		return nil, errors.NotFound("no active draft")
	}
	return &GetActiveOutput{Draft: d.Clone()}, nil
}

// Update overwrites an existing draft
func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := checkDraft(input.Draft); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[input.Draft.ID]; !ok {
		return nil, errors.NotFoundf("draft %s not found", input.Draft.ID)
	}
	r.store[input.Draft.ID] = input.Draft.Clone()

	return &UpdateOutput{}, nil
}

// Delete removes a draft
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errDraftIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[input.ID]; !ok {
		return nil, errors.NotFoundf("draft %s not found", input.ID)
	}
	delete(r.store, input.ID)
	if r.active == input.ID {
		r.active = ""
	}

	return &DeleteOutput{}, nil
}
