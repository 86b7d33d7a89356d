// Package srdcache provides the interface for caching fetched reference
// batches between process runs
package srdcache

//go:generate mockgen -destination=mock/mock_repository.go -package=srdcachemock github.com/KirkDiggler/rpg-charbuilder/internal/repositories/srd_cache Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/srd"
)

// Repository stores one batch per source and category
type Repository interface {
	// Get returns the cached batch
	// Returns errors.NotFound on a miss or after the entry expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put stores a batch, replacing any earlier copy
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// Delete drops the cached batch
	// Returns errors.NotFound if nothing is cached
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// GetInput names the batch to read
type GetInput struct {
	// Source identifies where the batch came from, usually the API base URL
	Source   string
	Category srd.Category
}

// GetOutput holds a cached batch
type GetOutput struct {
	Batch     *srd.Batch
	FetchedAt time.Time
}

// PutInput holds the batch to store
type PutInput struct {
	Source string
	Batch  *srd.Batch
}

// PutOutput is empty
type PutOutput struct{}

// DeleteInput names the batch to drop
type DeleteInput struct {
	Source   string
	Category srd.Category
}

// DeleteOutput is empty
type DeleteOutput struct{}
