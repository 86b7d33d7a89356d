// Package idgen provides ID generation utilities
package idgen

import (
	"encoding/hex"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock.go -package=idgenmock github.com/KirkDiggler/rpg-charbuilder/internal/pkg/idgen Generator

// DocumentIDLength is the length of a Foundry document _id
const DocumentIDLength = 16

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// UUIDGenerator generates UUIDs with optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}

// DocumentGenerator generates 16 character alphanumeric document IDs
type DocumentGenerator struct{}

// NewDocument creates a document ID generator
func NewDocument() *DocumentGenerator {
	return &DocumentGenerator{}
}

// Generate returns 16 lowercase hex characters drawn from a random UUID
func (g *DocumentGenerator) Generate() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])[:DocumentIDLength]
}

// SequentialGenerator generates sequential IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}

// SequentialDocumentGenerator yields 16 character IDs in sequence
type SequentialDocumentGenerator struct {
	counter uint64
}

// NewSequentialDocument creates a deterministic document ID generator
func NewSequentialDocument() *SequentialDocumentGenerator {
	return &SequentialDocumentGenerator{}
}

// Generate returns the next ID, zero padded hex
func (g *SequentialDocumentGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	return fmt.Sprintf("%016x", n)
}
