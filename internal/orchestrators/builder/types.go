package builder

import (
	"github.com/KirkDiggler/rpg-charbuilder/internal/engine"
	"github.com/KirkDiggler/rpg-charbuilder/internal/entities/character"
	"github.com/KirkDiggler/rpg-charbuilder/internal/exporters"
	"github.com/KirkDiggler/rpg-charbuilder/internal/exporters/actor"
)

// Event types published on the bus after each committed change
const (
	EventDraftChanged    = "draft.changed"
	EventDraftCleared    = "draft.cleared"
	EventDraftRandomized = "draft.randomized"
)

// Keys of the event context
const (
	contextField    = "field"
	contextRevision = "revision"
	contextSnapshot = "snapshot"
)

// SetInput sets one field. Value must have the field's type; ParseValue
// converts CLI strings.
type SetInput struct {
	Field character.Field
	Value any
}

// SetOutput returns the committed draft and its derived snapshot
type SetOutput struct {
	Draft    *character.Draft
	Snapshot *engine.Snapshot
	// Cleared lists dependent fields emptied because the new value made
	// them illegal
	Cleared []character.Field
}

// RandomizeInput configures a randomize run
type RandomizeInput struct {
	// Seed makes the run reproducible when set
	Seed *int64
}

// RandomizeOutput returns the draft after the run
type RandomizeOutput struct {
	Draft    *character.Draft
	Snapshot *engine.Snapshot
	// Discarded is true when another change landed while the run was in
	// flight. Draft and Snapshot then hold that newer state.
	Discarded bool
}

// ExportInput selects the export format
type ExportInput struct {
	Format exporters.Format
}

// ExportOutput holds the rendered export
type ExportOutput struct {
	Format exporters.Format
	Data   []byte
	// Actor is set for the actor format
	Actor *actor.Actor
}

// OptionsOutput lists the legal values of a field
type OptionsOutput struct {
	Field  character.Field
	Values []string
	// Constrained is false for free-text fields
	Constrained bool
	// Limit caps multi-valued fields, -1 when unbounded
	Limit int
}

// CurrentOutput is the state of the draft
type CurrentOutput struct {
	Draft    *character.Draft
	Snapshot *engine.Snapshot
	Locks    map[character.Field]bool
	Revision uint64
}

// Notification is delivered to subscribers after a change is committed and
// derived
type Notification struct {
	Type     string
	Field    character.Field
	Revision uint64
	Draft    *character.Draft
	Snapshot *engine.Snapshot
}
