// Package editor provides the in-memory editing engine wrapping one layout
// tree: action dispatch, selection tracking, and a bounded undo/redo
// history of tree snapshots.
package editor

import "github.com/LagoonLabs/modulecraft-go/internal/domain/entities/layout"

// AtEnd is the position value that appends to an ordering list.
const AtEnd = layout.AtEnd

// Action is one user-originated editing step. Exactly the listed concrete
// types are accepted by Dispatch.
type Action interface {
	actionName() string
}

// AddBlock creates a default block of the given type, top-level when
// ParentID is empty, otherwise inside the named container.
type AddBlock struct {
	Type     layout.BlockType
	ParentID string
	Position int
}

// RemoveBlock deletes the block and, for containers, all descendants.
type RemoveBlock struct {
	ID string
}

// DuplicateBlock deep-clones the block with fresh ids, placing the clone
// after the original.
type DuplicateBlock struct {
	ID string
}

// ReorderBlock moves a block within its current ordering list. An empty
// ParentID addresses the top-level list.
type ReorderBlock struct {
	ID       string
	NewIndex int
	ParentID string
}

// EditProperty applies a validated property edit to one block.
type EditProperty struct {
	ID    string
	Key   string
	Value any
}

// Select marks at most one block as selected; an empty ID clears the
// selection. Selection never touches history.
type Select struct {
	ID string
}

// Undo restores the most recent prior tree snapshot, if any.
type Undo struct{}

// Redo restores the most recently undone tree snapshot, if any.
type Redo struct{}

func (AddBlock) actionName() string       { return "addBlock" }
func (RemoveBlock) actionName() string    { return "removeBlock" }
func (DuplicateBlock) actionName() string { return "duplicateBlock" }
func (ReorderBlock) actionName() string   { return "reorderBlock" }
func (EditProperty) actionName() string   { return "editProperty" }
func (Select) actionName() string         { return "select" }
func (Undo) actionName() string           { return "undo" }
func (Redo) actionName() string           { return "redo" }

// ActionName returns the wire/logging name of an action.
func ActionName(a Action) string {
	if a == nil {
		return "unknown"
	}
	return a.actionName()
}

// Outcome classifies the result of a dispatched action. Empty undo/redo are
// benign no-ops, distinct from errors; the UI absorbs them silently.
type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeSelected  Outcome = "selected"
	OutcomeEmptyUndo Outcome = "emptyUndo"
	OutcomeEmptyRedo Outcome = "emptyRedo"
)

// Result reports what a successful dispatch did. NewBlockID is set for
// AddBlock and DuplicateBlock.
type Result struct {
	Outcome    Outcome
	NewBlockID string
}
