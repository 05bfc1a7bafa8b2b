package editor

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/layout"
)

// Sentinel errors — callers use errors.Is() instead of string matching.
var (
	ErrSaveInFlight  = errors.New("a save is already in flight for this session")
	ErrNotSaving     = errors.New("session has no save in flight")
	ErrUnknownAction = errors.New("unknown editor action")
)

// Status is the UI-facing lifecycle state of a session. While Saving the
// caller is expected to disable conflicting actions; the engine itself only
// enforces that a second save is never issued concurrently.
type Status string

const (
	StatusIdle   Status = "idle"
	StatusSaving Status = "saving"
)

// Session is the mutable editing context wrapping one module's layout tree.
// It is owned by a single interactive editing context: dispatch from
// multiple goroutines onto the same session is not supported and must be
// serialized by the caller.
//
// Tree values are immutable, so history snapshots are cheap aliases of
// prior trees rather than copies.
type Session struct {
	ID          string
	ModuleID    string
	Tree        layout.Tree
	BaseVersion int64
	Selected    string
	Created     time.Time
	Changed     time.Time

	status       Status
	dirty        bool
	historyDepth int
	undo         []layout.Tree
	redo         []layout.Tree
}

// NewSession opens an editing session over a loaded tree. baseVersion is
// the stored layout version the tree was loaded at; it anchors the
// optimistic-concurrency check on save. historyDepth bounds the undo stack;
// values below 1 fall back to a single snapshot.
func NewSession(moduleID string, tree layout.Tree, baseVersion int64, historyDepth int) *Session {
	if historyDepth < 1 {
		historyDepth = 1
	}
	now := time.Now().UTC()
	return &Session{
		ID:           uuid.NewString(),
		ModuleID:     moduleID,
		Tree:         tree,
		BaseVersion:  baseVersion,
		Created:      now,
		Changed:      now,
		status:       StatusIdle,
		historyDepth: historyDepth,
	}
}

// Status returns the session's lifecycle state.
func (s *Session) Status() Status { return s.status }

// Dirty reports whether the tree has changed since the last successful save.
func (s *Session) Dirty() bool { return s.dirty }

// CanUndo reports whether an Undo would restore a snapshot.
func (s *Session) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether a Redo would restore a snapshot.
func (s *Session) CanRedo() bool { return len(s.redo) > 0 }

// Dispatch applies one action to the session. Actions are applied strictly
// in the order received. On a mutating action the previous tree is pushed
// onto the undo stack (oldest snapshot discarded beyond the depth bound)
// and the redo stack is cleared. A rejected action leaves the tree, the
// selection, and both history stacks untouched and returns the error for
// user-facing reporting.
func (s *Session) Dispatch(action Action) (Result, error) {
	switch a := action.(type) {
	case Select:
		if a.ID != "" {
			if _, ok := s.Tree.Get(a.ID); !ok {
				return Result{}, fmt.Errorf("select %s: %w", a.ID, layout.ErrNotFound)
			}
		}
		s.Selected = a.ID
		return Result{Outcome: OutcomeSelected}, nil

	case Undo:
		if len(s.undo) == 0 {
			return Result{Outcome: OutcomeEmptyUndo}, nil
		}
		prev := s.undo[len(s.undo)-1]
		s.undo = s.undo[:len(s.undo)-1]
		s.redo = append(s.redo, s.Tree)
		s.restore(prev)
		return Result{Outcome: OutcomeApplied}, nil

	case Redo:
		if len(s.redo) == 0 {
			return Result{Outcome: OutcomeEmptyRedo}, nil
		}
		next := s.redo[len(s.redo)-1]
		s.redo = s.redo[:len(s.redo)-1]
		s.undo = append(s.undo, s.Tree)
		s.restore(next)
		return Result{Outcome: OutcomeApplied}, nil
	}

	next, newID, err := s.applyMutation(action)
	if err != nil {
		return Result{}, err
	}

	s.pushUndo(s.Tree)
	s.redo = nil
	s.Tree = next
	s.dirty = true
	s.Changed = time.Now().UTC()

	// A removed block cannot stay selected.
	if s.Selected != "" {
		if _, ok := s.Tree.Get(s.Selected); !ok {
			s.Selected = ""
		}
	}

	return Result{Outcome: OutcomeApplied, NewBlockID: newID}, nil
}

// applyMutation computes the successor tree for a mutating action without
// touching session state.
func (s *Session) applyMutation(action Action) (layout.Tree, string, error) {
	switch a := action.(type) {
	case AddBlock:
		b, err := layout.NewDefaultBlock(a.Type)
		if err != nil {
			return s.Tree, "", err
		}
		if a.ParentID == "" {
			t, err := s.Tree.Insert(b, a.Position)
			return t, b.ID, err
		}
		t, err := s.Tree.InsertChild(a.ParentID, b, a.Position)
		return t, b.ID, err

	case RemoveBlock:
		t, err := s.Tree.Remove(a.ID)
		return t, "", err

	case DuplicateBlock:
		t, cloneID, err := s.Tree.Duplicate(a.ID)
		return t, cloneID, err

	case ReorderBlock:
		t, err := s.Tree.Reorder(a.ParentID, a.ID, a.NewIndex)
		return t, "", err

	case EditProperty:
		b, ok := s.Tree.Get(a.ID)
		if !ok {
			return s.Tree, "", fmt.Errorf("edit %s: %w", a.ID, layout.ErrNotFound)
		}
		edited, err := layout.ApplyProperty(b, a.Key, a.Value)
		if err != nil {
			return s.Tree, "", err
		}
		t, err := s.Tree.Replace(edited)
		return t, "", err
	}

	return s.Tree, "", fmt.Errorf("%T: %w", action, ErrUnknownAction)
}

func (s *Session) restore(t layout.Tree) {
	s.Tree = t
	s.dirty = true
	s.Changed = time.Now().UTC()
	if s.Selected != "" {
		if _, ok := s.Tree.Get(s.Selected); !ok {
			s.Selected = ""
		}
	}
}

func (s *Session) pushUndo(t layout.Tree) {
	if len(s.undo) >= s.historyDepth {
		copy(s.undo, s.undo[1:])
		s.undo = s.undo[:len(s.undo)-1]
	}
	s.undo = append(s.undo, t)
}

// BeginSave transitions the session into Saving. At most one save may be in
// flight per session; a second concurrent save is rejected.
func (s *Session) BeginSave() error {
	if s.status == StatusSaving {
		return ErrSaveInFlight
	}
	s.status = StatusSaving
	return nil
}

// CompleteSave records a successful save at the new stored version and
// returns the session to Idle.
func (s *Session) CompleteSave(newVersion int64) error {
	if s.status != StatusSaving {
		return ErrNotSaving
	}
	s.status = StatusIdle
	s.BaseVersion = newVersion
	s.dirty = false
	return nil
}

// AbortSave returns the session to Idle after a failed save, leaving the
// base version and dirty flag as they were.
func (s *Session) AbortSave() {
	if s.status == StatusSaving {
		s.status = StatusIdle
	}
}
