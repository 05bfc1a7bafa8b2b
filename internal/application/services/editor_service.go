// Package services provides the application orchestration layer.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/editor"
	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/layout"
	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/rendering"
	"github.com/LagoonLabs/modulecraft-go/internal/domain/repositories"
	"github.com/LagoonLabs/modulecraft-go/internal/infrastructure/caching"
	"github.com/LagoonLabs/modulecraft-go/internal/infrastructure/observability/logging"
)

// EditorService manages the lifecycle of live editing sessions: opening a
// module's layout into a session, dispatching actions onto it, and saving
// the working tree back through the layout gateway.
type EditorService struct {
	gateway      repositories.LayoutGateway
	modules      repositories.ModuleRepository
	store        *caching.SessionStore
	historyDepth int
	logger       *logging.ChanneledLogger
}

// NewEditorService creates an editor service.
func NewEditorService(gateway repositories.LayoutGateway, modules repositories.ModuleRepository,
	store *caching.SessionStore, historyDepth int, logger *logging.ChanneledLogger) *EditorService {
	return &EditorService{
		gateway:      gateway,
		modules:      modules,
		store:        store,
		historyDepth: historyDepth,
		logger:       logger,
	}
}

// Open returns the live editing session for a module, creating one from the
// stored layout when none is live. A module that exists but has no stored
// layout yet opens onto an empty tree at base version 0.
func (s *EditorService) Open(ctx context.Context, moduleID string) (*editor.Session, error) {
	if moduleID == "" {
		return nil, fmt.Errorf("module ID cannot be empty")
	}

	if session, ok := s.store.Get(moduleID); ok {
		return session, nil
	}

	if _, err := s.modules.FindByID(ctx, moduleID); err != nil {
		return nil, fmt.Errorf("failed to open editor for module %s: %w", moduleID, err)
	}

	tree, version, err := s.gateway.Load(ctx, moduleID)
	if errors.Is(err, repositories.ErrLayoutNotFound) {
		tree, version = layout.NewTree(), 0
	} else if err != nil {
		return nil, fmt.Errorf("failed to open editor for module %s: %w", moduleID, err)
	}

	session := editor.NewSession(moduleID, tree, version, s.historyDepth)
	s.store.Put(session)

	s.logger.Editor().Info("Opened editing session",
		"sessionId", session.ID, "moduleId", moduleID, "baseVersion", version, "blocks", tree.Len())
	return session, nil
}

// Dispatch applies one action to a session and logs the outcome. Rejected
// actions leave the session untouched; the error is returned for
// user-facing reporting.
func (s *EditorService) Dispatch(session *editor.Session, action editor.Action) (editor.Result, error) {
	start := time.Now()
	result, err := session.Dispatch(action)
	s.logger.LogEditorAction(editor.ActionName(action), session.ModuleID,
		string(result.Outcome), time.Since(start), err)
	return result, err
}

// Save persists the session's working tree through the layout gateway and,
// on success, rebases the session onto the new stored version. At most one
// save per session may be in flight.
func (s *EditorService) Save(ctx context.Context, session *editor.Session) (int64, error) {
	if err := session.BeginSave(); err != nil {
		return 0, err
	}

	start := time.Now()
	version, err := s.gateway.Save(ctx, session.ModuleID, session.Tree, session.BaseVersion)
	if err != nil {
		session.AbortSave()
		s.logger.Editor().Error("Save failed",
			"moduleId", session.ModuleID, "baseVersion", session.BaseVersion, "error", err.Error())
		return 0, fmt.Errorf("failed to save layout for module %s: %w", session.ModuleID, err)
	}

	if err := session.CompleteSave(version); err != nil {
		return 0, err
	}
	s.logger.Editor().Info("Saved layout",
		"moduleId", session.ModuleID, "version", version, "duration", time.Since(start))
	return version, nil
}

// Preview builds the render plan for the session's working tree, resolving
// data-bound blocks against the supplied data context. A nil data context
// yields empty bindings.
func (s *EditorService) Preview(ctx context.Context, session *editor.Session, data rendering.DataContext) (rendering.Plan, error) {
	return rendering.BuildPlan(ctx, session.ModuleID, session.Tree, data)
}

// Close discards the live session for a module without saving.
func (s *EditorService) Close(moduleID string) {
	s.store.Delete(moduleID)
	s.logger.Editor().Debug("Closed editing session", "moduleId", moduleID)
}
