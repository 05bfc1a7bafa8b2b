package services

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/content"
	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/editor"
	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/layout"
	"github.com/LagoonLabs/modulecraft-go/internal/domain/repositories"
	"github.com/LagoonLabs/modulecraft-go/internal/infrastructure/caching"
	"github.com/LagoonLabs/modulecraft-go/internal/infrastructure/observability/logging"
)

// fakeGateway is an in-memory LayoutGateway with the same optimistic
// concurrency semantics as the SQL implementation.
type fakeGateway struct {
	payloads map[string][]byte
	versions map[string]int64
	failWith error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{payloads: map[string][]byte{}, versions: map[string]int64{}}
}

func (g *fakeGateway) Load(ctx context.Context, moduleID string) (layout.Tree, int64, error) {
	if g.failWith != nil {
		return layout.Tree{}, 0, g.failWith
	}
	payload, ok := g.payloads[moduleID]
	if !ok {
		return layout.Tree{}, 0, fmt.Errorf("load %s: %w", moduleID, repositories.ErrLayoutNotFound)
	}
	tree, err := layout.DecodeTree(payload)
	if err != nil {
		return layout.Tree{}, 0, err
	}
	return tree, g.versions[moduleID], nil
}

func (g *fakeGateway) Save(ctx context.Context, moduleID string, tree layout.Tree, baseVersion int64) (int64, error) {
	if g.failWith != nil {
		return 0, g.failWith
	}
	if g.versions[moduleID] != baseVersion {
		return 0, fmt.Errorf("save %s: %w", moduleID, repositories.ErrLayoutConflict)
	}
	payload, err := layout.EncodeTree(tree)
	if err != nil {
		return 0, err
	}
	g.payloads[moduleID] = payload
	g.versions[moduleID] = baseVersion + 1
	return g.versions[moduleID], nil
}

func (g *fakeGateway) Delete(ctx context.Context, moduleID string) error {
	delete(g.payloads, moduleID)
	delete(g.versions, moduleID)
	return nil
}

// fakeModules is an in-memory ModuleRepository.
type fakeModules struct {
	byID map[string]*content.ModuleNode
}

func newFakeModules(ids ...string) *fakeModules {
	f := &fakeModules{byID: map[string]*content.ModuleNode{}}
	for _, id := range ids {
		f.byID[id] = &content.ModuleNode{ID: id, Title: id, NodeType: "Module", Slug: id, Created: time.Now().UTC()}
	}
	return f
}

func (f *fakeModules) FindByID(ctx context.Context, id string) (*content.ModuleNode, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("module %s: %w", id, repositories.ErrModuleNotFound)
	}
	return m, nil
}

func (f *fakeModules) FindBySlug(ctx context.Context, slug string) (*content.ModuleNode, error) {
	for _, m := range f.byID {
		if m.Slug == slug {
			return m, nil
		}
	}
	return nil, fmt.Errorf("module %s: %w", slug, repositories.ErrModuleNotFound)
}

func (f *fakeModules) FindAll(ctx context.Context) ([]*content.ModuleNode, error) {
	var out []*content.ModuleNode
	for _, m := range f.byID {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeModules) Store(ctx context.Context, m *content.ModuleNode) error {
	f.byID[m.ID] = m
	return nil
}

func (f *fakeModules) Update(ctx context.Context, m *content.ModuleNode) error {
	if _, ok := f.byID[m.ID]; !ok {
		return fmt.Errorf("module %s: %w", m.ID, repositories.ErrModuleNotFound)
	}
	f.byID[m.ID] = m
	return nil
}

func (f *fakeModules) Delete(ctx context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func quietLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToConsole = false
	cfg.DefaultLevel = slog.LevelError
	logger, err := logging.NewChanneledLogger(cfg)
	require.NoError(t, err)
	return logger
}

func newTestEditorService(t *testing.T, gateway *fakeGateway, modules *fakeModules) *EditorService {
	t.Helper()
	logger := quietLogger(t)
	store := caching.NewSessionStore(10, time.Minute, logger)
	return NewEditorService(gateway, modules, store, 50, logger)
}

func TestEditorServiceOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("module without a stored layout opens empty", func(t *testing.T) {
		svc := newTestEditorService(t, newFakeGateway(), newFakeModules("mod-1"))

		session, err := svc.Open(ctx, "mod-1")
		require.NoError(t, err)
		assert.Equal(t, 0, session.Tree.Len())
		assert.EqualValues(t, 0, session.BaseVersion)
	})

	t.Run("unknown module rejected", func(t *testing.T) {
		svc := newTestEditorService(t, newFakeGateway(), newFakeModules())

		_, err := svc.Open(ctx, "nope")
		assert.ErrorIs(t, err, repositories.ErrModuleNotFound)
	})

	t.Run("reopening returns the live session", func(t *testing.T) {
		svc := newTestEditorService(t, newFakeGateway(), newFakeModules("mod-1"))

		first, err := svc.Open(ctx, "mod-1")
		require.NoError(t, err)
		_, err = svc.Dispatch(first, editor.AddBlock{Type: layout.BlockHero, Position: editor.AtEnd})
		require.NoError(t, err)

		second, err := svc.Open(ctx, "mod-1")
		require.NoError(t, err)
		assert.Same(t, first, second)
		assert.Equal(t, 1, second.Tree.Len())
	})

	t.Run("closed session reopens from storage", func(t *testing.T) {
		gateway := newFakeGateway()
		svc := newTestEditorService(t, gateway, newFakeModules("mod-1"))

		session, err := svc.Open(ctx, "mod-1")
		require.NoError(t, err)
		_, err = svc.Dispatch(session, editor.AddBlock{Type: layout.BlockHero, Position: editor.AtEnd})
		require.NoError(t, err)
		svc.Close("mod-1")

		reopened, err := svc.Open(ctx, "mod-1")
		require.NoError(t, err)
		assert.NotSame(t, session, reopened)
		assert.Equal(t, 0, reopened.Tree.Len(), "unsaved edits are discarded on close")
	})
}

func TestEditorServiceSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	gateway := newFakeGateway()
	svc := newTestEditorService(t, gateway, newFakeModules("mod-1"))

	session, err := svc.Open(ctx, "mod-1")
	require.NoError(t, err)

	added, err := svc.Dispatch(session, editor.AddBlock{Type: layout.BlockHero, Position: editor.AtEnd})
	require.NoError(t, err)
	_, err = svc.Dispatch(session, editor.EditProperty{ID: added.NewBlockID, Key: "title", Value: "Welcome"})
	require.NoError(t, err)

	version, err := svc.Save(ctx, session)
	require.NoError(t, err)
	assert.EqualValues(t, 1, version)
	assert.EqualValues(t, 1, session.BaseVersion)
	assert.False(t, session.Dirty())

	svc.Close("mod-1")
	reopened, err := svc.Open(ctx, "mod-1")
	require.NoError(t, err)

	hero, ok := reopened.Tree.Get(added.NewBlockID)
	require.True(t, ok)
	assert.Equal(t, "Welcome", hero.Hero.Title)
	assert.EqualValues(t, 1, reopened.BaseVersion)
}

func TestEditorServiceSaveConflict(t *testing.T) {
	ctx := context.Background()
	gateway := newFakeGateway()
	svc := newTestEditorService(t, gateway, newFakeModules("mod-1"))

	session, err := svc.Open(ctx, "mod-1")
	require.NoError(t, err)
	_, err = svc.Dispatch(session, editor.AddBlock{Type: layout.BlockText, Position: editor.AtEnd})
	require.NoError(t, err)

	// Another editor saves first, bumping the stored version.
	other := editor.NewSession("mod-1", layout.NewTree(), 0, 50)
	_, err = gateway.Save(ctx, "mod-1", other.Tree, 0)
	require.NoError(t, err)

	_, err = svc.Save(ctx, session)
	assert.ErrorIs(t, err, repositories.ErrLayoutConflict)
	assert.Equal(t, editor.StatusIdle, session.Status(), "failed save must return to idle")
	assert.True(t, session.Dirty(), "edits survive a conflicted save")
	assert.EqualValues(t, 0, session.BaseVersion)
}

func TestEditorServiceSaveTransientFailure(t *testing.T) {
	ctx := context.Background()
	gateway := newFakeGateway()
	svc := newTestEditorService(t, gateway, newFakeModules("mod-1"))

	session, err := svc.Open(ctx, "mod-1")
	require.NoError(t, err)
	_, err = svc.Dispatch(session, editor.AddBlock{Type: layout.BlockText, Position: editor.AtEnd})
	require.NoError(t, err)

	gateway.failWith = fmt.Errorf("disk on fire: %w", repositories.ErrUnavailable)
	_, err = svc.Save(ctx, session)
	assert.ErrorIs(t, err, repositories.ErrUnavailable)
	assert.Equal(t, editor.StatusIdle, session.Status())

	// The same session saves cleanly once the store recovers.
	gateway.failWith = nil
	version, err := svc.Save(ctx, session)
	require.NoError(t, err)
	assert.EqualValues(t, 1, version)
}

func TestEditorServicePreview(t *testing.T) {
	ctx := context.Background()
	svc := newTestEditorService(t, newFakeGateway(), newFakeModules("mod-1"))

	session, err := svc.Open(ctx, "mod-1")
	require.NoError(t, err)
	_, err = svc.Dispatch(session, editor.AddBlock{Type: layout.BlockMenuList, Position: editor.AtEnd})
	require.NoError(t, err)

	plan, err := svc.Preview(ctx, session, nil)
	require.NoError(t, err)
	require.Len(t, plan.Nodes, 1)
	assert.Equal(t, layout.BlockMenuList, plan.Nodes[0].Type)
	assert.Empty(t, plan.Nodes[0].Menu, "nil data context yields empty bindings")
}
