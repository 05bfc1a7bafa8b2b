// Package repositories defines the repository interfaces for modules and
// their layouts. These abstract the data persistence details, ensuring the
// core application is clean and decoupled from the database.
package repositories

import (
	"context"
	"errors"

	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/content"
	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/layout"
)

// Gateway errors — callers use errors.Is(). ErrUnavailable wraps transient
// I/O failures; retrying is the caller's responsibility, never the
// gateway's.
var (
	ErrModuleNotFound = errors.New("module not found")
	ErrLayoutNotFound = errors.New("module has no stored layout")
	ErrLayoutConflict = errors.New("stored layout changed since it was loaded")
	ErrUnavailable    = errors.New("layout store unavailable")
)

// ModuleRepository persists module rows.
type ModuleRepository interface {
	FindByID(ctx context.Context, id string) (*content.ModuleNode, error)
	FindBySlug(ctx context.Context, slug string) (*content.ModuleNode, error)
	FindAll(ctx context.Context) ([]*content.ModuleNode, error)
	Store(ctx context.Context, module *content.ModuleNode) error
	Update(ctx context.Context, module *content.ModuleNode) error
	Delete(ctx context.Context, id string) error
}

// LayoutGateway loads and saves one layout tree per module. Load returns
// the stored version alongside the tree; Save succeeds only when
// baseVersion still matches the stored version (optimistic concurrency)
// and returns the new stored version.
type LayoutGateway interface {
	Load(ctx context.Context, moduleID string) (layout.Tree, int64, error)
	Save(ctx context.Context, moduleID string, tree layout.Tree, baseVersion int64) (int64, error)
	Delete(ctx context.Context, moduleID string) error
}
