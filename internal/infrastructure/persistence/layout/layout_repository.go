// Package layout provides the SQL-backed layout gateway
package layout

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/layout"
	"github.com/LagoonLabs/modulecraft-go/internal/domain/repositories"
	"github.com/LagoonLabs/modulecraft-go/internal/infrastructure/observability/logging"
	"github.com/LagoonLabs/modulecraft-go/internal/infrastructure/persistence/database"
)

// LayoutRepository persists one layout tree per module as a JSON payload
// with a monotonically increasing version for optimistic concurrency.
type LayoutRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

// NewLayoutRepository creates a new layout repository.
func NewLayoutRepository(db *sql.DB, logger *logging.ChanneledLogger) *LayoutRepository {
	return &LayoutRepository{db: db, logger: logger}
}

// Load returns the stored tree and its version for the module.
func (r *LayoutRepository) Load(ctx context.Context, moduleID string) (layout.Tree, int64, error) {
	start := time.Now()
	query := `SELECT payload, version FROM layouts WHERE module_id = ?`

	var payload string
	var version int64
	err := r.db.QueryRowContext(ctx, query, moduleID).Scan(&payload, &version)
	if err == sql.ErrNoRows {
		return layout.Tree{}, 0, fmt.Errorf("load layout for module %s: %w", moduleID, repositories.ErrLayoutNotFound)
	}
	if err != nil {
		return layout.Tree{}, 0, fmt.Errorf("failed to query layout for module %s: %w: %w", moduleID, repositories.ErrUnavailable, err)
	}

	tree, err := layout.DecodeTree([]byte(payload))
	if err != nil {
		return layout.Tree{}, 0, fmt.Errorf("stored layout for module %s: %w", moduleID, err)
	}

	database.CheckAndLogSlowQuery(r.logger, "LOAD_LAYOUT", time.Since(start), moduleID)
	return tree, version, nil
}

// Save stores the tree when baseVersion still matches the stored version
// and returns the new version. A fresh layout saves with baseVersion 0.
func (r *LayoutRepository) Save(ctx context.Context, moduleID string, tree layout.Tree, baseVersion int64) (int64, error) {
	start := time.Now()

	payload, err := layout.EncodeTree(tree)
	if err != nil {
		return 0, err
	}
	now := time.Now().UTC()

	query := `UPDATE layouts SET payload = ?, version = version + 1, changed = ?
              WHERE module_id = ? AND version = ?`
	result, err := r.db.ExecContext(ctx, query, string(payload), now, moduleID, baseVersion)
	if err != nil {
		return 0, fmt.Errorf("failed to save layout for module %s: %w: %w", moduleID, repositories.ErrUnavailable, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to save layout for module %s: %w: %w", moduleID, repositories.ErrUnavailable, err)
	}
	if rows == 1 {
		database.CheckAndLogSlowQuery(r.logger, "SAVE_LAYOUT", time.Since(start), moduleID)
		return baseVersion + 1, nil
	}

	// Nothing matched: either no layout row yet, or a concurrent editor
	// saved first.
	var stored int64
	err = r.db.QueryRowContext(ctx, `SELECT version FROM layouts WHERE module_id = ?`, moduleID).Scan(&stored)
	if err == sql.ErrNoRows {
		if baseVersion != 0 {
			return 0, fmt.Errorf("layout for module %s was deleted since load: %w", moduleID, repositories.ErrLayoutNotFound)
		}
		insert := `INSERT INTO layouts (module_id, payload, version, created, changed) VALUES (?, ?, 1, ?, ?)`
		if _, err := r.db.ExecContext(ctx, insert, moduleID, string(payload), now, now); err != nil {
			return 0, fmt.Errorf("failed to insert layout for module %s: %w: %w", moduleID, repositories.ErrUnavailable, err)
		}
		database.CheckAndLogSlowQuery(r.logger, "SAVE_LAYOUT", time.Since(start), moduleID)
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to check layout version for module %s: %w: %w", moduleID, repositories.ErrUnavailable, err)
	}

	return 0, fmt.Errorf("module %s stored at version %d, loaded at %d: %w",
		moduleID, stored, baseVersion, repositories.ErrLayoutConflict)
}

// Delete removes the module's layout row, if any.
func (r *LayoutRepository) Delete(ctx context.Context, moduleID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM layouts WHERE module_id = ?`, moduleID)
	if err != nil {
		return fmt.Errorf("failed to delete layout for module %s: %w: %w", moduleID, repositories.ErrUnavailable, err)
	}
	return nil
}
