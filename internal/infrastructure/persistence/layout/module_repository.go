// Package layout provides the modules repository
package layout

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/content"
	"github.com/LagoonLabs/modulecraft-go/internal/domain/repositories"
	"github.com/LagoonLabs/modulecraft-go/internal/infrastructure/observability/logging"
	"github.com/LagoonLabs/modulecraft-go/internal/infrastructure/persistence/database"
)

// ModuleRepository persists module rows.
type ModuleRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

// NewModuleRepository creates a new module repository.
func NewModuleRepository(db *sql.DB, logger *logging.ChanneledLogger) *ModuleRepository {
	return &ModuleRepository{db: db, logger: logger}
}

func (r *ModuleRepository) FindByID(ctx context.Context, id string) (*content.ModuleNode, error) {
	query := `SELECT id, title, slug, summary, created, changed FROM modules WHERE id = ?`
	return r.scanOne(ctx, query, id)
}

func (r *ModuleRepository) FindBySlug(ctx context.Context, slug string) (*content.ModuleNode, error) {
	query := `SELECT id, title, slug, summary, created, changed FROM modules WHERE slug = ?`
	return r.scanOne(ctx, query, slug)
}

func (r *ModuleRepository) FindAll(ctx context.Context) ([]*content.ModuleNode, error) {
	start := time.Now()
	query := `SELECT id, title, slug, summary, created, changed FROM modules ORDER BY title`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query modules: %w: %w", repositories.ErrUnavailable, err)
	}
	defer rows.Close()

	var modules []*content.ModuleNode
	for rows.Next() {
		module, err := scanModule(rows.Scan)
		if err != nil {
			return nil, err
		}
		modules = append(modules, module)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w: %w", repositories.ErrUnavailable, err)
	}

	database.CheckAndLogSlowQuery(r.logger, "FIND_ALL_MODULES", time.Since(start), "")
	return modules, nil
}

func (r *ModuleRepository) Store(ctx context.Context, module *content.ModuleNode) error {
	query := `INSERT INTO modules (id, title, slug, summary, created, changed) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, module.ID, module.Title, module.Slug,
		module.Summary, module.Created, module.Changed)
	if err != nil {
		return fmt.Errorf("failed to insert module: %w: %w", repositories.ErrUnavailable, err)
	}
	return nil
}

func (r *ModuleRepository) Update(ctx context.Context, module *content.ModuleNode) error {
	query := `UPDATE modules SET title = ?, slug = ?, summary = ?, changed = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, module.Title, module.Slug,
		module.Summary, module.Changed, module.ID)
	if err != nil {
		return fmt.Errorf("failed to update module: %w: %w", repositories.ErrUnavailable, err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("update module %s: %w", module.ID, repositories.ErrModuleNotFound)
	}
	return nil
}

func (r *ModuleRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM layouts WHERE module_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete module layout: %w: %w", repositories.ErrUnavailable, err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM modules WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete module: %w: %w", repositories.ErrUnavailable, err)
	}
	return nil
}

func (r *ModuleRepository) scanOne(ctx context.Context, query string, arg any) (*content.ModuleNode, error) {
	start := time.Now()
	row := r.db.QueryRowContext(ctx, query, arg)

	module, err := scanModule(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("module %v: %w", arg, repositories.ErrModuleNotFound)
	}
	if err != nil {
		return nil, err
	}

	database.CheckAndLogSlowQuery(r.logger, "FIND_MODULE", time.Since(start), module.ID)
	return module, nil
}

func scanModule(scan func(dest ...any) error) (*content.ModuleNode, error) {
	var module content.ModuleNode
	var summary sql.NullString
	var changed sql.NullTime

	err := scan(&module.ID, &module.Title, &module.Slug, &summary, &module.Created, &changed)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan module: %w: %w", repositories.ErrUnavailable, err)
	}

	if summary.Valid {
		module.Summary = &summary.String
	}
	if changed.Valid {
		changedTime := changed.Time
		module.Changed = &changedTime
	}
	module.NodeType = "Module"

	return &module, nil
}
