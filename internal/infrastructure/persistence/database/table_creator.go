// Package database provides schema instantiation
package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/layout"
	"github.com/LagoonLabs/modulecraft-go/internal/infrastructure/identity"
)

// TableCreator handles the creation of the database schema.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the tables and indexes.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}

// SeedInitialContent adds the default content required for a fresh install
// to function: a "welcome" module with a starter layout.
func (tc *TableCreator) SeedInitialContent(db *sql.DB) error {
	// Idempotently create the default "welcome" module.
	var moduleID string
	err := db.QueryRow("SELECT id FROM modules WHERE slug = 'welcome'").Scan(&moduleID)
	if err == sql.ErrNoRows {
		moduleID = identity.GenerateULID()
		now := time.Now().UTC()
		_, err = db.Exec(`INSERT INTO modules (id, title, slug, created) VALUES (?, ?, ?, ?)`,
			moduleID, "Welcome", "welcome", now)
		if err != nil {
			return fmt.Errorf("failed to insert default module: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to check for default module: %w", err)
	}

	// Idempotently create the starter layout for the welcome module.
	var layoutExists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM layouts WHERE module_id = ?)", moduleID).Scan(&layoutExists)
	if err != nil {
		return fmt.Errorf("failed to check for layout existence: %w", err)
	}

	if !layoutExists {
		tree, err := starterLayout()
		if err != nil {
			return fmt.Errorf("failed to build starter layout: %w", err)
		}
		payload, err := layout.EncodeTree(tree)
		if err != nil {
			return fmt.Errorf("failed to encode starter layout: %w", err)
		}

		now := time.Now().UTC()
		_, err = db.Exec(`INSERT INTO layouts (module_id, payload, version, created, changed) VALUES (?, ?, 1, ?, ?)`,
			moduleID, string(payload), now, now)
		if err != nil {
			return fmt.Errorf("failed to insert starter layout: %w", err)
		}
	}

	return nil
}

// starterLayout builds the default page: a hero banner over a short text
// block.
func starterLayout() (layout.Tree, error) {
	tree := layout.NewTree()

	hero, err := layout.NewDefaultBlock(layout.BlockHero)
	if err != nil {
		return tree, err
	}
	tree, err = tree.Insert(hero, layout.AtEnd)
	if err != nil {
		return tree, err
	}

	text, err := layout.NewDefaultBlock(layout.BlockText)
	if err != nil {
		return tree, err
	}
	return tree.Insert(text, layout.AtEnd)
}

// Schema definitions
var tables = []string{
	`CREATE TABLE IF NOT EXISTS modules (id TEXT PRIMARY KEY, title TEXT NOT NULL, slug TEXT NOT NULL UNIQUE, summary TEXT, created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, changed TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS layouts (module_id TEXT PRIMARY KEY REFERENCES modules(id), payload TEXT NOT NULL, version INTEGER NOT NULL DEFAULT 1, created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, changed TIMESTAMP)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_modules_slug ON modules(slug)`,
}
