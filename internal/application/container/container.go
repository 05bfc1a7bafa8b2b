// Package container provides dependency injection for all singleton services
package container

import (
	"database/sql"

	"github.com/LagoonLabs/modulecraft-go/internal/application/services"
	"github.com/LagoonLabs/modulecraft-go/internal/infrastructure/caching"
	"github.com/LagoonLabs/modulecraft-go/internal/infrastructure/observability/logging"
	persistence "github.com/LagoonLabs/modulecraft-go/internal/infrastructure/persistence/layout"
	"github.com/LagoonLabs/modulecraft-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services (stateless singletons)
	ModuleService *services.ModuleService
	EditorService *services.EditorService

	// Infrastructure
	Logger       *logging.ChanneledLogger
	DB           *sql.DB
	SessionStore *caching.SessionStore

	// Repositories
	ModuleRepository *persistence.ModuleRepository
	LayoutGateway    *persistence.LayoutRepository
}

// NewContainer creates and wires all singleton services
func NewContainer(db *sql.DB, logger *logging.ChanneledLogger) *Container {
	moduleRepo := persistence.NewModuleRepository(db, logger)
	layoutRepo := persistence.NewLayoutRepository(db, logger)
	store := caching.NewSessionStore(config.MaxEditorSessions, config.SessionTTL, logger)

	return &Container{
		ModuleService: services.NewModuleService(moduleRepo, layoutRepo, logger),
		EditorService: services.NewEditorService(layoutRepo, moduleRepo, store, config.HistoryDepth, logger),

		Logger:       logger,
		DB:           db,
		SessionStore: store,

		ModuleRepository: moduleRepo,
		LayoutGateway:    layoutRepo,
	}
}
