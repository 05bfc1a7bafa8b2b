package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/content"
	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/layout"
	"github.com/LagoonLabs/modulecraft-go/internal/domain/repositories"
	"github.com/LagoonLabs/modulecraft-go/internal/infrastructure/identity"
	"github.com/LagoonLabs/modulecraft-go/internal/infrastructure/observability/logging"
)

// ModuleService handles module-level business logic.
type ModuleService struct {
	modules repositories.ModuleRepository
	gateway repositories.LayoutGateway
	logger  *logging.ChanneledLogger
}

// NewModuleService creates a module service.
func NewModuleService(modules repositories.ModuleRepository, gateway repositories.LayoutGateway,
	logger *logging.ChanneledLogger) *ModuleService {
	return &ModuleService{modules: modules, gateway: gateway, logger: logger}
}

// GetByID retrieves a module by its ID.
func (s *ModuleService) GetByID(ctx context.Context, id string) (*content.ModuleNode, error) {
	if id == "" {
		return nil, fmt.Errorf("module ID cannot be empty")
	}
	return s.modules.FindByID(ctx, id)
}

// GetBySlug retrieves a module by its slug.
func (s *ModuleService) GetBySlug(ctx context.Context, slug string) (*content.ModuleNode, error) {
	if slug == "" {
		return nil, fmt.Errorf("module slug cannot be empty")
	}
	return s.modules.FindBySlug(ctx, slug)
}

// GetAll retrieves every module, ordered by title.
func (s *ModuleService) GetAll(ctx context.Context) ([]*content.ModuleNode, error) {
	return s.modules.FindAll(ctx)
}

// Create registers a new module and returns it. The layout stays absent
// until the first save; the editor opens absent layouts onto an empty tree.
func (s *ModuleService) Create(ctx context.Context, title, slug string, summary *string) (*content.ModuleNode, error) {
	if title == "" {
		return nil, fmt.Errorf("module title cannot be empty")
	}
	if slug == "" {
		return nil, fmt.Errorf("module slug cannot be empty")
	}

	module := &content.ModuleNode{
		ID:       identity.GenerateULID(),
		Title:    title,
		NodeType: "Module",
		Slug:     slug,
		Summary:  summary,
		Created:  time.Now().UTC(),
	}
	if err := s.modules.Store(ctx, module); err != nil {
		return nil, fmt.Errorf("failed to create module %s: %w", slug, err)
	}

	s.logger.System().Info("Created module", "moduleId", module.ID, "slug", slug)
	return module, nil
}

// Update persists changes to a module's descriptive fields.
func (s *ModuleService) Update(ctx context.Context, module *content.ModuleNode) error {
	if module == nil || module.ID == "" {
		return fmt.Errorf("module ID cannot be empty")
	}
	now := time.Now().UTC()
	module.Changed = &now
	return s.modules.Update(ctx, module)
}

// Delete removes a module and its stored layout.
func (s *ModuleService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("module ID cannot be empty")
	}
	if err := s.modules.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.System().Info("Deleted module", "moduleId", id)
	return nil
}

// ExportLayout returns the stored layout for a module as canonical JSON.
func (s *ModuleService) ExportLayout(ctx context.Context, moduleID string) ([]byte, int64, error) {
	tree, version, err := s.gateway.Load(ctx, moduleID)
	if err != nil {
		return nil, 0, err
	}
	payload, err := layout.EncodeTree(tree)
	if err != nil {
		return nil, 0, err
	}
	return payload, version, nil
}

// ImportLayout validates an encoded layout and stores it for the module,
// replacing whatever version is currently stored.
func (s *ModuleService) ImportLayout(ctx context.Context, moduleID string, payload []byte) (int64, error) {
	tree, err := layout.DecodeTree(payload)
	if err != nil {
		return 0, fmt.Errorf("rejecting import for module %s: %w", moduleID, err)
	}

	_, current, err := s.gateway.Load(ctx, moduleID)
	if err != nil && !errors.Is(err, repositories.ErrLayoutNotFound) {
		return 0, err
	}

	version, err := s.gateway.Save(ctx, moduleID, tree, current)
	if err != nil {
		return 0, fmt.Errorf("failed to import layout for module %s: %w", moduleID, err)
	}
	s.logger.System().Info("Imported layout", "moduleId", moduleID, "version", version, "blocks", tree.Len())
	return version, nil
}
