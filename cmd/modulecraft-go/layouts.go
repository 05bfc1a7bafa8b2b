package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LagoonLabs/modulecraft-go/internal/domain/entities/layout"
)

// exportCmd prints a module's stored layout as canonical JSON.
var exportCmd = &cobra.Command{
	Use:   "export SLUG",
	Short: "Export a module's layout as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		module, err := app.ModuleService.GetBySlug(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		payload, version, err := app.ModuleService.ExportLayout(cmd.Context(), module.ID)
		if err != nil {
			return err
		}
		cmd.PrintErrf("Layout for %s at version %d\n", module.Slug, version)
		cmd.Println(string(payload))
		return nil
	},
}

// importCmd validates a layout file and stores it for a module.
var importCmd = &cobra.Command{
	Use:   "import SLUG FILE",
	Short: "Import a layout JSON file into a module",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		module, err := app.ModuleService.GetBySlug(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		payload, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read layout file: %w", err)
		}
		version, err := app.ModuleService.ImportLayout(cmd.Context(), module.ID, payload)
		if err != nil {
			return err
		}
		cmd.Printf("Imported layout for %s, now at version %d\n", module.Slug, version)
		return nil
	},
}

// validateCmd checks a layout file against the structural invariants
// without touching storage.
var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Validate a layout JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read layout file: %w", err)
		}
		tree, err := layout.DecodeTree(payload)
		if err != nil {
			return err
		}
		cmd.Printf("OK: %d block(s), %d top-level\n", tree.Len(), len(tree.Order))
		return nil
	},
}
