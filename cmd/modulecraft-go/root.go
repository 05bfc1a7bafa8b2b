// Command modulecraft-go is the maintenance CLI for the module content
// store: schema migration, module management, and layout import/export.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LagoonLabs/modulecraft-go/internal/application/container"
	"github.com/LagoonLabs/modulecraft-go/internal/application/startup"
)

// app is the shared dependency container, wired by the root command before
// any subcommand that needs storage runs.
var app *container.Container

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "modulecraft-go",
	Short: "Maintenance CLI for the module content store",
	Long: `Modulecraft manages resort module pages and their block layouts.

Examples:
  modulecraft-go migrate
  modulecraft-go modules
  modulecraft-go modules create "Spa & Wellness" spa-wellness
  modulecraft-go export welcome > welcome.json
  modulecraft-go import welcome welcome.json
  modulecraft-go validate welcome.json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// validate works on local files and needs no storage.
		if cmd.Name() == "validate" || cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		app, err = startup.Bootstrap()
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			startup.Shutdown(app)
		}
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(validateCmd)
}

// migrateCmd ensures the schema and seed content exist. Bootstrap already
// performs both, so the command body only reports.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema and seed content",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		modules, err := app.ModuleService.GetAll(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Printf("Schema ready, %d module(s) present\n", len(modules))
		return nil
	},
}
