package main

import (
	"github.com/spf13/cobra"
)

var modulesFlagSummary string

// modulesCmd lists modules when called without a subcommand.
var modulesCmd = &cobra.Command{
	Use:     "modules",
	Aliases: []string{"module", "mod"},
	Short:   "List and manage modules",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		modules, err := app.ModuleService.GetAll(cmd.Context())
		if err != nil {
			return err
		}
		if len(modules) == 0 {
			cmd.Println("No modules")
			return nil
		}
		for _, m := range modules {
			cmd.Printf("%s  %-24s  %s\n", m.ID, m.Slug, m.Title)
		}
		return nil
	},
}

var modulesCreateCmd = &cobra.Command{
	Use:   "create TITLE SLUG",
	Short: "Create a new module",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var summary *string
		if modulesFlagSummary != "" {
			summary = &modulesFlagSummary
		}
		module, err := app.ModuleService.Create(cmd.Context(), args[0], args[1], summary)
		if err != nil {
			return err
		}
		cmd.Printf("Created module %s (%s)\n", module.Slug, module.ID)
		return nil
	},
}

var modulesDeleteCmd = &cobra.Command{
	Use:   "delete SLUG",
	Short: "Delete a module and its layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		module, err := app.ModuleService.GetBySlug(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := app.ModuleService.Delete(cmd.Context(), module.ID); err != nil {
			return err
		}
		cmd.Printf("Deleted module %s\n", module.Slug)
		return nil
	},
}

func init() {
	modulesCreateCmd.Flags().StringVarP(&modulesFlagSummary, "summary", "s", "", "Short module summary")

	modulesCmd.AddCommand(modulesCreateCmd)
	modulesCmd.AddCommand(modulesDeleteCmd)
}
