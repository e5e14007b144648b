package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"promptdeck/internal/application/commands"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <project-id>",
	Short: "Export a project to portable JSON",
	Long: `Export a project to a portable JSON file with all referenced
assets embedded, suitable for moving between machines.

Examples:
  promptdeck-cli export 3f8a1c2e-...
  promptdeck-cli export 3f8a1c2e-... -o show.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		exportCmd := commands.NewExportProjectCommand(GetRepo(), GetAssets(), args[0], exportOut)
		result, err := exportCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a portable project export",
	Long: `Import a portable JSON export. Embedded assets are de-duplicated
into the content-addressed store and the project gets fresh IDs, so
importing the same file twice yields two independent projects.

Examples:
  promptdeck-cli import show.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		importCmd := commands.NewImportProjectCommand(GetRepo(), GetAssets(), args[0])
		result, err := importCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default <name>.promptdeck.json)")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
