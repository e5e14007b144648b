package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"promptdeck/internal/application/commands"
)

var renameCmd = &cobra.Command{
	Use:   "rename <project-id> <name>",
	Short: "Rename a project",
	Long: `Rename a project.

Examples:
  promptdeck-cli rename 3f8a1c2e-... "Evening Show"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		renameCmd := commands.NewRenameProjectCommand(GetRepo(), args[0], args[1])
		result, err := renameCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var duplicateCmd = &cobra.Command{
	Use:   "duplicate <project-id> <name>",
	Short: "Duplicate a project",
	Long: `Duplicate a project under a new name with fresh IDs.

Examples:
  promptdeck-cli duplicate 3f8a1c2e-... "Morning Show (rehearsal)"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		dupCmd := commands.NewDuplicateProjectCommand(GetRepo(), args[0], args[1])
		result, err := dupCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(duplicateCmd)
}
