package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"promptdeck/internal/application/commands"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project",
	Long: `Delete a project from storage.

Warning: This operation cannot be undone. Assets no surviving project
references are swept afterwards.

Examples:
  promptdeck-cli delete 3f8a1c2e-...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		deleteCmd := commands.NewDeleteProjectCommand(GetRepo(), GetAssets(), args[0])
		result, err := deleteCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		if result.AssetsSwept > 0 {
			fmt.Printf("Swept %d orphaned asset(s)\n", result.AssetsSwept)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
