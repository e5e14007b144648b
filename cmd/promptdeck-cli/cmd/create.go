package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"promptdeck/internal/application/commands"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new project",
	Long: `Create a new empty teleprompter project.

Examples:
  promptdeck-cli create "Morning Show"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		createCmd := commands.NewCreateProjectCommand(GetRepo(), args[0])
		result, err := createCmd.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}
