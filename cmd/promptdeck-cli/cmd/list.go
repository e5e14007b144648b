package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"promptdeck/internal/application/commands"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	Long: `List all teleprompter projects, newest first.

Examples:
  promptdeck-cli list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		listCmd := commands.NewListProjectsCommand(GetRepo())
		summaries, err := listCmd.Execute(ctx)
		if err != nil {
			return err
		}

		if len(summaries) == 0 {
			fmt.Println("No projects.")
			return nil
		}

		for _, s := range summaries {
			fmt.Printf("%s  %-30s  %3d segments  %s\n",
				s.ID, s.Name, s.SegmentCount, s.ModifiedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
