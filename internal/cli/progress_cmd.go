package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arowley/prepsprint/internal/cli/formatter"
)

func newProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show streaks and per-sprint completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Progress.GetProgress(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatProgress(resp))
			return nil
		},
	}
}
