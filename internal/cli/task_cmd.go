package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arowley/prepsprint/internal/cli/formatter"
	"github.com/arowley/prepsprint/internal/contract"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Check sprint tasks off (or back on)",
	}

	cmd.AddCommand(
		newTaskSetCmd(app, "done", "Mark a task completed", true),
		newTaskSetCmd(app, "undo", "Mark a task not completed", false),
	)

	return cmd
}

func newTaskSetCmd(app *App, use, short string, done bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " APPLICATION DAY BLOCK TASK",
		Short: short,
		Long:  short + ". DAY, BLOCK and TASK are the 1-based positions shown by \"plan today\".",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveApplicationID(ctx, app, args[0])
			if err != nil {
				return err
			}

			idx := make([]int, 3)
			for i, raw := range args[1:] {
				n, err := strconv.Atoi(raw)
				if err != nil {
					return fmt.Errorf("expected a number, got %q", raw)
				}
				idx[i] = n
			}

			req := contract.NewSetTaskRequest(id, idx[0], idx[1], idx[2])
			req.Done = done

			resp, err := app.Progress.SetTaskDone(ctx, req)
			if err != nil {
				return err
			}

			if !resp.Changed {
				fmt.Println("Already in that state; nothing changed.")
				return nil
			}
			if done {
				fmt.Printf("Done: %s\n", resp.Description)
				fmt.Printf("Streak %d · %d tasks done all time\n",
					resp.Progress.CurrentStreak, resp.Progress.TotalTasksCompleted)
				if resp.DayComplete {
					fmt.Printf("%s\n", formatter.StyleGreen.Render("Day complete!"))
				}
			} else {
				fmt.Printf("Unchecked: %s\n", resp.Description)
			}
			return nil
		},
	}
}
