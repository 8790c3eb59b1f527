package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/arowley/prepsprint/internal/cli/formatter"
	"github.com/arowley/prepsprint/internal/contract"
	"github.com/arowley/prepsprint/internal/domain"
)

func newInterviewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Schedule interviews and build prep sprints",
	}

	cmd.AddCommand(newInterviewScheduleCmd(app))

	return cmd
}

func newInterviewScheduleCmd(app *App) *cobra.Command {
	var when, roleType string
	var yes bool

	cmd := &cobra.Command{
		Use:   "schedule APPLICATION",
		Short: "Set the interview date and generate a day-by-day prep sprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveApplicationID(ctx, app, args[0])
			if err != nil {
				return err
			}

			date, err := app.Dates.Resolve(when, time.Now().UTC())
			if err != nil {
				return err
			}

			a, err := app.Applications.GetByID(ctx, id)
			if err != nil {
				return err
			}
			role := domain.RoleType(roleType)
			if roleType == "" {
				role = a.RoleType
			}
			prior := *a

			if err := app.Applications.ScheduleInterview(ctx, id, date, role); err != nil {
				return err
			}

			resp, err := regenerateWithConfirm(ctx, app, id, yes)
			if err != nil {
				// A declined replace leaves no half-applied schedule
				// behind: put the application back the way it was.
				if restoreErr := app.Applications.Update(ctx, &prior); restoreErr != nil {
					return errors.Join(err, restoreErr)
				}
				return err
			}

			verb := "Created"
			if resp.Outcome == contract.OutcomeReplaced {
				verb = "Rebuilt"
			}
			fmt.Printf("%s a %d-day sprint for the interview on %s.\n",
				verb, resp.TotalDays, date.Format("2006-01-02"))
			for _, w := range resp.Warnings {
				fmt.Printf("%s\n", formatter.Dim("Warning: "+w))
			}
			fmt.Println("See today's plan with: prepsprint plan today")
			return nil
		},
	}

	cmd.Flags().StringVar(&when, "date", "", "Interview date (YYYY-MM-DD, today, tomorrow)")
	cmd.Flags().StringVar(&roleType, "type", "", "Role type for prep templates; defaults to the application's")
	cmd.Flags().BoolVar(&yes, "yes", false, "Replace an in-progress sprint without asking")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

// regenerateWithConfirm runs sprint regeneration, prompting before an active
// sprint is replaced. With --yes, or without a terminal, the prompt is
// skipped: --yes proceeds, no terminal aborts.
func regenerateWithConfirm(ctx context.Context, app *App, applicationID string, yes bool) (*contract.RegenerateResponse, error) {
	req := contract.NewRegenerateRequest(applicationID)
	req.Confirmed = yes

	resp, err := app.Sprints.Regenerate(ctx, req)
	if err == nil {
		return resp, nil
	}

	var rerr *contract.ReconcileError
	if !errors.As(err, &rerr) || rerr.Code != contract.ReconcileErrConfirmationRequired {
		return nil, err
	}

	if app.IsInteractive == nil || !app.IsInteractive() {
		return nil, fmt.Errorf("%s (re-run with --yes to replace it)", rerr.Message)
	}

	title := "You already have a sprint in progress."
	if rerr.CompletedTasks > 0 {
		title = fmt.Sprintf("Your current sprint has %d completed tasks.", rerr.CompletedTasks)
	}

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description("Regenerating builds a fresh sprint and that progress is discarded.").
				Affirmative("Replace it").
				Negative("Keep it").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}
	if !confirmed {
		return nil, fmt.Errorf("kept the existing sprint")
	}

	req.Confirmed = true
	return app.Sprints.Regenerate(ctx, req)
}
