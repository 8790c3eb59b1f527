package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arowley/prepsprint/internal/cli/formatter"
	"github.com/arowley/prepsprint/internal/contract"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what to study",
	}

	cmd.AddCommand(
		newPlanTodayCmd(app),
		newPlanDayCmd(app),
	)

	return cmd
}

func newPlanTodayCmd(app *App) *cobra.Command {
	var application string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's study plan across active sprints",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(app, application, "today", interactive)
		},
	}

	cmd.Flags().StringVar(&application, "app", "", "Limit to one application (company name or ID)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Check tasks off interactively")

	return cmd
}

func newPlanDayCmd(app *App) *cobra.Command {
	var application string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "day DATE",
		Short: "Show the study plan for a date (YYYY-MM-DD, today, tomorrow)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(app, application, args[0], interactive)
		},
	}

	cmd.Flags().StringVar(&application, "app", "", "Limit to one application (company name or ID)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Check tasks off interactively")

	return cmd
}

func runPlan(app *App, application, when string, interactive bool) error {
	ctx := context.Background()

	req := contract.NewPlanRequest()
	if application != "" {
		id, err := resolveApplicationID(ctx, app, application)
		if err != nil {
			return err
		}
		req.ApplicationID = id
	}

	date, err := app.Dates.Resolve(when, time.Now().UTC())
	if err != nil {
		return err
	}
	req.Date = &date

	resp, err := app.Plans.PlanForDate(ctx, req)
	if err != nil {
		return err
	}

	if interactive {
		if app.IsInteractive != nil && !app.IsInteractive() {
			return fmt.Errorf("interactive mode needs a terminal")
		}
		return runChecklist(app, resp)
	}

	fmt.Printf("%s\n", formatter.FormatPlanResponse(resp))
	return nil
}
