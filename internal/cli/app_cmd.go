package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arowley/prepsprint/internal/cli/formatter"
	"github.com/arowley/prepsprint/internal/domain"
)

func newAppCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "Manage job applications",
	}

	cmd.AddCommand(
		newAppAddCmd(app),
		newAppListCmd(app),
		newAppInspectCmd(app),
		newAppSetStatusCmd(app),
		newAppRemoveCmd(app),
	)

	return cmd
}

func newAppAddCmd(app *App) *cobra.Command {
	var company, role, roleType, notes string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Track a new job application",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := &domain.Application{
				Company:  company,
				Role:     role,
				RoleType: domain.RoleType(roleType),
				Notes:    notes,
			}
			if err := app.Applications.Create(context.Background(), a); err != nil {
				return err
			}
			fmt.Printf("Tracking %s at %s (%s)\n", a.Role, a.Company, shortID(a.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&company, "company", "", "Company name")
	cmd.Flags().StringVar(&role, "role", "", "Position title, e.g. \"Backend Engineer\"")
	cmd.Flags().StringVar(&roleType, "type", "", "Role type for prep templates (backend|frontend|fullstack|mobile|devops|data_engineer|data_scientist|ml_engineer|sre|qa)")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func newAppListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			apps, err := app.Applications.List(ctx)
			if err != nil {
				return err
			}
			if len(apps) == 0 {
				fmt.Println("No applications yet. Add one with: prepsprint app add")
				return nil
			}

			sprints, err := app.Sprints.ListActive(ctx)
			if err != nil {
				return err
			}
			activeBy := make(map[string]bool, len(sprints))
			for _, sp := range sprints {
				activeBy[sp.ApplicationID] = true
			}

			fmt.Printf("%s\n", formatter.FormatApplicationList(apps, activeBy))
			return nil
		},
	}
}

func newAppInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect ID",
		Short: "Show application details and interview rounds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveApplicationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			a, err := app.Applications.GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatApplicationInspect(a))
			return nil
		},
	}
}

func newAppSetStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status ID STATUS",
		Short: "Move an application through the pipeline (applied|shortlisted|interview|offer|rejected)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveApplicationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			status := domain.ApplicationStatus(args[1])
			if err := app.Applications.SetStatus(ctx, id, status); err != nil {
				return err
			}
			fmt.Printf("Status set to %s\n", status)
			if status == domain.StatusRejected {
				fmt.Println("Active sprints for this application were expired.")
			}
			return nil
		},
	}
}

func newAppRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an application and everything tied to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveApplicationID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Applications.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Removed application %s\n", shortID(id))
			return nil
		},
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
