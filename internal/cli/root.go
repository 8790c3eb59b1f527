package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arowley/prepsprint/internal/dateinput"
	"github.com/arowley/prepsprint/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Applications service.ApplicationService
	Sprints      service.SprintService
	Plans        service.PlanService
	Progress     service.ProgressService
	Dates        dateinput.Resolver

	// IsInteractive reports whether stdin is a terminal; confirmation
	// prompts and the checklist UI are skipped when it is not.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "prepsprint" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "prepsprint",
		Short: "Interview preparation sprints for your job applications",
	}

	root.AddCommand(
		newAppCmd(app),
		newRoundCmd(app),
		newInterviewCmd(app),
		newPlanCmd(app),
		newTaskCmd(app),
		newProgressCmd(app),
		newExportCmd(app),
		newServeCmd(app),
	)

	return root
}

// resolveApplicationID accepts a company name (case-insensitive), a full
// UUID, or a UUID prefix.
func resolveApplicationID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("application ID is required")
	}

	apps, err := app.Applications.List(ctx)
	if err != nil {
		return "", err
	}

	for _, a := range apps {
		if strings.EqualFold(a.Company, input) {
			return a.ID, nil
		}
	}

	for _, a := range apps {
		if a.ID == input {
			return a.ID, nil
		}
	}

	var matches []string
	for _, a := range apps {
		if strings.HasPrefix(a.ID, input) {
			matches = append(matches, a.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("application not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("application ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
