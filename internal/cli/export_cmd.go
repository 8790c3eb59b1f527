package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arowley/prepsprint/internal/export"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export sprint schedules",
	}

	cmd.AddCommand(newExportPDFCmd(app))

	return cmd
}

func newExportPDFCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "pdf APPLICATION",
		Short: "Write the active sprint's schedule as a printable PDF",
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
			sp, err := app.Sprints.ActiveForApplication(ctx, id)
			if err != nil {
				return err
			}

			if out == "" {
				slug := strings.ToLower(strings.ReplaceAll(a.Company, " ", "_"))
				out = fmt.Sprintf("sprint_%s.pdf", slug)
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := export.WriteSchedulePDF(f, export.SprintPDF{
				Company:  a.Company,
				Position: a.Role,
				Sprint:   sp,
			}); err != nil {
				return err
			}

			abs, _ := filepath.Abs(out)
			fmt.Printf("Wrote %s\n", abs)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output path (default sprint_<company>.pdf)")

	return cmd
}
