package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/arowley/prepsprint/internal/httpapi"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = ":8080"
				if port := os.Getenv("PORT"); port != "" {
					addr = ":" + port
				}
			}

			h := httpapi.New(app.Applications, app.Sprints, app.Plans, app.Progress)

			r := chi.NewRouter()
			r.Use(middleware.RequestID)
			r.Use(middleware.RealIP)
			r.Use(middleware.Logger)
			r.Use(middleware.Recoverer)
			h.Routes(r)

			srv := &http.Server{
				Addr:              addr,
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}

			slog.Info("listening", "addr", addr)
			fmt.Printf("Serving API on %s\n", addr)
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default :8080, or :$PORT)")

	return cmd
}
