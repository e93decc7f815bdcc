package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tareeqi/tareeqweb/internal/server"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the preview server",
	Long: `Start the local preview server.

Live mode renders pages on every request, handles the contact and beta
forms against the relay and reloads the browser when public assets change.
Static mode serves the exported output directory under the base path.

Examples:
  tareeq serve                 # Live preview on localhost:3000
  tareeq serve --port 8080     # Another port
  tareeq serve --static        # Serve out/ as a static host would`,
	PreRunE: bindOnRun(serveKeys),
	RunE:    runServe,
}

var serveStatic bool

var serveKeys = map[string]string{
	"port":       "server.port",
	"host":       "server.host",
	"hot-reload": "development.hot_reload",
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 3000, "Port to serve on")
	serveCmd.Flags().String("host", "localhost", "Host to bind to")
	serveCmd.Flags().Bool("hot-reload", true, "Reload browsers when public assets change")
	serveCmd.Flags().BoolVar(&serveStatic, "static", false, "Serve the exported output directory")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(serverOptions(cfg, serveStatic), newRelay(cfg, logger), logger)
	return srv.Start(ctx)
}
