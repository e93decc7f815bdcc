package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tareeqi/tareeqweb/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Run the export passes over an existing output directory",
	Long: `Run copy-public, nojekyll, image-case and rewrite-paths over the output
directory in that order. Every pass is idempotent, so exporting twice leaves
the directory unchanged.`,
	PreRunE: bindOnRun(exportKeys),
	RunE:    runExport,
}

var exportKeys = map[string]string{
	"out": "build.out_dir",
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("out", "o", "out", "Output directory")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pipeline := export.Default(exportOptions(cfg), logger)
	if err := pipeline.Run(cmd.Context(), cfg.Build.OutDir); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s: %s\n", cfg.Build.OutDir, strings.Join(pipeline.Passes(), ", "))
	return nil
}
