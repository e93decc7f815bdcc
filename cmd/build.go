package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tareeqi/tareeqweb/internal/build"
	"github.com/tareeqi/tareeqweb/internal/export"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"b"},
	Short:   "Generate the site and export it for static hosting",
	Long: `Render every page into the output directory, then run the export
passes: copy public assets, write .nojekyll, lower-case image names and
rewrite links relative to each file.

Examples:
  tareeq build                 # Build into out/
  tareeq build --clean         # Remove out/ first
  tareeq build --skip-export   # Generate only, leave links root-relative`,
	PreRunE: bindOnRun(buildKeys),
	RunE:    runBuild,
}

var (
	buildClean      bool
	buildSkipExport bool
)

var buildKeys = map[string]string{
	"out":    "build.out_dir",
	"minify": "build.minify",
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringP("out", "o", "out", "Output directory")
	buildCmd.Flags().Bool("minify", false, "Strip indentation and blank lines from the stylesheet")
	buildCmd.Flags().BoolVar(&buildClean, "clean", false, "Remove the output directory before building")
	buildCmd.Flags().BoolVar(&buildSkipExport, "skip-export", false, "Skip the export passes")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := buildOptions(cfg)
	opts.Clean = buildClean

	files, err := build.NewGenerator(logger).Generate(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d files in %s\n", len(files), opts.OutDir)

	if buildSkipExport {
		return nil
	}
	pipeline := export.Default(exportOptions(cfg), logger)
	if err := pipeline.Run(cmd.Context(), opts.OutDir); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s (%d passes)\n", opts.OutDir, len(pipeline.Passes()))
	return nil
}
