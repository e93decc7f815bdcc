package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tareeqi/tareeqweb/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Show the version, git commit, build time and platform of this binary.

Examples:
  tareeq version                 # Full details
  tareeq version --short         # One line
  tareeq version --format json   # Machine readable`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

var (
	versionFormat string
	versionShort  bool
)

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVarP(&versionFormat, "format", "o", "text", "Output format (text, json)")
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the short version")
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.GetBuildInfo()
	out := cmd.OutOrStdout()

	if versionShort {
		fmt.Fprintln(out, info.Short())
		return nil
	}

	switch versionFormat {
	case "text":
		fmt.Fprint(out, info.String())
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	default:
		return fmt.Errorf("unsupported format %q (text, json)", versionFormat)
	}
	return nil
}
