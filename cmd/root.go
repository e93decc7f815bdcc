// Package cmd provides the command-line interface for the Tareeqi website.
//
// Configuration System:
//
//	Configuration is merged from several sources, highest priority first:
//	1. Command-line flags (--config, --port, --out, ...)
//	2. TAREEQ_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (TAREEQ_SERVER_PORT, etc.)
//	4. The .tareeq.yml file in the working directory
//
// Environment Variables:
//
//	TAREEQ_CONFIG_FILE: Path to custom configuration file
//	TAREEQ_SITE_BASE_PATH: Hosting path prefix, e.g. /TareeqWeb
//	TAREEQ_RELAY_ENDPOINT: Email relay the forms post to
//	TAREEQ_SERVER_PORT: Override preview server port
//	And more following the TAREEQ_<SECTION>_<OPTION> pattern
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tareeqi/tareeqweb/internal/config"
	"github.com/tareeqi/tareeqweb/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tareeq",
	Short: "Build, export and preview the Tareeqi website",
	Long: `tareeq builds the Tareeqi marketing site: five static pages with a
contact form and a beta registration form that post to an email relay.

Quick Start:
  tareeq init           Write a default .tareeq.yml
  tareeq serve          Live preview with reload on asset changes
  tareeq build          Generate and export the site into out/
  tareeq serve --static Preview the export under the base path
  tareeq submit ...     Send one form submission from the terminal`,
	SilenceUsage:      true,
	PersistentPreRunE: bindOnRun(map[string]string{"log-level": "log.level"}),
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .tareeq.yml, can also use TAREEQ_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
}

// initConfig points viper at the config file and the TAREEQ_ environment.
// A missing file is not an error; defaults apply.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("TAREEQ_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(strings.TrimSuffix(config.DefaultFileName, ".yml"))
	}

	viper.SetEnvPrefix("TAREEQ")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig loads the merged configuration and a logger configured by it.
func loadConfig(cmd *cobra.Command) (*config.Config, logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	return cfg, logger, nil
}
