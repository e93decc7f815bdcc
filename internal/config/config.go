// Package config provides configuration management for the tareeq CLI using
// Viper for loading from files, environment variables, and command-line
// flags.
//
// The configuration covers the site identity (name, base path, support
// address), the email relay endpoint, the static export layout, the preview
// server and logging. Environment overrides use the TAREEQ_ prefix, e.g.
// TAREEQ_SITE_BASE_PATH or TAREEQ_SERVER_PORT.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/tareeqi/tareeqweb/internal/relay"
	"github.com/tareeqi/tareeqweb/internal/validation"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = ".tareeq.yml"

type Config struct {
	Site        SiteConfig        `yaml:"site" mapstructure:"site"`
	Relay       RelayConfig       `yaml:"relay" mapstructure:"relay"`
	Build       BuildConfig       `yaml:"build" mapstructure:"build"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Development DevelopmentConfig `yaml:"development" mapstructure:"development"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

type SiteConfig struct {
	Name         string `yaml:"name" mapstructure:"name"`
	BasePath     string `yaml:"base_path" mapstructure:"base_path"`
	URL          string `yaml:"url" mapstructure:"url"`
	SupportEmail string `yaml:"support_email" mapstructure:"support_email"`
	SupportPhone string `yaml:"support_phone" mapstructure:"support_phone"`
	DashboardURL string `yaml:"dashboard_url" mapstructure:"dashboard_url"`
}

type RelayConfig struct {
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
}

type BuildConfig struct {
	PublicDir       string   `yaml:"public_dir" mapstructure:"public_dir"`
	OutDir          string   `yaml:"out_dir" mapstructure:"out_dir"`
	Minify          bool     `yaml:"minify" mapstructure:"minify"`
	ImageExtensions []string `yaml:"image_extensions" mapstructure:"image_extensions"`
}

type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	Host           string   `yaml:"host" mapstructure:"host"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

type DevelopmentConfig struct {
	HotReload bool `yaml:"hot_reload" mapstructure:"hot_reload"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Default returns the configuration used when no file or override is
// present.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			Name:         "Tareeqi",
			BasePath:     "/TareeqWeb",
			SupportEmail: "tareeqiapp@gmail.com",
			SupportPhone: "+966 552626165",
			DashboardURL: "https://dashboard.tareeqi.com",
		},
		Relay: RelayConfig{
			Endpoint: relay.DefaultEndpoint,
		},
		Build: BuildConfig{
			PublicDir:       "public",
			OutDir:          "out",
			ImageExtensions: []string{".png", ".jpg", ".jpeg", ".gif"},
		},
		Server: ServerConfig{
			Port: 3000,
			Host: "localhost",
		},
		Development: DevelopmentConfig{
			HotReload: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from the global viper instance on top of
// Default.
func Load() (*Config, error) {
	config := Default()
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	// Empty strings and slices from a sparse file fall back to defaults
	applyDefaults(config)

	// Bools are only overridden when set explicitly
	if viper.IsSet("development.hot_reload") {
		config.Development.HotReload = viper.GetBool("development.hot_reload")
	}
	if viper.IsSet("build.minify") {
		config.Build.Minify = viper.GetBool("build.minify")
	}

	// A flag-bound base path can legitimately be "" (serve from root)
	if viper.IsSet("site.base_path") {
		config.Site.BasePath = viper.GetString("site.base_path")
	}
	config.Site.BasePath = normalizeBasePath(config.Site.BasePath)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func applyDefaults(config *Config) {
	def := Default()

	if config.Site.Name == "" {
		config.Site.Name = def.Site.Name
	}
	if config.Site.SupportEmail == "" {
		config.Site.SupportEmail = def.Site.SupportEmail
	}
	if config.Relay.Endpoint == "" {
		config.Relay.Endpoint = def.Relay.Endpoint
	}
	if config.Build.PublicDir == "" {
		config.Build.PublicDir = def.Build.PublicDir
	}
	if config.Build.OutDir == "" {
		config.Build.OutDir = def.Build.OutDir
	}
	if len(config.Build.ImageExtensions) == 0 {
		config.Build.ImageExtensions = def.Build.ImageExtensions
	}
	if config.Server.Host == "" {
		config.Server.Host = def.Server.Host
	}
	if config.Log.Level == "" {
		config.Log.Level = def.Log.Level
	}
	if config.Log.Format == "" {
		config.Log.Format = def.Log.Format
	}
}

func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(p, "/")
}

// validateConfig validates configuration values for correctness
func validateConfig(config *Config) error {
	if err := validateSiteConfig(&config.Site); err != nil {
		return fmt.Errorf("site config: %w", err)
	}

	if err := validation.ValidateURL(config.Relay.Endpoint); err != nil {
		return fmt.Errorf("relay config: endpoint: %w", err)
	}

	if err := validateBuildConfig(&config.Build); err != nil {
		return fmt.Errorf("build config: %w", err)
	}

	if err := validateServerConfig(&config.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("log config: format %q is not text or json", config.Log.Format)
	}

	return nil
}

func validateSiteConfig(config *SiteConfig) error {
	if err := validation.ValidateBasePath(config.BasePath); err != nil {
		return err
	}
	if config.URL != "" {
		if err := validation.ValidateURL(config.URL); err != nil {
			return fmt.Errorf("url: %w", err)
		}
	}
	if config.DashboardURL != "" {
		if err := validation.ValidateURL(config.DashboardURL); err != nil {
			return fmt.Errorf("dashboard_url: %w", err)
		}
	}
	if !strings.Contains(config.SupportEmail, "@") {
		return fmt.Errorf("support_email %q is not an email address", config.SupportEmail)
	}
	return nil
}

func validateBuildConfig(config *BuildConfig) error {
	if err := validation.ValidateDir(config.PublicDir); err != nil {
		return fmt.Errorf("public_dir: %w", err)
	}
	if err := validation.ValidateDir(config.OutDir); err != nil {
		return fmt.Errorf("out_dir: %w", err)
	}
	for _, ext := range config.ImageExtensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("image extension %q must look like .png", ext)
		}
	}
	return nil
}

// validateServerConfig validates server configuration values
func validateServerConfig(config *ServerConfig) error {
	// Allow 0 for system-assigned ports in testing
	if config.Port < 0 || config.Port > 65535 {
		return fmt.Errorf("port %d is not in valid range 0-65535", config.Port)
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\", " "}
	for _, char := range dangerousChars {
		if strings.Contains(config.Host, char) {
			return fmt.Errorf("host contains dangerous character: %q", char)
		}
	}

	for _, origin := range config.AllowedOrigins {
		if err := validation.ValidateURL(origin); err != nil {
			return fmt.Errorf("allowed origin %q: %w", origin, err)
		}
	}

	return nil
}
