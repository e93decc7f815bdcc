package cmd

import (
	"time"

	"github.com/tareeqi/tareeqweb/internal/build"
	"github.com/tareeqi/tareeqweb/internal/config"
	"github.com/tareeqi/tareeqweb/internal/export"
	"github.com/tareeqi/tareeqweb/internal/logging"
	"github.com/tareeqi/tareeqweb/internal/relay"
	"github.com/tareeqi/tareeqweb/internal/server"
	"github.com/tareeqi/tareeqweb/internal/site"
)

func siteOptions(cfg *config.Config) site.Options {
	return site.Options{
		SiteName:     cfg.Site.Name,
		BasePath:     cfg.Site.BasePath,
		Year:         time.Now().Year(),
		SupportEmail: cfg.Site.SupportEmail,
		SupportPhone: cfg.Site.SupportPhone,
		DashboardURL: cfg.Site.DashboardURL,
	}
}

// buildOptions renders for a static host: forms post straight to the relay
// since nothing can answer a POST to the page.
func buildOptions(cfg *config.Config) build.Options {
	opts := siteOptions(cfg)
	opts.FormAction = cfg.Relay.Endpoint
	return build.Options{
		OutDir:  cfg.Build.OutDir,
		Site:    opts,
		SiteURL: cfg.Site.URL,
		Minify:  cfg.Build.Minify,
	}
}

func exportOptions(cfg *config.Config) export.Options {
	return export.Options{
		PublicDir:       cfg.Build.PublicDir,
		BasePath:        cfg.Site.BasePath,
		ImageExtensions: cfg.Build.ImageExtensions,
	}
}

func serverOptions(cfg *config.Config, static bool) server.Options {
	return server.Options{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Site:           siteOptions(cfg),
		PublicDir:      cfg.Build.PublicDir,
		HotReload:      cfg.Development.HotReload,
		Static:         static,
		StaticDir:      cfg.Build.OutDir,
		BasePath:       cfg.Site.BasePath,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
}

func newRelay(cfg *config.Config, logger logging.Logger) *relay.Client {
	return relay.NewClient(cfg.Relay.Endpoint, relay.WithLogger(logger))
}
