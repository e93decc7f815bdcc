// Package build renders the site routes to static files in the output
// directory. Post-processing of the output lives in package export.
package build

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/tareeqi/tareeqweb/internal/errors"
	"github.com/tareeqi/tareeqweb/internal/logging"
	"github.com/tareeqi/tareeqweb/internal/site"
)

// Options configures one static generation run.
type Options struct {
	OutDir string
	Site   site.Options

	// SiteURL is the public origin, e.g. https://tareeqi.github.io. When
	// set, sitemap.xml and robots.txt are written.
	SiteURL string

	Clean     bool
	Minify    bool
	BuildTime time.Time
}

// Generator writes every route as <route>/index.html plus the stylesheet
// and 404 page.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Generator{logger: logger.WithComponent("build")}
}

// Generate renders the site into opts.OutDir and returns the paths written.
func (g *Generator) Generate(ctx context.Context, opts Options) ([]string, error) {
	if opts.OutDir == "" {
		return nil, errors.NewConfigError(errors.ErrCodeInvalidPath, "output directory is required")
	}
	if opts.BuildTime.IsZero() {
		opts.BuildTime = time.Now()
	}

	perf := logging.StartOperation(g.logger, "generate")

	if opts.Clean {
		if err := os.RemoveAll(opts.OutDir); err != nil {
			return nil, errors.WrapIO(err, errors.ErrCodeInvalidPath, "failed to clean output directory").WithPath(opts.OutDir)
		}
	}
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeInvalidPath, "failed to create output directory").WithPath(opts.OutDir)
	}

	generated := make([]string, 0, len(site.Routes())+4)

	for _, route := range site.Routes() {
		if err := ctx.Err(); err != nil {
			return generated, err
		}
		path, err := g.writeComponent(ctx, opts, route.OutputFile(), site.Page(route, opts.Site, nil))
		if err != nil {
			return generated, errors.NewBuildError(errors.ErrCodeRenderFailed, "failed to generate page "+route.Path, err)
		}
		g.logger.Debug(ctx, "Generated page", "route", route.Path, "file", path)
		generated = append(generated, path)
	}

	notFound, err := g.writeComponent(ctx, opts, "404.html", site.NotFound(opts.Site))
	if err != nil {
		return generated, errors.NewBuildError(errors.ErrCodeRenderFailed, "failed to generate 404 page", err)
	}
	generated = append(generated, notFound)

	css := site.Stylesheet()
	if opts.Minify {
		css = []byte(minify(string(css)))
	}
	cssPath, err := writeFile(opts.OutDir, strings.TrimPrefix(site.StylesheetPath, "/"), css)
	if err != nil {
		return generated, err
	}
	generated = append(generated, cssPath)

	if opts.SiteURL != "" {
		sitemap, err := writeFile(opts.OutDir, "sitemap.xml", sitemapXML(opts))
		if err != nil {
			return generated, err
		}
		robots, err := writeFile(opts.OutDir, "robots.txt", robotsTxt(opts))
		if err != nil {
			return generated, err
		}
		generated = append(generated, sitemap, robots)
	}

	perf.End(ctx, "files", len(generated), "out_dir", opts.OutDir)
	return generated, nil
}

func (g *Generator) writeComponent(ctx context.Context, opts Options, rel string, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	content := buf.Bytes()
	if opts.Minify {
		content = []byte(minify(buf.String()))
	}
	return writeFile(opts.OutDir, rel, content)
}

func writeFile(outDir, rel string, content []byte) (string, error) {
	path := filepath.Join(outDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.WrapIO(err, errors.ErrCodeInvalidPath, "failed to create directory").WithPath(filepath.Dir(path))
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", errors.WrapIO(err, errors.ErrCodeInvalidPath, "failed to write file").WithPath(path)
	}
	return path, nil
}

// minify drops indentation and blank lines.
func minify(s string) string {
	lines := strings.Split(s, "\n")
	var out strings.Builder
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			out.WriteString(trimmed)
			out.WriteString("\n")
		}
	}
	return strings.TrimSuffix(out.String(), "\n")
}

func pageURL(opts Options, routePath string) string {
	return strings.TrimSuffix(opts.SiteURL, "/") + opts.Site.BasePath + routePath
}

func sitemapXML(opts Options) []byte {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	lastmod := opts.BuildTime.UTC().Format("2006-01-02")
	for _, route := range site.Routes() {
		priority := "0.8"
		if route.Path == "/" {
			priority = "1.0"
		}
		b.WriteString("  <url>\n    <loc>")
		_ = xml.EscapeText(&b, []byte(pageURL(opts, route.Path)))
		b.WriteString("</loc>\n")
		fmt.Fprintf(&b, "    <lastmod>%s</lastmod>\n", lastmod)
		b.WriteString("    <changefreq>weekly</changefreq>\n")
		fmt.Fprintf(&b, "    <priority>%s</priority>\n", priority)
		b.WriteString("  </url>\n")
	}
	b.WriteString("</urlset>\n")
	return b.Bytes()
}

func robotsTxt(opts Options) []byte {
	return []byte(fmt.Sprintf("User-agent: *\nAllow: /\nSitemap: %s\n", pageURL(opts, "/sitemap.xml")))
}
