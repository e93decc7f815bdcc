package export

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	"github.com/tareeqi/tareeqweb/internal/errors"
	"github.com/tareeqi/tareeqweb/internal/logging"
)

// rewritten lists the attributes holding site links.
var rewritten = map[string]bool{
	"src":    true,
	"srcset": true,
	"href":   true,
}

// RewritePaths turns root-relative links in HTML files into paths relative
// to each file, so the export works from any directory.
type RewritePaths struct {
	basePath string
	logger   logging.Logger
}

// NewRewritePaths creates the rewrite-paths pass. basePath is "" or
// "/Name"; links under it lose the prefix.
func NewRewritePaths(basePath string, logger logging.Logger) *RewritePaths {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &RewritePaths{basePath: strings.TrimSuffix(basePath, "/"), logger: logger}
}

func (p *RewritePaths) Name() string { return "rewrite-paths" }

// Run rewrites every .html file under outDir. A file that fails is
// recorded and the rest are still processed.
func (p *RewritePaths) Run(ctx context.Context, outDir string) error {
	collector := errors.NewErrorCollector()
	changed := 0

	err := filepath.WalkDir(outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			collector.Add(p.Name(), path, err)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".html") {
			return nil
		}

		ok, err := p.rewriteFile(outDir, path)
		if err != nil {
			collector.Add(p.Name(), path, err)
			return nil
		}
		if ok {
			changed++
		}
		return nil
	})
	if err != nil {
		return err
	}

	p.logger.Debug(ctx, "Rewrote links", "files", changed)
	return collector.Err()
}

func (p *RewritePaths) rewriteFile(outDir, path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	rel, err := filepath.Rel(outDir, filepath.Dir(path))
	if err != nil {
		return false, err
	}

	out, err := p.Rewrite(content, relativePrefix(rel))
	if err != nil {
		return false, err
	}
	if bytes.Equal(out, content) {
		return false, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(path, out, info.Mode().Perm())
}

// relativePrefix returns the "../" chain from a directory back to the
// export root.
func relativePrefix(relDir string) string {
	relDir = filepath.ToSlash(relDir)
	if relDir == "." || relDir == "" {
		return ""
	}
	return strings.Repeat("../", strings.Count(relDir, "/")+1)
}

// Rewrite rewrites one HTML document for a file whose directory is prefix
// ("../" per level) away from the root. Tokens that need no change are
// copied byte for byte.
func (p *RewritePaths) Rewrite(content []byte, prefix string) ([]byte, error) {
	z := html.NewTokenizer(bytes.NewReader(content))
	var out bytes.Buffer
	out.Grow(len(content))

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return out.Bytes(), nil
			}
			return nil, z.Err()

		case html.StartTagToken, html.SelfClosingTagToken:
			raw := append([]byte(nil), z.Raw()...)
			tok := z.Token()
			if p.rewriteAttrs(&tok, prefix) {
				out.WriteString(tok.String())
			} else {
				out.Write(raw)
			}

		case html.TextToken:
			out.WriteString(p.rewriteChunkRefs(string(z.Raw()), prefix))

		default:
			out.Write(z.Raw())
		}
	}
}

func (p *RewritePaths) rewriteAttrs(tok *html.Token, prefix string) bool {
	changed := false
	for i, a := range tok.Attr {
		if a.Namespace != "" || !rewritten[a.Key] {
			continue
		}
		var v string
		if a.Key == "srcset" {
			v = p.rewriteSrcset(a.Val, prefix)
		} else {
			v = p.rewriteURL(a.Val, prefix)
		}
		if v != a.Val {
			tok.Attr[i].Val = v
			changed = true
		}
	}
	return changed
}

// rewriteURL makes a root-relative link relative. Anything else, including
// protocol-relative //host links, is returned unchanged.
func (p *RewritePaths) rewriteURL(v, prefix string) string {
	if !strings.HasPrefix(v, "/") || strings.HasPrefix(v, "//") {
		return v
	}

	rest := v[1:]
	if p.basePath != "" {
		switch {
		case v == p.basePath:
			rest = ""
		case strings.HasPrefix(v, p.basePath+"/"):
			rest = v[len(p.basePath)+1:]
		case strings.HasPrefix(v, p.basePath+"?"), strings.HasPrefix(v, p.basePath+"#"):
			rest = v[len(p.basePath):]
		}
	}

	if prefix == "" && (rest == "" || rest[0] == '?' || rest[0] == '#') {
		return "./" + rest
	}
	return prefix + rest
}

func (p *RewritePaths) rewriteSrcset(v, prefix string) string {
	candidates := strings.Split(v, ",")
	for i, c := range candidates {
		trimmed := strings.TrimSpace(c)
		if trimmed == "" {
			continue
		}
		url, descriptor, _ := strings.Cut(trimmed, " ")
		rewrittenURL := p.rewriteURL(url, prefix)
		if rewrittenURL == url {
			continue
		}
		lead := c[:len(c)-len(strings.TrimLeft(c, " \t\n"))]
		if descriptor != "" {
			candidates[i] = lead + rewrittenURL + " " + descriptor
		} else {
			candidates[i] = lead + rewrittenURL
		}
	}
	return strings.Join(candidates, ",")
}

// rewriteChunkRefs handles quoted framework chunk references in any text:
// inline scripts, styles and noscript fallbacks alike.
func (p *RewritePaths) rewriteChunkRefs(s, prefix string) string {
	if p.basePath != "" {
		s = strings.ReplaceAll(s, `"`+p.basePath+`/_next/`, `"`+prefix+`_next/`)
	}
	return strings.ReplaceAll(s, `"/_next/`, `"`+prefix+`_next/`)
}
