package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/tareeqi/tareeqweb/internal/form"
	"github.com/tareeqi/tareeqweb/internal/site"
	"github.com/tareeqi/tareeqweb/internal/version"
)

// Form posts are a handful of short fields.
const maxFormBytes = 64 << 10

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)

	if s.opts.Static {
		s.staticRoutes(mux)
		return mux
	}

	if s.opts.HotReload {
		mux.Handle("/ws", s.hub)
	}
	mux.HandleFunc(site.StylesheetPath, s.handleStylesheet)
	mux.HandleFunc("/", s.handlePage)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	mode := "live"
	if s.opts.Static {
		mode = "static"
	}
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"version":   version.GetBuildInfo().Short(),
		"mode":      mode,
		"clients":   s.hub.Clients(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(health); err != nil {
		s.logger.Warn(r.Context(), err, "Failed to encode health response")
	}
}

func (s *Server) handleStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(site.Stylesheet())
}

// handlePage renders known routes, serves public files and answers
// everything else with the site's 404 page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	route, ok := site.Lookup(r.URL.Path)
	if !ok {
		s.handlePublic(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		s.render(w, r, http.StatusOK, site.Page(route, s.site, nil))
	case http.MethodPost:
		if !route.HasForm() {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.handleForm(w, r, route)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleForm runs one submission of a page's form. The posted fields go
// through Edit so the state machine sees them exactly as typed input. A
// page with a pinned kind ignores a posted kind.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request, route site.Route) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	state := route.NewForm(s.sender,
		form.WithLogger(s.logger),
		form.WithSupportEmail(s.site.SupportEmail))

	for _, field := range form.Fields() {
		if field == form.FieldKind && route.LockKind {
			continue
		}
		if values, ok := r.PostForm[string(field)]; ok && len(values) > 0 {
			state.Edit(field, values[0])
		}
	}

	errs := state.Submit(r.Context())

	status := http.StatusOK
	switch {
	case !errs.Valid():
		status = http.StatusUnprocessableEntity
	case state.Status().Kind == form.StatusError:
		status = http.StatusBadGateway
	}
	s.render(w, r, status, site.Page(route, s.site, state))
}

func (s *Server) handlePublic(w http.ResponseWriter, r *http.Request) {
	if s.opts.PublicDir != "" && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
		if path, ok := publicFile(s.opts.PublicDir, r.URL.Path); ok {
			http.ServeFile(w, r, path)
			return
		}
	}
	s.render(w, r, http.StatusNotFound, site.NotFound(s.site))
}

// publicFile maps a request path to a regular file under dir.
func publicFile(dir, urlPath string) (string, bool) {
	clean := filepath.FromSlash(strings.TrimPrefix(filepath.ToSlash(filepath.Clean("/"+urlPath)), "/"))
	if clean == "" || clean == "." {
		return "", false
	}
	path := filepath.Join(dir, clean)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// render buffers the component so a render failure can still become a 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		s.logger.Error(r.Context(), err, "Failed to render page", "path", r.URL.Path)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		_, _ = w.Write(buf.Bytes())
	}
}

// staticRoutes serves the export directory under the base path. Missing
// files get the exported 404.html when there is one.
func (s *Server) staticRoutes(mux *http.ServeMux) {
	base := strings.TrimSuffix(s.opts.BasePath, "/")
	files := http.FileServer(http.Dir(s.opts.StaticDir))

	mux.Handle(base+"/", http.StripPrefix(base, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.exists(r.URL.Path) {
			s.staticNotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})))

	if base != "" {
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/" || r.URL.Path == base {
				http.Redirect(w, r, base+"/", http.StatusFound)
				return
			}
			s.staticNotFound(w, r)
		})
	}
}

func (s *Server) exists(urlPath string) bool {
	clean := filepath.FromSlash(filepath.ToSlash(filepath.Clean("/" + urlPath)))
	_, err := os.Stat(filepath.Join(s.opts.StaticDir, clean))
	return err == nil
}

func (s *Server) staticNotFound(w http.ResponseWriter, r *http.Request) {
	page, err := os.ReadFile(filepath.Join(s.opts.StaticDir, "404.html"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(page)
}
