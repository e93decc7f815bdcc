// Package server is the local preview server.
//
// In live mode it renders every page per request, runs the contact and beta
// forms through the form state machine against the relay, and pushes a
// reload to connected browsers when the public directory changes. In static
// mode it serves an exported directory under the site base path, the way a
// static host would.
package server

import (
	"context"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/tareeqi/tareeqweb/internal/errors"
	"github.com/tareeqi/tareeqweb/internal/form"
	"github.com/tareeqi/tareeqweb/internal/logging"
	"github.com/tareeqi/tareeqweb/internal/middleware"
	"github.com/tareeqi/tareeqweb/internal/site"
	"github.com/tareeqi/tareeqweb/internal/watcher"
	"github.com/tareeqi/tareeqweb/internal/websocket"
)

const (
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Options configure a preview server.
type Options struct {
	Host string
	Port int

	// Site is used in live mode. Its BasePath is ignored: live pages are
	// served from the root.
	Site      site.Options
	PublicDir string
	HotReload bool

	// Static serves StaticDir under BasePath instead of rendering pages.
	Static    bool
	StaticDir string
	BasePath  string

	AllowedOrigins []string
}

// Server serves the site for local preview.
type Server struct {
	opts    Options
	site    site.Options
	sender  form.Sender
	logger  logging.Logger
	hub     *websocket.Hub
	handler http.Handler
}

// New creates a server. sender receives live-mode form submissions.
func New(opts Options, sender form.Sender, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.WithComponent("server")

	siteOpts := opts.Site
	siteOpts.BasePath = ""
	siteOpts.FormAction = ""
	siteOpts.LiveReload = opts.HotReload && !opts.Static

	s := &Server{
		opts:   opts,
		site:   siteOpts,
		sender: sender,
		logger: logger,
		hub:    websocket.NewHub(opts.AllowedOrigins, logger),
	}
	s.handler = middleware.NewChain(
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Recovery(logger),
	).Apply(s.routes())
	return s
}

// Handler returns the full handler including middleware.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.opts.Host, strconv.Itoa(s.opts.Port))
}

// Hub returns the live reload hub.
func (s *Server) Hub() *websocket.Hub {
	return s.hub
}

// Start listens on Addr and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return errors.NewNetworkError(errors.ErrCodeServerListen, "failed to listen", err).
			WithContext("addr", s.Addr())
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully.
// The listener is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.opts.HotReload && !s.opts.Static {
		fw, err := s.startWatcher(ctx)
		if err != nil {
			s.logger.Warn(ctx, err, "Live reload disabled")
		} else {
			defer fw.Stop()
		}
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	url := "http://" + ln.Addr().String()
	if s.opts.Static {
		url += s.opts.BasePath + "/"
	}
	s.logger.Info(ctx, "Preview server listening", "url", url, "static", s.opts.Static)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		s.hub.Close()
		if err != nil && err != http.ErrServerClosed {
			return errors.NewNetworkError(errors.ErrCodeServerListen, "server error", err)
		}
		return nil

	case <-ctx.Done():
		s.logger.Info(context.Background(), "Shutting down preview server")

		// Shutdown does not track hijacked WebSocket connections.
		s.hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		<-serveErr
		return err
	}
}

func (s *Server) startWatcher(ctx context.Context) (*watcher.FileWatcher, error) {
	if _, err := os.Stat(s.opts.PublicDir); err != nil {
		return nil, errors.WrapIO(err, errors.ErrCodeFileNotFound, "public directory not found").
			WithPath(s.opts.PublicDir)
	}

	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce, s.logger)
	if err != nil {
		return nil, err
	}
	fw.AddFilter(watcher.NoHiddenFilter)
	fw.AddFilter(watcher.NoTempFilter)
	fw.AddHandler(s.reloadOnChange)

	if err := fw.AddRecursive(s.opts.PublicDir); err != nil {
		fw.Stop()
		return nil, err
	}
	if err := fw.Start(ctx); err != nil {
		fw.Stop()
		return nil, err
	}
	return fw, nil
}

func (s *Server) reloadOnChange(ctx context.Context, events []watcher.ChangeEvent) error {
	s.logger.Info(ctx, "Public files changed, reloading browsers",
		"files", len(events), "clients", s.hub.Clients())
	s.hub.Reload()
	return nil
}
