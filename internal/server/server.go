// Package server exposes the SOCQL front end over HTTP: validation,
// tokenization, cursor-context analysis, completion, and schema
// inspection/replacement, plus optional hot reload of the schema file.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/soclabs/socql/pkg/schema"
	"github.com/soclabs/socql/pkg/validate"
)

// Config holds configuration for the API server.
type Config struct {
	Listen      string
	Registry    *schema.Registry
	Validation  validate.Config
	SchemaPath  string
	WatchSchema bool
	Logger      *slog.Logger
}

// Server is the SOCQL API server.
type Server struct {
	listen     string
	registry   *schema.Registry
	validator  *validate.Validator
	schemaPath string
	watch      bool
	logger     *slog.Logger
}

// New creates a server instance.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	reg := cfg.Registry
	if reg == nil {
		reg = schema.Default()
	}
	return &Server{
		listen:     cfg.Listen,
		registry:   reg,
		validator:  validate.NewWithConfig(reg, cfg.Validation),
		schemaPath: cfg.SchemaPath,
		watch:      cfg.WatchSchema && cfg.SchemaPath != "",
		logger:     logger,
	}
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting API server", "addr", s.listen)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.listen,
		Handler: s.Routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watch {
		eg.Go(func() error {
			return s.watchSchemaFile(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Routes builds the HTTP router.
func (s *Server) Routes() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/tokenize", s.handleTokenize)
		r.Post("/context", s.handleContext)
		r.Post("/complete", s.handleComplete)
		r.Get("/schema", s.handleSchemaGet)
		r.Put("/schema", s.handleSchemaPut)
	})

	return r
}

// watchSchemaFile watches the schema file and atomically swaps the
// registry contents on change. The parent directory is watched because
// editors replace files rather than writing in place.
func (s *Server) watchSchemaFile(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(s.schemaPath)); err != nil {
		s.logger.Error("failed to watch schema directory", "error", err)
		// Continue without watching.
		<-ctx.Done()
		return nil
	}

	target := filepath.Clean(s.schemaPath)
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != target {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.reloadSchema()
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// reloadSchema rebuilds the registry from built-ins plus the schema file
// and swaps it in. A broken file leaves the current registry untouched.
func (s *Server) reloadSchema() {
	snap, err := schema.LoadSnapshotFile(s.schemaPath)
	if err != nil {
		s.logger.Error("schema reload failed", "path", s.schemaPath, "error", err)
		return
	}
	fresh := schema.Default()
	fresh.Import(snap)
	s.registry.Replace(fresh.Export())
	s.logger.Info("schema reloaded", "path", s.schemaPath)
}
