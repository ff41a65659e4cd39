package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"movpress/internal/config"
	"movpress/internal/encoding"
	"movpress/internal/history"
	"movpress/internal/logging"
	"movpress/internal/media/ffprobe"
)

// Server hosts the local upload form and its JSON API. Requests are handled
// independently, each with its own temp job directory; the only shared state
// is the append-only history store.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	runner *encoding.Runner
	store  *history.Store

	// probe inspects uploads before encoding; injectable for tests.
	probe func(ctx context.Context, binary, path string) (ffprobe.Result, error)

	lockPath string
	lock     *flock.Flock

	listener net.Listener
	server   *http.Server
	started  time.Time
}

// New constructs a server. The history store may be nil when disabled.
func New(cfg *config.Config, runner *encoding.Runner, store *history.Store, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("web server requires config")
	}
	if runner == nil {
		return nil, errors.New("web server requires an encoder runner")
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "movpressd.lock")
	srv := &Server{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "web"),
		runner:   runner,
		store:    store,
		probe:    ffprobe.Inspect,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleIndex)
	mux.HandleFunc("/compress", srv.handleCompress)
	mux.HandleFunc("/api/presets", srv.handlePresets)
	mux.HandleFunc("/api/status", srv.handleStatus)
	mux.HandleFunc("/api/history", srv.handleHistory)

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		// No write timeout: a compress response blocks on the encode,
		// which can take arbitrarily long.
	}
	return srv, nil
}

// Start acquires the single-instance lock and begins serving until ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another movpressd instance is already running")
	}

	listener, err := net.Listen("tcp", s.cfg.Web.Bind)
	if err != nil {
		_ = s.lock.Unlock()
		return fmt.Errorf("listen on %s: %w", s.cfg.Web.Bind, err)
	}
	s.listener = listener
	s.started = time.Now()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down and releases the instance lock.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
	if err := s.lock.Unlock(); err != nil {
		s.logger.Warn("failed to release instance lock", logging.Error(err))
	}
}

// Addr returns the bound address, or empty before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
