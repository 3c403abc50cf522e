// Package server wires the job board runtime and HTTP lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/jobboard/internal/platform/logging"
	"github.com/louisbranch/jobboard/internal/platform/timeouts"
	"github.com/louisbranch/jobboard/internal/services/jobboard/api/rest"
	"github.com/louisbranch/jobboard/internal/services/jobboard/identity"
	"github.com/louisbranch/jobboard/internal/services/jobboard/service"
	jobsqlite "github.com/louisbranch/jobboard/internal/services/jobboard/storage/sqlite"
	"go.uber.org/zap"
)

// Config holds the runtime settings of a job board server.
type Config struct {
	Addr              string
	DBPath            string
	SessionSecret     []byte
	SessionIssuer     string
	SessionTTL        time.Duration
	BcryptCost        int
	AuthRatePerMinute int
	SecureCookies     bool
	Logger            *zap.Logger
}

// Server hosts the job board REST API and storage lifecycle.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
	store      *jobsqlite.Store
	logger     *zap.Logger
}

// New opens the store, builds the API, and listens on cfg.Addr.
func New(ctx context.Context, cfg Config) (*Server, error) {
	logger := logging.Component(cfg.Logger, "server")
	issuer, err := identity.NewTokenIssuer(identity.TokenConfig{
		Secret: cfg.SessionSecret,
		Issuer: cfg.SessionIssuer,
		TTL:    cfg.SessionTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("configure sessions: %w", err)
	}

	store, err := openStore(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}

	svc := service.New(store, issuer,
		service.WithLogger(cfg.Logger),
		service.WithPasswordHasher(identity.NewPasswordHasher(cfg.BcryptCost)),
	)
	handler, err := rest.New(rest.Options{
		Service:           svc,
		Tokens:            issuer,
		Logger:            cfg.Logger,
		AuthRatePerMinute: cfg.AuthRatePerMinute,
		SecureCookies:     cfg.SecureCookies,
		Health:            store.Ping,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	return &Server{
		listener: listener,
		httpServer: &http.Server{
			Handler:           handler.Routes(),
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		store:  store,
		logger: logger,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a job board server until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve serves HTTP until ctx ends, then drains in-flight requests.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	s.logger.Info("job board listening", zap.String(logging.FieldAddress, s.Addr()))
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("http shutdown", zap.Error(err))
		}
		return handleServeErr(<-serveErr)
	case err := <-serveErr:
		return handleServeErr(err)
	}
}

func handleServeErr(err error) error {
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("serve HTTP: %w", err)
}

// Close releases server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("close store", zap.Error(err))
		}
		s.store = nil
	}
}

func openStore(ctx context.Context, path string) (*jobsqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = filepath.Join("data", "jobboard.db")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := jobsqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open jobboard sqlite store: %w", err)
	}
	return store, nil
}
