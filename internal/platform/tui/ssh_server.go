package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/emoji-fusion/internal/catalog"
	"github.com/vovakirdan/emoji-fusion/internal/config"
	"github.com/vovakirdan/emoji-fusion/internal/game"
	"github.com/vovakirdan/emoji-fusion/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.fusion/host_key.
	HostKeyPath string

	// DBPath is the path to the game database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Config tunes every session the server hosts. Nil means defaults.
	Config *config.FusionConfig

	// Logger receives server and session events. Nil creates one.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.fusion/fusion.db",
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer hosts one game per connected SSH user. Each user name is a
// separate profile in the shared database.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	catalog *catalog.Catalog
	logger  *log.Logger

	// sessions counts games that have not flushed yet.
	sessions sync.WaitGroup
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "fusion-ssh",
		})
	}
	if cfg.Config == nil {
		def := config.DefaultFusionConfig()
		cfg.Config = &def
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open game database, progress will not be saved", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config:  cfg,
		store:   store,
		catalog: catalog.New(cfg.Config.Themes),
		logger:  logger,
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".fusion", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// profileFor maps an SSH user name to a profile id.
func profileFor(user string) string {
	user = strings.TrimSpace(strings.ToLower(user))
	if user == "" {
		return storage.LocalProfile
	}
	return user
}

// teaHandler loads the user's game and creates a Bubble Tea program for it.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	profile := profileFor(sshSession.User())
	opts := game.Options{
		Config:  s.config.Config,
		Catalog: s.catalog,
		Logger:  s.logger.With("profile", profile),
	}
	if s.store != nil {
		opts.Persister = s.store.Profile(profile)
	}

	session, err := game.Load(sshSession.Context(), opts)
	if err != nil {
		s.logger.Error("could not load game", "profile", profile, "error", err)
		return nil, nil
	}

	s.closeOnDone(sshSession.Context(), session.Close)

	model := NewSessionModel(session, s.store, profile, pty.Window.Width, pty.Window.Height)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// closeOnDone runs closeFn once ctx ends. Shutdown waits for it.
func (s *SSHServer) closeOnDone(ctx context.Context, closeFn func()) {
	s.sessions.Add(1)
	go func() {
		defer s.sessions.Done()
		<-ctx.Done()
		closeFn()
	}()
}

// waitSessions blocks until every tracked session has flushed or ctx ends.
func (s *SSHServer) waitSessions(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.sessions.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server. Open sessions flush their state
// as their connections close, before the database is released.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if waitErr := s.waitSessions(ctx); waitErr != nil {
		s.logger.Warn("sessions still flushing at shutdown", "error", waitErr)
	}
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
