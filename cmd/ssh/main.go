package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"github.com/tomz197/strikers/internal/config"
	"github.com/tomz197/strikers/internal/draw"
	"github.com/tomz197/strikers/internal/loop/client"
	"github.com/tomz197/strikers/internal/loop/server"
	"github.com/tomz197/strikers/internal/object"
	"github.com/tomz197/strikers/internal/spectate"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultSpectate    = ":8081"
)

func main() {
	logger := config.NewLogger(os.Stderr, "strikers-ssh")
	if err := run(logger); err != nil {
		logger.Error("Server failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	tuning, err := config.LoadTuning(config.GetEnv(config.EnvTuning, ""))
	if err != nil {
		return err
	}

	host := config.GetEnv(config.EnvSSHHost, defaultHost)
	port := config.GetEnv(config.EnvSSHPort, defaultPort)
	hostKeyPath := config.GetEnv(config.EnvSSHHostKey, defaultHostKeyPath)
	spectateAddr := config.GetEnv(config.EnvSpectate, defaultSpectate)
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "spectate", spectateAddr)

	// Every connection plays its own sessions; they share the registry and
	// the mask cache only.
	registry := server.NewServer()
	games := &gameHandler{
		registry: registry,
		cache:    object.NewSpriteCache(),
		tuning:   tuning,
		logger:   logger,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			games.middleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	hub := spectate.NewHub(registry, logger, 0)
	web := &http.Server{Addr: spectateAddr, Handler: hub.Handler()}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- fmt.Errorf("ssh server: %w", err)
		}
	}()
	if spectateAddr != "" {
		go func() {
			logger.Info("Starting spectator feed", "addr", spectateAddr)
			if err := web.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("spectator feed: %w", err)
			}
		}()
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-done:
	case err := <-errCh:
		return err
	}
	logger.Info("Shutting down server...")

	// Notify players and wait for them to disconnect
	logger.Info("Notifying connected players about shutdown...", "players", registry.Len())
	registry.Shutdown(15 * time.Second)
	hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = web.Shutdown(ctx)
	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// gameHandler runs a game client for each SSH session.
type gameHandler struct {
	registry *server.Server
	cache    *object.SpriteCache
	tuning   config.Tuning
	logger   *log.Logger
}

// middleware handles SSH sessions and runs the game client.
func (g *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		g.logger.Info("New game session", "user", sess.User(), "terminal", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		c := client.NewClient(g.registry, bufio.NewReader(sess), sess, client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Username:     sess.User(),
			Tuning:       g.tuning,
			Cache:        g.cache,
			Logger:       g.logger,
			Profile:      termenv.ANSI256,
		})
		if err := c.Run(); err != nil {
			g.logger.Error("Game error", "user", sess.User(), "err", err)
		}

		g.logger.Info("Session ended", "user", sess.User(), "client", c.ID())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
