package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/tomz197/strikers/internal/audio"
	"github.com/tomz197/strikers/internal/config"
	"github.com/tomz197/strikers/internal/loop"
	"github.com/tomz197/strikers/internal/loop/server"
	"github.com/tomz197/strikers/internal/object"
	"github.com/tomz197/strikers/internal/spectate"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	tuning, err := config.LoadTuning(config.GetEnv(config.EnvTuning, ""))
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if path := config.GetEnv(config.EnvLogFile, ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, "strikers")

	sound := audio.New(config.GetEnvBool(config.EnvAudio, true), logger)
	defer sound.Close()

	registry := server.NewServer()
	if addr := config.GetEnv(config.EnvSpectate, ""); addr != "" {
		stop := serveSpectators(addr, registry, logger)
		defer stop()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	return loop.Run(bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Tuning:  tuning,
		Cache:   object.NewSpriteCache(),
		Sound:   sound,
		Logger:  logger,
		Profile: termenv.EnvColorProfile(),
		Server:  registry,
	})
}

// serveSpectators starts the spectator feed in the background and returns a
// function that stops it.
func serveSpectators(addr string, registry *server.Server, logger *log.Logger) func() {
	hub := spectate.NewHub(registry, logger, 0)
	srv := &http.Server{Addr: addr, Handler: hub.Handler()}

	go func() {
		logger.Info("Spectator feed listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Spectator feed stopped", "err", err)
		}
	}()

	return func() {
		hub.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
