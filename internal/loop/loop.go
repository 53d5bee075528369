// Package loop runs a local game on one terminal: two players sharing the
// keyboard, from the title menu through any number of sessions.
package loop

import (
	"bufio"
	"io"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/tomz197/strikers/internal/config"
	"github.com/tomz197/strikers/internal/draw"
	"github.com/tomz197/strikers/internal/loop/client"
	"github.com/tomz197/strikers/internal/loop/server"
	"github.com/tomz197/strikers/internal/object"
)

// Options configures a local game. Zero fields get defaults.
type Options struct {
	Tuning       config.Tuning
	Cache        *object.SpriteCache
	Sound        client.Sound
	Logger       *log.Logger
	Profile      termenv.Profile
	Server       *server.Server // Registry the session is announced in; a private one when nil
	TermSizeFunc draw.TermSizeFunc
}

// Run starts the local game with the standard Input → Update → Draw cycle.
// It returns when the players quit from the menu or the input ends.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	gs := opts.Server
	if gs == nil {
		gs = server.NewServer()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	c := client.NewClient(gs, r, w, client.ClientOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Username:     "local",
		Tuning:       opts.Tuning,
		Cache:        opts.Cache,
		Sound:        opts.Sound,
		Logger:       logger,
		Profile:      opts.Profile,
	})
	logger.Debug("Local game started", "client", c.ID())
	return c.Run()
}
