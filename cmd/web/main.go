package main

import (
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/tomz197/strikers/internal/config"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	logger := config.NewLogger(os.Stderr, "strikers-web")
	if err := config.LoadDotEnv(".env"); err != nil {
		logger.Fatal("Loading .env failed", "err", err)
	}

	host := config.GetEnv(config.EnvWebHost, defaultHost)
	port := config.GetEnv(config.EnvWebPort, defaultPort)
	sshHost := config.GetEnv(config.EnvDisplayHost, "your-server.com")
	spectateURL := config.GetEnv(config.EnvSpectateURL, "http://localhost:8081")

	addr := net.JoinHostPort(host, port)
	logger.Info("Starting web server", "url", fmt.Sprintf("http://%s", addr))
	err := http.ListenAndServe(addr, newHandler(htmlPage, sshHost, spectateURL))
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server error", "err", err)
	}
}

// newHandler serves the landing page with the connection details filled in.
func newHandler(page, sshHost, spectateURL string) http.Handler {
	page = strings.NewReplacer(
		"{{.SSHHost}}", sshHost,
		"{{.SpectateURL}}", strings.TrimSuffix(spectateURL, "/"),
	).Replace(page)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	return mux
}
