package main

import (
	_ "embed"
	"io"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/tomz197/ringdefense/internal/config"
	"github.com/tomz197/ringdefense/internal/remote"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	envErr := config.LoadDotEnv()
	logger := config.NewLogger(os.Stderr, "web")
	if envErr != nil {
		logger.Warn("failed to load .env", "err", envErr)
	}

	host := config.GetEnv(config.EnvWebHost, defaultHost)
	port := config.GetEnv(config.EnvWebPort, defaultPort)
	sshHost := config.GetEnv(config.EnvSSHDisplayHost, "your-server.com")
	sshPort := config.GetEnv(config.EnvSSHPort, "2222")

	settings, err := config.LoadSettingsOrDefault(config.GetEnv(config.EnvConfigPath, ""))
	if err != nil {
		logger.Fatal("failed to load settings", "err", err)
	}

	page := strings.NewReplacer("{{.SSHHost}}", sshHost, "{{.SSHPort}}", sshPort).Replace(htmlPage)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		io.WriteString(w, page)
	})
	mux.Handle("/ws", remote.NewHandler(*settings, logger.WithPrefix("remote")))

	addr := net.JoinHostPort(host, port)
	logger.Info("starting web server", "addr", "http://"+addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
