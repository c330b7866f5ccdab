package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AdrianoCalmon/Bit-Hero/internal/platform/metrics"
	"github.com/AdrianoCalmon/Bit-Hero/internal/platform/tui"
	"github.com/AdrianoCalmon/Bit-Hero/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Bit Hero SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own song menu and play sessions. Replays
are stored in the server's database, so every player can browse and
verify them.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.bithero/host_key

With --metrics, Prometheus metrics are served at /metrics and a health
check at /healthz.

Examples:
  bithero serve                           # Listen on :23234 with auto-generated key
  bithero serve --ssh :2222               # Listen on port 2222
  bithero serve --host-key ./my_host_key  # Use specific host key
  bithero serve --metrics :9090           # Also expose Prometheus metrics

Users can connect with:
  ssh localhost -p 23234`,
	Run: run(runServe),
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Metrics HTTP address (host:port), disabled when empty")
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := setup(logStderr)
	if err != nil {
		return err
	}
	defer a.Close()

	reg := registry.Default()
	m := metrics.New()
	m.SetSongsRegistered(reg.Len())

	deps := a.deps()
	deps.Metrics = m

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}
	server, err := tui.NewSSHServer(cfg, reg, deps)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	running := 1
	go func() { errCh <- server.Serve(ctx) }()

	if flagMetricsAddr != "" {
		running++
		router := metrics.Router(m, func() { m.SetSongsRegistered(reg.Len()) })
		a.logger.Info("serving metrics", "address", flagMetricsAddr)
		go func() { errCh <- metrics.ListenAndServe(ctx, flagMetricsAddr, router) }()
	}

	fmt.Printf("Starting Bit Hero SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	// The first failure stops the other server too
	var firstErr error
	for ; running > 0; running-- {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			stop()
		}
	}
	if firstErr != nil {
		return fmt.Errorf("server error: %w", firstErr)
	}
	return nil
}

// portOf returns the port part of a listen address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
