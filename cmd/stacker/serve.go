package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stacker/internal/platform/tui"
)

var (
	flagSSHAddress  string
	flagHostKeyPath string
	flagServeDBPath string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote play",
	Long: `Start an SSH server so players can connect remotely and play
over SSH with zero client installation.

Players connect with:
  ssh -p <port> <host>

Examples:
  stacker serve
  stacker serve --ssh :2222
  stacker serve --ssh :2222 --host-key ./host_key --db ./results.db`,
	Run: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddress, "ssh", defaults.Address, "SSH listen address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKeyPath, "host-key", "", "Path to host key file (auto-generated if empty)")
	serveCmd.Flags().StringVar(&flagServeDBPath, "db-path", defaults.DBPath, "Path to results database for the server")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", defaults.IdleTimeout, "Idle connection timeout")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddress,
		HostKeyPath: flagHostKeyPath,
		DBPath:      flagServeDBPath,
		IdleTimeout: flagIdleTimeout,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not create SSH server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Stacker SSH server listening on %s\n", server.Addr())
	fmt.Println("Connect with: ssh -p <port> <host>")
	fmt.Println("Press Ctrl+C to stop.")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: server failed: %v\n", err)
		os.Exit(1)
	}
}
