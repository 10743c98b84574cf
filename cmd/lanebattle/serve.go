package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-battle/internal/platform/tui"
	"github.com/vovakirdan/lane-battle/internal/sim"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the battle SSH server",
	Long: `Start an SSH server that lets users connect and play battles.

Each SSH connection gets its own battle sized to its terminal. Results
are stored per-server (all users share the same database).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.lanebattle/host_key

Examples:
  lanebattle serve                           # Listen on :23234 with auto-generated key
  lanebattle serve --ssh :2222               # Listen on port 2222
  lanebattle serve --host-key ./my_host_key  # Use specific host key
  lanebattle serve --db ./battles.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagMaxFrames, "max-frames", 0, "Frame limit per battle, 0 = unlimited")
	serveCmd.Flags().BoolVar(&flagChivalrous, "chivalrous", false, "One attacker per target")
	serveCmd.Flags().Float64Var(&flagCostRate, "cost-rate", sim.DefaultCostRecoveryPerFrame, "Cost recovered per frame")
	serveCmd.Flags().Float64Var(&flagCostCap, "cost-cap", sim.DefaultMaxAvailableCost, "Cost pool cap")
	serveCmd.Flags().IntVar(&flagPlayerBase, "player-base", 90, "Unit id of the player keep (0 = none)")
	serveCmd.Flags().IntVar(&flagEnemyBase, "enemy-base", 91, "Unit id of the enemy keep (0 = none)")
}

func runServe(_ *cobra.Command, _ []string) {
	units, stage, roster, err := loadBattleData()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading battle data: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	params := tui.WatchParams{
		Stage:        stage,
		Units:        units,
		Roster:       roster,
		Config:       battleConfig(),
		PlayerBaseID: flagPlayerBase,
		EnemyBaseID:  flagEnemyBase,
		TickRate:     flagFPS,
		MaxFrames:    flagMaxFrames,
	}

	server, err := tui.NewSSHServer(cfg, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting battle SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
