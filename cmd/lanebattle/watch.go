package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lane-battle/internal/platform/tui"
	"github.com/vovakirdan/lane-battle/internal/sim"
	"github.com/vovakirdan/lane-battle/internal/storage"
)

var (
	flagLaneLen    int
	flagMaxFrames  int
	flagChivalrous bool
	flagCostRate   float64
	flagCostCap    float64
	flagPlayerBase int
	flagEnemyBase  int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Play a battle interactively",
	Long: `Start an interactive battle in the current terminal.

Controls:
  1-9        - Deploy the corresponding roster unit
  P/Space    - Pause
  ?          - Toggle full help
  Q/Ctrl+C   - Quit

The battle ends when either keep falls, or when --max-frames elapses.

Examples:
  lanebattle watch
  lanebattle watch --chivalrous
  lanebattle watch --stage ./my-stage.yaml --max-frames 7200`,
	Run: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&flagLaneLen, "lane", 0, "Lane length in columns (0 = fit terminal)")
	watchCmd.Flags().IntVar(&flagMaxFrames, "max-frames", 0, "Frame limit, 0 = unlimited")
	watchCmd.Flags().BoolVar(&flagChivalrous, "chivalrous", false, "One attacker per target")
	watchCmd.Flags().Float64Var(&flagCostRate, "cost-rate", sim.DefaultCostRecoveryPerFrame, "Cost recovered per frame")
	watchCmd.Flags().Float64Var(&flagCostCap, "cost-cap", sim.DefaultMaxAvailableCost, "Cost pool cap")
	watchCmd.Flags().IntVar(&flagPlayerBase, "player-base", 90, "Unit id of the player keep (0 = none)")
	watchCmd.Flags().IntVar(&flagEnemyBase, "enemy-base", 91, "Unit id of the enemy keep (0 = none)")
}

// battleConfig builds the simulation config from the shared flags.
func battleConfig() *sim.Config {
	cfg := sim.NewConfig(
		sim.WithCostRecovery(flagCostRate),
		sim.WithMaxCost(flagCostCap),
		sim.WithChivalrousEngage(flagChivalrous),
	)
	return &cfg
}

func runWatch(_ *cobra.Command, _ []string) {
	units, stage, roster, err := loadBattleData()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading battle data: %v\n", err)
		os.Exit(1)
	}

	laneLen := flagLaneLen
	if laneLen <= 0 {
		if w, _, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			laneLen = w - 8
		} else {
			laneLen = 60
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open battle database: %v\n", err)
		// Continue without storage - battle still works
		store = nil
	}

	runErr := tui.RunWatch(tui.WatchParams{
		Stage:        stage,
		Units:        units,
		Roster:       roster,
		Config:       battleConfig(),
		PlayerBaseID: flagPlayerBase,
		EnemyBaseID:  flagEnemyBase,
		LaneLen:      laneLen,
		TickRate:     flagFPS,
		MaxFrames:    flagMaxFrames,
		Store:        store,
	})

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running battle: %v\n", runErr)
		os.Exit(1)
	}
}
