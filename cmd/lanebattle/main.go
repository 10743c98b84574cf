// lanebattle is a lane-combat battle simulator for the terminal.
//
// Usage:
//
//	lanebattle watch         - Play a battle interactively
//	lanebattle run           - Run a headless battle and log the result
//	lanebattle serve         - Start SSH server for remote play
//	lanebattle units         - List the unit roster
//	lanebattle results       - Show recorded battle results
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--units <path>   - Custom units YAML (default: embedded data)
//	--stage <path>   - Custom stage YAML (default: embedded data)
//	--db <path>      - Set database path (default: ~/.lanebattle/battles.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-battle/internal/masterdata"
	"github.com/vovakirdan/lane-battle/internal/sim"
)

var (
	// Global flags
	flagFPS       int
	flagDBPath    string
	flagUnitsPath string
	flagStagePath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lanebattle",
	Short: "Lane Battle - defend your keep in the terminal",
	Long: `Lane Battle is a terminal lane-combat simulator. Two keeps face each
other across a single lane; you spend cost to deploy units while the
stage script sends enemy waves against you.

Available commands:
  watch    - Play a battle interactively
  run      - Run a headless battle and log the result
  serve    - Start SSH server for remote play
  units    - List the unit roster
  results  - View recorded battle results

Examples:
  lanebattle watch
  lanebattle run --frames 3600
  lanebattle serve --ssh :2222
  lanebattle results --stage 1`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagUnitsPath, "units", "", "Path to custom units YAML (empty = embedded defaults)")
	rootCmd.PersistentFlags().StringVar(&flagStagePath, "stage", "", "Path to custom stage YAML (empty = embedded defaults)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lanebattle/battles.db", "Path to battle results database")

	// Add subcommands
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(unitsCmd)
	rootCmd.AddCommand(resultsCmd)
}

// loadBattleData loads unit and stage masters from the configured
// sources and derives the deployable roster.
func loadBattleData() ([]sim.UnitMaster, sim.StageMaster, []int, error) {
	units, err := masterdata.LoadUnits(flagUnitsPath)
	if err != nil {
		return nil, sim.StageMaster{}, nil, err
	}
	stage, err := masterdata.LoadStage(flagStagePath)
	if err != nil {
		return nil, sim.StageMaster{}, nil, err
	}
	return units, stage, masterdata.DefaultRoster(units), nil
}
