package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-battle/internal/platform/tui"
	"github.com/vovakirdan/lane-battle/internal/sim"
	"github.com/vovakirdan/lane-battle/internal/storage"
)

var (
	flagFrames      int
	flagSpawnEvery  int
	flagNoAutopilot bool
	flagRunLane     int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a headless battle and log the result",
	Long: `Run a battle without a terminal UI, as fast as the CPU allows.

An autopilot plays the player side, deploying the cheapest affordable
unit on a fixed cadence; disable it with --no-autopilot to watch the
enemy waves march unopposed. The result is logged and saved to the
battle database.

Examples:
  lanebattle run
  lanebattle run --frames 7200 --spawn-every 30
  lanebattle run --no-autopilot`,
	Run: runHeadless,
}

func init() {
	runCmd.Flags().IntVar(&flagFrames, "frames", 3600, "Maximum frames to simulate")
	runCmd.Flags().IntVar(&flagSpawnEvery, "spawn-every", 45, "Autopilot deploy cadence in frames")
	runCmd.Flags().BoolVar(&flagNoAutopilot, "no-autopilot", false, "Disable the player-side autopilot")
	runCmd.Flags().IntVar(&flagRunLane, "lane", 60, "Lane length in columns")
	runCmd.Flags().BoolVar(&flagChivalrous, "chivalrous", false, "One attacker per target")
	runCmd.Flags().Float64Var(&flagCostRate, "cost-rate", sim.DefaultCostRecoveryPerFrame, "Cost recovered per frame")
	runCmd.Flags().Float64Var(&flagCostCap, "cost-cap", sim.DefaultMaxAvailableCost, "Cost pool cap")
	runCmd.Flags().IntVar(&flagPlayerBase, "player-base", 90, "Unit id of the player keep (0 = none)")
	runCmd.Flags().IntVar(&flagEnemyBase, "enemy-base", 91, "Unit id of the enemy keep (0 = none)")
}

func runHeadless(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "lanebattle",
	})

	units, stage, roster, err := loadBattleData()
	if err != nil {
		logger.Fatal("could not load battle data", "error", err)
	}

	costs := make(map[int]float64, len(units))
	for _, u := range units {
		costs[u.ID] = u.Cost
	}

	delegate := tui.NewLaneDelegate(flagRunLane, units)
	battle := sim.New(delegate)
	battle.Init(sim.InitParams{
		Stage:  stage,
		Units:  units,
		Roster: roster,
		Config: battleConfig(),
	})
	delegate.Attach(battle)

	if flagPlayerBase != 0 {
		battle.SpawnBase(flagPlayerBase, true)
	}
	if flagEnemyBase != 0 {
		battle.SpawnBase(flagEnemyBase, false)
	}

	logger.Info("battle started", "stage", stage.Name, "lane", flagRunLane, "frames", flagFrames)
	started := time.Now()

	outcome := "timeout"
	for i := 0; i < flagFrames; i++ {
		if !flagNoAutopilot && flagSpawnEvery > 0 && i%flagSpawnEvery == 0 {
			if id, ok := cheapestAffordable(delegate.Affordable(), costs); ok {
				battle.RequestPlayerSpawn(id)
			}
		}

		battle.Update()

		for _, line := range delegate.DrainEvents() {
			logger.Debug(line, "frame", battle.Frame())
		}

		if verdict, over := tui.Verdict(battle, flagFrames); over {
			outcome = verdict
			break
		}
	}

	playerLost, enemyLost := tui.Casualties(battle)
	logger.Info("battle finished",
		"outcome", outcome,
		"frames", battle.Frame(),
		"player_spawned", delegate.PlayerSpawned(),
		"enemy_spawned", delegate.EnemySpawned(),
		"player_lost", playerLost,
		"enemy_lost", enemyLost,
		"elapsed", time.Since(started),
	)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open battle database", "error", err)
		return
	}
	defer store.Close()

	if _, err := store.SaveBattle(storage.BattleRecord{
		StageID:       stage.ID,
		StageName:     stage.Name,
		Frames:        battle.Frame(),
		Outcome:       outcome,
		PlayerSpawned: delegate.PlayerSpawned(),
		EnemySpawned:  delegate.EnemySpawned(),
		PlayerLost:    playerLost,
		EnemyLost:     enemyLost,
		PeakCost:      delegate.PeakCost(),
		DurationMS:    time.Since(started).Milliseconds(),
	}); err != nil {
		logger.Warn("could not save battle record", "error", err)
	}
}

// cheapestAffordable picks the lowest-cost unit from the affordable set.
func cheapestAffordable(affordable []int, costs map[int]float64) (int, bool) {
	best := -1
	for _, id := range affordable {
		if best == -1 || costs[id] < costs[best] {
			best = id
		}
	}
	return best, best != -1
}
