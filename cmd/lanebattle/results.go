package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lane-battle/internal/platform/tui"
	"github.com/vovakirdan/lane-battle/internal/storage"
)

var (
	flagResultsLimit int
	flagResultsStage int
	flagResultsTUI   bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show recorded battle results",
	Long: `Display recent battle records from the database.

With --stage, only that stage's battles are shown, along with its
aggregate statistics.

Examples:
  lanebattle results
  lanebattle results --limit 25
  lanebattle results --stage 1`,
	Run: runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagResultsLimit, "limit", 10, "Maximum records to show")
	resultsCmd.Flags().IntVar(&flagResultsStage, "stage", 0, "Filter by stage id (0 = all stages)")
	resultsCmd.Flags().BoolVar(&flagResultsTUI, "tui", false, "Browse results in an interactive table")
}

func runResults(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening battle database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagResultsTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if tuiErr := tui.RunResults(store, flagResultsStage, width, height); tuiErr != nil {
			fmt.Fprintf(os.Stderr, "Error running results browser: %v\n", tuiErr)
			os.Exit(1)
		}
		return
	}

	var records []storage.BattleRecord
	if flagResultsStage > 0 {
		records, err = store.StageBattles(flagResultsStage, flagResultsLimit)
	} else {
		records, err = store.RecentBattles(flagResultsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving battle records: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Battle results")
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No battles recorded yet.")
		fmt.Println()
		fmt.Println("Play 'lanebattle watch' to record the first one!")
		return
	}

	// Print header
	fmt.Printf("  %-20s  %-8s  %7s  %7s  %7s  %s\n", "Stage", "Outcome", "Frames", "Yours", "Theirs", "Date")
	fmt.Printf("  %-20s  %-8s  %7s  %7s  %7s  %s\n", "-----", "-------", "------", "-----", "------", "----")

	// Print records
	for _, r := range records {
		fmt.Printf("  %-20s  %-8s  %7d  %3d/%-3d  %3d/%-3d  %s\n",
			r.StageName, r.Outcome, r.Frames,
			r.PlayerSpawned, r.PlayerLost,
			r.EnemySpawned, r.EnemyLost,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if flagResultsStage > 0 {
		stats, statsErr := store.GetStageStats(flagResultsStage)
		if statsErr == nil && stats != nil && stats.Battles > 0 {
			fmt.Println()
			fmt.Printf("Stage %d: %d battles, %d wins, avg %.0f frames\n",
				stats.StageID, stats.Battles, stats.PlayerWins, stats.AvgFrames)
		}
	}
}
