package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagRunID  string
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and stats",
	Long: `Display the best runs and aggregate statistics.

Examples:
  snake scores
  snake scores --limit 20
  snake scores --recent
  snake scores --run <id>
  snake scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent runs instead of the best")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show the rounds of one run")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs")
	scoresCmd.MarkFlagsMutuallyExclusive("recent", "run", "clear")
}

func runScores(cmd *cobra.Command, args []string) {
	if err := scores(); err != nil {
		fail("%v", err)
	}
}

func scores() error {
	logger, err := newStderrLogger(flagLogLevel)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearRuns(); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		logger.Info("scores cleared", "db", flagDBPath)
		fmt.Println("All runs deleted.")
		return nil
	case flagRunID != "":
		return showRun(store, flagRunID)
	}

	var runs []storage.RunEntry
	if flagRecent {
		runs, err = store.RecentRuns(flagLimit)
	} else {
		runs, err = store.TopRuns(flagLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	stats, err := store.Stats()
	if err != nil {
		logger.Warn("could not compute stats", "error", err)
		stats = nil
	}

	fmt.Print(tui.RenderScores(runs, stats))
	if len(runs) > 0 {
		fmt.Println()
		fmt.Println("Run 'snake scores --run <id>' for round details. IDs:")
		for i, r := range runs {
			fmt.Printf("  #%-3d %s\n", i+1, r.ID)
		}
	}
	return nil
}

func showRun(store *storage.Store, id string) error {
	run, err := store.RunByID(id)
	if err != nil {
		return fmt.Errorf("retrieving run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("no run with id %q", id)
	}
	rounds, err := store.RoundsForRun(id)
	if err != nil {
		return fmt.Errorf("retrieving rounds: %w", err)
	}

	fmt.Printf("Run %s\n", run.ID)
	fmt.Printf("  Played:   %s\n", run.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("  Score:    %d\n", run.Score)
	fmt.Printf("  Retries:  %d/%d\n", run.NGCount, run.MaxNG)
	fmt.Printf("  Ended:    %s\n", run.EndReason)
	fmt.Printf("  Speed:    %s per tick\n", run.Interval)
	fmt.Printf("  Duration: %s\n", run.Duration.Round(time.Second))
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded.")
		return nil
	}
	fmt.Printf("  %-5s  %-6s  %-10s  %s\n", "Round", "Score", "Cause", "Ticks")
	fmt.Printf("  %-5s  %-6s  %-10s  %s\n", "-----", "-----", "-----", "-----")
	for _, r := range rounds {
		fmt.Printf("  %-5d  %-6d  %-10s  %d\n", r.Round, r.Score, r.Cause, r.Ticks)
	}
	return nil
}
