package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake/internal/platform/tui"
	"github.com/vovakirdan/snake/internal/storage"
)

var (
	flagRunsPlain bool
	flagRunsClear bool
	flagRunsLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Browse recorded runs",
	Long: `Every finished game is journaled with its seed and steering so it
can be replayed exactly. This opens a browser of recent runs; press Enter to
replay one in the terminal.

Examples:
  snake runs
  snake runs --plain --limit 5
  snake runs --clear`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagRunsPlain, "plain", false, "Print runs instead of opening the browser")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete every recorded run")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to print with --plain")
}

func runRuns(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagRunsClear {
		n, err := store.CountRuns()
		if err != nil {
			return err
		}
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted %d runs.\n", n)
		return nil
	}

	if flagRunsPlain {
		runs, err := store.RecentRuns(flagRunsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(out, "No runs recorded yet.")
			return nil
		}
		fmt.Fprintf(out, "  %-8s  %-12s  %6s  %6s  %-10s  %s\n", "ID", "Board", "Length", "Moves", "Outcome", "Date")
		for _, r := range runs {
			fmt.Fprintf(out, "  %-8s  %-12s  %6d  %6d  %-10s  %s\n",
				r.ShortID(), r.GameID, r.Length, r.Ticks, r.Outcome, r.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	}

	width, height := terminalSize()
	id, err := tui.RunRunsBrowser(store, width, height)
	if err != nil {
		return err
	}
	if id == "" {
		return nil
	}
	return replayRun(store, cfg, id, false)
}
