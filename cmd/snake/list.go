package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available boards",
	Long:  `Shows every registered snake board with its size and speed.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	rc := runtimeConfig(cfg, 0, 0)

	games := registry.List()
	out := cmd.OutOrStdout()

	if len(games) == 0 {
		fmt.Fprintln(out, "No games available.")
		return nil
	}

	fmt.Fprintln(out, "Available games:")
	fmt.Fprintln(out)

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Fprintf(out, "  %-*s  %-16s  %s\n", maxIDLen, "ID", "Title", "Board")
	fmt.Fprintf(out, "  %-*s  %-16s  %s\n", maxIDLen, "--", "-----", "-----")

	for _, info := range games {
		board := "?"
		if g, err := createSnake(info.ID); err == nil {
			b := g.Board()
			board = fmt.Sprintf("%dx%d px, %dx%d tiles", b.Width, b.Height, b.Cols(), b.Rows())
		}
		fmt.Fprintf(out, "  %-*s  %-16s  %s\n", maxIDLen, info.ID, info.Title, board)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "The snake moves every %v (%d frames at %d fps).\n",
		cfg.MoveInterval(), cfg.MoveEveryTicks(rc.TickRate), rc.TickRate)
	fmt.Fprintln(out, "Run 'snake --game <id>' or 'snake play <id>' to play.")
	return nil
}
