package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/xr-pong/internal/platform/tui"
	"github.com/vovakirdan/xr-pong/internal/storage"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded matches",
	Long: `Display the most recent matches and overall statistics.

Opens an interactive table in a terminal and prints plain text otherwise.

Examples:
  xrpong history
  xrpong history --limit 50
  xrpong history | less`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of matches to show")
}

func runHistory(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fatalf("%v", err)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fatalf("%v", err)
	}
	defer store.Close()

	matches, err := store.RecentMatches(flagHistoryLimit)
	if err != nil {
		fatalf("%v", err)
	}
	stats, err := store.Stats()
	if err != nil {
		fatalf("%v", err)
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunHistory(matches, stats, width, height); err != nil {
			fatalf("%v", err)
		}
		return
	}

	printHistory(matches, stats)
}

func printHistory(matches []storage.MatchRecord, stats *storage.MatchStats) {
	fmt.Println("Match History")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'xrpong play' to record the first match!")
		return
	}

	// Print header
	fmt.Printf("  %-16s  %-9s  %-4s  %-5s  %-6s  %-5s  %s\n", "Date", "Placement", "Mode", "Score", "Winner", "Rally", "Time")
	fmt.Printf("  %-16s  %-9s  %-4s  %-5s  %-6s  %-5s  %s\n", "----", "---------", "----", "-----", "------", "-----", "----")

	for _, row := range tui.HistoryRows(matches) {
		fmt.Printf("  %-16s  %-9s  %-4s  %-5s  %-6s  %-5s  %s\n", row[0], row[1], row[2], row[3], row[4], row[5], row[6])
	}

	fmt.Println()
	fmt.Println(tui.StatsLine(*stats))
}
