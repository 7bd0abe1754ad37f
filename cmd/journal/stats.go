package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/phrazzld/degen-journal/internal/achievement"
	"github.com/phrazzld/degen-journal/internal/journal"
	"github.com/phrazzld/degen-journal/internal/trade"
)

var statsJSON bool

// statsReport is the output of the stats command.
type statsReport struct {
	Progress     journal.ProgressView   `json:"progress"`
	DueCards     int                    `json:"due_cards"`
	Trades       trade.Stats            `json:"trades"`
	Achievements []achievement.Progress `json:"achievements"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print progress, due cards and trade statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}

		app, err := newApplication(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer func() { _ = app.Close(cmd.Context()) }()

		report := statsReport{
			Progress:     app.journal.Progress(),
			DueCards:     app.journal.DueCount(app.clock.Now()),
			Trades:       app.journal.TradeStats(),
			Achievements: app.journal.Achievements(),
		}
		if statsJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		printStats(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print as JSON")
	rootCmd.AddCommand(statsCmd)
}

func printStats(w io.Writer, r statsReport) {
	p := r.Progress
	fmt.Fprintf(w, "Level %d %s (%d XP, %.0f%% to next)\n", p.Level.Level, p.Level.Title, p.XP, p.Level.Progress)
	fmt.Fprintf(w, "Streak: %d day(s)\n", p.Streak)
	fmt.Fprintf(w, "Notes read: %d, skills completed: %d\n", len(p.NotesRead), len(p.CompletedSkills))
	fmt.Fprintf(w, "Cards due: %d\n", r.DueCards)
	fmt.Fprintf(w, "Trades: %d (%d open, %d closed), win rate %.1f%%, total P&L %.2f\n",
		r.Trades.Total, r.Trades.Open, r.Trades.Closed, r.Trades.WinRate, r.Trades.TotalPnL)

	unlocked := 0
	for _, a := range r.Achievements {
		if a.Unlocked {
			unlocked++
		}
	}
	fmt.Fprintf(w, "Achievements: %d/%d unlocked\n", unlocked, len(r.Achievements))
}
