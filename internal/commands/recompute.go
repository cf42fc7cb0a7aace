package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yumesaka/playtrack/internal/db"
)

var recomputeCmd = &cobra.Command{
	Use:   "recompute [game-id]",
	Short: "Rebuild aggregate statistics from the session log",
	Long: `Rebuild a game's aggregate statistics from its full session history.
Recomputing is idempotent; running it on unchanged history is a no-op.
Without a game ID, every registered game is recomputed.`,
	Args: cobra.MaximumNArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		reconciler := newReconciler()

		if len(args) == 1 {
			gameID, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				fmt.Printf("Error: invalid game ID '%s'\n", args[0])
				return
			}
			stats, err := reconciler.Recompute(uint(gameID))
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("♻️  Game #%d: %s over %d sessions\n", gameID, formatMinutes(stats.TotalTime), stats.SessionCount)
			return
		}

		games, err := db.GetGames()
		if err != nil {
			fmt.Printf("Error fetching games: %v\n", err)
			return
		}

		for _, game := range games {
			stats, err := reconciler.Recompute(game.ID)
			if err != nil {
				fmt.Printf("Error recomputing game #%d: %v\n", game.ID, err)
				continue
			}
			fmt.Printf("♻️  %s: %s over %d sessions\n", game.Title, formatMinutes(stats.TotalTime), stats.SessionCount)
		}
	}),
}
