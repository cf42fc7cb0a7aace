package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yumesaka/playtrack/internal/db"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List registered games",
	Long:    "List registered games with their total playtime and last played date",
	Run: withApp(func(cmd *cobra.Command, args []string) {
		games, err := db.GetGames()
		if err != nil {
			fmt.Printf("Error fetching games: %v\n", err)
			return
		}

		if len(games) == 0 {
			fmt.Println("No games found. Use 'playtrack add \"title\"' to register your first game.")
			return
		}

		// Print table header
		fmt.Printf("%-4s %-40s %-10s %-9s %-12s %s\n", "ID", "TITLE", "PLAYTIME", "SESSIONS", "LAST PLAYED", "BACKUP")
		fmt.Println(strings.Repeat("-", 86))

		for _, game := range games {
			stored, err := db.GetStatistics(game.ID)
			if err != nil {
				fmt.Printf("Error fetching statistics for #%d: %v\n", game.ID, err)
				return
			}

			playtime := "-"
			sessions := "-"
			lastPlayed := "never"
			if stored != nil {
				playtime = formatMinutes(stored.TotalTime)
				sessions = fmt.Sprintf("%d", stored.SessionCount)
				if stored.LastPlayed != nil {
					lastPlayed = time.Unix(*stored.LastPlayed, 0).Format("2006-01-02")
				}
			}

			backup := "off"
			if game.AutoBackup {
				backup = "auto"
			}

			// Truncate title if too long
			title := game.Title
			if len(title) > 38 {
				title = title[:35] + "..."
			}

			fmt.Printf("%-4d %-40s %-10s %-9s %-12s %s\n",
				game.ID,
				title,
				playtime,
				sessions,
				lastPlayed,
				backup)
		}
	}),
}

// formatMinutes formats a minute total in a human-readable way
func formatMinutes(minutes int) string {
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
