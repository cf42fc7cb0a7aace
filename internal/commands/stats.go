package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yumesaka/playtrack/internal/db"
	"github.com/yumesaka/playtrack/internal/parser"
)

var statsCmd = &cobra.Command{
	Use:   "stats <game-id>",
	Short: "Show playtime statistics for a game",
	Long:  "Show total playtime, session count, last played date, and the daily playtime history for a game",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		gameID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid game ID '%s'\n", args[0])
			return
		}

		game, err := db.GetGameByID(uint(gameID))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		formatted, err := newReconciler().Formatted(game.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("📊 %s\n", game.Title)
		fmt.Println(strings.Repeat("-", 40))
		fmt.Printf("Total playtime:  %s\n", formatMinutes(formatted.TotalMinutes))
		fmt.Printf("Played today:    %s\n", formatMinutes(formatted.TodayMinutes))
		fmt.Printf("Sessions:        %d\n", formatted.SessionCount)

		lastPlayed := "never"
		if formatted.LastPlayed != nil {
			lastPlayed = time.Unix(*formatted.LastPlayed, 0).Format("2006-01-02 15:04")
		}
		fmt.Printf("Last played:     %s\n", lastPlayed)

		window, _ := cmd.Flags().GetString("days")
		days, err := parser.ParseWindow(window)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Println()
		fmt.Println("Daily playtime:")
		for i, d := range formatted.Daily {
			if i >= days {
				break
			}
			bar := strings.Repeat("█", min(d.Playtime/10, 40))
			fmt.Printf("  %s  %-8s %s\n", d.Date, formatMinutes(d.Playtime), bar)
		}
	}),
}

func init() {
	statsCmd.Flags().String("days", "14", "Recent history window (e.g. 14, 30 days, 2 weeks)")
}
