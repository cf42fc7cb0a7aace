package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yumesaka/playtrack/internal/db"
	"github.com/yumesaka/playtrack/internal/models"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions [game-id]",
	Short: "List recorded play sessions",
	Long:  "List recorded play sessions, newest first. With a game ID, only that game's sessions are shown.",
	Args:  cobra.MaximumNArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		var sessions []models.Session
		var err error
		if len(args) == 1 {
			gameID, parseErr := strconv.ParseUint(args[0], 10, 32)
			if parseErr != nil {
				fmt.Printf("Error: invalid game ID '%s'\n", args[0])
				return
			}
			sessions, err = db.ListSessions(uint(gameID), limit, 0)
		} else {
			sessions, err = db.ListRecentSessions(limit)
		}
		if err != nil {
			fmt.Printf("Error fetching sessions: %v\n", err)
			return
		}

		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet.")
			return
		}

		fmt.Printf("%-6s %-5s %-12s %-7s %-7s %s\n", "ID", "GAME", "DATE", "START", "END", "DURATION")
		fmt.Println(strings.Repeat("-", 52))

		for _, s := range sessions {
			fmt.Printf("%-6d %-5d %-12s %-7s %-7s %s\n",
				s.ID,
				s.GameID,
				s.Date,
				time.Unix(s.StartTime, 0).Format("15:04"),
				time.Unix(s.EndTime, 0).Format("15:04"),
				formatMinutes(s.DurationMinutes))
		}
	}),
}

func init() {
	sessionsCmd.Flags().Int("limit", 20, "Maximum number of sessions to show")
}
