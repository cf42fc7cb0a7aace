package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/yumesaka/playtrack/internal/backup"
	"github.com/yumesaka/playtrack/internal/db"
	"github.com/yumesaka/playtrack/internal/launcher"
	"github.com/yumesaka/playtrack/internal/tracker"
	"github.com/yumesaka/playtrack/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play <game-id>",
	Short: "Launch a game and track the play session",
	Long: `Launch a game's executable and track the session until the process
exits. Opens a live timer by default, use --no-ui for plain output.

Examples:
  playtrack play 42         # Launch with live timer UI
  playtrack play 42 --no-ui # Launch without UI`,
	Args: cobra.ExactArgs(1),
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

		bus := tracker.NewBus()
		backups := backup.NewManager(cfg.Backup.Root, game.MaxBackups, logger)

		recorded := make(chan int, 1)
		listener := tracker.NewListener(
			db.Store{},
			newReconciler(),
			backups.Backup,
			tracker.Hooks{
				OnSessionEnd: func(id uint, minutes int) {
					recorded <- minutes
				},
			},
			time.Local,
			logger,
		)
		detach := listener.Attach(bus)
		defer detach()

		launchErr := make(chan error, 1)
		go func() {
			launchErr <- launcher.New(bus, logger).Run(game)
		}()

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			fmt.Printf("🎮 Launched \"%s\", tracking session...\n", game.Title)
		} else {
			minutes, err := tui.RunSessionTUI(game, bus, recorded)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
			}
			if minutes >= 0 {
				printOutcome(game.Title, minutes)
				return
			}
			// Detached or UI error: fall through and wait headless.
		}

		if err := <-launchErr; err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		printOutcome(game.Title, <-recorded)
	}),
}

// printOutcome reports the session result, distinguishing sessions
// discarded by the minimum-duration gate.
func printOutcome(title string, minutes int) {
	if minutes <= 0 {
		fmt.Printf("⏹️  Session for \"%s\" was under a minute, nothing recorded.\n", title)
		return
	}
	fmt.Printf("⏹️  Session for \"%s\" recorded: %s\n", title, formatMinutes(minutes))
}

func init() {
	playCmd.Flags().Bool("no-ui", false, "Track the session without the live timer UI")
}
