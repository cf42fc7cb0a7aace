package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yumesaka/playtrack/internal/db"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Register a game in the library",
	Long: `Register a game so its playtime can be tracked.

Examples:
  playtrack add "Clannad" --exe "C:/Games/Clannad/game.exe"
  playtrack add "Aokana" --exe ./aokana.exe --save ./savedata --auto-backup`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		exePath, _ := cmd.Flags().GetString("exe")
		savePath, _ := cmd.Flags().GetString("save")
		autoBackup, _ := cmd.Flags().GetBool("auto-backup")
		maxBackups, _ := cmd.Flags().GetInt("max-backups")

		if autoBackup && savePath == "" {
			fmt.Println("Error: --auto-backup requires --save to point at the save directory")
			return
		}

		game, err := db.CreateGame(db.CreateGameRequest{
			Title:      args[0],
			ExePath:    exePath,
			SavePath:   savePath,
			AutoBackup: autoBackup,
			MaxBackups: maxBackups,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("🎮 Added \"%s\" - ID: %d\n", game.Title, game.ID)
	}),
}

var removeCmd = &cobra.Command{
	Use:   "remove <game-id>",
	Short: "Remove a game and all of its recorded playtime",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string) {
		gameID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid game ID '%s'\n", args[0])
			return
		}

		if err := db.RemoveGame(uint(gameID)); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("🗑️  Removed game #%d\n", gameID)
	}),
}

func init() {
	addCmd.Flags().String("exe", "", "Path to the game executable")
	addCmd.Flags().String("save", "", "Path to the save-data directory")
	addCmd.Flags().Bool("auto-backup", false, "Back up save data after each session")
	addCmd.Flags().Int("max-backups", 0, "Backups kept per game (default 20)")
}
