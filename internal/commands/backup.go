package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yumesaka/playtrack/internal/backup"
	"github.com/yumesaka/playtrack/internal/db"
)

var backupCmd = &cobra.Command{
	Use:   "backup <game-id>",
	Short: "Back up a game's save data",
	Long: `Archive a game's save-data directory into the backup root. The oldest
archives beyond the game's backup cap are pruned.

Examples:
  playtrack backup 42          # Create a backup now
  playtrack backup 42 --list   # Show existing backups`,
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

		manager := backup.NewManager(cfg.Backup.Root, game.MaxBackups, logger)

		listOnly, _ := cmd.Flags().GetBool("list")
		if listOnly {
			backups, err := manager.List(game.ID)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			if len(backups) == 0 {
				fmt.Printf("No backups for \"%s\" yet.\n", game.Title)
				return
			}

			fmt.Printf("%-42s %-17s %s\n", "ARCHIVE", "CREATED", "SIZE")
			fmt.Println(strings.Repeat("-", 70))
			for _, b := range backups {
				fmt.Printf("%-42s %-17s %.1f KiB\n",
					b.FileName,
					time.Unix(b.BackupTime, 0).Format("2006-01-02 15:04"),
					float64(b.FileSize)/1024)
			}
			return
		}

		if game.SavePath == "" {
			fmt.Printf("Error: game #%d has no save directory configured\n", game.ID)
			return
		}

		info, err := manager.Create(game.ID, game.SavePath, false)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("💾 Backed up \"%s\" to %s (%.1f KiB)\n", game.Title, info.FileName, float64(info.FileSize)/1024)
	}),
}

func init() {
	backupCmd.Flags().Bool("list", false, "List existing backups instead of creating one")
}
