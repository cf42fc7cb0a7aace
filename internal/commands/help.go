package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for playtrack",
	Long:  `Display detailed help for all playtrack commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
██████╗ ██╗      █████╗ ██╗   ██╗████████╗██████╗  █████╗  ██████╗██╗  ██╗
██╔══██╗██║     ██╔══██╗╚██╗ ██╔╝╚══██╔══╝██╔══██╗██╔══██╗██╔════╝██║ ██╔╝
██████╔╝██║     ███████║ ╚████╔╝    ██║   ██████╔╝███████║██║     █████╔╝
██╔═══╝ ██║     ██╔══██║  ╚██╔╝     ██║   ██╔══██╗██╔══██║██║     ██╔═██╗
██║     ███████╗██║  ██║   ██║      ██║   ██║  ██║██║  ██║╚██████╗██║  ██╗
╚═╝     ╚══════╝╚═╝  ╚═╝   ╚═╝      ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝ ╚═════╝╚═╝  ╚═╝

playtrack - CLI Game Playtime Tracker

COMMANDS:

  add <title>             Register a game in the library
    --exe                 Path to the game executable
    --save                Path to the save-data directory
    --auto-backup         Back up save data after each session
    --max-backups         Backups kept per game (default 20)

  remove <id>             Remove a game and its recorded playtime

  ls                      List games with playtime and last played

  play <id>               Launch a game and track the session
    --no-ui               Track without the live timer UI

    Sessions shorter than a minute are discarded; a session that
    crosses midnight is split between both days.

    Timer keys:
      q/esc         Detach the UI (tracking continues)

  stats <id>              Show playtime statistics for a game
    --days                Recent history window: a day count, X days,
                          X weeks, or X months (default 14)

  sessions [id]           List recorded sessions, newest first
    --limit               Maximum sessions shown (default 20)

  recompute [id]          Rebuild statistics from the session log

  backup <id>             Back up a game's save data now
    --list                List existing backups

  version                 Show version information
  help                    Show this help

Configuration lives in ~/.playtrack/config.yaml.

`)
}
