package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yumesaka/playtrack/internal/config"
	"github.com/yumesaka/playtrack/internal/db"
	"github.com/yumesaka/playtrack/internal/stats"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	cfg    *config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "playtrack",
	Short: "A CLI game library playtime tracker",
	Long: `playtrack is a command-line tool that tracks how long you play the games
in your library. Launch games through it, and it records sessions, daily
playtime statistics, and optional save-data backups.`,
}

// initApp loads config, builds the logger, and opens the database;
// panics on failure
func initApp() {
	var err error
	cfg, err = config.LoadDefault()
	if err != nil {
		panic(err)
	}

	logger = setupLogger(cfg.Logging)

	if err := db.Open(cfg.Storage.DatabasePath); err != nil {
		panic(err)
	}
}

// withApp wraps a command function to initialize the app first
func withApp(fn func(*cobra.Command, []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		initApp()
		fn(cmd, args)
	}
}

// setupLogger builds the root logger from config
func setupLogger(lc config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch lc.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if lc.Format == "json" {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// newReconciler builds the statistics reconciler over the live
// database with the system clock.
func newReconciler() *stats.Reconciler {
	return stats.NewReconciler(db.Store{}, stats.RealClock{}, time.Local, logger)
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("playtrack %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	// Add subcommands here
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(recomputeCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
