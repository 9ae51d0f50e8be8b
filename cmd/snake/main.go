// snake is a terminal snake game with a bounded number of retries per game.
//
// Usage:
//
//	snake play               - Play a game
//	snake scores             - Show the leaderboard and stats
//	snake speeds             - List the speed presets
//	snake config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Use a custom config YAML
//	--db <path>         - Set database path (default: ~/.snake/scores.db)
//	--log-file <path>   - Set log file for the game screen (default: ~/.snake/snake.log)
//	--log-level <level> - Set log level: debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake - a terminal snake game with ten lives",
	Long: `Snake is a terminal snake game. Hitting a wall or your own tail costs
one of your retries ("NG"); the round restarts after a short pause. Use up all
retries and the game is over.

Available commands:
  play     - Play a game
  scores   - View the leaderboard
  speeds   - List speed presets
  config   - Print the effective configuration

Examples:
  snake play
  snake play --speed fast
  snake scores --limit 20
  snake config > ~/.snake/configs/snake.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.snake/snake.log", "Log file used while the game screen is open")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(speedsCmd)
	rootCmd.AddCommand(configCmd)
}
