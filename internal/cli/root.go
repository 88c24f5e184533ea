package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/pgstar/pkg/pgstar"
)

var rootCmd = &cobra.Command{
	Use:   "pgstar",
	Short: "Load song and event-log JSON into a PostgreSQL star schema",
	Long: `pgstar reads song-metadata and event-log JSON-lines files from two directory
trees and loads them into a PostgreSQL star schema:

  songplays (fact)  songs, artists, time, users (dimensions)

Every file is committed in its own transaction. The first malformed record
or rejected insert stops the run; files committed before it stay committed.

Settings are read from flags, environment variables, a .env file and
pgstar.yaml in the working directory, in that order of precedence.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Database connection failed
  12 - Data directory missing or not traversable
  13 - Malformed record in a data file
  14 - Insert or commit rejected by the database`,
	SilenceUsage:      true,
	PersistentPreRunE: loadDotEnv,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for pgstar")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("config", "",
		"Path to a project file (default: ./pgstar.yaml when present)")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", err, pgstar.ErrUsage)
	})
}

// loadDotEnv loads .env from the working directory. Variables already set
// in the environment win.
func loadDotEnv(cmd *cobra.Command, args []string) error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load .env: %w", err)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return ""
	}
	return path
}
