package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	configPath string
	logFile    string
	verbose    bool

	logger    = slog.New(slog.NewTextHandler(io.Discard, nil))
	logCloser io.Closer
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "fashionous",
	Version: Version,
	Short:   "Find your perfect blouse from the terminal",
	Long: `Fashionous asks four quick questions (fabric, occasion, neckline, sleeve)
and shows the best matching blouses from the Fashionous catalog.
Answer with the keyboard or, with a voice engine configured, by speaking.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupLogging,
	PersistentPostRunE: closeLogging,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	err := RootCmd.Execute()
	var cliErr *CLIError
	if errors.As(err, &cliErr) && cliErr.Hint != "" {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", cliErr.Hint)
	}
	return err
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./fashionous.yaml)")
	RootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	RootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

// setupLogging routes slog output to --log-file. Without one, logs are
// discarded so they never draw over the TUI.
func setupLogging(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if logFile == "" {
		logger = slog.New(slog.NewTextHandler(io.Discard, opts))
		return nil
	}

	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logCloser = f
	logger = slog.New(slog.NewTextHandler(f, opts))
	return nil
}

func closeLogging(cmd *cobra.Command, args []string) error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}
