package cmd

import (
	"fmt"
	"os"

	"follow-check/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command. Called without a subcommand it
// launches the local paste-based web UI.
var RootCmd = &cobra.Command{
	Use:   "follow-check",
	Short: "Instagram reciprocal-follow checker",
	Long: `follow-check compares an account's followers and following lists and
reports who does not follow back. It works offline from Instagram export
JSON (recommended, zero rate limit), against the live API with retry,
backoff, and snapshot fallback, or through a local paste-based web UI
(the default mode).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting. Console
		// format with "debug" level gives ISO8601 timestamps, matching what
		// a CLI user expects.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
