// Package cli holds the eduvox command line: offline fluency analysis of
// transcripts and gateway token minting.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/eduvox/backend/pkg/logger"
)

type app struct {
	verbose bool
	quiet   bool
	log     *slog.Logger
}

func NewRootCommand() *cobra.Command {
	a := &app{log: logger.Discard()}

	root := &cobra.Command{
		Use:   "eduvox",
		Short: "Analyse speech fluency from transcripts",
		Long: `eduvox scores speech transcripts for pauses, repetitions, filler words
and speaking rate, and writes a fluency report.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.setupLogging()
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")

	root.AddCommand(
		a.newAnalyzeCommand(),
		a.newBatchCommand(),
		a.newTokenCommand(),
	)

	return root
}

func (a *app) setupLogging() {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	if a.quiet {
		level = slog.LevelError
	}

	a.log = logger.New(logger.Config{
		Level:  level,
		Output: os.Stderr,
	})
}
