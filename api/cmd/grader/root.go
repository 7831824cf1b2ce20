package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grader",
		Short: "Grade student answers against a model answer",
		Long: `grader scores a student's answer against a model answer with BLEU and
ROUGE (1, 2, L) and asks a language model (Gemini or any OpenAI-compatible
endpoint) for short written feedback.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newServeCommand(debugLogging))
	cmd.AddCommand(newScoreCommand())
	return cmd
}
