package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"voice-assistant/config"
	"voice-assistant/internal/application"
	"voice-assistant/internal/infra/console"
)

func newAskCmd(configPath *string) *cobra.Command {
	var speak bool

	cmd := &cobra.Command{
		Use:   "ask <phrase...>",
		Short: "Run one command cycle for a typed phrase",
		Example: `  assistant ask what time is it
  assistant ask --speak tell me a joke`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			keywords, err := cfg.KeywordTable()
			if err != nil {
				return err
			}

			logger := setupLogger(cfg.Log, os.Stderr)

			out := application.Outputs{
				Display: console.NewSink(cmd.OutOrStdout()),
				Speech:  &application.NoopSink{},
			}
			if speak {
				out.Speech = buildSpeech(cfg.Speech, logger)
			}

			dispatcher := application.NewDispatcher(buildActions(cfg.Actions), cfg.ActionParams(), out, logger)
			assistant := application.NewAssistant(
				nil,
				&application.NoopSTT{},
				application.NewMatcher(keywords),
				dispatcher,
				out,
				nil,
				logger,
			)

			assistant.HandleTranscript(cmd.Context(), strings.Join(args, " "))
			return nil
		},
	}
	cmd.Flags().BoolVar(&speak, "speak", false, "also speak the answer when speech is enabled")
	return cmd
}
