package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"voice-assistant/config"
	"voice-assistant/internal/domain"
)

func newKeywordsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "keywords",
		Short: "Print the effective keyword table in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			table, err := cfg.KeywordTable()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "INTENT\tPHRASES")
			for _, intent := range domain.EvaluationOrder() {
				fmt.Fprintf(tw, "%s\t%s\n", intent, strings.Join(quoteAll(table.Phrases(intent)), ", "))
			}
			return tw.Flush()
		},
	}
}

func quoteAll(phrases []string) []string {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = fmt.Sprintf("%q", p)
	}
	return quoted
}
