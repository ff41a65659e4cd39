package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"movpress/internal/encoding"
	"movpress/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent compressions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "History is disabled; enable [history] in the config to record compressions.")
				return nil
			}

			store, err := history.Open(cfg.HistoryPath())
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No compressions recorded yet.")
				return nil
			}

			headers := []string{"When", "Source", "Input", "Preset", "CRF", "Size", "Saved"}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				saved := (1 - entry.Ratio) * 100
				rows = append(rows, []string{
					entry.CreatedAt.Local().Format("2006-01-02 15:04"),
					entry.Source,
					entry.InputName,
					entry.Preset,
					strconv.Itoa(entry.CRF),
					fmt.Sprintf("%s -> %s", encoding.FormatBytes(entry.InputBytes), encoding.FormatBytes(entry.OutputBytes)),
					fmt.Sprintf("%.1f%%", saved),
				})
			}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignRight}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries to show")

	return cmd
}
