package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"movpress/internal/preset"
)

func newPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List available compression presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderPresetTable(cmd.OutOrStdout())
		},
	}
}

func renderPresetTable(out io.Writer) error {
	headers := []string{"Preset", "CRF", "Speed", "Scale", "Description"}
	rows := make([][]string, 0, 4)
	title := cases.Title(language.Und)
	for _, p := range preset.List() {
		scale := p.Scale
		if scale == "" {
			scale = "-"
		}
		rows = append(rows, []string{
			title.String(p.Name),
			strconv.Itoa(p.CRF),
			p.Speed,
			scale,
			p.Description,
		})
	}
	aligns := []columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft}
	fmt.Fprintln(out, renderTable(headers, rows, aligns))
	return nil
}
