package main

import (
	"github.com/spf13/cobra"
)

type compressFlags struct {
	preset      string
	crf         int
	scale       string
	fps         int
	codec       string
	output      string
	listPresets bool
	verbose     bool
}

func newRootCommand() *cobra.Command {
	var configFlag string
	flags := &compressFlags{}

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "movpress INPUT",
		Short:         "Compress .mov screen recordings with ffmpeg presets",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.listPresets {
				return renderPresetTable(cmd.OutOrStdout())
			}
			if len(args) == 0 {
				return cmd.Help()
			}
			return runCompress(cmd, ctx, args[0], flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.Flags().StringVarP(&flags.preset, "preset", "p", "", "Compression preset (high, medium, low, web)")
	rootCmd.Flags().IntVar(&flags.crf, "crf", 0, "CRF override (0-51, lower is higher quality)")
	rootCmd.Flags().StringVar(&flags.scale, "scale", "", "Scale override, e.g. 1280:-2 for 720p")
	rootCmd.Flags().IntVar(&flags.fps, "fps", 0, "Target frame rate")
	rootCmd.Flags().StringVar(&flags.codec, "codec", "", "Video codec (h264 or h265)")
	rootCmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path")
	rootCmd.Flags().BoolVar(&flags.listPresets, "list-presets", false, "List available presets and exit")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log encoder progress to stdout")

	rootCmd.AddCommand(newPresetsCommand())
	rootCmd.AddCommand(newDoctorCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
