package main

import (
	"github.com/spf13/cobra"

	"stackview/internal/gui"
)

// viewCmd launches the graphical stack viewer.
func viewCmd() *cobra.Command {
	var separate bool
	var fps float64

	cmd := &cobra.Command{
		Use:   "view [path]",
		Short: "Open the graphical stack viewer",
		Long:  `Open a window showing the stack at path (an image file, an animated GIF, or a directory of frame files) with one slider per navigable axis and play/pause controls.`,
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if cmd.Flags().Changed("separate-channels") {
				cfg.Display.SeparateChannels = separate
			}
			if cmd.Flags().Changed("fps") {
				cfg.Playback.FPS = fps
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			gui.NewApp(cfg).Run(path)
		},
	}

	cmd.Flags().BoolVar(&separate, "separate-channels", false, "split color channels onto their own slider")
	cmd.Flags().Float64Var(&fps, "fps", 0, "playback speed in frames per second")
	return cmd
}
