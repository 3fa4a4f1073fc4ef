package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"stackview/internal/imgio"
	"stackview/internal/stack"
)

// infoCmd prints stack metadata without decoding pixel data.
func infoCmd() *cobra.Command {
	var separate bool

	cmd := &cobra.Command{
		Use:   "info <path>",
		Short: "Print stack metadata",
		Long:  `Describe the stack at path: frame dimensions, bands, frame count and the navigable axes. Only headers are read; no pixel data is decoded.`,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			reader, err := imgio.Open(args[0], cfg.Sequence.Pattern)
			if err != nil {
				fmt.Printf("Error opening %s: %v\n", args[0], err)
				os.Exit(1)
			}
			src, err := stack.NewFile(reader)
			if err != nil {
				fmt.Printf("Error opening %s: %v\n", args[0], err)
				os.Exit(1)
			}
			axes, err := stack.Describe(src, separate)
			if err != nil {
				fmt.Printf("Error describing %s: %v\n", args[0], err)
				os.Exit(1)
			}

			w, h := src.Size()
			fmt.Printf("path:   %s\n", args[0])
			fmt.Printf("size:   %dx%d\n", w, h)
			fmt.Printf("bands:  %s\n", strings.Join(reader.Bands(), ", "))
			fmt.Printf("frames: %d\n", reader.Frames())
			if len(axes) == 0 {
				fmt.Println("axes:   none (single flat frame)")
				return
			}
			fmt.Println("axes:")
			for i, a := range axes {
				fmt.Printf("  %d: %s (size %d)\n", i, a.Kind, a.Size)
			}
		},
	}

	cmd.Flags().BoolVar(&separate, "separate-channels", false, "describe with color channels split onto their own axis")
	return cmd
}
