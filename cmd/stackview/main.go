package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stackview/internal/config"
	"stackview/internal/log"
)

var (
	version = "dev"

	cfgFile string
	debug   bool
	cfg     *config.Config
)

// Entry point for the application
func main() {
	rootCmd := &cobra.Command{
		Use:     "stackview",
		Short:   "A multi-frame image stack viewer",
		Long:    `Stackview displays multi-frame/multi-channel image stacks (microscopy sequences, animations) with slider navigation, lazy per-frame loading and playback.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetDebug(debug)

			var err error
			if cfgFile != "" {
				cfg, err = config.LoadConfigFile(cfgFile)
			} else {
				cfg, err = config.LoadConfig()
			}
			if err != nil {
				log.Warnf("loading configuration: %v", err)
				cfg = config.New()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/stackview/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(infoCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
