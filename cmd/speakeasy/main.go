package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/speakeasy/internal/cli"
	"codeberg.org/snonux/speakeasy/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	proc := processor.NewProcessor(flags)
	proc.ConfigureLogging()

	// Handle the listing flags
	if flags.ListLanguages {
		return processor.ListLanguages(cmd.OutOrStdout())
	}
	if flags.ListVoices {
		return proc.ListVoices(cmd.OutOrStdout())
	}

	// No listing requested - launch the GUI
	log.Debug("Starting GUI")
	return proc.RunGUIMode()
}
