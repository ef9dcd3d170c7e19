package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render(err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cinescout",
		Short: "Movie search relay and frontends",
		Long: "CineScout relays movie searches to TMDb and serves them to a terminal UI,\n" +
			"a Telegram bot, and MCP clients.",
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/cinescout.yaml", "path to configuration file")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(),
		newSearchCmd(),
		newLookupCmd(),
		newBotCmd(),
		newMCPServeCmd(),
		newConfigCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("CineScout v%s\n", version)
		},
	}
}
