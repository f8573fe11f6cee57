package main

import (
	"github.com/spf13/cobra"
)

const version = "0.1.0"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "wktdiscover",
		Short:        "Discover WebLogic domains into deployment models",
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(newDiscoverCmd(&discoverOptions{}))

	return rootCmd
}
