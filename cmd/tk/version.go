package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/untoldecay/tickets/internal/types"
)

// appVersion is overridden at build time via -ldflags.
var appVersion = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if jsonOutput {
			outputJSON(map[string]string{
				"version": appVersion,
				"schema":  types.CurrentVersion,
			})
			return
		}
		fmt.Printf("tk %s (document schema %s)\n", appVersion, types.CurrentVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
