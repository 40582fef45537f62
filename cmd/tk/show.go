package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/untoldecay/tickets/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a ticket",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		t, err := svc.Get(rootCtx, args[0])
		if err != nil {
			fail(err)
		}
		if jsonOutput {
			outputJSON(t)
			return
		}
		fmt.Println(ui.RenderTicket(t))
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
