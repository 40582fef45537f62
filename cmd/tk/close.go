package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/untoldecay/tickets/internal/types"
	"github.com/untoldecay/tickets/internal/ui"
)

var closeCmd = &cobra.Command{
	Use:   "close <id>...",
	Short: "Close one or more tickets",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		status := types.StatusClosed
		updates := make([]types.TicketUpdate, 0, len(args))
		for _, id := range args {
			updates = append(updates, types.TicketUpdate{ID: id, Status: &status})
		}

		// One batch: closing several tickets is all-or-nothing too.
		closed, err := svc.UpdateBatch(rootCtx, updates)
		if err != nil {
			fail(err)
		}
		if jsonOutput {
			outputJSON(closed)
			return
		}
		for _, t := range closed {
			fmt.Printf("Closed %s\n", ui.RenderTicketLine(t))
		}
	},
}

func init() {
	rootCmd.AddCommand(closeCmd)
}
