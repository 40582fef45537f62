package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/untoldecay/tickets/internal/types"
	"github.com/untoldecay/tickets/internal/ui"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show ready tickets and what closing each one unblocks",
	Long: `Show ready tickets: not closed, and either unblocked or blocked only by
closed tickets. Each result carries its unblock cascade — the tree of
tickets that become workable as it and its dependents close.`,
	Run: func(cmd *cobra.Command, args []string) {
		project, _ := cmd.Flags().GetString("project")

		ready, err := svc.Next(rootCtx, project)
		if err != nil {
			fail(err)
		}

		if jsonOutput {
			if ready == nil {
				ready = []*types.NextTicket{}
			}
			outputJSON(ready)
			return
		}
		if len(ready) == 0 {
			fmt.Println(ui.HintStyle.Render("Nothing is ready."))
			return
		}
		for i, n := range ready {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("[%s] %s\n", ui.RenderStatus(n.Status), ui.RenderUnblockTree(n))
		}
	},
}

func init() {
	nextCmd.Flags().StringP("project", "p", "", "filter by project membership (case-insensitive)")
	rootCmd.AddCommand(nextCmd)
}
