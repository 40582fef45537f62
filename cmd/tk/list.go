package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/untoldecay/tickets/internal/timeparsing"
	"github.com/untoldecay/tickets/internal/types"
	"github.com/untoldecay/tickets/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tickets, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		project, _ := cmd.Flags().GetString("project")
		status, _ := cmd.Flags().GetString("status")
		dependsOn, _ := cmd.Flags().GetString("depends-on")
		search, _ := cmd.Flags().GetString("search")
		since, _ := cmd.Flags().GetString("since")

		if status != "" && !types.Status(status).IsValid() {
			fail(fmt.Errorf("invalid status %q (must be open, in-progress, or closed)", status))
		}

		filter := types.TicketFilter{
			Project:   project,
			Status:    types.Status(status),
			DependsOn: dependsOn,
			Search:    search,
		}
		if since != "" {
			t, err := timeparsing.Parse(since, time.Now())
			if err != nil {
				fail(err)
			}
			filter.Since = &t
		}

		ts, err := svc.List(rootCtx, filter)
		if err != nil {
			fail(err)
		}

		if jsonOutput {
			if ts == nil {
				ts = []*types.Ticket{}
			}
			outputJSON(ts)
			return
		}
		if len(ts) == 0 {
			fmt.Println(ui.HintStyle.Render("No matching tickets."))
			return
		}
		for _, t := range ts {
			fmt.Println(ui.RenderTicketLine(t))
		}
	},
}

func init() {
	listCmd.Flags().StringP("project", "p", "", "filter by project membership (case-insensitive)")
	listCmd.Flags().StringP("status", "s", "", "filter by status")
	listCmd.Flags().String("depends-on", "", "filter to tickets blocked by the given id")
	listCmd.Flags().String("search", "", "fuzzy match against titles")
	listCmd.Flags().String("since", "", "only tickets created at or after this time (RFC 3339 or natural language)")
	rootCmd.AddCommand(listCmd)
}
