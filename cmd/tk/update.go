package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/untoldecay/tickets/internal/types"
	"github.com/untoldecay/tickets/internal/ui"
)

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update one or more tickets",
	Long: `Update a ticket's fields. Set fields replace the stored value wholesale:
--blocked-by with no value clears the dependency list.

With --file (or --file -), applies a batch of updates from a JSON array.
The batch is atomic: one invalid update rejects the whole batch untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		if file != "" {
			runUpdateBatch(file)
			return
		}

		if len(args) != 1 {
			fail(fmt.Errorf("exactly one ticket id required (or use --file for batch input)"))
		}

		u := types.TicketUpdate{ID: args[0]}
		if cmd.Flags().Changed("title") {
			s, _ := cmd.Flags().GetString("title")
			u.Title = &s
		}
		if cmd.Flags().Changed("description") {
			s, _ := cmd.Flags().GetString("description")
			u.Description = &s
		}
		if cmd.Flags().Changed("project") {
			ps, _ := cmd.Flags().GetStringSlice("project")
			u.Projects = &ps
		}
		if cmd.Flags().Changed("blocked-by") {
			bs, _ := cmd.Flags().GetStringSlice("blocked-by")
			u.BlockedBy = &bs
		}
		if cmd.Flags().Changed("status") {
			s, _ := cmd.Flags().GetString("status")
			status := types.Status(s)
			u.Status = &status
		}

		t, err := svc.Update(rootCtx, u)
		if err != nil {
			fail(err)
		}
		if jsonOutput {
			outputJSON(t)
			return
		}
		fmt.Printf("Updated %s\n", ui.RenderTicketLine(t))
	},
}

func runUpdateBatch(file string) {
	var data []byte
	var err error
	if file == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		fail(err)
	}

	var updates []types.TicketUpdate
	if err := json.Unmarshal(data, &updates); err != nil {
		fail(fmt.Errorf("parsing batch input: %w", err))
	}

	updated, err := svc.UpdateBatch(rootCtx, updates)
	if err != nil {
		fail(err)
	}
	if jsonOutput {
		outputJSON(updated)
		return
	}
	fmt.Printf("Updated %d ticket(s)\n", len(updated))
	for _, t := range updated {
		fmt.Printf("  %s\n", ui.RenderTicketLine(t))
	}
}

func init() {
	updateCmd.Flags().StringP("title", "t", "", "new title")
	updateCmd.Flags().StringP("description", "d", "", "new description")
	updateCmd.Flags().StringSliceP("project", "p", nil, "replacement project list")
	updateCmd.Flags().StringSliceP("blocked-by", "b", nil, "replacement blocked-by list")
	updateCmd.Flags().StringP("status", "s", "", "new status (open | in-progress | closed)")
	updateCmd.Flags().String("file", "", "apply a batch of updates from a JSON array file ('-' for stdin)")
	rootCmd.AddCommand(updateCmd)
}
