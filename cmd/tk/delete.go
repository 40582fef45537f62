package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a ticket",
	Long: `Delete a ticket. Its id is stripped from every other ticket's blocked-by
list in the same write; dependents are otherwise untouched. The id is never
reused.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := svc.Delete(rootCtx, args[0]); err != nil {
			fail(err)
		}
		if jsonOutput {
			outputJSON(map[string]string{"deleted": args[0]})
			return
		}
		fmt.Printf("Deleted %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
