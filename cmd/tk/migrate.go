package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/untoldecay/tickets/internal/migrate"
	"github.com/untoldecay/tickets/internal/types"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the ticket document to the current schema version",
	Long: `Migrate the ticket document to the current schema version.

Migration also runs automatically before every command; this command exists
to migrate explicitly or to inspect the document version with --status.
Each migration step writes a full backup next to the document, suffixed
with the version it migrates away from.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := resolveDocPath(cmd)
		if err != nil {
			fail(err)
		}

		statusOnly, _ := cmd.Flags().GetBool("status")
		if statusOnly {
			st, err := migrate.Check(path)
			if err != nil {
				fail(err)
			}
			if jsonOutput {
				outputJSON(st)
				return
			}
			switch {
			case st.Ahead:
				fmt.Printf("Document version %s is newer than this build (%s); upgrade tk.\n", st.Detected, st.Current)
			case st.Detected == st.Current:
				fmt.Printf("Document is current (%s).\n", st.Current)
			default:
				fmt.Printf("Document at %s; %d step(s) to reach %s.\n", st.Detected, st.Steps, st.Current)
			}
			return
		}

		detected, err := migrate.DetectVersion(path)
		if err != nil {
			fail(err)
		}
		if err := migrate.Run(path); err != nil {
			fail(err)
		}
		if detected == types.CurrentVersion {
			fmt.Printf("Document already at %s; nothing to do.\n", detected)
			return
		}
		fmt.Printf("Migrated %s -> %s (backups written next to %s)\n", detected, types.CurrentVersion, path)
	},
}

func init() {
	migrateCmd.Flags().Bool("status", false, "report the detected version without migrating")
	rootCmd.AddCommand(migrateCmd)
}
