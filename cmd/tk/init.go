package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/untoldecay/tickets/internal/configfile"
	"github.com/untoldecay/tickets/internal/storage/jsondoc"
	"github.com/untoldecay/tickets/internal/types"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .tickets directory with an empty document",
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fail(err)
		}

		dir := filepath.Join(cwd, ".tickets")
		docPath := filepath.Join(dir, "tickets.json")
		if _, err := os.Stat(docPath); err == nil {
			fmt.Printf("Already initialized: %s\n", docPath)
			return
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			fail(err)
		}

		store := jsondoc.New(docPath, time.Second)
		if err := store.Save(types.NewDocument()); err != nil {
			fail(err)
		}

		if _, err := os.Stat(configfile.Path(dir)); os.IsNotExist(err) {
			if err := configfile.Save(dir, &configfile.ProjectConfig{}); err != nil {
				fail(err)
			}
		}

		fmt.Printf("Initialized empty ticket document at %s (schema %s)\n", docPath, types.CurrentVersion)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
