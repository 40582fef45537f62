// Command tk is a dependency-aware ticket tracker backed by a single JSON
// document. Tickets block each other through a directed blocked-by relation
// that is kept acyclic across every mutation.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/untoldecay/tickets/internal/config"
	"github.com/untoldecay/tickets/internal/debug"
	"github.com/untoldecay/tickets/internal/migrate"
	"github.com/untoldecay/tickets/internal/storage"
	"github.com/untoldecay/tickets/internal/storage/jsondoc"
	"github.com/untoldecay/tickets/internal/tickets"
	"github.com/untoldecay/tickets/internal/utils"
)

var (
	rootCtx    = context.Background()
	docStore   storage.Store
	svc        *tickets.Service
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "tk",
	Short: "Dependency-aware ticket tracking",
	Long: `tk tracks work items linked by a blocked-by dependency relation.

The blocked-by graph is kept structurally sound (no self-references, no
cycles) across every mutation, and 'tk next' surfaces the tickets that are
ready to work on along with everything each one unblocks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if cmd.Flags().Changed("json") {
			jsonOutput, _ = cmd.Flags().GetBool("json")
		} else {
			jsonOutput = config.GetBool("json")
		}

		if !needsStore(cmd) {
			return nil
		}

		path, err := resolveDocPath(cmd)
		if err != nil {
			return err
		}

		// Migration runs once, before the ticket service accepts any call.
		// Operating on an unmigrated document is unsafe, so failure here is
		// fatal to the whole invocation.
		if err := migrate.Run(path); err != nil {
			return fmt.Errorf("migrating %s: %w", path, err)
		}

		docStore = jsondoc.New(path, config.LockTimeout())
		svc = tickets.NewService(docStore)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// needsStore reports whether a command operates on the ticket document.
// init creates the document itself, and migrate manages its own access.
func needsStore(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "tk", "init", "migrate", "help", "completion", "version":
		return false
	}
	return true
}

// resolveDocPath locates the ticket document: --db flag, then TK_DB/config,
// then a .tickets/tickets.json found by walking up from the working
// directory.
func resolveDocPath(cmd *cobra.Command) (string, error) {
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		return utils.CanonicalizePath(db), nil
	}
	if db := config.GetString("db"); db != "" {
		return utils.CanonicalizePath(db), nil
	}
	dir, err := findTicketsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "tickets.json"), nil
}

// findTicketsDir walks up from CWD looking for a .tickets directory.
func findTicketsDir() (string, error) {
	if envDir := os.Getenv("TICKETS_DIR"); envDir != "" {
		return utils.CanonicalizePath(envDir), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	for dir := cwd; ; dir = filepath.Dir(dir) {
		candidate := filepath.Join(dir, ".tickets")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		if dir == filepath.Dir(dir) {
			break
		}
	}
	return "", fmt.Errorf("no .tickets directory found (hint: run 'tk init' first or set TICKETS_DIR)")
}

// outputJSON writes v as indented JSON to stdout.
func outputJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

// fail prints the error and exits non-zero.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func main() {
	rootCmd.PersistentFlags().Bool("json", false, "output as JSON")
	rootCmd.PersistentFlags().String("db", "", "path to the ticket document (default: nearest .tickets/tickets.json)")

	if err := rootCmd.Execute(); err != nil {
		debug.Logf("command failed: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
