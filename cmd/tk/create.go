package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/untoldecay/tickets/internal/tickets"
	"github.com/untoldecay/tickets/internal/ui"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create one or more tickets",
	Long: `Create one or more tickets.

With --title, creates a single ticket from flags. With --file (or --file -),
creates a batch from a JSON array; the batch is all-or-nothing, and batch
items cannot name each other as dependencies because none of them exist
until the whole batch validates. With no flags on a terminal, opens an
interactive form.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		if file != "" {
			runCreateBatch(file)
			return
		}

		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		projects, _ := cmd.Flags().GetStringSlice("project")
		blockedBy, _ := cmd.Flags().GetStringSlice("blocked-by")

		if title == "" {
			if !ui.IsTerminal() {
				fail(fmt.Errorf("--title is required (or use --file for batch input)"))
			}
			in, err := runCreateForm()
			if err != nil {
				fail(err)
			}
			createOne(*in)
			return
		}

		createOne(tickets.CreateInput{
			Title:       title,
			Description: description,
			Projects:    projects,
			BlockedBy:   blockedBy,
		})
	},
}

func createOne(in tickets.CreateInput) {
	t, err := svc.Create(rootCtx, in)
	if err != nil {
		fail(err)
	}
	if jsonOutput {
		outputJSON(t)
		return
	}
	fmt.Printf("Created %s\n", ui.RenderTicketLine(t))
}

func runCreateBatch(file string) {
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

	var items []tickets.CreateInput
	if err := json.Unmarshal(data, &items); err != nil {
		fail(fmt.Errorf("parsing batch input: %w", err))
	}

	created, err := svc.CreateBatch(rootCtx, items)
	if err != nil {
		fail(err)
	}
	if jsonOutput {
		outputJSON(created)
		return
	}
	fmt.Printf("Created %d ticket(s)\n", len(created))
	for _, t := range created {
		fmt.Printf("  %s\n", ui.RenderTicketLine(t))
	}
}

// createFormRawInput holds the raw string values from the form UI before
// parsing, so the creation logic stays testable without the form.
type createFormRawInput struct {
	Title       string
	Description string
	Projects    string // comma-separated
	BlockedBy   string // comma-separated ticket ids
}

func runCreateForm() (*tickets.CreateInput, error) {
	var raw createFormRawInput

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&raw.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Description").
				Value(&raw.Description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Projects").
				Description("Comma-separated project names").
				Value(&raw.Projects),
			huh.NewInput().
				Title("Blocked by").
				Description("Comma-separated ticket ids that must close first").
				Value(&raw.BlockedBy),
		),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}
	return parseCreateFormInput(&raw), nil
}

func parseCreateFormInput(raw *createFormRawInput) *tickets.CreateInput {
	return &tickets.CreateInput{
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
		Projects:    splitCommaList(raw.Projects),
		BlockedBy:   splitCommaList(raw.BlockedBy),
	}
}

func splitCommaList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func init() {
	createCmd.Flags().StringP("title", "t", "", "ticket title")
	createCmd.Flags().StringP("description", "d", "", "ticket description")
	createCmd.Flags().StringSliceP("project", "p", nil, "project membership (repeatable)")
	createCmd.Flags().StringSliceP("blocked-by", "b", nil, "ids of tickets that must close first (repeatable)")
	createCmd.Flags().String("file", "", "create a batch from a JSON array file ('-' for stdin)")
	rootCmd.AddCommand(createCmd)
}
