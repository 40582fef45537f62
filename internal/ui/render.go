package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/untoldecay/tickets/internal/types"
)

// RenderTicketLine formats one ticket as a single list row.
func RenderTicketLine(t *types.Ticket) string {
	var b strings.Builder
	b.WriteString(RenderID(t.ID))
	b.WriteString("  ")
	b.WriteString(fmt.Sprintf("[%s]", RenderStatus(t.Status)))
	b.WriteString("  ")
	b.WriteString(t.Title)
	if len(t.Projects) > 0 {
		b.WriteString("  ")
		b.WriteString(HintStyle.Render("(" + strings.Join(t.Projects, ", ") + ")"))
	}
	return b.String()
}

// RenderTicket formats the full detail view for tk show. The description is
// rendered as markdown when stdout is a TTY.
func RenderTicket(t *types.Ticket) string {
	var b strings.Builder
	b.WriteString(RenderID(t.ID))
	b.WriteString("  ")
	b.WriteString(TitleStyle.Render(t.Title))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Status:   %s\n", RenderStatus(t.Status)))
	if len(t.Projects) > 0 {
		b.WriteString(fmt.Sprintf("Projects: %s\n", strings.Join(t.Projects, ", ")))
	}
	if len(t.BlockedBy) > 0 {
		b.WriteString(fmt.Sprintf("Blocked by: %s\n", strings.Join(t.BlockedBy, ", ")))
	}
	b.WriteString(fmt.Sprintf("Created:  %s\n", t.CreatedAt.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Updated:  %s\n", t.UpdatedAt.Format("2006-01-02 15:04")))
	if t.Description != "" {
		b.WriteString("\n")
		b.WriteString(RenderMarkdown(t.Description))
	}
	return b.String()
}

// RenderMarkdown renders markdown for terminal display, falling back to the
// raw text when not on a TTY or when rendering fails.
func RenderMarkdown(md string) string {
	if !IsTerminal() {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(GetWidth()),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// RenderUnblockTree renders the unblock cascade of a ready ticket.
func RenderUnblockTree(n *types.NextTicket) string {
	root := tree.New().Root(RenderID(n.ID) + "  " + n.Title)
	root.EnumeratorStyle(lipgloss.NewStyle().Foreground(ColorAccent))
	for _, child := range n.Unblocks {
		root.Child(buildTreeNode(child))
	}
	return root.String()
}

func buildTreeNode(n *types.TreeNode) *tree.Tree {
	t := tree.New().Root(RenderID(n.ID) + "  " + n.Title)
	t.EnumeratorStyle(lipgloss.NewStyle().Foreground(ColorAccent))
	for _, child := range n.Unblocks {
		t.Child(buildTreeNode(child))
	}
	return t
}
