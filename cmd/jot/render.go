package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/aretw0/jot/pkg/core"
)

const previewLen = 40

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Padding(0, 1)
	dateStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// renderNotes writes notes as a rounded table: short id, creation date,
// title and a one-line content preview.
func renderNotes(w io.Writer, notes []core.Note) {
	if len(notes) == 0 {
		fmt.Fprintln(w, emptyStyle.Render("No notes found."))
		return
	}

	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		rows = append(rows, []string{
			n.ShortID(),
			n.CreatedAt.Format("2006-01-02"),
			n.Title,
			preview(n.Content),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ID", "DATE", "TITLE", "CONTENT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			switch col {
			case 0:
				return idStyle
			case 1:
				return dateStyle
			case 2:
				return titleStyle
			}
			return cellStyle
		})

	fmt.Fprintf(w, "Notes (%d)\n", len(notes))
	fmt.Fprintln(w, t.Render())
}

// renderNote writes a single note in full.
func renderNote(w io.Writer, n core.Note) {
	fmt.Fprintf(w, "%s %s\n", headerStyle.UnsetPadding().Render("ID:"), n.ID)
	fmt.Fprintf(w, "%s %s\n", headerStyle.UnsetPadding().Render("Created:"), n.CreatedAt.Format(core.TimeLayout))
	fmt.Fprintf(w, "%s %s\n", headerStyle.UnsetPadding().Render("Title:"), n.Title)
	fmt.Fprintln(w)
	fmt.Fprintln(w, n.Content)
}

func preview(content string) string {
	runes := []rune(content)
	for i, r := range runes {
		if r == '\n' || r == '\r' {
			runes = append(runes[:i:i], []rune("...")...)
			break
		}
	}
	if len(runes) > previewLen {
		return string(runes[:previewLen-3]) + "..."
	}
	return string(runes)
}
