package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/guzus/garage/internal/store"
)

// detailMinWidth is the narrowest terminal that still gets the detail card
// next to the table.
const detailMinWidth = 120

var carColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "ID", Width: 4},
	{Title: "Name", Width: 8},
	{Title: "Model", Width: 8},
	{Title: "Category", Width: 9},
	{Title: "Engine", Width: 7},
	{Title: "Age", Width: 5},
	{Title: "Created", Width: 16},
}

func carRows(records []store.Record) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for i, r := range records {
		rows = append(rows, table.Row{
			strconv.Itoa(i),
			strconv.Itoa(r.ID),
			r.Name,
			r.Model,
			r.Category,
			r.Engine,
			strconv.Itoa(r.Age),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return rows
}

func newCarTable(records []store.Record, height int) table.Model {
	t := table.New(
		table.WithColumns(carColumns),
		table.WithRows(carRows(records)),
		table.WithHeight(height),
		table.WithFocused(true),
	)
	ts := table.DefaultStyles()
	ts.Header = tableHeaderStyle.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorMuted).
		BorderBottom(true)
	ts.Selected = tableSelectedStyle
	t.SetStyles(ts)
	return t
}

// viewCars renders the records table with the cursor row highlighted. The
// table is rebuilt on every frame from the last successful load.
func (m MainModel) viewCars(width, height int) string {
	var b strings.Builder
	if m.err != "" {
		b.WriteString(errorMsgStyle.Padding(0, 1).Render("Error: " + m.err))
		b.WriteString("\n")
		height--
	}

	if len(m.records) == 0 {
		b.WriteString(mutedStyle.Padding(1, 2).Render("No cars yet. Press 'a' to add one."))
		return b.String()
	}

	// header row and its border
	tableHeight := height - 2
	if tableHeight < 1 {
		tableHeight = 1
	}
	t := newCarTable(m.records, tableHeight)
	selected, ok := m.cursor.Index()
	if ok {
		t.SetCursor(selected)
	} else {
		t.Blur()
	}

	body := t.View()
	if ok && width >= detailMinWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", renderDetail(selected, m.records[selected]))
	}
	b.WriteString(body)
	return b.String()
}

func renderDetail(index int, r store.Record) string {
	row := func(label, value string) string {
		return detailLabelStyle.Render(label) + value
	}
	lines := []string{
		detailTitleStyle.Render(fmt.Sprintf("Car %d", index)),
		"",
		row("Name", r.Name),
		row("ID", strconv.Itoa(r.ID)),
		row("Model", r.Model),
		row("Category", r.Category),
		row("Engine", r.Engine),
		row("Age", fmt.Sprintf("%d years", r.Age)),
		row("Created", r.CreatedAt.Local().Format("2006-01-02 15:04:05")),
	}
	return detailStyle.Render(strings.Join(lines, "\n"))
}
