package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const homeMarkdown = `# garage

A small catalogue of cars kept in a local JSON file.

- Press **c** to browse the cars.
- Press **a** to add a randomly generated car.
- Press **d** on the cars tab to delete the selected one.
`

// markdownCache keeps the last rendered panel per tab key so glamour only
// runs again when the width, theme or content changes.
type markdownCache struct {
	entries map[string]markdownEntry
}

type markdownEntry struct {
	width   int
	theme   string
	content string
	out     string
}

func (c *markdownCache) render(name, content string, width int, theme string) string {
	if e, ok := c.entries[name]; ok && e.width == width && e.theme == theme && e.content == content {
		return e.out
	}
	out := renderMarkdown(content, width, theme)
	if c.entries == nil {
		c.entries = make(map[string]markdownEntry)
	}
	c.entries[name] = markdownEntry{width: width, theme: theme, content: content, out: out}
	return out
}

// renderMarkdown renders with a fixed glamour style. Auto style detection
// queries the terminal over stdin, which the event source owns.
func renderMarkdown(content string, width int, theme string) string {
	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return lipgloss.NewStyle().Width(wrap).Padding(0, 2).Render(content)
	}
	out, err := r.Render(content)
	if err != nil {
		return lipgloss.NewStyle().Width(wrap).Padding(0, 2).Render(content)
	}
	return strings.TrimRight(out, "\n")
}

func (m MainModel) viewHome(width int) string {
	return m.md.render("home", homeMarkdown, width, m.theme)
}

func infoMarkdown(dbPath string, records int) string {
	var b strings.Builder
	b.WriteString("# About\n\n")
	b.WriteString("Records are read from and written back to a single JSON array on every change.\n\n")
	fmt.Fprintf(&b, "- Database: `%s`\n", dbPath)
	fmt.Fprintf(&b, "- Cars: %d\n\n", records)
	b.WriteString("## Keys\n\n")
	b.WriteString("| Key | Action |\n|---|---|\n")
	for _, t := range tabs {
		h := t.binding.Help()
		fmt.Fprintf(&b, "| `%s` | %s tab |\n", h.Key, t.label)
	}
	b.WriteString("| `a` | add a generated car |\n")
	b.WriteString("| `d` | delete the selected car |\n")
	b.WriteString("| `j`/`down`, `k`/`up` | move the selection |\n")
	b.WriteString("| `q`, `ctrl+c` | quit |\n")
	return b.String()
}

func (m MainModel) viewInfo(width int) string {
	return m.md.render("info", infoMarkdown(m.dbPath, len(m.records)), width, m.theme)
}
