package tui

import "github.com/charmbracelet/bubbles/key"

// Tab is one of the views reachable from the menu bar.
type Tab int

const (
	TabHome Tab = iota
	TabCars
	TabInfo
)

type tabDef struct {
	tab     Tab
	name    string
	label   string
	binding key.Binding
}

// tabs is the menu bar, in display order. A tab's position in this table is
// its display index.
var tabs = []tabDef{
	{TabHome, "home", "Home", key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "home"))},
	{TabCars, "cars", "Cars", key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cars"))},
	{TabInfo, "info", "Info", key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info"))},
}

func (t Tab) def() (tabDef, bool) {
	for _, s := range tabs {
		if s.tab == t {
			return s, true
		}
	}
	return tabDef{}, false
}

// String returns the tab's stable name, as stored in the state file.
func (t Tab) String() string {
	if s, ok := t.def(); ok {
		return s.name
	}
	return "unknown"
}

// displayIndex returns the tab's position in the menu bar, or -1.
func (t Tab) displayIndex() int {
	for i, s := range tabs {
		if s.tab == t {
			return i
		}
	}
	return -1
}

// ParseTab returns the tab named name.
func ParseTab(name string) (Tab, bool) {
	for _, s := range tabs {
		if s.name == name {
			return s.tab, true
		}
	}
	return TabHome, false
}
