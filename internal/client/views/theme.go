package views

import "github.com/charmbracelet/lipgloss"

// Theme is a palette of ANSI colors.
type Theme struct {
	Name    string
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Danger  lipgloss.Color
	Border  lipgloss.Color
}

// Light mirrors the blue navbar on a white page.
var Light = Theme{
	Name:    "light",
	Accent:  "4", // blue
	Text:    "0",
	Muted:   "8",
	Success: "2",
	Warning: "3",
	Danger:  "1",
	Border:  "4",
}

// Dark is the gray-900 variant.
var Dark = Theme{
	Name:    "dark",
	Accent:  "14", // bright cyan
	Text:    "15",
	Muted:   "7",
	Success: "10",
	Warning: "11",
	Danger:  "9",
	Border:  "8",
}

// ThemeFor returns Dark for "dark" and Light for anything else.
func ThemeFor(name string) Theme {
	if name == Dark.Name {
		return Dark
	}
	return Light
}
