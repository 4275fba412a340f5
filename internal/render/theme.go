package render

import "github.com/charmbracelet/lipgloss"

// Theme defines colors and icons for diagnostic reports.
type Theme struct {
	Name  string
	Info  lipgloss.Style
	Warn  lipgloss.Style
	Error lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style
	Icons ThemeIcons
}

// ThemeIcons defines the icon set for a theme.
type ThemeIcons struct {
	Info  string
	Warn  string
	Error string
	Clean string
}

// DefaultTheme returns a vibrant color theme.
func DefaultTheme() Theme {
	return Theme{
		Name:  "default",
		Info:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),  // blue
		Warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("196")), // red
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("242")), // gray
		Bold:  lipgloss.NewStyle().Bold(true),
		Icons: ThemeIcons{
			Info:  "·",
			Warn:  "!",
			Error: "✗",
			Clean: "✓",
		},
	}
}

// MonoTheme returns a monochrome theme for non-TTY output.
func MonoTheme() Theme {
	return Theme{
		Name:  "mono",
		Info:  lipgloss.NewStyle(),
		Warn:  lipgloss.NewStyle(),
		Error: lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle(),
		Bold:  lipgloss.NewStyle(),
		Icons: ThemeIcons{
			Info:  "*",
			Warn:  "!",
			Error: "x",
			Clean: "+",
		},
	}
}

// ThemeByName returns a theme by name, defaulting to DefaultTheme.
func ThemeByName(name string) Theme {
	if name == "mono" {
		return MonoTheme()
	}
	return DefaultTheme()
}
