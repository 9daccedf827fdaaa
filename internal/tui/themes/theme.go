// Package themes holds the dashboard color schemes.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Done          lipgloss.Style
	RoundedBox    lipgloss.Style
	ActiveBox     lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	Positive      lipgloss.Style
	Negative      lipgloss.Style
	Star          lipgloss.Style
	Name          string
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
}

func build(name string, fg, muted, border, primary, success, danger, selectBg, star lipgloss.Color) Theme {
	return Theme{
		Name:    name,
		Primary: primary,
		Muted:   muted,
		Border:  border,

		// Text styles
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Selected: lipgloss.NewStyle().
			Background(selectBg).
			Foreground(fg).
			Bold(true),
		Done: lipgloss.NewStyle().
			Foreground(muted).
			Strikethrough(true),

		// Component styles
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		ActiveBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),

		// Status styles
		StatusSuccess: lipgloss.NewStyle().
			Foreground(success).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(danger).
			Bold(true),
		Positive: lipgloss.NewStyle().
			Foreground(success),
		Negative: lipgloss.NewStyle().
			Foreground(danger),
		Star: lipgloss.NewStyle().
			Foreground(star),
	}
}

// Dark is the default theme.
var Dark = build("dark",
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#a78bfa"),
	lipgloss.Color("#10b981"),
	lipgloss.Color("#ef4444"),
	lipgloss.Color("#4c1d95"),
	lipgloss.Color("#facc15"),
)

// Light suits terminals with a light background.
var Light = build("light",
	lipgloss.Color("#1f2937"),
	lipgloss.Color("#9ca3af"),
	lipgloss.Color("#d1d5db"),
	lipgloss.Color("#7c3aed"),
	lipgloss.Color("#16a34a"),
	lipgloss.Color("#dc2626"),
	lipgloss.Color("#ede9fe"),
	lipgloss.Color("#ca8a04"),
)

// Default is the theme used when none is configured.
var Default = Dark

// ByName returns the named theme, falling back to Default.
func ByName(name string) Theme {
	if name == Light.Name {
		return Light
	}
	return Default
}

// Toggle switches between light and dark.
func Toggle(t Theme) Theme {
	if t.Name == Light.Name {
		return Dark
	}
	return Light
}
