// Package theme defines color themes for the tally dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps the dashboard's color roles to concrete colors.
type Theme struct {
	Name string

	Background   lipgloss.Color
	Surface      lipgloss.Color // cards, tab bar, status bar
	SurfaceHover lipgloss.Color // selected table row
	Border       lipgloss.Color
	BorderAccent lipgloss.Color

	TextDim     lipgloss.Color
	TextMuted   lipgloss.Color
	TextPrimary lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	PayerA lipgloss.Color
	PayerB lipgloss.Color
	Shared lipgloss.Color

	Positive lipgloss.Color // settled, saved
	Warning  lipgloss.Color // unsaved changes
	Danger   lipgloss.Color // delete confirmation
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default warm, paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   "#100F0F",
	Surface:      "#1C1B1A",
	SurfaceHover: "#282726",
	Border:       "#403E3C",
	BorderAccent: "#3AA99F",
	TextDim:      "#575653",
	TextMuted:    "#878580",
	TextPrimary:  "#FFFCF0",
	Accent:       "#3AA99F",
	AccentBright: "#5BC8BE",
	PayerA:       "#4385BE",
	PayerB:       "#CE5D97",
	Shared:       "#D0A215",
	Positive:     "#879A39",
	Warning:      "#DA702C",
	Danger:       "#D14D41",
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   "#1E1E2E",
	Surface:      "#313244",
	SurfaceHover: "#45475A",
	Border:       "#585B70",
	BorderAccent: "#89B4FA",
	TextDim:      "#6C7086",
	TextMuted:    "#A6ADC8",
	TextPrimary:  "#CDD6F4",
	Accent:       "#89B4FA",
	AccentBright: "#B4D0FB",
	PayerA:       "#74C7EC",
	PayerB:       "#F5C2E7",
	Shared:       "#F9E2AF",
	Positive:     "#A6E3A1",
	Warning:      "#FAB387",
	Danger:       "#F38BA8",
}

// TokyoNight is a cool blue-violet theme.
var TokyoNight = Theme{
	Name:         "tokyo-night",
	Background:   "#1A1B26",
	Surface:      "#24283B",
	SurfaceHover: "#2F3549",
	Border:       "#3B4261",
	BorderAccent: "#7AA2F7",
	TextDim:      "#565F89",
	TextMuted:    "#A9B1D6",
	TextPrimary:  "#C0CAF5",
	Accent:       "#7AA2F7",
	AccentBright: "#A9C1FA",
	PayerA:       "#7DCFFF",
	PayerB:       "#BB9AF7",
	Shared:       "#E0AF68",
	Positive:     "#9ECE6A",
	Warning:      "#FF9E64",
	Danger:       "#F7768E",
}

// Terminal sticks to the 16 ANSI colors so it follows the user's palette.
var Terminal = Theme{
	Name:         "terminal",
	Background:   "0",
	Surface:      "0",
	SurfaceHover: "8",
	Border:       "8",
	BorderAccent: "6",
	TextDim:      "8",
	TextMuted:    "7",
	TextPrimary:  "15",
	Accent:       "6",
	AccentBright: "14",
	PayerA:       "4",
	PayerB:       "5",
	Shared:       "3",
	Positive:     "2",
	Warning:      "11",
	Danger:       "1",
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Names lists the available theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}
