package theme

import "github.com/charmbracelet/lipgloss"

// Flavor is one Catppuccin palette.
type Flavor struct {
	Name     string
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Lavender lipgloss.Color
	Sapphire lipgloss.Color
	Green    lipgloss.Color
	Peach    lipgloss.Color
}

var (
	Mocha = Flavor{
		Name:     "dark",
		Base:     "#1e1e2e",
		Mantle:   "#181825",
		Surface0: "#313244",
		Surface1: "#45475a",
		Text:     "#cdd6f4",
		Subtext0: "#a6adc8",
		Lavender: "#b4befe",
		Sapphire: "#74c7ec",
		Green:    "#a6e3a1",
		Peach:    "#fab387",
	}
	Latte = Flavor{
		Name:     "light",
		Base:     "#eff1f5",
		Mantle:   "#e6e9ef",
		Surface0: "#ccd0da",
		Surface1: "#bcc0cc",
		Text:     "#4c4f69",
		Subtext0: "#6c6f85",
		Lavender: "#7287fd",
		Sapphire: "#209fb5",
		Green:    "#40a02b",
		Peach:    "#fe640b",
	}
)

var (
	Current Flavor

	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Lavender lipgloss.Color
	Sapphire lipgloss.Color
	Green    lipgloss.Color
	Peach    lipgloss.Color

	App        lipgloss.Style
	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Good       lipgloss.Style
)

func init() { Apply(Mocha) }

// Use switches to the flavor matching a preference theme name ("light" or
// "dark"). Unknown names select dark. Call it from the bubbletea goroutine only.
func Use(name string) {
	if name == Latte.Name {
		Apply(Latte)
		return
	}
	Apply(Mocha)
}

// Apply rebuilds the package styles from f.
func Apply(f Flavor) {
	Current = f
	Base, Mantle = f.Base, f.Mantle
	Surface0, Surface1 = f.Surface0, f.Surface1
	Text, Subtext0 = f.Text, f.Subtext0
	Lavender, Sapphire = f.Lavender, f.Sapphire
	Green, Peach = f.Green, f.Peach

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good = lipgloss.NewStyle().Foreground(Green).Bold(true)
}

// GlamourStyle is the glamour standard style matching the current flavor.
func GlamourStyle() string {
	if Current.Name == Latte.Name {
		return "light"
	}
	return "dark"
}
