// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Banner is printed above the startup prompt.
const Banner = "STORM · tile map editor"

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Style exports.
var (
	// CLI styles.
	BannerStyle  lipgloss.Style
	SuccessStyle lipgloss.Style
	WarnStyle    lipgloss.Style
	ErrorStyle   lipgloss.Style
	MutedStyle   lipgloss.Style

	// Grid cells.
	TileStyle         lipgloss.Style
	SelectedTileStyle lipgloss.Style

	// Status line.
	StatusStyle      lipgloss.Style
	StatusErrorStyle lipgloss.Style
	StatusDirtyStyle lipgloss.Style
	HelpStyle        lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	BannerStyle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Success)
	WarnStyle = lipgloss.NewStyle().Foreground(p.Warning)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Error)
	MutedStyle = lipgloss.NewStyle().Foreground(p.Muted)

	TileStyle = lipgloss.NewStyle().
		Background(p.Surface).
		Foreground(p.Foreground)
	SelectedTileStyle = lipgloss.NewStyle().
		Background(p.Primary).
		Foreground(p.Background).
		Bold(true)

	StatusStyle = lipgloss.NewStyle().
		Foreground(p.Foreground).
		MarginTop(1)
	StatusErrorStyle = StatusStyle.
		Foreground(p.Error)
	StatusDirtyStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)
	HelpStyle = lipgloss.NewStyle().
		Foreground(p.Muted)
}

// FormTheme returns a huh theme matching the active palette.
func FormTheme() *huh.Theme {
	p := CurrentPalette
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(p.Primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(p.Muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(p.Error)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(p.Error)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p.Primary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p.Success)

	t.Blurred = t.Focused
	t.Blurred.Title = t.Blurred.Title.Foreground(p.Muted).Bold(false)

	return t
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() ansi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := hexPtr(CurrentPalette.Foreground)
	primary := hexPtr(CurrentPalette.Primary)
	secondary := hexPtr(CurrentPalette.Secondary)
	muted := hexPtr(CurrentPalette.Muted)

	cfg.Document.Color = fg
	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = primary
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.Code.Color = secondary
	cfg.Table.Color = fg
	cfg.HorizontalRule.Color = muted

	return cfg
}

func hexPtr(c lipgloss.Color) *string {
	s := string(c)
	return &s
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
