package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/storm/internal/core/render"
	"github.com/hay-kot/storm/internal/core/styles"
)

// View renders the editor.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	doc := m.editor.Document()
	row, col := m.editor.Selection()
	frame := render.SnapshotRegion(doc, row, col, m.cfg.CellWidth, m.view.region(doc.Rows(), doc.Cols()))

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderGrid(frame))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m Model) renderTitle() string {
	doc := m.editor.Document()
	row, col := m.editor.Selection()

	parts := []string{
		styles.BannerStyle.Render("storm"),
		styles.MutedStyle.Render(filepath.Base(m.path)),
	}
	if m.editor.Dirty() {
		parts = append(parts, styles.StatusDirtyStyle.Render("[+]"))
	}
	parts = append(parts, styles.MutedStyle.Render(
		fmt.Sprintf("%dx%d  (%d,%d)", doc.Rows(), doc.Cols(), row, col),
	))

	return strings.Join(parts, " ")
}

// renderGrid paints every cell of the frame, one terminal line per row.
func (m Model) renderGrid(f render.Frame) string {
	tile := styles.TileStyle.Width(f.Pitch).Align(lipgloss.Center)
	selected := styles.SelectedTileStyle.Width(f.Pitch).Align(lipgloss.Center)

	lines := make([]string, f.Region.Rows)
	var line strings.Builder
	for y := range f.Region.Rows {
		line.Reset()
		for x := range f.Region.Cols {
			cell, _ := f.At(f.Region.Row+y, f.Region.Col+x)
			style := tile
			if cell.Role == render.RoleSelected {
				style = selected
			}
			line.WriteString(style.Render(string(cell.Glyph)))
		}
		lines[y] = line.String()
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return styles.StatusStyle.Render(" ")
	}
	if m.statusErr {
		return styles.StatusErrorStyle.Render(m.status)
	}
	return styles.StatusStyle.Render(m.status)
}
