package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bs-replay/internal/core"
)

// styleKey identifies a cell style.
type styleKey struct {
	color core.Color
	dim   bool
}

// styleCache maps cell styles to lipgloss styles, built on first use.
type styleCache map[styleKey]lipgloss.Style

func (c styleCache) get(color core.Color, dim bool) lipgloss.Style {
	k := styleKey{color, dim}
	if s, ok := c[k]; ok {
		return s
	}
	s := lipgloss.NewStyle()
	if color != core.ColorDefault {
		s = s.Foreground(lipgloss.Color(string(color)))
	}
	if dim {
		s = s.Faint(true)
	}
	c[k] = s
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return renderScreen(s, styleCache{})
}

func renderScreen(s *core.Screen, styles styleCache) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same style for efficiency
		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start.Color || cell.Dim != start.Dim {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styles.get(start.Color, start.Dim).Render(run.String()))
		}
	}
	return sb.String()
}
