package sink

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/collage/pkg/render"
)

// DefaultTerminalWidth is used when RenderTerminal gets a non-positive width.
const DefaultTerminalWidth = 80

// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2.0

var (
	styleEmpty = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("232"))
)

// RenderTerminal draws the scene as a character grid width columns wide.
// Each cell shows the topmost item covering it; item labels are written into
// the top-left corner of whatever part of the item stays visible.
func RenderTerminal(s *render.Scene, width int) string {
	if width <= 0 {
		width = DefaultTerminalWidth
	}
	if s.Layout.Width <= 0 {
		return ""
	}
	scale := float64(width) / s.Layout.Width
	height := max(int(math.Ceil(s.Layout.Height*scale/cellAspect)), 1)

	owners := make([][]int, height)
	text := make([][]rune, height)
	for y := range owners {
		owners[y] = make([]int, width)
		text[y] = make([]rune, width)
		for x := range owners[y] {
			owners[y][x] = -1
			text[y][x] = '·'
		}
	}

	order := s.PaintOrder()
	for _, i := range order {
		x0, y0, x1, y1 := cellBounds(s.Rect(i), scale, width, height)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				owners[y][x] = i
				text[y][x] = ' '
			}
		}
	}
	for _, i := range order {
		writeLabel(s, i, owners, text, scale)
	}

	var b strings.Builder
	for y := range owners {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < width; {
			end := x
			for end < width && owners[y][end] == owners[y][x] {
				end++
			}
			b.WriteString(cellStyle(s, owners[y][x]).Render(string(text[y][x:end])))
			x = end
		}
	}
	return b.String()
}

func cellBounds(r render.Rect, scale float64, width, height int) (x0, y0, x1, y1 int) {
	x0 = clamp(int(math.Round(r.X*scale)), 0, width)
	x1 = clamp(int(math.Round(r.Right()*scale)), 0, width)
	y0 = clamp(int(math.Round(r.Y*scale/cellAspect)), 0, height)
	y1 = clamp(int(math.Round(r.Bottom()*scale/cellAspect)), 0, height)
	if x1 == x0 && x1 < width {
		x1++
	}
	if y1 == y0 && y1 < height {
		y1++
	}
	return x0, y0, x1, y1
}

// writeLabel writes item i's label on the first visible row of the item,
// starting one cell in from its left edge.
func writeLabel(s *render.Scene, i int, owners [][]int, text [][]rune, scale float64) {
	x0, y0, x1, y1 := cellBounds(s.Rect(i), scale, len(owners[0]), len(owners))
	label := []rune(s.Label(i))
	for y := y0; y < y1; y++ {
		start := -1
		for x := x0; x < x1; x++ {
			if owners[y][x] == i {
				start = x
				break
			}
		}
		if start < 0 {
			continue
		}
		if start == x0 && x1-x0 > len(label)+1 {
			start++
		}
		for k, r := range label {
			x := start + k
			if x >= x1 || owners[y][x] != i {
				break
			}
			text[y][x] = r
		}
		return
	}
}

func cellStyle(s *render.Scene, owner int) lipgloss.Style {
	if owner < 0 {
		return styleEmpty
	}
	st := styleLabel.Background(lipgloss.Color(s.Color(owner)))
	if s.IsFocused(owner) {
		st = st.Bold(true).Underline(true)
	}
	return st
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
