// Package render turns board snapshots into text diagrams.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jaminalder/codex-hex/internal/domain"
)

// Glyph returns the symbol drawn for a cell.
func Glyph(c domain.Cell) string {
	switch c {
	case domain.Player1:
		return "X"
	case domain.Player2:
		return "O"
	default:
		return "."
	}
}

// Styles decorates glyphs. The zero value draws them unstyled.
type Styles struct {
	Player1 lipgloss.Style
	Player2 lipgloss.Style
	Empty   lipgloss.Style
	// Path marks cells of a winning chain.
	Path lipgloss.Style

	enabled bool
}

// DefaultStyles colours X red, O blue and a winning chain in bold.
func DefaultStyles() Styles {
	return Styles{
		Player1: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Player2: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		Empty:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Path:    lipgloss.NewStyle().Bold(true).Underline(true),
		enabled: true,
	}
}

func (s Styles) glyph(c domain.Cell, onPath bool) string {
	g := Glyph(c)
	if !s.enabled {
		return g
	}
	var st lipgloss.Style
	switch c {
	case domain.Player1:
		st = s.Player1
	case domain.Player2:
		st = s.Player2
	default:
		st = s.Empty
	}
	if onPath {
		st = st.Inherit(s.Path)
	}
	return st.Render(g)
}

const (
	labelWidth = 3 // "%2d "
	cellStep   = 4 // "X---"
)

// Board draws the snapshot as a staggered diagram. Rows shift left as they go
// down so that (r+1,c) sits below-left and (r+1,c+1) below-right of (r,c):
//
//	       0   1   2
//	 0     .---.---.
//	      / \ / \ /
//	 1   .---.---.
//	    / \ / \ /
//	 2 .---.---.
func Board(cells [][]domain.Cell) string {
	return Styled(cells, nil, Styles{})
}

// Styled is Board with glyph styling and an optional highlighted path.
func Styled(cells [][]domain.Cell, path []domain.Coord, st Styles) string {
	n := len(cells)
	if n == 0 {
		return ""
	}
	onPath := make(map[domain.Coord]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth+indent(n, 0)))
	for c := 0; c < n; c++ {
		label := fmt.Sprintf("%d", c)
		b.WriteString(label)
		if c < n-1 {
			b.WriteString(strings.Repeat(" ", cellStep-len(label)))
		}
	}
	b.WriteByte('\n')

	for r, row := range cells {
		fmt.Fprintf(&b, "%2d ", r)
		b.WriteString(strings.Repeat(" ", indent(n, r)))
		for c, cell := range row {
			if c > 0 {
				b.WriteString("---")
			}
			b.WriteString(st.glyph(cell, onPath[domain.Coord{Row: r, Col: c}]))
		}
		b.WriteByte('\n')
		if r < n-1 {
			b.WriteString(strings.Repeat(" ", labelWidth+indent(n, r)-1))
			b.WriteString(strings.Repeat("/ \\ ", n-1) + "/")
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func indent(n, row int) int { return 2 * (n - 1 - row) }

// Legend names each player's glyph and the edges it must join.
func Legend() string {
	return "X (Player 1) joins top to bottom, O (Player 2) joins left to right\n"
}

// Fprint writes the rendered board to w.
func Fprint(w io.Writer, cells [][]domain.Cell) error {
	_, err := io.WriteString(w, Board(cells))
	return err
}
