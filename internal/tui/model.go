// Package tui is a full-screen bubbletea front end for a local game.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jaminalder/codex-hex/internal/app"
	"github.com/jaminalder/codex-hex/internal/console"
	"github.com/jaminalder/codex-hex/internal/domain"
	"github.com/jaminalder/codex-hex/internal/render"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	winStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boardStyle = lipgloss.NewStyle().Padding(1, 2)
)

// Model asks for a board size unless one is preset, then takes "row col"
// moves until someone wins.
type Model struct {
	svc    *app.Service
	gs     *app.GameState
	input  textinput.Model
	styles render.Styles
	err    string

	width  int
	height int
}

// NewModel returns a model for svc. A size of 0 asks for it first.
func NewModel(svc *app.Service, size int, styles render.Styles) (Model, error) {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 8
	ti.Prompt = "> "

	m := Model{svc: svc, input: ti, styles: styles}
	if size == 0 {
		m.input.Placeholder = fmt.Sprintf("%d-%d", domain.MinSize, domain.MaxSize)
		return m, nil
	}
	if err := m.start(size); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m *Model) start(size int) error {
	gs, err := m.svc.CreateGame(size)
	if err != nil {
		return err
	}
	m.gs = gs
	m.input.Placeholder = "row col"
	return nil
}

// Game returns the current game, or nil before the size is chosen.
func (m Model) Game() *app.GameState { return m.gs }

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if m.gs != nil && m.gs.Game.Over() {
				return m, tea.Quit
			}
			return m.submit(), nil
		case "q":
			if m.gs != nil && m.gs.Game.Over() {
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() Model {
	text := m.input.Value()
	m.input.Reset()
	m.err = ""

	if m.gs == nil {
		size, err := console.ParseInt(text, domain.MinSize, domain.MaxSize)
		if err != nil {
			m.err = fmt.Sprintf("Board size must be a number between %d and %d", domain.MinSize, domain.MaxSize)
			return m
		}
		if err := m.start(size); err != nil {
			m.err = err.Error()
		}
		return m
	}

	at, err := ParseMove(text, m.gs.Game.Board.Size())
	if err != nil {
		m.err = err.Error()
		return m
	}
	gs, err := m.svc.Play(m.gs.ID, at)
	switch {
	case errors.Is(err, domain.ErrOccupied):
		m.err = "Cell is already taken"
	case errors.Is(err, domain.ErrOutOfBounds):
		m.err = "Out of bounds"
	case errors.Is(err, domain.ErrGameOver):
		m.err = "Game is over"
	case err != nil:
		m.err = "Invalid move"
	default:
		m.gs = gs
	}
	return m
}

// ParseMove reads "row col" (a comma also separates) for a size x size board.
func ParseMove(text string, size int) (domain.Coord, error) {
	fields := strings.Fields(strings.ReplaceAll(text, ",", " "))
	if len(fields) != 2 {
		return domain.Coord{}, fmt.Errorf("%w: enter row and column, e.g. \"2 3\"", console.ErrMalformedInput)
	}
	var at [2]int
	for i, f := range fields {
		v, err := console.ParseInt(f, 0, size-1)
		if err != nil {
			if errors.Is(err, console.ErrMalformedInput) {
				return domain.Coord{}, err
			}
			return domain.Coord{}, fmt.Errorf("%w: row and column must be between 0 and %d", domain.ErrOutOfBounds, size-1)
		}
		at[i] = v
	}
	return domain.Coord{Row: at[0], Col: at[1]}, nil
}

// View renders the board, the prompt and any error.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Hex"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(strings.TrimSuffix(render.Legend(), "\n")))
	b.WriteString("\n")

	if m.gs == nil {
		b.WriteString("\nChoose a board size\n")
	} else {
		g := m.gs.Game
		b.WriteString(boardStyle.Render(render.Styled(g.Board.Cells(), m.gs.Path(), m.styles)))
		b.WriteString("\n")
		if w := g.Winner(); w != domain.Empty {
			b.WriteString(winStyle.Render(fmt.Sprintf("%s (%s) has won!", w, render.Glyph(w))))
			b.WriteString("\n\n")
			b.WriteString(helpStyle.Render("(enter or q to quit)"))
			return b.String()
		}
		fmt.Fprintf(&b, "%s (%s), it's your move.\n", g.Turn, render.Glyph(g.Turn))
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("(enter to confirm, esc or ctrl+c to quit)"))
	return b.String()
}
