// Package console runs a game over line-oriented terminal I/O.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jaminalder/codex-hex/internal/app"
	"github.com/jaminalder/codex-hex/internal/domain"
	"github.com/jaminalder/codex-hex/internal/render"
)

// ErrMalformedInput is reported for input that is not an integer.
var ErrMalformedInput = errors.New("malformed input")

// Session reads moves from in and writes prompts and boards to out.
type Session struct {
	svc    *app.Service
	in     *bufio.Scanner
	out    io.Writer
	styles render.Styles
	log    *log.Logger

	// Started, when set, is called once the game has been created.
	Started func(gs *app.GameState)
}

// NewSession returns a session playing games through svc.
func NewSession(svc *app.Service, in io.Reader, out io.Writer) *Session {
	return &Session{svc: svc, in: bufio.NewScanner(in), out: out, log: log.Default()}
}

// SetStyles enables glyph styling.
func (s *Session) SetStyles(st render.Styles) { s.styles = st }

// SetLogger replaces the session logger.
func (s *Session) SetLogger(l *log.Logger) {
	if l != nil {
		s.log = l
	}
}

// ParseInt parses one integer in [lo,hi]. Non-integers wrap
// ErrMalformedInput; range failures wrap errRange.
func ParseInt(text string, lo, hi int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedInput, strings.TrimSpace(text))
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%w: %d not in [%d,%d]", errRange, v, lo, hi)
	}
	return v, nil
}

var errRange = errors.New("out of range")

// ReadInt prompts until a line holds an integer in [lo,hi]. It fails only
// when input ends.
func (s *Session) ReadInt(prompt string, lo, hi int) (int, error) {
	return s.readInt(prompt, lo, hi, nil, fmt.Sprintf("Please enter a number between %d and %d.", lo, hi))
}

// ReadSize asks for the board size. Sizes outside the supported range are
// rejected as domain.ErrInvalidSize.
func (s *Session) ReadSize() (int, error) {
	return s.readInt(fmt.Sprintf("Board size (%d-%d): ", domain.MinSize, domain.MaxSize),
		domain.MinSize, domain.MaxSize, domain.ErrInvalidSize,
		fmt.Sprintf("Invalid board size. Board size must be between %d and %d.", domain.MinSize, domain.MaxSize))
}

// readInt re-prompts on malformed and out-of-range lines. An out-of-range
// value is reported as rangeErr, when set, and answered with rangeMsg.
func (s *Session) readInt(prompt string, lo, hi int, rangeErr error, rangeMsg string) (int, error) {
	for {
		fmt.Fprint(s.out, prompt)
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return 0, fmt.Errorf("read input: %w", err)
			}
			return 0, fmt.Errorf("read input: %w", io.ErrUnexpectedEOF)
		}
		v, err := ParseInt(s.in.Text(), lo, hi)
		if err == nil {
			return v, nil
		}
		if errors.Is(err, ErrMalformedInput) {
			s.log.Debug("input rejected", "prompt", strings.TrimSpace(prompt), "err", err)
			fmt.Fprintln(s.out, "That is not a number. Please enter a whole number.")
			continue
		}
		if rangeErr != nil {
			err = fmt.Errorf("%w: %w", rangeErr, err)
		}
		s.log.Debug("input rejected", "prompt", strings.TrimSpace(prompt), "err", err)
		fmt.Fprintln(s.out, rangeMsg)
	}
}

// Run plays one game to completion. A size of 0 asks for it first.
func (s *Session) Run(size int) (*app.GameState, error) {
	if size == 0 {
		var err error
		if size, err = s.ReadSize(); err != nil {
			return nil, err
		}
	}
	gs, err := s.svc.CreateGame(size)
	if err != nil {
		return nil, err
	}
	if s.Started != nil {
		s.Started(gs)
	}

	fmt.Fprint(s.out, "Rules: ", render.Legend())
	for !gs.Game.Over() {
		s.printBoard(gs)
		fmt.Fprintf(s.out, "%s, it's your move.\n", playerName(gs.Game.Turn))

		last := size - 1
		row, err := s.ReadInt(fmt.Sprintf("Row (0-%d): ", last), 0, last)
		if err != nil {
			return gs, err
		}
		col, err := s.ReadInt(fmt.Sprintf("Column (0-%d): ", last), 0, last)
		if err != nil {
			return gs, err
		}

		next, err := s.svc.Play(gs.ID, domain.Coord{Row: row, Col: col})
		switch {
		case errors.Is(err, domain.ErrOccupied):
			fmt.Fprintln(s.out, "Cell is already taken. Try again.")
			continue
		case errors.Is(err, domain.ErrInvalidCoordinate):
			fmt.Fprintln(s.out, "That cell is not on the board. Try again.")
			continue
		case err != nil:
			return gs, err
		}
		gs = next
	}

	s.printBoard(gs)
	if w := gs.Game.Winner(); w != domain.Empty {
		fmt.Fprintf(s.out, "%s has won!\n", playerName(w))
	}
	return gs, nil
}

func (s *Session) printBoard(gs *app.GameState) {
	fmt.Fprint(s.out, render.Styled(gs.Game.Board.Cells(), gs.Path(), s.styles))
}

func playerName(p domain.Cell) string {
	return fmt.Sprintf("%s (%s)", p, render.Glyph(p))
}
