package domain

import "errors"

// Status is the state of a match.
type Status uint8

const (
	InProgress Status = iota
	Player1Won
	Player2Won
)

func (s Status) String() string {
	switch s {
	case Player1Won:
		return "Player 1 won"
	case Player2Won:
		return "Player 2 won"
	default:
		return "in progress"
	}
}

// ErrGameOver is returned for moves after the match has been decided.
var ErrGameOver = errors.New("game over")

// Game holds the current state of a Hex match.
type Game struct {
	Board  *Board
	Turn   Cell
	Status Status
	Moves  int
}

// NewGame returns a new game on an empty size x size board with Player1 to move.
func NewGame(size int) (*Game, error) {
	b, err := NewBoard(size)
	if err != nil {
		return nil, err
	}
	return &Game{Board: b, Turn: Player1}, nil
}

// Over reports whether the match has been decided or no empty cell is left.
func (g *Game) Over() bool { return g.Status != InProgress || g.Board.EmptyCount() == 0 }

// Winner returns the winning player, or Empty while in progress.
func (g *Game) Winner() Cell {
	switch g.Status {
	case Player1Won:
		return Player1
	case Player2Won:
		return Player2
	default:
		return Empty
	}
}

// Play claims c for the player to move, then checks that player's win.
// Every accepted move removes one empty cell, so a game cannot outlast the
// board.
func (g *Game) Play(c Coord) error {
	if g.Over() {
		return ErrGameOver
	}
	if err := g.Board.Place(c, g.Turn); err != nil {
		return err
	}
	g.Moves++

	if HasWon(g.Board, g.Turn) {
		g.finish(g.Turn)
		return nil
	}
	// A filled hex board always has exactly one winner; look at both sides
	// so the machine still stops if that ever fails to hold.
	if g.Board.EmptyCount() == 0 && HasWon(g.Board, g.Turn.Opponent()) {
		g.finish(g.Turn.Opponent())
		return nil
	}

	g.Turn = g.Turn.Opponent()
	return nil
}

func (g *Game) finish(winner Cell) {
	if winner == Player1 {
		g.Status = Player1Won
	} else {
		g.Status = Player2Won
	}
}

// Clone returns a deep copy of the game.
func (g *Game) Clone() *Game {
	cp := *g
	cp.Board = g.Board.Clone()
	return &cp
}
