package domain

import (
	"errors"
	"fmt"
)

// Cell represents a board cell state. Player identities reuse the owned values.
type Cell uint8

const (
	Empty Cell = iota
	Player1
	Player2
)

// Board size limits.
const (
	MinSize = 5
	MaxSize = 12
)

// Errors returned by board operations.
var (
	ErrInvalidSize       = errors.New("invalid board size")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrOutOfBounds       = fmt.Errorf("%w: out of bounds", ErrInvalidCoordinate)
	ErrOccupied          = fmt.Errorf("%w: cell occupied", ErrInvalidCoordinate)
	ErrInvalidOwner      = errors.New("owner must be a player")
)

// Opponent returns the other player. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return Empty
	}
}

// IsPlayer reports whether c names one of the two players.
func (c Cell) IsPlayer() bool { return c == Player1 || c == Player2 }

func (c Cell) String() string {
	switch c {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	default:
		return "Empty"
	}
}

// Coord addresses a cell by row and column, both in [0, size).
type Coord struct {
	Row int
	Col int
}

func (c Coord) add(d Coord) Coord { return Coord{Row: c.Row + d.Row, Col: c.Col + d.Col} }

// directions encodes hex adjacency on the square array. Moving along a row or
// column, plus the (-1,-1)/(+1,+1) diagonal, reaches the six cells that touch
// a hexagon when rows are staggered to the left.
var directions = [6]Coord{
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: -1, Col: -1},
	{Row: 1, Col: 1},
}

// Board is a size x size grid stored row-major. Owned cells never change.
type Board struct {
	size  int
	cells []Cell
	empty int
}

// NewBoard returns an empty board of the given size.
func NewBoard(size int) (*Board, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidSize, size, MinSize, MaxSize)
	}
	return &Board{size: size, cells: make([]Cell, size*size), empty: size * size}, nil
}

// Size returns the number of rows (and columns).
func (b *Board) Size() int { return b.size }

// EmptyCount returns how many cells are still unowned.
func (b *Board) EmptyCount() int { return b.empty }

// InBounds reports whether c lies on the board.
func (b *Board) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < b.size && c.Col >= 0 && c.Col < b.size
}

func (b *Board) index(c Coord) int { return c.Row*b.size + c.Col }

// At returns the cell at c; ok is false when c is off the board.
func (b *Board) At(c Coord) (cell Cell, ok bool) {
	if !b.InBounds(c) {
		return Empty, false
	}
	return b.cells[b.index(c)], true
}

// IsEmpty reports whether c is on the board and unowned.
func (b *Board) IsEmpty(c Coord) bool {
	cell, ok := b.At(c)
	return ok && cell == Empty
}

// Place claims c for owner. Nothing is recorded when an error is returned.
func (b *Board) Place(c Coord, owner Cell) error {
	if !owner.IsPlayer() {
		return ErrInvalidOwner
	}
	if !b.InBounds(c) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, c.Row, c.Col)
	}
	idx := b.index(c)
	if b.cells[idx] != Empty {
		return fmt.Errorf("%w: (%d,%d)", ErrOccupied, c.Row, c.Col)
	}
	b.cells[idx] = owner
	b.empty--
	return nil
}

// Neighbors returns the in-bounds cells adjacent to c.
func (b *Board) Neighbors(c Coord) []Coord {
	out := make([]Coord, 0, len(directions))
	for _, d := range directions {
		if n := c.add(d); b.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Cells returns a row-major snapshot of the board.
func (b *Board) Cells() [][]Cell {
	rows := make([][]Cell, b.size)
	for r := range rows {
		rows[r] = append([]Cell(nil), b.cells[r*b.size:(r+1)*b.size]...)
	}
	return rows
}

// Clone returns an independent copy.
func (b *Board) Clone() *Board {
	cp := *b
	cp.cells = append([]Cell(nil), b.cells...)
	return &cp
}
