package domain

import "testing"

func placeAll(t *testing.T, b *Board, owner Cell, coords ...Coord) {
	t.Helper()
	for _, c := range coords {
		if err := b.Place(c, owner); err != nil {
			t.Fatalf("place %v for %v failed: %v", c, owner, err)
		}
	}
}

func column(col, n int) []Coord {
	out := make([]Coord, n)
	for r := range out {
		out[r] = Coord{Row: r, Col: col}
	}
	return out
}

func TestEmptyBoardHasNoWinner(t *testing.T) {
	for n := MinSize; n <= MaxSize; n++ {
		b := mustBoard(t, n)
		if HasWon(b, Player1) || HasWon(b, Player2) {
			t.Fatalf("n=%d: empty board reported a win", n)
		}
	}
}

func TestFirstColumnWinsForPlayer1(t *testing.T) {
	b := mustBoard(t, 5)
	placeAll(t, b, Player1, column(0, 5)...)
	if !HasWon(b, Player1) {
		t.Fatalf("expected Player1 to win with the first column")
	}
	if HasWon(b, Player2) {
		t.Fatalf("Player2 owns nothing and cannot win")
	}
}

func TestFirstColumnDoesNotWinForPlayer2(t *testing.T) {
	b := mustBoard(t, 5)
	placeAll(t, b, Player2, column(0, 5)...)
	if HasWon(b, Player2) {
		t.Fatalf("a column never joins left to right on a 5x5 board")
	}
}

func TestIsolatedCellDoesNotWin(t *testing.T) {
	b := mustBoard(t, 5)
	placeAll(t, b, Player1, Coord{Row: 2, Col: 2})
	if HasWon(b, Player1) {
		t.Fatalf("single cell at (2,2) must not win")
	}
}

func TestDiagonalStepping(t *testing.T) {
	b := mustBoard(t, 5)
	placeAll(t, b, Player1,
		Coord{Row: 0, Col: 0}, Coord{Row: 1, Col: 1}, Coord{Row: 2, Col: 2},
		Coord{Row: 3, Col: 3}, Coord{Row: 4, Col: 4})
	if !HasWon(b, Player1) {
		t.Fatalf("expected (+1,+1) diagonal chain to connect top and bottom")
	}

	anti := mustBoard(t, 5)
	placeAll(t, anti, Player1,
		Coord{Row: 0, Col: 4}, Coord{Row: 1, Col: 3}, Coord{Row: 2, Col: 2},
		Coord{Row: 3, Col: 1}, Coord{Row: 4, Col: 0})
	if HasWon(anti, Player1) {
		t.Fatalf("(+1,-1) cells are not adjacent and must not connect")
	}
}

func TestRowWinsForPlayer2(t *testing.T) {
	b := mustBoard(t, 6)
	for c := 0; c < 6; c++ {
		placeAll(t, b, Player2, Coord{Row: 3, Col: c})
	}
	if !HasWon(b, Player2) {
		t.Fatalf("expected Player2 to win with a full row")
	}
	if HasWon(b, Player1) {
		t.Fatalf("Player1 must not win")
	}
}

func TestBlockedChainDoesNotWin(t *testing.T) {
	b := mustBoard(t, 5)
	placeAll(t, b, Player1, Coord{Row: 0, Col: 1}, Coord{Row: 1, Col: 1}, Coord{Row: 3, Col: 1}, Coord{Row: 4, Col: 1})
	placeAll(t, b, Player2, Coord{Row: 2, Col: 1})
	if HasWon(b, Player1) {
		t.Fatalf("gap at (2,1) must break the chain")
	}
	placeAll(t, b, Player1, Coord{Row: 2, Col: 2})
	// (2,2) touches (1,1) but not (3,1).
	if HasWon(b, Player1) {
		t.Fatalf("(2,2) does not touch (3,1)")
	}
	placeAll(t, b, Player1, Coord{Row: 3, Col: 2})
	if !HasWon(b, Player1) {
		t.Fatalf("expected detour through (2,2),(3,2) to connect")
	}
}

func TestWinIsMonotonic(t *testing.T) {
	b := mustBoard(t, 5)
	placeAll(t, b, Player2, Coord{Row: 1, Col: 0}, Coord{Row: 1, Col: 1}, Coord{Row: 1, Col: 2}, Coord{Row: 1, Col: 3}, Coord{Row: 1, Col: 4})
	if !HasWon(b, Player2) {
		t.Fatalf("expected Player2 win")
	}
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			at := Coord{Row: r, Col: c}
			if !b.IsEmpty(at) {
				continue
			}
			owner := Player1
			if (r+c)%2 == 0 {
				owner = Player2
			}
			placeAll(t, b, owner, at)
			if !HasWon(b, Player2) {
				t.Fatalf("win lost after placing %v at %v", owner, at)
			}
		}
	}
}

func TestWinningPathConnectsEdges(t *testing.T) {
	b := mustBoard(t, 5)
	placeAll(t, b, Player1,
		Coord{Row: 0, Col: 3}, Coord{Row: 1, Col: 3}, Coord{Row: 1, Col: 2},
		Coord{Row: 2, Col: 2}, Coord{Row: 3, Col: 3}, Coord{Row: 4, Col: 3})
	path := WinningPath(b, Player1)
	if path == nil {
		t.Fatalf("expected a winning path")
	}
	if path[0].Row != 0 || path[len(path)-1].Row != 4 {
		t.Fatalf("path must run from row 0 to row 4, got %v", path)
	}
	for i := 1; i < len(path); i++ {
		adjacent := false
		for _, n := range b.Neighbors(path[i-1]) {
			if n == path[i] {
				adjacent = true
				break
			}
		}
		if !adjacent {
			t.Fatalf("path steps %v -> %v are not adjacent", path[i-1], path[i])
		}
		if cell, _ := b.At(path[i]); cell != Player1 {
			t.Fatalf("path crosses %v owned by %v", path[i], cell)
		}
	}
}

func TestNonPlayerNeverWins(t *testing.T) {
	b := mustBoard(t, 5)
	if HasWon(b, Empty) || WinningPath(b, Empty) != nil {
		t.Fatalf("Empty must never win")
	}
}
