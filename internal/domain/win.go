package domain

// HasWon reports whether player has an unbroken chain of owned cells joining
// its start edge to its goal edge. Player1 joins row 0 to the last row,
// Player2 joins column 0 to the last column.
func HasWon(b *Board, player Cell) bool {
	return WinningPath(b, player) != nil
}

// WinningPath returns one chain of player's cells from the start edge to the
// goal edge, or nil when there is none.
func WinningPath(b *Board, player Cell) []Coord {
	if !player.IsPlayer() {
		return nil
	}
	last := b.size - 1

	visited := make([]bool, len(b.cells))
	parent := make(map[Coord]Coord)
	stack := make([]Coord, 0, b.size)
	for i := 0; i < b.size; i++ {
		start := Coord{Row: 0, Col: i}
		if player == Player2 {
			start = Coord{Row: i, Col: 0}
		}
		if b.cells[b.index(start)] == player {
			stack = append(stack, start)
		}
	}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		idx := b.index(c)
		if visited[idx] {
			continue
		}
		visited[idx] = true

		if (player == Player1 && c.Row == last) || (player == Player2 && c.Col == last) {
			return tracePath(parent, c)
		}
		for _, n := range b.Neighbors(c) {
			ni := b.index(n)
			if !visited[ni] && b.cells[ni] == player {
				parent[n] = c
				stack = append(stack, n)
			}
		}
	}
	return nil
}

// tracePath walks parent links back to a seed and returns the chain seed-first.
func tracePath(parent map[Coord]Coord, end Coord) []Coord {
	path := []Coord{end}
	for c := end; ; {
		p, ok := parent[c]
		if !ok {
			break
		}
		path = append(path, p)
		c = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
