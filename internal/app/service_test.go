package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jaminalder/codex-hex/internal/domain"
)

// minimal renderer for tests: encode moves count as bytes
func testRenderer(gs GameState) []byte { return []byte(fmt.Sprintf("moves=%d", gs.Game.Moves)) }

func TestCreateAndGet(t *testing.T) {
	s := NewServiceWithRenderer(testRenderer)
	gs, err := s.CreateGame(7)
	if err != nil {
		t.Fatalf("CreateGame error: %v", err)
	}
	if gs.ID == "" {
		t.Fatalf("expected non-empty game ID")
	}
	if gs.Game.Turn != domain.Player1 || gs.Game.Board.Size() != 7 {
		t.Fatalf("unexpected initial game: turn=%v size=%d", gs.Game.Turn, gs.Game.Board.Size())
	}
	if gs.Created.IsZero() || gs.Updated.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}
	got, ok := s.Get(gs.ID)
	if !ok || got.ID != gs.ID {
		t.Fatalf("Get should find created game")
	}
	if _, ok := s.Get("missing"); ok {
		t.Fatalf("Get should not find unknown id")
	}
}

func TestCreateRejectsInvalidSize(t *testing.T) {
	s := NewService()
	if _, err := s.CreateGame(13); !errors.Is(err, domain.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
	if len(s.IDs()) != 0 {
		t.Fatalf("invalid game must not be registered")
	}
}

func TestIDsInCreationOrder(t *testing.T) {
	s := NewService()
	a, _ := s.CreateGame(5)
	b, _ := s.CreateGame(6)
	ids := s.IDs()
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %v", ids)
	}
	seen := map[string]bool{ids[0]: true, ids[1]: true}
	if !seen[a.ID] || !seen[b.ID] {
		t.Fatalf("ids %v missing %s or %s", ids, a.ID, b.ID)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewService()
	gs, _ := s.CreateGame(5)
	cp, _ := s.Get(gs.ID)
	if err := cp.Game.Play(domain.Coord{Row: 0, Col: 0}); err != nil {
		t.Fatalf("play on copy failed: %v", err)
	}
	latest, _ := s.Get(gs.ID)
	if latest.Game.Moves != 0 || !latest.Game.Board.IsEmpty(domain.Coord{Row: 0, Col: 0}) {
		t.Fatalf("mutating a copy changed the stored game")
	}
}

func TestPlayAlternatesAndRejects(t *testing.T) {
	s := NewServiceWithRenderer(testRenderer)
	gs, _ := s.CreateGame(5)

	st, err := s.Play(gs.ID, domain.Coord{Row: 0, Col: 0})
	if err != nil {
		t.Fatalf("Player1 play failed: %v", err)
	}
	if cell, _ := st.Game.Board.At(domain.Coord{}); cell != domain.Player1 || st.Game.Turn != domain.Player2 || st.Game.Moves != 1 {
		t.Fatalf("unexpected state after move: turn=%v moves=%d cell=%v", st.Game.Turn, st.Game.Moves, cell)
	}
	if _, err := s.Play(gs.ID, domain.Coord{Row: 0, Col: 0}); !errors.Is(err, domain.ErrOccupied) {
		t.Fatalf("expected ErrOccupied, got %v", err)
	}
	if _, err := s.Play(gs.ID, domain.Coord{Row: 5, Col: 0}); !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Fatalf("expected ErrInvalidCoordinate, got %v", err)
	}
	if _, err := s.Play("missing", domain.Coord{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	latest, _ := s.Get(gs.ID)
	if latest.Game.Turn != domain.Player2 {
		t.Fatalf("rejected moves must keep the turn, got %v", latest.Game.Turn)
	}
}

func TestPlayUntilWinReportsPath(t *testing.T) {
	s := NewService()
	gs, _ := s.CreateGame(5)
	moves := []domain.Coord{
		{Row: 0, Col: 0}, {Row: 0, Col: 4},
		{Row: 1, Col: 0}, {Row: 1, Col: 4},
		{Row: 2, Col: 0}, {Row: 2, Col: 4},
		{Row: 3, Col: 0}, {Row: 3, Col: 4},
		{Row: 4, Col: 0},
	}
	var st *GameState
	for _, m := range moves {
		var err error
		if st, err = s.Play(gs.ID, m); err != nil {
			t.Fatalf("play %v failed: %v", m, err)
		}
	}
	if st.Game.Winner() != domain.Player1 {
		t.Fatalf("expected Player1 to win, status=%v", st.Game.Status)
	}
	if path := st.Path(); len(path) != 5 {
		t.Fatalf("expected 5-cell winning path, got %v", path)
	}
	if _, err := s.Play(gs.ID, domain.Coord{Row: 4, Col: 4}); !errors.Is(err, domain.ErrGameOver) {
		t.Fatalf("expected ErrGameOver, got %v", err)
	}
}

func TestSubscribeUnknownGame(t *testing.T) {
	s := NewService()
	if _, _, err := s.Subscribe(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSubscribeAndBroadcast(t *testing.T) {
	s := NewServiceWithRenderer(testRenderer)
	gs, _ := s.CreateGame(5)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*2)
	defer cancel()
	ch, unsub, err := s.Subscribe(ctx, gs.ID)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer unsub()

	if _, err := s.Play(gs.ID, domain.Coord{Row: 2, Col: 2}); err != nil {
		t.Fatalf("play failed: %v", err)
	}

	select {
	case b, ok := <-ch:
		if !ok {
			t.Fatalf("channel closed unexpectedly")
		}
		if string(b) != "moves=1" {
			t.Fatalf("unexpected broadcast payload: %q", string(b))
		}
	case <-ctx.Done():
		t.Fatalf("timed out waiting for broadcast")
	}
}

func TestDropSlowSubscriber(t *testing.T) {
	s := NewServiceWithRenderer(testRenderer)
	gs, _ := s.CreateGame(5)

	// Slow subscriber: never read
	ctxSlow, cancelSlow := context.WithCancel(context.Background())
	defer cancelSlow()
	slowCh, _, _ := s.Subscribe(ctxSlow, gs.ID)

	// Fast subscriber: will read
	ctxFast, cancelFast := context.WithTimeout(context.Background(), time.Second*2)
	defer cancelFast()
	fastCh, unsubFast, _ := s.Subscribe(ctxFast, gs.ID)
	defer unsubFast()

	if _, err := s.Play(gs.ID, domain.Coord{Row: 0, Col: 0}); err != nil {
		t.Fatalf("play1: %v", err)
	}
	select {
	case <-fastCh:
	case <-ctxFast.Done():
		t.Fatalf("fast subscriber did not receive first update")
	}
	if _, err := s.Play(gs.ID, domain.Coord{Row: 1, Col: 1}); err != nil {
		t.Fatalf("play2: %v", err)
	}
	select {
	case <-fastCh:
	case <-ctxFast.Done():
		t.Fatalf("fast subscriber did not receive second update")
	}

	// Slow subscriber got the first payload buffered, then was closed.
	if b, ok := <-slowCh; !ok || string(b) != "moves=1" {
		t.Fatalf("expected buffered first payload, got %q ok=%v", b, ok)
	}
	if _, ok := <-slowCh; ok {
		t.Fatalf("expected slow subscriber channel to be closed")
	}
}
