package app

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jaminalder/codex-hex/internal/domain"
)

// Errors exposed by the service layer.
var (
	ErrNotFound = errors.New("game not found")
)

// GameState is the in-memory state tracked per game.
type GameState struct {
	ID      string
	Game    *domain.Game
	Created time.Time
	Updated time.Time
}

// Path returns the winning chain once the game is decided.
func (gs GameState) Path() []domain.Coord {
	if w := gs.Game.Winner(); w != domain.Empty {
		return domain.WinningPath(gs.Game.Board, w)
	}
	return nil
}

func (gs *GameState) clone() GameState {
	cp := *gs
	cp.Game = gs.Game.Clone()
	return cp
}

type subscriber struct {
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service manages games and spectator subscribers.
type Service struct {
	mu     sync.Mutex
	games  map[string]*GameState
	subs   map[string]map[*subscriber]struct{}
	render func(GameState) []byte
	log    *log.Logger
}

// NewService creates a service with a default renderer (encodes nothing useful).
func NewService() *Service { return NewServiceWithRenderer(nil) }

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(renderer func(GameState) []byte) *Service {
	if renderer == nil {
		renderer = func(gs GameState) []byte { return nil }
	}
	return &Service{
		games:  make(map[string]*GameState),
		subs:   make(map[string]map[*subscriber]struct{}),
		render: renderer,
		log:    log.Default(),
	}
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = func(gs GameState) []byte { return nil }
		return
	}
	s.render = renderer
}

// SetLogger replaces the service logger.
func (s *Service) SetLogger(l *log.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l != nil {
		s.log = l
	}
}

// CreateGame creates and registers a new game on a size x size board.
func (s *Service) CreateGame(size int) (*GameState, error) {
	g, err := domain.NewGame(size)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	now := time.Now()
	gs := &GameState{ID: id, Game: g, Created: now, Updated: now}
	s.games[id] = gs
	s.log.Info("game created", "id", id, "size", size)
	cp := gs.clone()
	return &cp, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gs, ok := s.games[id]
	if !ok {
		return nil, false
	}
	cp := gs.clone()
	return &cp, true
}

// IDs returns the known game IDs, oldest first.
func (s *Service) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	states := make([]*GameState, 0, len(s.games))
	for _, gs := range s.games {
		states = append(states, gs)
	}
	sort.Slice(states, func(i, j int) bool {
		if states[i].Created.Equal(states[j].Created) {
			return states[i].ID < states[j].ID
		}
		return states[i].Created.Before(states[j].Created)
	})
	ids := make([]string, len(states))
	for i, gs := range states {
		ids[i] = gs.ID
	}
	return ids
}

// Play applies a move for the player to move, updates timestamps, and broadcasts.
func (s *Service) Play(id string, at domain.Coord) (*GameState, error) {
	var toDrop []*subscriber

	s.mu.Lock()
	gs, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	mover := gs.Game.Turn
	if err := gs.Game.Play(at); err != nil {
		s.log.Debug("move rejected", "id", id, "player", mover, "row", at.Row, "col", at.Col, "err", err)
		s.mu.Unlock()
		return nil, err
	}
	gs.Updated = time.Now()
	s.log.Debug("move applied", "id", id, "player", mover, "row", at.Row, "col", at.Col, "moves", gs.Game.Moves)
	if gs.Game.Over() {
		s.log.Info("game finished", "id", id, "winner", gs.Game.Winner(), "moves", gs.Game.Moves)
	}

	// Snapshot state and fan out; slow subscribers are closed and removed.
	cp := gs.clone()
	payload := s.render(cp)
	for sub := range s.subs[id] {
		select {
		case sub.ch <- payload:
		default:
			sub.close()
			toDrop = append(toDrop, sub)
		}
	}
	for _, sub := range toDrop {
		delete(s.subs[id], sub)
	}
	s.mu.Unlock()

	if len(toDrop) > 0 {
		s.log.Warn("dropped slow subscribers", "id", id, "count", len(toDrop))
	}
	return &cp, nil
}

// Subscribe registers a subscriber for a game. Returns a channel and an unsubscribe func.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return nil, nil, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub, nil
}
