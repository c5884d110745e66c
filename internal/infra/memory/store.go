package memory

import (
	"context"
	"sync"

	"quiz-leaderboard-service/internal/domain"
)

// Store is an in-memory implementation of app.Store. Attempts keep insertion order.
type Store struct {
	mu       sync.RWMutex
	players  map[string]domain.Player
	byName   map[string]string
	attempts []domain.Attempt
}

func NewStore() *Store {
	return &Store{
		players: make(map[string]domain.Player),
		byName:  make(map[string]string),
	}
}

func (s *Store) AllAttempts(_ context.Context) ([]domain.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Attempt, len(s.attempts))
	copy(out, s.attempts)
	return out, nil
}

func (s *Store) AttemptsByPlayer(_ context.Context, playerID string) ([]domain.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Attempt
	for _, attempt := range s.attempts {
		if attempt.PlayerID == playerID {
			out = append(out, attempt)
		}
	}
	return out, nil
}

func (s *Store) AddAttempt(_ context.Context, attempt domain.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts = append(s.attempts, attempt)
	return nil
}

func (s *Store) PlayerByID(_ context.Context, id string) (domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if player, ok := s.players[id]; ok {
		return player, nil
	}
	return domain.Player{}, domain.ErrPlayerNotFound
}

func (s *Store) PlayersByIDs(_ context.Context, ids []string) (map[string]domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.Player, len(ids))
	for _, id := range ids {
		if player, ok := s.players[id]; ok {
			out[id] = player
		}
	}
	return out, nil
}

func (s *Store) PlayerByName(_ context.Context, name string) (domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.byName[name]; ok {
		return s.players[id], nil
	}
	return domain.Player{}, domain.ErrPlayerNotFound
}

func (s *Store) AddPlayer(_ context.Context, player domain.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byName[player.Name]; ok {
		return domain.ErrPlayerExists
	}
	s.players[player.ID] = player
	s.byName[player.Name] = player.ID
	return nil
}
