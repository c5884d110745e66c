package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"quiz-leaderboard-service/internal/domain"
	"quiz-leaderboard-service/internal/metrics"
	"quiz-leaderboard-service/internal/scoring"
)

// LeaderboardService ranks stored attempts on demand. Nothing derived is cached:
// every call reads a fresh snapshot from the store.
type LeaderboardService struct {
	store   Store
	hub     *Hub
	log     *zap.Logger
	metrics *metrics.Metrics

	publishMu sync.Mutex
}

func NewLeaderboardService(store Store, log *zap.Logger, m *metrics.Metrics) *LeaderboardService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LeaderboardService{
		store:   store,
		hub:     NewHub(),
		log:     log,
		metrics: m,
	}
}

// Leaderboard returns the ranked leaderboard, optionally restricted to one quiz.
// A limit <= 0 returns every entry.
func (s *LeaderboardService) Leaderboard(ctx context.Context, quizID string, limit int) ([]domain.LeaderboardEntry, error) {
	entries, err := s.build(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if limit > 0 {
		entries = scoring.Top(entries, limit)
	}
	return entries, nil
}

// Top returns the first n entries of the global leaderboard.
func (s *LeaderboardService) Top(ctx context.Context, n int) ([]domain.LeaderboardEntry, error) {
	entries, err := s.build(ctx, "")
	if err != nil {
		return nil, err
	}
	return scoring.Top(entries, n), nil
}

// Standing returns a player's leaderboard row and how many attempts they made.
func (s *LeaderboardService) Standing(ctx context.Context, playerID string) (domain.PlayerStanding, error) {
	if _, err := s.store.PlayerByID(ctx, playerID); err != nil {
		return domain.PlayerStanding{}, err
	}

	entries, err := s.build(ctx, "")
	if err != nil {
		return domain.PlayerStanding{}, err
	}
	entry, ok := scoring.Find(entries, playerID)
	if !ok {
		return domain.PlayerStanding{}, domain.ErrNoAttempts
	}

	attempts, err := s.store.AttemptsByPlayer(ctx, playerID)
	if err != nil {
		return domain.PlayerStanding{}, err
	}
	return domain.PlayerStanding{LeaderboardEntry: entry, TotalAttempts: len(attempts)}, nil
}

// Around returns the entries within radius positions of the player.
func (s *LeaderboardService) Around(ctx context.Context, playerID string, radius int) ([]domain.LeaderboardEntry, error) {
	if _, err := s.store.PlayerByID(ctx, playerID); err != nil {
		return nil, err
	}

	entries, err := s.build(ctx, "")
	if err != nil {
		return nil, err
	}
	window, ok := scoring.Around(entries, playerID, radius)
	if !ok {
		return nil, domain.ErrNoAttempts
	}
	return window, nil
}

// Stats summarizes all attempts.
func (s *LeaderboardService) Stats(ctx context.Context) (domain.Stats, error) {
	attempts, err := s.store.AllAttempts(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	return scoring.Summarize(attempts), nil
}

// Subscribe returns a channel that receives the current leaderboard followed by every
// update. The caller must invoke the returned cancel function to avoid leaks.
func (s *LeaderboardService) Subscribe(ctx context.Context) (<-chan []domain.LeaderboardEntry, func(), error) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	current, err := s.build(ctx, "")
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := s.hub.subscribe(current)
	return ch, cancel, nil
}

// Publish rebuilds the global leaderboard and fans it out to subscribers.
func (s *LeaderboardService) Publish(ctx context.Context) {
	if !s.hub.hasSubscribers() {
		return
	}

	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	entries, err := s.build(ctx, "")
	if err != nil {
		s.log.Warn("leaderboard publish skipped", zap.Error(err))
		return
	}
	s.hub.broadcast(entries)
}

func (s *LeaderboardService) build(ctx context.Context, quizID string) ([]domain.LeaderboardEntry, error) {
	attempts, err := s.store.AllAttempts(ctx)
	if err != nil {
		return nil, err
	}
	if quizID != "" {
		attempts = attemptsForQuiz(attempts, quizID)
	}

	start := time.Now()
	entries := scoring.BuildLeaderboard(attempts, s.lookup(ctx, attempts))
	s.metrics.ObserveLeaderboardBuild(time.Since(start))
	return entries, nil
}

// lookup loads every player referenced by attempts in one batch. A store failure
// degrades to the placeholder name instead of failing the whole leaderboard.
func (s *LeaderboardService) lookup(ctx context.Context, attempts []domain.Attempt) scoring.PlayerLookup {
	seen := make(map[string]struct{}, len(attempts))
	ids := make([]string, 0, len(attempts))
	for _, attempt := range attempts {
		if _, ok := seen[attempt.PlayerID]; ok {
			continue
		}
		seen[attempt.PlayerID] = struct{}{}
		ids = append(ids, attempt.PlayerID)
	}

	players, err := s.store.PlayersByIDs(ctx, ids)
	if err != nil {
		s.log.Warn("player lookup failed", zap.Int("players", len(ids)), zap.Error(err))
		players = nil
	}
	return func(playerID string) (domain.Player, bool) {
		player, ok := players[playerID]
		return player, ok
	}
}

func attemptsForQuiz(attempts []domain.Attempt, quizID string) []domain.Attempt {
	out := make([]domain.Attempt, 0, len(attempts))
	for _, attempt := range attempts {
		if attempt.QuizID == quizID {
			out = append(out, attempt)
		}
	}
	return out
}
