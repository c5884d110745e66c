package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"quiz-leaderboard-service/internal/app"
	"quiz-leaderboard-service/internal/domain"
	"quiz-leaderboard-service/internal/infra/memory"
)

func TestLeaderboardRanksBestAttempts(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	submit(t, env, "Alice", domain.Answers(1, 1))
	env.now = env.now.Add(time.Minute)
	submit(t, env, "Bob", domain.Answers(1, 0))
	env.now = env.now.Add(time.Minute)
	submit(t, env, "Charlie", domain.Answers(1, 1))
	env.now = env.now.Add(time.Minute)
	submit(t, env, "Bob", domain.Answers(0, 0))

	lb, err := env.board.Leaderboard(ctx, "", 0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(lb) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(lb))
	}
	want := []struct {
		rank int
		name string
	}{{1, "Alice"}, {1, "Charlie"}, {3, "Bob"}}
	for i, w := range want {
		if lb[i].Rank != w.rank || lb[i].PlayerName != w.name {
			t.Fatalf("entry %d: expected %d %s, got %+v", i, w.rank, w.name, lb[i])
		}
	}
	if lb[2].Score != 1 {
		t.Fatalf("expected Bob's best attempt to count, got %+v", lb[2])
	}

	limited, _ := env.board.Leaderboard(ctx, "", 2)
	if len(limited) != 2 {
		t.Fatalf("expected limit to apply, got %d", len(limited))
	}
	top, _ := env.board.Top(ctx, 1)
	if len(top) != 1 || top[0].PlayerName != "Alice" {
		t.Fatalf("unexpected top %+v", top)
	}
	other, _ := env.board.Leaderboard(ctx, "quiz-other", 0)
	if len(other) != 0 {
		t.Fatalf("expected no entries for another quiz, got %d", len(other))
	}
}

func TestLeaderboardEmpty(t *testing.T) {
	env := newTestEnv()
	lb, err := env.board.Leaderboard(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if lb == nil || len(lb) != 0 {
		t.Fatalf("expected empty leaderboard, got %#v", lb)
	}
}

func TestStanding(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	alice := submit(t, env, "Alice", domain.Answers(1, 0))
	env.now = env.now.Add(time.Minute)
	submit(t, env, "Alice", domain.Answers(1, 1))

	standing, err := env.board.Standing(ctx, alice.PlayerID)
	if err != nil {
		t.Fatalf("standing: %v", err)
	}
	if standing.Rank != 1 || standing.TotalAttempts != 2 || standing.Score != 2 {
		t.Fatalf("unexpected standing %+v", standing)
	}

	if _, err := env.board.Standing(ctx, "unknown"); !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}

	if err := env.store.AddPlayer(ctx, domain.Player{ID: "idle", Name: "Idle"}); err != nil {
		t.Fatalf("add player: %v", err)
	}
	if _, err := env.board.Standing(ctx, "idle"); !errors.Is(err, domain.ErrNoAttempts) {
		t.Fatalf("expected ErrNoAttempts, got %v", err)
	}
}

func TestAroundAndStats(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	submit(t, env, "Alice", domain.Answers(1, 1))
	bob := submit(t, env, "Bob", domain.Answers(1, 0))
	submit(t, env, "Charlie", domain.Answers(0, 0))

	window, err := env.board.Around(ctx, bob.PlayerID, 1)
	if err != nil {
		t.Fatalf("around: %v", err)
	}
	if len(window) != 3 || window[1].PlayerID != bob.PlayerID {
		t.Fatalf("expected Bob centred in window, got %+v", window)
	}

	stats, err := env.board.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := domain.Stats{TotalPlayers: 3, TotalAttempts: 3, AveragePercentage: 50, HighestPercentage: 100}
	if stats != want {
		t.Fatalf("expected %+v, got %+v", want, stats)
	}
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	ch, cancel, err := env.board.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer cancel()

	initial := <-ch
	if len(initial) != 0 {
		t.Fatalf("expected empty initial snapshot, got %+v", initial)
	}

	submit(t, env, "Alice", domain.Answers(1, 1))

	select {
	case update := <-ch:
		if len(update) != 1 || update[0].PlayerName != "Alice" || update[0].Rank != 1 {
			t.Fatalf("unexpected update %+v", update)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for leaderboard update")
	}
}

func TestSlowSubscriberGetsLatestSnapshot(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	ch, cancel, err := env.board.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer cancel()

	// Never drain while submitting more updates than the buffer holds.
	for i := 0; i < 20; i++ {
		submit(t, env, "Alice", domain.Answers(1, 1))
	}

	var last []domain.LeaderboardEntry
	for {
		select {
		case last = <-ch:
			continue
		default:
		}
		break
	}
	if len(last) != 1 {
		t.Fatalf("expected latest snapshot with Alice, got %+v", last)
	}
}

func TestLeaderboardLoadsPlayersInOneBatch(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: memory.NewStore()}
	board := app.NewLeaderboardService(store, nil, nil)
	quizRepo := memory.NewQuizRepository(memory.NewStaticQuizLoader(map[string]domain.Quiz{
		"quiz-1": testQuiz(),
	}), 5*time.Minute)
	quizzes := app.NewQuizService(quizRepo, store, board, nil, nil)

	for _, name := range []string{"Alice", "Bob", "Charlie", "Alice"} {
		if _, err := quizzes.Submit(ctx, "quiz-1", name, domain.Answers(1, 1)); err != nil {
			t.Fatalf("submit %s: %v", name, err)
		}
	}
	store.reset()

	lb, err := board.Leaderboard(ctx, "", 0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(lb) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(lb))
	}
	for _, entry := range lb {
		if entry.PlayerName == domain.UnknownPlayerName {
			t.Fatalf("expected every player name to resolve, got %+v", entry)
		}
	}
	byID, batches, batchSize := store.counts()
	if byID != 0 || batches != 1 || batchSize != 3 {
		t.Fatalf("expected one batch of 3 ids and no single lookups, got %d single, %d batches of %d", byID, batches, batchSize)
	}
}

func TestLeaderboardBatchLookupFailureShowsPlaceholder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	submit(t, env, "Alice", domain.Answers(1, 1))

	store := &countingStore{Store: env.store, batchErr: errors.New("connection reset")}
	board := app.NewLeaderboardService(store, nil, nil)
	lb, err := board.Leaderboard(ctx, "", 0)
	if err != nil {
		t.Fatalf("leaderboard must degrade instead of failing: %v", err)
	}
	if len(lb) != 1 || lb[0].PlayerName != domain.UnknownPlayerName {
		t.Fatalf("expected placeholder name, got %+v", lb)
	}
}

type countingStore struct {
	*memory.Store
	batchErr error

	mu        sync.Mutex
	byID      int
	batches   int
	batchSize int
}

func (s *countingStore) PlayerByID(ctx context.Context, id string) (domain.Player, error) {
	s.mu.Lock()
	s.byID++
	s.mu.Unlock()
	return s.Store.PlayerByID(ctx, id)
}

func (s *countingStore) PlayersByIDs(ctx context.Context, ids []string) (map[string]domain.Player, error) {
	s.mu.Lock()
	s.batches++
	s.batchSize = len(ids)
	s.mu.Unlock()
	if s.batchErr != nil {
		return nil, s.batchErr
	}
	return s.Store.PlayersByIDs(ctx, ids)
}

func (s *countingStore) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID, s.batches, s.batchSize = 0, 0, 0
}

func (s *countingStore) counts() (int, int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byID, s.batches, s.batchSize
}

func submit(t *testing.T, env *testEnv, name string, answers domain.Submission) domain.SubmitResult {
	t.Helper()
	res, err := env.quizzes.Submit(context.Background(), "quiz-1", name, answers)
	if err != nil {
		t.Fatalf("submit %s: %v", name, err)
	}
	return res
}
