package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-leaderboard-service/internal/domain"
)

func TestStorePlayers(t *testing.T) {
	ctx := context.Background()
	mr, client := newMiniredis(t)
	store := NewStore(client)

	if err := store.AddPlayer(ctx, domain.Player{ID: "p1", Name: "Alice"}); err != nil {
		t.Fatalf("add player: %v", err)
	}
	if err := store.AddPlayer(ctx, domain.Player{ID: "p2", Name: "Alice"}); !errors.Is(err, domain.ErrPlayerExists) {
		t.Fatalf("expected ErrPlayerExists, got %v", err)
	}
	if got := mr.HGet("players:name", "Alice"); got != "p1" {
		t.Fatalf("expected name index to point at p1, got %q", got)
	}
	if mr.HGet("players", "p2") != "" {
		t.Fatalf("losing registration must not leave a player record")
	}

	byName, err := store.PlayerByName(ctx, "Alice")
	if err != nil || byName != (domain.Player{ID: "p1", Name: "Alice"}) {
		t.Fatalf("unexpected player %+v (%v)", byName, err)
	}
	if _, err := store.PlayerByID(ctx, "p2"); !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound by id, got %v", err)
	}
	if _, err := store.PlayerByName(ctx, "Bob"); !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound by name, got %v", err)
	}
}

func TestStorePlayersByIDs(t *testing.T) {
	ctx := context.Background()
	_, client := newMiniredis(t)
	store := NewStore(client)
	_ = store.AddPlayer(ctx, domain.Player{ID: "p1", Name: "Alice"})
	_ = store.AddPlayer(ctx, domain.Player{ID: "p2", Name: "Bob"})

	players, err := store.PlayersByIDs(ctx, []string{"p2", "ghost", "p1"})
	if err != nil {
		t.Fatalf("players by ids: %v", err)
	}
	if len(players) != 2 || players["p1"].Name != "Alice" || players["p2"].Name != "Bob" {
		t.Fatalf("unexpected players %+v", players)
	}

	empty, err := store.PlayersByIDs(ctx, nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty map for no ids, got %+v (%v)", empty, err)
	}
}

func TestStoreAttempts(t *testing.T) {
	ctx := context.Background()
	_, client := newMiniredis(t)
	store := NewStore(client)
	at := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	attempts := []domain.Attempt{
		{ID: "a1", PlayerID: "p2", QuizID: "quiz-1", Answers: domain.Answers(1, domain.NoAnswer), Score: 1, TotalQuestions: 2, Percentage: 50, CompletedAt: at},
		{ID: "a2", PlayerID: "p1", QuizID: "quiz-1", Answers: domain.Answers(1, 1), Score: 2, TotalQuestions: 2, Percentage: 100, CompletedAt: at.Add(time.Second)},
		{ID: "a3", PlayerID: "p2", QuizID: "quiz-1", Answers: domain.Answers(0, 0), Score: 0, TotalQuestions: 2, Percentage: 0, CompletedAt: at.Add(2 * time.Second)},
	}
	for _, attempt := range attempts {
		if err := store.AddAttempt(ctx, attempt); err != nil {
			t.Fatalf("add attempt: %v", err)
		}
	}

	all, err := store.AllAttempts(ctx)
	if err != nil {
		t.Fatalf("all attempts: %v", err)
	}
	if len(all) != 3 || all[0].ID != "a1" || all[1].ID != "a2" || all[2].ID != "a3" {
		t.Fatalf("expected insertion order, got %+v", all)
	}
	if !all[0].CompletedAt.Equal(at) || all[0].Answers[1] != nil || *all[0].Answers[0] != 1 {
		t.Fatalf("attempt did not round trip: %+v", all[0])
	}

	mine, err := store.AttemptsByPlayer(ctx, "p2")
	if err != nil || len(mine) != 2 {
		t.Fatalf("expected 2 attempts for p2, got %d (%v)", len(mine), err)
	}
	none, err := store.AttemptsByPlayer(ctx, "nobody")
	if err != nil || len(none) != 0 {
		t.Fatalf("expected no attempts, got %d (%v)", len(none), err)
	}
}
