package app

import (
	"context"

	"quiz-leaderboard-service/internal/domain"
)

// Store persists players and attempts (in-memory, Redis, Postgres).
type Store interface {
	// AllAttempts returns every recorded attempt; order carries no meaning.
	AllAttempts(ctx context.Context) ([]domain.Attempt, error)
	AttemptsByPlayer(ctx context.Context, playerID string) ([]domain.Attempt, error)
	AddAttempt(ctx context.Context, attempt domain.Attempt) error

	// PlayerByID and PlayerByName return domain.ErrPlayerNotFound when absent.
	PlayerByID(ctx context.Context, id string) (domain.Player, error)
	PlayerByName(ctx context.Context, name string) (domain.Player, error)
	// PlayersByIDs loads many players in one round trip; unknown ids are absent from the map.
	PlayersByIDs(ctx context.Context, ids []string) (map[string]domain.Player, error)
	// AddPlayer returns domain.ErrPlayerExists when the name is already registered.
	AddPlayer(ctx context.Context, player domain.Player) error
}

// QuizRepository loads quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	ListQuizzes(ctx context.Context) ([]domain.Quiz, error)
}
