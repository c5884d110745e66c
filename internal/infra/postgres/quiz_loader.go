package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quiz-leaderboard-service/internal/domain"
)

// QuizLoader loads quiz JSONB from Postgres.
type QuizLoader struct {
	pool *pgxpool.Pool
}

func NewQuizLoader(pool *pgxpool.Pool) *QuizLoader {
	return &QuizLoader{pool: pool}
}

func (l *QuizLoader) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	var raw []byte
	err := l.pool.QueryRow(ctx, `SELECT data FROM quizzes WHERE id=$1`, quizID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	if err != nil {
		return domain.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	return decodeQuiz(quizID, raw)
}

func (l *QuizLoader) LoadQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, data FROM quizzes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := make([]domain.Quiz, 0)
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quiz, err := decodeQuiz(id, raw)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, nil
}

// SeedQuizzes validates and upserts quizzes; existing rows are replaced.
func SeedQuizzes(ctx context.Context, pool *pgxpool.Pool, quizzes []domain.Quiz) error {
	for _, quiz := range quizzes {
		if err := domain.ValidateQuiz(quiz); err != nil {
			return fmt.Errorf("quiz %q: %w", quiz.ID, err)
		}
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, quiz := range quizzes {
		raw, err := json.Marshal(quiz)
		if err != nil {
			return fmt.Errorf("encode quiz %q: %w", quiz.ID, err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO quizzes (id, data) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
			quiz.ID, string(raw))
		if err != nil {
			return fmt.Errorf("upsert quiz %q: %w", quiz.ID, err)
		}
	}
	return tx.Commit(ctx)
}

// SeedIfEmpty seeds quizzes only when the quizzes table has no rows, so
// operator-managed content is never overwritten. It reports whether it seeded.
func SeedIfEmpty(ctx context.Context, pool *pgxpool.Pool, quizzes []domain.Quiz) (bool, error) {
	var exists bool
	if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM quizzes)`).Scan(&exists); err != nil {
		return false, fmt.Errorf("check quizzes: %w", err)
	}
	if exists {
		return false, nil
	}
	if err := SeedQuizzes(ctx, pool, quizzes); err != nil {
		return false, err
	}
	return true, nil
}

func decodeQuiz(quizID string, raw []byte) (domain.Quiz, error) {
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("unmarshal quiz: %w", err)
	}
	if quiz.ID == "" {
		quiz.ID = quizID
	}
	if err := domain.ValidateQuiz(quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("quiz %q: %w", quizID, err)
	}
	return quiz, nil
}
