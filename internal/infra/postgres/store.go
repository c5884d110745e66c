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

// Store is a Postgres implementation of app.Store. Attempts are read back in
// insertion order (seq) so rankings stay deterministic.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const attemptColumns = `id, player_id, quiz_id, answers, score, total_questions, percentage, completed_at`

func (s *Store) AllAttempts(ctx context.Context) ([]domain.Attempt, error) {
	return s.queryAttempts(ctx, `SELECT `+attemptColumns+` FROM attempts ORDER BY seq`)
}

func (s *Store) AttemptsByPlayer(ctx context.Context, playerID string) ([]domain.Attempt, error) {
	return s.queryAttempts(ctx, `SELECT `+attemptColumns+` FROM attempts WHERE player_id=$1 ORDER BY seq`, playerID)
}

func (s *Store) AddAttempt(ctx context.Context, attempt domain.Attempt) error {
	answers, err := json.Marshal(attempt.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO attempts (`+attemptColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		attempt.ID, attempt.PlayerID, attempt.QuizID, string(answers),
		attempt.Score, attempt.TotalQuestions, attempt.Percentage, attempt.CompletedAt)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (s *Store) PlayerByID(ctx context.Context, id string) (domain.Player, error) {
	return s.queryPlayer(ctx, `SELECT id, name FROM players WHERE id=$1`, id)
}

func (s *Store) PlayersByIDs(ctx context.Context, ids []string) (map[string]domain.Player, error) {
	out := make(map[string]domain.Player, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM players WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var player domain.Player
		if err := rows.Scan(&player.ID, &player.Name); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		out[player.ID] = player
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	return out, nil
}

func (s *Store) PlayerByName(ctx context.Context, name string) (domain.Player, error) {
	return s.queryPlayer(ctx, `SELECT id, name FROM players WHERE name=$1`, name)
}

func (s *Store) AddPlayer(ctx context.Context, player domain.Player) error {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO players (id, name) VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING`,
		player.ID, player.Name)
	if err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlayerExists
	}
	return nil
}

func (s *Store) queryPlayer(ctx context.Context, query string, arg string) (domain.Player, error) {
	var player domain.Player
	err := s.pool.QueryRow(ctx, query, arg).Scan(&player.ID, &player.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Player{}, domain.ErrPlayerNotFound
	}
	if err != nil {
		return domain.Player{}, fmt.Errorf("load player: %w", err)
	}
	return player, nil
}

func (s *Store) queryAttempts(ctx context.Context, query string, args ...interface{}) ([]domain.Attempt, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Attempt, 0)
	for rows.Next() {
		var (
			attempt domain.Attempt
			answers []byte
		)
		err := rows.Scan(&attempt.ID, &attempt.PlayerID, &attempt.QuizID, &answers,
			&attempt.Score, &attempt.TotalQuestions, &attempt.Percentage, &attempt.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if err := json.Unmarshal(answers, &attempt.Answers); err != nil {
			return nil, fmt.Errorf("decode answers: %w", err)
		}
		attempt.CompletedAt = attempt.CompletedAt.UTC()
		out = append(out, attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	return out, nil
}
