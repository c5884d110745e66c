package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"quiz-leaderboard-service/internal/domain"
)

// Store is a Redis implementation of app.Store, shared by every instance.
// Layout:
//
//	HSET players {playerID} {json}
//	HSET players:name {name} {playerID}      (claimed with HSETNX)
//	RPUSH attempts {json}
//	RPUSH player:{playerID}:attempts {json}
//
// Lists keep insertion order so the leaderboard is built from a stable sequence.
type Store struct {
	client *redis.Client
}

const (
	playersKey     = "players"
	playerNamesKey = "players:name"
	attemptsKey    = "attempts"
)

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) AllAttempts(ctx context.Context) ([]domain.Attempt, error) {
	return s.attempts(ctx, attemptsKey)
}

func (s *Store) AttemptsByPlayer(ctx context.Context, playerID string) ([]domain.Attempt, error) {
	return s.attempts(ctx, playerAttemptsKey(playerID))
}

func (s *Store) AddAttempt(ctx context.Context, attempt domain.Attempt) error {
	raw, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("encode attempt: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, attemptsKey, raw)
		pipe.RPush(ctx, playerAttemptsKey(attempt.PlayerID), raw)
		return nil
	})
	if err != nil {
		return fmt.Errorf("push attempt: %w", err)
	}
	return nil
}

func (s *Store) PlayerByID(ctx context.Context, id string) (domain.Player, error) {
	raw, err := s.client.HGet(ctx, playersKey, id).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Player{}, domain.ErrPlayerNotFound
	}
	if err != nil {
		return domain.Player{}, fmt.Errorf("get player: %w", err)
	}
	var player domain.Player
	if err := json.Unmarshal(raw, &player); err != nil {
		return domain.Player{}, fmt.Errorf("decode player: %w", err)
	}
	return player, nil
}

func (s *Store) PlayersByIDs(ctx context.Context, ids []string) (map[string]domain.Player, error) {
	out := make(map[string]domain.Player, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	values, err := s.client.HMGet(ctx, playersKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("get players: %w", err)
	}
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var player domain.Player
		if err := json.Unmarshal([]byte(raw), &player); err != nil {
			return nil, fmt.Errorf("decode player %s: %w", ids[i], err)
		}
		out[ids[i]] = player
	}
	return out, nil
}

func (s *Store) PlayerByName(ctx context.Context, name string) (domain.Player, error) {
	id, err := s.client.HGet(ctx, playerNamesKey, name).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Player{}, domain.ErrPlayerNotFound
	}
	if err != nil {
		return domain.Player{}, fmt.Errorf("get player id: %w", err)
	}
	return s.PlayerByID(ctx, id)
}

// AddPlayer writes the player record before claiming the name, so a name that
// resolves always points at a stored player. Losing the claim removes the record.
func (s *Store) AddPlayer(ctx context.Context, player domain.Player) error {
	raw, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("encode player: %w", err)
	}
	if err := s.client.HSet(ctx, playersKey, player.ID, raw).Err(); err != nil {
		return fmt.Errorf("store player: %w", err)
	}
	claimed, err := s.client.HSetNX(ctx, playerNamesKey, player.Name, player.ID).Result()
	if err == nil && claimed {
		return nil
	}
	_ = s.client.HDel(ctx, playersKey, player.ID).Err()
	if err != nil {
		return fmt.Errorf("claim player name: %w", err)
	}
	return domain.ErrPlayerExists
}

func (s *Store) attempts(ctx context.Context, key string) ([]domain.Attempt, error) {
	raws, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	out := make([]domain.Attempt, 0, len(raws))
	for _, raw := range raws {
		var attempt domain.Attempt
		if err := json.Unmarshal([]byte(raw), &attempt); err != nil {
			return nil, fmt.Errorf("decode attempt: %w", err)
		}
		out = append(out, attempt)
	}
	return out, nil
}

func playerAttemptsKey(playerID string) string {
	return "player:" + playerID + ":attempts"
}
