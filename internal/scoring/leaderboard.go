package scoring

import (
	"cmp"
	"slices"

	"quiz-leaderboard-service/internal/domain"
)

// PlayerLookup resolves a player record by id; ok is false when no record exists.
type PlayerLookup func(playerID string) (player domain.Player, ok bool)

// CompareAttempts orders attempts best-first: higher score, then higher percentage,
// then the earlier completion. It returns 0 only when all three are equal.
func CompareAttempts(a, b domain.Attempt) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Percentage, a.Percentage); c != 0 {
		return c
	}
	return a.CompletedAt.Compare(b.CompletedAt)
}

// BuildLeaderboard keeps each player's best attempt, orders those best-first and assigns
// competition ranks. Players without attempts do not appear. The result is never nil.
//
// Fully tied attempts keep the order in which their players first appear in attempts,
// so the same input always produces the same leaderboard.
func BuildLeaderboard(attempts []domain.Attempt, lookup PlayerLookup) []domain.LeaderboardEntry {
	best := bestPerPlayer(attempts)
	slices.SortStableFunc(best, CompareAttempts)

	entries := make([]domain.LeaderboardEntry, 0, len(best))
	for _, attempt := range best {
		name := domain.UnknownPlayerName
		if lookup != nil {
			if player, ok := lookup(attempt.PlayerID); ok {
				name = player.Name
			}
		}
		entries = append(entries, domain.LeaderboardEntry{
			PlayerID:       attempt.PlayerID,
			PlayerName:     name,
			Score:          attempt.Score,
			TotalQuestions: attempt.TotalQuestions,
			Percentage:     attempt.Percentage,
			CompletedAt:    attempt.CompletedAt,
		})
	}

	AssignRanks(entries)
	return entries
}

// AssignRanks sets standard competition ranks ("1224") on entries that are already sorted.
// An entry shares the previous rank when score and percentage both match; completion time
// is not considered.
func AssignRanks(entries []domain.LeaderboardEntry) {
	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score && entries[i].Percentage == entries[i-1].Percentage {
			entries[i].Rank = entries[i-1].Rank
			continue
		}
		entries[i].Rank = i + 1
	}
}

func bestPerPlayer(attempts []domain.Attempt) []domain.Attempt {
	index := make(map[string]int, len(attempts))
	best := make([]domain.Attempt, 0)
	for _, attempt := range attempts {
		i, seen := index[attempt.PlayerID]
		if !seen {
			index[attempt.PlayerID] = len(best)
			best = append(best, attempt)
			continue
		}
		if CompareAttempts(attempt, best[i]) < 0 {
			best[i] = attempt
		}
	}
	return best
}
