package scoring

import (
	"github.com/shopspring/decimal"

	"quiz-leaderboard-service/internal/domain"
)

// Top returns the first n entries of a built leaderboard.
func Top(entries []domain.LeaderboardEntry, n int) []domain.LeaderboardEntry {
	if n <= 0 {
		return []domain.LeaderboardEntry{}
	}
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}

// Find returns the entry for playerID.
func Find(entries []domain.LeaderboardEntry, playerID string) (domain.LeaderboardEntry, bool) {
	if i := position(entries, playerID); i >= 0 {
		return entries[i], true
	}
	return domain.LeaderboardEntry{}, false
}

// Around returns the entries within radius positions of playerID, the player included.
func Around(entries []domain.LeaderboardEntry, playerID string, radius int) ([]domain.LeaderboardEntry, bool) {
	i := position(entries, playerID)
	if i < 0 {
		return nil, false
	}
	if radius < 0 {
		radius = 0
	}
	lo := max(i-radius, 0)
	hi := min(i+radius+1, len(entries))
	return entries[lo:hi], true
}

// Summarize reports player and attempt counts with the mean and highest percentage.
func Summarize(attempts []domain.Attempt) domain.Stats {
	if len(attempts) == 0 {
		return domain.Stats{}
	}

	players := make(map[string]struct{}, len(attempts))
	sum := decimal.Zero
	highest := attempts[0].Percentage
	for _, attempt := range attempts {
		players[attempt.PlayerID] = struct{}{}
		sum = sum.Add(decimal.NewFromFloat(attempt.Percentage))
		highest = max(highest, attempt.Percentage)
	}

	return domain.Stats{
		TotalPlayers:      len(players),
		TotalAttempts:     len(attempts),
		AveragePercentage: roundPercent(sum.Div(decimal.NewFromInt(int64(len(attempts))))),
		HighestPercentage: highest,
	}
}

func position(entries []domain.LeaderboardEntry, playerID string) int {
	for i, entry := range entries {
		if entry.PlayerID == playerID {
			return i
		}
	}
	return -1
}
