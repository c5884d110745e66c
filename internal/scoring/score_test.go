package scoring

import (
	"testing"

	"quiz-leaderboard-service/internal/domain"
)

func TestCalculateScore(t *testing.T) {
	quiz := sampleQuiz() // correct: 2, 1, 3

	tests := []struct {
		name   string
		answer domain.Submission
		want   int
	}{
		{"all correct", domain.Answers(2, 1, 3), 3},
		{"all incorrect", domain.Answers(0, 0, 0), 0},
		{"partial", domain.Answers(2, 0, 3), 2},
		{"short submission", domain.Answers(2), 1},
		{"empty submission", domain.Submission{}, 0},
		{"nil submission", nil, 0},
		{"unanswered positions", domain.Answers(domain.NoAnswer, 1, domain.NoAnswer), 1},
		{"out of range choices", domain.Answers(9, 42, 3), 1},
		{"longer than quiz", domain.Answers(2, 1, 3, 0, 1), 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CalculateScore(quiz, tc.answer)
			if got != tc.want {
				t.Fatalf("expected score %d, got %d", tc.want, got)
			}
			if got < 0 || got > len(quiz.Questions) {
				t.Fatalf("score %d outside [0, %d]", got, len(quiz.Questions))
			}
		})
	}
}

func TestCalculateScoreEmptyQuiz(t *testing.T) {
	if got := CalculateScore(domain.Quiz{ID: "empty"}, domain.Answers(0, 1)); got != 0 {
		t.Fatalf("expected 0 for quiz without questions, got %d", got)
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		score, total int
		want         float64
	}{
		{5, 10, 50},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{10, 10, 100},
		{0, 10, 0},
		{1, 8, 12.5},
		{1, 160, 0.63}, // exactly 0.625, rounds up
		{7, 0, 0},
		{0, 0, 0},
	}

	for _, tc := range tests {
		if got := CalculatePercentage(tc.score, tc.total); got != tc.want {
			t.Fatalf("CalculatePercentage(%d, %d): expected %v, got %v", tc.score, tc.total, tc.want, got)
		}
	}
}

func sampleQuiz() domain.Quiz {
	return domain.Quiz{
		ID:    "quiz-1",
		Title: "Sample",
		Questions: []domain.Question{
			{ID: "q1", Text: "Capital of France?", Options: []string{"London", "Berlin", "Paris", "Madrid"}, CorrectIndex: 2},
			{ID: "q2", Text: "Red planet?", Options: []string{"Venus", "Mars", "Jupiter"}, CorrectIndex: 1},
			{ID: "q3", Text: "Largest ocean?", Options: []string{"Atlantic", "Indian", "Arctic", "Pacific"}, CorrectIndex: 3},
		},
	}
}
