package domain

import (
	"fmt"
	"time"
)

// NoAnswer marks an unanswered position when building a Submission with Answers.
const NoAnswer = -1

// UnknownPlayerName is shown for leaderboard rows whose player record is missing.
const UnknownPlayerName = "Unknown"

// Question models an MCQ question with exactly one correct option.
type Question struct {
	ID           string   `json:"id" yaml:"id"`
	Text         string   `json:"text" yaml:"text"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex int      `json:"correctIndex" yaml:"correctIndex"`
}

// Quiz is an ordered collection of questions. Question order defines answer indexing.
type Quiz struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Submission is a player's selected option per question position.
// A nil entry means the question was left unanswered.
type Submission []*int

// Answers builds a Submission; NoAnswer (or any negative value) leaves the position empty.
func Answers(choices ...int) Submission {
	sub := make(Submission, len(choices))
	for i, c := range choices {
		if c < 0 {
			continue
		}
		sub[i] = &c
	}
	return sub
}

// Attempt is one scored submission of a quiz by a player.
type Attempt struct {
	ID             string     `json:"id"`
	PlayerID       string     `json:"playerId"`
	QuizID         string     `json:"quizId"`
	Answers        Submission `json:"answers"`
	Score          int        `json:"score"`
	TotalQuestions int        `json:"totalQuestions"`
	Percentage     float64    `json:"percentage"`
	CompletedAt    time.Time  `json:"completedAt"`
}

// Player is created once per unique display name.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LeaderboardEntry is the ranked view of a player's best attempt. Never persisted.
type LeaderboardEntry struct {
	Rank           int       `json:"rank"`
	PlayerID       string    `json:"playerId"`
	PlayerName     string    `json:"playerName"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     float64   `json:"percentage"`
	CompletedAt    time.Time `json:"completedAt"`
}

// PlayerStanding is a player's leaderboard row plus their attempt count.
type PlayerStanding struct {
	LeaderboardEntry
	TotalAttempts int `json:"totalAttempts"`
}

// Stats summarizes all recorded attempts.
type Stats struct {
	TotalPlayers      int     `json:"totalPlayers"`
	TotalAttempts     int     `json:"totalAttempts"`
	AveragePercentage float64 `json:"averagePercentage"`
	HighestPercentage float64 `json:"highestPercentage"`
}

// SubmitResult is returned to the player after scoring, including answers for review.
type SubmitResult struct {
	AttemptID      string  `json:"attemptId"`
	PlayerID       string  `json:"playerId"`
	Score          int     `json:"score"`
	TotalQuestions int     `json:"totalQuestions"`
	Percentage     float64 `json:"percentage"`
	CorrectAnswers []int   `json:"correctAnswers"`
}

// PublicQuestion is a question without its correct answer.
type PublicQuestion struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// PublicQuiz is the player-facing view of a quiz.
type PublicQuiz struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Questions []PublicQuestion `json:"questions"`
}

// Public strips correct answers from the quiz.
func (q Quiz) Public() PublicQuiz {
	questions := make([]PublicQuestion, 0, len(q.Questions))
	for _, question := range q.Questions {
		questions = append(questions, PublicQuestion{
			ID:      question.ID,
			Text:    question.Text,
			Options: question.Options,
		})
	}
	return PublicQuiz{ID: q.ID, Title: q.Title, Questions: questions}
}

// CorrectAnswers lists the correct option index per question, in quiz order.
func (q Quiz) CorrectAnswers() []int {
	answers := make([]int, len(q.Questions))
	for i, question := range q.Questions {
		answers[i] = question.CorrectIndex
	}
	return answers
}

// ValidateQuiz checks that every question has at least two options and an in-range correct index.
func ValidateQuiz(q Quiz) error {
	if q.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidQuiz)
	}
	for i, question := range q.Questions {
		if len(question.Options) < 2 {
			return fmt.Errorf("%w: question %d has %d options", ErrInvalidQuiz, i+1, len(question.Options))
		}
		if question.CorrectIndex < 0 || question.CorrectIndex >= len(question.Options) {
			return fmt.Errorf("%w: question %d correct index %d out of range", ErrInvalidQuiz, i+1, question.CorrectIndex)
		}
	}
	return nil
}
