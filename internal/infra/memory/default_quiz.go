package memory

import "quiz-leaderboard-service/internal/domain"

// DefaultQuizID is the quiz served when no database is configured.
const DefaultQuizID = "default"

// DefaultQuiz is the built-in General Knowledge quiz.
func DefaultQuiz() domain.Quiz {
	return domain.Quiz{
		ID:    DefaultQuizID,
		Title: "General Knowledge Quiz",
		Questions: []domain.Question{
			{ID: "q1", Text: "What is the capital of France?", Options: []string{"London", "Berlin", "Paris", "Madrid"}, CorrectIndex: 2},
			{ID: "q2", Text: "Which planet is known as the Red Planet?", Options: []string{"Venus", "Mars", "Jupiter", "Saturn"}, CorrectIndex: 1},
			{ID: "q3", Text: "What is the largest ocean on Earth?", Options: []string{"Atlantic", "Indian", "Arctic", "Pacific"}, CorrectIndex: 3},
			{ID: "q4", Text: "How many continents are there?", Options: []string{"5", "6", "7", "8"}, CorrectIndex: 2},
			{ID: "q5", Text: "What is the chemical symbol for gold?", Options: []string{"Go", "Gd", "Au", "Ag"}, CorrectIndex: 2},
			{ID: "q6", Text: "Who painted the Mona Lisa?", Options: []string{"Van Gogh", "Picasso", "Da Vinci", "Michelangelo"}, CorrectIndex: 2},
			{ID: "q7", Text: "What is the largest mammal in the world?", Options: []string{"Elephant", "Blue Whale", "Giraffe", "Hippopotamus"}, CorrectIndex: 1},
			{ID: "q8", Text: "In what year did World War II end?", Options: []string{"1943", "1944", "1945", "1946"}, CorrectIndex: 2},
			{ID: "q9", Text: "What is the hardest natural substance on Earth?", Options: []string{"Gold", "Iron", "Diamond", "Platinum"}, CorrectIndex: 2},
			{ID: "q10", Text: "How many bones are in the adult human body?", Options: []string{"186", "206", "226", "246"}, CorrectIndex: 1},
		},
	}
}
