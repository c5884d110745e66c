package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrPlayerNotFound is returned when no player record exists for an id or name.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrNoAttempts is returned when a known player has not completed any quiz yet.
	ErrNoAttempts = errors.New("player has no attempts")
	// ErrPlayerExists is returned by stores when a player name is already registered.
	ErrPlayerExists = errors.New("player already exists")
	// ErrInvalidQuiz indicates quiz content violates the question invariants.
	ErrInvalidQuiz = errors.New("invalid quiz")
)

// ValidationError reports a structurally invalid request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
