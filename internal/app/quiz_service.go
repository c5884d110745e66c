package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"quiz-leaderboard-service/internal/domain"
	"quiz-leaderboard-service/internal/metrics"
	"quiz-leaderboard-service/internal/scoring"
)

// QuizService contains the quiz-taking use cases.
type QuizService struct {
	quizzes QuizRepository
	store   Store
	board   *LeaderboardService
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	players singleflight.Group
}

func NewQuizService(quizzes QuizRepository, store Store, board *LeaderboardService, log *zap.Logger, m *metrics.Metrics) *QuizService {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuizService{
		quizzes: quizzes,
		store:   store,
		board:   board,
		log:     log,
		metrics: m,
		now:     time.Now,
	}
}

// NewQuizServiceWithClock is test-only for deterministic completion timestamps.
func NewQuizServiceWithClock(quizzes QuizRepository, store Store, board *LeaderboardService, now func() time.Time) *QuizService {
	s := NewQuizService(quizzes, store, board, nil, nil)
	s.now = now
	return s
}

// ListQuizzes returns every quiz without its answers.
func (s *QuizService) ListQuizzes(ctx context.Context) ([]domain.PublicQuiz, error) {
	quizzes, err := s.quizzes.ListQuizzes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PublicQuiz, 0, len(quizzes))
	for _, quiz := range quizzes {
		out = append(out, quiz.Public())
	}
	return out, nil
}

// GetQuiz returns a quiz without its answers.
func (s *QuizService) GetQuiz(ctx context.Context, quizID string) (domain.PublicQuiz, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.PublicQuiz{}, err
	}
	return quiz.Public(), nil
}

// Submit scores answers for playerName, records the attempt and pushes the new
// leaderboard to live subscribers. The player is created on first submission.
func (s *QuizService) Submit(ctx context.Context, quizID, playerName string, answers domain.Submission) (domain.SubmitResult, error) {
	name := strings.TrimSpace(playerName)
	if name == "" || answers == nil {
		return domain.SubmitResult{}, &domain.ValidationError{Message: "Missing playerName or answers"}
	}

	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.SubmitResult{}, err
	}

	player, err := s.resolvePlayer(ctx, name)
	if err != nil {
		return domain.SubmitResult{}, fmt.Errorf("resolve player: %w", err)
	}

	total := len(quiz.Questions)
	score := scoring.CalculateScore(quiz, answers)
	attempt := domain.Attempt{
		ID:             uuid.NewString(),
		PlayerID:       player.ID,
		QuizID:         quiz.ID,
		Answers:        answers,
		Score:          score,
		TotalQuestions: total,
		Percentage:     scoring.CalculatePercentage(score, total),
		CompletedAt:    s.now().UTC(),
	}
	if err := s.store.AddAttempt(ctx, attempt); err != nil {
		return domain.SubmitResult{}, fmt.Errorf("store attempt: %w", err)
	}

	s.metrics.ObserveSubmission(quiz.ID)
	s.log.Info("attempt recorded",
		zap.String("attempt_id", attempt.ID),
		zap.String("player_id", player.ID),
		zap.String("quiz_id", quiz.ID),
		zap.Int("score", score),
		zap.Int("total", total),
	)

	if s.board != nil {
		s.board.Publish(ctx)
	}

	return domain.SubmitResult{
		AttemptID:      attempt.ID,
		PlayerID:       player.ID,
		Score:          score,
		TotalQuestions: total,
		Percentage:     attempt.Percentage,
		CorrectAnswers: quiz.CorrectAnswers(),
	}, nil
}

// resolvePlayer finds the player registered under name or creates one. Concurrent
// submissions for the same new name collapse into a single creation, which does
// not inherit the first caller's cancellation.
func (s *QuizService) resolvePlayer(ctx context.Context, name string) (domain.Player, error) {
	ctx = context.WithoutCancel(ctx)
	result, err, _ := s.players.Do(name, func() (interface{}, error) {
		player, err := s.store.PlayerByName(ctx, name)
		if err == nil {
			return player, nil
		}
		if !errors.Is(err, domain.ErrPlayerNotFound) {
			return domain.Player{}, err
		}

		player = domain.Player{ID: uuid.NewString(), Name: name}
		err = s.store.AddPlayer(ctx, player)
		if errors.Is(err, domain.ErrPlayerExists) {
			// Registered by another instance between lookup and insert.
			existing, lookupErr := s.store.PlayerByName(ctx, name)
			if lookupErr != nil {
				return domain.Player{}, lookupErr
			}
			return existing, nil
		}
		if err != nil {
			return domain.Player{}, err
		}
		s.log.Debug("player created", zap.String("player_id", player.ID), zap.String("name", name))
		return player, nil
	})
	if err != nil {
		return domain.Player{}, err
	}
	return result.(domain.Player), nil
}
