package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"quiz-leaderboard-service/internal/config"
	"quiz-leaderboard-service/internal/domain"
	"quiz-leaderboard-service/internal/infra/memory"
	"quiz-leaderboard-service/internal/infra/postgres"
	"quiz-leaderboard-service/internal/logging"
)

// NewSeedCmd loads quizzes into Postgres, from a YAML file or the built-in default quiz.
func NewSeedCmd(configPath *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load quizzes into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML file with a list of quizzes (default: built-in quiz)")
	return cmd
}

func runSeed(ctx context.Context, configPath, file string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
		return err
	}

	quizzes := []domain.Quiz{memory.DefaultQuiz()}
	if file != "" {
		quizzes, err = loadQuizFile(file)
		if err != nil {
			return err
		}
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := postgres.SeedQuizzes(ctx, pool, quizzes); err != nil {
		return err
	}
	log.Info("quizzes seeded", zap.Int("count", len(quizzes)))
	return nil
}

// loadQuizFile reads a YAML document of the form `quizzes: [...]`.
func loadQuizFile(path string) ([]domain.Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Quizzes []domain.Quiz `yaml:"quizzes"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(doc.Quizzes) == 0 {
		return nil, fmt.Errorf("%s: no quizzes found", path)
	}
	return doc.Quizzes, nil
}
