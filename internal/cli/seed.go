package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"society-quiz-service/internal/infra/memory"
	"society-quiz-service/internal/infra/postgres"
	redisstore "society-quiz-service/internal/infra/redis"
)

// NewSeedCmd loads teams and the question bank from YAML into postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var teamsPath, questionsPath string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load teams and questions from YAML into postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), *configPath, teamsPath, questionsPath)
		},
	}
	cmd.Flags().StringVar(&teamsPath, "teams", "", "teams YAML (defaults to quiz.teams_path)")
	cmd.Flags().StringVar(&questionsPath, "questions", "", "questions YAML (defaults to quiz.questions_path)")
	return cmd
}

func runSeed(ctx context.Context, configPath, teamsPath, questionsPath string) error {
	cfg, logger, err := loadRuntime(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Postgres.URL == "" {
		return errors.New("postgres url not configured")
	}
	if teamsPath == "" {
		teamsPath = cfg.Quiz.TeamsPath
	}
	if questionsPath == "" {
		questionsPath = cfg.Quiz.QuestionsPath
	}
	if teamsPath == "" || questionsPath == "" {
		return errors.New("teams and questions files are required")
	}

	teams, err := memory.ReadTeamsFile(teamsPath)
	if err != nil {
		return err
	}
	bank, err := memory.ReadQuestionBankFile(questionsPath)
	if err != nil {
		return err
	}
	if bank.ID == "" {
		bank.ID = cfg.Quiz.BankID
	}

	db := postgres.OpenDB(cfg.Postgres.URL)
	defer db.Close()

	if _, err := postgres.Migrate(ctx, db); err != nil {
		return err
	}
	if err := postgres.Seed(ctx, db, teams, bank); err != nil {
		return fmt.Errorf("seeding: %w", err)
	}
	logger.Info("seeded",
		zap.Int("teams", len(teams)),
		zap.String("bank_id", bank.ID),
		zap.Int("questions", len(bank.Questions)),
	)

	// Running services would otherwise serve the old bank until the cache expires.
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		if err := redisstore.NewQuestionBank(rdb, nil, 0).Invalidate(ctx, bank.ID); err != nil {
			logger.Warn("question cache invalidation failed", zap.Error(err))
		}
	}
	return nil
}
