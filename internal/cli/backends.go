package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"society-quiz-service/internal/app"
	"society-quiz-service/internal/config"
	"society-quiz-service/internal/infra/memory"
	"society-quiz-service/internal/infra/postgres"
	redisstore "society-quiz-service/internal/infra/redis"
	transport "society-quiz-service/internal/transport/http"
)

// backends holds the storage wiring chosen from config:
// postgres when a URL is set, redis for caching (and submissions without postgres),
// YAML files and process memory otherwise.
type backends struct {
	questions   app.QuestionBank
	submissions app.SubmissionStore
	teams       app.TeamDirectory
	checks      map[string]transport.Checker

	db      *bun.DB
	pool    *pgxpool.Pool
	rdb     *redis.Client
	redisQB *redisstore.QuestionBank
}

func openBackends(ctx context.Context, cfg config.Config, logger *zap.Logger) (*backends, error) {
	b := &backends{checks: map[string]transport.Checker{}}
	ttl := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)

	if cfg.Redis.Addr != "" {
		b.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := b.rdb.Ping(ctx).Err(); err != nil {
			b.Close()
			return nil, fmt.Errorf("pinging redis: %w", err)
		}
		rdb := b.rdb
		b.checks["redis"] = transport.CheckerFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		logger.Info("connected to redis", zap.String("addr", cfg.Redis.Addr))
	}

	var loader memory.QuestionLoader
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		b.pool = pool
		b.db = postgres.OpenDB(cfg.Postgres.URL)
		b.checks["postgres"] = transport.CheckerFunc(pool.Ping)

		loader = postgres.NewQuestionLoader(pool)
		b.teams = postgres.NewTeamDirectory(pool)
		b.submissions = postgres.NewSubmissionStore(b.db)
		logger.Info("connected to postgres")
	} else {
		teams, err := memory.ReadTeamsFile(cfg.Quiz.TeamsPath)
		if err != nil {
			b.Close()
			return nil, err
		}
		loader = memory.NewFileQuestionLoader(cfg.Quiz.QuestionsPath)
		b.teams = memory.NewTeamDirectory(teams...)
		logger.Info("loaded teams from file", zap.String("path", cfg.Quiz.TeamsPath), zap.Int("count", len(teams)))

		if b.rdb != nil {
			b.submissions = redisstore.NewSubmissionStore(b.rdb)
		} else {
			logger.Warn("no postgres or redis configured, submissions are kept in memory")
			b.submissions = memory.NewSubmissionStore()
		}
	}

	if b.rdb != nil {
		b.redisQB = redisstore.NewQuestionBank(b.rdb, loader, ttl)
		b.questions = b.redisQB
	} else {
		b.questions = memory.NewQuestionBank(loader, ttl)
	}
	return b, nil
}

func (b *backends) Close() {
	if b.db != nil {
		_ = b.db.Close()
	}
	if b.pool != nil {
		b.pool.Close()
	}
	if b.rdb != nil {
		_ = b.rdb.Close()
	}
}

func newService(cfg config.Config, b *backends, opts ...app.Option) *app.QuizService {
	return app.NewQuizService(b.questions, b.submissions, b.teams, app.ServiceConfig{
		BankID:              cfg.Quiz.BankID,
		Reward:              cfg.Quiz.RewardTable(),
		LeaderboardLimit:    cfg.Quiz.LeaderboardLimit,
		LeaderboardMaxLimit: cfg.Quiz.LeaderboardMaxLimit,
	}, opts...)
}
