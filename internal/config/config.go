package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"society-quiz-service/internal/domain"
)

type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
	} `yaml:"server"`
	Log   LogConfig `yaml:"log"`
	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url" env:"POSTGRES_URL"`
	} `yaml:"postgres"`
	Quiz QuizConfig `yaml:"quiz"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
	// File enables rotated JSON logs in addition to stdout.
	File       string `yaml:"file" env:"LOG_FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type QuizConfig struct {
	BankID              string `yaml:"bank_id" env:"BANK_ID"`
	QuestionsPath       string `yaml:"questions_path" env:"QUESTIONS_PATH"`
	TeamsPath           string `yaml:"teams_path" env:"TEAMS_PATH"`
	TTL                 string `yaml:"ttl" env:"QUESTIONS_TTL"`
	LeaderboardLimit    int    `yaml:"leaderboard_limit" env:"LEADERBOARD_LIMIT"`
	LeaderboardMaxLimit int    `yaml:"leaderboard_max_limit" env:"LEADERBOARD_MAX_LIMIT"`
	Reward              struct {
		// Pointers so that an explicit 0 is kept and an absent value takes the default.
		Correct    *int `yaml:"correct" env:"REWARD_CORRECT"`
		Wrong      *int `yaml:"wrong" env:"REWARD_WRONG"`
		Unanswered *int `yaml:"unanswered" env:"REWARD_UNANSWERED"`
	} `yaml:"reward"`
}

const envPrefix = "QUIZ_"

// Load reads YAML config from path and applies QUIZ_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	cfg.setDefaults()
	return cfg, cfg.Validate()
}

// ApplyEnv overlays environment variables on top of cfg.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Quiz.BankID == "" {
		c.Quiz.BankID = "default"
	}
	if c.Quiz.LeaderboardLimit == 0 {
		c.Quiz.LeaderboardLimit = 200
	}
	if c.Quiz.LeaderboardMaxLimit == 0 {
		c.Quiz.LeaderboardMaxLimit = 1000
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate rejects settings the service cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Quiz.LeaderboardLimit < 0 {
		errs = append(errs, errors.New("quiz.leaderboard_limit must be positive"))
	}
	if c.Quiz.LeaderboardMaxLimit < c.Quiz.LeaderboardLimit {
		errs = append(errs, errors.New("quiz.leaderboard_max_limit must be >= quiz.leaderboard_limit"))
	}
	if c.Postgres.URL == "" && c.Quiz.QuestionsPath == "" {
		errs = append(errs, errors.New("quiz.questions_path is required without postgres"))
	}
	if c.Postgres.URL == "" && c.Quiz.TeamsPath == "" {
		errs = append(errs, errors.New("quiz.teams_path is required without postgres"))
	}
	return errors.Join(errs...)
}

// RewardTable returns the configured reward table, defaulting absent values.
func (q QuizConfig) RewardTable() domain.RewardTable {
	table := domain.DefaultRewardTable()
	if q.Reward.Correct != nil {
		table.PerCorrect = *q.Reward.Correct
	}
	if q.Reward.Wrong != nil {
		table.PerWrong = *q.Reward.Wrong
	}
	if q.Reward.Unanswered != nil {
		table.PerUnanswered = *q.Reward.Unanswered
	}
	return table
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
