package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"society-quiz-service/internal/domain"
)

// QuestionBank loads question content (from cache/backing store).
type QuestionBank interface {
	GetQuestionBank(ctx context.Context, bankID string) (domain.QuestionBank, error)
}

// SubmissionStore persists at most one submission per team.
type SubmissionStore interface {
	HasSubmission(ctx context.Context, teamID string) (bool, error)
	// RecordSubmission must fail with domain.ErrDuplicateSubmission when the team already
	// has a submission, atomically with respect to concurrent calls for the same team.
	RecordSubmission(ctx context.Context, teamID string, points int, elapsedMs int64, correctCount int) (domain.Submission, error)
	ListAll(ctx context.Context) ([]domain.Submission, error)
}

// TeamDirectory resolves team display metadata.
type TeamDirectory interface {
	GetTeam(ctx context.Context, teamID string) (domain.Team, error)
	GetTeams(ctx context.Context, teamIDs []string) (map[string]domain.Team, error)
}

// Submission outcomes reported to SubmissionObserver.
const (
	OutcomeAccepted     = "accepted"
	OutcomeDuplicate    = "duplicate"
	OutcomeInvalid      = "invalid"
	OutcomeTeamNotFound = "team_not_found"
	OutcomeError        = "error"
)

// SubmissionObserver receives one call per submission attempt.
type SubmissionObserver interface {
	ObserveSubmission(outcome string, points int)
}

// ServiceConfig holds the scoring and ranking policy.
type ServiceConfig struct {
	BankID              string
	Reward              domain.RewardTable
	LeaderboardLimit    int
	LeaderboardMaxLimit int
}

// Option customizes a QuizService.
type Option func(*QuizService)

// WithFeed publishes a fresh leaderboard to live subscribers after every accepted submission.
func WithFeed(feed *LeaderboardFeed) Option {
	return func(s *QuizService) { s.feed = feed }
}

// WithObserver reports submission outcomes (metrics).
func WithObserver(observer SubmissionObserver) Option {
	return func(s *QuizService) { s.observer = observer }
}

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *QuizService) { s.logger = logger }
}

// QuizService contains the core quiz use cases.
type QuizService struct {
	questions   QuestionBank
	submissions SubmissionStore
	teams       TeamDirectory
	cfg         ServiceConfig

	feed     *LeaderboardFeed
	observer SubmissionObserver
	logger   *zap.Logger
}

func NewQuizService(questions QuestionBank, submissions SubmissionStore, teams TeamDirectory, cfg ServiceConfig, opts ...Option) *QuizService {
	if cfg.LeaderboardLimit <= 0 {
		cfg.LeaderboardLimit = DefaultLeaderboardLimit
	}
	if cfg.LeaderboardMaxLimit < cfg.LeaderboardLimit {
		cfg.LeaderboardMaxLimit = cfg.LeaderboardLimit
	}
	s := &QuizService{
		questions:   questions,
		submissions: submissions,
		teams:       teams,
		cfg:         cfg,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListQuestions returns the question bank with the answer key withheld.
func (s *QuizService) ListQuestions(ctx context.Context) ([]domain.PublicQuestion, error) {
	bank, err := s.questions.GetQuestionBank(ctx, s.cfg.BankID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PublicQuestion, len(bank.Questions))
	for i, q := range bank.Questions {
		out[i] = q.Public()
	}
	return out, nil
}

// VerifyTeam checks that a team exists and may still start the quiz. When the team has
// already submitted, the team is returned together with domain.ErrAlreadySubmitted.
func (s *QuizService) VerifyTeam(ctx context.Context, teamID string) (domain.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return domain.Team{}, fmt.Errorf("%w: teamId is required", domain.ErrValidation)
	}
	team, err := s.teams.GetTeam(ctx, teamID)
	if err != nil {
		return domain.Team{}, err
	}
	submitted, err := s.submissions.HasSubmission(ctx, teamID)
	if err != nil {
		return domain.Team{}, err
	}
	if submitted {
		return team, domain.ErrAlreadySubmitted
	}
	return team, nil
}

// SubmitQuiz scores an answer sheet and stores it as the team's only submission.
func (s *QuizService) SubmitQuiz(ctx context.Context, req domain.SubmitRequest) (domain.SubmitResult, error) {
	result, err := s.submit(ctx, req)
	s.observe(err, result.Points)
	return result, err
}

func (s *QuizService) submit(ctx context.Context, req domain.SubmitRequest) (domain.SubmitResult, error) {
	teamID := strings.TrimSpace(req.TeamID)
	switch {
	case teamID == "":
		return domain.SubmitResult{}, fmt.Errorf("%w: teamId is required", domain.ErrValidation)
	case req.Answers == nil:
		return domain.SubmitResult{}, fmt.Errorf("%w: answers must be an array", domain.ErrValidation)
	case req.ElapsedMs < 0:
		return domain.SubmitResult{}, fmt.Errorf("%w: elapsedMs must be non-negative", domain.ErrValidation)
	}

	team, err := s.teams.GetTeam(ctx, teamID)
	if err != nil {
		return domain.SubmitResult{}, err
	}

	// Fast path; the store enforces uniqueness again on insert.
	submitted, err := s.submissions.HasSubmission(ctx, teamID)
	if err != nil {
		return domain.SubmitResult{}, err
	}
	if submitted {
		return domain.SubmitResult{}, domain.ErrDuplicateSubmission
	}

	bank, err := s.questions.GetQuestionBank(ctx, s.cfg.BankID)
	if err != nil {
		return domain.SubmitResult{}, err
	}
	breakdown := Score(bank.Questions, req.Answers, s.cfg.Reward)

	if _, err := s.submissions.RecordSubmission(ctx, teamID, breakdown.Points, req.ElapsedMs, breakdown.CorrectCount); err != nil {
		return domain.SubmitResult{}, err
	}

	s.logger.Info("submission recorded",
		zap.String("team_id", teamID),
		zap.Int("points", breakdown.Points),
		zap.Int("correct", breakdown.CorrectCount),
		zap.Int64("elapsed_ms", req.ElapsedMs),
	)
	s.publish(ctx)

	return domain.SubmitResult{
		Points:          breakdown.Points,
		CorrectCount:    breakdown.CorrectCount,
		WrongCount:      breakdown.WrongCount,
		UnansweredCount: breakdown.UnansweredCount,
		ElapsedMs:       req.ElapsedMs,
		TeamID:          team.TeamID,
		TeamName:        team.TeamName,
		TeamLead:        team.TeamLead,
	}, nil
}

// GetLeaderboard ranks the current submissions. A non-positive limit uses the configured
// default; larger limits are capped at the configured maximum.
func (s *QuizService) GetLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = s.cfg.LeaderboardLimit
	}
	if limit > s.cfg.LeaderboardMaxLimit {
		limit = s.cfg.LeaderboardMaxLimit
	}
	submissions, err := s.submissions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return TopEntries(ctx, submissions, s.teams, limit), nil
}

// Subscribe returns a channel that receives leaderboard snapshots, starting with the
// current one. The caller must invoke the returned cancel function to avoid leaks.
func (s *QuizService) Subscribe(ctx context.Context) (<-chan []domain.LeaderboardEntry, func(), error) {
	if s.feed == nil {
		return nil, nil, errors.New("leaderboard feed not configured")
	}
	ch, cancel := s.feed.Subscribe()
	initial, err := s.GetLeaderboard(ctx, 0)
	if err != nil {
		cancel()
		return nil, nil, err
	}
	s.feed.deliver(ch, initial)
	return ch, cancel, nil
}

func (s *QuizService) publish(ctx context.Context) {
	if s.feed == nil || !s.feed.HasSubscribers() {
		return
	}
	entries, err := s.GetLeaderboard(ctx, 0)
	if err != nil {
		s.logger.Warn("leaderboard refresh failed", zap.Error(err))
		return
	}
	s.feed.Publish(entries)
}

func (s *QuizService) observe(err error, points int) {
	if s.observer == nil {
		return
	}
	switch {
	case err == nil:
		s.observer.ObserveSubmission(OutcomeAccepted, points)
	case errors.Is(err, domain.ErrDuplicateSubmission):
		s.observer.ObserveSubmission(OutcomeDuplicate, 0)
	case errors.Is(err, domain.ErrValidation):
		s.observer.ObserveSubmission(OutcomeInvalid, 0)
	case errors.Is(err, domain.ErrTeamNotFound):
		s.observer.ObserveSubmission(OutcomeTeamNotFound, 0)
	default:
		s.observer.ObserveSubmission(OutcomeError, 0)
	}
}
