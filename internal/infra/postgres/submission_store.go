package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"society-quiz-service/internal/domain"
)

type submissionRow struct {
	bun.BaseModel `bun:"table:submissions,alias:s"`

	ID           uuid.UUID `bun:"id,pk,type:uuid"`
	TeamID       string    `bun:"team_id,notnull,unique"`
	Points       int       `bun:"points,notnull"`
	ElapsedMs    int64     `bun:"elapsed_ms,notnull"`
	CorrectCount int       `bun:"correct_count,notnull"`
	SubmittedAt  time.Time `bun:"submitted_at,notnull"`
}

func (r submissionRow) toDomain() domain.Submission {
	return domain.Submission{
		ID:           r.ID.String(),
		TeamID:       r.TeamID,
		Points:       r.Points,
		ElapsedMs:    r.ElapsedMs,
		CorrectCount: r.CorrectCount,
		SubmittedAt:  r.SubmittedAt.UTC(),
	}
}

// SubmissionStore persists submissions in Postgres. The UNIQUE(team_id) constraint is the
// arbiter for concurrent submissions of one team: the losing insert fails with 23505.
type SubmissionStore struct {
	db  *bun.DB
	now func() time.Time
}

func NewSubmissionStore(db *bun.DB) *SubmissionStore {
	return &SubmissionStore{db: db, now: time.Now}
}

func (s *SubmissionStore) HasSubmission(ctx context.Context, teamID string) (bool, error) {
	exists, err := s.db.NewSelect().
		Model((*submissionRow)(nil)).
		Where("team_id = ?", teamID).
		Exists(ctx)
	if err != nil {
		return false, unavailable("check submission", err)
	}
	return exists, nil
}

func (s *SubmissionStore) RecordSubmission(ctx context.Context, teamID string, points int, elapsedMs int64, correctCount int) (domain.Submission, error) {
	row := submissionRow{
		ID:           uuid.New(),
		TeamID:       teamID,
		Points:       points,
		ElapsedMs:    elapsedMs,
		CorrectCount: correctCount,
		SubmittedAt:  s.now().UTC(),
	}
	if _, err := s.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return domain.Submission{}, domain.ErrDuplicateSubmission
		}
		return domain.Submission{}, unavailable("insert submission", err)
	}
	return row.toDomain(), nil
}

// ListAll returns every submission, best first (served by submissions_ranking_idx).
func (s *SubmissionStore) ListAll(ctx context.Context) ([]domain.Submission, error) {
	var rows []submissionRow
	err := s.db.NewSelect().
		Model(&rows).
		OrderExpr("points DESC, elapsed_ms ASC").
		Scan(ctx)
	if err != nil {
		return nil, unavailable("list submissions", err)
	}
	out := make([]domain.Submission, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out, nil
}
