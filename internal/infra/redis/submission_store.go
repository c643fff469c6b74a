package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"society-quiz-service/internal/domain"
)

const submissionsKey = "quiz:submissions"

// SubmissionStore keeps one JSON-encoded submission per team in a Redis hash:
// HSETNX quiz:submissions {teamID} <json>. HSETNX makes the duplicate check and the
// insert a single atomic command.
type SubmissionStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewSubmissionStore(client *redis.Client) *SubmissionStore {
	return &SubmissionStore{client: client, now: time.Now}
}

func (s *SubmissionStore) HasSubmission(ctx context.Context, teamID string) (bool, error) {
	ok, err := s.client.HExists(ctx, submissionsKey, teamID).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return ok, nil
}

func (s *SubmissionStore) RecordSubmission(ctx context.Context, teamID string, points int, elapsedMs int64, correctCount int) (domain.Submission, error) {
	sub := domain.Submission{
		ID:           uuid.NewString(),
		TeamID:       teamID,
		Points:       points,
		ElapsedMs:    elapsedMs,
		CorrectCount: correctCount,
		SubmittedAt:  s.now().UTC(),
	}
	data, err := json.Marshal(sub)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("encode submission: %w", err)
	}
	created, err := s.client.HSetNX(ctx, submissionsKey, teamID, data).Result()
	if err != nil {
		return domain.Submission{}, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if !created {
		return domain.Submission{}, domain.ErrDuplicateSubmission
	}
	return sub, nil
}

func (s *SubmissionStore) ListAll(ctx context.Context) ([]domain.Submission, error) {
	raw, err := s.client.HGetAll(ctx, submissionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	out := make([]domain.Submission, 0, len(raw))
	for teamID, data := range raw {
		var sub domain.Submission
		if err := json.Unmarshal([]byte(data), &sub); err != nil {
			return nil, fmt.Errorf("decode submission for %s: %w", teamID, err)
		}
		out = append(out, sub)
	}
	return out, nil
}
