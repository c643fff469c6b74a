package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"society-quiz-service/internal/domain"
)

// SubmissionStore is an in-memory implementation of app.SubmissionStore.
type SubmissionStore struct {
	now func() time.Time

	mu          sync.RWMutex
	submissions map[string]domain.Submission
}

func NewSubmissionStore() *SubmissionStore {
	return NewSubmissionStoreWithClock(time.Now)
}

// NewSubmissionStoreWithClock allows deterministic timestamps in tests.
func NewSubmissionStoreWithClock(now func() time.Time) *SubmissionStore {
	return &SubmissionStore{
		now:         now,
		submissions: make(map[string]domain.Submission),
	}
}

func (s *SubmissionStore) HasSubmission(_ context.Context, teamID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.submissions[teamID]
	return ok, nil
}

func (s *SubmissionStore) RecordSubmission(_ context.Context, teamID string, points int, elapsedMs int64, correctCount int) (domain.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.submissions[teamID]; ok {
		return domain.Submission{}, domain.ErrDuplicateSubmission
	}
	sub := domain.Submission{
		ID:           uuid.NewString(),
		TeamID:       teamID,
		Points:       points,
		ElapsedMs:    elapsedMs,
		CorrectCount: correctCount,
		SubmittedAt:  s.now().UTC(),
	}
	s.submissions[teamID] = sub
	return sub, nil
}

func (s *SubmissionStore) ListAll(_ context.Context) ([]domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Submission, 0, len(s.submissions))
	for _, sub := range s.submissions {
		out = append(out, sub)
	}
	return out, nil
}
