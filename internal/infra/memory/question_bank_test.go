package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"society-quiz-service/internal/domain"
)

func TestQuestionBankCaches(t *testing.T) {
	loader := &countingLoader{
		QuestionLoader: NewStaticQuestionLoader(sampleBank()),
	}
	repo := NewQuestionBank(loader, time.Minute)

	if _, err := repo.GetQuestionBank(context.Background(), "bank-1"); err != nil {
		t.Fatalf("get bank: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected loader once, got %d", loader.calls)
	}

	if _, err := repo.GetQuestionBank(context.Background(), "bank-1"); err != nil {
		t.Fatalf("get bank 2: %v", err)
	}
	if loader.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", loader.calls)
	}
}

func TestQuestionBankReloadsAfterExpiry(t *testing.T) {
	loader := &countingLoader{
		QuestionLoader: NewStaticQuestionLoader(sampleBank()),
	}
	repo := NewQuestionBank(loader, time.Minute)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo.clock = func() time.Time { return now }

	if _, err := repo.GetQuestionBank(context.Background(), "bank-1"); err != nil {
		t.Fatalf("get bank: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := repo.GetQuestionBank(context.Background(), "bank-1"); err != nil {
		t.Fatalf("get bank after expiry: %v", err)
	}
	if loader.calls != 2 {
		t.Fatalf("expected reload after expiry, loader calls %d", loader.calls)
	}
}

func TestQuestionBankRejectsInvalidBank(t *testing.T) {
	bank := sampleBank()
	bank.Questions[0].CorrectOptionIndex = 4
	repo := NewQuestionBank(NewStaticQuestionLoader(bank), time.Minute)

	_, err := repo.GetQuestionBank(context.Background(), "bank-1")
	if !errors.Is(err, domain.ErrInvalidQuestionBank) {
		t.Fatalf("expected invalid bank error, got %v", err)
	}
}

func TestQuestionBankUnknownID(t *testing.T) {
	repo := NewQuestionBank(NewStaticQuestionLoader(sampleBank()), time.Minute)

	_, err := repo.GetQuestionBank(context.Background(), "missing")
	if !errors.Is(err, domain.ErrQuestionBankNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFileQuestionLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yaml")
	content := `id: bank-1
questions:
  - id: 1
    prompt: Which port does HTTPS use by default?
    options: ["21", "80", "443", "8080"]
    correct: 2
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	bank, err := NewFileQuestionLoader(path).LoadQuestionBank(context.Background(), "bank-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(bank.Questions) != 1 || bank.Questions[0].CorrectOptionIndex != 2 {
		t.Fatalf("unexpected bank %+v", bank)
	}
	if _, err := NewFileQuestionLoader(path).LoadQuestionBank(context.Background(), "other"); !errors.Is(err, domain.ErrQuestionBankNotFound) {
		t.Fatalf("expected not found for other id, got %v", err)
	}
}

type countingLoader struct {
	QuestionLoader
	calls int
}

func (l *countingLoader) LoadQuestionBank(ctx context.Context, bankID string) (domain.QuestionBank, error) {
	l.calls++
	return l.QuestionLoader.LoadQuestionBank(ctx, bankID)
}

func sampleBank() domain.QuestionBank {
	return domain.QuestionBank{
		ID: "bank-1",
		Questions: []domain.Question{
			{
				ID:                 1,
				Prompt:             "What is 2 + 2?",
				Options:            []string{"3", "4", "5", "22"},
				CorrectOptionIndex: 1,
			},
		},
	}
}
