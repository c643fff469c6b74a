package app_test

import (
	"testing"

	"society-quiz-service/internal/app"
	"society-quiz-service/internal/domain"
)

func intp(v int) *int { return &v }

func makeQuestions(correct ...int) []domain.Question {
	qs := make([]domain.Question, len(correct))
	for i, c := range correct {
		qs[i] = domain.Question{
			ID:                 i + 1,
			Prompt:             "question",
			Options:            []string{"a", "b", "c", "d"},
			CorrectOptionIndex: c,
		}
	}
	return qs
}

func TestScoreMixedSheet(t *testing.T) {
	// 15 questions: 10 correct, 3 wrong, 2 unanswered.
	correct := []int{0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2}
	questions := makeQuestions(correct...)

	answers := make(domain.AnswerSet, len(questions))
	for i := 0; i < 10; i++ {
		answers[i] = intp(correct[i])
	}
	for i := 10; i < 13; i++ {
		answers[i] = intp((correct[i] + 1) % 4)
	}

	got := app.Score(questions, answers, domain.DefaultRewardTable())
	if got.Points != 37 {
		t.Fatalf("expected 37 points, got %d", got.Points)
	}
	if got.CorrectCount != 10 || got.WrongCount != 3 || got.UnansweredCount != 2 {
		t.Fatalf("unexpected breakdown %+v", got)
	}
}

func TestScoreSingleAnswerOfFifteen(t *testing.T) {
	questions := makeQuestions(2, 0, 1, 3, 0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2)

	answers := make(domain.AnswerSet, len(questions))
	answers[0] = intp(2)

	got := app.Score(questions, answers, domain.DefaultRewardTable())
	if got.Points != 4 || got.CorrectCount != 1 || got.UnansweredCount != 14 || got.WrongCount != 0 {
		t.Fatalf("unexpected breakdown %+v", got)
	}
}

func TestScoreAllCorrectAndAllUnanswered(t *testing.T) {
	questions := makeQuestions(0, 1, 2, 3, 2)

	all := make(domain.AnswerSet, len(questions))
	for i, q := range questions {
		all[i] = intp(q.CorrectOptionIndex)
	}
	if got := app.Score(questions, all, domain.DefaultRewardTable()); got.Points != 4*len(questions) {
		t.Fatalf("expected %d points, got %d", 4*len(questions), got.Points)
	}

	none := make(domain.AnswerSet, len(questions))
	got := app.Score(questions, none, domain.DefaultRewardTable())
	if got.Points != 0 || got.UnansweredCount != len(questions) {
		t.Fatalf("expected 0 points and all unanswered, got %+v", got)
	}
}

func TestScoreShortAnswersCountAsUnanswered(t *testing.T) {
	questions := makeQuestions(0, 1, 2)

	got := app.Score(questions, domain.AnswerSet{intp(0)}, domain.DefaultRewardTable())
	if got.CorrectCount != 1 || got.UnansweredCount != 2 || got.Points != 4 {
		t.Fatalf("unexpected breakdown %+v", got)
	}

	got = app.Score(questions, domain.AnswerSet{}, domain.DefaultRewardTable())
	if got.UnansweredCount != 3 || got.Points != 0 {
		t.Fatalf("empty answers: unexpected breakdown %+v", got)
	}
}

func TestScoreOutOfRangeIsWrong(t *testing.T) {
	questions := makeQuestions(1, 1)

	got := app.Score(questions, domain.AnswerSet{intp(7), intp(-1)}, domain.DefaultRewardTable())
	if got.WrongCount != 2 || got.Points != -2 {
		t.Fatalf("expected two wrong answers, got %+v", got)
	}
}

func TestScoreIgnoresExtraAnswers(t *testing.T) {
	questions := makeQuestions(2)

	got := app.Score(questions, domain.AnswerSet{intp(2), intp(0), intp(1)}, domain.DefaultRewardTable())
	if got.Total() != 1 || got.Points != 4 {
		t.Fatalf("unexpected breakdown %+v", got)
	}
}

func TestScoreCountsAlwaysCoverBank(t *testing.T) {
	questions := makeQuestions(0, 1, 2, 3, 0, 1, 2, 3)
	sheets := []domain.AnswerSet{
		nil,
		{intp(0)},
		{intp(3), nil, intp(2), intp(9), intp(0)},
		{intp(0), intp(1), intp(2), intp(3), intp(0), intp(1), intp(2), intp(3), intp(1)},
	}
	for i, answers := range sheets {
		got := app.Score(questions, answers, domain.DefaultRewardTable())
		if got.Total() != len(questions) {
			t.Fatalf("sheet %d: counts %+v do not add up to %d", i, got, len(questions))
		}
		if again := app.Score(questions, answers, domain.DefaultRewardTable()); again != got {
			t.Fatalf("sheet %d: scoring not deterministic: %+v vs %+v", i, got, again)
		}
	}
}

func TestScoreCustomRewardTable(t *testing.T) {
	questions := makeQuestions(0, 0, 0)
	reward := domain.RewardTable{PerCorrect: 10, PerWrong: -5, PerUnanswered: -1}

	got := app.Score(questions, domain.AnswerSet{intp(0), intp(1)}, reward)
	if got.Points != 4 {
		t.Fatalf("expected 10-5-1=4, got %d", got.Points)
	}
}
