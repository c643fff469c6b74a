package app

import "society-quiz-service/internal/domain"

// Score classifies every question of the bank against the answer at the same position
// and sums the reward table. Answers missing at the tail count as unanswered, extra
// answers are ignored and out-of-range option indexes simply count as wrong.
func Score(questions []domain.Question, answers domain.AnswerSet, reward domain.RewardTable) domain.ScoreBreakdown {
	var b domain.ScoreBreakdown
	for i, q := range questions {
		var answer *int
		if i < len(answers) {
			answer = answers[i]
		}
		switch {
		case answer == nil:
			b.UnansweredCount++
			b.Points += reward.PerUnanswered
		case *answer == q.CorrectOptionIndex:
			b.CorrectCount++
			b.Points += reward.PerCorrect
		default:
			b.WrongCount++
			b.Points += reward.PerWrong
		}
	}
	return b
}
