package domain

import "fmt"

// Validate checks that every question has four options, a correct index pointing at one
// of them and an id unique within the bank.
func (b QuestionBank) Validate() error {
	if len(b.Questions) == 0 {
		return fmt.Errorf("%w: bank %q has no questions", ErrInvalidQuestionBank, b.ID)
	}
	seen := make(map[int]struct{}, len(b.Questions))
	for i, q := range b.Questions {
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: duplicate question id %d", ErrInvalidQuestionBank, q.ID)
		}
		seen[q.ID] = struct{}{}
		if len(q.Options) != OptionsPerQuestion {
			return fmt.Errorf("%w: question %d (position %d) has %d options, want %d",
				ErrInvalidQuestionBank, q.ID, i, len(q.Options), OptionsPerQuestion)
		}
		if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
			return fmt.Errorf("%w: question %d has correct index %d out of range",
				ErrInvalidQuestionBank, q.ID, q.CorrectOptionIndex)
		}
	}
	return nil
}
