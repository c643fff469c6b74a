package domain

import "errors"

var (
	// ErrValidation is returned for malformed requests (missing or wrong-typed fields).
	ErrValidation = errors.New("validation error")
	// ErrTeamNotFound is returned when a team id is not present in the directory.
	ErrTeamNotFound = errors.New("team not found")
	// ErrAlreadySubmitted is returned by team verification when the team already has a score.
	ErrAlreadySubmitted = errors.New("team has already submitted")
	// ErrDuplicateSubmission is returned when a second submission is attempted for a team.
	ErrDuplicateSubmission = errors.New("duplicate submission")
	// ErrStorageUnavailable wraps failures of the persistence layer.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrQuestionBankNotFound indicates the question bank could not be loaded.
	ErrQuestionBankNotFound = errors.New("question bank not found")
	// ErrInvalidQuestionBank indicates the question bank content is malformed.
	ErrInvalidQuestionBank = errors.New("invalid question bank")
)
