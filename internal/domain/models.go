package domain

import "time"

// OptionsPerQuestion is the number of choices every question carries.
const OptionsPerQuestion = 4

// Question models an MCQ question with exactly one correct option.
type Question struct {
	ID                 int      `json:"id" yaml:"id"`
	Prompt             string   `json:"prompt" yaml:"prompt"`
	Options            []string `json:"options" yaml:"options"`
	CorrectOptionIndex int      `json:"correctOptionIndex" yaml:"correct"`
}

// Public strips the answer key.
func (q Question) Public() PublicQuestion {
	options := make([]string, len(q.Options))
	copy(options, q.Options)
	return PublicQuestion{ID: q.ID, Prompt: q.Prompt, Options: options}
}

// PublicQuestion is the only form of a question handed to clients.
type PublicQuestion struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// QuestionBank is an ordered collection of questions.
type QuestionBank struct {
	ID        string     `json:"id" yaml:"id"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// AnswerSet is positionally aligned to a question bank; nil means unanswered.
type AnswerSet []*int

// RewardTable holds the per-outcome point values used for scoring.
type RewardTable struct {
	PerCorrect    int `json:"perCorrect"`
	PerWrong      int `json:"perWrong"`
	PerUnanswered int `json:"perUnanswered"`
}

// DefaultRewardTable awards 4 for a correct answer and takes 1 for a wrong one.
func DefaultRewardTable() RewardTable {
	return RewardTable{PerCorrect: 4, PerWrong: -1, PerUnanswered: 0}
}

// ScoreBreakdown summarizes how an answer set was scored.
type ScoreBreakdown struct {
	Points          int `json:"points"`
	CorrectCount    int `json:"correctCount"`
	WrongCount      int `json:"wrongCount"`
	UnansweredCount int `json:"unansweredCount"`
}

// Total is the number of classified questions.
func (b ScoreBreakdown) Total() int {
	return b.CorrectCount + b.WrongCount + b.UnansweredCount
}

// Submission is the single stored scoring attempt of a team.
type Submission struct {
	ID           string    `json:"id"`
	TeamID       string    `json:"teamId"`
	Points       int       `json:"points"`
	ElapsedMs    int64     `json:"elapsedMs"`
	CorrectCount int       `json:"correctCount"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// Team is the display metadata of a registered team.
type Team struct {
	TeamID   string `json:"teamId" yaml:"id"`
	TeamName string `json:"teamName" yaml:"name"`
	TeamLead string `json:"teamLead" yaml:"lead"`
}

// LeaderboardEntry is a ranked, display-enriched view of a team's best submission.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	TeamID    string `json:"teamId"`
	TeamName  string `json:"teamName"`
	TeamLead  string `json:"teamLead"`
	Points    int    `json:"points"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// SubmitRequest carries a team's answer sheet.
type SubmitRequest struct {
	TeamID    string
	Answers   AnswerSet
	ElapsedMs int64
}

// SubmitResult is returned to the team after a successful submission.
type SubmitResult struct {
	Points          int    `json:"points"`
	CorrectCount    int    `json:"correctCount"`
	WrongCount      int    `json:"wrongCount"`
	UnansweredCount int    `json:"unansweredCount"`
	ElapsedMs       int64  `json:"elapsedMs"`
	TeamID          string `json:"teamId"`
	TeamName        string `json:"teamName"`
	TeamLead        string `json:"teamLead"`
}
