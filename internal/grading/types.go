package grading

import (
	"time"

	"classquiz-service/internal/models"
)

// Eligibility gate reasons, surfaced verbatim to callers.
const (
	ReasonNotPublished      = "NOT_PUBLISHED"
	ReasonNotStarted        = "NOT_STARTED"
	ReasonExpired           = "EXPIRED"
	ReasonAttemptsExhausted = "ATTEMPTS_EXHAUSTED"
)

// Per-student quiz states derived on read.
const (
	StateUpcoming  = "upcoming"
	StateAvailable = "available"
	StateCompleted = "completed"
	StateExpired   = "expired"
)

// Eligibility is the outcome of the attempt gate. Reason is empty when
// Eligible is true.
type Eligibility struct {
	Eligible          bool   `json:"eligible"`
	Reason            string `json:"reason,omitempty"`
	AttemptsRemaining int    `json:"attempts_remaining"`
}

// SubmittedAnswer is one entry of a student submission, addressed by the
// question's original index in the quiz. Value carries scalar answers,
// Values multi-select ones.
type SubmittedAnswer struct {
	QuestionIndex int      `json:"question_index"`
	Value         string   `json:"value"`
	Values        []string `json:"values,omitempty"`
}

// QuestionView is a question prepared for a viewer. OriginalIndex travels
// with the question so graded answers map back to storage order no matter
// how the display order was shuffled. The answer key and explanation are
// only populated for teacher and admin viewers.
type QuestionView struct {
	OriginalIndex int               `json:"original_index"`
	Prompt        string            `json:"prompt"`
	Type          string            `json:"type"`
	Options       []string          `json:"options"`
	Points        int               `json:"points"`
	CorrectKey    *models.AnswerKey `json:"correct_key,omitempty"`
	Explanation   string            `json:"explanation,omitempty"`
}

// QuizView is a quiz prepared for a viewer. Attempts are only populated for
// teacher and admin viewers.
type QuizView struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	SubjectID        string           `json:"subject_id"`
	ClassID          string           `json:"class_id"`
	DurationMinutes  int              `json:"duration_minutes"`
	TotalPoints      int              `json:"total_points"`
	PassingScore     int              `json:"passing_score"`
	StartDate        time.Time        `json:"start_date"`
	EndDate          time.Time        `json:"end_date"`
	MaxAttempts      int              `json:"max_attempts"`
	ShuffleQuestions bool             `json:"shuffle_questions"`
	ShowResults      bool             `json:"show_results"`
	Status           string           `json:"status"`
	Questions        []QuestionView   `json:"questions"`
	Attempts         []models.Attempt `json:"attempts,omitempty"`
}

// StudentQuizSummary annotates one quiz for one student's list view.
type StudentQuizSummary struct {
	QuizID            string `json:"quiz_id"`
	StudentID         string `json:"student_id,omitempty"`
	Title             string `json:"title"`
	State             string `json:"state"`
	AttemptsUsed      int    `json:"attempts_used"`
	AttemptsRemaining int    `json:"attempts_remaining"`
	BestScore         int    `json:"best_score"`
	Passed            bool   `json:"passed"`
}
