package service

import (
	"context"
	"time"

	"classquiz-service/internal/grading"
	"classquiz-service/internal/models"
	"classquiz-service/internal/store"
)

// AttemptStore is the persistence surface the attempt flow needs. The Mongo
// quiz repository implements it; tests use an in-memory version.
type AttemptStore interface {
	FindByID(ctx context.Context, id string) (*models.Quiz, error)
	AppendAttempt(ctx context.Context, id string, attempt models.Attempt) error
	FindPublishedByClass(ctx context.Context, classID string) ([]models.Quiz, error)
}

// EligibilityError carries an eligibility gate failure to the handler layer.
// These are expected outcomes, not faults.
type EligibilityError struct {
	Reason string
}

func (e *EligibilityError) Error() string {
	return "not eligible: " + e.Reason
}

// StartResult is the payload for a student opening a quiz to attempt it.
type StartResult struct {
	Quiz              grading.QuizView `json:"quiz"`
	AttemptsRemaining int              `json:"attempts_remaining"`
}

// SubmitResult is the payload returned after grading. Answers is only
// populated when the quiz has show_results enabled.
type SubmitResult struct {
	Score            int                    `json:"score"`
	TotalPoints      int                    `json:"total_points"`
	Percentage       int                    `json:"percentage"`
	Passed           bool                   `json:"passed"`
	TimeTakenSeconds int                    `json:"time_taken_seconds"`
	Answers          []grading.AnswerReview `json:"answers,omitempty"`
}

type AttemptService struct {
	Store     AttemptStore
	Starts    *store.StartStore
	presenter *grading.Presenter
}

func NewAttemptService(s AttemptStore, starts *store.StartStore) *AttemptService {
	return &AttemptService{
		Store:     s,
		Starts:    starts,
		presenter: grading.NewPresenter(),
	}
}

// StartAttempt checks eligibility and returns the student view of the quiz,
// shuffled when the quiz asks for it. The server-side start timestamp is
// recorded so the submitted duration cannot be forged by the client.
func (s *AttemptService) StartAttempt(ctx context.Context, quizID, studentID string, now time.Time) (*StartResult, error) {
	quiz, err := s.Store.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	elig := grading.CheckEligibility(quiz, studentID, now)
	if !elig.Eligible {
		return nil, &EligibilityError{Reason: elig.Reason}
	}

	// Start tracking is best effort; grading falls back to the
	// client-supplied start time when the marker is missing.
	ttl := time.Duration(quiz.DurationMinutes)*time.Minute + 5*time.Minute
	_ = s.Starts.MarkStarted(ctx, quizID, studentID, now, ttl)

	return &StartResult{
		Quiz:              s.presenter.PresentForAttempt(quiz),
		AttemptsRemaining: elig.AttemptsRemaining,
	}, nil
}

// SubmitAttempt runs the gate, grades the submission, and commits it with the
// store's conditional append. Eligibility is re-validated here and again
// inside the append itself, so two racing submissions can never push a
// student past max_attempts.
func (s *AttemptService) SubmitAttempt(ctx context.Context, quizID, studentID string, submitted []grading.SubmittedAnswer, startedAt time.Time, now time.Time) (*SubmitResult, error) {
	quiz, err := s.Store.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	elig := grading.CheckEligibility(quiz, studentID, now)
	if !elig.Eligible {
		return nil, &EligibilityError{Reason: elig.Reason}
	}

	if serverStart := s.Starts.StartedAt(ctx, quizID, studentID); !serverStart.IsZero() {
		startedAt = serverStart
	}

	attempt := grading.GradeAttempt(quiz, submitted, startedAt, now)
	attempt.StudentID = studentID

	if err := s.Store.AppendAttempt(ctx, quizID, attempt); err != nil {
		return nil, err
	}
	s.Starts.Clear(ctx, quizID, studentID)

	result := &SubmitResult{
		Score:            attempt.Score,
		TotalPoints:      attempt.TotalPoints,
		Percentage:       attempt.Percentage,
		Passed:           attempt.Passed,
		TimeTakenSeconds: attempt.TimeTakenSeconds,
	}
	if quiz.ShowResults {
		result.Answers = grading.ReviewAnswers(quiz, attempt)
	}
	return result, nil
}

// ListForStudent annotates every visible quiz with the student's state,
// attempts used and best score.
func (s *AttemptService) ListForStudent(ctx context.Context, classID, studentID string, now time.Time) ([]grading.StudentQuizSummary, error) {
	quizzes, err := s.Store.FindPublishedByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	summaries := make([]grading.StudentQuizSummary, 0, len(quizzes))
	for i := range quizzes {
		summaries = append(summaries, grading.Summarize(&quizzes[i], studentID, now))
	}
	return summaries, nil
}

// Results builds the teacher's per-student report for one quiz.
func (s *AttemptService) Results(ctx context.Context, quizID string, now time.Time) (*models.Quiz, []grading.StudentQuizSummary, error) {
	quiz, err := s.Store.FindByID(ctx, quizID)
	if err != nil {
		return nil, nil, err
	}
	seen := map[string]bool{}
	var summaries []grading.StudentQuizSummary
	for _, a := range quiz.Attempts {
		if seen[a.StudentID] {
			continue
		}
		seen[a.StudentID] = true
		summary := grading.Summarize(quiz, a.StudentID, now)
		summary.StudentID = a.StudentID
		summaries = append(summaries, summary)
	}
	return quiz, summaries, nil
}
