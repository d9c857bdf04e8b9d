package grading

import (
	"time"

	"classquiz-service/internal/models"
)

// CheckEligibility decides whether studentID may start a new attempt on quiz
// at the given instant. Rules run in order and the first failure wins. The
// start and end dates are both inclusive. Pure function: now is always
// injected, never read from the clock here.
func CheckEligibility(quiz *models.Quiz, studentID string, now time.Time) Eligibility {
	if quiz.Status != models.QuizStatusPublished {
		return Eligibility{Reason: ReasonNotPublished}
	}
	if now.Before(quiz.StartDate) {
		return Eligibility{Reason: ReasonNotStarted}
	}
	if now.After(quiz.EndDate) {
		return Eligibility{Reason: ReasonExpired}
	}
	used := quiz.AttemptCount(studentID)
	if used >= quiz.MaxAttempts {
		return Eligibility{Reason: ReasonAttemptsExhausted}
	}
	return Eligibility{
		Eligible:          true,
		AttemptsRemaining: quiz.MaxAttempts - used,
	}
}
