package grading

import (
	"time"

	"classquiz-service/internal/models"
)

// Summarize derives one student's view of a quiz for list screens: the quiz
// state, attempts used and remaining, and the best percentage across that
// student's attempts. Everything here is computed on read; nothing is stored.
func Summarize(quiz *models.Quiz, studentID string, now time.Time) StudentQuizSummary {
	attempts := quiz.AttemptsByStudent(studentID)

	summary := StudentQuizSummary{
		QuizID:       quiz.ID,
		Title:        quiz.Title,
		AttemptsUsed: len(attempts),
	}
	for _, a := range attempts {
		if a.Percentage > summary.BestScore {
			summary.BestScore = a.Percentage
		}
		if a.Passed {
			summary.Passed = true
		}
	}

	remaining := quiz.MaxAttempts - len(attempts)
	if remaining < 0 {
		remaining = 0
	}
	summary.AttemptsRemaining = remaining
	summary.State = quizState(quiz, len(attempts), now)
	return summary
}

func quizState(quiz *models.Quiz, attemptsUsed int, now time.Time) string {
	switch {
	case now.Before(quiz.StartDate):
		return StateUpcoming
	case now.After(quiz.EndDate):
		return StateExpired
	case attemptsUsed >= quiz.MaxAttempts:
		return StateCompleted
	default:
		return StateAvailable
	}
}
