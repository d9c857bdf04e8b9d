package grading

import (
	"testing"
	"time"

	"classquiz-service/internal/models"
)

func TestSummarizeStates(t *testing.T) {
	start := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 8, 8, 0, 0, 0, time.UTC)

	base := func() *models.Quiz {
		return &models.Quiz{
			ID:          "quiz-1",
			Title:       "Fractions",
			Status:      models.QuizStatusPublished,
			StartDate:   start,
			EndDate:     end,
			MaxAttempts: 2,
		}
	}

	testCases := []struct {
		name      string
		mutate    func(q *models.Quiz)
		now       time.Time
		wantState string
	}{
		{"before window", func(q *models.Quiz) {}, start.Add(-time.Hour), StateUpcoming},
		{"inside window", func(q *models.Quiz) {}, start.Add(time.Hour), StateAvailable},
		{"after window", func(q *models.Quiz) {}, end.Add(time.Hour), StateExpired},
		{
			"all attempts used",
			func(q *models.Quiz) {
				q.Attempts = []models.Attempt{{StudentID: "s1"}, {StudentID: "s1"}}
			},
			start.Add(time.Hour),
			StateCompleted,
		},
		{
			"attempts left stays available",
			func(q *models.Quiz) {
				q.Attempts = []models.Attempt{{StudentID: "s1"}}
			},
			start.Add(time.Hour),
			StateAvailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			quiz := base()
			tc.mutate(quiz)
			summary := Summarize(quiz, "s1", tc.now)
			if summary.State != tc.wantState {
				t.Errorf("Expected state %q, got %q", tc.wantState, summary.State)
			}
		})
	}
}

func TestSummarizeBestScore(t *testing.T) {
	quiz := &models.Quiz{
		ID:          "quiz-1",
		Status:      models.QuizStatusPublished,
		StartDate:   time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 3, 8, 8, 0, 0, 0, time.UTC),
		MaxAttempts: 3,
		Attempts: []models.Attempt{
			{StudentID: "s1", Percentage: 40},
			{StudentID: "s1", Percentage: 75, Passed: true},
			{StudentID: "s2", Percentage: 95, Passed: true},
		},
	}

	summary := Summarize(quiz, "s1", quiz.StartDate.Add(time.Hour))

	if summary.BestScore != 75 {
		t.Errorf("Expected best score 75, got %d", summary.BestScore)
	}
	if summary.AttemptsUsed != 2 {
		t.Errorf("Expected 2 attempts used, got %d", summary.AttemptsUsed)
	}
	if summary.AttemptsRemaining != 1 {
		t.Errorf("Expected 1 attempt remaining, got %d", summary.AttemptsRemaining)
	}
	if !summary.Passed {
		t.Error("Expected passed once any attempt passed")
	}
}
