package grading

import (
	"reflect"
	"testing"
	"time"

	"classquiz-service/internal/models"
)

func twoQuestionQuiz() *models.Quiz {
	return &models.Quiz{
		ID:           "quiz-1",
		Status:       models.QuizStatusPublished,
		PassingScore: 50,
		TotalPoints:  10,
		Questions: []models.Question{
			{
				Prompt:     "Pick A",
				Type:       models.QuestionTypeMultipleChoice,
				Options:    []string{"A", "B", "C"},
				CorrectKey: models.AnswerKey{Kind: models.AnswerKeyScalar, Value: "A"},
				Points:     5,
			},
			{
				Prompt:      "Pick C",
				Type:        models.QuestionTypeMultipleChoice,
				Options:     []string{"A", "B", "C"},
				CorrectKey:  models.AnswerKey{Kind: models.AnswerKeyScalar, Value: "C"},
				Points:      5,
				Explanation: "C was correct",
			},
		},
	}
}

func TestGradeAttemptHalfCorrect(t *testing.T) {
	quiz := twoQuestionQuiz()
	now := time.Date(2026, 3, 2, 9, 10, 0, 0, time.UTC)
	startedAt := now.Add(-90 * time.Second)

	attempt := GradeAttempt(quiz, []SubmittedAnswer{
		{QuestionIndex: 0, Value: "A"},
		{QuestionIndex: 1, Value: "B"},
	}, startedAt, now)

	if attempt.Score != 5 {
		t.Errorf("Expected score 5, got %d", attempt.Score)
	}
	if attempt.TotalPoints != 10 {
		t.Errorf("Expected total points snapshot 10, got %d", attempt.TotalPoints)
	}
	if attempt.Percentage != 50 {
		t.Errorf("Expected percentage 50, got %d", attempt.Percentage)
	}
	if !attempt.Passed {
		t.Error("Expected 50% to pass with passing score 50")
	}
	if attempt.TimeTakenSeconds != 90 {
		t.Errorf("Expected 90 seconds taken, got %d", attempt.TimeTakenSeconds)
	}
	if !attempt.Answers[0].IsCorrect || attempt.Answers[0].PointsEarned != 5 {
		t.Errorf("Expected first answer correct for 5 points, got %+v", attempt.Answers[0])
	}
	if attempt.Answers[1].IsCorrect || attempt.Answers[1].PointsEarned != 0 {
		t.Errorf("Expected second answer incorrect for 0 points, got %+v", attempt.Answers[1])
	}
}

func TestGradeAttemptIsDeterministic(t *testing.T) {
	quiz := twoQuestionQuiz()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	submitted := []SubmittedAnswer{
		{QuestionIndex: 0, Value: "A"},
		{QuestionIndex: 1, Value: "C"},
	}

	first := GradeAttempt(quiz, submitted, now, now)
	second := GradeAttempt(quiz, submitted, now, now)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical attempts, got %+v then %+v", first, second)
	}
	if first.Score != 10 || first.Percentage != 100 {
		t.Errorf("Expected perfect score, got score=%d percentage=%d", first.Score, first.Percentage)
	}
}

func TestGradeAttemptScalarEquality(t *testing.T) {
	quiz := twoQuestionQuiz()
	now := time.Now()

	testCases := []struct {
		name        string
		answer      SubmittedAnswer
		wantCorrect bool
	}{
		{"exact match", SubmittedAnswer{QuestionIndex: 0, Value: "A"}, true},
		{"case sensitive", SubmittedAnswer{QuestionIndex: 0, Value: "a"}, false},
		{"empty value", SubmittedAnswer{QuestionIndex: 0, Value: ""}, false},
		{"multi shape against scalar key", SubmittedAnswer{QuestionIndex: 0, Values: []string{"A"}}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			attempt := GradeAttempt(quiz, []SubmittedAnswer{tc.answer}, now, now)
			if attempt.Answers[0].IsCorrect != tc.wantCorrect {
				t.Errorf("Expected correct=%v, got %v", tc.wantCorrect, attempt.Answers[0].IsCorrect)
			}
		})
	}
}

func TestGradeAttemptMultiSelect(t *testing.T) {
	quiz := &models.Quiz{
		TotalPoints:  4,
		PassingScore: 50,
		Questions: []models.Question{
			{
				Prompt:     "Pick 1 and 2",
				Type:       models.QuestionTypeMultipleChoice,
				Options:    []string{"1", "2", "3"},
				CorrectKey: models.AnswerKey{Kind: models.AnswerKeyMulti, Values: []string{"1", "2"}},
				Points:     4,
			},
		},
	}
	now := time.Now()

	testCases := []struct {
		name        string
		values      []string
		wantCorrect bool
	}{
		{"same order", []string{"1", "2"}, true},
		{"reversed order", []string{"2", "1"}, true},
		{"partial selection", []string{"1"}, false},
		{"extra selection", []string{"1", "2", "3"}, false},
		{"wrong set", []string{"1", "3"}, false},
		{"empty", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			attempt := GradeAttempt(quiz, []SubmittedAnswer{{QuestionIndex: 0, Values: tc.values}}, now, now)
			if attempt.Answers[0].IsCorrect != tc.wantCorrect {
				t.Errorf("Expected correct=%v for %v, got %v", tc.wantCorrect, tc.values, attempt.Answers[0].IsCorrect)
			}
		})
	}
}

func TestGradeAttemptMalformedEntries(t *testing.T) {
	quiz := twoQuestionQuiz()
	now := time.Now()

	attempt := GradeAttempt(quiz, []SubmittedAnswer{
		{QuestionIndex: -1, Value: "A"},
		{QuestionIndex: 99, Value: "A"},
		{QuestionIndex: 1, Value: "C"},
	}, now, now)

	if attempt.Answers[0].IsCorrect || attempt.Answers[0].PointsEarned != 0 {
		t.Errorf("Expected negative index to score zero, got %+v", attempt.Answers[0])
	}
	if attempt.Answers[1].IsCorrect || attempt.Answers[1].PointsEarned != 0 {
		t.Errorf("Expected out-of-range index to score zero, got %+v", attempt.Answers[1])
	}
	if attempt.Score != 5 {
		t.Errorf("Expected bad entries to leave the rest graded, got score %d", attempt.Score)
	}
}

func TestGradeAttemptMissingEntriesScoreZero(t *testing.T) {
	quiz := twoQuestionQuiz()
	now := time.Now()

	attempt := GradeAttempt(quiz, []SubmittedAnswer{{QuestionIndex: 0, Value: "A"}}, now, now)

	if attempt.Score != 5 || attempt.Percentage != 50 {
		t.Errorf("Expected unanswered questions to earn nothing, got score=%d percentage=%d", attempt.Score, attempt.Percentage)
	}
}

func TestGradeAttemptZeroTotalPoints(t *testing.T) {
	quiz := &models.Quiz{TotalPoints: 0, PassingScore: 50}
	now := time.Now()

	attempt := GradeAttempt(quiz, nil, now, now)

	if attempt.Percentage != 0 {
		t.Errorf("Expected percentage 0 when total points is 0, got %d", attempt.Percentage)
	}
}

func TestGradeAttemptTiming(t *testing.T) {
	quiz := twoQuestionQuiz()
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("missing start defaults to now", func(t *testing.T) {
		attempt := GradeAttempt(quiz, nil, time.Time{}, now)
		if attempt.TimeTakenSeconds != 0 {
			t.Errorf("Expected 0 seconds, got %d", attempt.TimeTakenSeconds)
		}
		if !attempt.StartedAt.Equal(now) {
			t.Errorf("Expected started at %v, got %v", now, attempt.StartedAt)
		}
	})

	t.Run("future start clamps to zero", func(t *testing.T) {
		attempt := GradeAttempt(quiz, nil, now.Add(time.Minute), now)
		if attempt.TimeTakenSeconds != 0 {
			t.Errorf("Expected clamped 0 seconds, got %d", attempt.TimeTakenSeconds)
		}
	})

	t.Run("completed at is now", func(t *testing.T) {
		attempt := GradeAttempt(quiz, nil, now.Add(-time.Minute), now)
		if !attempt.CompletedAt.Equal(now) {
			t.Errorf("Expected completed at %v, got %v", now, attempt.CompletedAt)
		}
	})
}

func TestGradeAttemptRoundsPercentage(t *testing.T) {
	quiz := &models.Quiz{
		TotalPoints:  3,
		PassingScore: 60,
		Questions: []models.Question{
			{CorrectKey: models.AnswerKey{Kind: models.AnswerKeyScalar, Value: "x"}, Points: 2},
			{CorrectKey: models.AnswerKey{Kind: models.AnswerKeyScalar, Value: "y"}, Points: 1},
		},
	}
	now := time.Now()

	attempt := GradeAttempt(quiz, []SubmittedAnswer{{QuestionIndex: 0, Value: "x"}}, now, now)

	// 2/3 => 66.67 rounds to 67
	if attempt.Percentage != 67 {
		t.Errorf("Expected rounded percentage 67, got %d", attempt.Percentage)
	}
	if !attempt.Passed {
		t.Error("Expected 67% to pass with passing score 60")
	}
}

func TestGradeAttemptRepeatedIndexScoresOnce(t *testing.T) {
	quiz := twoQuestionQuiz()
	now := time.Date(2026, 3, 2, 9, 10, 0, 0, time.UTC)

	attempt := GradeAttempt(quiz, []SubmittedAnswer{
		{QuestionIndex: 0, Value: "A"},
		{QuestionIndex: 0, Value: "A"},
		{QuestionIndex: 0, Value: "A"},
	}, now.Add(-time.Minute), now)

	if attempt.Score != 5 {
		t.Errorf("Expected repeats of one question to score 5, got %d", attempt.Score)
	}
	if attempt.Score > quiz.TotalPoints {
		t.Errorf("Score %d exceeds the quiz's %d total points", attempt.Score, quiz.TotalPoints)
	}
	if attempt.Percentage != 50 {
		t.Errorf("Expected percentage 50, got %d", attempt.Percentage)
	}
	if len(attempt.Answers) != 3 {
		t.Fatalf("Expected all 3 entries echoed back, got %d", len(attempt.Answers))
	}
	if !attempt.Answers[0].IsCorrect || attempt.Answers[0].PointsEarned != 5 {
		t.Errorf("Expected the first entry to earn the points, got %+v", attempt.Answers[0])
	}
	for i, a := range attempt.Answers[1:] {
		if a.IsCorrect || a.PointsEarned != 0 {
			t.Errorf("Expected repeat %d graded zero, got %+v", i+1, a)
		}
	}
}
