package grading

import (
	"math"
	"sort"
	"time"

	"classquiz-service/internal/models"
)

// GradeAttempt grades a submission against the quiz's answer keys and returns
// the attempt ready for recording. Pure computation: nothing is persisted here
// and the same inputs always grade the same way.
//
// Malformed entries (out-of-range index, wrong answer shape) score zero
// instead of failing the submission. Each question can earn points once:
// the first entry for an index wins, repeats score zero, so the total can
// never exceed the quiz's total points no matter what the client sends.
func GradeAttempt(quiz *models.Quiz, submitted []SubmittedAnswer, startedAt time.Time, now time.Time) models.Attempt {
	answers := make([]models.Answer, 0, len(submitted))
	graded := make(map[int]bool, len(submitted))
	score := 0

	for _, sub := range submitted {
		answer := models.Answer{
			QuestionIndex: sub.QuestionIndex,
			Value:         sub.Value,
			Values:        sub.Values,
		}
		if sub.QuestionIndex >= 0 && sub.QuestionIndex < len(quiz.Questions) && !graded[sub.QuestionIndex] {
			graded[sub.QuestionIndex] = true
			question := quiz.Questions[sub.QuestionIndex]
			if gradeAnswer(question.CorrectKey, sub) {
				answer.IsCorrect = true
				answer.PointsEarned = question.Points
				score += question.Points
			}
		}
		answers = append(answers, answer)
	}

	if startedAt.IsZero() {
		startedAt = now
	}

	percentage := 0
	if quiz.TotalPoints > 0 {
		percentage = int(math.Round(100 * float64(score) / float64(quiz.TotalPoints)))
	}

	timeTaken := int(math.Round(now.Sub(startedAt).Seconds()))
	if timeTaken < 0 {
		timeTaken = 0
	}

	return models.Attempt{
		Answers:          answers,
		Score:            score,
		TotalPoints:      quiz.TotalPoints,
		Percentage:       percentage,
		Passed:           percentage >= quiz.PassingScore,
		StartedAt:        startedAt,
		CompletedAt:      now,
		TimeTakenSeconds: timeTaken,
	}
}

// gradeAnswer dispatches on the answer key's tag. Scalar keys use exact,
// case-sensitive equality. Multi-select keys require the submitted set to
// equal the correct set exactly, ignoring order; there is no partial credit.
func gradeAnswer(key models.AnswerKey, sub SubmittedAnswer) bool {
	switch key.Kind {
	case models.AnswerKeyScalar:
		if len(sub.Values) > 0 {
			return false
		}
		return sub.Value == key.Value
	case models.AnswerKeyMulti:
		if sub.Value != "" || len(sub.Values) != len(key.Values) {
			return false
		}
		got := append([]string(nil), sub.Values...)
		want := append([]string(nil), key.Values...)
		sort.Strings(got)
		sort.Strings(want)
		for i := range got {
			if got[i] != want[i] {
				return false
			}
		}
		return true
	}
	return false
}
