package models

import "time"

// Answer is one graded entry inside an attempt. QuestionIndex is the position
// of the question in the quiz's stored sequence, independent of any shuffled
// display order.
type Answer struct {
	QuestionIndex int      `bson:"question_index" json:"question_index"`
	Value         string   `bson:"value,omitempty" json:"value,omitempty"`
	Values        []string `bson:"values,omitempty" json:"values,omitempty"`
	IsCorrect     bool     `bson:"is_correct" json:"is_correct"`
	PointsEarned  int      `bson:"points_earned" json:"points_earned"`
}

// Attempt is append-only and immutable once CompletedAt is set.
type Attempt struct {
	StudentID        string    `bson:"student_id" json:"student_id"`
	Answers          []Answer  `bson:"answers" json:"answers"`
	Score            int       `bson:"score" json:"score"`
	TotalPoints      int       `bson:"total_points" json:"total_points"`
	Percentage       int       `bson:"percentage" json:"percentage"`
	Passed           bool      `bson:"passed" json:"passed"`
	StartedAt        time.Time `bson:"started_at" json:"started_at"`
	CompletedAt      time.Time `bson:"completed_at" json:"completed_at"`
	TimeTakenSeconds int       `bson:"time_taken_seconds" json:"time_taken_seconds"`
}
