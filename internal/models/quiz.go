package models

import "time"

const (
	QuizStatusDraft     = "draft"
	QuizStatusPublished = "published"
	QuizStatusClosed    = "closed"
)

type Quiz struct {
	ID               string     `bson:"_id,omitempty" json:"id"`
	Title            string     `bson:"title" json:"title"`
	Description      string     `bson:"description" json:"description"`
	SubjectID        string     `bson:"subject_id" json:"subject_id"`
	ClassID          string     `bson:"class_id" json:"class_id"`
	TeacherID        string     `bson:"teacher_id" json:"teacher_id"`
	Questions        []Question `bson:"questions" json:"questions"`
	DurationMinutes  int        `bson:"duration_minutes" json:"duration_minutes"`
	TotalPoints      int        `bson:"total_points" json:"total_points"`
	PassingScore     int        `bson:"passing_score" json:"passing_score"`
	StartDate        time.Time  `bson:"start_date" json:"start_date"`
	EndDate          time.Time  `bson:"end_date" json:"end_date"`
	MaxAttempts      int        `bson:"max_attempts" json:"max_attempts"`
	ShuffleQuestions bool       `bson:"shuffle_questions" json:"shuffle_questions"`
	ShowResults      bool       `bson:"show_results" json:"show_results"`
	Status           string     `bson:"status" json:"status"`
	Attempts         []Attempt  `bson:"attempts" json:"attempts,omitempty"`
	CreatedAt        time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `bson:"updated_at" json:"updated_at"`
}

// RecomputeTotalPoints keeps total_points equal to the sum of question points.
// Call it whenever the question sequence changes.
func (q *Quiz) RecomputeTotalPoints() {
	total := 0
	for _, question := range q.Questions {
		total += question.Points
	}
	q.TotalPoints = total
}

// HasAttempts reports whether any student has attempted the quiz.
// The question sequence is locked once this is true.
func (q *Quiz) HasAttempts() bool {
	return len(q.Attempts) > 0
}

// AttemptsByStudent returns one student's attempts in submission order.
func (q *Quiz) AttemptsByStudent(studentID string) []Attempt {
	var out []Attempt
	for _, a := range q.Attempts {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out
}

func (q *Quiz) AttemptCount(studentID string) int {
	count := 0
	for _, a := range q.Attempts {
		if a.StudentID == studentID {
			count++
		}
	}
	return count
}
