package grading

import (
	"math/rand"
	"sync"
	"time"

	"classquiz-service/internal/auth"
	"classquiz-service/internal/models"
)

// Presenter prepares quizzes for a viewer. It owns the shuffle source so
// tests can seed it deterministically; the mutex makes one shared Presenter
// safe under concurrent request handlers, which rand.Rand alone is not.
type Presenter struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func NewPresenter() *Presenter {
	return &Presenter{rand: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func NewPresenterWithSeed(seed int64) *Presenter {
	return &Presenter{rand: rand.New(rand.NewSource(seed))}
}

// PresentQuiz returns a role-filtered copy of the quiz. Students never see
// answer keys, explanations or other students' attempts in the bare quiz
// object; teachers and admins see everything.
func (p *Presenter) PresentQuiz(quiz *models.Quiz, viewerRole string) QuizView {
	full := viewerRole == auth.RoleTeacher || viewerRole == auth.RoleAdmin

	view := QuizView{
		ID:               quiz.ID,
		Title:            quiz.Title,
		Description:      quiz.Description,
		SubjectID:        quiz.SubjectID,
		ClassID:          quiz.ClassID,
		DurationMinutes:  quiz.DurationMinutes,
		TotalPoints:      quiz.TotalPoints,
		PassingScore:     quiz.PassingScore,
		StartDate:        quiz.StartDate,
		EndDate:          quiz.EndDate,
		MaxAttempts:      quiz.MaxAttempts,
		ShuffleQuestions: quiz.ShuffleQuestions,
		ShowResults:      quiz.ShowResults,
		Status:           quiz.Status,
		Questions:        make([]QuestionView, 0, len(quiz.Questions)),
	}

	for i, question := range quiz.Questions {
		qv := QuestionView{
			OriginalIndex: i,
			Prompt:        question.Prompt,
			Type:          question.Type,
			Options:       question.Options,
			Points:        question.Points,
		}
		if full {
			key := question.CorrectKey
			qv.CorrectKey = &key
			qv.Explanation = question.Explanation
		}
		view.Questions = append(view.Questions, qv)
	}

	if full {
		view.Attempts = quiz.Attempts
	}
	return view
}

// PresentForAttempt builds the student view served when an attempt starts.
// When the quiz requests shuffling the returned question order is randomized;
// the stored quiz is never mutated and each question keeps its original index
// so grading maps answers back to storage order.
func (p *Presenter) PresentForAttempt(quiz *models.Quiz) QuizView {
	view := p.PresentQuiz(quiz, auth.RoleStudent)
	if quiz.ShuffleQuestions {
		p.mu.Lock()
		p.rand.Shuffle(len(view.Questions), func(i, j int) {
			view.Questions[i], view.Questions[j] = view.Questions[j], view.Questions[i]
		})
		p.mu.Unlock()
	}
	return view
}

// AnswerReview pairs a graded answer with its question's key and explanation
// for the post-submission result payload. This is the only place answer keys
// reach a student, and only when the quiz has show_results enabled.
type AnswerReview struct {
	QuestionIndex int               `json:"question_index"`
	Prompt        string            `json:"prompt"`
	Value         string            `json:"value,omitempty"`
	Values        []string          `json:"values,omitempty"`
	IsCorrect     bool              `json:"is_correct"`
	PointsEarned  int               `json:"points_earned"`
	CorrectKey    *models.AnswerKey `json:"correct_key,omitempty"`
	Explanation   string            `json:"explanation,omitempty"`
}

// ReviewAnswers builds the per-answer review for a completed attempt.
func ReviewAnswers(quiz *models.Quiz, attempt models.Attempt) []AnswerReview {
	reviews := make([]AnswerReview, 0, len(attempt.Answers))
	for _, ans := range attempt.Answers {
		review := AnswerReview{
			QuestionIndex: ans.QuestionIndex,
			Value:         ans.Value,
			Values:        ans.Values,
			IsCorrect:     ans.IsCorrect,
			PointsEarned:  ans.PointsEarned,
		}
		if ans.QuestionIndex >= 0 && ans.QuestionIndex < len(quiz.Questions) {
			question := quiz.Questions[ans.QuestionIndex]
			review.Prompt = question.Prompt
			key := question.CorrectKey
			review.CorrectKey = &key
			review.Explanation = question.Explanation
		}
		reviews = append(reviews, review)
	}
	return reviews
}
