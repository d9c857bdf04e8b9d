package service

import (
	"context"
	"fmt"
	"time"

	"classquiz-service/internal/models"
	"classquiz-service/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

type QuizService struct {
	Repo *repository.QuizRepository
}

func NewQuizService(repo *repository.QuizRepository) *QuizService {
	return &QuizService{Repo: repo}
}

func (s *QuizService) ListQuizzes(ctx context.Context) ([]models.Quiz, error) {
	return s.Repo.FindAll(ctx)
}

func (s *QuizService) ListByTeacher(ctx context.Context, teacherID string) ([]models.Quiz, error) {
	return s.Repo.FindByTeacher(ctx, teacherID)
}

func (s *QuizService) ListByClass(ctx context.Context, classID string) ([]models.Quiz, error) {
	return s.Repo.FindByClass(ctx, classID)
}

func (s *QuizService) GetQuiz(ctx context.Context, id string) (*models.Quiz, error) {
	return s.Repo.FindByID(ctx, id)
}

func (s *QuizService) CreateQuiz(ctx context.Context, quiz *models.Quiz) error {
	if quiz.Status == "" {
		quiz.Status = models.QuizStatusDraft
	}
	if quiz.Status != models.QuizStatusDraft && quiz.Status != models.QuizStatusPublished {
		return fmt.Errorf("invalid initial status %q", quiz.Status)
	}
	if quiz.MaxAttempts < 1 {
		quiz.MaxAttempts = 1
	}
	for i := range quiz.Questions {
		quiz.Questions[i].Normalize()
	}
	quiz.RecomputeTotalPoints()
	quiz.Attempts = nil
	quiz.CreatedAt = time.Now()
	quiz.UpdatedAt = quiz.CreatedAt
	return s.Repo.Create(ctx, quiz)
}

// UpdateQuiz changes quiz metadata (title, dates, status, flags). The
// question sequence and attempts are never touched here; question updates go
// through ReplaceQuestions so the lock invariant holds.
func (s *QuizService) UpdateQuiz(ctx context.Context, id string, update map[string]interface{}) error {
	delete(update, "questions")
	delete(update, "attempts")
	delete(update, "total_points")
	if len(update) == 0 {
		return nil
	}
	return s.Repo.Update(ctx, id, bson.M(update))
}

// ReplaceQuestions swaps the question sequence and recomputes total points.
// Fails with ErrQuestionsLocked once any attempt exists.
func (s *QuizService) ReplaceQuestions(ctx context.Context, id string, questions []models.Question) error {
	quiz := models.Quiz{Questions: questions}
	for i := range quiz.Questions {
		quiz.Questions[i].Normalize()
	}
	quiz.RecomputeTotalPoints()
	return s.Repo.ReplaceQuestions(ctx, id, quiz.Questions, quiz.TotalPoints)
}

func (s *QuizService) Publish(ctx context.Context, id string) error {
	return s.Repo.Update(ctx, id, bson.M{"status": models.QuizStatusPublished})
}

func (s *QuizService) Close(ctx context.Context, id string) error {
	return s.Repo.Update(ctx, id, bson.M{"status": models.QuizStatusClosed})
}

func (s *QuizService) DeleteQuiz(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
