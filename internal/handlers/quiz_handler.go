package handlers

import (
	"context"
	"net/http"
	"time"

	"classquiz-service/internal/auth"
	"classquiz-service/internal/grading"
	"classquiz-service/internal/models"
	"classquiz-service/internal/repository"
	"classquiz-service/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	Service   *service.QuizService
	Presenter *grading.Presenter
}

func NewQuizHandler(s *service.QuizService) *QuizHandler {
	return &QuizHandler{
		Service:   s,
		Presenter: grading.NewPresenter(),
	}
}

func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	var (
		quizzes []models.Quiz
		err     error
	)
	switch {
	case c.Query("class_id") != "":
		quizzes, err = h.Service.ListByClass(context.Background(), c.Query("class_id"))
	case c.GetString(auth.ContextRole) == auth.RoleTeacher:
		quizzes, err = h.Service.ListByTeacher(context.Background(), c.GetString(auth.ContextUserID))
	default:
		quizzes, err = h.Service.ListQuizzes(context.Background())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

func (h *QuizHandler) GetQuiz(c *gin.Context) {
	id := c.Param("id")
	quiz, err := h.Service.GetQuiz(context.Background(), id)
	if err != nil {
		storageError(c, err)
		return
	}
	view := h.Presenter.PresentQuiz(quiz, c.GetString(auth.ContextRole))
	c.JSON(http.StatusOK, view)
}

func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var quiz models.Quiz
	if err := c.ShouldBindJSON(&quiz); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	quiz.TeacherID = c.GetString(auth.ContextUserID)
	if err := h.Service.CreateQuiz(context.Background(), &quiz); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	id := c.Param("id")
	var update map[string]interface{}
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.UpdateQuiz(context.Background(), id, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

// UpdateQuestions replaces the question sequence. Returns 409 once any
// attempt exists, since the sequence is locked at that point.
func (h *QuizHandler) UpdateQuestions(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		Questions []models.Question `json:"questions" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.ReplaceQuestions(context.Background(), id, req.Questions); err != nil {
		if err == repository.ErrQuestionsLocked {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Questions cannot change after the first attempt",
				"code":  "QUESTIONS_LOCKED",
			})
			return
		}
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "questions updated"})
}

func (h *QuizHandler) PublishQuiz(c *gin.Context) {
	if err := h.Service.Publish(context.Background(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "published"})
}

func (h *QuizHandler) CloseQuiz(c *gin.Context) {
	if err := h.Service.Close(context.Background(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "closed"})
}

func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	if err := h.Service.DeleteQuiz(context.Background(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// GetResults is the teacher's report: per-student summaries plus raw attempts.
func (h *QuizHandler) GetResults(attempts *service.AttemptService) gin.HandlerFunc {
	return func(c *gin.Context) {
		quiz, summaries, err := attempts.Results(context.Background(), c.Param("id"), time.Now())
		if err != nil {
			storageError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"quiz_id":  quiz.ID,
			"title":    quiz.Title,
			"students": summaries,
			"attempts": quiz.Attempts,
		})
	}
}
