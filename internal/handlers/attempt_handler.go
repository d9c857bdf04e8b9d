package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"classquiz-service/internal/auth"
	"classquiz-service/internal/grading"
	"classquiz-service/internal/repository"
	"classquiz-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AttemptHandler struct {
	Service *service.AttemptService
}

func NewAttemptHandler(s *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{Service: s}
}

// StartAttempt serves the quiz to a student about to attempt it.
func (h *AttemptHandler) StartAttempt(c *gin.Context) {
	quizID := c.Param("id")
	studentID := c.GetString(auth.ContextUserID)

	result, err := h.Service.StartAttempt(context.Background(), quizID, studentID, time.Now())
	if err != nil {
		var eligErr *service.EligibilityError
		if errors.As(err, &eligErr) {
			c.JSON(eligibilityStatus(eligErr.Reason), gin.H{
				"error": "Attempt not allowed",
				"code":  eligErr.Reason,
			})
			return
		}
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SubmitAttempt grades and records a submission.
func (h *AttemptHandler) SubmitAttempt(c *gin.Context) {
	quizID := c.Param("id")
	studentID := c.GetString(auth.ContextUserID)

	var req struct {
		Answers   []grading.SubmittedAnswer `json:"answers" binding:"required"`
		StartedAt time.Time                 `json:"started_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid submission format",
			"details": err.Error(),
		})
		return
	}

	result, err := h.Service.SubmitAttempt(context.Background(), quizID, studentID, req.Answers, req.StartedAt, time.Now())
	if err != nil {
		var eligErr *service.EligibilityError
		switch {
		case errors.As(err, &eligErr):
			c.JSON(eligibilityStatus(eligErr.Reason), gin.H{
				"error": "Attempt not allowed",
				"code":  eligErr.Reason,
			})
		case errors.Is(err, repository.ErrAttemptRejected):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Attempt was rejected at commit time",
				"code":  "ATTEMPT_REJECTED",
			})
		default:
			storageError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListForStudent annotates the student's visible quizzes with state and
// best score.
func (h *AttemptHandler) ListForStudent(c *gin.Context) {
	studentID := c.GetString(auth.ContextUserID)
	summaries, err := h.Service.ListForStudent(context.Background(), c.Query("class_id"), studentID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": summaries})
}

// storageError distinguishes a missing quiz from a storage fault. Only the
// former is the client's problem.
func storageError(c *gin.Context, err error) {
	if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, primitive.ErrInvalidHex) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// eligibilityStatus maps gate reasons to HTTP statuses: permission-style
// failures are 403, timing failures 400.
func eligibilityStatus(reason string) int {
	switch reason {
	case grading.ReasonNotPublished, grading.ReasonAttemptsExhausted:
		return http.StatusForbidden
	case grading.ReasonNotStarted, grading.ReasonExpired:
		return http.StatusBadRequest
	}
	return http.StatusForbidden
}
