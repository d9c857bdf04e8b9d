package repository

import (
	"context"
	"errors"
	"time"

	"classquiz-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrAttemptRejected is returned when the conditional append finds, at commit
// time, that the student has no attempts left or the quiz is no longer
// published. Retryable conflict, not a fault.
var ErrAttemptRejected = errors.New("attempt rejected: no attempts remaining")

// ErrQuestionsLocked is returned when a question-sequence update arrives after
// the first attempt has been recorded.
var ErrQuestionsLocked = errors.New("question sequence is locked once attempts exist")

type QuizRepository struct {
	Col *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{Col: db.Collection("quizzes")}
}

func (r *QuizRepository) FindAll(ctx context.Context) ([]models.Quiz, error) {
	return r.find(ctx, bson.M{"status": bson.M{"$ne": "deleted"}})
}

func (r *QuizRepository) FindByTeacher(ctx context.Context, teacherID string) ([]models.Quiz, error) {
	return r.find(ctx, bson.M{"teacher_id": teacherID, "status": bson.M{"$ne": "deleted"}})
}

func (r *QuizRepository) FindByClass(ctx context.Context, classID string) ([]models.Quiz, error) {
	return r.find(ctx, bson.M{"class_id": classID, "status": bson.M{"$ne": "deleted"}})
}

// FindPublishedByClass returns the quizzes a student in classID can see.
func (r *QuizRepository) FindPublishedByClass(ctx context.Context, classID string) ([]models.Quiz, error) {
	filter := bson.M{"status": models.QuizStatusPublished}
	if classID != "" {
		filter["class_id"] = classID
	}
	return r.find(ctx, filter)
}

func (r *QuizRepository) find(ctx context.Context, filter bson.M) ([]models.Quiz, error) {
	cur, err := r.Col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var quizzes []models.Quiz
	for cur.Next(ctx) {
		var q models.Quiz
		if err := cur.Decode(&q); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, nil
}

func (r *QuizRepository) FindByID(ctx context.Context, id string) (*models.Quiz, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err // invalid id format
	}
	var quiz models.Quiz
	if err := r.Col.FindOne(ctx, bson.M{"_id": objID}).Decode(&quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	res, err := r.Col.InsertOne(ctx, quiz)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		quiz.ID = oid.Hex()
	}
	return nil
}

func (r *QuizRepository) Update(ctx context.Context, id string, update bson.M) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	update["updated_at"] = time.Now()
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": update})
	return err
}

// ReplaceQuestions swaps the question sequence, but only while no attempt
// exists yet. The guard is part of the update filter so the lock cannot race
// with a concurrent submission.
func (r *QuizRepository) ReplaceQuestions(ctx context.Context, id string, questions []models.Question, totalPoints int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	filter := bson.M{
		"_id": objID,
		"$expr": bson.M{"$eq": bson.A{
			bson.M{"$size": bson.M{"$ifNull": bson.A{"$attempts", bson.A{}}}},
			0,
		}},
	}
	update := bson.M{"$set": bson.M{
		"questions":    questions,
		"total_points": totalPoints,
		"updated_at":   time.Now(),
	}}
	res, err := r.Col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// A miss also happens when the quiz simply does not exist; only a
		// present quiz with attempts is locked.
		if err := r.Col.FindOne(ctx, bson.M{"_id": objID}).Err(); err != nil {
			return err
		}
		return ErrQuestionsLocked
	}
	return nil
}

// AppendAttempt commits a graded attempt with a single conditional update:
// the push only matches while the quiz is still published and the student's
// stored attempt count is below max_attempts. Two racing submissions cannot
// both pass the count check because each read-and-push is one atomic
// document update.
func (r *QuizRepository) AppendAttempt(ctx context.Context, id string, attempt models.Attempt) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	filter := bson.M{
		"_id":    objID,
		"status": models.QuizStatusPublished,
		"$expr": bson.M{"$lt": bson.A{
			bson.M{"$size": bson.M{"$filter": bson.M{
				"input": bson.M{"$ifNull": bson.A{"$attempts", bson.A{}}},
				"cond":  bson.M{"$eq": bson.A{"$$this.student_id", attempt.StudentID}},
			}}},
			"$max_attempts",
		}},
	}
	update := bson.M{
		"$push": bson.M{"attempts": attempt},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	res, err := r.Col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAttemptRejected
	}
	return nil
}

func (r *QuizRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.Col.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"status": "deleted"}})
	return err
}
