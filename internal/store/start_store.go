package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StartStore keeps the server-side startedAt timestamp for in-flight
// attempts, keyed by (quiz, student). Entries expire with the quiz duration
// plus a grace window so abandoned attempts clean themselves up.
type StartStore struct {
	client *redis.Client
}

func NewStartStore(addr, password string) *StartStore {
	if addr == "" {
		return nil
	}
	return &StartStore{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})}
}

func key(quizID, studentID string) string {
	return fmt.Sprintf("attempt:start:%s:%s", quizID, studentID)
}

// MarkStarted records when the student fetched the quiz for an attempt.
// An already-running attempt keeps its original timestamp.
func (s *StartStore) MarkStarted(ctx context.Context, quizID, studentID string, startedAt time.Time, ttl time.Duration) error {
	if s == nil {
		return nil
	}
	return s.client.SetNX(ctx, key(quizID, studentID), startedAt.UTC().Format(time.RFC3339Nano), ttl).Err()
}

// StartedAt returns the recorded start time, or zero when none is known.
func (s *StartStore) StartedAt(ctx context.Context, quizID, studentID string) time.Time {
	if s == nil {
		return time.Time{}
	}
	val, err := s.client.Get(ctx, key(quizID, studentID)).Result()
	if err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Clear drops the start marker after the attempt is committed.
func (s *StartStore) Clear(ctx context.Context, quizID, studentID string) {
	if s == nil {
		return
	}
	s.client.Del(ctx, key(quizID, studentID))
}
