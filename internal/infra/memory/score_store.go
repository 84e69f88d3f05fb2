package memory

import (
	"context"
	"sort"
	"sync"

	"options-quiz-service/internal/domain"
)

// ScoreStore keeps quiz attempts in process. Used when Postgres is not configured.
type ScoreStore struct {
	mu       sync.RWMutex
	attempts map[string][]domain.QuizAttempt
}

func NewScoreStore() *ScoreStore {
	return &ScoreStore{attempts: make(map[string][]domain.QuizAttempt)}
}

func (s *ScoreStore) SaveAttempt(_ context.Context, attempt domain.QuizAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[attempt.UserID] = append(s.attempts[attempt.UserID], attempt)
	return nil
}

func (s *ScoreStore) RecentAttempts(_ context.Context, userID string, limit int) ([]domain.QuizAttempt, error) {
	s.mu.RLock()
	out := make([]domain.QuizAttempt, len(s.attempts[userID]))
	copy(out, s.attempts[userID])
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
