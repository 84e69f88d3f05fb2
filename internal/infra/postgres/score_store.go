package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
	"options-quiz-service/internal/domain"
)

// ScoreStore keeps completed quiz attempts in the scores table.
type ScoreStore struct {
	pool *pgxpool.Pool
}

func NewScoreStore(pool *pgxpool.Pool) *ScoreStore {
	return &ScoreStore{pool: pool}
}

func (s *ScoreStore) SaveAttempt(ctx context.Context, a domain.QuizAttempt) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO scores (id, user_id, score, total_questions, symbol, strategy, date, trade_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.UserID, a.Score, a.TotalQuestions, a.Symbol, a.Strategy, a.Date, a.TradeDate,
	)
	if err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

// RecentAttempts returns the user's attempts, newest first.
func (s *ScoreStore) RecentAttempts(ctx context.Context, userID string, limit int) ([]domain.QuizAttempt, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, score, total_questions, symbol, strategy, date, trade_date
		 FROM scores WHERE user_id=$1 ORDER BY date DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	attempts := make([]domain.QuizAttempt, 0, limit)
	for rows.Next() {
		var a domain.QuizAttempt
		if err := rows.Scan(&a.ID, &a.UserID, &a.Score, &a.TotalQuestions, &a.Symbol, &a.Strategy, &a.Date, &a.TradeDate); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Date = a.Date.UTC()
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return attempts, nil
}
