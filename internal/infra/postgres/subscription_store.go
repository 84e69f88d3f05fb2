package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"options-quiz-service/internal/domain"
)

// SubscriptionStore reads and upserts rows of the subscriptions table.
type SubscriptionStore struct {
	pool *pgxpool.Pool
}

func NewSubscriptionStore(pool *pgxpool.Pool) *SubscriptionStore {
	return &SubscriptionStore{pool: pool}
}

func (s *SubscriptionStore) GetSubscription(ctx context.Context, userID string) (domain.Subscription, error) {
	sub := domain.Subscription{UserID: userID}
	err := s.pool.QueryRow(ctx,
		`SELECT status, updated_at FROM subscriptions WHERE user_id=$1`, userID,
	).Scan(&sub.Status, &sub.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Subscription{}, domain.ErrSubscriptionNotFound
	}
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("load subscription: %w", err)
	}
	sub.UpdatedAt = sub.UpdatedAt.UTC()
	return sub, nil
}

func (s *SubscriptionStore) PutSubscription(ctx context.Context, sub domain.Subscription) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO subscriptions (user_id, status, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`,
		sub.UserID, sub.Status, sub.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}
	return nil
}
