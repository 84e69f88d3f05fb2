package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"options-quiz-service/internal/domain"
)

const DefaultTopic = "quiz.attempts"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// AttemptPublisher emits one JSON message per completed attempt, keyed by user
// so a user's attempts stay ordered within a partition.
type AttemptPublisher struct {
	writer messageWriter
}

func NewWriter(brokers []string, topic string) *kafka.Writer {
	if topic == "" {
		topic = DefaultTopic
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
		Compression:  kafka.Zstd,
	}
}

func NewAttemptPublisher(brokers []string, topic string) *AttemptPublisher {
	return &AttemptPublisher{writer: NewWriter(brokers, topic)}
}

type attemptEvent struct {
	Type    string             `json:"type"`
	Attempt domain.QuizAttempt `json:"attempt"`
}

func (p *AttemptPublisher) PublishAttempt(ctx context.Context, attempt domain.QuizAttempt) error {
	payload, err := json.Marshal(attemptEvent{Type: "quiz.attempt.completed", Attempt: attempt})
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(attempt.UserID),
		Value: payload,
		Time:  attempt.Date,
	})
}

func (p *AttemptPublisher) Close() error {
	return p.writer.Close()
}
