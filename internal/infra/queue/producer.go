package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// KindWelcome asks the worker to send the welcome email.
	KindWelcome = "welcome"
	// KindReconcile asks the worker to retry finalizing a verified payment
	// whose registration write failed. Idempotent by reference.
	KindReconcile = "reconcile"
)

type CompletionPayload struct {
	Kind           string `json:"kind"`
	Reference      string `json:"reference"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Program        string `json:"program"`
	TechTrack      bool   `json:"tech_track"`
	MonthlyFee     int64  `json:"monthly_fee"`
	DurationMonths int    `json:"duration_months"`
}

type QueueProducerInterface interface {
	PublishCompletion(ctx context.Context, payload CompletionPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishCompletion(ctx context.Context, payload CompletionPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // survives broker restarts
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %v", err)
	}

	return nil
}
