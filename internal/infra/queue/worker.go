package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

type WelcomeMailer interface {
	SendWelcome(to, name, program string, monthlyFee int64, durationMonths int) error
}

// CompletionRetrier replays a registration completion for a verified
// payment reference. Must be idempotent.
type CompletionRetrier interface {
	Retry(ctx context.Context, reference string) error
}

type Worker struct {
	Channel *amqp.Channel
	Mailer  WelcomeMailer
	Retrier CompletionRetrier
}

func NewWorker(ch *amqp.Channel, mailer WelcomeMailer, retrier CompletionRetrier) *Worker {
	return &Worker{
		Channel: ch,
		Mailer:  mailer,
		Retrier: retrier,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload CompletionPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] invalid JSON: %s", err)
				// Malformed message. Reject without requeue so it cannot
				// wedge the queue.
				d.Nack(false, false)
				continue
			}

			if err := w.processMessage(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] %s failed for %s: %s", payload.Kind, payload.Reference, err)
				// Off to the DLQ; ops replays from there.
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] worker waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) processMessage(ctx context.Context, payload CompletionPayload) error {
	switch payload.Kind {
	case KindWelcome:
		log.Printf("📧 [WORKER] sending welcome email to %s", payload.Email)
		return w.Mailer.SendWelcome(payload.Email, payload.Name, payload.Program, payload.MonthlyFee, payload.DurationMonths)

	case KindReconcile:
		log.Printf("🔄 [WORKER] reconciling verified payment %s", payload.Reference)
		return w.Retrier.Retry(ctx, payload.Reference)

	default:
		log.Printf("⚠️ [WORKER] unknown message kind %q, dropping", payload.Kind)
		// Ack and move on; we have no handler for it.
		return nil
	}
}
