// internal/queue/queue.go
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// TopicTourConfirmations carries TourBooked events from the server to the
// confirmation-SMS worker.
const TopicTourConfirmations = "tour_confirmations"

// TourBooked is published after a tour is successfully booked.
type TourBooked struct {
	TourID    int       `json:"tour_id"`
	StudentID int       `json:"student_id"`
	StartsAt  time.Time `json:"starts_at"`
}

// Publisher sends a payload to a topic. Implementations are best-effort from
// the caller's point of view: a publish failure never fails the operation
// that produced the event.
type Publisher interface {
	Publish(topic string, payload any) error
}

// AMQPQueue is a RabbitMQ-backed queue.
type AMQPQueue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func Dial(url string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	return &AMQPQueue{conn: conn, ch: ch}, nil
}

func (q *AMQPQueue) Close() {
	q.ch.Close()
	q.conn.Close()
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
	queue, err := q.ch.QueueDeclare(
		topic,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", topic, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	err = q.ch.Publish(
		"",
		queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

const maxRetries = 3

// retryCount reads the x-retry-count header; absent or mistyped reads as 0.
func retryCount(headers amqp.Table) int32 {
	if headers == nil {
		return 0
	}
	switch v := headers["x-retry-count"].(type) {
	case int32:
		return v
	case int64:
		return int32(v)
	}
	return 0
}

// Consume delivers messages from topic to handler with manual acks. A failed
// delivery is re-published with an incremented x-retry-count header (a plain
// requeue would carry the original headers and never count up); after
// maxRetries attempts the message is dropped.
func (q *AMQPQueue) Consume(topic string, handler func(body []byte) error) error {
	queue, err := q.ch.QueueDeclare(topic, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", topic, err)
	}

	msgs, err := q.ch.Consume(
		queue.Name,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume %s: %w", topic, err)
	}

	for d := range msgs {
		if err := handler(d.Body); err != nil {
			retries := retryCount(d.Headers)
			if retries < maxRetries {
				if pubErr := q.ch.Publish(
					"",
					queue.Name,
					false,
					false,
					amqp.Publishing{
						ContentType: "application/json",
						Headers:     amqp.Table{"x-retry-count": retries + 1},
						Body:        d.Body,
					},
				); pubErr != nil {
					// Could not schedule the retry; requeue the original so
					// the message is not lost.
					d.Nack(false, true)
					continue
				}
			}
		}
		d.Ack(false)
	}
	return nil
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(string, any) error { return nil }
