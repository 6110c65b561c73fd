package eventqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"medassist-service/internal/app/contracts"
	"medassist-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	EventQueueName      = "assistant_event_queue"
	DeadLetterQueueName = "assistant_event_dlq"
)

// Event is the payload stored in RabbitMQ.
type Event struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Body      json.RawMessage `json:"body"`
	EmittedAt time.Time       `json:"emitted_at"`
}

// Service publishes domain events onto a durable queue with publisher
// confirms. Unconfirmed publishes are re-published to the DLQ so nothing is
// silently lost.
type Service struct {
	ch       *amqp.Channel
	log      *zap.Logger
	confirms chan amqp.Confirmation
	mu       sync.Mutex
	stale    int // confirmations abandoned by cancelled publishes
}

func NewService(conn *amqp.Connection, log *zap.Logger) (contracts.EventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		EventQueueName, // name
		true,           // durable
		false,          // autoDelete
		false,          // exclusive
		false,          // noWait
		nil,            // args
	)
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		DeadLetterQueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	svc := &Service{
		ch:       ch,
		log:      log,
		confirms: ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}

	return svc, nil
}

func (s *Service) Publish(ctx context.Context, eventName string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	event := Event{
		ID:        uuid.NewString(),
		Name:      eventName,
		Body:      body,
		EmittedAt: time.Now(),
	}
	eventBody, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	// Publish and confirmation wait are serialized; the confirm channel
	// carries acks in publish order, so every publish must consume exactly
	// one confirmation before the next one goes out.
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drainStaleConfirms()

	err = s.ch.PublishWithContext(ctx,
		"",             // exchange
		EventQueueName, // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Body:         eventBody,
		},
	)
	if err != nil {
		return exceptions.ErrQueuePublish(err)
	}

	select {
	case confirmation := <-s.confirms:
		if !confirmation.Ack {
			s.log.Warn("Broker nacked event publish, moving to DLQ",
				zap.String("event_id", event.ID),
				zap.String("event_name", eventName),
			)
			return s.publishToDLQ(ctx, eventBody, event.ID)
		}
	case <-ctx.Done():
		s.stale++
		return ctx.Err()
	}

	return nil
}

// drainStaleConfirms consumes confirmations left behind by publishes whose
// context was cancelled mid-wait, keeping the confirm stream aligned with
// the publish that is about to go out. Caller holds s.mu.
func (s *Service) drainStaleConfirms() {
	for s.stale > 0 {
		<-s.confirms
		s.stale--
	}
}

// publishToDLQ re-publishes a nacked event onto the dead-letter queue and
// waits for that publish's own confirmation. Caller holds s.mu.
func (s *Service) publishToDLQ(ctx context.Context, eventBody []byte, eventID string) error {
	err := s.ch.PublishWithContext(ctx,
		"",
		DeadLetterQueueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    eventID,
			Body:         eventBody,
		},
	)
	if err != nil {
		return exceptions.ErrQueuePublish(err)
	}

	select {
	case confirmation := <-s.confirms:
		if !confirmation.Ack {
			return exceptions.ErrQueuePublish(fmt.Errorf("broker nacked dead-letter publish for event %s", eventID))
		}
	case <-ctx.Done():
		s.stale++
		return ctx.Err()
	}

	return nil
}
