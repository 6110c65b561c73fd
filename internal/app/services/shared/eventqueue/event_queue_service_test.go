package eventqueue

import (
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDrainStaleConfirms(t *testing.T) {
	t.Run("consumes confirmations abandoned by cancelled publishes", func(t *testing.T) {
		svc := &Service{
			log:      zap.NewNop(),
			confirms: make(chan amqp.Confirmation, 2),
		}
		svc.confirms <- amqp.Confirmation{DeliveryTag: 1, Ack: true}
		svc.stale = 1

		svc.drainStaleConfirms()

		assert.Zero(t, svc.stale)
		assert.Empty(t, svc.confirms, "stale confirmation must be gone before the next publish waits")
	})

	t.Run("no-op when nothing is stale", func(t *testing.T) {
		svc := &Service{
			log:      zap.NewNop(),
			confirms: make(chan amqp.Confirmation, 2),
		}
		svc.confirms <- amqp.Confirmation{DeliveryTag: 1, Ack: true}

		svc.drainStaleConfirms()

		assert.Len(t, svc.confirms, 1, "a pending confirmation that belongs to a live publish stays queued")
	})
}
