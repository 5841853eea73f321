package messaging

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const TypeStockUpdate = "stock_update"

// Actions carried by stock_update events.
const (
	ActionSaleCompleted = "sale_completed"
	ActionItemCreated   = "item_created"
	ActionItemUpdated   = "item_updated"
	ActionItemDeleted   = "item_deleted"
	ActionDatabaseReset = "database_reset"
)

// Event is the envelope broadcast to websocket clients and written to Kafka.
type Event struct {
	ID        string      `json:"event_id"`
	Type      string      `json:"type"`
	Action    string      `json:"action"`
	Key       string      `json:"key"`
	Payload   interface{} `json:"payload"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewEvent(action, key string, payload interface{}, message string, at time.Time) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      TypeStockUpdate,
		Action:    action,
		Key:       key,
		Payload:   payload,
		Message:   message,
		Timestamp: at,
	}
}

// Publisher delivers committed changes to interested parties. Implementations
// must not block on slow consumers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
