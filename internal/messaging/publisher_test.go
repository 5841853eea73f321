package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []Event
	err    error
}

func (r *recorder) Publish(_ context.Context, e Event) error {
	r.events = append(r.events, e)
	return r.err
}

func TestNewEvent(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	e := NewEvent(ActionSaleCompleted, "tx-1", map[string]int{"n": 1}, "sold", at)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, TypeStockUpdate, e.Type)
	assert.Equal(t, ActionSaleCompleted, e.Action)
	assert.Equal(t, "tx-1", e.Key)
	assert.Equal(t, at, e.Timestamp)
}

func TestMultiPublishesToAll(t *testing.T) {
	a, b := &recorder{}, &recorder{err: errors.New("down")}
	m := Multi{a, nil, b}

	err := m.Publish(context.Background(), NewEvent(ActionItemCreated, "1", nil, "", time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "down")
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.Publish(context.Background(), Event{}))
}
