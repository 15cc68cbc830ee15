package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishInvokesHandlersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher()
	var calls []string
	d.Subscribe(EventDatasetGenerated, func(ctx context.Context, e Event) error {
		calls = append(calls, "first:"+e.RunID)
		return nil
	})
	d.Subscribe(EventDatasetGenerated, func(ctx context.Context, e Event) error {
		calls = append(calls, "second:"+e.RunID)
		return nil
	})
	d.Subscribe(EventDatasetExported, func(ctx context.Context, e Event) error {
		calls = append(calls, "exported")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventDatasetGenerated, RunID: "r1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first:r1", "second:r1"}, calls)
}

func TestDispatcher_PublishJoinsErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	errA := errors.New("postgres down")
	ran := false
	d.Subscribe(EventDatasetExported, func(ctx context.Context, e Event) error { return errA })
	d.Subscribe(EventDatasetExported, func(ctx context.Context, e Event) error {
		ran = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventDatasetExported})
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.True(t, ran, "later handlers still run")
}

func TestDispatcher_PublishWithoutListeners(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventDatasetExported}))
}

func TestDispatcher_CancelledContext(t *testing.T) {
	d := NewInMemoryDispatcher()
	d.Subscribe(EventDatasetGenerated, func(ctx context.Context, e Event) error {
		t.Fatal("handler must not run after cancellation")
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := d.Publish(ctx, Event{Type: EventDatasetGenerated})
	assert.ErrorIs(t, err, context.Canceled)
}
