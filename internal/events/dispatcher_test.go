package events

import (
	"context"
	"errors"
	"testing"
)

func TestInMemoryDispatcher(t *testing.T) {
	t.Run("delivers to subscribers of the type", func(t *testing.T) {
		d := NewInMemoryDispatcher()

		var got []Event
		d.Subscribe(EventCharacterCreated, func(_ context.Context, e Event) error {
			got = append(got, e)
			return nil
		})
		d.Subscribe(EventCampaignCreated, func(context.Context, Event) error {
			t.Error("handler for unrelated type invoked")
			return nil
		})

		if err := d.Publish(context.Background(), Event{ID: "evt-1", Type: EventCharacterCreated}); err != nil {
			t.Fatalf("Publish: %v", err)
		}
		if len(got) != 1 || got[0].ID != "evt-1" {
			t.Errorf("delivered = %+v, want single evt-1", got)
		}
	})

	t.Run("handler error does not block later subscribers", func(t *testing.T) {
		d := NewInMemoryDispatcher()

		d.Subscribe(EventSessionScheduled, func(context.Context, Event) error {
			return errors.New("handler failed")
		})
		reached := false
		d.Subscribe(EventSessionScheduled, func(context.Context, Event) error {
			reached = true
			return nil
		})

		if err := d.Publish(context.Background(), Event{Type: EventSessionScheduled}); err != nil {
			t.Fatalf("Publish: %v", err)
		}
		if !reached {
			t.Error("second subscriber not invoked after first failed")
		}
	})

	t.Run("publish without subscribers is a no-op", func(t *testing.T) {
		d := NewInMemoryDispatcher()
		if err := d.Publish(context.Background(), Event{Type: EventAIGenerationCompleted}); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	})
}
