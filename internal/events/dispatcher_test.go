package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestPublishDeliversAsynchronously(t *testing.T) {
	d := NewAsyncDispatcher(zap.NewNop())
	done := make(chan Event, 1)
	d.Subscribe(EventTicketCreated, func(ctx context.Context, event Event) error {
		done <- event
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventTicketCreated, TicketID: "t-1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case event := <-done:
		if event.TicketID != "t-1" {
			t.Errorf("unexpected ticket id %q", event.TicketID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler never invoked")
	}
}

func TestPublishSurvivesCancelledRequestContext(t *testing.T) {
	d := NewAsyncDispatcher(zap.NewNop())
	ctxErr := make(chan error, 1)
	d.Subscribe(EventTicketStatusChanged, func(ctx context.Context, event Event) error {
		ctxErr <- ctx.Err()
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Publish(ctx, Event{Type: EventTicketStatusChanged}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case err := <-ctxErr:
		if err != nil {
			t.Errorf("handler context should not be cancelled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("handler never invoked")
	}
}

func TestHandlerErrorsAreSwallowed(t *testing.T) {
	d := NewAsyncDispatcher(zap.NewNop())
	var calls atomic.Int32
	d.Subscribe(EventTicketCreated, func(ctx context.Context, event Event) error {
		calls.Add(1)
		return errors.New("smtp down")
	})
	d.Subscribe(EventTicketCreated, func(ctx context.Context, event Event) error {
		calls.Add(1)
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventTicketCreated}); err != nil {
		t.Fatalf("publish must not surface handler errors, got %v", err)
	}
	d.Close()
	if got := calls.Load(); got != 2 {
		t.Errorf("expected both handlers to run, got %d", got)
	}
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	d := NewAsyncDispatcher(zap.NewNop())
	if err := d.Publish(context.Background(), Event{Type: EventTicketCreated}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	d.Close()
}
