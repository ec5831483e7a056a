package inproc

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
)

func TestAdapter_PublishSubscribe(t *testing.T) {
	bus := NewAdapter()
	ctx := context.Background()

	var got []string
	err := bus.Subscribe(ctx, "conversation.added", func(ctx context.Context, subject string, data []byte) error {
		got = append(got, subject+":"+string(data))
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	if err := bus.Publish(ctx, "conversation.added", []byte("one")); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if err := bus.Publish(ctx, "conversation.deleted", []byte("two")); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	if len(got) != 1 || got[0] != "conversation.added:one" {
		t.Errorf("Handler received %v, want exactly the subscribed subject", got)
	}
}

func TestAdapter_WildcardReceivesEverything(t *testing.T) {
	bus := NewAdapter()
	ctx := context.Background()

	var subjects []string
	bus.Subscribe(ctx, WildcardSubject, func(ctx context.Context, subject string, data []byte) error {
		subjects = append(subjects, subject)
		return nil
	})

	bus.Publish(ctx, "conversation.added", nil)
	bus.Publish(ctx, "session.changed", nil)

	if len(subjects) != 2 || subjects[0] != "conversation.added" || subjects[1] != "session.changed" {
		t.Errorf("Wildcard handler received %v", subjects)
	}
}

func TestAdapter_PublishJSON(t *testing.T) {
	bus := NewAdapter()
	ctx := context.Background()

	var got map[string]string
	bus.Subscribe(ctx, "session.changed", func(ctx context.Context, subject string, data []byte) error {
		return json.Unmarshal(data, &got)
	})

	if err := bus.PublishJSON(ctx, "session.changed", map[string]string{"userId": "u1"}); err != nil {
		t.Fatalf("PublishJSON() error = %v", err)
	}
	if got["userId"] != "u1" {
		t.Errorf("Handler decoded %v", got)
	}
}

func TestAdapter_HandlerErrorDoesNotStopDelivery(t *testing.T) {
	bus := NewAdapter()
	ctx := context.Background()

	delivered := false
	bus.Subscribe(ctx, "s", func(ctx context.Context, subject string, data []byte) error {
		return fmt.Errorf("handler failure")
	})
	bus.Subscribe(ctx, "s", func(ctx context.Context, subject string, data []byte) error {
		delivered = true
		return nil
	})

	err := bus.Publish(ctx, "s", nil)
	if err == nil {
		t.Error("Expected the first handler's error to surface")
	}
	if !delivered {
		t.Error("Later handlers must still run after an earlier failure")
	}
}

func TestAdapter_Close(t *testing.T) {
	bus := NewAdapter()
	ctx := context.Background()

	if err := bus.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := bus.Publish(ctx, "s", nil); err == nil {
		t.Error("Publish after Close must fail")
	}
	if err := bus.Subscribe(ctx, "s", func(ctx context.Context, subject string, data []byte) error { return nil }); err == nil {
		t.Error("Subscribe after Close must fail")
	}
}
