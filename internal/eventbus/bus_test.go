package eventbus

import (
	"context"
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	b := New(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := b.Subscribe(ctx, TopicResolve)
	defer sub.Close()

	b.Publish(ctx, TopicResolve, ResolveEvent{Question: "example.com.", Server: "127.0.0.1:53"})

	select {
	case ev := <-sub.Ch:
		re, ok := ev.Data.(ResolveEvent)
		if !ok {
			t.Fatalf("expected ResolveEvent, got %T", ev.Data)
		}
		if re.Question != "example.com." {
			t.Errorf("Question = %q, want %q", re.Question, "example.com.")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestPublishDropsWhenSlowSubscriber(t *testing.T) {
	b := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := b.Subscribe(ctx, TopicCache)
	defer sub.Close()

	// Fill the buffered channel, then publish once more: the second publish
	// must not block.
	b.Publish(ctx, TopicCache, CacheEvent{Question: "a", Hit: true})
	b.Publish(ctx, TopicCache, CacheEvent{Question: "b", Hit: false})

	ev := <-sub.Ch
	if ev.Data.(CacheEvent).Question != "a" {
		t.Errorf("expected first published event to survive, got %+v", ev.Data)
	}
}

func TestSubscribeUnsubscribesOnCancel(t *testing.T) {
	b := New(1)
	ctx, cancel := context.WithCancel(context.Background())
	sub := b.Subscribe(ctx, TopicTransport)

	cancel()
	select {
	case _, ok := <-sub.Ch:
		if ok {
			t.Fatal("expected channel to be closed after cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}
