// Package eventbus is a small fan-out pub/sub used to notify external
// observers (a metrics exporter, an admin console) of resolver activity
// without coupling them to dnslog or dnsmetrics directly.
package eventbus

import (
	"context"
	"sync"
)

type Topic string

const (
	TopicResolve   Topic = "resolve"
	TopicCache     Topic = "cache"
	TopicTransport Topic = "transport"
)

type Event struct {
	Topic Topic
	Data  interface{}
}

// ResolveEvent is published on TopicResolve once per forwarder a Resolve
// call sends to; a Resolve answered from the cache publishes none.
type ResolveEvent struct {
	Question string
	Server   string
	Err      error
}

// CacheEvent is published on TopicCache for every cache lookup.
type CacheEvent struct {
	Question string
	Hit      bool
}

type Subscriber struct {
	Ch   <-chan Event
	stop context.CancelFunc
}

type Bus struct {
	mu   sync.RWMutex
	subs map[Topic][]chan Event
	buf  int
}

func New(buf int) *Bus {
	return &Bus{subs: make(map[Topic][]chan Event), buf: buf}
}

func (b *Bus) Publish(ctx context.Context, topic Topic, data interface{}) {
	b.mu.RLock()
	chs := b.subs[topic]
	b.mu.RUnlock()
	for _, ch := range chs {
		select {
		case ch <- Event{Topic: topic, Data: data}:
		default:
			// drop if subscriber is slow
		}
	}
}

func (b *Bus) Subscribe(ctx context.Context, topic Topic) *Subscriber {
	ch := make(chan Event, b.buf)
	b.mu.Lock()
	b.subs[topic] = append(b.subs[topic], ch)
	b.mu.Unlock()

	cctx, cancel := context.WithCancel(ctx)
	go func() {
		<-cctx.Done()
		b.mu.Lock()
		subs := b.subs[topic]
		for i, c := range subs {
			if c == ch {
				b.subs[topic] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		b.mu.Unlock()
		close(ch)
	}()
	return &Subscriber{Ch: ch, stop: cancel}
}

func (s *Subscriber) Close() {
	if s.stop != nil {
		s.stop()
	}
}
