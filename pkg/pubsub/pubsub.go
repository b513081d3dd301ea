package pubsub

import (
	"sync"

	"f1strategydash/pkg/model"
)

// Topics carried by the process-wide buses below.
const (
	TopicRaceAvailable = "raceAvailable"
	TopicRefresh       = "dashboardRefresh"
)

// Process-wide buses. The watcher publishes on both, the notification
// manager listens on RaceAvailablePubSub and the websocket hub on
// RefreshPubSub.
var (
	RaceAvailablePubSub = NewPubSub[model.RaceAvailable]()
	RefreshPubSub       = NewPubSub[string]()
)

type PubSub[T any] struct {
	mu   sync.Mutex
	subs map[string][]chan T
}

func NewPubSub[T any]() *PubSub[T] {
	return &PubSub[T]{
		subs: make(map[string][]chan T),
	}
}

func (ps *PubSub[T]) Subscribe(topic string) <-chan T {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ch := make(chan T, 8)
	ps.subs[topic] = append(ps.subs[topic], ch)
	return ch
}

// Publish delivers data to every subscriber of the topic. A subscriber
// whose buffer is full misses the event instead of blocking the publisher.
func (ps *PubSub[T]) Publish(topic string, data T) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	for _, ch := range ps.subs[topic] {
		select {
		case ch <- data:
		default:
		}
	}
}

// Unsubscribe removes ch from the topic and closes it.
func (ps *PubSub[T]) Unsubscribe(topic string, ch <-chan T) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	subs := ps.subs[topic]
	for i, sub := range subs {
		if sub == ch {
			ps.subs[topic] = append(subs[:i], subs[i+1:]...)
			close(sub)
			return
		}
	}
}
