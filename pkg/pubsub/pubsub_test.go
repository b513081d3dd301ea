package pubsub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	ps := NewPubSub[int]()
	a := ps.Subscribe("topic")
	b := ps.Subscribe("topic")

	ps.Publish("topic", 42)

	select {
	case v := <-a:
		assert.Equal(t, 42, v)
	case <-time.After(time.Second):
		t.Fatal("subscriber a did not receive")
	}
	select {
	case v := <-b:
		assert.Equal(t, 42, v)
	case <-time.After(time.Second):
		t.Fatal("subscriber b did not receive")
	}
}

func TestPublishIgnoresOtherTopics(t *testing.T) {
	ps := NewPubSub[string]()
	ch := ps.Subscribe("wanted")

	ps.Publish("other", "noise")

	select {
	case v := <-ch:
		t.Fatalf("unexpected delivery: %q", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	ps := NewPubSub[int]()
	ch := ps.Subscribe("topic")
	ps.Unsubscribe("topic", ch)

	_, open := <-ch
	require.False(t, open)

	// publishing after unsubscribe must not block or panic
	done := make(chan struct{})
	go func() {
		ps.Publish("topic", 1)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked after unsubscribe")
	}
}
