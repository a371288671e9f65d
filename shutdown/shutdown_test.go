package shutdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignalInitiallyNotShutdown(t *testing.T) {
	n := NewNotifier()
	sig := n.Subscribe()
	assert.False(t, sig.IsShutdown())
}

func TestNotifyWakesAllSubscribers(t *testing.T) {
	n := NewNotifier()
	const subscribers = 8
	sigs := make([]*Signal, subscribers)
	for i := range sigs {
		sigs[i] = n.Subscribe()
	}

	done := make(chan int, subscribers)
	for i, sig := range sigs {
		go func(i int, sig *Signal) {
			sig.Recv()
			done <- i
		}(i, sig)
	}

	n.Notify()

	seen := make(map[int]bool)
	for i := 0; i < subscribers; i++ {
		select {
		case id := <-done:
			seen[id] = true
		case <-time.After(time.Second):
			t.Fatal("not all subscribers were woken")
		}
	}
	assert.Len(t, seen, subscribers)
}

func TestRecvIsIdempotent(t *testing.T) {
	n := NewNotifier()
	sig := n.Subscribe()
	n.Notify()

	done := make(chan struct{})
	go func() {
		sig.Recv()
		sig.Recv()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("second Recv call should not block once shutdown is observed")
	}
	assert.True(t, sig.IsShutdown())
}

func TestNotifyIsIdempotent(t *testing.T) {
	n := NewNotifier()
	sig := n.Subscribe()
	n.Notify()
	n.Notify()

	done := make(chan struct{})
	go func() {
		sig.Recv()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("repeat Notify calls should not panic or deadlock subscribers")
	}
}

func TestSubscribeAfterNotifyStillFires(t *testing.T) {
	n := NewNotifier()
	n.Notify()
	sig := n.Subscribe()

	done := make(chan struct{})
	go func() {
		sig.Recv()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("a late subscriber should still observe an already-broadcast shutdown")
	}
}
