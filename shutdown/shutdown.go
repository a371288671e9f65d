// Package shutdown implements the broadcast-then-everyone-wakes signal
// used to fan a single shutdown decision out to every per-connection
// handler.
package shutdown

import "sync"

// Notifier broadcasts a single shutdown event to any number of
// subscribers. It is the Go-native analogue of a broadcast channel whose
// only message is "stop": closing a channel wakes every receiver at once,
// so Notify just closes one, guarded by sync.Once so repeat calls are
// harmless.
type Notifier struct {
	ch   chan struct{}
	once sync.Once
}

// NewNotifier returns a Notifier with no pending shutdown.
func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan struct{})}
}

// Notify broadcasts shutdown to every current and future Signal. Safe to
// call more than once; only the first call has effect.
func (n *Notifier) Notify() {
	n.once.Do(func() { close(n.ch) })
}

// Subscribe returns a Signal that will observe this Notifier's shutdown.
func (n *Notifier) Subscribe() *Signal {
	return &Signal{done: n.ch}
}

// Signal is a per-handler listener on a Notifier. Each handler owns one;
// it is not safe for concurrent use by multiple goroutines.
type Signal struct {
	done  <-chan struct{}
	fired bool
}

// IsShutdown reports whether shutdown has already been observed by this
// Signal, without blocking.
func (s *Signal) IsShutdown() bool {
	return s.fired
}

// Done returns the channel that closes when shutdown is broadcast, for use
// in a select alongside other blocking operations.
func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// Recv blocks until shutdown is broadcast. It is idempotent: once shutdown
// has been observed, subsequent calls return immediately.
func (s *Signal) Recv() {
	if s.fired {
		return
	}
	<-s.done
	s.fired = true
}
