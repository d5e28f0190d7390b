package theme

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

const subscriberBufferSize = 16

type subscription struct {
	ch   chan Change
	done chan struct{}
}

// end closes the subscriber channel and releases the context watcher.
func (s *subscription) end() {
	close(s.ch)
	close(s.done)
}

// Notifier fans theme changes out to subscribers. Slow subscribers miss
// changes rather than block the publisher.
type Notifier struct {
	mu          sync.RWMutex
	subscribers map[string]*subscription
	closed      bool
	logger      *slog.Logger
}

// NewNotifier creates a notifier. Pass nil logger for default.
func NewNotifier(logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		subscribers: make(map[string]*subscription),
		logger:      logger.With("component", "theme"),
	}
}

// Subscribe registers a listener and returns its channel and subscription
// ID. The subscription ends when ctx is cancelled or Unsubscribe is called;
// either way the channel is closed.
func (n *Notifier) Subscribe(ctx context.Context) (<-chan Change, string) {
	subID := uuid.New().String()
	ch := make(chan Change, subscriberBufferSize)

	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		close(ch)
		return ch, subID
	}
	sub := &subscription{ch: ch, done: make(chan struct{})}
	n.subscribers[subID] = sub
	n.mu.Unlock()

	n.logger.Debug("subscriber added", "sub_id", subID)

	go func() {
		select {
		case <-ctx.Done():
			n.Unsubscribe(subID)
		case <-sub.done:
		}
	}()

	return ch, subID
}

// Publish delivers change to every subscriber without blocking.
func (n *Notifier) Publish(change Change) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for id, sub := range n.subscribers {
		select {
		case sub.ch <- change:
		default:
			n.logger.Debug("dropped theme change for slow subscriber", "sub_id", id, "to", change.To)
		}
	}
}

// Unsubscribe removes a subscription and closes its channel.
func (n *Notifier) Unsubscribe(subID string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	sub, ok := n.subscribers[subID]
	if !ok {
		return
	}
	delete(n.subscribers, subID)
	sub.end()
	n.logger.Debug("subscriber removed", "sub_id", subID)
}

// Subscribers returns the number of active subscriptions.
func (n *Notifier) Subscribers() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subscribers)
}

// Close closes every subscriber channel. Later subscriptions receive an
// already-closed channel.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for id, sub := range n.subscribers {
		sub.end()
		delete(n.subscribers, id)
	}
	n.closed = true
	n.logger.Debug("notifier closed")
}
