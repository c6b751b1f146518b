package eventbus

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const listenerTimeout = 1 * time.Minute

type Event interface {
	Name() string
}

type Listener func(ctx context.Context, event Event) error

// Bus delivers each published event to its listeners in separate goroutines.
type Bus struct {
	listeners map[string][]Listener
	mu        sync.RWMutex
	logger    *zap.Logger
	wg        sync.WaitGroup
}

func New(logger *zap.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		logger:    logger,
	}
}

func (b *Bus) Subscribe(eventName string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], listener)
}

// Publish returns immediately. Listener errors and panics are logged and never reach the publisher.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	listeners := append([]Listener(nil), b.listeners[event.Name()]...)
	b.mu.RUnlock()

	for _, listener := range listeners {
		b.wg.Add(1)
		go b.deliver(listener, event)
	}
}

func (b *Bus) deliver(l Listener, event Event) {
	defer b.wg.Done()
	defer func() {
		if p := recover(); p != nil {
			b.logger.Error("event listener panicked", zap.String("event", event.Name()), zap.Any("panic", p))
		}
	}()

	// The request context may already be cancelled by the time a listener runs.
	ctx, cancel := context.WithTimeout(context.Background(), listenerTimeout)
	defer cancel()

	if err := l(ctx, event); err != nil {
		b.logger.Error("event listener failed", zap.String("event", event.Name()), zap.Error(err))
	}
}

// Wait blocks until every listener started so far has returned.
func (b *Bus) Wait() {
	b.wg.Wait()
}
