package event

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Event is a domain fact published after a successful write.
type Event struct {
	Type      string    // e.g. constants.EventRecipeCreated
	ActorID   uint      // user that caused the event
	SubjectID uint      // id of the affected record
	Timestamp time.Time
}

// Handler processes a single event.
type Handler func(ctx context.Context, event Event) error

// Bus decouples writers from side effects such as metrics and audit logging.
type Bus struct {
	handlers map[string][]Handler
	mu       sync.RWMutex

	eventChan chan Event
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewBus starts the processor goroutine with a buffer of bufferSize events.
func NewBus(bufferSize int) *Bus {
	ctx, cancel := context.WithCancel(context.Background())

	bus := &Bus{
		handlers:  make(map[string][]Handler),
		eventChan: make(chan Event, bufferSize),
		ctx:       ctx,
		cancel:    cancel,
	}

	bus.wg.Add(1)
	go bus.processEvents()

	return bus
}

// Subscribe registers handler for eventType.
func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
	slog.Debug("EventBus: subscribed", "event", eventType)
}

// Publish queues the event without blocking. A full buffer drops it.
func (b *Bus) Publish(event Event) {
	if b == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case <-b.ctx.Done():
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		slog.Warn("EventBus: channel full, dropping event", "event", event.Type)
	}
}

func (b *Bus) processEvents() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.dispatch(b.ctx, event)
		case <-b.ctx.Done():
			// drain what was queued before shutdown
			for {
				select {
				case event := <-b.eventChan:
					b.dispatch(context.Background(), event)
				default:
					return
				}
			}
		}
	}
}

// dispatch runs every subscriber of the event type concurrently and logs
// failures; a failing handler never affects the publisher.
func (b *Bus) dispatch(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, handler := range handlers {
		wg.Add(1)
		go func(h Handler) {
			defer wg.Done()
			if err := h(ctx, event); err != nil {
				slog.Error("EventBus: handler failed", "event", event.Type, "error", err)
			}
		}(handler)
	}
	wg.Wait()
}

// Shutdown stops the processor after the queued events are handled.
func (b *Bus) Shutdown() {
	b.closeOnce.Do(func() {
		b.cancel()
		b.wg.Wait()
		slog.Info("EventBus: shutdown complete")
	})
}

// SubscriberCount reports how many handlers listen for eventType.
func (b *Bus) SubscriberCount(eventType string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}
