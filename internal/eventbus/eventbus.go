package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"subgrip/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventDocumentLoaded    = domain.EventDocumentLoaded
	EventDocumentSaved     = domain.EventDocumentSaved
	EventLineEdited        = domain.EventLineEdited
	EventLinesRemoved      = domain.EventLinesRemoved
	EventFileChangedOnDisk = domain.EventFileChangedOnDisk
	EventConfigChanged     = domain.EventConfigChanged
	EventError             = domain.EventError
)

// Re-export domain event types
type DocumentLoadedEvent = domain.DocumentLoadedEvent
type DocumentSavedEvent = domain.DocumentSavedEvent
type LineEditedEvent = domain.LineEditedEvent
type LinesRemovedEvent = domain.LinesRemovedEvent
type FileChangedOnDiskEvent = domain.FileChangedOnDiskEvent
type ConfigChangedEvent = domain.ConfigChangedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]int
	byID      map[int]EventHandler
	nextID    int
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]int),
		byID:      make(map[int]EventHandler),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	select {
	case b.eventChan <- event:
	default:
		// Channel full, log and drop
		log.Printf("Event bus channel full, dropping event: %v", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.byID[id] = handler
	b.handlers[eventType] = append(b.handlers[eventType], id)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		delete(b.byID, id)
		ids := b.handlers[eventType]
		for i, hid := range ids {
			if hid == id {
				b.handlers[eventType] = append(ids[:i], ids[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher and discards queued events
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			ids := b.handlers[event.Type()]
			handlersCopy := make([]EventHandler, 0, len(ids))
			for _, id := range ids {
				if h, ok := b.byID[id]; ok {
					handlersCopy = append(handlersCopy, h)
				}
			}
			b.mu.RUnlock()

			for _, handler := range handlersCopy {
				b.call(handler, event)
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

// call invokes one handler, isolating panics so a bad subscriber cannot
// take down the dispatcher
func (b *bus) call(handler EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	handler(event)
}
