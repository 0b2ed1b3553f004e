package eventbus

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscriber(t *testing.T) {
	bus := New()
	defer bus.Close()

	got := make(chan DomainEvent, 1)
	bus.Subscribe(EventDocumentLoaded, func(e DomainEvent) {
		got <- e
	})

	bus.Publish(DocumentLoadedEvent{Path: "/tmp/movie.srt", Lines: 42})

	select {
	case e := <-got:
		ev, ok := e.(DocumentLoadedEvent)
		require.True(t, ok)
		require.Equal(t, "/tmp/movie.srt", ev.Path)
		require.Equal(t, 42, ev.Lines)
	case <-time.After(2 * time.Second):
		t.Fatal("event never delivered")
	}
}

func TestSubscribeIsTypeScoped(t *testing.T) {
	bus := New()
	defer bus.Close()

	var wrongType atomic.Int32
	bus.Subscribe(EventDocumentSaved, func(DomainEvent) {
		wrongType.Add(1)
	})

	done := make(chan struct{})
	bus.Subscribe(EventError, func(DomainEvent) {
		close(done)
	})

	bus.Publish(ErrorEvent{Message: "boom"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("event never delivered")
	}
	require.Zero(t, wrongType.Load(), "subscriber for a different type must not fire")
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := New()
	defer bus.Close()

	var calls atomic.Int32
	unsubscribe := bus.Subscribe(EventDocumentSaved, func(DomainEvent) {
		calls.Add(1)
	})

	marker := make(chan struct{}, 2)
	bus.Subscribe(EventDocumentSaved, func(DomainEvent) {
		marker <- struct{}{}
	})

	bus.Publish(DocumentSavedEvent{Path: "a"})
	<-marker

	unsubscribe()
	bus.Publish(DocumentSavedEvent{Path: "b"})
	<-marker

	require.Equal(t, int32(1), calls.Load(), "unsubscribed handler must not be called again")
}

func TestPanickingHandlerDoesNotKillDispatcher(t *testing.T) {
	bus := New()
	defer bus.Close()

	bus.Subscribe(EventError, func(DomainEvent) {
		panic("bad subscriber")
	})

	survived := make(chan struct{}, 1)
	bus.Subscribe(EventError, func(DomainEvent) {
		survived <- struct{}{}
	})

	bus.Publish(ErrorEvent{Message: "first"})

	select {
	case <-survived:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatcher died after handler panic")
	}
}
