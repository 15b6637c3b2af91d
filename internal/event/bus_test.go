package event

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Iron-Ham/moviefinder/internal/logging"
)

func TestBus_Publish(t *testing.T) {
	bus := NewBus(nil)

	var received Event
	bus.Subscribe(TypePhaseChanged, func(e Event) {
		received = e
	})

	bus.Publish(NewPhaseChangedEvent("req-1", "idle", "loading", "snapshot"))

	if received == nil {
		t.Fatal("Handler should have received the event")
	}
	changed, ok := received.(PhaseChangedEvent)
	if !ok {
		t.Fatalf("received %T, want PhaseChangedEvent", received)
	}
	if changed.From != "idle" || changed.To != "loading" || changed.RequestID != "req-1" {
		t.Errorf("unexpected event fields: %+v", changed)
	}
	if changed.Snapshot != "snapshot" {
		t.Errorf("Snapshot = %v", changed.Snapshot)
	}
	if time.Since(changed.Timestamp()) > time.Minute {
		t.Errorf("Timestamp too old: %v", changed.Timestamp())
	}
}

func TestBus_PublishNoMatchingHandlers(t *testing.T) {
	bus := NewBus(nil)

	called := false
	bus.Subscribe(TypeSearchStarted, func(e Event) { called = true })

	bus.Publish(NewSubmissionRejectedEvent("empty_input"))

	if called {
		t.Error("Handler for a different event type should not be called")
	}
}

func TestBus_HandlersRunInRegistrationOrder(t *testing.T) {
	bus := NewBus(nil)

	var order []string
	bus.Subscribe(TypeSearchCompleted, func(e Event) { order = append(order, "first") })
	bus.Subscribe(TypeSearchCompleted, func(e Event) { order = append(order, "second") })
	bus.Subscribe(TypeSearchStarted, func(e Event) { order = append(order, "other") })

	bus.Publish(NewSearchCompletedEvent("req-1", true, 3, "", time.Millisecond))

	want := []string{"first", "second"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestBus_HandlerPanicRecovery(t *testing.T) {
	var buf bytes.Buffer
	bus := NewBus(logging.NewWriterLogger(&buf, logging.LevelDebug))

	calls := 0
	bus.Subscribe(TypeSearchCompleted, func(e Event) {
		calls++
		panic("handler panic")
	})
	bus.Subscribe(TypeSearchCompleted, func(e Event) {
		calls++
	})

	bus.Publish(NewSearchCompletedEvent("req-1", false, 0, "unreachable", time.Second))

	if calls != 2 {
		t.Errorf("Expected both handlers to be called despite panic, got %d calls", calls)
	}
	if !strings.Contains(buf.String(), "event handler panicked") {
		t.Errorf("panic was not logged: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "sub-1") {
		t.Errorf("subscription ID missing from log: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "handler panic") {
		t.Errorf("panic value missing from log: %s", buf.String())
	}
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus(nil)

	var mu sync.Mutex
	calls := 0
	bus.Subscribe(TypeSearchStarted, func(e Event) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for range 100 {
		wg.Go(func() {
			bus.Publish(NewSearchStartedEvent("req", 1))
		})
	}
	wg.Wait()

	if calls != 100 {
		t.Errorf("Expected 100 calls, got %d", calls)
	}
}
