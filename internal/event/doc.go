// Package event provides a pub-sub event bus for decoupled inter-component
// communication in moviefinder.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Events
//
//   - [PhaseChangedEvent]: one per query phase transition, carrying the new state
//   - [SearchStartedEvent]: a submission was accepted
//   - [SearchCompletedEvent]: a search left the loading phase
//   - [SubmissionRejectedEvent]: a submission was refused (empty input or in flight)
//
// # Usage
//
//	bus := event.NewBus(logger)
//	bus.Subscribe(event.TypeSearchCompleted, func(e event.Event) {
//	    done := e.(event.SearchCompletedEvent)
//	    ...
//	})
//
// Publish is synchronous: handlers run on the publisher's goroutine, in
// order, before Publish returns.
package event
