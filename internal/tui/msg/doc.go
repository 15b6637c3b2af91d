// Package msg defines the message types used by the TUI's Bubbletea event loop
// and the command factories that produce them.
//
// Searches and health probes run inside [tea.Cmd] goroutines; their outcomes
// come back to Update as the messages defined here, so the model is only
// ever mutated on the event loop.
package msg
