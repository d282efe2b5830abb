// Package events defines the payload types broadcast by the engine.
//
// Each type is delivered through its own event.Dispatcher instance; the
// payload type itself identifies the event kind. Payloads are small
// value structs, safe to copy per handler.
package events
