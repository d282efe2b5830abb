package event

import "sync/atomic"

// HandlerID identifies a registered handler within one dispatcher.
// IDs are supplied by the caller at registration time and must be unique
// among the handlers currently registered on that dispatcher; the
// dispatcher never allocates them. IDs carry no ordering semantics.
type HandlerID uint64

// handler pairs an ID with its callback. The dispatcher owns the
// callback once registered; what the callback captures is opaque to it.
type handler[T any] struct {
	id HandlerID
	fn func(T)
}

var nextID atomic.Uint64

// NextHandlerID returns a process-unique HandlerID. It is a convenience
// for callers that have no ID scheme of their own; using it is optional,
// uniqueness per dispatcher remains the caller's contract either way.
func NextHandlerID() HandlerID {
	return HandlerID(nextID.Add(1))
}
