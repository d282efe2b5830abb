// Package event provides the typed broadcast dispatcher used to fan out
// engine events to registered handlers.
//
// A Dispatcher is generic over a single event payload type; a subsystem
// that broadcasts several kinds of events holds one dispatcher per kind.
// Handlers are (id, callback) pairs registered by subscribers and invoked
// synchronously, in list order, on every Dispatch.
//
// # Delivery semantics
//
// Dispatch is best-effort. The live handler list is guarded by a mutex
// that is only ever try-acquired: if a Dispatch call finds the list busy
// (another Dispatch, or an uncontended Register/Unregister, is inside
// it), the event is dropped for every handler and the call returns
// immediately. Producers are often on a time-critical path and must
// never block or deadlock waiting for a previous dispatch to finish.
// Callers that need guaranteed delivery should not build on this
// primitive.
//
// # Reentrancy
//
// A handler may call Register or Unregister on its own dispatcher from
// inside its callback. The dispatching goroutine already holds the live
// lock, so the reentrant call fails the try-acquire and lands in a
// pending queue instead of deadlocking. Pending removals, then pending
// additions, are applied after the callback pass completes and before
// the live lock is released, so no caller ever observes a
// half-reconciled list. A handler registered during a Dispatch is
// therefore first invoked on the following Dispatch, and a handler that
// unregisters itself still completes its in-flight invocation.
//
// # Ordering
//
// Handlers run in insertion order, except that removal swaps the last
// handler into the vacated slot: order is not stable across removals.
// Callers must assert membership, not position.
//
// # Panics
//
// A panicking callback is recovered and reported through the optional
// panic handler (see WithPanicHandler); the remaining handlers and the
// reconciliation step still run.
package event
