package event

import (
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Dispatcher fans one kind of event out to registered handlers. The zero
// value is not usable; construct with New. All methods are safe for
// concurrent use by multiple goroutines, and none of them ever blocks on
// the live handler list - see the package documentation for the exact
// delivery and reentrancy semantics.
type Dispatcher[T any] struct {
	// live is the handler list iterated by Dispatch. mu is only ever
	// try-acquired and is held across the whole callback pass plus
	// reconciliation.
	mu   sync.Mutex
	live []handler[T]

	// Deferred mutations, taken when mu is contended. Each queue has its
	// own lock, held only for the O(1) append or the drain swap, never
	// across a callback.
	addMu         sync.Mutex
	pendingAdd    []handler[T]
	removeMu      sync.Mutex
	pendingRemove []HandlerID

	panicHandler PanicHandler

	// liveLen mirrors len(live) so Len never needs the live lock.
	liveLen atomic.Int64

	// Stats
	dispatched      atomic.Uint64
	dropped         atomic.Uint64
	invoked         atomic.Uint64
	panicked        atomic.Uint64
	deferredAdds    atomic.Uint64
	deferredRemoves atomic.Uint64
}

// New creates an empty dispatcher for events of type T.
func New[T any](opts ...Option) *Dispatcher[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Dispatcher[T]{panicHandler: o.panicHandler}
}

// Register adds a handler. If the live list is free the handler is
// appended immediately and receives the next Dispatch; if the list is
// busy (a Dispatch or another mutator holds it, including this same
// goroutine inside a callback) the handler is queued and becomes live
// when that Dispatch reconciles. The caller cannot observe which path
// was taken and must not assume synchronous visibility.
func (d *Dispatcher[T]) Register(id HandlerID, fn func(T)) {
	h := handler[T]{id: id, fn: fn}
	if d.mu.TryLock() {
		d.live = append(d.live, h)
		d.liveLen.Store(int64(len(d.live)))
		d.mu.Unlock()
		return
	}
	d.deferredAdds.Add(1)
	d.addMu.Lock()
	d.pendingAdd = append(d.pendingAdd, h)
	d.addMu.Unlock()
}

// Unregister removes the handler with the given ID, immediately if the
// live list is free, otherwise at the next reconciliation. Removing an
// ID that is not present (never registered, already removed, or still
// sitting in the pending-add queue) is a no-op. Removal swaps the last
// handler into the vacated slot, so list order is not preserved.
func (d *Dispatcher[T]) Unregister(id HandlerID) {
	if d.mu.TryLock() {
		d.removeLocked(id)
		d.liveLen.Store(int64(len(d.live)))
		d.mu.Unlock()
		return
	}
	d.deferredRemoves.Add(1)
	d.removeMu.Lock()
	d.pendingRemove = append(d.pendingRemove, id)
	d.removeMu.Unlock()
}

// Dispatch delivers event to every live handler, in list order, on the
// calling goroutine. If the live list is busy the event is dropped and
// Dispatch returns immediately. After the callback pass it applies
// mutations deferred during that pass - removals first, then additions -
// before releasing the list, so an ID added and then removed within one
// dispatch cycle ends up absent.
func (d *Dispatcher[T]) Dispatch(event T) {
	if !d.mu.TryLock() {
		d.dropped.Add(1)
		return
	}
	defer d.mu.Unlock()

	d.dispatched.Add(1)
	for i := range d.live {
		d.invoke(d.live[i].fn, event)
	}
	d.reconcileLocked()
}

// invoke runs one callback with panic recovery so a misbehaving handler
// cannot poison the dispatch pass or skip reconciliation.
func (d *Dispatcher[T]) invoke(fn func(T), event T) {
	defer func() {
		if r := recover(); r != nil {
			d.panicked.Add(1)
			if d.panicHandler != nil {
				stack := debug.Stack()
				func() {
					defer func() {
						// The panic handler is not allowed to take down
						// the dispatch either.
						_ = recover()
					}()
					d.panicHandler(event, r, stack)
				}()
			}
		}
	}()
	d.invoked.Add(1)
	fn(event)
}

// reconcileLocked drains the pending queues into the live list.
// Callers must hold mu. Removals apply before additions; a removal whose
// ID is not live cancels a matching pending add instead, so an ID added
// and then removed within one dispatch cycle ends up absent.
func (d *Dispatcher[T]) reconcileLocked() {
	d.removeMu.Lock()
	removed := d.pendingRemove
	d.pendingRemove = nil
	d.removeMu.Unlock()

	d.addMu.Lock()
	added := d.pendingAdd
	d.pendingAdd = nil
	d.addMu.Unlock()

	for _, id := range removed {
		if d.removeLocked(id) {
			continue
		}
		for i := range added {
			if added[i].id == id {
				added = append(added[:i], added[i+1:]...)
				break
			}
		}
	}

	d.live = append(d.live, added...)
	d.liveLen.Store(int64(len(d.live)))
}

// removeLocked swap-removes the first handler matching id and reports
// whether a handler was removed. Callers must hold mu.
func (d *Dispatcher[T]) removeLocked(id HandlerID) bool {
	for i := range d.live {
		if d.live[i].id == id {
			last := len(d.live) - 1
			d.live[i] = d.live[last]
			d.live[last] = handler[T]{}
			d.live = d.live[:last]
			return true
		}
	}
	return false
}

// Len reports the number of live handlers. It never blocks and does not
// count handlers still waiting in the pending-add queue.
func (d *Dispatcher[T]) Len() int {
	return int(d.liveLen.Load())
}

// Stats is a snapshot of dispatcher counters.
type Stats struct {
	// Dispatched is the number of Dispatch calls that won the live lock
	// and ran a callback pass.
	Dispatched uint64

	// Dropped is the number of Dispatch calls that lost the lock race
	// and delivered to no one.
	Dropped uint64

	// HandlersInvoked is the total number of callback invocations.
	HandlersInvoked uint64

	// HandlerPanics is the number of invocations that panicked.
	HandlerPanics uint64

	// DeferredAdds is the number of Register calls that took the
	// pending-queue path.
	DeferredAdds uint64

	// DeferredRemoves is the number of Unregister calls that took the
	// pending-queue path.
	DeferredRemoves uint64
}

// Stats returns a snapshot of the dispatcher's counters. Counters are
// read without the live lock, so concurrent updates may make a snapshot
// slightly inconsistent with itself.
func (d *Dispatcher[T]) Stats() Stats {
	return Stats{
		Dispatched:      d.dispatched.Load(),
		Dropped:         d.dropped.Load(),
		HandlersInvoked: d.invoked.Load(),
		HandlerPanics:   d.panicked.Load(),
		DeferredAdds:    d.deferredAdds.Load(),
		DeferredRemoves: d.deferredRemoves.Load(),
	}
}
