// Package engine drives the demo tick loop and owns the event
// dispatchers other subsystems subscribe to.
//
// The engine holds one typed dispatcher per event kind (frame, resize,
// shader compilation) and publishes on its own cadence: Step advances
// one tick, Run calls Step from a ticker until the context is cancelled
// or the configured frame limit is reached. Delivery inherits the
// dispatcher's best-effort contract; a tick that races another producer
// on the same dispatcher may be dropped.
package engine
