package event

// PanicHandler is called when a handler callback panics during Dispatch.
// It receives the event being delivered, the value passed to panic, and
// the stack trace captured at the point of recovery.
type PanicHandler func(event any, panicValue any, stack []byte)

// Option configures a Dispatcher.
type Option func(*options)

type options struct {
	panicHandler PanicHandler
}

// WithPanicHandler sets the panic handler invoked when a callback
// panics. The default silently recovers.
func WithPanicHandler(h PanicHandler) Option {
	return func(o *options) {
		o.panicHandler = h
	}
}
