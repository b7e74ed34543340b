package ufiber

// Option configures package-level runtime behavior. Options must be
// applied before the first call to Run; the scheduler and fiber stack
// size are process-wide state, not per-call configuration.
type Option func()

// SetStackSize overrides DefaultStackSize for every fiber created
// after this call. It has no effect on fibers already created. Each
// fiber's stack slice is exactly n bytes; n is not rounded.
func SetStackSize(n int) Option {
	return func() {
		currentStackSize = n
	}
}

// SetLogger installs a Logger to receive lifecycle trace/debug
// events. Passing nil restores the no-op default.
func SetLogger(l Logger) Option {
	return func() {
		setLogger(l)
	}
}

// Configure applies the given options immediately. It is safe to call
// only while no scheduler is running.
func Configure(opts ...Option) {
	for _, opt := range opts {
		opt()
	}
}
