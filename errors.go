package ufiber

import "fmt"

// SchedulerAlreadyRunningError is raised when Run is called while a
// scheduler is already active on this process.
type SchedulerAlreadyRunningError struct{}

func (SchedulerAlreadyRunningError) Error() string {
	return "ufiber: scheduler is already running"
}

// NotRunningError is raised by Current, Yield, Park or Exit when no
// scheduler is active.
type NotRunningError struct {
	Op string
}

func (e NotRunningError) Error() string {
	return fmt.Sprintf("ufiber: %s called outside a running scheduler", e.Op)
}

// MutexReleaseByNonOwnerError is raised when Release is called on a
// Mutex by a fiber other than its current owner.
type MutexReleaseByNonOwnerError struct {
	Owner   *Fiber
	Current *Fiber
}

func (e MutexReleaseByNonOwnerError) Error() string {
	return fmt.Sprintf("ufiber: mutex released by fiber %d, owned by %d", e.Current.ID(), e.Owner.ID())
}

// MutexStillHeldError is raised when Close is called on a Mutex that
// still has an owner or waiters.
type MutexStillHeldError struct {
	Owner       *Fiber
	WaiterCount int
}

func (e MutexStillHeldError) Error() string {
	return fmt.Sprintf("ufiber: mutex destroyed with owner=%v waiters=%d", e.Owner, e.WaiterCount)
}

// SemaphoreWaitersAtDestroyError is raised when a Semaphore is closed
// while its wait list is non-empty.
type SemaphoreWaitersAtDestroyError struct {
	WaiterCount int
}

func (e SemaphoreWaitersAtDestroyError) Error() string {
	return fmt.Sprintf("ufiber: semaphore destroyed with %d waiter(s) still parked", e.WaiterCount)
}

// EntryFunctionPanic wraps a panic value recovered from a fiber's
// entry function. The trampoline arrests propagation here rather than
// letting it escape into the scheduler, per spec's EntryFunctionFailure
// policy: the fiber still terminates via Exit.
type EntryFunctionPanic struct {
	Fiber   *Fiber
	Value   any
}

func (e EntryFunctionPanic) Error() string {
	return fmt.Sprintf("ufiber: fiber %d entry function panicked: %v", e.Fiber.id, e.Value)
}

func (e EntryFunctionPanic) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// assertf panics with a formatted contract-violation error. All
// invariant checks in this package funnel through here; there is no
// recoverable path for a torn scheduler or synchronizer invariant —
// see spec.md §7.
func assertf(cond bool, err error) {
	if !cond {
		panic(err)
	}
}
