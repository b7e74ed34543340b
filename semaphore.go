package ufiber

// Semaphore is a counting semaphore for fibers, ported from
// original_source/UThread++/Semaphore.h/.cpp. Like Mutex, it relies
// entirely on the single-running-fiber discipline of spec.md §5 and
// uses no locks of its own.
type Semaphore struct {
	permits int
	waiters fiberQueue
}

// NewSemaphore returns a Semaphore with zero permits.
func NewSemaphore() *Semaphore {
	return &Semaphore{}
}

// Wait acquires one permit, blocking the running fiber if none are
// currently available.
func (s *Semaphore) Wait() {
	if s.permits > 0 {
		s.permits--
		return
	}

	c := Current()
	getLogger().Tracef("fiber %d blocking on empty semaphore", c.id)
	s.waiters.pushBack(c)
	Park()
}

// Post adds one permit. If a fiber is already waiting, the permit is
// not credited to the counter at all -- it is handed directly to the
// longest-waiting fiber instead, preserving FIFO delivery order.
func (s *Semaphore) Post() {
	if s.waiters.empty() {
		s.permits++
		return
	}

	w := s.waiters.popFront()
	getLogger().Tracef("semaphore permit delivered directly to fiber %d", w.id)
	w.Unpark()
}

// Close asserts the semaphore's wait list is empty, per spec.md
// §4.5's destructor contract (SemaphoreWaitersAtDestroy). Unlike
// Mutex, a non-zero permit count at Close is legal: residual,
// never-consumed permits are not a contract violation.
func (s *Semaphore) Close() {
	assertf(s.waiters.empty(), SemaphoreWaitersAtDestroyError{WaiterCount: s.waiters.size()})
}
