package ufiber

// Mutex is a recursive lock for fibers, ported from
// original_source/UThread++/Mutex.h/.cpp. It has no relation to
// sync.Mutex and must only ever be used from within a running
// scheduler: mutation is safe without synchronization because it only
// ever happens on the single running fiber, between suspension
// points (spec.md §5).
type Mutex struct {
	owner     *Fiber
	recursion int
	waiters   fiberQueue
}

// NewMutex returns a free Mutex.
func NewMutex() *Mutex {
	return &Mutex{}
}

// Acquire acquires the mutex, blocking the running fiber if it is
// held by another fiber. Acquiring a mutex the caller already holds
// is legal and simply increments the recursion count.
func (m *Mutex) Acquire() {
	c := Current()

	if m.owner == c {
		m.recursion++
		return
	}

	if m.owner == nil {
		m.owner = c
		m.recursion = 1
		return
	}

	getLogger().Tracef("fiber %d blocking on contended mutex", c.id)
	m.waiters.pushBack(c)
	Park()

	// Ownership transfer: Release hands the mutex directly to the
	// fiber it unparks, so there is no interleaving period in which
	// the mutex appears free between this fiber waking and owning it.
	assertf(m.owner == c && m.recursion == 1, schedulerInvariantError{"mutex ownership not transferred on wake"})
}

// Release releases one level of recursive acquisition. If the
// releasing fiber still holds the mutex recursively, Release returns
// without changing ownership. Otherwise, ownership transfers directly
// to the next waiter (if any); that waiter does not re-contend for
// the mutex upon waking.
func (m *Mutex) Release() {
	c := Current()
	assertf(m.owner == c, MutexReleaseByNonOwnerError{Owner: m.owner, Current: c})

	m.recursion--
	if m.recursion > 0 {
		return
	}

	if m.waiters.empty() {
		m.owner = nil
		return
	}

	w := m.waiters.popFront()
	m.owner = w
	m.recursion = 1
	getLogger().Tracef("mutex transferred from fiber %d to fiber %d", c.id, w.id)
	w.Unpark()
}

// Close asserts that the mutex is free and has no waiters, per
// spec.md §4.4's destructor contract (MutexStillHeldAtDestroy). A
// mutex still held when the last reference to it is dropped indicates
// a program that is leaking a lock or exiting with a contended
// resource still outstanding -- a contract violation, not a
// recoverable condition.
func (m *Mutex) Close() {
	assertf(m.owner == nil && m.waiters.empty(), MutexStillHeldError{Owner: m.owner, WaiterCount: m.waiters.size()})
}
