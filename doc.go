// Package ufiber implements a cooperative, single-OS-thread
// user-space threading runtime: lightweight fibers multiplexed onto
// one host goroutine via a hand-written context-switch primitive,
// plus a recursive mutex and a counting semaphore built on top of it.
//
// The runtime is strictly cooperative -- there is no preemption, no
// parallel execution, and no fairness beyond FIFO ready-queue order.
// Exactly one fiber runs at a time, so none of this package's types
// use locks or atomics internally: mutation only ever happens on the
// single running fiber, between the suspension points documented on
// Yield, Park, Exit, Mutex.Acquire and Semaphore.Wait.
//
// A single call to Run must complete (or the process must be
// shutting down) before another call to Run begins; the scheduler is
// process-wide singleton state, not a value callers construct.
package ufiber
