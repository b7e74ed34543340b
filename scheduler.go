package ufiber

import "runtime"

// schedulerState is the process-wide scheduler singleton described in
// spec.md §3/§4.3. It is valid only for the duration of one Run call;
// Run populates it on entry and clears it on exit, so a second Run
// call after the first returns starts from a clean slate.
type schedulerState struct {
	running   *Fiber
	ready     fiberQueue
	mainFiber *Fiber
	numFibers int
}

var scheduler schedulerState

// Run is the host goroutine's entry point into the scheduler. It
// switches into the first ready fiber and does not return until every
// fiber has exited or parked -- i.e. until a scheduling decision finds
// the ready queue empty, at which point control naturally switches
// back into the main fiber representing this call.
//
// Run locks the calling goroutine to its current OS thread for the
// duration of the call: every fiber operation assumes a single,
// unmoving execution context (spec.md §5), a guarantee the Go
// runtime does not otherwise provide a goroutine across blocking
// points. This is the one place the Go port adds a safeguard the
// original C++ source, running on a dedicated OS thread by
// construction, did not need -- see DESIGN.md.
func Run() {
	assertf(scheduler.running == nil, SchedulerAlreadyRunningError{})

	if scheduler.ready.empty() {
		return
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	main := &Fiber{id: nextFiberID(), state: stateRunning}
	scheduler.mainFiber = main
	scheduler.running = main
	scheduler.numFibers++

	first := scheduler.ready.popFront()
	switchTo(main, first)

	// Control only returns here once some fiber switches into the
	// main fiber, which happens exactly when a scheduling decision is
	// made with an empty ready queue (findNext's policy). Fibers
	// parked on synchronizers may still exist; that is allowed.
	assertf(scheduler.ready.empty(), schedulerInvariantError{"ready queue non-empty on Run exit"})

	scheduler.numFibers--
	scheduler.running = nil
	scheduler.mainFiber = nil
}

// findNext implements the find_next_thread policy shared by Yield,
// Park and Exit: pop the ready queue's head, or fall back to the main
// fiber if it is empty.
func findNext() *Fiber {
	if next := scheduler.ready.popFront(); next != nil {
		return next
	}
	return scheduler.mainFiber
}

// NumFibers reports the number of live fiber records, main fiber
// included while a scheduler is running. It is diagnostic only -- per
// spec.md §9's open question, Run never consults it to decide when to
// return -- and exists mainly so tests can assert that fibers are
// reclaimed.
func NumFibers() int {
	return scheduler.numFibers
}

type schedulerInvariantError struct{ detail string }

func (e schedulerInvariantError) Error() string {
	return "ufiber: scheduler invariant violated: " + e.detail
}
