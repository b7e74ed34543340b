package ufiber

import (
	"strconv"
	"unsafe"
)

// DefaultStackSize is the fixed per-fiber stack size: 16 pages of
// 4 KiB each, per spec.md §3/§6. Override with SetStackSize before
// the first Create or Run call.
const DefaultStackSize = 16 * 4096

// currentStackSize is process-wide configuration, mutated only via
// SetStackSize before a scheduler is running -- there is exactly one
// goroutine active at that point, so this needs no synchronization,
// consistent with spec.md §5's "no locks" model.
var currentStackSize = DefaultStackSize

type fiberState int8

const (
	stateReady fiberState = iota
	stateRunning
	stateWaiting
	stateDone
)

func (s fiberState) String() string {
	switch s {
	case stateReady:
		return "ready"
	case stateRunning:
		return "running"
	case stateWaiting:
		return "waiting"
	default:
		return "done"
	}
}

// Fiber is a cooperatively scheduled user thread with its own stack.
// The zero value is not usable; fibers are created with Create, or,
// for the distinguished main fiber, by Run itself.
type Fiber struct {
	id    uint64
	stack []byte // nil for the main fiber, which owns no stack of its own
	sp    uintptr
	fn    func(arg any)
	arg   any
	state fiberState
}

// ID returns the fiber's process-unique, monotonically increasing
// identity.
func (f *Fiber) ID() uint64 {
	return f.id
}

// Create allocates a new fiber to run fn(arg), seeds its initial
// context so that the first switch into it lands on the trampoline,
// and places it at the tail of the ready queue. Create may be called
// whether or not the scheduler is currently running.
func Create(fn func(arg any), arg any) *Fiber {
	stack := allocStack(currentStackSize)
	top := uintptr(unsafe.Pointer(&stack[0])) + uintptr(len(stack))

	f := &Fiber{
		id:    nextFiberID(),
		stack: stack,
		fn:    fn,
		arg:   arg,
		state: stateReady,
	}
	f.sp = seedContext(top, funcPC(fiberTrampoline))

	scheduler.numFibers++
	scheduler.ready.pushBack(f)
	getLogger().Tracef("fiber %d created", f.id)
	return f
}

// Yield relinquishes the processor to the first fiber in the ready
// queue, placing the caller at the tail so it resumes later. If the
// ready queue is empty, Yield is a no-op: the spec's yield-idempotence
// law requires that the caller's observable state is unchanged.
func Yield() {
	requireRunning("Yield")
	if scheduler.ready.empty() {
		return
	}
	self := scheduler.running
	self.state = stateReady
	scheduler.ready.pushBack(self)
	next := scheduler.ready.popFront()
	switchTo(self, next)
}

// Park suspends the running fiber. The caller must already have
// placed itself in some wait list (a synchronizer's, typically)
// before calling Park; the scheduler itself does not know or care
// which. A fiber that parks without being reachable from any wait
// list simply never runs again -- its stack leaks, by design (see
// spec.md §8 scenario 6).
func Park() {
	requireRunning("Park")
	self := scheduler.running
	self.state = stateWaiting
	next := findNext()
	switchTo(self, next)
}

// Unpark places f at the tail of the ready queue, making it eligible
// to run again. f must not already be ready, running, or done --
// unparking a fiber from more than one place at once would violate
// the "never in two queues simultaneously" invariant (spec.md §3).
func (f *Fiber) Unpark() {
	assertf(f.state == stateWaiting, invalidUnparkError{f})
	f.state = stateReady
	scheduler.ready.pushBack(f)
}

// Exit terminates the running fiber. It never returns: control passes
// to the next ready fiber (or the main fiber) via the switch_and_destroy
// variant of the context-switch primitive, which frees the caller's
// stack only after the CPU is no longer executing on it.
func Exit() {
	requireRunning("Exit")
	self := scheduler.running
	self.state = stateDone
	next := findNext()
	getLogger().Tracef("fiber %d exiting", self.id)
	scheduler.running = next
	next.state = stateRunning
	fiberSwitchAndDestroy(&self.sp, &next.sp, self)
	panic("ufiber: unreachable: fiberSwitchAndDestroy returned")
}

// Current returns the fiber currently running. It panics with
// NotRunningError if no scheduler is active.
func Current() *Fiber {
	requireRunning("Current")
	return scheduler.running
}

// switchTo performs a plain (non-destroying) context switch and
// updates the scheduler's running-fiber bookkeeping around it.
func switchTo(from, to *Fiber) {
	scheduler.running = to
	to.state = stateRunning
	fiberSwitch(&from.sp, &to.sp)
	// Control returns here only once some other fiber switches back
	// into `from`; by that point scheduler.running has already been
	// set to `from` again by whichever switchTo/Exit call woke it.
}

// fiberTrampoline is the first function a freshly created fiber
// executes. It reads the running fiber, invokes its entry function,
// arrests any panic per spec.md §7's EntryFunctionFailure policy, and
// terminates via Exit. It must never return on its own: Exit never
// returns either.
func fiberTrampoline() {
	self := scheduler.running
	func() {
		defer func() {
			if r := recover(); r != nil {
				err := EntryFunctionPanic{Fiber: self, Value: r}
				getLogger().Debugf("%s", err.Error())
			}
		}()
		self.fn(self.arg)
	}()
	Exit()
}

func requireRunning(op string) {
	assertf(scheduler.running != nil, NotRunningError{Op: op})
}

type invalidUnparkError struct{ f *Fiber }

func (e invalidUnparkError) Error() string {
	return "ufiber: Unpark called on fiber " + strconv.FormatUint(e.f.id, 10) + " in state " + e.f.state.String()
}

var fiberIDSeq uint64

// nextFiberID is only ever called from the single goroutine driving
// the scheduler (directly, or indirectly via a running fiber), so a
// plain increment is sufficient -- see spec.md §5.
func nextFiberID() uint64 {
	fiberIDSeq++
	return fiberIDSeq
}
