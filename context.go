package ufiber

import "unsafe"

// fiberSwitch performs the context-switch primitive described in
// spec.md §4.1: it saves the callee-saved register set of the
// currently running fiber onto that fiber's own stack, stores the
// resulting stack pointer into *from, loads the stack pointer of the
// target fiber from *to, and restores its registers. When this
// function returns (in the caller's frame of reference), the caller
// is once again running on from's stack with from's locals intact.
//
// Implemented in switch_amd64.s / switch_arm64.s. The exact
// callee-saved register set preserved is documented in each file's
// header comment, per spec.md §6's ABI note.
//
//go:noescape
func fiberSwitch(from, to *uintptr)

// fiberSwitchAndDestroy is the switch_and_destroy variant required by
// Exit: it retargets the stack pointer to to's stack, only then calls
// back into Go to free dying's stack (freeing a stack while the CPU
// is still executing on it would be unsound), and finishes restoring
// to's registers. dying is captured in a register the assembly
// preserves across the stack-pointer change, per spec.md §9's
// "Self-destruction across the stack boundary" note.
//
//go:noescape
func fiberSwitchAndDestroy(from, to *uintptr, dying *Fiber)

// destroyFiber is called from fiberSwitchAndDestroy's assembly, on
// the successor's stack, after the stack pointer has already moved
// off of dying's stack. It is the Go-level counterpart of
// UThread::self_destroy in the original source.
func destroyFiber(dying *Fiber) {
	freeStack(dying.stack)
	dying.stack = nil
	dying.state = stateDone
	scheduler.numFibers--
	getLogger().Tracef("fiber %d destroyed", dying.id)
}

// readUintptr and writeUintptr are small helpers used by the
// per-architecture seedContext implementations to populate a fresh
// fiber's synthetic saved-context frame in place on its own stack.
func readUintptr(addr uintptr) uintptr {
	return *(*uintptr)(unsafe.Pointer(addr))
}

func writeUintptr(addr uintptr, v uintptr) {
	*(*uintptr)(unsafe.Pointer(addr)) = v
}

// funcPC extracts the entry program counter of a Go function value
// with no arguments and no results. This is the standard (if
// low-level) trick used throughout the Go ecosystem's hand-rolled
// coroutine/fiber libraries to obtain a raw, asm-jumpable address for
// a function that the compiler otherwise only exposes as an opaque
// func value: a non-nil func value's first word is a pointer to a
// structure whose first word is the code's entry address.
func funcPC(f func()) uintptr {
	return **(**uintptr)(unsafe.Pointer(&f))
}
