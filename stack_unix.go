//go:build linux || darwin

package ufiber

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// guardPageSize is assumed conservatively; unix.Getpagesize() varies by
// platform (4 KiB on amd64/arm64 Linux, 16 KiB on Apple Silicon
// darwin) but DefaultStackSize is already a multiple of the largest
// common page size, so a fixed constant keeps guard-page placement
// simple without a runtime syscall on every fiber creation.
const guardPageSize = 16 * 1024

// allocStack maps size bytes of fiber stack plus one leading guard
// page mapped PROT_NONE. A fiber that overruns its stack faults
// immediately (SIGSEGV) instead of silently corrupting whatever
// memory happens to sit below it -- another fiber's stack, or the
// scheduler's own bookkeeping. This mirrors the guard-page technique
// the retrieval pack's own low-level runtime code
// (tazorax-tinygo/src/internal/task) relies on for stack safety below
// the Go runtime, implemented here via golang.org/x/sys/unix directly
// since fiber stacks live below any goroutine stack Go itself manages.
func allocStack(size int) []byte {
	total := guardPageSize + size
	mem, err := unix.Mmap(-1, 0, total, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	assertf(err == nil, stackAllocError{err})

	if err := unix.Mprotect(mem[:guardPageSize], unix.PROT_NONE); err != nil {
		_ = unix.Munmap(mem)
		panic(stackAllocError{err})
	}

	usable := mem[guardPageSize:]
	// The slice's capacity is capped at size; freeStack recovers the
	// original mapping by subtracting guardPageSize from its first byte.
	return usable[:size:size]
}

func freeStack(stack []byte) {
	if stack == nil {
		return
	}
	base := uintptr(unsafe.Pointer(&stack[0])) - guardPageSize
	mem := unsafe.Slice((*byte)(unsafe.Pointer(base)), guardPageSize+len(stack))
	_ = unix.Munmap(mem)
}

type stackAllocError struct{ cause error }

func (e stackAllocError) Error() string { return "ufiber: stack allocation failed: " + e.cause.Error() }
func (e stackAllocError) Unwrap() error { return e.cause }
