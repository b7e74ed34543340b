//go:build amd64

package ufiber

// savedFrameSize is the size, in bytes, of the frame fiberSwitch
// pushes/pops on amd64: one return address plus the six callee-saved
// general-purpose registers this package preserves (BP, BX, R12-R15),
// matching the System V / Go amd64 callee-saved set minus the regs Go
// itself treats specially (SP, and the current-goroutine register).
const savedFrameSize = 7 * 8

// seedContext writes a synthetic saved-context frame at the top of a
// freshly allocated stack, laid out identically to what fiberSwitch's
// own push sequence produces, so that the first switch into this
// fiber lands on trampoline. Offsets mirror switch_amd64.s's push
// order (BP, BX, R12, R13, R14, R15) exactly, in reverse.
func seedContext(rawTop uintptr, trampoline uintptr) uintptr {
	// Land at the stack alignment a real CALL instruction would have
	// left behind (SP % 16 == 8 immediately after the call pushes its
	// return address), per the System V AMD64 ABI §3.2.2.
	top := (rawTop &^ 15) - 8

	frame := top - savedFrameSize
	for p := frame; p < frame+savedFrameSize; p += 8 {
		writeUintptr(p, 0) // zeroed saved registers; BP == 0 in
		// particular so a debugger's frame-pointer walk terminates
		// cleanly at a fresh fiber's base, per spec.md §4.1.
	}
	// The return-address slot is the highest word in the frame.
	writeUintptr(frame+savedFrameSize-8, trampoline)
	return frame
}
