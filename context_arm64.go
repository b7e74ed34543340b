//go:build arm64

package ufiber

// savedFrameSize is the size, in bytes, of the frame fiberSwitch
// pushes/pops on arm64: the frame pointer/link register pair (FP,
// LR) plus the ten callee-saved general registers X19-X28, per the
// ARM64 procedure call standard (AAPCS64) §5.1.1.
const savedFrameSize = 12 * 8

// seedContext mirrors switch_arm64.s's STP push order (FP/LR, then
// X19..X28 in pairs) in reverse, so the first switch into a freshly
// created fiber lands on trampoline via its restored LR.
func seedContext(rawTop uintptr, trampoline uintptr) uintptr {
	// AAPCS64 requires SP to be 16-byte aligned at every public
	// instruction boundary; unlike amd64, arm64's BL does not push a
	// return address onto the stack (it lands in LR), so no -8
	// adjustment is needed here.
	top := rawTop &^ 15

	frame := top - savedFrameSize
	for p := frame; p < frame+savedFrameSize; p += 8 {
		writeUintptr(p, 0) // zeroed saved registers, FP == 0 in
		// particular so a debugger's frame-pointer walk terminates
		// cleanly at a fresh fiber's base, per spec.md §4.1.
	}
	// Layout, low to high address: X19..X28 (lowest, restored first),
	// then FP, then LR (highest, restored last -- and the register
	// RET reads its jump target from).
	writeUintptr(frame+savedFrameSize-8, trampoline) // LR slot
	return frame
}
