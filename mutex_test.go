package ufiber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecursiveMutexThreeContenders is spec.md §8 scenario 2, ported
// from original_source/UThread++/Program.cpp's test2: fiber A
// acquires the mutex twice (recursively), yields between each
// acquire/release, while B and C each contend for it once. FIFO
// delivery means B must observe ownership before C.
func TestRecursiveMutexThreeContenders(t *testing.T) {
	mutex := NewMutex()
	var order []string
	var completed int

	Create(func(any) {
		mutex.Acquire()
		Yield()
		mutex.Acquire() // recursive re-acquire, same owner
		Yield()
		mutex.Release()
		Yield()
		mutex.Release()
		completed++
	}, nil)

	Create(func(any) {
		mutex.Acquire()
		order = append(order, "B")
		Yield()
		mutex.Release()
		completed++
	}, nil)

	Create(func(any) {
		mutex.Acquire()
		order = append(order, "C")
		Yield()
		mutex.Release()
		completed++
	}, nil)

	Run()

	require.Equal(t, 3, completed)
	assert.Equal(t, []string{"B", "C"}, order)
	mutex.Close()
}

// TestRecursiveLockRoundTrip is the direct law from spec.md §4.4: a
// fiber acquiring its own mutex N times must release it exactly N
// times before any other waiter can proceed.
func TestRecursiveLockRoundTrip(t *testing.T) {
	mutex := NewMutex()
	var otherRan bool

	Create(func(any) {
		mutex.Acquire()
		mutex.Acquire()
		mutex.Acquire()
		Yield()
		assert.False(t, otherRan, "waiter must not run until fully released")
		mutex.Release()
		Yield()
		assert.False(t, otherRan)
		mutex.Release()
		Yield()
		assert.False(t, otherRan)
		mutex.Release()
	}, nil)

	Create(func(any) {
		mutex.Acquire()
		otherRan = true
		mutex.Release()
	}, nil)

	Run()

	assert.True(t, otherRan)
	mutex.Close()
}

// TestMutexOwnershipTransferWithoutInterleaving confirms Release
// hands the mutex directly to the waiter it wakes, with no window in
// which a third fiber can observe the mutex as free and acquire it
// out of turn.
func TestMutexOwnershipTransferWithoutInterleaving(t *testing.T) {
	mutex := NewMutex()
	var acquireOrder []int

	Create(func(any) {
		mutex.Acquire()
		Yield()
		mutex.Release()
	}, nil)

	for i := 1; i <= 2; i++ {
		id := i
		Create(func(any) {
			mutex.Acquire()
			acquireOrder = append(acquireOrder, id)
			mutex.Release()
		}, nil)
	}

	Run()

	assert.Equal(t, []int{1, 2}, acquireOrder)
	mutex.Close()
}

// TestMutexReleaseByNonOwnerPanics confirms the contract violation
// from spec.md §4.4.
func TestMutexReleaseByNonOwnerPanics(t *testing.T) {
	mutex := NewMutex()

	Create(func(any) {
		require.Panics(t, func() {
			mutex.Release()
		})
	}, nil)

	Run()
}

// TestMutexCloseWhileHeldPanics confirms MutexStillHeldError.
func TestMutexCloseWhileHeldPanics(t *testing.T) {
	mutex := NewMutex()

	Create(func(any) {
		mutex.Acquire()
	}, nil)

	Run()

	assert.PanicsWithError(t, MutexStillHeldError{Owner: mutex.owner, WaiterCount: 0}.Error(), func() {
		mutex.Close()
	})
}
