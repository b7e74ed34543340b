package ufiber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiberQueueFIFOOrder(t *testing.T) {
	var q fiberQueue
	require.True(t, q.empty())

	a := &Fiber{id: 1}
	b := &Fiber{id: 2}
	c := &Fiber{id: 3}

	q.pushBack(a)
	q.pushBack(b)
	q.pushBack(c)
	assert.Equal(t, 3, q.size())

	assert.Same(t, a, q.popFront())
	assert.Same(t, b, q.popFront())
	assert.Equal(t, 1, q.size())
	assert.Same(t, c, q.popFront())

	assert.True(t, q.empty())
	assert.Nil(t, q.popFront())
}

func TestFiberQueueInterleavedPushPop(t *testing.T) {
	var q fiberQueue
	a := &Fiber{id: 1}
	b := &Fiber{id: 2}

	q.pushBack(a)
	assert.Same(t, a, q.popFront())
	assert.True(t, q.empty())

	q.pushBack(b)
	q.pushBack(a)
	assert.Same(t, b, q.popFront())
	assert.Same(t, a, q.popFront())
}
