package ufiber

// fiberQueue is a FIFO of *Fiber, used both as the scheduler's ready
// queue and as each synchronizer's wait list. The original C++ source
// uses std::list<UThread*> purely as push_back/pop_front storage —
// never indexed, never iterated — so a singly-linked list with a tail
// pointer is the narrowest faithful translation.
type fiberQueue struct {
	head, tail *fiberNode
	len        int
}

type fiberNode struct {
	f    *Fiber
	next *fiberNode
}

func (q *fiberQueue) pushBack(f *Fiber) {
	n := &fiberNode{f: f}
	if q.tail == nil {
		q.head, q.tail = n, n
	} else {
		q.tail.next = n
		q.tail = n
	}
	q.len++
}

func (q *fiberQueue) popFront() *Fiber {
	if q.head == nil {
		return nil
	}
	n := q.head
	q.head = n.next
	if q.head == nil {
		q.tail = nil
	}
	n.next = nil
	q.len--
	return n.f
}

func (q *fiberQueue) empty() bool {
	return q.head == nil
}

func (q *fiberQueue) size() int {
	return q.len
}
