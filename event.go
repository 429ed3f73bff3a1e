package vrml

import "container/heap"

// Event is one value sent from a node output.
type Event struct {
	Node      *Node
	Interface string
	Value     Value
	Time      float64
}

// EventSink is the interface for optional ECS integration. When set on a
// Scene, every emitted event is forwarded to it.
type EventSink interface {
	EmitEvent(event Event)
}

// pending is a queued route delivery.
type pending struct {
	route *Route
	value Value
	ts    float64
	seq   uint64
}

// eventQueue orders deliveries by timestamp, then by posting order.
type eventQueue []pending

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if q[i].ts != q[j].ts {
		return q[i].ts < q[j].ts
	}
	return q[i].seq < q[j].seq
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) { *q = append(*q, x.(pending)) }

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	p := old[n-1]
	old[n-1] = pending{}
	*q = old[:n-1]
	return p
}

func (q *eventQueue) push(p pending) { heap.Push(q, p) }

func (q *eventQueue) pop() pending { return heap.Pop(q).(pending) }

func (q *eventQueue) reset() {
	clear(*q)
	*q = (*q)[:0]
}
