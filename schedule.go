package gui

import (
	"container/heap"
	"sync/atomic"
	"time"
)

// scheduledEventOrder hands out the process-wide unique ids that also
// break ties between events scheduled for the same instant.
var scheduledEventOrder atomic.Uint64

// scheduledEvent is one pending timed dispatch.
type scheduledEvent struct {
	id      uint64
	instant time.Time
	target  ID
	payload any
	// index is the position in the heap, kept by the heap interface so
	// cancellation by id is possible.
	index int
}

type scheduledHeap []*scheduledEvent

func (h scheduledHeap) Len() int { return len(h) }

func (h scheduledHeap) Less(i, j int) bool {
	if !h[i].instant.Equal(h[j].instant) {
		return h[i].instant.Before(h[j].instant)
	}
	return h[i].id < h[j].id
}

func (h scheduledHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *scheduledHeap) Push(x any) {
	event := x.(*scheduledEvent)
	event.index = len(*h)
	*h = append(*h, event)
}

func (h *scheduledHeap) Pop() any {
	old := *h
	n := len(old)
	event := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return event
}

// scheduledQueue is a priority queue of scheduled events ordered by
// (instant, insertion order), with O(log n) cancellation by id.
type scheduledQueue struct {
	heap scheduledHeap
	byID map[uint64]*scheduledEvent
}

func newScheduledQueue() scheduledQueue {
	return scheduledQueue{byID: make(map[uint64]*scheduledEvent)}
}

// push enqueues a payload for target at instant and returns the event id.
func (q *scheduledQueue) push(target ID, payload any, instant time.Time) uint64 {
	event := &scheduledEvent{
		id:      scheduledEventOrder.Add(1),
		instant: instant,
		target:  target,
		payload: payload,
	}
	heap.Push(&q.heap, event)
	q.byID[event.id] = event
	return event.id
}

// remove cancels the event with the given id, if still pending.
func (q *scheduledQueue) remove(id uint64) {
	event, ok := q.byID[id]
	if !ok {
		return
	}
	delete(q.byID, id)
	heap.Remove(&q.heap, event.index)
}

// next returns the instant of the earliest pending event.
func (q *scheduledQueue) next() (time.Time, bool) {
	if len(q.heap) == 0 {
		return time.Time{}, false
	}
	return q.heap[0].instant, true
}

// pop removes and returns the earliest pending event.
func (q *scheduledQueue) pop() *scheduledEvent {
	if len(q.heap) == 0 {
		return nil
	}
	event := heap.Pop(&q.heap).(*scheduledEvent)
	delete(q.byID, event.id)
	return event
}
