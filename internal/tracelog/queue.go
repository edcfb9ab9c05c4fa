package tracelog

import "sync/atomic"

// Queue is the bounded delivery channel between producers and the Log.
//
// Push never blocks. When the queue is full the oldest pending record is
// evicted to admit the new one, so under sustained load the queue keeps the
// most recent records and counts the rest as dropped.
type Queue struct {
	ch        chan Record
	delivered atomic.Uint64
	dropped   atomic.Uint64
}

// NewQueue creates a queue holding at most capacity records (minimum 1).
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{ch: make(chan Record, capacity)}
}

// Push enqueues r, evicting the oldest pending record if the queue is full.
func (q *Queue) Push(r Record) {
	select {
	case q.ch <- r:
		q.delivered.Add(1)
		return
	default:
	}

	select {
	case <-q.ch:
		q.dropped.Add(1)
	default:
	}

	select {
	case q.ch <- r:
		q.delivered.Add(1)
	default:
		// Another producer took the slot we freed.
		q.dropped.Add(1)
	}
}

// TryPop returns the oldest pending record without blocking.
func (q *Queue) TryPop() (Record, bool) {
	select {
	case r := <-q.ch:
		return r, true
	default:
		return Record{}, false
	}
}

// Len returns the number of pending records.
func (q *Queue) Len() int { return len(q.ch) }

// Cap returns the queue capacity.
func (q *Queue) Cap() int { return cap(q.ch) }

// Delivered returns how many records were accepted by Push.
func (q *Queue) Delivered() uint64 { return q.delivered.Load() }

// Dropped returns how many records were lost to eviction.
func (q *Queue) Dropped() uint64 { return q.dropped.Load() }
