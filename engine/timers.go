package engine

import (
	"container/heap"
	"time"
)

// TimerID identifies a scheduled task so it can be cancelled.
type TimerID uint64

type timer struct {
	id       TimerID
	deadline time.Duration
	fn       func()
	index    int
}

// timerQueue orders timers by deadline, then by scheduling order.
type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].deadline == q[j].deadline {
		return q[i].id < q[j].id
	}
	return q[i].deadline < q[j].deadline
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// popDue removes and returns the earliest timer whose deadline is not after now.
func (q *timerQueue) popDue(now time.Duration) *timer {
	if q.Len() == 0 || (*q)[0].deadline > now {
		return nil
	}
	return heap.Pop(q).(*timer)
}
