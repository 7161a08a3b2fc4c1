package engine

import (
	"container/heap"
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	TimersFired     int64
	TimersPending   int
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler drives one game session cooperatively: each frame it fires the
// delayed tasks that have come due, then executes the registered systems in order.
// It is not safe for concurrent use; everything runs on the frame goroutine.
type Scheduler struct {
	clock       Clock
	systems     []System
	systemStats []*systemStatsInternal

	timers      timerQueue
	byID        map[TimerID]*timer
	nextID      TimerID
	timersFired int64

	frames    int64
	lastFrame time.Duration
	started   bool
}

// NewScheduler creates a new scheduler reading time from clock.
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{
		clock:   clock,
		systems: make([]System, 0),
		byID:    make(map[TimerID]*timer),
	}
}

func (s *Scheduler) Clock() Clock {
	return s.clock
}

// Register adds a system to the scheduler.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	systemName := systemType.Name()

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemName,
		minDuration: time.Duration(1<<63 - 1),
	})
}

// After schedules fn to run during the first frame at or after delay from now.
// Timers fire once; callers re-arm explicitly.
func (s *Scheduler) After(delay time.Duration, fn func()) TimerID {
	if fn == nil {
		panic("engine: After called with nil func")
	}
	if delay < 0 {
		delay = 0
	}
	s.nextID++
	t := &timer{
		id:       s.nextID,
		deadline: s.clock.Now() + delay,
		fn:       fn,
	}
	heap.Push(&s.timers, t)
	s.byID[t.id] = t
	return t.id
}

// Cancel removes a pending timer. It reports whether the timer was still pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&s.timers, t.index)
	delete(s.byID, id)
	return true
}

// Pending returns the number of timers that have not fired yet.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Clear drops every pending timer.
func (s *Scheduler) Clear() {
	s.timers = s.timers[:0]
	clear(s.byID)
}

// Once runs a single frame at the current clock reading.
func (s *Scheduler) Once() {
	now := s.clock.Now()
	var dt time.Duration
	if s.started {
		dt = now - s.lastFrame
	}
	s.started = true
	s.lastFrame = now
	s.frames++

	s.fireTimers(now)

	frame := newUpdateFrame(now, dt)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	frame.Commands.Flush()
}

// fireTimers runs due timers in deadline order. A timer armed by a callback
// fires in the same pass when it is already due.
func (s *Scheduler) fireTimers(now time.Duration) {
	for {
		t := s.timers.popDue(now)
		if t == nil {
			return
		}
		delete(s.byID, t.id)
		s.timersFired++
		t.fn()
	}
}

// Run executes frames repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Once()
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount:   len(s.systems),
		Frames:        s.frames,
		TimersFired:   s.timersFired,
		TimersPending: len(s.timers),
		Systems:       make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
