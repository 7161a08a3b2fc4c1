package engine_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/rainbowdrop/engine"
)

type Counter struct {
	Frames int
	Total  time.Duration
}

func (c *Counter) Execute(frame *engine.UpdateFrame) {
	c.Frames++
	c.Total += frame.DeltaTime
}

// ExampleScheduler drives systems and one-shot timers from a manual clock.
// Timers due at a frame fire before the systems run.
func ExampleScheduler() {
	clock := engine.NewManualClock()
	scheduler := engine.NewScheduler(clock)

	counter := &Counter{}
	scheduler.Register(counter)
	scheduler.After(50*time.Millisecond, func() {
		fmt.Printf("timer fired at %s, after %d frames\n", clock.Now(), counter.Frames)
	})

	for range 4 {
		clock.Advance(20 * time.Millisecond)
		scheduler.Once()
	}

	fmt.Printf("frames: %d, elapsed: %s\n", counter.Frames, counter.Total)

	// Output:
	// timer fired at 60ms, after 2 frames
	// frames: 4, elapsed: 60ms
}

// ExampleScheduler_Run runs frames on a ticker until the context ends.
func ExampleScheduler_Run() {
	scheduler := engine.NewScheduler(engine.NewSystemClock())
	scheduler.Register(&Counter{})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, 16*time.Millisecond)

	fmt.Println("Scheduler stopped")
	// Output:
	// Scheduler stopped
}

// ExampleCommands defers work to the end of the frame, after every system.
func ExampleCommands() {
	scheduler := engine.NewScheduler(engine.NewManualClock())

	scheduler.Register(engine.SystemFunc(func(frame *engine.UpdateFrame) {
		frame.Commands.Defer(func() { fmt.Println("deferred") })
		fmt.Println("first system")
	}))
	scheduler.Register(engine.SystemFunc(func(frame *engine.UpdateFrame) {
		fmt.Println("second system")
	}))

	scheduler.Once()

	// Output:
	// first system
	// second system
	// deferred
}
