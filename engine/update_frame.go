package engine

import "time"

type UpdateFrame struct {
	// Now is the clock reading the frame was started with.
	Now time.Duration
	// DeltaTime is the time elapsed since the previous frame.
	DeltaTime time.Duration
	Commands  *Commands
}

func newUpdateFrame(now, dt time.Duration) *UpdateFrame {
	return &UpdateFrame{
		Now:       now,
		DeltaTime: dt,
		Commands:  newCommands(),
	}
}
