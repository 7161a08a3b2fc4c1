package engine

// Commands provides a buffer for deferred operations that are executed at the end of a frame.
// This keeps state changes triggered by one system from being observed by the systems
// that run after it in the same frame.
type Commands struct {
	defers []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	if fn == nil {
		panic("engine: Defer called with nil func")
	}
	c.defers = append(c.defers, fn)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.defers)
}

// Flush runs all queued operations in order, resetting the buffer state.
// Operations queued while flushing run in the same flush.
func (c *Commands) Flush() {
	for i := 0; i < len(c.defers); i++ {
		c.defers[i]()
	}
	c.defers = c.defers[:0]
}
