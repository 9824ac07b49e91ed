package reconcile

import "sync/atomic"

// Context carries the suspension state shared by every engine entry point.
// A suspended context turns Pass into a no-op so the engine does not react
// to the intermediate stacks a bake produces.
type Context struct {
	holds atomic.Int32
}

// NewContext returns an unsuspended context.
func NewContext() *Context {
	return &Context{}
}

// Suspended reports whether any guard is currently held.
func (c *Context) Suspended() bool {
	return c.holds.Load() > 0
}

// Suspend acquires a guard. The caller must Release it on every exit path,
// typically with defer.
func (c *Context) Suspend() *Guard {
	c.holds.Add(1)
	return &Guard{ctx: c}
}

// Guard is a scoped suspension of a Context.
type Guard struct {
	ctx      *Context
	released atomic.Bool
}

// Release ends the suspension. Calling it more than once is harmless.
func (g *Guard) Release() {
	if g == nil || g.ctx == nil {
		return
	}
	if g.released.CompareAndSwap(false, true) {
		g.ctx.holds.Add(-1)
	}
}
