package editor

import (
	"map-editor/config"
	"map-editor/core"
	"map-editor/scene"
)

// FrameSource supplies the current input tick.
type FrameSource interface {
	Frame() uint64
}

// Context is what a Selection needs from its host.
type Context struct {
	Arena    *scene.Arena
	Executor CommandExecutor
	Frames   FrameSource
	Prefs    *config.Preferences

	// OnStatus receives the advisory status line of every gesture update.
	OnStatus func(status string)
	// MutationGuard, when set, must report true on the host's mutation
	// goroutine. Mutating entry points assert it.
	MutationGuard func() bool
}

// NewContext wires a context around a history and a frame counter with
// default preferences.
func NewContext(arena *scene.Arena, history *History, frames *core.FrameCounter) *Context {
	prefs := config.Default()
	return &Context{
		Arena:    arena,
		Executor: history,
		Frames:   frames,
		Prefs:    &prefs,
	}
}

func (c *Context) frame() uint64 {
	if c.Frames == nil {
		return 0
	}
	return c.Frames.Frame()
}

func (c *Context) prefs() config.Preferences {
	if c.Prefs == nil {
		return config.Default()
	}
	return *c.Prefs
}

func (c *Context) status(msg string) {
	if c.OnStatus != nil {
		c.OnStatus(msg)
	}
}

func (c *Context) assertMutationThread() {
	if c.MutationGuard == nil {
		return
	}
	core.Assert(c.MutationGuard(), core.ErrWrongThread, "selection mutated off the mutation goroutine")
}
