package core

// FrameCounter is the host tick. Mutable positions stamp themselves with
// the current frame so that a position shared by several entities moves
// only once per update.
type FrameCounter struct {
	frame uint64
}

func NewFrameCounter() *FrameCounter {
	return &FrameCounter{}
}

// Frame returns the current tick.
func (f *FrameCounter) Frame() uint64 {
	return f.frame
}

// Advance moves to the next tick and returns it.
func (f *FrameCounter) Advance() uint64 {
	f.frame++
	return f.frame
}
