package editor

import (
	"fmt"

	"map-editor/math"
	"map-editor/scene"
)

// scaleEpsilon guards ratios against near-zero extents and offsets; a
// ratio within scaleEpsilon of 1 counts as no change.
const scaleEpsilon = 1e-5

type scaleGesture struct {
	uniform      bool
	start        math.Vec3
	accumulated  math.Vec3
	originalSize math.Vec3
	ratio        math.Vec3
}

func (*scaleGesture) state() TransformState { return StateScale }

func (g *scaleGesture) result(origin math.Vec3) (math.Mat4, bool) {
	changed := false
	for _, axis := range math.Axes {
		if math.Abs(g.ratio.Get(axis)-1) > scaleEpsilon {
			changed = true
		}
	}
	return math.Mat4ScaleAbout(g.ratio, origin), changed
}

// StartScale begins a scale drag about the selection center from
// clickPoint. A uniform drag scales every axis by the same signed ratio.
func (s *Selection[T]) StartScale(clickPoint *math.Vec3, uniform bool) {
	if !s.begin("scale") {
		return
	}
	for _, item := range s.items {
		item.AddPoints(s.points)
	}

	g := &scaleGesture{uniform: uniform, ratio: math.Vec3One}
	s.gesture = g
	if s.points.Len() == 0 || clickPoint == nil {
		s.finish(math.Mat4Identity(), false)
		return
	}

	lo, hi := s.corners()
	g.start = s.constraint.Collapse(*clickPoint, s.origin)
	g.originalSize = hi.Committed().Sub(lo.Committed())
}

// UpdateScale adds one input tick of a scale drag. displacement is the
// world delta of this tick.
func (s *Selection[T]) UpdateScale(view Viewport, displacement math.Vec3) {
	g, ok := s.gesture.(*scaleGesture)
	if !ok {
		return
	}
	s.ctx.assertMutationThread()
	prefs := s.ctx.prefs()

	g.accumulated = g.accumulated.Add(s.constraint.Apply(displacement))
	end := g.start.Add(g.accumulated)
	dstart := g.start.Sub(s.origin)
	dend := end.Sub(s.origin)

	var allowed [3]bool
	for _, axis := range math.Axes {
		size := math.Abs(g.originalSize.Get(axis))
		allowed[axis] = s.constraint.Allows(axis) && size > scaleEpsilon

		ratio := float32(1)
		if math.Abs(dstart.Get(axis)) > scaleEpsilon && size > scaleEpsilon {
			ratio = dend.Get(axis) / dstart.Get(axis)
		}
		g.ratio.Set(axis, ratio)
	}

	if g.uniform {
		u := float32(1)
		if rs := dstart.Length(); rs > scaleEpsilon {
			u = math.Sign(dstart.Dot(dend)) * dend.Length() / rs
		}
		g.ratio = math.NewVec3(u, u, u)
	} else {
		for _, axis := range math.Axes {
			if !allowed[axis] {
				g.ratio.Set(axis, 1)
			}
		}
	}

	if prefs.SnapScale {
		g.ratio = snapScale(g.ratio, g.originalSize, allowed, prefs.ScaleToGrid, prefs.Grid().Spacing())
	}

	s.touchPoints(func(p *scene.MutablePoint) { p.SetTempScale(s.origin, g.ratio) })
	lo, hi := s.corners()
	lo.SetTempScale(s.origin, g.ratio)
	hi.SetTempScale(s.origin, g.ratio)

	s.setMessage(fmt.Sprintf("Scale: %v, %v, %v", g.ratio.X, g.ratio.Y, g.ratio.Z))
}

// snapScale rounds each allowed ratio to a tenth, or with toGrid to the
// nearest ratio that makes the original extent a multiple of spacing.
// Other axes get ratio 1; a spacing of zero or less leaves grid ratios
// unsnapped.
func snapScale(ratio, size math.Vec3, allowed [3]bool, toGrid bool, spacing float32) math.Vec3 {
	for _, axis := range math.Axes {
		r := ratio.Get(axis)
		switch {
		case toGrid && !allowed[axis]:
			r = 1
		case toGrid && spacing > 0:
			step := spacing / size.Get(axis)
			r = step * math.RoundHalfUp(r/step)
		case !toGrid && allowed[axis]:
			r = math.RoundHalfUp(r*10) / 10
		}
		ratio.Set(axis, r)
	}
	return ratio
}
