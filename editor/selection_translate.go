package editor

import (
	"fmt"
	stdmath "math"

	"map-editor/core"
	"map-editor/math"
	"map-editor/scene"
)

// Snapping waits until a drag is clearly intentional: more than
// snapDelayFrames updates covering more than snapDelayPixels of cursor
// travel, or more than snapForceFrames updates regardless of travel.
const (
	snapDelayFrames = 10
	snapDelayPixels = 25
	snapForceFrames = 30

	// vertexSnapFraction of the visible view width is the vertex snap radius.
	vertexSnapFraction = 40
)

type translateGesture struct {
	reference    math.Vec3
	hasReference bool
	immediate    bool

	accumulated math.Vec3
	current     math.Vec3
	rawDistance float64
	frames      int
}

func (*translateGesture) state() TransformState { return StateTranslate }

func (g *translateGesture) result(math.Vec3) (math.Mat4, bool) {
	return math.Mat4Translation(g.current), !g.current.IsZero()
}

func (g *translateGesture) snapReady() bool {
	return g.immediate ||
		(g.frames > snapDelayFrames && g.rawDistance > snapDelayPixels) ||
		g.frames > snapForceFrames
}

// StartTranslation begins a translate drag. reference is the picked
// position used for vertex snapping and may be nil. An immediate drag
// snaps from its first update.
func (s *Selection[T]) StartTranslation(reference *math.Vec3, immediate bool) {
	if !s.begin("translation") {
		return
	}
	for _, item := range s.items {
		item.AddPoints(s.points)
	}

	g := &translateGesture{immediate: immediate}
	if reference != nil {
		g.reference, g.hasReference = *reference, true
	}
	s.gesture = g

	if s.points.Len() == 0 {
		s.finish(math.Mat4Identity(), false)
	}
}

// UpdateTranslation adds one input tick of a translate drag. displacement
// is the world delta of this tick and rawDx, rawDy the cursor delta in
// pixels. candidates are the vertices a vertex snap may land on. It does
// nothing unless a translation is active.
func (s *Selection[T]) UpdateTranslation(view Viewport, displacement math.Vec3, rawDx, rawDy float32, candidates []math.Vec3) {
	g, ok := s.gesture.(*translateGesture)
	if !ok {
		return
	}
	s.ctx.assertMutationThread()
	prefs := s.ctx.prefs()

	g.accumulated = g.accumulated.Add(s.constraint.Apply(displacement))
	g.rawDistance += stdmath.Hypot(float64(rawDx), float64(rawDy))
	g.frames++

	if g.snapReady() {
		switch {
		case prefs.SnapVertices && g.hasReference && len(candidates) > 0 && view != nil:
			g.current = snapToVertices(view, candidates, g.reference, g.accumulated)
		case prefs.GridSnapActive():
			lo, hi := s.corners()
			g.current = snapToGrid(lo.Committed(), hi.Committed(), prefs.Grid().Spacing(), displacement, g.accumulated)
		default:
			g.current = g.accumulated
		}
	}
	g.current = s.constraint.Apply(g.current)

	s.applyTranslation(g.current, true)
	s.setMessage(fmt.Sprintf("Translate: %d, %d, %d", int(g.current.X), int(g.current.Y), int(g.current.Z)))
}

// applyTranslation moves the collected points, the box corners and the
// gizmo. Points already moved this frame are skipped when touch is set.
func (s *Selection[T]) applyTranslation(d math.Vec3, touch bool) {
	if touch {
		s.touchPoints(func(p *scene.MutablePoint) { p.SetTempTranslation(d) })
	} else {
		for _, id := range s.points.Items() {
			s.ctx.Arena.Point(id).SetTempTranslation(d)
		}
	}
	lo, hi := s.corners()
	lo.SetTempTranslation(d)
	hi.SetTempTranslation(d)
	if s.gizmo != nil {
		s.gizmo.SetTransformDisplacement(d)
	}
}

// snapToVertices moves the reference onto the nearest candidate in the
// view plane when one lies within the snap radius. Components along the
// view's fixed axis keep the raw delta.
func snapToVertices(view Viewport, candidates []math.Vec3, reference, accumulated math.Vec3) math.Vec3 {
	proj := view.Type().ProjectionVector()
	pos := reference.Add(accumulated).MulVec(proj)

	minDist := float32(stdmath.MaxFloat32)
	var nearest math.Vec3
	for _, c := range candidates {
		target := c.MulVec(proj)
		if d := pos.Distance(target); d < minDist {
			minDist, nearest = d, target
		}
	}

	current := accumulated
	if minDist < view.ViewWorldSizeX()/vertexSnapFraction {
		for _, axis := range math.Axes {
			if proj.Get(axis) != 0 {
				current.Set(axis, nearest.Get(axis)-reference.Get(axis))
			}
		}
	}
	return current
}

// snapToGrid moves the leading face of the box, chosen per axis by the
// sign of this tick's displacement, onto the nearest grid line. lo and hi
// are the committed box corners. A spacing of zero or less disables it.
func snapToGrid(lo, hi math.Vec3, spacing float32, displacement, accumulated math.Vec3) math.Vec3 {
	if spacing <= 0 {
		return accumulated
	}
	var snapped math.Vec3
	for _, axis := range math.Axes {
		edge := hi.Get(axis)
		if displacement.Get(axis) <= 0 {
			edge = lo.Get(axis)
		}
		target := spacing * math.RoundHalfUp((accumulated.Get(axis)+edge)/spacing)
		snapped.Set(axis, target-edge)
	}
	return snapped
}

// NudgeAlong moves the selection one step in direction and commits it.
// With grid snapping on, each axis steps to the next grid line past the
// leading face in the sign of that component; otherwise the selection
// moves by the normalized direction.
func (s *Selection[T]) NudgeAlong(direction math.Vec3) {
	if s.gesture != nil {
		core.LogWarn("cannot nudge: selection is already in %s", s.State())
		return
	}
	s.StartTranslation(nil, true)
	g, ok := s.gesture.(*translateGesture)
	if !ok {
		return
	}
	prefs := s.ctx.prefs()
	dir := direction.Normalize()

	if prefs.GridSnapActive() {
		spacing := prefs.Grid().Spacing()
		loPoint, hiPoint := s.corners()
		lo, hi := loPoint.Committed(), hiPoint.Committed()
		for _, axis := range math.Axes {
			var step float32
			switch c := dir.Get(axis); {
			case c < 0:
				step = spacing*(float32(stdmath.Ceil(float64(lo.Get(axis)/spacing)))-1) - lo.Get(axis)
			case c > 0:
				step = spacing*(float32(stdmath.Floor(float64(hi.Get(axis)/spacing)))+1) - hi.Get(axis)
			}
			g.current.Set(axis, step)
		}
	} else {
		g.current = dir
	}

	s.applyTranslation(g.current, false)
	s.EndTransform()
}
