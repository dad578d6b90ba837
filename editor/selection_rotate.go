package editor

import (
	"fmt"

	"map-editor/math"
	"map-editor/scene"
)

// minRotation in degrees; smaller rotations count as no change.
const minRotation = 1e-12

type rotateGesture struct {
	axis       math.Axis
	start      math.Vec3
	startAngle float64
	angle      float64
}

func (*rotateGesture) state() TransformState { return StateRotate }

func (g *rotateGesture) result(origin math.Vec3) (math.Mat4, bool) {
	return math.Mat4RotationAbout(g.axis, g.angle, origin), math.Abs(g.angle) > minRotation
}

// StartRotation begins a rotation about axis through the selection
// center. Only items that allow rotation about axis contribute points;
// every item contributes its angles.
func (s *Selection[T]) StartRotation(axis math.Axis, clickPoint math.Vec3) {
	if !s.begin("rotation") {
		return
	}
	for _, item := range s.items {
		if item.AllowRotation(axis) {
			item.AddPoints(s.points)
		}
		item.AddAngles(s.angles)
	}

	start := clickPoint.With(axis, s.origin.Get(axis))
	s.gesture = &rotateGesture{
		axis:       axis,
		start:      start,
		startAngle: math.PlaneAngle(start.Sub(s.origin), axis),
	}

	if s.points.Len() == 0 && s.angles.Len() == 0 {
		s.finish(math.Mat4Identity(), false)
	}
}

// UpdateRotation turns the selection by the angle swept from the start
// point to point around the pivot, snapped to the rotation increment when
// rotation snapping is on.
func (s *Selection[T]) UpdateRotation(view Viewport, point math.Vec3) {
	g, ok := s.gesture.(*rotateGesture)
	if !ok {
		return
	}
	s.ctx.assertMutationThread()
	prefs := s.ctx.prefs()

	end := point.With(g.axis, s.origin.Get(g.axis))
	angle := math.WrapDegrees(math.PlaneAngle(end.Sub(s.origin), g.axis) - g.startAngle)
	if prefs.SnapRotation && prefs.RotationIncrement > 0 {
		angle = math.RoundHalfUp(angle/prefs.RotationIncrement) * prefs.RotationIncrement
	}
	g.angle = angle

	s.touchPoints(func(p *scene.MutablePoint) { p.SetTempRotation(g.axis, angle, s.origin) })
	s.touchAngles(func(a *scene.MutableAngle) { a.SetTempRotation(g.axis, angle) })

	s.setMessage(fmt.Sprintf("Rotate %s: %d degrees", g.axis, int(angle)))
}
