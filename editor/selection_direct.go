package editor

import (
	"map-editor/core"
	"map-editor/math"
	"map-editor/scene"
)

// ApplyMatrixTransformation applies m to every item and to the bounding
// box in one step and commits it as a single command.
func (s *Selection[T]) ApplyMatrixTransformation(m math.Mat4) {
	if !s.begin("matrix transformation") {
		return
	}
	lo, hi := s.aabb.Corners()
	s.points.Add(lo)
	s.points.Add(hi)
	for _, item := range s.items {
		item.AddPoints(s.points)
		item.AddAngles(s.angles)
	}
	s.gesture = substituteGesture{}

	for _, id := range s.points.Items() {
		s.ctx.Arena.Point(id).SetTempMatrix(m)
	}
	for _, id := range s.angles.Items() {
		s.ctx.Arena.Angle(id).SetTempMatrix(m)
	}
	s.finish(m, true)
}

// StartDirectTransformation opens a scope in which the caller sets
// positions itself, through SetTemp on the points of DirectPoints.
// EndDirectTransformation records every change as one command.
func (s *Selection[T]) StartDirectTransformation() {
	if !s.begin("direct transformation") {
		return
	}
	for _, item := range s.items {
		item.AddPoints(s.points)
		item.AddAngles(s.angles)
	}
	s.gesture = substituteGesture{}
}

// DirectPoints are the positions open to a direct transformation.
func (s *Selection[T]) DirectPoints() []scene.PointID {
	if _, ok := s.gesture.(substituteGesture); !ok {
		return nil
	}
	return s.points.Items()
}

// DirectAngles are the angles open to a direct transformation.
func (s *Selection[T]) DirectAngles() []scene.AngleID {
	if _, ok := s.gesture.(substituteGesture); !ok {
		return nil
	}
	return s.angles.Items()
}

// EndDirectTransformation commits the positions set since
// StartDirectTransformation. Nothing is recorded when nothing moved.
func (s *Selection[T]) EndDirectTransformation() {
	if _, ok := s.gesture.(substituteGesture); !ok {
		core.LogWarn("no direct transformation to end (state %s)", s.State())
		return
	}
	s.ctx.assertMutationThread()

	snapshot := scene.NewSnapshot(s.ctx.Arena)
	snapshot.CaptureScratch(s.points, s.angles)

	var cmd Command
	if snapshot.Changed() {
		cmd = NewTransformCommand("Direct Transform Selection", snapshot, nil, s.refresher())
	}
	s.settle(cmd)
}

// SnapToGrid rounds every selected position to the grid spacing as one
// direct transformation.
func (s *Selection[T]) SnapToGrid() {
	if s.gesture != nil {
		core.LogWarn("cannot snap to grid: selection is already in %s", s.State())
		return
	}
	spacing := s.ctx.prefs().Grid().Spacing()
	s.StartDirectTransformation()
	for _, id := range s.DirectPoints() {
		s.ctx.Arena.Point(id).RoundTemp(spacing)
	}
	s.EndDirectTransformation()
}
