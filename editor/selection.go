package editor

import (
	"slices"

	"map-editor/core"
	"map-editor/math"
	"map-editor/scene"
)

// TransformState is the phase of the selection's transform state machine.
type TransformState int

const (
	StateIdle TransformState = iota
	StateTranslate
	StateRotate
	StateScale
	// StateSubstitute covers matrix and direct transforms, which bypass
	// the drag gestures.
	StateSubstitute
)

func (s TransformState) String() string {
	switch s {
	case StateTranslate:
		return "Translate"
	case StateRotate:
		return "Rotate"
	case StateScale:
		return "Scale"
	case StateSubstitute:
		return "Substitute"
	}
	return "Idle"
}

// gesture carries the scratch data of the active transform. Only the
// active gesture's data exists.
type gesture interface {
	state() TransformState
	// result is the matrix a finished gesture commits and whether it
	// changes anything.
	result(origin math.Vec3) (math.Mat4, bool)
}

type substituteGesture struct{}

func (substituteGesture) state() TransformState { return StateSubstitute }

func (substituteGesture) result(math.Vec3) (math.Mat4, bool) { return math.Mat4Identity(), true }

// Selection is an ordered set of items plus the transform state machine
// that moves them together. Its bounding box corners and gizmo origin live
// in the arena and transform along with the items.
type Selection[T SelectableItem] struct {
	ctx *Context

	items []T
	aabb  *scene.BoundingBox
	gizmo *TransformGizmo

	constraint AxisConstraint
	gesture    gesture
	origin     math.Vec3
	points     *scene.PointSet
	angles     *scene.AngleSet
	batch      *Batch
	message    string
}

func NewSelection[T SelectableItem](ctx *Context) *Selection[T] {
	return &Selection[T]{
		ctx:        ctx,
		aabb:       scene.NewBoundingBox(ctx.Arena),
		constraint: Unconstrained,
		points:     scene.NewPointSet(),
		angles:     scene.NewAngleSet(),
		batch:      NewBatch(""),
	}
}

// --- Reads ---

func (s *Selection[T]) State() TransformState {
	if s.gesture == nil {
		return StateIdle
	}
	return s.gesture.state()
}

func (s *Selection[T]) Transforming() bool { return s.gesture != nil }

// RotationAxis is meaningful while rotating.
func (s *Selection[T]) RotationAxis() math.Axis {
	if r, ok := s.gesture.(*rotateGesture); ok {
		return r.axis
	}
	return math.AxisY
}

// RotationAngle is the current angle of a rotate gesture in degrees.
func (s *Selection[T]) RotationAngle() float64 {
	if r, ok := s.gesture.(*rotateGesture); ok {
		return r.angle
	}
	return 0
}

func (s *Selection[T]) AABB() *scene.BoundingBox { return s.aabb }

// Message is the status line of the current gesture, empty when idle.
func (s *Selection[T]) Message() string { return s.message }

// Constraint is the axis constraint of the last gizmo pick.
func (s *Selection[T]) Constraint() AxisConstraint { return s.constraint }

// SetConstraint constrains the next gesture without a gizmo pick, as a
// keyboard axis lock does.
func (s *Selection[T]) SetConstraint(c AxisConstraint) { s.constraint = c }

// Gizmo is nil while the selection is empty.
func (s *Selection[T]) Gizmo() *TransformGizmo { return s.gizmo }

// Batch is the pending command batch of the current gesture. Commands
// added to it commit or roll back together with the gesture.
func (s *Selection[T]) Batch() *Batch { return s.batch }

func (s *Selection[T]) IsEmpty() bool { return len(s.items) == 0 }
func (s *Selection[T]) Len() int      { return len(s.items) }

// Items must not be modified by the caller.
func (s *Selection[T]) Items() []T { return s.items }

func (s *Selection[T]) Contains(item T) bool {
	return slices.Contains(s.items, item)
}

// MostRecent returns the last added item.
func (s *Selection[T]) MostRecent() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

func (s *Selection[T]) Center() math.Vec3 { return s.aabb.Center() }

// --- Membership ---

func (s *Selection[T]) membershipLocked(op string) bool {
	if s.gesture != nil {
		core.LogWarn("cannot %s while the selection is being transformed", op)
		return true
	}
	return false
}

// AddAndSelect does nothing for an item that is already selected.
func (s *Selection[T]) AddAndSelect(item T) {
	s.ctx.assertMutationThread()
	if item.IsSelected() || s.membershipLocked("add to selection") {
		return
	}
	if !s.Contains(item) {
		s.items = append(s.items, item)
	}
	item.SetSelected(true)
	item.AddTo(s.aabb)
	s.centerGizmo()
}

func (s *Selection[T]) AddAllAndSelect(items []T) {
	for _, item := range items {
		s.AddAndSelect(item)
	}
}

// AddWithoutSelecting makes item part of transforms without flagging it
// as selected.
func (s *Selection[T]) AddWithoutSelecting(item T) {
	s.ctx.assertMutationThread()
	if s.Contains(item) || s.membershipLocked("add to selection") {
		return
	}
	s.items = append(s.items, item)
	item.AddTo(s.aabb)
	s.centerGizmo()
}

// RemoveAndDeselect does nothing for an item that is not selected.
func (s *Selection[T]) RemoveAndDeselect(item T) {
	s.ctx.assertMutationThread()
	if !item.IsSelected() && !s.Contains(item) {
		return
	}
	if s.membershipLocked("remove from selection") {
		return
	}
	s.remove(item)
	s.afterRemove()
}

func (s *Selection[T]) RemoveAllAndDeselect(items []T) {
	s.ctx.assertMutationThread()
	if s.membershipLocked("remove from selection") {
		return
	}
	for _, item := range slices.Clone(items) {
		s.remove(item)
	}
	s.afterRemove()
}

func (s *Selection[T]) remove(item T) {
	if i := slices.Index(s.items, item); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
	}
	item.SetSelected(false)
}

func (s *Selection[T]) afterRemove() {
	s.UpdateAABB()
	if len(s.items) == 0 {
		s.destroyGizmo()
	}
}

// Clear deselects everything.
func (s *Selection[T]) Clear() {
	s.ctx.assertMutationThread()
	if s.membershipLocked("clear selection") {
		return
	}
	for _, item := range s.items {
		item.SetSelected(false)
	}
	s.items = s.items[:0]
	s.aabb.Clear()
	s.destroyGizmo()
}

// UpdateAABB rebuilds the box from the items and re-centers the gizmo.
func (s *Selection[T]) UpdateAABB() {
	s.aabb.Clear()
	for _, item := range s.items {
		item.AddTo(s.aabb)
	}
	if len(s.items) > 0 {
		s.centerGizmo()
	}
}

func (s *Selection[T]) centerGizmo() {
	if s.gizmo == nil {
		s.gizmo = NewTransformGizmo(s.ctx.Arena, s, s.aabb.Center())
		return
	}
	s.gizmo.SetOrigin(s.aabb.Center())
}

func (s *Selection[T]) destroyGizmo() {
	if s.gizmo == nil {
		return
	}
	s.gizmo.Release()
	s.gizmo = nil
}

// --- Gizmo ---

func (s *Selection[T]) gizmoVisible() bool {
	return s.gizmo != nil && len(s.items) > 0 && s.ctx.prefs().ShowGizmo
}

// TestGizmo updates gizmo hover highlighting.
func (s *Selection[T]) TestGizmo(ray PickRay, view Viewport) {
	if !s.gizmoVisible() {
		return
	}
	pos := s.gizmo.Position()
	s.gizmo.Test(ray, view, view.ScaleFactor(pos.X, pos.Y, pos.Z))
}

// PickGizmo resets the axis constraint and, when a handle is hit, sets it
// to that handle's constraint.
func (s *Selection[T]) PickGizmo(ray PickRay, view Viewport) Hit {
	s.constraint = Unconstrained
	if !s.gizmoVisible() {
		return MissHit()
	}
	pos := s.gizmo.Position()
	h := s.gizmo.Pick(ray, view, view.ScaleFactor(pos.X, pos.Y, pos.Z))
	if h.Missed() {
		// hover highlighting reads the last pick
		s.gizmo.forgetPick()
		return h
	}
	s.constraint = h.Obj.(AxisConstraint)
	return h
}

// --- Transform scope ---

// begin enters a gesture: it opens the transform scope on the box corners,
// the gizmo and every item, and resets the point and angle sets.
func (s *Selection[T]) begin(op string) bool {
	s.ctx.assertMutationThread()
	if s.gesture != nil {
		core.LogWarn("cannot start %s: selection is already in %s", op, s.State())
		return false
	}
	s.origin = s.aabb.Center()
	s.aabb.StartTransform()
	if s.gizmo != nil {
		s.gizmo.StartTransformation()
	}
	for _, item := range s.items {
		item.StartTransformation()
	}
	s.points.Clear()
	s.angles.Clear()
	return true
}

// EndTransform finishes the active gesture, committing it as one command
// when it changed anything and rolling back the pending batch otherwise.
// It does nothing while idle.
func (s *Selection[T]) EndTransform() {
	s.ctx.assertMutationThread()
	switch g := s.gesture.(type) {
	case nil:
		return
	case substituteGesture:
		core.LogWarn("direct transforms end with EndDirectTransformation")
		return
	case *translateGesture, *scaleGesture:
		m, changed := g.result(s.origin)
		s.finish(m, changed)
		s.constraint = Unconstrained
	default:
		m, changed := g.result(s.origin)
		s.finish(m, changed)
	}
}

// finish closes the scope opened by begin, committing m when changed.
func (s *Selection[T]) finish(m math.Mat4, changed bool) {
	var cmd Command
	if changed && len(s.items) > 0 {
		cmd = s.transformCommand(m)
	}
	s.settle(cmd)
}

// settle commits the pending batch with cmd, or rolls it back when cmd is
// nil, then closes the transform scope and returns to idle.
func (s *Selection[T]) settle(cmd Command) {
	if len(s.items) > 0 {
		if cmd != nil {
			s.batch.Add(cmd)
			s.execute(s.batch)
		} else {
			s.batch.Undo()
		}
	}
	s.batch = NewBatch("")

	s.aabb.EndTransform()
	if s.gizmo != nil {
		s.gizmo.EndTransformation()
	}
	for _, item := range s.items {
		item.EndTransformation()
	}
	s.points.Clear()
	s.angles.Clear()

	for _, item := range s.items {
		item.RecalculateAABB()
	}
	s.UpdateAABB()
	s.gesture = nil
	s.message = ""
}

func (s *Selection[T]) execute(cmd Command) {
	if s.ctx.Executor == nil {
		cmd.Execute()
		return
	}
	s.ctx.Executor.Execute(cmd)
}

// transformCommand records the scratch values of the collected points and
// angles, plus each item's own transformer for m.
func (s *Selection[T]) transformCommand(m math.Mat4) *TransformCommand {
	snapshot := scene.NewSnapshot(s.ctx.Arena)
	snapshot.CaptureScratch(s.points, s.angles)

	var transformers []scene.Transformer
	for _, item := range s.items {
		if t := item.CreateTransformer(m); t != nil {
			transformers = append(transformers, t)
		}
	}
	return NewTransformCommand(s.State().String()+" Selection", snapshot, transformers, s.refresher())
}

// refresher recomputes the bounds of the current items whenever the
// command runs or is undone.
func (s *Selection[T]) refresher() func() {
	items := slices.Clone(s.items)
	return func() {
		for _, item := range items {
			item.RecalculateAABB()
		}
		s.UpdateAABB()
	}
}

func (s *Selection[T]) setMessage(msg string) {
	s.message = msg
	s.ctx.status(msg)
}

// touchPoints yields the collected points not yet modified this frame,
// stamping each one.
func (s *Selection[T]) touchPoints(fn func(p *scene.MutablePoint)) {
	frame := s.ctx.frame()
	for _, id := range s.points.Items() {
		p := s.ctx.Arena.Point(id)
		if p.Touch(frame) {
			fn(p)
		}
	}
}

func (s *Selection[T]) touchAngles(fn func(a *scene.MutableAngle)) {
	frame := s.ctx.frame()
	for _, id := range s.angles.Items() {
		a := s.ctx.Arena.Angle(id)
		if a.Touch(frame) {
			fn(a)
		}
	}
}

func (s *Selection[T]) corners() (*scene.MutablePoint, *scene.MutablePoint) {
	lo, hi := s.aabb.Corners()
	return s.ctx.Arena.Point(lo), s.ctx.Arena.Point(hi)
}
