package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"map-editor/core"
	"map-editor/math"
	"map-editor/scene"
)

type fixture struct {
	m       *scene.Map
	frames  *core.FrameCounter
	history *History
	ctx     *Context
}

// newFixture starts with snapping off so drags move by the raw delta.
func newFixture() *fixture {
	m := scene.NewMap()
	frames := core.NewFrameCounter()
	history := NewHistory(50)
	ctx := NewContext(m.Arena, history, frames)
	ctx.Prefs.SnapTranslation = false
	return &fixture{m: m, frames: frames, history: history, ctx: ctx}
}

func (f *fixture) markers(positions ...math.Vec3) (*Selection[*scene.Marker], []*scene.Marker) {
	sel := NewSelection[*scene.Marker](f.ctx)
	var out []*scene.Marker
	for i, p := range positions {
		mk := f.m.AddMarker(string(rune('a'+i)), p)
		sel.AddAndSelect(mk)
		out = append(out, mk)
	}
	return sel, out
}

// translate runs a whole immediate drag of one tick.
func (f *fixture) translate(sel *Selection[*scene.Marker], d math.Vec3) {
	sel.StartTranslation(nil, true)
	f.frames.Advance()
	sel.UpdateTranslation(nil, d, 0, 0, nil)
	sel.EndTransform()
}

func TestZeroTranslationLeavesPointsUntouched(t *testing.T) {
	f := newFixture()
	f.ctx.Prefs.SnapTranslation = true
	start := math.NewVec3(1.1, 2.7, -3.3)
	sel, mks := f.markers(start)

	sel.StartTranslation(nil, false)
	f.frames.Advance()
	sel.UpdateTranslation(nil, math.Vec3Zero, 0, 0, nil)
	sel.EndTransform()

	assert.Equal(t, start, mks[0].Position())
	assert.Equal(t, 0, f.history.Len())
	assert.Equal(t, StateIdle, sel.State())
}

func TestTranslationRespectsConstraint(t *testing.T) {
	f := newFixture()
	sel, mks := f.markers(math.NewVec3(1, 2, 3))
	sel.SetConstraint(NewAxisConstraint(true, false, false))

	sel.StartTranslation(nil, true)
	f.frames.Advance()
	sel.UpdateTranslation(nil, math.NewVec3(5, 6, 7), 0, 0, nil)
	assert.Equal(t, math.NewVec3(6, 2, 3), mks[0].Position())
	assert.Equal(t, "Translate: 5, 0, 0", sel.Message())

	sel.EndTransform()
	assert.Equal(t, math.NewVec3(6, 2, 3), mks[0].Position())
	assert.Equal(t, 1, f.history.Len())
	assert.Equal(t, "Translate Selection", f.history.Peek().Description())
	assert.Equal(t, Unconstrained, sel.Constraint())
	assert.Equal(t, "", sel.Message())
}

func TestTranslationMovesGizmoAndBounds(t *testing.T) {
	f := newFixture()
	sel, _ := f.markers(math.NewVec3(0, 0, 0), math.NewVec3(4, 4, 4))
	require.NotNil(t, sel.Gizmo())
	assert.Equal(t, math.NewVec3(2, 2, 2), sel.Gizmo().Position())

	sel.StartTranslation(nil, true)
	f.frames.Advance()
	sel.UpdateTranslation(nil, math.NewVec3(10, 0, 0), 0, 0, nil)
	assert.Equal(t, math.NewVec3(12, 2, 2), sel.Gizmo().Position())
	assert.Equal(t, math.NewVec3(10, 0, 0), sel.AABB().Min())

	sel.EndTransform()
	assert.Equal(t, math.NewVec3(12, 2, 2), sel.Center())
	assert.Equal(t, math.NewVec3(12, 2, 2), sel.Gizmo().Position())
}

func TestTranslationWaitsBeforeSnapping(t *testing.T) {
	f := newFixture()
	f.ctx.Prefs.SnapTranslation = true
	sel, mks := f.markers(math.NewVec3(7, 0, 0))

	sel.StartTranslation(nil, false)
	for i := 0; i < snapForceFrames; i++ {
		f.frames.Advance()
		sel.UpdateTranslation(nil, math.NewVec3(0.1, 0, 0), 0, 0, nil)
	}
	assert.Equal(t, math.NewVec3(7, 0, 0), mks[0].Position())

	f.frames.Advance()
	sel.UpdateTranslation(nil, math.NewVec3(0.1, 0, 0), 0, 0, nil)
	assert.InDelta(t, 10, mks[0].Position().X, 1e-5)

	sel.EndTransform()
	assert.InDelta(t, 10, mks[0].Position().X, 1e-5)
}

func TestTranslationSnapsAfterCursorTravel(t *testing.T) {
	f := newFixture()
	sel, mks := f.markers(math.Vec3Zero)

	sel.StartTranslation(nil, false)
	for i := 0; i < snapDelayFrames; i++ {
		f.frames.Advance()
		sel.UpdateTranslation(nil, math.NewVec3(1, 0, 0), 3, 4, nil)
	}
	assert.Equal(t, math.Vec3Zero, mks[0].Position())

	f.frames.Advance()
	sel.UpdateTranslation(nil, math.NewVec3(1, 0, 0), 3, 4, nil)
	assert.Equal(t, math.NewVec3(11, 0, 0), mks[0].Position())
	sel.EndTransform()
}

func TestGridSnapUsesLeadingFace(t *testing.T) {
	lo, hi := math.NewVec3(7, 7, 7), math.NewVec3(9, 9, 9)

	got := snapToGrid(lo, hi, 10, math.NewVec3(-3, -3, -3), math.NewVec3(-3, -3, -3))
	assert.Equal(t, math.NewVec3(-7, -7, -7), got)

	// a still axis snaps the min face
	got = snapToGrid(lo, hi, 10, math.NewVec3(3, 0, -1), math.NewVec3(3, 0, -1))
	assert.Equal(t, math.NewVec3(1, 3, 3), got)

	acc := math.NewVec3(1.5, 2.5, 3.5)
	assert.Equal(t, acc, snapToGrid(lo, hi, 0, acc, acc))
}

func TestGridSnapThroughSelection(t *testing.T) {
	f := newFixture()
	f.ctx.Prefs.SnapTranslation = true
	sel, mks := f.markers(math.NewVec3(7, 0, 0))

	sel.StartTranslation(nil, true)
	f.frames.Advance()
	sel.UpdateTranslation(nil, math.NewVec3(-3, 0, 0), 0, 0, nil)
	sel.EndTransform()

	assert.Equal(t, math.NewVec3(0, 0, 0), mks[0].Position())
}

func TestVertexSnap(t *testing.T) {
	view := NewOrthographicViewport(ViewFront, 800, 600)
	candidates := []math.Vec3{math.NewVec3(100, 100, 0), math.NewVec3(10, 1, 99)}

	got := snapToVertices(view, candidates, math.Vec3Zero, math.NewVec3(9, 0, 5))
	// z is the fixed axis of the front view and keeps the raw delta
	assert.Equal(t, math.NewVec3(10, 1, 5), got)

	far := snapToVertices(view, candidates, math.Vec3Zero, math.NewVec3(50, -60, 0))
	assert.Equal(t, math.NewVec3(50, -60, 0), far)
}

func TestVertexSnapThroughSelection(t *testing.T) {
	f := newFixture()
	f.ctx.Prefs.SnapVertices = true
	sel, mks := f.markers(math.Vec3Zero)
	view := NewOrthographicViewport(ViewTop, 800, 600)
	ref := math.Vec3Zero

	sel.StartTranslation(&ref, true)
	f.frames.Advance()
	sel.UpdateTranslation(view, math.NewVec3(19, 3, 31), 0, 0, []math.Vec3{math.NewVec3(20, 50, 30)})
	sel.EndTransform()

	assert.Equal(t, math.NewVec3(20, 3, 30), mks[0].Position())
}

func TestSharedPointMovesOnce(t *testing.T) {
	f := newFixture()
	a := f.m.Arena
	shared := a.NewPoint(math.NewVec3(0, 0, 0))
	t1 := scene.NewTriangle(a, shared, a.NewPoint(math.NewVec3(1, 0, 0)), a.NewPoint(math.NewVec3(0, 1, 0)))
	t2 := scene.NewTriangle(a, shared, a.NewPoint(math.NewVec3(-1, 0, 0)), a.NewPoint(math.NewVec3(0, -1, 0)))

	sel := NewSelection[*scene.Triangle](f.ctx)
	sel.AddAllAndSelect([]*scene.Triangle{t1, t2})

	sel.StartTranslation(nil, true)
	frame := f.frames.Advance()
	sel.UpdateTranslation(nil, math.NewVec3(2, 0, 0), 0, 0, nil)
	assert.Equal(t, int64(frame), a.Point(shared).LastModified())
	sel.EndTransform()

	assert.Equal(t, math.NewVec3(2, 0, 0), a.Pos(shared))
	batch, ok := f.history.Peek().(*Batch)
	require.True(t, ok)
	require.Equal(t, 1, batch.Len())
	cmd, ok := batch.Commands()[0].(*TransformCommand)
	require.True(t, ok)
	assert.Len(t, cmd.Snapshot().Points, 5)
}

func TestUpdateWithoutAdvanceSkipsTouchedPoints(t *testing.T) {
	f := newFixture()
	sel, mks := f.markers(math.Vec3Zero)

	sel.StartTranslation(nil, true)
	f.frames.Advance()
	sel.UpdateTranslation(nil, math.NewVec3(1, 0, 0), 0, 0, nil)
	sel.UpdateTranslation(nil, math.NewVec3(1, 0, 0), 0, 0, nil)
	assert.Equal(t, math.NewVec3(1, 0, 0), mks[0].Position())
	sel.EndTransform()
}

func TestRotationDrag(t *testing.T) {
	f := newFixture()
	sel, mks := f.markers(math.NewVec3(0, 0, -1), math.NewVec3(0, 0, 1))
	facing := mks[0].AttachAngle(math.AxisY, false, 0)

	sel.StartRotation(math.AxisY, math.NewVec3(0, 5, -1))
	f.frames.Advance()
	sel.UpdateRotation(nil, math.NewVec3(1, -2, 0))

	// a quarter turn about Y carries -Z onto +X
	assert.InDelta(t, 90, sel.RotationAngle(), 1e-9)
	assert.Equal(t, math.AxisY, sel.RotationAxis())
	assert.Equal(t, "Rotate Y: 90 degrees", sel.Message())
	sel.EndTransform()

	assert.True(t, mks[0].Position().ApproxEqual(math.NewVec3(1, 0, 0), 1e-6))
	assert.True(t, mks[1].Position().ApproxEqual(math.NewVec3(-1, 0, 0), 1e-6))
	assert.InDelta(t, 90, f.m.Arena.Angle(facing).Get(), 1e-9)
	assert.Equal(t, 1, f.history.Len())
}

func TestRotationWrapsAcrossBranchCut(t *testing.T) {
	f := newFixture()
	sel, mks := f.markers(math.NewVec3(0, 0, -1), math.NewVec3(0, 0, 1))

	// the start sits at -90 and the end at 180, a raw sweep of 270
	sel.StartRotation(math.AxisY, math.NewVec3(0, 0, -1))
	f.frames.Advance()
	sel.UpdateRotation(nil, math.NewVec3(-1, 0, 0))

	assert.InDelta(t, -90, sel.RotationAngle(), 1e-9)
	assert.Equal(t, "Rotate Y: -90 degrees", sel.Message())
	sel.EndTransform()

	assert.True(t, mks[0].Position().ApproxEqual(math.NewVec3(-1, 0, 0), 1e-6))
	assert.True(t, mks[1].Position().ApproxEqual(math.NewVec3(1, 0, 0), 1e-6))
}

func TestRotationSnapsToIncrement(t *testing.T) {
	f := newFixture()
	f.ctx.Prefs.SnapRotation = true
	f.ctx.Prefs.RotationIncrement = 15
	sel, _ := f.markers(math.NewVec3(-1, 0, 0), math.NewVec3(1, 0, 0))

	sel.StartRotation(math.AxisZ, math.NewVec3(1, 0, 0))
	f.frames.Advance()
	// 50 degrees rounds to 45
	sel.UpdateRotation(nil, math.PlaneDirection(math.AxisZ, 50))
	assert.InDelta(t, 45, sel.RotationAngle(), 1e-9)
	sel.EndTransform()
}

func TestRotationSkipsLockedObjects(t *testing.T) {
	f := newFixture()
	box := scene.CreateBox(f.m.Arena, "door", math.NewVec3(0, 0, 0), math.NewVec3(2, 2, 2))
	box.SetRotationAxes(false, true, false)
	f.m.AddObject(box)

	sel := NewSelection[*scene.MapObject](f.ctx)
	sel.AddAndSelect(box)
	sel.StartRotation(math.AxisX, math.NewVec3(1, 5, 1))

	assert.Equal(t, StateIdle, sel.State())
	assert.Equal(t, 0, f.history.Len())
}

func TestUniformScaleAntiParallel(t *testing.T) {
	f := newFixture()
	sel, mks := f.markers(math.NewVec3(-10, 0, 0), math.NewVec3(10, 0, 0))

	click := math.NewVec3(5, 0, 0)
	sel.StartScale(&click, true)
	f.frames.Advance()
	sel.UpdateScale(nil, math.NewVec3(-10, 0, 0))
	sel.EndTransform()

	assert.Equal(t, math.NewVec3(10, 0, 0), mks[0].Position())
	assert.Equal(t, math.NewVec3(-10, 0, 0), mks[1].Position())
	assert.Equal(t, 1, f.history.Len())
}

func TestAxisScale(t *testing.T) {
	f := newFixture()
	sel, mks := f.markers(math.NewVec3(0, 0, 0), math.NewVec3(10, 10, 10))

	click := math.NewVec3(10, 10, 10)
	sel.StartScale(&click, false)
	f.frames.Advance()
	sel.UpdateScale(nil, math.NewVec3(5, 0, 0))
	assert.Equal(t, "Scale: 2, 1, 1", sel.Message())
	sel.EndTransform()

	assert.Equal(t, math.NewVec3(-5, 0, 0), mks[0].Position())
	assert.Equal(t, math.NewVec3(15, 10, 10), mks[1].Position())
}

func TestScaleOfFlatSelectionKeepsFlatAxis(t *testing.T) {
	f := newFixture()
	sel, mks := f.markers(math.NewVec3(0, 0, 0), math.NewVec3(10, 0, 10))

	click := math.NewVec3(10, 0, 10)
	sel.StartScale(&click, false)
	f.frames.Advance()
	sel.UpdateScale(nil, math.NewVec3(5, 5, 0))
	sel.EndTransform()

	assert.Equal(t, float32(0), mks[0].Position().Y)
	assert.Equal(t, float32(0), mks[1].Position().Y)
}

func TestSnapScale(t *testing.T) {
	size := math.NewVec3(10, 10, 10)
	all := [3]bool{true, true, true}

	got := snapScale(math.NewVec3(1.23, 0.46, 2), size, all, false, 10)
	assert.InDelta(t, 1.2, got.X, 1e-6)
	assert.InDelta(t, 0.5, got.Y, 1e-6)
	assert.InDelta(t, 2, got.Z, 1e-6)

	got = snapScale(math.NewVec3(1.6, 1.4, 3), size, [3]bool{true, true, false}, true, 10)
	assert.Equal(t, math.NewVec3(2, 1, 1), got)

	got = snapScale(math.NewVec3(1.6, 1.4, 3), size, all, true, 0)
	assert.Equal(t, math.NewVec3(1.6, 1.4, 3), got)
}

func TestStartWhileTransformingIsRejected(t *testing.T) {
	f := newFixture()
	sel, mks := f.markers(math.Vec3Zero)

	sel.StartTranslation(nil, true)
	sel.StartRotation(math.AxisY, math.NewVec3(1, 0, 0))
	assert.Equal(t, StateTranslate, sel.State())

	sel.AddAndSelect(f.m.AddMarker("late", math.NewVec3(5, 5, 5)))
	assert.Equal(t, 1, sel.Len())
	sel.Clear()
	assert.Equal(t, 1, sel.Len())

	sel.NudgeAlong(math.NewVec3(1, 0, 0))
	assert.Equal(t, math.Vec3Zero, mks[0].Position())

	sel.EndTransform()
	assert.Equal(t, StateIdle, sel.State())
}

func TestEmptySelectionCancelsItself(t *testing.T) {
	f := newFixture()
	sel := NewSelection[*scene.Marker](f.ctx)

	sel.StartTranslation(nil, true)
	assert.Equal(t, StateIdle, sel.State())
	sel.StartRotation(math.AxisY, math.Vec3Zero)
	assert.Equal(t, StateIdle, sel.State())
	sel.StartScale(nil, false)
	assert.Equal(t, StateIdle, sel.State())
	assert.Equal(t, 0, f.history.Len())

	// updates and ends while idle do nothing
	sel.UpdateTranslation(nil, math.NewVec3(1, 1, 1), 0, 0, nil)
	sel.EndTransform()
	assert.Nil(t, sel.Gizmo())
}

func TestUndoRedoTranslation(t *testing.T) {
	f := newFixture()
	sel, mks := f.markers(math.NewVec3(1, 1, 1))

	f.translate(sel, math.NewVec3(4, 0, 0))
	require.Equal(t, math.NewVec3(5, 1, 1), mks[0].Position())

	require.True(t, f.history.Undo())
	assert.Equal(t, math.NewVec3(1, 1, 1), mks[0].Position())
	assert.Equal(t, math.NewVec3(1, 1, 1), sel.Center())
	assert.Equal(t, math.NewVec3(1, 1, 1), sel.Gizmo().Position())

	require.True(t, f.history.Redo())
	assert.Equal(t, math.NewVec3(5, 1, 1), mks[0].Position())
	assert.Equal(t, math.NewVec3(5, 1, 1), sel.Center())
}

func TestBatchCommitsWithGesture(t *testing.T) {
	f := newFixture()
	sel, _ := f.markers(math.Vec3Zero)
	rec := &recordingCommand{desc: "extra"}

	sel.StartTranslation(nil, true)
	sel.Batch().AddAndExecute(rec)
	f.frames.Advance()
	sel.UpdateTranslation(nil, math.NewVec3(1, 0, 0), 0, 0, nil)
	sel.EndTransform()

	assert.Equal(t, 1, rec.executed)
	assert.Equal(t, 0, rec.undone)
	assert.Equal(t, 1, f.history.Len())

	f.history.Undo()
	assert.Equal(t, 1, rec.undone)
}

func TestBatchRollsBackWithoutChange(t *testing.T) {
	f := newFixture()
	sel, _ := f.markers(math.Vec3Zero)
	rec := &recordingCommand{desc: "extra"}

	sel.StartTranslation(nil, true)
	sel.Batch().AddAndExecute(rec)
	sel.EndTransform()

	assert.Equal(t, 1, rec.executed)
	assert.Equal(t, 1, rec.undone)
	assert.Equal(t, 0, f.history.Len())
}

func TestNudgeToGrid(t *testing.T) {
	f := newFixture()
	f.ctx.Prefs.SnapTranslation = true
	sel, mks := f.markers(math.NewVec3(7, 0, 0))

	sel.NudgeAlong(math.NewVec3(1, 0, 0))
	assert.Equal(t, math.NewVec3(10, 0, 0), mks[0].Position())

	sel.NudgeAlong(math.NewVec3(1, 0, 0))
	assert.Equal(t, math.NewVec3(20, 0, 0), mks[0].Position())

	sel.NudgeAlong(math.NewVec3(-1, 0, 0))
	assert.Equal(t, math.NewVec3(10, 0, 0), mks[0].Position())
	assert.Equal(t, 3, f.history.Len())
}

func TestNudgeWithoutGrid(t *testing.T) {
	f := newFixture()
	sel, mks := f.markers(math.NewVec3(7, 0, 0))

	sel.NudgeAlong(math.NewVec3(0, 0, -4))
	assert.Equal(t, math.NewVec3(7, 0, -1), mks[0].Position())
	assert.Equal(t, StateIdle, sel.State())
}

func TestMatrixTransformation(t *testing.T) {
	f := newFixture()
	box := scene.CreateBox(f.m.Arena, "crate", math.NewVec3(0, 0, 0), math.NewVec3(2, 2, 2))
	f.m.AddObject(box)
	sel := NewSelection[*scene.MapObject](f.ctx)
	sel.AddAndSelect(box)

	m := math.Mat4Translation(math.NewVec3(10, 0, 0))
	sel.ApplyMatrixTransformation(m)

	assert.Equal(t, StateIdle, sel.State())
	assert.Equal(t, math.NewVec3(10, 0, 0), box.Bounds().Min())
	assert.Equal(t, math.NewVec3(12, 2, 2), sel.AABB().Max())
	assert.True(t, box.Matrix.ApproxEqual(m, 1e-6))
	assert.Equal(t, "Substitute Selection", f.history.Peek().Description())

	f.history.Undo()
	assert.Equal(t, math.NewVec3(0, 0, 0), box.Bounds().Min())
	assert.True(t, box.Matrix.IsIdentity(1e-6))
}

func TestDirectTransformation(t *testing.T) {
	f := newFixture()
	sel, mks := f.markers(math.NewVec3(1, 2, 3))

	sel.StartDirectTransformation()
	assert.Equal(t, StateSubstitute, sel.State())
	for _, id := range sel.DirectPoints() {
		p := f.m.Arena.Point(id)
		p.SetTemp(p.Committed().Add(math.NewVec3(0, 0, 1)))
	}

	// gesture ends do not close a direct transformation
	sel.EndTransform()
	assert.Equal(t, StateSubstitute, sel.State())

	sel.EndDirectTransformation()
	assert.Equal(t, math.NewVec3(1, 2, 4), mks[0].Position())
	assert.Equal(t, "Direct Transform Selection", f.history.Peek().Description())
}

func TestDirectTransformationWithoutChange(t *testing.T) {
	f := newFixture()
	sel, _ := f.markers(math.NewVec3(1, 2, 3))

	sel.StartDirectTransformation()
	sel.EndDirectTransformation()

	assert.Equal(t, StateIdle, sel.State())
	assert.Equal(t, 0, f.history.Len())
	assert.Nil(t, sel.DirectPoints())
}

func TestSnapSelectionToGrid(t *testing.T) {
	f := newFixture()
	sel, mks := f.markers(math.NewVec3(6.2, 14, -26))

	sel.SnapToGrid()
	assert.Equal(t, math.NewVec3(10, 10, -30), mks[0].Position())
	assert.Equal(t, 1, f.history.Len())
}

func TestMembership(t *testing.T) {
	f := newFixture()
	sel, mks := f.markers(math.NewVec3(0, 0, 0), math.NewVec3(2, 2, 2))
	assert.True(t, mks[0].IsSelected())
	assert.Equal(t, math.NewVec3(1, 1, 1), sel.Center())

	last, ok := sel.MostRecent()
	require.True(t, ok)
	assert.Equal(t, mks[1], last)

	sel.AddAndSelect(mks[0])
	assert.Equal(t, 2, sel.Len())

	sel.RemoveAndDeselect(mks[1])
	assert.False(t, mks[1].IsSelected())
	assert.Equal(t, math.Vec3Zero, sel.Center())

	hidden := f.m.AddMarker("hidden", math.NewVec3(4, 0, 0))
	sel.AddWithoutSelecting(hidden)
	assert.False(t, hidden.IsSelected())
	assert.True(t, sel.Contains(hidden))

	sel.RemoveAllAndDeselect(sel.Items())
	assert.True(t, sel.IsEmpty())
	assert.Nil(t, sel.Gizmo())
}

func TestMutationGuard(t *testing.T) {
	f := newFixture()
	sel, _ := f.markers(math.Vec3Zero)
	f.ctx.MutationGuard = func() bool { return false }

	assert.Panics(t, func() { sel.StartTranslation(nil, true) })
}

func TestStatusCallback(t *testing.T) {
	f := newFixture()
	var got []string
	f.ctx.OnStatus = func(s string) { got = append(got, s) }
	sel, _ := f.markers(math.Vec3Zero)

	f.translate(sel, math.NewVec3(3, 0, 0))
	assert.Equal(t, []string{"Translate: 3, 0, 0"}, got)
}
