package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"map-editor/math"
)

// At zoom 1 the ortho scale factor is 2: arms reach 80 units and are 8
// wide, plane squares span 4..24.
func frontView() *OrthographicViewport {
	return NewOrthographicViewport(ViewFront, 800, 600)
}

func TestPickGizmoHandles(t *testing.T) {
	f := newFixture()
	sel, _ := f.markers(math.Vec3Zero)
	view := frontView()

	tests := []struct {
		name   string
		px, py float32
		want   AxisConstraint
	}{
		{"x arm", 440, 300, NewAxisConstraint(true, false, false)},
		{"y arm", 400, 260, NewAxisConstraint(false, true, false)},
		{"xy plane", 410, 290, NewAxisConstraint(true, true, false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := sel.PickGizmo(view.ScreenRay(tt.px, tt.py), view)
			require.False(t, h.Missed())
			assert.Equal(t, tt.want, h.Obj)
			assert.Equal(t, tt.want, sel.Constraint())

			last, ok := sel.Gizmo().LastPick()
			assert.True(t, ok)
			assert.Equal(t, tt.want, last)
		})
	}
}

func TestPickGizmoMissResetsConstraint(t *testing.T) {
	f := newFixture()
	sel, _ := f.markers(math.Vec3Zero)
	view := frontView()

	sel.PickGizmo(view.ScreenRay(440, 300), view)
	require.Equal(t, NewAxisConstraint(true, false, false), sel.Constraint())

	h := sel.PickGizmo(view.ScreenRay(600, 100), view)
	assert.True(t, h.Missed())
	assert.Equal(t, Unconstrained, sel.Constraint())
	_, ok := sel.Gizmo().LastPick()
	assert.False(t, ok)
}

func TestGizmoSkipsHandlesAlongViewAxis(t *testing.T) {
	f := newFixture()
	sel, _ := f.markers(math.Vec3Zero)
	view := NewOrthographicViewport(ViewSide, 800, 600)

	// the side view looks along X, so the X arm cannot be grabbed even
	// where the ray passes through it
	h := sel.PickGizmo(view.ScreenRay(400, 300), view)
	assert.True(t, h.Missed())
}

func TestHiddenGizmoIsNotPicked(t *testing.T) {
	f := newFixture()
	f.ctx.Prefs.ShowGizmo = false
	sel, _ := f.markers(math.Vec3Zero)
	view := frontView()

	assert.True(t, sel.PickGizmo(view.ScreenRay(440, 300), view).Missed())
}

func TestGizmoHoverFades(t *testing.T) {
	f := newFixture()
	sel, _ := f.markers(math.Vec3Zero)
	view := frontView()
	over := view.ScreenRay(440, 300)
	away := view.ScreenRay(600, 100)
	g := sel.Gizmo()

	for i := 0; i < 10; i++ {
		sel.TestGizmo(over, view)
	}
	// the counter is clamped before every step
	assert.Equal(t, gizmoFadeMax+1, g.FrameCount())
	assert.True(t, g.Highlighted())
	assert.Equal(t, NewAxisConstraint(true, false, false), g.Highlight())

	for i := 0; i < 4; i++ {
		sel.TestGizmo(away, view)
	}
	assert.Equal(t, 2, g.FrameCount())
	assert.False(t, g.Highlighted())
	assert.Equal(t, AxisConstraint{}, g.Highlight())
}

func TestGizmoShowsActiveHandle(t *testing.T) {
	f := newFixture()
	sel, _ := f.markers(math.NewVec3(-1, 0, 0), math.NewVec3(1, 0, 0))
	view := frontView()
	away := view.ScreenRay(600, 100)

	sel.StartRotation(math.AxisZ, math.NewVec3(1, 0, 0))
	sel.TestGizmo(away, view)
	assert.Equal(t, NewAxisConstraint(false, false, true), sel.Gizmo().Highlight())
	assert.True(t, sel.Gizmo().Highlighted())
	sel.EndTransform()

	sel.PickGizmo(view.ScreenRay(400, 260), view)
	sel.StartTranslation(nil, true)
	sel.TestGizmo(away, view)
	assert.Equal(t, NewAxisConstraint(false, true, false), sel.Gizmo().Highlight())
	sel.EndTransform()
}

func TestGizmoAsSelectable(t *testing.T) {
	f := newFixture()
	sel, _ := f.markers(math.NewVec3(3, 3, 3))
	g := sel.Gizmo()

	assert.False(t, g.AllowRotation(math.AxisY))
	assert.Nil(t, g.CreateTransformer(math.Mat4Identity()))
	assert.False(t, g.IsTransforming())

	g.StartTransformation()
	g.SetTransformDisplacement(math.NewVec3(1, 0, 0))
	assert.Equal(t, math.NewVec3(4, 3, 3), g.Position())
	g.EndTransformation()
	assert.Equal(t, math.NewVec3(3, 3, 3), g.Position())
}
