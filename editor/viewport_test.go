package editor

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"

	"map-editor/math"
)

func TestViewTypeAxes(t *testing.T) {
	axis, ok := ViewTop.FixedAxis()
	assert.True(t, ok)
	assert.Equal(t, math.AxisY, axis)
	assert.Equal(t, math.NewVec3(1, 0, 1), ViewTop.ProjectionVector())

	_, ok = ViewPerspective.FixedAxis()
	assert.False(t, ok)
	assert.Equal(t, math.Vec3One, ViewPerspective.ProjectionVector())
	assert.False(t, ViewPerspective.IsOrthographic())
	assert.Equal(t, "Side", ViewSide.String())
}

func TestOrthographicScreenRay(t *testing.T) {
	view := NewOrthographicViewport(ViewTop, 800, 600)
	view.Center = math.NewVec3(100, 0, 100)
	view.Zoom = 0.5

	r := view.ScreenRay(500, 200)
	assert.Equal(t, math.NewVec3(0, -1, 0), r.Direction)
	assert.Equal(t, float32(150), r.Origin.X)
	assert.Equal(t, float32(50), r.Origin.Z)
	assert.Greater(t, r.Origin.Y, float32(1000))
	assert.Equal(t, view, r.View)

	assert.Equal(t, float32(400), view.ViewWorldSizeX())
	assert.Equal(t, float32(1), view.ScaleFactor(0, 0, 0))
}

func TestOrthographicScreenToWorld(t *testing.T) {
	front := NewOrthographicViewport(ViewFront, 800, 600)
	assert.Equal(t, math.NewVec3(10, -5, 0), front.ScreenToWorld(10, 5))

	top := NewOrthographicViewport(ViewTop, 800, 600)
	assert.Equal(t, math.NewVec3(10, 0, 5), top.ScreenToWorld(10, 5))

	side := NewOrthographicViewport(ViewSide, 800, 600)
	side.Zoom = 2
	assert.Equal(t, math.NewVec3(0, -10, -20), side.ScreenToWorld(10, 5))
}

func TestPerspectiveCenterRay(t *testing.T) {
	view := NewPerspectiveViewport(math.NewVec3(0, 0, 10), math.Vec3Zero, 800, 600)

	r := view.ScreenRay(400, 300)
	assert.Equal(t, view.Eye, r.Origin)
	assert.True(t, r.Direction.ApproxEqual(math.NewVec3(0, 0, -1), 1e-3), "direction %v", r.Direction)

	d := view.ScreenToWorld(8, 0)
	assert.Greater(t, d.X, float32(0))
	assert.InDelta(t, 0, d.Y, 1e-6)
	assert.InDelta(t, 0, d.Z, 1e-6)

	assert.Greater(t, view.ScaleFactor(0, 0, -100), view.ScaleFactor(0, 0, 0))
}

func TestPerspectiveOrbit(t *testing.T) {
	view := NewPerspectiveViewport(math.NewVec3(0, 0, 10), math.Vec3Zero, 800, 600)

	view.Orbit(0, 30)
	assert.True(t, view.Eye.ApproxEqual(math.NewVec3(0, 5, 8.660254), 1e-4), "eye %v", view.Eye)

	view.Orbit(90, -30)
	assert.True(t, view.Eye.ApproxEqual(math.NewVec3(10, 0, 0), 1e-4), "eye %v", view.Eye)

	// pitch stops short of the pole
	view.Orbit(0, 120)
	assert.InDelta(t, 10*stdmath.Sin(85*stdmath.Pi/180), view.Eye.Y, 1e-3)
	assert.InDelta(t, 10, view.Eye.Length(), 1e-4)

	// the center ray still points at the target
	r := view.ScreenRay(400, 300)
	want := view.Target.Sub(view.Eye).Normalize()
	assert.True(t, r.Direction.ApproxEqual(want, 1e-3), "direction %v", r.Direction)
}
