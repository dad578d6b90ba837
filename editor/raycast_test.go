package editor

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"map-editor/math"
	"map-editor/scene"
)

func ray(origin, dir math.Vec3) PickRay {
	return NewPickRay(ChannelSelection, origin, dir, nil)
}

func TestIntersectAABB(t *testing.T) {
	arena := scene.NewArena()
	box := scene.NewBoundingBox(arena)

	r := ray(math.NewVec3(0, 0, -10), math.NewVec3(0, 0, 1))
	assert.True(t, IntersectAABB(r, box).Missed(), "empty box")
	assert.False(t, Intersects(r, nil))

	box.SetTo(math.NewVec3(-1, -1, -1), math.NewVec3(1, 1, 1))
	h := IntersectAABB(r, box)
	require.False(t, h.Missed())
	assert.InDelta(t, 9, h.Dist, 1e-6)
	assert.Equal(t, math.NewVec3(0, 0, -1), h.Point)

	inside := IntersectAABB(ray(math.Vec3Zero, math.NewVec3(1, 0, 0)), box)
	assert.Equal(t, float32(0), inside.Dist)

	behind := ray(math.NewVec3(0, 0, 10), math.NewVec3(0, 0, 1))
	assert.True(t, IntersectAABB(behind, box).Missed())

	beside := ray(math.NewVec3(3, 0, -10), math.NewVec3(0, 0, 1))
	assert.True(t, IntersectAABB(beside, box).Missed())
}

func TestIntersectBoxDegenerateRays(t *testing.T) {
	lo, hi := math.NewVec3(-1, -1, -1), math.NewVec3(1, 1, 1)

	assert.True(t, IntersectBox(ray(math.NewVec3(0, 0, -5), math.Vec3Zero), lo, hi).Missed())

	nan := float32(stdmath.NaN())
	assert.True(t, IntersectBox(ray(math.NewVec3(0, 0, -5), math.NewVec3(nan, 0, 1)), lo, hi).Missed())

	// a zero component on the slab boundary must not poison the test
	edge := IntersectBox(ray(math.NewVec3(1, 0, -5), math.NewVec3(0, 0, 1)), lo, hi)
	require.False(t, edge.Missed())
	assert.InDelta(t, 4, edge.Dist, 1e-6)
}

func TestIntersectVertices(t *testing.T) {
	v0, v1, v2 := math.NewVec3(0, 0, 0), math.NewVec3(10, 0, 0), math.NewVec3(0, 10, 0)

	h := IntersectVertices(ray(math.NewVec3(1, 1, 10), math.NewVec3(0, 0, -1)), v0, v1, v2)
	require.False(t, h.Missed())
	assert.InDelta(t, 10, h.Dist, 1e-5)
	require.True(t, h.HasNormal)
	assert.InDelta(t, 1, math.Abs(h.Normal.Z), 1e-6)

	miss := IntersectVertices(ray(math.NewVec3(9, 9, 10), math.NewVec3(0, 0, -1)), v0, v1, v2)
	assert.True(t, miss.Missed())

	parallel := IntersectVertices(ray(math.NewVec3(1, 1, 10), math.NewVec3(1, 0, 0)), v0, v1, v2)
	assert.True(t, parallel.Missed())

	away := IntersectVertices(ray(math.NewVec3(1, 1, 10), math.NewVec3(0, 0, 1)), v0, v1, v2)
	assert.True(t, away.Missed())
}

func TestIntersectTriangleCulling(t *testing.T) {
	arena := scene.NewArena()
	tri := scene.NewTriangle(arena,
		arena.NewPoint(math.NewVec3(0, 0, 0)),
		arena.NewPoint(math.NewVec3(10, 0, 0)),
		arena.NewPoint(math.NewVec3(0, 10, 0)))

	// the triangle faces +Z, so a ray from below sees its back
	r := ray(math.NewVec3(1, 1, -10), math.NewVec3(0, 0, 1))
	h := IntersectTriangle(r, tri)
	require.False(t, h.Missed())
	assert.Same(t, tri, h.Obj)

	r.TwoSided = false
	assert.True(t, IntersectTriangle(r, tri).Missed())

	tri.DoubleSided = true
	assert.False(t, IntersectTriangle(r, tri).Missed())
}

func TestIntersectSphere(t *testing.T) {
	h := IntersectSphere(ray(math.NewVec3(0, 0, -10), math.NewVec3(0, 0, 1)), math.Vec3Zero, 5)
	require.False(t, h.Missed())
	assert.InDelta(t, 5, h.Dist, 1e-5)

	inside := IntersectSphere(ray(math.Vec3Zero, math.NewVec3(0, 0, 1)), math.Vec3Zero, 5)
	assert.InDelta(t, 5, inside.Dist, 1e-5)

	assert.True(t, IntersectSphere(ray(math.NewVec3(0, 0, 10), math.NewVec3(0, 0, 1)), math.Vec3Zero, 5).Missed())
	assert.True(t, IntersectSphere(ray(math.NewVec3(6, 0, -10), math.NewVec3(0, 0, 1)), math.Vec3Zero, 5).Missed())
	assert.True(t, IntersectSphere(ray(math.Vec3Zero, math.Vec3Zero), math.Vec3Zero, 5).Missed())
}

func TestIntersectPointInOrthoView(t *testing.T) {
	view := NewOrthographicViewport(ViewTop, 800, 600)
	pos := math.NewVec3(10, 7, 10)

	// radius is 0.22 + 2*2 at zoom 1
	near := NewPickRay(ChannelSelection, math.NewVec3(12, 100, 10), math.NewVec3(0, -1, 0), view)
	h := IntersectPoint(near, pos, 1)
	require.False(t, h.Missed())
	assert.Equal(t, float32(7), h.Dist)

	far := NewPickRay(ChannelSelection, math.NewVec3(15, 100, 10), math.NewVec3(0, -1, 0), view)
	assert.True(t, IntersectPoint(far, pos, 1).Missed())

	// without a view the marker is a sphere of half the scale
	assert.False(t, IntersectPoint(ray(math.NewVec3(10, 7, 0), math.NewVec3(0, 0, 1)), pos, 2).Missed())
}

func TestIntersectUV(t *testing.T) {
	view := NewOrthographicViewport(ViewFront, 100, 100)
	view.Zoom = 0.01

	h := IntersectUV(NewPickRay(ChannelSelection, math.NewVec3(0.5, 0.5, 0), math.NewVec3(0, 0, -1), view), 0.52, 0.5)
	require.False(t, h.Missed())
	assert.InDelta(t, 0.02, h.Dist, 1e-6)

	assert.True(t, IntersectUV(NewPickRay(ChannelSelection, math.Vec3Zero, math.NewVec3(0, 0, -1), view), 1, 1).Missed())
	assert.True(t, IntersectUV(ray(math.Vec3Zero, math.NewVec3(0, 0, -1)), 0, 0).Missed())
}

func TestRaycastMapPicksClosest(t *testing.T) {
	m := scene.NewMap()
	near := scene.CreateBox(m.Arena, "near", math.NewVec3(-1, -1, 4), math.NewVec3(1, 1, 6))
	far := scene.CreateBox(m.Arena, "far", math.NewVec3(-1, -1, -6), math.NewVec3(1, 1, -4))
	m.AddObject(far)
	m.AddObject(near)
	mk := m.AddMarker("light", math.NewVec3(0, 0, 20))

	r := ray(math.NewVec3(0, 0, 10), math.NewVec3(0, 0, -1))
	h := RaycastMap(r, m, 1)
	require.False(t, h.Missed())
	assert.Same(t, near, h.Obj)
	assert.InDelta(t, 4, h.Dist, 1e-5)

	back := ray(math.NewVec3(0, 0, 10), math.NewVec3(0, 0, 1))
	h = RaycastMap(back, m, 1)
	require.False(t, h.Missed())
	assert.Same(t, mk, h.Obj)

	assert.True(t, RaycastMap(ray(math.NewVec3(50, 0, 10), math.NewVec3(0, 0, -1)), m, 1).Missed())
}

func BenchmarkIntersectBox(b *testing.B) {
	r := ray(math.NewVec3(0.3, 0.2, -10), math.NewVec3(0, 0, 1))
	lo, hi := math.NewVec3(-1, -1, -1), math.NewVec3(1, 1, 1)
	for i := 0; i < b.N; i++ {
		IntersectBox(r, lo, hi)
	}
}

func BenchmarkIntersectVertices(b *testing.B) {
	r := ray(math.NewVec3(1, 1, 10), math.NewVec3(0, 0, -1))
	v0, v1, v2 := math.NewVec3(0, 0, 0), math.NewVec3(10, 0, 0), math.NewVec3(0, 10, 0)
	for i := 0; i < b.N; i++ {
		IntersectVertices(r, v0, v1, v2)
	}
}
