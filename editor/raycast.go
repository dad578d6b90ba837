package editor

import (
	stdmath "math"

	"map-editor/math"
	"map-editor/scene"
)

// Channel tags what a ray is cast for.
type Channel int

const (
	ChannelSelection Channel = iota
	ChannelCollision
)

// MissDistance is the distance of every missed Hit.
const MissDistance = float32(stdmath.MaxFloat32)

// PickRay is a query ray. View is optional; point and UV picking use it to
// work in screen space. A two-sided ray ignores back-face culling.
type PickRay struct {
	Channel   Channel
	Origin    math.Vec3
	Direction math.Vec3
	View      Viewport
	TwoSided  bool
}

func NewPickRay(channel Channel, origin, direction math.Vec3, view Viewport) PickRay {
	return PickRay{Channel: channel, Origin: origin, Direction: direction, View: view, TwoSided: true}
}

// Hit is the result of a ray query.
type Hit struct {
	Dist      float32
	Point     math.Vec3
	Normal    math.Vec3
	HasNormal bool
	Obj       any
}

func MissHit() Hit {
	return Hit{Dist: MissDistance}
}

func (h Hit) Missed() bool {
	return h.Dist == MissDistance
}

func hitAt(ray PickRay, dist float32) Hit {
	return Hit{Dist: dist, Point: ray.Origin.Add(ray.Direction.Mul(dist))}
}

func (r PickRay) degenerate() bool {
	l := r.Direction.LengthSqr()
	return l == 0 || isNaN(l)
}

// Intersects reports whether the ray hits the box.
func Intersects(ray PickRay, box *scene.BoundingBox) bool {
	return !IntersectAABB(ray, box).Missed()
}

// IntersectAABB tests a bounding box. Empty boxes always miss.
func IntersectAABB(ray PickRay, box *scene.BoundingBox) Hit {
	if box == nil || box.IsEmpty() {
		return MissHit()
	}
	return IntersectBox(ray, box.Min(), box.Max())
}

// IntersectBox is the slab test against [lo, hi]. A ray starting inside the
// box hits at distance 0; a box entirely behind the origin misses.
func IntersectBox(ray PickRay, lo, hi math.Vec3) Hit {
	if ray.degenerate() {
		return MissHit()
	}
	inv := math.NewVec3(1/ray.Direction.X, 1/ray.Direction.Y, 1/ray.Direction.Z)

	near, far := lo, hi
	if inv.X < 0 {
		near.X, far.X = hi.X, lo.X
	}
	if inv.Y < 0 {
		near.Y, far.Y = hi.Y, lo.Y
	}
	if inv.Z < 0 {
		near.Z, far.Z = hi.Z, lo.Z
	}

	tmin := (near.X - ray.Origin.X) * inv.X
	tmax := (far.X - ray.Origin.X) * inv.X
	tymin := (near.Y - ray.Origin.Y) * inv.Y
	tymax := (far.Y - ray.Origin.Y) * inv.Y

	if tmin > tymax || tymin > tmax {
		return MissHit()
	}
	tmin = slabMax(tmin, tymin)
	tmax = slabMin(tmax, tymax)

	tzmin := (near.Z - ray.Origin.Z) * inv.Z
	tzmax := (far.Z - ray.Origin.Z) * inv.Z

	if tmin > tzmax || tzmin > tmax {
		return MissHit()
	}
	tmin = slabMax(tmin, tzmin)
	tmax = slabMin(tmax, tzmax)

	if isNaN(tmin) || isNaN(tmax) || tmax < 0 {
		return MissHit()
	}
	if tmin < 0 {
		tmin = 0
	}
	return hitAt(ray, tmin)
}

// slabMax and slabMin skip NaN produced by a zero direction component on a
// slab boundary.
func slabMax(a, b float32) float32 {
	if isNaN(a) || b > a {
		return b
	}
	return a
}

func slabMin(a, b float32) float32 {
	if isNaN(a) || b < a {
		return b
	}
	return a
}

func isNaN(f float32) bool {
	return f != f
}

// IntersectTriangle runs Möller–Trumbore against a mesh triangle. Triangles
// facing away are culled unless the ray or the triangle is two-sided.
func IntersectTriangle(ray PickRay, tri *scene.Triangle) Hit {
	v0, v1, v2 := tri.Positions()
	normal, hasNormal := tri.Normal()

	if !ray.TwoSided && !tri.DoubleSided && ray.Direction.Dot(normal) > 0 {
		return MissHit()
	}

	dist, ok := mollerTrumbore(ray, v0, v1, v2)
	if !ok {
		return MissHit()
	}
	h := hitAt(ray, dist)
	h.Normal, h.HasNormal = normal, hasNormal
	h.Obj = tri
	return h
}

// IntersectVertices runs Möller–Trumbore against raw positions. The hit has
// no normal when the triangle is degenerate.
func IntersectVertices(ray PickRay, v0, v1, v2 math.Vec3) Hit {
	dist, ok := mollerTrumbore(ray, v0, v1, v2)
	if !ok {
		return MissHit()
	}
	h := hitAt(ray, dist)

	n := v1.Sub(v0).Cross(v2.Sub(v0))
	if mag := n.Length(); mag >= 1e-6 {
		h.Normal, h.HasNormal = n.Mul(1/mag), true
	}
	return h
}

// mollerTrumbore returns the ray distance to the triangle.
func mollerTrumbore(ray PickRay, v0, v1, v2 math.Vec3) (float32, bool) {
	const epsilon = 1e-7

	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)
	if det > -epsilon && det < epsilon {
		return 0, false
	}
	invDet := 1.0 / det

	s := ray.Origin.Sub(v0)
	u := s.Dot(h) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := ray.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := edge2.Dot(q) * invDet
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectSphere returns the nearer non-negative root of the ray/sphere
// quadratic, using the cancellation-free form of the roots.
func IntersectSphere(ray PickRay, center math.Vec3, radius float32) Hit {
	rel := ray.Origin.Sub(center)

	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(rel)
	c := rel.Dot(rel) - radius*radius

	if a == 0 {
		return MissHit()
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return MissHit()
	}

	sq := math.Sqrt32(disc)
	var q float32
	if b < 0 {
		q = (-b + sq) / 2
	} else {
		q = (-b - sq) / 2
	}
	if q == 0 {
		// origin on the surface with a tangent direction
		if c == 0 {
			return hitAt(ray, 0)
		}
		return MissHit()
	}

	t0 := q / a
	t1 := c / q
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if t1 < 0 {
		return MissHit()
	}
	if t0 < 0 {
		return hitAt(ray, t1)
	}
	return hitAt(ray, t0)
}

// IntersectPoint picks a point marker. In an orthographic view the test is
// a screen-space circle and the hit distance is the coordinate along the
// view's fixed axis; a perspective view falls back to a sphere. Without a
// view the sphere radius is half of scale.
func IntersectPoint(ray PickRay, pos math.Vec3, scale float32) Hit {
	if ray.View == nil {
		return IntersectSphere(ray, pos, scale*0.5)
	}

	radius := scale * (0.22 + 2*ray.View.ScaleFactor(pos.X, pos.Y, pos.Z))
	rel := ray.Origin.Sub(pos)

	var planar, depth float32
	switch ray.View.Type() {
	case ViewFront:
		planar, depth = math.NewVec2(rel.X, rel.Y).Length(), pos.Z
	case ViewTop:
		planar, depth = math.NewVec2(rel.X, rel.Z).Length(), pos.Y
	case ViewSide:
		planar, depth = math.NewVec2(rel.Y, rel.Z).Length(), pos.X
	default:
		return IntersectSphere(ray, pos, radius)
	}

	if planar < radius {
		return Hit{Dist: depth, Point: pos}
	}
	return MissHit()
}

// IntersectUV picks a texture coordinate in a UV editor view, where the
// ray origin holds the cursor position in UV space.
func IntersectUV(ray PickRay, u, v float32) Hit {
	if ray.View == nil {
		return MissHit()
	}

	radius := 0.22 + 2*ray.View.ScaleFactor(u, v, 2)
	dist := math.NewVec2(ray.Origin.X, ray.Origin.Y).Distance(math.NewVec2(u, v))
	if dist < radius {
		return Hit{Dist: dist, Point: math.NewVec3(u, v, 0)}
	}
	return MissHit()
}

// RaycastMap returns the closest triangle or marker hit in the map.
// Object bounds are tested first to skip whole meshes.
func RaycastMap(ray PickRay, m *scene.Map, markerScale float32) Hit {
	closest := MissHit()

	for _, obj := range m.Objects {
		if !Intersects(ray, obj.Bounds()) {
			continue
		}
		for _, tri := range obj.Triangles {
			h := IntersectTriangle(ray, tri)
			if !h.Missed() && h.Dist < closest.Dist {
				h.Obj = obj
				closest = h
			}
		}
	}

	for _, mk := range m.Markers {
		h := IntersectPoint(ray, mk.Position(), markerScale)
		if !h.Missed() && h.Dist < closest.Dist {
			h.Obj = mk
			closest = h
		}
	}
	return closest
}
