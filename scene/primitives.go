package scene

import "map-editor/math"

// CreateBox builds an axis-aligned box object with twelve outward-facing
// triangles. The eight corners are shared between faces.
func CreateBox(arena *Arena, name string, lo, hi math.Vec3) *MapObject {
	lo, hi = lo.Min(hi), lo.Max(hi)
	positions := []math.Vec3{
		{X: lo.X, Y: lo.Y, Z: lo.Z}, // 0
		{X: hi.X, Y: lo.Y, Z: lo.Z}, // 1
		{X: hi.X, Y: hi.Y, Z: lo.Z}, // 2
		{X: lo.X, Y: hi.Y, Z: lo.Z}, // 3
		{X: lo.X, Y: lo.Y, Z: hi.Z}, // 4
		{X: hi.X, Y: lo.Y, Z: hi.Z}, // 5
		{X: hi.X, Y: hi.Y, Z: hi.Z}, // 6
		{X: lo.X, Y: hi.Y, Z: hi.Z}, // 7
	}
	indices := []uint32{
		4, 5, 6, 6, 7, 4, // front (+Z)
		1, 0, 3, 3, 2, 1, // back (-Z)
		3, 7, 6, 6, 2, 3, // top (+Y)
		0, 1, 5, 5, 4, 0, // bottom (-Y)
		1, 2, 6, 6, 5, 1, // right (+X)
		0, 4, 7, 7, 3, 0, // left (-X)
	}
	return CreateObjectFromData(arena, name, positions, indices)
}

// CreatePlane builds a horizontal quad facing +Y, centered on center.
func CreatePlane(arena *Arena, name string, center math.Vec3, width, depth float32) *MapObject {
	hw, hd := width/2, depth/2
	positions := []math.Vec3{
		{X: center.X - hw, Y: center.Y, Z: center.Z + hd},
		{X: center.X + hw, Y: center.Y, Z: center.Z + hd},
		{X: center.X + hw, Y: center.Y, Z: center.Z - hd},
		{X: center.X - hw, Y: center.Y, Z: center.Z - hd},
	}
	o := CreateObjectFromData(arena, name, positions, []uint32{0, 1, 2, 2, 3, 0})
	for _, t := range o.Triangles {
		t.DoubleSided = true
	}
	return o
}

// CreatePyramid builds a square pyramid standing on base.
func CreatePyramid(arena *Arena, name string, base math.Vec3, width, height float32) *MapObject {
	h := width / 2
	positions := []math.Vec3{
		{X: base.X - h, Y: base.Y, Z: base.Z + h},
		{X: base.X + h, Y: base.Y, Z: base.Z + h},
		{X: base.X + h, Y: base.Y, Z: base.Z - h},
		{X: base.X - h, Y: base.Y, Z: base.Z - h},
		{X: base.X, Y: base.Y + height, Z: base.Z},
	}
	indices := []uint32{
		0, 1, 4,
		1, 2, 4,
		2, 3, 4,
		3, 0, 4,
		0, 3, 2, 2, 1, 0,
	}
	return CreateObjectFromData(arena, name, positions, indices)
}
