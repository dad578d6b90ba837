package scene

import "map-editor/math"

type selectFlag struct {
	selected bool
}

func (f *selectFlag) IsSelected() bool     { return f.selected }
func (f *selectFlag) SetSelected(sel bool) { f.selected = sel }

// Marker is a standalone point entity such as a spawn or a light, with an
// optional facing angle.
type Marker struct {
	selectFlag
	arena    *Arena
	Name     string
	Pos      PointID
	angle    AngleID
	hasAngle bool
}

func NewMarker(arena *Arena, name string, pos math.Vec3) *Marker {
	return &Marker{arena: arena, Name: name, Pos: arena.NewPoint(pos)}
}

// AttachAngle gives the marker a facing angle about axis.
func (m *Marker) AttachAngle(axis math.Axis, clockwise bool, degrees float64) AngleID {
	m.angle = m.arena.NewAngle(axis, clockwise, degrees)
	m.hasAngle = true
	return m.angle
}

func (m *Marker) Angle() (AngleID, bool) { return m.angle, m.hasAngle }

func (m *Marker) Position() math.Vec3 { return m.arena.Pos(m.Pos) }

func (m *Marker) AddTo(box *BoundingBox)            { box.Encompass(m.Position()) }
func (m *Marker) RecalculateAABB()                  {}
func (m *Marker) Transforms() bool                  { return true }
func (m *Marker) IsTransforming() bool              { return m.arena.Point(m.Pos).IsTransforming() }
func (m *Marker) AllowRotation(axis math.Axis) bool { return true }
func (m *Marker) AddPoints(set *PointSet)           { set.Add(m.Pos) }

func (m *Marker) CreateTransformer(math.Mat4) Transformer { return nil }

func (m *Marker) StartTransformation() {
	m.arena.Point(m.Pos).StartTransform()
	if m.hasAngle {
		m.arena.Angle(m.angle).StartTransform()
	}
}

func (m *Marker) EndTransformation() {
	m.arena.Point(m.Pos).EndTransform()
	if m.hasAngle {
		m.arena.Angle(m.angle).EndTransform()
	}
}

func (m *Marker) AddAngles(set *AngleSet) {
	if m.hasAngle {
		set.Add(m.angle)
	}
}

// Vertex is a mesh corner. Several triangles may share one vertex handle.
type Vertex struct {
	selectFlag
	arena *Arena
	Pos   PointID
}

func NewVertex(arena *Arena, pos math.Vec3) *Vertex {
	return &Vertex{arena: arena, Pos: arena.NewPoint(pos)}
}

func (v *Vertex) Position() math.Vec3 { return v.arena.Pos(v.Pos) }

func (v *Vertex) AddTo(box *BoundingBox)                  { box.Encompass(v.Position()) }
func (v *Vertex) RecalculateAABB()                        {}
func (v *Vertex) Transforms() bool                        { return true }
func (v *Vertex) IsTransforming() bool                    { return v.arena.Point(v.Pos).IsTransforming() }
func (v *Vertex) StartTransformation()                    { v.arena.Point(v.Pos).StartTransform() }
func (v *Vertex) EndTransformation()                      { v.arena.Point(v.Pos).EndTransform() }
func (v *Vertex) AllowRotation(math.Axis) bool            { return true }
func (v *Vertex) AddPoints(set *PointSet)                 { set.Add(v.Pos) }
func (v *Vertex) AddAngles(*AngleSet)                     {}
func (v *Vertex) CreateTransformer(math.Mat4) Transformer { return nil }

// Triangle references three vertex positions by handle.
type Triangle struct {
	selectFlag
	arena       *Arena
	V           [3]PointID
	DoubleSided bool
}

func NewTriangle(arena *Arena, v0, v1, v2 PointID) *Triangle {
	return &Triangle{arena: arena, V: [3]PointID{v0, v1, v2}}
}

// Positions returns the visible corner positions.
func (t *Triangle) Positions() (math.Vec3, math.Vec3, math.Vec3) {
	return t.arena.Pos(t.V[0]), t.arena.Pos(t.V[1]), t.arena.Pos(t.V[2])
}

// Normal is the unit face normal; ok is false for a degenerate triangle.
func (t *Triangle) Normal() (n math.Vec3, ok bool) {
	v0, v1, v2 := t.Positions()
	n = v1.Sub(v0).Cross(v2.Sub(v0))
	if n.Length() < 1e-6 {
		return math.Vec3Zero, false
	}
	return n.Normalize(), true
}

func (t *Triangle) AddTo(box *BoundingBox) {
	for _, id := range t.V {
		box.Encompass(t.arena.Pos(id))
	}
}

func (t *Triangle) RecalculateAABB()                        {}
func (t *Triangle) Transforms() bool                        { return true }
func (t *Triangle) IsTransforming() bool                    { return t.arena.Point(t.V[0]).IsTransforming() }
func (t *Triangle) AllowRotation(math.Axis) bool            { return true }
func (t *Triangle) AddAngles(*AngleSet)                     {}
func (t *Triangle) CreateTransformer(math.Mat4) Transformer { return nil }

func (t *Triangle) StartTransformation() {
	for _, id := range t.V {
		t.arena.Point(id).StartTransform()
	}
}

func (t *Triangle) EndTransformation() {
	for _, id := range t.V {
		t.arena.Point(id).EndTransform()
	}
}

func (t *Triangle) AddPoints(set *PointSet) {
	for _, id := range t.V {
		set.Add(id)
	}
}
