package scene

import (
	"github.com/google/uuid"

	"map-editor/math"
)

// MapObject is a triangle mesh placed in the map. Its vertices live in the
// arena in world space; Matrix accumulates every committed transform so
// that attached data (lights, collision hulls) can follow the object.
type MapObject struct {
	selectFlag
	arena *Arena

	ID        uuid.UUID
	Name      string
	Origin    PointID
	Vertices  []*Vertex
	Triangles []*Triangle
	Matrix    math.Mat4

	angle        AngleID
	hasAngle     bool
	rotationAxes [3]bool
	bounds       *BoundingBox
}

// NewMapObject creates an object with no geometry at origin.
func NewMapObject(arena *Arena, name string, origin math.Vec3) *MapObject {
	o := &MapObject{
		arena:        arena,
		ID:           uuid.New(),
		Name:         name,
		Origin:       arena.NewPoint(origin),
		Matrix:       math.Mat4Identity(),
		rotationAxes: [3]bool{true, true, true},
		bounds:       NewBoundingBox(arena),
	}
	o.RecalculateAABB()
	return o
}

// CreateObjectFromData builds an object from world-space positions and a
// triangle index list. Indices that do not form whole triangles are dropped.
func CreateObjectFromData(arena *Arena, name string, positions []math.Vec3, indices []uint32) *MapObject {
	center := math.Vec3Zero
	for _, p := range positions {
		center = center.Add(p)
	}
	if len(positions) > 0 {
		center = center.Mul(1 / float32(len(positions)))
	}

	o := NewMapObject(arena, name, center)
	for _, p := range positions {
		o.Vertices = append(o.Vertices, NewVertex(arena, p))
	}
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if int(a) >= len(positions) || int(b) >= len(positions) || int(c) >= len(positions) {
			continue
		}
		o.Triangles = append(o.Triangles, NewTriangle(arena, o.Vertices[a].Pos, o.Vertices[b].Pos, o.Vertices[c].Pos))
	}
	o.RecalculateAABB()
	return o
}

// SetRotationAxes limits which single-axis rotations move the geometry.
// A door that only turns about Y keeps its footprint for X and Z drags.
func (o *MapObject) SetRotationAxes(x, y, z bool) {
	o.rotationAxes = [3]bool{x, y, z}
}

// AttachAngle gives the object a facing angle about axis.
func (o *MapObject) AttachAngle(axis math.Axis, clockwise bool, degrees float64) AngleID {
	o.angle = o.arena.NewAngle(axis, clockwise, degrees)
	o.hasAngle = true
	return o.angle
}

func (o *MapObject) Angle() (AngleID, bool) { return o.angle, o.hasAngle }

func (o *MapObject) Position() math.Vec3 { return o.arena.Pos(o.Origin) }

// Bounds is the object's own box, refreshed by RecalculateAABB.
func (o *MapObject) Bounds() *BoundingBox { return o.bounds }

func (o *MapObject) AddTo(box *BoundingBox) {
	box.EncompassBox(o.bounds)
}

func (o *MapObject) RecalculateAABB() {
	o.bounds.Clear()
	o.bounds.Encompass(o.Position())
	for _, v := range o.Vertices {
		o.bounds.Encompass(v.Position())
	}
}

func (o *MapObject) Transforms() bool { return true }

func (o *MapObject) IsTransforming() bool {
	return o.arena.Point(o.Origin).IsTransforming()
}

func (o *MapObject) StartTransformation() {
	o.arena.Point(o.Origin).StartTransform()
	for _, v := range o.Vertices {
		v.StartTransformation()
	}
	if o.hasAngle {
		o.arena.Angle(o.angle).StartTransform()
	}
}

func (o *MapObject) EndTransformation() {
	o.arena.Point(o.Origin).EndTransform()
	for _, v := range o.Vertices {
		v.EndTransformation()
	}
	if o.hasAngle {
		o.arena.Angle(o.angle).EndTransform()
	}
}

func (o *MapObject) AllowRotation(axis math.Axis) bool {
	return o.rotationAxes[axis.Index()]
}

func (o *MapObject) AddPoints(set *PointSet) {
	set.Add(o.Origin)
	for _, v := range o.Vertices {
		set.Add(v.Pos)
	}
}

func (o *MapObject) AddAngles(set *AngleSet) {
	if o.hasAngle {
		set.Add(o.angle)
	}
}

// CreateTransformer folds m into the accumulated matrix.
func (o *MapObject) CreateTransformer(m math.Mat4) Transformer {
	return &matrixTransformer{obj: o, old: o.Matrix, new: o.Matrix.Mul(m)}
}

// Release returns every arena slot owned by the object.
func (o *MapObject) Release() {
	for _, v := range o.Vertices {
		_ = o.arena.ReleasePoint(v.Pos)
	}
	if o.hasAngle {
		_ = o.arena.ReleaseAngle(o.angle)
	}
	_ = o.arena.ReleasePoint(o.Origin)
	o.bounds.Release()
}

type matrixTransformer struct {
	obj      *MapObject
	old, new math.Mat4
}

func (t *matrixTransformer) Apply()  { t.obj.Matrix = t.new }
func (t *matrixTransformer) Revert() { t.obj.Matrix = t.old }
