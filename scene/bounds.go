package scene

import "map-editor/math"

// BoundingBox is an axis-aligned box whose two corners live in the arena,
// so a selection can transform them together with its members.
type BoundingBox struct {
	arena    *Arena
	min, max PointID
	empty    bool
}

// NewBoundingBox allocates an empty box.
func NewBoundingBox(arena *Arena) *BoundingBox {
	return &BoundingBox{
		arena: arena,
		min:   arena.NewPoint(math.Vec3Zero),
		max:   arena.NewPoint(math.Vec3Zero),
		empty: true,
	}
}

func (b *BoundingBox) IsEmpty() bool { return b.empty }

func (b *BoundingBox) Min() math.Vec3 { return b.arena.Pos(b.min) }
func (b *BoundingBox) Max() math.Vec3 { return b.arena.Pos(b.max) }

// Corners returns the handles of the min and max corner.
func (b *BoundingBox) Corners() (PointID, PointID) { return b.min, b.max }

func (b *BoundingBox) Center() math.Vec3 {
	return b.Min().Add(b.Max()).Mul(0.5)
}

func (b *BoundingBox) Size() math.Vec3 {
	if b.empty {
		return math.Vec3Zero
	}
	return b.Max().Sub(b.Min())
}

func (b *BoundingBox) Clear() {
	b.empty = true
	b.arena.Point(b.min).Set(math.Vec3Zero)
	b.arena.Point(b.max).Set(math.Vec3Zero)
}

// SetTo replaces the box; lo and hi are reordered per component.
func (b *BoundingBox) SetTo(lo, hi math.Vec3) {
	b.arena.Point(b.min).Set(lo.Min(hi))
	b.arena.Point(b.max).Set(lo.Max(hi))
	b.empty = false
}

// Encompass grows the box to contain v.
func (b *BoundingBox) Encompass(v math.Vec3) {
	if b.empty {
		b.SetTo(v, v)
		return
	}
	b.SetTo(b.Min().Min(v), b.Max().Max(v))
}

func (b *BoundingBox) EncompassBox(other *BoundingBox) {
	if other.empty {
		return
	}
	b.Encompass(other.Min())
	b.Encompass(other.Max())
}

func (b *BoundingBox) Contains(v math.Vec3) bool {
	if b.empty {
		return false
	}
	lo, hi := b.Min(), b.Max()
	return v.X >= lo.X && v.Y >= lo.Y && v.Z >= lo.Z &&
		v.X <= hi.X && v.Y <= hi.Y && v.Z <= hi.Z
}

func (b *BoundingBox) StartTransform() {
	b.arena.Point(b.min).StartTransform()
	b.arena.Point(b.max).StartTransform()
}

func (b *BoundingBox) EndTransform() {
	b.arena.Point(b.min).EndTransform()
	b.arena.Point(b.max).EndTransform()
}

// Release frees the corner slots.
func (b *BoundingBox) Release() {
	_ = b.arena.ReleasePoint(b.min)
	_ = b.arena.ReleasePoint(b.max)
}
