package editor

import (
	"map-editor/math"
	"map-editor/scene"
)

// Selectable is anything that can join a Selection and be transformed:
// markers, vertices, triangles, map objects and the gizmo itself.
type Selectable interface {
	// AddTo grows box to contain the item.
	AddTo(box *scene.BoundingBox)
	RecalculateAABB()

	Transforms() bool
	IsTransforming() bool
	StartTransformation()
	EndTransformation()

	// AllowRotation filters which points a single-axis rotation moves.
	// Angles are never filtered.
	AllowRotation(axis math.Axis) bool
	AddPoints(set *scene.PointSet)
	AddAngles(set *scene.AngleSet)

	// CreateTransformer returns state beyond positions and angles that a
	// committed matrix should update, or nil.
	CreateTransformer(m math.Mat4) scene.Transformer

	IsSelected() bool
	SetSelected(selected bool)
}

// SelectableItem is the element constraint of Selection.
type SelectableItem interface {
	comparable
	Selectable
}

var (
	_ Selectable = (*scene.Marker)(nil)
	_ Selectable = (*scene.Vertex)(nil)
	_ Selectable = (*scene.Triangle)(nil)
	_ Selectable = (*scene.MapObject)(nil)
	_ Selectable = (*TransformGizmo)(nil)
)
