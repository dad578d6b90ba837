package main

import (
	"map-editor/core"
	"map-editor/editor"
	"map-editor/math"
	"map-editor/scene"
)

// castCenterRays casts one view ray through the center of every object.
func castCenterRays(m *scene.Map, view *editor.OrthographicViewport) {
	for _, o := range m.Objects {
		px, py := project(view, o.Bounds().Center())
		h := editor.RaycastMap(view.ScreenRay(px, py), m, 1)
		if h.Missed() {
			core.LogInfo("ray at %q (%.0f, %.0f): miss", o.Name, px, py)
			continue
		}
		core.LogInfo("ray at %q (%.0f, %.0f): hit %s at %.2f", o.Name, px, py, hitName(h), h.Dist)
	}
}

// mapExtent is the box around every object, or false for a map without
// geometry.
func mapExtent(m *scene.Map) (lo, hi math.Vec3, ok bool) {
	for i, o := range m.Objects {
		if i == 0 {
			lo, hi = o.Bounds().Min(), o.Bounds().Max()
			continue
		}
		lo, hi = lo.Min(o.Bounds().Min()), hi.Max(o.Bounds().Max())
	}
	return lo, hi, len(m.Objects) > 0
}

// logGrid reports the grid lines a view spanning the map along X draws.
func logGrid(m *scene.Map, grid scene.Grid) {
	lo, hi, ok := mapExtent(m)
	if !ok || !grid.Enabled {
		return
	}
	lines := grid.Lines(lo.X, hi.X)
	if len(lines) == 0 {
		core.LogInfo("grid: no lines across x [%.1f, %.1f]", lo.X, hi.X)
		return
	}
	core.LogInfo("grid: %d lines across x [%.1f, %.1f], first %.1f last %.1f",
		len(lines), lo.X, hi.X, lines[0], lines[len(lines)-1])
}

// orbitMap circles a perspective camera around the map, casting the
// center ray from each quarter.
func orbitMap(m *scene.Map) {
	lo, hi, ok := mapExtent(m)
	if !ok {
		return
	}
	center := lo.Add(hi).Mul(0.5)
	dist := max(hi.Sub(lo).Length()*1.5, 10)
	view := editor.NewPerspectiveViewport(center.Add(math.NewVec3(0, 0, dist)), center, 800, 600)
	view.Orbit(0, 20)
	for i := 0; i < 4; i++ {
		h := editor.RaycastMap(view.ScreenRay(view.Width/2, view.Height/2), m, 1)
		if h.Missed() {
			core.LogInfo("orbit %d°: miss", i*90)
		} else {
			core.LogInfo("orbit %d°: hit %s at %.2f", i*90, hitName(h), h.Dist)
		}
		view.Orbit(90, 0)
	}
}

func hitName(h editor.Hit) string {
	switch obj := h.Obj.(type) {
	case *scene.MapObject:
		return obj.Name
	case *scene.Marker:
		return obj.Name
	}
	return "?"
}

// project maps a world position to pixel coordinates of an ortho view.
func project(view *editor.OrthographicViewport, p math.Vec3) (float32, float32) {
	var x, y float32
	switch view.View {
	case editor.ViewTop:
		x, y = p.X-view.Center.X, -(p.Z - view.Center.Z)
	case editor.ViewSide:
		x, y = -(p.Z - view.Center.Z), p.Y-view.Center.Y
	default:
		x, y = p.X-view.Center.X, p.Y-view.Center.Y
	}
	return view.Width/2 + x/view.Zoom, view.Height/2 - y/view.Zoom
}

// runScript replays a short editing session: select the first object,
// drag it along the horizontal gizmo arm, undo, rotate and redo.
func runScript(e *editor.Editor, view *editor.OrthographicViewport) {
	if len(e.Map.Objects) == 0 {
		core.LogWarn("empty map, nothing to edit")
		return
	}
	target := e.Map.Objects[0]
	cx, cy := project(view, target.Bounds().Center())

	click(e, view, cx, cy)
	core.LogInfo("click: %s", e.StatusText)
	if e.Objects.IsEmpty() {
		return
	}

	// the arm of the horizontal screen axis, 40 pixels out at zoom 1
	drag(e, view, cx+40, cy, 4, 0, 12)
	core.LogInfo("translate: %s (min %v)", e.StatusText, target.Bounds().Min())

	tap(e, view, editor.KeyLeftControl, editor.KeyZ)
	core.LogInfo("%s: min %v", e.StatusText, target.Bounds().Min())

	tap(e, view, editor.KeyR)
	drag(e, view, cx+10, cy-10, -2, 0, 10)
	core.LogInfo("rotate: %s", e.StatusText)

	tap(e, view, editor.KeyLeftControl, editor.KeyZ)
	tap(e, view, editor.KeyLeftControl, editor.KeyLeftShift, editor.KeyZ)
	core.LogInfo("redo: %v", target.Matrix)

	tap(e, view, editor.KeyG)
	tap(e, view, editor.KeyK)
	core.LogInfo("snap to grid: min %v max %v", target.Bounds().Min(), target.Bounds().Max())
}

func click(e *editor.Editor, view editor.ScreenView, x, y float32) {
	e.Input.MoveCursor(x, y)
	e.Input.SetMouseButton(editor.MouseLeft, true)
	e.Update(view)
	e.Input.SetMouseButton(editor.MouseLeft, false)
	e.Update(view)
}

func drag(e *editor.Editor, view editor.ScreenView, x, y, dx, dy float32, steps int) {
	e.Input.MoveCursor(x, y)
	e.Input.SetMouseButton(editor.MouseLeft, true)
	e.Update(view)
	for i := 1; i <= steps; i++ {
		e.Input.MoveCursor(x+dx*float32(i), y+dy*float32(i))
		e.Update(view)
	}
	e.Input.SetMouseButton(editor.MouseLeft, false)
	e.Update(view)
}

func tap(e *editor.Editor, view editor.ScreenView, keys ...editor.Key) {
	for _, k := range keys {
		e.Input.SetKey(k, true)
	}
	e.Update(view)
	for _, k := range keys {
		e.Input.SetKey(k, false)
	}
	e.Update(view)
}
