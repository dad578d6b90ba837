package scene

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"map-editor/core"
	"map-editor/math"
)

// GLTFMesh is one triangle primitive baked into world space.
type GLTFMesh struct {
	Name      string
	Positions []math.Vec3
	Indices   []uint32
}

// GLTFGeometry is the decoded content of a .glb / .gltf file. Decoding
// touches no arena, so several files can be decoded in parallel and added
// to a Map afterwards.
type GLTFGeometry struct {
	Path   string
	Meshes []GLTFMesh
}

// DecodeGLTF opens a .glb or .gltf file and bakes every triangle primitive
// reachable from the scene roots into world space.
func DecodeGLTF(path string) (*GLTFGeometry, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	result := &GLTFGeometry{Path: path}

	// ── Roots ─────────────────────────────────────────────────────────────────
	var roots []int
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		roots = doc.Scenes[*doc.Scene].Nodes
	} else {
		hasParent := make([]bool, len(doc.Nodes))
		for _, gn := range doc.Nodes {
			for _, c := range gn.Children {
				if c < len(hasParent) {
					hasParent[c] = true
				}
			}
		}
		for i := range doc.Nodes {
			if !hasParent[i] {
				roots = append(roots, i)
			}
		}
	}

	// ── Node walk ─────────────────────────────────────────────────────────────
	visited := make([]bool, len(doc.Nodes))
	var walk func(idx int, parent math.Mat4)
	walk = func(idx int, parent math.Mat4) {
		if idx < 0 || idx >= len(doc.Nodes) || visited[idx] {
			return
		}
		visited[idx] = true
		gn := doc.Nodes[idx]
		world := nodeMatrix(gn).Mul(parent)

		if gn.Mesh != nil && *gn.Mesh < len(doc.Meshes) {
			gm := doc.Meshes[*gn.Mesh]
			for pi, prim := range gm.Primitives {
				mesh, err := decodePrimitive(doc, nodeName(gn, idx), pi, prim, world)
				if err != nil {
					core.LogWarn("gltf %s: mesh %d prim %d: %v", path, *gn.Mesh, pi, err)
					continue
				}
				result.Meshes = append(result.Meshes, mesh)
			}
		}
		for _, c := range gn.Children {
			walk(c, world)
		}
	}
	for _, r := range roots {
		walk(r, math.Mat4Identity())
	}

	core.LogDebug("gltf %s: %d meshes", path, len(result.Meshes))
	return result, nil
}

// AddTo creates one MapObject per mesh.
func (g *GLTFGeometry) AddTo(m *Map) []*MapObject {
	objects := make([]*MapObject, 0, len(g.Meshes))
	for _, mesh := range g.Meshes {
		o := CreateObjectFromData(m.Arena, mesh.Name, mesh.Positions, mesh.Indices)
		m.AddObject(o)
		objects = append(objects, o)
	}
	return objects
}

func nodeName(gn *gltf.Node, idx int) string {
	if gn.Name != "" {
		return gn.Name
	}
	return fmt.Sprintf("node_%d", idx)
}

// nodeMatrix returns the node's local transform in row-vector form.
func nodeMatrix(gn *gltf.Node) math.Mat4 {
	if gn.Matrix != [16]float64{} && gn.Matrix != identityColumnMajor {
		// column-major storage transposes straight into row-vector form
		var m math.Mat4
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				m[i][j] = float32(gn.Matrix[i*4+j])
			}
		}
		return m
	}

	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault() // [x, y, z, w]
	s := gn.ScaleOrDefault()

	scale := math.Mat4Scale(math.Vec3{X: float32(s[0]), Y: float32(s[1]), Z: float32(s[2])})
	translation := math.Mat4Translation(math.Vec3{X: float32(t[0]), Y: float32(t[1]), Z: float32(t[2])})
	rotation := math.NewQuaternion(float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3])).Normalize()
	return scale.Mul(rotation.ToMat4()).Mul(translation)
}

var identityColumnMajor = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

func decodePrimitive(doc *gltf.Document, name string, primIdx int, prim *gltf.Primitive, world math.Mat4) (GLTFMesh, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		return GLTFMesh{}, fmt.Errorf("mode %v is not triangles", prim.Mode)
	}
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return GLTFMesh{}, fmt.Errorf("no POSITION attribute")
	}
	raw, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return GLTFMesh{}, fmt.Errorf("positions: %w", err)
	}

	positions := make([]math.Vec3, len(raw))
	for i, p := range raw {
		positions[i] = world.MulVec3(math.Vec3{X: p[0], Y: p[1], Z: p[2]})
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return GLTFMesh{}, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	return GLTFMesh{Name: fmt.Sprintf("%s_p%d", name, primIdx), Positions: positions, Indices: indices}, nil
}
