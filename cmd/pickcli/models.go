package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"map-editor/core"
	"map-editor/io"
	"map-editor/math"
	"map-editor/scene"
)

// model is decoded geometry that has not been placed yet.
type model interface {
	AddTo(m *scene.Map) []*scene.MapObject
}

func decodeModel(path string) (model, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return io.LoadOBJ(path)
	case ".gltf", ".glb":
		return scene.DecodeGLTF(path)
	}
	return nil, fmt.Errorf("%s: unsupported model format", path)
}

// loadModels decodes the files in parallel, then adds them to the map in
// argument order. Arena writes stay on this goroutine.
func loadModels(ctx context.Context, m *scene.Map, paths []string) error {
	decoded := make([]model, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mdl, err := decodeModel(path)
			if err != nil {
				return err
			}
			decoded[i] = mdl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, mdl := range decoded {
		objs := mdl.AddTo(m)
		core.LogInfo("loaded %s: %d objects", paths[i], len(objs))
	}
	return nil
}

func buildDemoScene(m *scene.Map) {
	m.AddObject(scene.CreateBox(m.Arena, "crate", math.NewVec3(-5, -5, -5), math.NewVec3(5, 5, 5)))
	m.AddObject(scene.CreatePyramid(m.Arena, "pyramid", math.NewVec3(40, -5, 0), 20, 15))
	m.AddObject(scene.CreatePlane(m.Arena, "floor", math.NewVec3(0, -10, 0), 200, 200))
	m.AddMarker("light", math.NewVec3(-40, 20, 0))
}
