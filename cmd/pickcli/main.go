package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"map-editor/config"
	"map-editor/core"
	"map-editor/editor"
	"map-editor/io"
	"map-editor/scene"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "preferences file (.toml, .yaml)")
	viewName := flag.String("view", "front", "viewport for the scripted session: front, top, side")
	watch := flag.Bool("watch", false, "keep running and apply preference changes from disk")
	mapPath := flag.String("map", "", "saved map to open instead of the demo scene")
	savePath := flag.String("save", "", "write the edited map to this JSON file")
	exportPath := flag.String("export", "", "write the edited geometry to this .obj file")
	flag.Parse()

	prefs, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load preferences: %v\n", err)
		os.Exit(1)
	}
	core.SetLogLevel(prefs.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := scene.NewMap()
	if *mapPath != "" {
		if m, _, err = io.LoadMap(*mapPath); err != nil {
			core.LogFatal("opening map: %v", err)
		}
	}
	if flag.NArg() > 0 {
		if err := loadModels(ctx, m, flag.Args()); err != nil {
			core.LogFatal("loading models: %v", err)
		}
	}
	if len(m.Objects) == 0 && len(m.Markers) == 0 {
		buildDemoScene(m)
	}

	view, err := parseView(*viewName)
	if err != nil {
		core.LogFatal("%v", err)
	}

	e := editor.NewEditor(m, prefs)
	core.LogInfo("map ready: %d objects", len(m.Objects))
	castCenterRays(m, view)
	logGrid(m, prefs.Grid())
	orbitMap(m)
	runScript(e, view)

	objects, vertices, faces := e.GetStats()
	core.LogInfo("stats: %d objects, %d vertices, %d triangles, %d undo steps",
		objects, vertices, faces, e.History.Len())

	if *savePath != "" {
		name := strings.TrimSuffix(filepath.Base(*savePath), filepath.Ext(*savePath))
		if err := io.SaveMap(*savePath, name, m); err != nil {
			core.LogError("saving map: %v", err)
		} else {
			core.LogInfo("saved %s", *savePath)
		}
	}
	if *exportPath != "" {
		if err := io.ExportOBJ(*exportPath, m.Objects); err != nil {
			core.LogError("exporting: %v", err)
		} else {
			core.LogInfo("exported %s", *exportPath)
		}
	}

	if *watch {
		if err := watchPreferences(ctx, e, *configPath); err != nil {
			core.LogFatal("watching preferences: %v", err)
		}
	}
}

func parseView(name string) (*editor.OrthographicViewport, error) {
	var vt editor.ViewType
	switch strings.ToLower(name) {
	case "front":
		vt = editor.ViewFront
	case "top":
		vt = editor.ViewTop
	case "side":
		vt = editor.ViewSide
	default:
		return nil, fmt.Errorf("unknown view %q", name)
	}
	return editor.NewOrthographicViewport(vt, 800, 600), nil
}

// watchPreferences applies reloads until ctx is done. Updates are applied
// on this goroutine, the one that owns the editor.
func watchPreferences(ctx context.Context, e *editor.Editor, path string) error {
	w, err := config.NewWatcher(path)
	if err != nil {
		return err
	}
	go w.Run(ctx)
	core.LogInfo("watching %s (ctrl+c to quit)", path)

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case prefs, ok := <-w.Updates():
			if !ok {
				return nil
			}
			e.SetPreferences(prefs)
			core.LogInfo("preferences reloaded: grid %g, translation snap %t",
				prefs.Grid().Spacing(), prefs.SnapTranslation)
		case err, ok := <-w.Errors():
			if ok {
				core.LogWarn("preferences: %v", err)
			}
		case <-ticker.C:
			e.Update(nil)
		}
	}
}
