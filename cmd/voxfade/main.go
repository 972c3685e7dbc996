// Command voxfade is an interactive viewer for the occlusion modes. The
// camera orbits the player; geometry between them fades or is cut away
// depending on the selected mode.
//
//	W/A/S/D move    Space jump      Ctrl sprint     mouse orbit   wheel zoom
//	M cycle mode    T cycle technique               H toggle hybrid fallback
//	R region outline                F2 software render to PNG     Esc pause
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"voxfade/internal/config"
	"voxfade/internal/logging"
	"voxfade/internal/occlusion"
	"voxfade/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	var (
		sceneName = flag.String("scene", "house", "scene to load: house, hills or flat")
		seed      = flag.Int64("seed", 1, "terrain seed for the hills scene")
		mode      = flag.String("mode", "shader", "occlusion mode: none, shader, region or hybrid")
		technique = flag.String("technique", "dithered", "transparency technique: dithered or alphablend")
		fallback  = flag.Bool("fallback", false, "run the analytic fade outside the region in hybrid mode")
		width     = flag.Int("width", 1280, "window width")
		height    = flag.Int("height", 800, "window height")
		fps       = flag.Int("fps", 120, "frame cap, 0 for uncapped")
		shotDir   = flag.String("shots", ".", "directory for F2 screenshots")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*sceneName, *seed, *mode, *technique, *fallback, *width, *height, *fps, *shotDir); err != nil {
		fmt.Fprintln(os.Stderr, "voxfade:", err)
		os.Exit(1)
	}
}

func run(sceneName string, seed int64, mode, technique string, fallback bool, width, height, fps int, shotDir string) error {
	m, err := occlusion.ParseMode(mode)
	if err != nil {
		return err
	}
	tq, err := occlusion.ParseTechnique(technique)
	if err != nil {
		return err
	}
	scene, err := world.LoadScene(sceneName, seed)
	if err != nil {
		return err
	}
	config.SetMode(m)
	config.SetTechnique(tq)
	config.SetHybridFallback(fallback)
	config.SetFPSLimit(fps)

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(width, height)
	if err != nil {
		return err
	}
	defer window.Destroy()

	v, err := NewViewer(window, scene, shotDir)
	if err != nil {
		return err
	}
	defer v.Dispose()

	logging.Logger().Info("viewer started", "scene", sceneName, "mode", m, "technique", tq, "fallback", fallback)
	v.Run()
	return nil
}
