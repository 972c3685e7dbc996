package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"voxfade/internal/config"
	"voxfade/internal/frame"
	"voxfade/internal/graphics/renderables/playermodel"
	"voxfade/internal/graphics/renderables/voxels"
	"voxfade/internal/graphics/renderables/wireframe"
	renderer "voxfade/internal/graphics/renderer"
	"voxfade/internal/imageio"
	"voxfade/internal/input"
	"voxfade/internal/logging"
	"voxfade/internal/pacing"
	"voxfade/internal/player"
	"voxfade/internal/profiling"
	"voxfade/internal/raster"
	"voxfade/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const slowFrame = 16 * time.Millisecond

// Viewer owns the window loop
type Viewer struct {
	window   *glfw.Window
	renderer *renderer.Renderer
	outline  *wireframe.Wireframe
	input    *input.InputManager

	scene   world.Scene
	player  *player.Player
	builder *frame.Builder

	paused   bool
	shotDir  string
	shooting bool
	shotDone chan error
	pacer    *pacing.Pacer
	lastTime time.Time
}

func NewViewer(window *glfw.Window, scene world.Scene, shotDir string) (*Viewer, error) {
	outline := wireframe.NewWireframe()
	fbw, fbh := window.GetFramebufferSize()
	r, err := renderer.NewRenderer(fbw, fbh,
		voxels.NewVoxels(),
		playermodel.NewPlayerModel(),
		outline,
	)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		window:   window,
		renderer: r,
		outline:  outline,
		input:    input.NewInputManager(),
		scene:    scene,
		player:   player.New(scene.World, scene.Spawn),
		builder:  frame.NewBuilder(scene.World),
		shotDir:  shotDir,
		shotDone: make(chan error, 1),
		pacer:    pacing.New(),
		lastTime: time.Now(),
	}
	v.setupCallbacks()
	return v, nil
}

func (v *Viewer) setupCallbacks() {
	v.input.SetKeyCallback(v.window)

	v.window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		if !v.paused {
			v.player.Camera.HandleMouseMovement(xpos, ypos)
		}
	})
	v.window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		if v.paused {
			return
		}
		// Ctrl+wheel changes the lens, the wheel alone the orbit distance
		if w.GetKey(glfw.KeyLeftControl) == glfw.Press {
			v.renderer.Zoom(float32(-yoff) * 5)
			return
		}
		v.player.Camera.Scroll(yoff)
	})
	v.window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		v.renderer.UpdateViewport(width, height)
	})
}

// Run loops until the window closes
func (v *Viewer) Run() {
	for !v.window.ShouldClose() {
		v.tick()
	}
}

func (v *Viewer) tick() {
	profiling.ResetFrame()
	start := time.Now()
	dt := start.Sub(v.lastTime).Seconds()
	v.lastTime = start
	// Clamp so a stall does not tunnel the player through walls
	dt = min(dt, 0.05)

	glfw.PollEvents()
	v.handleActions()

	if !v.paused {
		v.player.Update(dt, player.Input{
			Forward: v.input.Axis(input.ActionMoveForward, input.ActionMoveBackward),
			Strafe:  v.input.Axis(input.ActionMoveRight, input.ActionMoveLeft),
			Jump:    v.input.IsActive(input.ActionJump),
			Sprint:  v.input.IsActive(input.ActionSprint),
		})
	}

	eye := v.player.Eye()
	v.renderer.LookAt(eye, v.player.Head())
	params := v.builder.Build(v.player.Position, eye)
	v.renderer.Render(v.scene.World, &params, dt)

	v.window.SwapBuffers()

	if d := time.Since(start); d > slowFrame {
		logging.Logger().Debug("slow frame", "duration", d, "top", profiling.TopN(5))
	}

	v.input.PostUpdate()
	v.pacer.Wait(v.paused)
}

func (v *Viewer) handleActions() {
	im := v.input
	log := logging.Logger()

	if im.JustPressed(input.ActionPause) {
		v.paused = !v.paused
		if v.paused {
			v.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		} else {
			v.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
			v.player.Camera.FirstMouse = true
		}
	}
	if im.JustPressed(input.ActionCycleMode) {
		log.Info("occlusion mode", "mode", config.CycleMode())
	}
	if im.JustPressed(input.ActionCycleTechnique) {
		log.Info("occlusion technique", "technique", config.CycleTechnique())
	}
	if im.JustPressed(input.ActionToggleFallback) {
		on := !config.GetOcclusion().HybridFallback
		config.SetHybridFallback(on)
		log.Info("hybrid fallback", "enabled", on)
	}
	if im.JustPressed(input.ActionToggleRegionOutline) {
		v.outline.Visible = !v.outline.Visible
	}
	if im.JustPressed(input.ActionScreenshot) {
		v.screenshot()
	}

	select {
	case err := <-v.shotDone:
		v.shooting = false
		if err != nil {
			log.Error("screenshot failed", "err", err)
		}
	default:
	}
}

// screenshot renders the current view with the software renderer in the
// background. The world is never edited by the viewer so sharing it is safe.
func (v *Viewer) screenshot() {
	if v.shooting {
		return
	}
	v.shooting = true

	cam := v.renderer.GetCamera()
	view := cam.Raster()
	params := v.builder.Current()
	w, h := v.window.GetFramebufferSize()
	opts := raster.Options{Width: max(w/2, 1), Height: max(h/2, 1), DrawPlayer: true}
	path := filepath.Join(v.shotDir, fmt.Sprintf("voxfade-%s-%s.png", params.Mode, time.Now().Format("150405")))
	sceneWorld := v.scene.World

	go func() {
		f, err := raster.New(opts).Render(context.Background(), sceneWorld, view, &params)
		if err == nil {
			err = imageio.SavePNG(path, imageio.Upscale(f, 2))
		}
		if err == nil {
			logging.Logger().Info("screenshot saved", "path", path, "mismatches", f.Stats.Mismatches)
		}
		v.shotDone <- err
	}()
}

func (v *Viewer) Dispose() {
	v.renderer.Dispose()
}
