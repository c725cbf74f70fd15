// Command demo renders a small scene with three shadow-casting point lights
// and hundreds of plain ones through the deferred pipeline.
//
// Keys: 0-9 select the render mode, ',' and '.' cycle the selected light,
// the arrow keys move it (shift for up/down), A toggles SSAO, S shadows,
// D the disco animation, X the parameter panel, Esc quits. Drag with the
// left button to orbit and with the right button to dolly; a left click
// selects the light under the cursor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"deferred-engine/core"
	"deferred-engine/editor"
	"deferred-engine/internal/opengl"
	sceneio "deferred-engine/io"
	"deferred-engine/renderer"
	"deferred-engine/scene"
)

const (
	lightStep   = 0.1
	orbitSpeed  = 0.005
	dollySpeed  = 0.05
	scrollDolly = 2.0
	pickRadius  = 0.5
)

// app is the demo's mutable state between frames.
type app struct {
	window *core.Window
	camera *scene.OrbitCamera
	r      *renderer.Renderer
	scene  *demoScene
	hud    *hudPanel
	panel  *opengl.Overlay

	mode    renderer.RenderMode
	shadows bool
	ssao    bool
	showHUD bool

	lastX, lastY float64
	dragging     bool
	leftDown     bool
	moved        bool
	fps          float64
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		slog.Error("demo failed", "err", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := parseConfig(args, os.Stderr)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	renderer.SetLogger(logger)

	wc := core.DefaultWindowConfig()
	wc.Width, wc.Height = cfg.Width, cfg.Height
	window, err := core.NewWindow(wc)
	if err != nil {
		return err
	}
	defer window.Destroy()

	backend, err := opengl.NewBackend()
	if err != nil {
		return err
	}
	defer backend.Destroy()

	albedo, err := sphereTexture(cfg.Texture)
	if err != nil {
		return fmt.Errorf("sphere texture: %w", err)
	}
	var extra []*scene.Mesh
	if cfg.Model != "" {
		if extra, err = loadModel(cfg.Model); err != nil {
			return fmt.Errorf("model: %w", err)
		}
		slog.Info("model loaded", "path", cfg.Model, "meshes", len(extra))
	}
	ds := newDemoScene(albedo, extra)
	ds.drawMesh = backend.DrawMesh
	ds.textureOf = opengl.TextureOf
	ds.disco = cfg.Disco
	defer func() {
		for _, m := range ds.meshes() {
			backend.ReleaseMesh(m)
			if m.Material != nil {
				opengl.DeleteTexture(m.Material.AlbedoTexture)
			}
		}
	}()

	rig := sceneio.NewDefaultSceneFile("default")
	if cfg.Scene != "" {
		if rig, err = sceneio.LoadScene(cfg.Scene); err != nil {
			return err
		}
	}

	fbW, fbH := window.GetFramebufferSize()
	aspect := float32(fbW) / float32(max(fbH, 1))
	cc := rig.Camera
	camera := scene.NewOrbitCameraAt(sceneio.ArrayToVec3(cc.Position), sceneio.ArrayToVec3(cc.Target),
		mgl32.DegToRad(cc.FOV), aspect, cc.Near, cc.Far)

	r, err := renderer.New(backend, ds.Casters(), ds.NonCasters(), camera, cfg.rendererConfig(fbW, fbH))
	if err != nil {
		return err
	}
	defer r.Destroy()

	for _, l := range rig.Lights {
		if _, err := r.AddLight(sceneio.ArrayToVec3(l.Position), sceneio.ArrayToVec3(l.Color), l.ShadowCaster); err != nil {
			return err
		}
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	bounds := rig.RandomLights.Bounds()
	for range cfg.Lights {
		r.AddRandomLight(rng, bounds)
	}

	a := &app{
		window:  window,
		camera:  camera,
		r:       r,
		scene:   ds,
		mode:    cfg.initialMode(),
		shadows: cfg.Shadows,
		ssao:    cfg.SSAO,
		showHUD: cfg.HUD,
	}
	if a.hud, err = newHUDPanel(); err != nil {
		return err
	}
	if a.panel, err = backend.Overlay(); err != nil {
		return err
	}
	window.SetKeyCallback(a.onKey)
	window.SetScrollCallback(func(_, yoff float64) {
		camera.Dolly(float32(-yoff) * scrollDolly)
	})

	slog.Info("demo ready", "rig", rig.Name, "lights", r.Lights().Len(), "shadowMaps", r.ShadowMapCount(), "mode", a.mode)
	a.loop()
	return nil
}

func (a *app) loop() {
	start := a.window.Time()
	last := start
	frames := 0
	for !a.window.ShouldClose() {
		now := a.window.Time()
		frames++
		if now-last >= 1 {
			a.fps = float64(frames) / (now - last)
			frames = 0
			last = now
		}

		a.handleMouse()
		a.scene.seconds = now - start
		if a.scene.disco {
			animateDisco(a.r.Lights(), a.scene.seconds)
		}

		a.r.Render(a.mode, a.shadows, a.ssao)
		if a.showHUD {
			a.drawHUD()
		}

		a.window.SwapBuffers()
		a.window.PollEvents()
	}
}

func (a *app) onKey(key int, shift bool) {
	lights := a.r.Lights()
	switch {
	case key >= core.Key0 && key <= core.Key9:
		a.mode = renderer.RenderMode(key - core.Key0)
	case key == core.KeyComma:
		lights.SelectPrev()
	case key == core.KeyPeriod:
		lights.SelectNext()
	case key == core.KeyLeft:
		lights.MoveSelected(mgl32.Vec3{-lightStep, 0, 0})
	case key == core.KeyRight:
		lights.MoveSelected(mgl32.Vec3{lightStep, 0, 0})
	case key == core.KeyUp && shift:
		lights.MoveSelected(mgl32.Vec3{0, lightStep, 0})
	case key == core.KeyDown && shift:
		lights.MoveSelected(mgl32.Vec3{0, -lightStep, 0})
	case key == core.KeyUp:
		lights.MoveSelected(mgl32.Vec3{0, 0, -lightStep})
	case key == core.KeyDown:
		lights.MoveSelected(mgl32.Vec3{0, 0, lightStep})
	case key == core.KeyA:
		a.ssao = !a.ssao
	case key == core.KeyS:
		a.shadows = !a.shadows
	case key == core.KeyD:
		a.scene.disco = !a.scene.disco
	case key == core.KeyX:
		a.showHUD = !a.showHUD
	case key == core.KeyEscape:
		a.window.Close()
	}
}

func (a *app) handleMouse() {
	x, y := a.window.GetCursorPos()
	left := a.window.IsMouseButtonPressed(core.MouseLeft)
	right := a.window.IsMouseButtonPressed(core.MouseRight)
	if (left || right) && a.dragging {
		dx, dy := float32(x-a.lastX), float32(y-a.lastY)
		if dx != 0 || dy != 0 {
			a.moved = true
		}
		if left {
			a.camera.Orbit(-dx*orbitSpeed, dy*orbitSpeed)
		} else {
			a.camera.Dolly(dy * dollySpeed * a.camera.Distance / 10)
		}
	}
	// A left click without a drag selects the light under the cursor.
	if a.dragging && a.leftDown && !left && !a.moved {
		a.pickLight(x, y)
	}
	if !a.dragging {
		a.moved = false
	}
	a.dragging = left || right
	a.leftDown = left
	a.lastX, a.lastY = x, y
}

func (a *app) pickLight(x, y float64) {
	w, h := a.window.Width, a.window.Height
	if w <= 0 || h <= 0 {
		return
	}
	ray := editor.ScreenToRay(float32(x), float32(y), float32(w), float32(h), a.camera)
	if handle, ok := editor.PickLight(ray, a.r.Lights(), pickRadius); ok {
		a.r.Lights().Select(handle)
		slog.Debug("light picked", "handle", int(handle))
	}
}

func (a *app) drawHUD() {
	lights := a.r.Lights()
	stats := a.r.Stats()

	a.hud.Clear()
	a.hud.AddLine("Framerate: %.1f", a.fps)
	a.hud.AddLine("Render mode (0-9): %d %s", int(a.mode), a.mode)
	a.hud.AddLine("Ambient occlusion [A]: %s", onOff(a.ssao))
	a.hud.AddLine("Shadows [S]: %s", onOff(a.shadows))
	a.hud.AddLine("Disco mode [D]: %s", onOff(a.scene.disco))
	a.hud.AddLine("Lights drawn/culled: %d/%d", stats.LightsDrawn, stats.LightsCulled)
	if h, err := lights.Selected(); err == nil {
		l, _ := lights.Get(h)
		p := l.Position
		a.hud.AddLine("Selected light [,/.]: %d (%.1f, %.1f, %.1f)", int(h), p[0], p[1], p[2])
	}

	img, err := a.hud.Render()
	if err != nil {
		slog.Warn("hud render failed", "err", err)
		a.showHUD = false
		return
	}
	a.panel.Upload(img)
	w, h := a.window.GetFramebufferSize()
	a.panel.Draw(10, 10, w, h)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
