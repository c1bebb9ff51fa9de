// Package viewer shows a growing fractal in an SDL2 window.
package viewer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/fractals/internal/config"
	"github.com/Faultbox/fractals/internal/engine/audio"
	"github.com/Faultbox/fractals/internal/engine/camera"
	"github.com/Faultbox/fractals/internal/engine/input"
	"github.com/Faultbox/fractals/internal/engine/picking"
	"github.com/Faultbox/fractals/internal/engine/renderer"
	"github.com/Faultbox/fractals/internal/engine/screenshot"
	"github.com/Faultbox/fractals/internal/engine/window"
	"github.com/Faultbox/fractals/internal/fractal"
	"github.com/Faultbox/fractals/internal/game"
	"github.com/Faultbox/fractals/internal/logger"
	"github.com/Faultbox/fractals/pkg/math"
)

const title = "Fractals"

// maxFrameTime caps dt so a stalled frame does not release a burst of children.
const maxFrameTime = 0.25

// volumeStep is the change per press of + or -.
const volumeStep = 0.1

// Viewer owns the window, renderer and camera around one simulation.
type Viewer struct {
	config *config.Config
	game   *game.Game

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	shots    *screenshot.Capturer
	audio    *audio.Manager

	running bool
	paused  bool
}

// New opens the window and prepares the renderer for g.
func New(cfg *config.Config, g *game.Game) (*Viewer, error) {
	v := &Viewer{
		config: cfg,
		game:   g,
		input:  input.New(),
		camera: camera.NewOrbitCamera(),
		shots:  screenshot.New(cfg.Graphics.ScreenshotDir, "fractal"),
	}

	var err error
	v.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer must come after the window, which owns the GL context.
	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:  width,
		Height: height,
		FOV:    cfg.Graphics.FOV,
	})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	v.camera.FitRadius(g.Tree().Config().Radius(), math.DegToRad(cfg.Graphics.FOV))
	v.camera.AutoRotate = 0.15

	if cfg.Audio.Enabled {
		v.initAudio(cfg.Audio.Volume)
	}
	return v, nil
}

// initAudio starts growth chimes. Audio is optional: failures are logged and
// the viewer runs silently.
func (v *Viewer) initAudio(volume float64) {
	a := audio.New(volume)
	if err := a.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
		return
	}
	v.audio = a
	v.game.Tree().OnSpawn(func(n *fractal.Node) {
		if err := a.Chime(n.Depth()); err != nil {
			logger.Debug("chime", zap.Error(err))
		}
	})
}

// Run drives the frame loop until the window closes or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for v.running {
		if err := ctx.Err(); err != nil {
			return nil
		}

		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now
		if dt > maxFrameTime {
			dt = maxFrameTime
		}

		if v.input.Update() {
			v.running = false
			break
		}
		if err := v.handleInput(); err != nil {
			return err
		}

		if !v.paused {
			v.game.Step(dt)
		}
		v.camera.Update(float32(dt))

		v.renderer.Begin(v.camera.ViewMatrix(), v.camera.Position())
		v.renderer.DrawScene(v.game.Scene())
		v.renderer.End()
		if v.input.IsKeyPressed(sdl.SCANCODE_F12) {
			v.capture()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			stats := v.game.Stats()
			v.window.SetTitle(fmt.Sprintf("%s | %d nodes, %d pending | %d fps",
				title, stats.Nodes, stats.Pending, frameCount))
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("draw_calls", v.renderer.DrawCalls()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleInput() error {
	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.renderer.Resize(v.window.DrawableSize())
		case input.EventKeyDown:
			if err := v.handleKey(event.Key); err != nil {
				return err
			}
		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_RIGHT {
				v.cutAt(event.MouseX, event.MouseY)
			}
		}
	}

	if dx, dy := v.input.Drag(sdl.BUTTON_LEFT); dx != 0 || dy != 0 {
		v.camera.AutoRotate = 0
		v.camera.HandleDrag(dx, dy)
	}
	if wheel := v.input.Wheel(); wheel != 0 {
		v.camera.HandleZoom(wheel)
	}
	return nil
}

func (v *Viewer) handleKey(key sdl.Scancode) error {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		v.running = false
	case sdl.SCANCODE_R:
		if err := v.game.Regrow(); err != nil {
			return fmt.Errorf("regrow: %w", err)
		}
	case sdl.SCANCODE_BACKSPACE:
		if err := v.game.Prune(); err != nil {
			logger.Warn("prune", zap.Error(err))
		}
	case sdl.SCANCODE_SPACE:
		v.paused = !v.paused
		logger.Info("simulation paused", zap.Bool("paused", v.paused))
	case sdl.SCANCODE_M:
		if v.audio != nil {
			muted := v.audio.ToggleMute()
			logger.Info("audio", zap.Bool("muted", muted), zap.Float64("volume", v.audio.Volume()))
		}
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_MINUS:
		if v.audio != nil {
			step := volumeStep
			if key == sdl.SCANCODE_MINUS {
				step = -step
			}
			v.audio.SetVolume(v.audio.Volume() + step)
			logger.Info("audio", zap.Float64("volume", v.audio.Volume()))
		}
	case sdl.SCANCODE_D:
		logger.Info("log level", zap.Stringer("level", logger.ToggleDebug()))
	case sdl.SCANCODE_A:
		if v.camera.AutoRotate == 0 {
			v.camera.AutoRotate = 0.15
		} else {
			v.camera.AutoRotate = 0
		}
	}
	return nil
}

// cutAt removes the subtree under the clicked node.
func (v *Viewer) cutAt(x, y int) {
	w, h := v.window.Size()
	if w == 0 || h == 0 {
		return
	}
	ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h),
		math.DegToRad(v.config.Graphics.FOV), v.camera.ViewMatrix(), v.camera.Position())
	if e := picking.Pick(v.game.Scene(), ray); e != nil {
		v.game.Cut(e)
	}
}

func (v *Viewer) capture() {
	pixels, width, height := v.renderer.ReadPixels()
	path, err := v.shots.Save(pixels, width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases the renderer and window.
func (v *Viewer) Close() {
	logger.Info("closing viewer")
	if v.audio != nil {
		v.audio.Close()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
