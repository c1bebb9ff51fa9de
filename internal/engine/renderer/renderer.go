// Package renderer draws a fractal scene with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/fractals/internal/engine/lighting"
	"github.com/Faultbox/fractals/internal/engine/renderer/shaders"
	"github.com/Faultbox/fractals/internal/engine/shader"
	"github.com/Faultbox/fractals/internal/logger"
	"github.com/Faultbox/fractals/internal/scene"
	"github.com/Faultbox/fractals/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	FOV    float32 // vertical field of view, degrees
	Near   float32
	Far    float32
}

// mesh is one uploaded primitive.
type mesh struct {
	vao, vbo uint32
	count    int32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program
	meshes  map[string]*mesh

	lightDir math.Vec3

	// Frame statistics, reset by Begin.
	drawCalls int
	skipped   int
}

// New creates a renderer and uploads every built-in primitive.
// Must be called after the OpenGL context exists.
func New(cfg Config) (*Renderer, error) {
	if cfg.FOV == 0 {
		cfg.FOV = 60
	}
	if cfg.Near == 0 {
		cfg.Near = 0.01
	}
	if cfg.Far == 0 {
		cfg.Far = 500
	}

	r := &Renderer{
		config:   cfg,
		meshes:   make(map[string]*mesh),
		lightDir: lighting.SunDirection(35, 55),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.MULTISAMPLE)
	gl.ClearColor(0.08, 0.08, 0.11, 1.0)

	var err error
	r.program, err = shader.New(shaders.FractalVertexShader, shaders.FractalFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	for _, p := range scene.Primitives {
		r.meshes[p.Name()] = upload(p.Geometry())
		logger.Debug("mesh uploaded", zap.String("mesh", p.Name()), zap.Int32("vertices", r.meshes[p.Name()].count))
	}

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

func upload(data []float32) *mesh {
	m := &mesh{count: int32(len(data) / scene.VertexStride)}
	stride := int32(scene.VertexStride * 4)

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	return m
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, m := range r.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Projection returns the projection matrix for the current viewport.
func (r *Renderer) Projection() math.Mat4 {
	aspect := float32(1)
	if r.config.Height > 0 {
		aspect = float32(r.config.Width) / float32(r.config.Height)
	}
	return math.Perspective(math.DegToRad(r.config.FOV), aspect, r.config.Near, r.config.Far)
}

// Begin clears the frame and sets per-frame uniforms.
func (r *Renderer) Begin(view math.Mat4, cameraPos math.Vec3) {
	r.drawCalls = 0
	r.skipped = 0

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.program.Use()
	r.program.SetMat4("uView", view)
	r.program.SetMat4("uProjection", r.Projection())
	r.program.SetVec3("uLightDir", r.lightDir)
	r.program.SetVec3("uCameraPos", cameraPos)
}

// DrawScene draws every entity that has a mesh.
func (r *Renderer) DrawScene(s *scene.Scene) {
	s.Walk(func(e *scene.Entity, world math.Mat4) {
		if e.Mesh() == nil {
			return
		}
		r.Draw(e.Mesh().Name(), world, surfaceOf(e))
	})
}

// Draw draws one mesh instance. Unknown meshes are counted and skipped.
func (r *Renderer) Draw(name string, model math.Mat4, s Surface) {
	m, ok := r.meshes[name]
	if !ok {
		r.skipped++
		return
	}
	r.program.SetMat4("uModel", model)
	r.program.SetVec3("uColor", s.Color)
	r.program.SetFloat("uAmbient", s.Ambient)
	r.program.SetFloat("uSpecular", s.Specular)
	r.program.SetFloat("uShininess", s.Shininess)

	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	r.drawCalls++
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	if r.skipped > 0 {
		logger.Debug("skipped draws with unknown mesh", zap.Int("count", r.skipped))
	}
}

// ReadPixels returns the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// DrawCalls returns the number of draws issued since Begin.
func (r *Renderer) DrawCalls() int {
	return r.drawCalls
}
