package fractal_test

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/fractals/internal/fractal"
	"github.com/Faultbox/fractals/internal/scene"
)

// fraction returns how far c has moved from white toward end, using the
// channel with the largest span.
func fraction(c, end fractal.Color) float32 {
	best, span := float32(0), float32(0)
	for i, ch := range [3]float32{c.R, c.G, c.B} {
		d := 1 - end.RGB()[i]
		if math32.Abs(d) > span {
			span = math32.Abs(d)
			best = (1 - ch) / d
		}
	}
	return best
}

func onLine(t *testing.T, c, end fractal.Color) float32 {
	t.Helper()
	f := fraction(c, end)
	want := fractal.White.Lerp(end, f)
	assert.InDelta(t, want.R, c.R, 1e-5)
	assert.InDelta(t, want.G, c.G, 1e-5)
	assert.InDelta(t, want.B, c.B, 1e-5)
	return f
}

func assertColor(t *testing.T, want, got fractal.Color, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, 1e-6, msgAndArgs...)
	assert.InDelta(t, want.G, got.G, 1e-6, msgAndArgs...)
	assert.InDelta(t, want.B, got.B, 1e-6, msgAndArgs...)
	assert.InDelta(t, want.A, got.A, 1e-6, msgAndArgs...)
}

func TestPaletteShapeAndTerminalColors(t *testing.T) {
	for maxDepth := 2; maxDepth <= 8; maxDepth++ {
		p := fractal.BuildPalette(scene.DefaultMaterial(), maxDepth)
		require.Equal(t, maxDepth+1, p.Rows())
		assert.Equal(t, fractal.Magenta, p.At(maxDepth, 0).Color(), "depth %d", maxDepth)
		assert.Equal(t, fractal.Red, p.At(maxDepth, 1).Color(), "depth %d", maxDepth)
	}
}

func TestPaletteGradient(t *testing.T) {
	const maxDepth = 5
	p := fractal.BuildPalette(scene.DefaultMaterial(), maxDepth)

	assert.Equal(t, fractal.White, p.At(0, 0).Color())
	assert.Equal(t, fractal.White, p.At(0, 1).Color())

	prevYellow, prevCyan := float32(-1), float32(-1)
	for i := 0; i < maxDepth; i++ {
		fy := onLine(t, p.At(i, 0).Color(), fractal.Yellow)
		fc := onLine(t, p.At(i, 1).Color(), fractal.Cyan)

		want := float32(i) / float32(maxDepth-1)
		want *= want
		assert.InDelta(t, want, fy, 1e-4, "row %d yellow", i)
		assert.InDelta(t, want, fc, 1e-4, "row %d cyan", i)

		assert.Greater(t, fy, prevYellow, "row %d should be closer to yellow", i)
		assert.Greater(t, fc, prevCyan, "row %d should be closer to cyan", i)
		prevYellow, prevCyan = fy, fc
	}
	assertColor(t, fractal.Yellow, p.At(maxDepth-1, 0).Color())
	assertColor(t, fractal.Cyan, p.At(maxDepth-1, 1).Color())
}

func TestPaletteDepthOneHasNoNaN(t *testing.T) {
	p := fractal.BuildPalette(scene.DefaultMaterial(), 1)
	require.Equal(t, 2, p.Rows())
	for i := 0; i < p.Rows(); i++ {
		for v := 0; v < 2; v++ {
			assert.False(t, p.At(i, v).Color().IsNaN(), "cell (%d,%d)", i, v)
		}
	}
	assertColor(t, fractal.Yellow, p.At(0, 0).Color())
	assertColor(t, fractal.Cyan, p.At(0, 1).Color())
	assert.Equal(t, fractal.Magenta, p.At(1, 0).Color())
	assert.Equal(t, fractal.Red, p.At(1, 1).Color())
}

func TestPaletteAllocatesOneMaterialPerCell(t *testing.T) {
	clones := 0
	template := &countingMaterial{color: fractal.White, clones: &clones}
	p := fractal.BuildPalette(template, 4)
	assert.Equal(t, 2*(4+1), clones)

	seen := make(map[fractal.Material]bool)
	for i := 0; i < p.Rows(); i++ {
		for v := 0; v < 2; v++ {
			m := p.At(i, v)
			assert.NotSame(t, template, m)
			assert.False(t, seen[m], "cell (%d,%d) shares an instance", i, v)
			seen[m] = true
		}
	}
}

func TestColorLerpClamps(t *testing.T) {
	assert.Equal(t, fractal.Cyan, fractal.White.Lerp(fractal.Cyan, 4))
	assert.Equal(t, fractal.White, fractal.White.Lerp(fractal.Cyan, -1))
	mid := fractal.White.Lerp(fractal.Red, 0.5)
	assert.Equal(t, fractal.Color{R: 1, G: 0.5, B: 0.5, A: 1}, mid)
}
