package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func linearField(nx, ny int, w, h float64, b Boundary) *Centered {
	g := NewCentered(nx, ny, w, h, b)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			x, y := g.CellCenter(i, j)
			g.Set(i, j, 2*x+3*y)
		}
	}
	return g
}

func TestCenteredSampleLinearField(t *testing.T) {
	g := linearField(16, 16, 32, 32, ZeroGradient)

	// Bilinear interpolation reproduces linear fields exactly away from
	// the boundary.
	assert.InDelta(t, 2*10.0+3*12.0, g.Sample(10, 12), 1e-12, "on centers")
	assert.InDelta(t, 2*10.7+3*12.3, g.Sample(10.7, 12.3), 1e-12, "off centers")
	assert.InDelta(t, 2*15.5+3*16.5, g.Sample(15.5, 16.5), 1e-12, "cell corner")
}

func TestCenteredBoundary(t *testing.T) {
	zg := NewCentered(4, 4, 4, 4, ZeroGradient)
	zv := NewCentered(4, 4, 4, 4, ZeroValue)
	for i := range zg.Values {
		zg.Values[i] = 1
		zv.Values[i] = 1
	}

	// Far outside the domain, zero-gradient extends the edge value while
	// zero-value fades to nothing.
	assert.InDelta(t, 1.0, zg.Sample(-3, 2), 1e-12)
	assert.InDelta(t, 0.0, zv.Sample(-3, 2), 1e-12)
	// Half a cell past the last center, zero-value is already blending
	// toward zero.
	assert.Less(t, zv.Sample(0.1, 2), 1.0)
	assert.InDelta(t, 1.0, zg.Sample(0.1, 2), 1e-12)
}

func TestCenteredAddScaledShapeMismatch(t *testing.T) {
	a := NewCentered(8, 8, 10, 10, ZeroGradient)
	b := NewCentered(16, 16, 10, 10, ZeroGradient)

	_, err := a.AddScaled(b, 1)
	assert.Error(t, err, "mixed resolutions require resampling")

	c := ResampleCentered(b, 8, 8)
	_, err = a.AddScaled(c, 1)
	assert.NoError(t, err)
}

func TestCenteredCentroid(t *testing.T) {
	g := NewCentered(10, 10, 10, 10, ZeroGradient)
	g.Set(2, 7, 1)
	x, y := g.Centroid()
	assert.InDelta(t, 2.5, x, 1e-12)
	assert.InDelta(t, 7.5, y, 1e-12)

	g.Set(4, 7, 1)
	x, y = g.Centroid()
	assert.InDelta(t, 3.5, x, 1e-12)
	assert.InDelta(t, 7.5, y, 1e-12)

	empty := NewCentered(10, 10, 10, 10, ZeroGradient)
	x, y = empty.Centroid()
	assert.InDelta(t, 5.0, x, 1e-12, "empty field centroid is the domain center")
	assert.InDelta(t, 5.0, y, 1e-12)
}

func TestResampleCenteredLinearField(t *testing.T) {
	g := linearField(40, 40, 20, 20, ZeroGradient)
	r := ResampleCentered(g, 25, 25)

	for i := 2; i < 23; i++ {
		for j := 2; j < 23; j++ {
			x, y := r.CellCenter(i, j)
			assert.InDelta(t, 2*x+3*y, r.At(i, j), 1e-12)
		}
	}
}

func TestSampleMinMax(t *testing.T) {
	g := NewCentered(4, 4, 4, 4, ZeroGradient)
	g.Set(1, 1, 2)
	g.Set(2, 1, -1)
	g.Set(1, 2, 5)
	g.Set(2, 2, 0)

	lo, hi := g.SampleMinMax(2, 2) // stencil is exactly those four cells
	assert.InDelta(t, -1.0, lo, 1e-12)
	assert.InDelta(t, 5.0, hi, 1e-12)
}

func TestIntegral(t *testing.T) {
	g := NewCentered(8, 4, 16, 16, ZeroGradient)
	for i := range g.Values {
		g.Values[i] = 0.5
	}
	// 0.5 everywhere over a 16x16 domain.
	assert.InDelta(t, 0.5*16*16, g.Integral(), 1e-12)
}
