package advect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fluidgrid/plume/grid"
)

// gaussianBlob places a smooth bump at (cx, cy) with width sigma.
func gaussianBlob(nx, ny int, w, h, cx, cy, sigma float64) *grid.Centered {
	g := grid.NewCentered(nx, ny, w, h, grid.ZeroGradient)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			x, y := g.CellCenter(i, j)
			r2 := (x-cx)*(x-cx) + (y-cy)*(y-cy)
			g.Set(i, j, math.Exp(-r2/(2*sigma*sigma)))
		}
	}
	return g
}

// uniformFlow returns a staggered field with constant velocity (u, v).
func uniformFlow(nx, ny int, w, h, u, v float64) *grid.Staggered {
	out := grid.NewStaggered(nx, ny, w, h)
	for i := range out.U {
		out.U[i] = u
	}
	for i := range out.V {
		out.V[i] = v
	}
	return out
}

func TestSemiLagrangianZeroVelocityIsIdentity(t *testing.T) {
	s := gaussianBlob(32, 32, 32, 32, 16, 16, 4)
	vel := grid.NewStaggered(32, 32, 32, 32)

	out := SemiLagrangian{}.AdvectScalar(s, vel, 0.7)
	for i := range s.Values {
		assert.InDelta(t, s.Values[i], out.Values[i], 1e-12)
	}
}

func TestSemiLagrangianTranslatesBlob(t *testing.T) {
	s := gaussianBlob(64, 64, 64, 64, 20, 32, 5)
	vel := uniformFlow(64, 64, 64, 64, 2, 0)
	dt := 1.5

	out := SemiLagrangian{}.AdvectScalar(s, vel, dt)
	x0, y0 := s.Centroid()
	x1, y1 := out.Centroid()
	assert.InDelta(t, x0+2*dt, x1, 0.05, "blob moves downstream by u*dt")
	assert.InDelta(t, y0, y1, 0.05, "no cross-stream drift")
}

func TestSemiLagrangianMassConservation(t *testing.T) {
	// With zero-gradient boundaries, smooth fields away from the edges,
	// and no sources, transport changes total mass only through
	// interpolation error.
	s := gaussianBlob(100, 100, 100, 100, 50, 50, 8)
	vel := uniformFlow(100, 100, 100, 100, 1, 0.5)

	before := s.Integral()
	out := s
	for k := 0; k < 4; k++ {
		out = SemiLagrangian{}.AdvectScalar(out, vel, 0.5)
	}
	after := out.Integral()
	assert.InDelta(t, before, after, 1e-3*before)
}

func TestMacCormackSharperThanSemiLagrangian(t *testing.T) {
	blob := gaussianBlob(64, 64, 64, 64, 20, 20, 3)
	vel := uniformFlow(64, 64, 64, 64, 1.1, 0.9)

	sl, mc := blob, blob
	for k := 0; k < 6; k++ {
		sl = SemiLagrangian{}.AdvectScalar(sl, vel, 0.7)
		mc = MacCormack{}.AdvectScalar(mc, vel, 0.7)
	}

	peak := func(g *grid.Centered) float64 {
		m := 0.0
		for _, v := range g.Values {
			if v > m {
				m = v
			}
		}
		return m
	}
	assert.Greater(t, peak(mc), peak(sl),
		"the corrector should retain more of the peak than plain backtracing")
	assert.LessOrEqual(t, peak(mc), 1.0+1e-12,
		"the limiter must not overshoot the initial maximum")
}

func TestMacCormackKeepsNonNegative(t *testing.T) {
	blob := gaussianBlob(48, 48, 48, 48, 24, 10, 3)
	vel := uniformFlow(48, 48, 48, 48, 0.8, 1.3)

	out := blob
	for k := 0; k < 8; k++ {
		out = MacCormack{}.AdvectScalar(out, vel, 0.6)
	}
	for i, v := range out.Values {
		assert.GreaterOrEqual(t, v, 0.0, "cell %d went negative", i)
	}
}

func TestVectorSelfAdvectionOfUniformFlow(t *testing.T) {
	vel := uniformFlow(32, 32, 32, 32, 1.5, -0.5)

	// A uniform field is a fixed point of self-advection.
	for _, scheme := range []Vector{SemiLagrangian{}, MacCormack{}} {
		out := scheme.AdvectVector(vel, vel, 0.9)
		for i := range out.U {
			assert.InDelta(t, 1.5, out.U[i], 1e-12)
		}
		for i := range out.V {
			assert.InDelta(t, -0.5, out.V[i], 1e-12)
		}
	}
}

func BenchmarkSemiLagrangianScalar(b *testing.B) {
	s := gaussianBlob(200, 200, 100, 100, 50, 50, 10)
	vel := uniformFlow(64, 64, 100, 100, 1, 1)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		SemiLagrangian{}.AdvectScalar(s, vel, 0.5)
	}
}

func BenchmarkMacCormackScalar(b *testing.B) {
	s := gaussianBlob(200, 200, 100, 100, 50, 50, 10)
	vel := uniformFlow(64, 64, 100, 100, 1, 1)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		MacCormack{}.AdvectScalar(s, vel, 0.5)
	}
}
