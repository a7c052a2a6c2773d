package advect

import (
	"github.com/fluidgrid/plume/grid"
)

// MacCormack runs a semi-Lagrangian predictor forward, a second pass
// backward, and uses half their disagreement to estimate and cancel the
// truncation error. The corrected value is clamped to the extrema of the
// source samples around the back-traced point, which keeps the scheme from
// overshooting near sharp gradients and keeps non-negative fields
// non-negative.
type MacCormack struct {
	sl SemiLagrangian
}

func (mc MacCormack) AdvectScalar(s *grid.Centered, vel *grid.Staggered, dt float64) *grid.Centered {
	forward := mc.sl.AdvectScalar(s, vel, dt)
	backward := mc.sl.AdvectScalar(forward, vel, -dt)

	out := forward.Clone()
	parallelRange(0, s.Nx, func(i int) {
		for j := 0; j < s.Ny; j++ {
			idx := s.Idx(i, j)
			corrected := forward.Values[idx] +
				0.5*(s.Values[idx]-backward.Values[idx])

			x, y := s.CellCenter(i, j)
			u, v := vel.Sample(x, y)
			lo, hi := s.SampleMinMax(x-dt*u, y-dt*v)
			if corrected < lo {
				corrected = lo
			} else if corrected > hi {
				corrected = hi
			}
			out.Values[idx] = corrected
		}
	})
	return out
}

func (mc MacCormack) AdvectVector(v, vel *grid.Staggered, dt float64) *grid.Staggered {
	forward := mc.sl.AdvectVector(v, vel, dt)
	backward := mc.sl.AdvectVector(forward, vel, -dt)

	out := forward.Clone()
	parallelRange(0, v.Nx+1, func(i int) {
		for j := 0; j < v.Ny; j++ {
			idx := v.UIdx(i, j)
			corrected := forward.U[idx] + 0.5*(v.U[idx]-backward.U[idx])

			x, y := v.UPos(i, j)
			au, av := vel.Sample(x, y)
			lo, hi := v.SampleUMinMax(x-dt*au, y-dt*av)
			if corrected < lo {
				corrected = lo
			} else if corrected > hi {
				corrected = hi
			}
			out.U[idx] = corrected
		}
	})
	parallelRange(0, v.Nx, func(i int) {
		for j := 0; j <= v.Ny; j++ {
			idx := v.VIdx(i, j)
			corrected := forward.V[idx] + 0.5*(v.V[idx]-backward.V[idx])

			x, y := v.VPos(i, j)
			au, av := vel.Sample(x, y)
			lo, hi := v.SampleVMinMax(x-dt*au, y-dt*av)
			if corrected < lo {
				corrected = lo
			} else if corrected > hi {
				corrected = hi
			}
			out.V[idx] = corrected
		}
	})
	return out
}
