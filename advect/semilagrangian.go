package advect

import (
	"github.com/fluidgrid/plume/grid"
)

// SemiLagrangian is first-order backtrace advection: each sample position
// is traced backward along the velocity for dt and the source field is
// interpolated there.
type SemiLagrangian struct{}

func (SemiLagrangian) AdvectScalar(s *grid.Centered, vel *grid.Staggered, dt float64) *grid.Centered {
	out := s.Clone()
	parallelRange(0, s.Nx, func(i int) {
		for j := 0; j < s.Ny; j++ {
			x, y := s.CellCenter(i, j)
			u, v := vel.Sample(x, y)
			out.Values[out.Idx(i, j)] = s.Sample(x-dt*u, y-dt*v)
		}
	})
	return out
}

func (SemiLagrangian) AdvectVector(v, vel *grid.Staggered, dt float64) *grid.Staggered {
	out := v.Clone()
	parallelRange(0, v.Nx+1, func(i int) {
		for j := 0; j < v.Ny; j++ {
			x, y := v.UPos(i, j)
			au, av := vel.Sample(x, y)
			out.U[out.UIdx(i, j)] = v.SampleU(x-dt*au, y-dt*av)
		}
	})
	parallelRange(0, v.Nx, func(i int) {
		for j := 0; j <= v.Ny; j++ {
			x, y := v.VPos(i, j)
			au, av := vel.Sample(x, y)
			out.V[out.VIdx(i, j)] = v.SampleV(x-dt*au, y-dt*av)
		}
	})
	return out
}
