package solve

import (
	"fmt"

	"github.com/fluidgrid/plume/grid"
)

// Projection removes the divergent component of a staggered velocity field
// by solving a pressure Poisson system and subtracting the pressure
// gradient. The domain walls are no-through-flow: boundary-normal face
// velocities are pinned to zero and the pressure obeys a zero normal
// derivative there, which makes the pure-Neumann system solvable.
type Projection struct {
	Tolerance     float64
	MaxIterations int
}

// Project returns a divergence-free copy of v together with the pressure
// field that achieved it. guess, if non-nil, warm-starts the conjugate
// gradient solve; it must match v's cell resolution. The returned pressure
// is the natural warm start for the next call.
func (pr Projection) Project(v *grid.Staggered, guess *grid.Centered) (*grid.Staggered, *grid.Centered, Stats, error) {
	nx, ny := v.Nx, v.Ny

	pressure := grid.NewCentered(nx, ny, v.Width(), v.Height(), grid.ZeroGradient)
	if guess != nil {
		if guess.Nx != nx || guess.Ny != ny {
			return nil, nil, Stats{}, fmt.Errorf(
				"solve: pressure guess is %dx%d but velocity grid has %dx%d cells",
				guess.Nx, guess.Ny, nx, ny,
			)
		}
		copy(pressure.Values, guess.Values)
	}

	out := v.Clone()
	closeWalls(out)

	// Right-hand side: b = -div(v), mean-subtracted so it stays in the
	// range of the Neumann Laplacian.
	div := out.Divergence()
	b := make([]float64, nx*ny)
	mean := div.Sum() / float64(nx*ny)
	for i, d := range div.Values {
		b[i] = -(d - mean)
	}

	cg := CG{Tolerance: pr.Tolerance, MaxIterations: pr.MaxIterations}
	stats, err := cg.Solve(pr.negLaplacian(out), b, pressure.Values)
	if err != nil {
		return nil, nil, stats, fmt.Errorf("pressure solve: %w", err)
	}

	// Subtract the pressure gradient from the interior faces. Wall-normal
	// faces see a zero pressure gradient and stay pinned.
	invDx := 1.0 / out.Dx
	invDy := 1.0 / out.Dy
	for i := 1; i < nx; i++ {
		for j := 0; j < ny; j++ {
			out.U[out.UIdx(i, j)] -=
				(pressure.At(i, j) - pressure.At(i-1, j)) * invDx
		}
	}
	for i := 0; i < nx; i++ {
		for j := 1; j < ny; j++ {
			out.V[out.VIdx(i, j)] -=
				(pressure.At(i, j) - pressure.At(i, j-1)) * invDy
		}
	}

	return out, pressure, stats, nil
}

// negLaplacian returns the matrix-free operator dst = -L x, where L is the
// 5-point Laplacian on v's cell grid with zero-flux (Neumann) boundaries.
// -L is positive semidefinite, which is what CG needs.
func (pr Projection) negLaplacian(v *grid.Staggered) func(dst, x []float64) {
	nx, ny := v.Nx, v.Ny
	idx2 := 1.0 / (v.Dx * v.Dx)
	idy2 := 1.0 / (v.Dy * v.Dy)
	return func(dst, x []float64) {
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				c := x[i*ny+j]
				acc := 0.0
				if i > 0 {
					acc += (c - x[(i-1)*ny+j]) * idx2
				}
				if i < nx-1 {
					acc += (c - x[(i+1)*ny+j]) * idx2
				}
				if j > 0 {
					acc += (c - x[i*ny+j-1]) * idy2
				}
				if j < ny-1 {
					acc += (c - x[i*ny+j+1]) * idy2
				}
				dst[i*ny+j] = acc
			}
		}
	}
}

// closeWalls zeroes the boundary-normal face velocities, enforcing the
// no-through-flow condition the pressure boundary assumes.
func closeWalls(v *grid.Staggered) {
	for j := 0; j < v.Ny; j++ {
		v.U[v.UIdx(0, j)] = 0
		v.U[v.UIdx(v.Nx, j)] = 0
	}
	for i := 0; i < v.Nx; i++ {
		v.V[v.VIdx(i, 0)] = 0
		v.V[v.VIdx(i, v.Ny)] = 0
	}
}
