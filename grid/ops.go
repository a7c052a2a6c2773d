package grid

import (
	"fmt"
	"math"
)

// Divergence returns the cell-wise divergence of a staggered field,
// (U[i+1,j]-U[i,j])/Dx + (V[i,j+1]-V[i,j])/Dy, as a centered field.
func (g *Staggered) Divergence() *Centered {
	out := NewCentered(g.Nx, g.Ny, g.Width(), g.Height(), ZeroGradient)
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			div := (g.U[g.UIdx(i+1, j)]-g.U[g.UIdx(i, j)])/g.Dx +
				(g.V[g.VIdx(i, j+1)]-g.V[g.VIdx(i, j)])/g.Dy
			out.Values[out.Idx(i, j)] = div
		}
	}
	return out
}

// MaxDivergence returns the largest cell-wise |divergence|.
func (g *Staggered) MaxDivergence() float64 {
	maxDiv := 0.0
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			div := (g.U[g.UIdx(i+1, j)]-g.U[g.UIdx(i, j)])/g.Dx +
				(g.V[g.VIdx(i, j+1)]-g.V[g.VIdx(i, j)])/g.Dy
			if a := math.Abs(div); a > maxDiv {
				maxDiv = a
			}
		}
	}
	return maxDiv
}

// Vorticity returns the curl dv/dx - du/dy evaluated at cell centers with
// central differences of the cell-averaged components. Edge cells use their
// clamped neighbors.
func (g *Staggered) Vorticity() *Centered {
	out := NewCentered(g.Nx, g.Ny, g.Width(), g.Height(), ZeroGradient)
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			ie, iw := clamp(i+1, 0, g.Nx-1), clamp(i-1, 0, g.Nx-1)
			jn, js := clamp(j+1, 0, g.Ny-1), clamp(j-1, 0, g.Ny-1)
			dvdx := (g.CenterV(ie, j) - g.CenterV(iw, j)) /
				(float64(ie-iw) * g.Dx)
			dudy := (g.CenterU(i, jn) - g.CenterU(i, js)) /
				(float64(jn-js) * g.Dy)
			out.Values[out.Idx(i, j)] = dvdx - dudy
		}
	}
	return out
}

// ResampleToStaggered samples the scalar field s, scaled per component by
// (cx, cy), onto the faces of a staggered grid with nx x ny cells over the
// same domain. This is how a cell-centered quantity such as a buoyancy
// weight turns into a face-aligned force field, including across a
// resolution change.
func ResampleToStaggered(s *Centered, cx, cy float64, nx, ny int) *Staggered {
	out := NewStaggered(nx, ny, s.Width(), s.Height())
	if cx != 0 {
		for i := 0; i <= nx; i++ {
			for j := 0; j < ny; j++ {
				x, y := out.UPos(i, j)
				out.U[out.UIdx(i, j)] = cx * s.Sample(x, y)
			}
		}
	}
	if cy != 0 {
		for i := 0; i < nx; i++ {
			for j := 0; j <= ny; j++ {
				x, y := out.VPos(i, j)
				out.V[out.VIdx(i, j)] = cy * s.Sample(x, y)
			}
		}
	}
	return out
}

// ResampleCentered samples s onto a new centered grid with nx x ny cells
// over the same domain, keeping s's boundary condition.
func ResampleCentered(s *Centered, nx, ny int) *Centered {
	out := NewCentered(nx, ny, s.Width(), s.Height(), s.Boundary)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			x, y := out.CellCenter(i, j)
			out.Values[out.Idx(i, j)] = s.Sample(x, y)
		}
	}
	return out
}

// CheckSameDomain returns an error unless the two grids cover the same
// physical rectangle.
func CheckSameDomain(s *Centered, v *Staggered) error {
	if !almostEqual(s.Width(), v.Width()) || !almostEqual(s.Height(), v.Height()) {
		return fmt.Errorf(
			"grid: field domains differ: %gx%g vs %gx%g",
			s.Width(), s.Height(), v.Width(), v.Height(),
		)
	}
	return nil
}
