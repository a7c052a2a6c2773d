package grid

import (
	"fmt"
	"math"
)

// Staggered is a vector field on a MAC grid with Nx x Ny cells. The x
// component U is sampled on vertical faces, (Nx+1) x Ny values at positions
// (i*Dx, (j+0.5)*Dy); the y component V on horizontal faces, Nx x (Ny+1)
// values at ((i+0.5)*Dx, j*Dy). Storage is x-major like Centered.
type Staggered struct {
	Nx, Ny int
	Dx, Dy float64
	U, V   []float64
}

// NewStaggered returns a zeroed staggered field with nx x ny cells spanning
// a width x height domain.
func NewStaggered(nx, ny int, width, height float64) *Staggered {
	return &Staggered{
		Nx: nx, Ny: ny,
		Dx: width / float64(nx), Dy: height / float64(ny),
		U: make([]float64, (nx+1)*ny),
		V: make([]float64, nx*(ny+1)),
	}
}

// UIdx returns the flat index of the U sample on face (i, j), i in [0, Nx].
func (g *Staggered) UIdx(i, j int) int { return i*g.Ny + j }

// VIdx returns the flat index of the V sample on face (i, j), j in [0, Ny].
func (g *Staggered) VIdx(i, j int) int { return i*(g.Ny+1) + j }

// UPos returns the physical position of the U sample on face (i, j).
func (g *Staggered) UPos(i, j int) (x, y float64) {
	return float64(i) * g.Dx, (float64(j) + 0.5) * g.Dy
}

// VPos returns the physical position of the V sample on face (i, j).
func (g *Staggered) VPos(i, j int) (x, y float64) {
	return (float64(i) + 0.5) * g.Dx, float64(j) * g.Dy
}

func (g *Staggered) Width() float64  { return float64(g.Nx) * g.Dx }
func (g *Staggered) Height() float64 { return float64(g.Ny) * g.Dy }

// Clone returns a deep copy of g.
func (g *Staggered) Clone() *Staggered {
	out := &Staggered{
		Nx: g.Nx, Ny: g.Ny, Dx: g.Dx, Dy: g.Dy,
		U: make([]float64, len(g.U)),
		V: make([]float64, len(g.V)),
	}
	copy(out.U, g.U)
	copy(out.V, g.V)
	return out
}

// ShapeEquals reports whether g and o share resolution and cell size.
func (g *Staggered) ShapeEquals(o *Staggered) bool {
	return g.Nx == o.Nx && g.Ny == o.Ny &&
		almostEqual(g.Dx, o.Dx) && almostEqual(g.Dy, o.Dy)
}

// AddScaled returns g + a*o. The grids must match in shape.
func (g *Staggered) AddScaled(o *Staggered, a float64) (*Staggered, error) {
	if !g.ShapeEquals(o) {
		return nil, fmt.Errorf(
			"grid: cannot add %dx%d staggered field to %dx%d staggered field",
			o.Nx, o.Ny, g.Nx, g.Ny,
		)
	}
	out := g.Clone()
	for i, v := range o.U {
		out.U[i] += a * v
	}
	for i, v := range o.V {
		out.V[i] += a * v
	}
	return out, nil
}

// SampleU bilinearly interpolates the U component at a physical position.
// Positions beyond the outermost faces clamp to them, which extends the
// wall value outward.
func (g *Staggered) SampleU(x, y float64) float64 {
	fx := x / g.Dx
	fy := y/g.Dy - 0.5
	return bilinearClamped(g.U, g.Nx+1, g.Ny, fx, fy)
}

// SampleV bilinearly interpolates the V component at a physical position.
func (g *Staggered) SampleV(x, y float64) float64 {
	fx := x/g.Dx - 0.5
	fy := y / g.Dy
	return bilinearClamped(g.V, g.Nx, g.Ny+1, fx, fy)
}

// Sample returns both velocity components at a physical position.
func (g *Staggered) Sample(x, y float64) (u, v float64) {
	return g.SampleU(x, y), g.SampleV(x, y)
}

// SampleUMinMax returns the extrema of the four U stencil values at (x, y).
func (g *Staggered) SampleUMinMax(x, y float64) (lo, hi float64) {
	return stencilMinMax(g.U, g.Nx+1, g.Ny, x/g.Dx, y/g.Dy-0.5)
}

// SampleVMinMax returns the extrema of the four V stencil values at (x, y).
func (g *Staggered) SampleVMinMax(x, y float64) (lo, hi float64) {
	return stencilMinMax(g.V, g.Nx, g.Ny+1, x/g.Dx-0.5, y/g.Dy)
}

func stencilMinMax(vals []float64, nx, ny int, fx, fy float64) (lo, hi float64) {
	i0 := int(math.Floor(fx))
	j0 := int(math.Floor(fy))
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for di := 0; di <= 1; di++ {
		for dj := 0; dj <= 1; dj++ {
			v := vals[clamp(i0+di, 0, nx-1)*ny+clamp(j0+dj, 0, ny-1)]
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

// CenterU and CenterV average the face samples surrounding cell (i, j).
func (g *Staggered) CenterU(i, j int) float64 {
	return 0.5 * (g.U[g.UIdx(i, j)] + g.U[g.UIdx(i+1, j)])
}

func (g *Staggered) CenterV(i, j int) float64 {
	return 0.5 * (g.V[g.VIdx(i, j)] + g.V[g.VIdx(i, j+1)])
}

// MaxSpeed returns the largest |u|+|v| over all cells, the quantity the CFL
// condition limits.
func (g *Staggered) MaxSpeed() float64 {
	maxSpeed := 0.0
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			s := math.Abs(g.CenterU(i, j)) + math.Abs(g.CenterV(i, j))
			if s > maxSpeed {
				maxSpeed = s
			}
		}
	}
	return maxSpeed
}

// bilinearClamped interpolates an nx x ny lattice at fractional index
// (fx, fy), clamping the stencil to the lattice. vals is x-major.
func bilinearClamped(vals []float64, nx, ny int, fx, fy float64) float64 {
	i0 := int(math.Floor(fx))
	j0 := int(math.Floor(fy))
	tx := fx - float64(i0)
	ty := fy - float64(j0)

	at := func(i, j int) float64 {
		return vals[clamp(i, 0, nx-1)*ny+clamp(j, 0, ny-1)]
	}

	return (1-tx)*(1-ty)*at(i0, j0) + tx*(1-ty)*at(i0+1, j0) +
		(1-tx)*ty*at(i0, j0+1) + tx*ty*at(i0+1, j0+1)
}
