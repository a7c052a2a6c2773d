/*package grid provides the uniform rectangular grids that the solver's
fields live on: scalar samples at cell centers and staggered (MAC) vector
samples at cell faces. Grids are value-producing: every operation returns a
new field and leaves its inputs untouched.
*/
package grid

import (
	"fmt"
	"math"
)

// Boundary selects how a centered field extrapolates past the domain edge.
type Boundary int

const (
	// ZeroGradient clamps to the nearest interior sample (Neumann,
	// zero normal derivative).
	ZeroGradient Boundary = iota
	// ZeroValue treats everything outside the domain as zero (Dirichlet).
	ZeroValue
)

func (b Boundary) String() string {
	switch b {
	case ZeroGradient:
		return "zero-gradient"
	case ZeroValue:
		return "zero-value"
	}
	return fmt.Sprintf("Boundary(%d)", int(b))
}

// Centered is a scalar field sampled at cell centers on an Nx x Ny grid
// covering the rectangle [0, Nx*Dx] x [0, Ny*Dy]. Values are stored
// x-major: the sample at cell (i, j) is Values[i*Ny + j].
type Centered struct {
	Nx, Ny   int
	Dx, Dy   float64
	Boundary Boundary
	Values   []float64
}

// NewCentered returns a zeroed centered field with nx x ny cells spanning a
// width x height domain.
func NewCentered(nx, ny int, width, height float64, b Boundary) *Centered {
	return &Centered{
		Nx: nx, Ny: ny,
		Dx: width / float64(nx), Dy: height / float64(ny),
		Boundary: b,
		Values:   make([]float64, nx*ny),
	}
}

// Idx returns the flat index of cell (i, j).
func (g *Centered) Idx(i, j int) int { return i*g.Ny + j }

// At returns the sample at cell (i, j).
func (g *Centered) At(i, j int) float64 { return g.Values[i*g.Ny+j] }

// Set assigns the sample at cell (i, j).
func (g *Centered) Set(i, j int, v float64) { g.Values[i*g.Ny+j] = v }

// CellCenter returns the physical position of cell (i, j)'s center.
func (g *Centered) CellCenter(i, j int) (x, y float64) {
	return (float64(i) + 0.5) * g.Dx, (float64(j) + 0.5) * g.Dy
}

// Width and Height return the physical extent of the domain.
func (g *Centered) Width() float64  { return float64(g.Nx) * g.Dx }
func (g *Centered) Height() float64 { return float64(g.Ny) * g.Dy }

// Clone returns a deep copy of g.
func (g *Centered) Clone() *Centered {
	out := &Centered{
		Nx: g.Nx, Ny: g.Ny, Dx: g.Dx, Dy: g.Dy,
		Boundary: g.Boundary,
		Values:   make([]float64, len(g.Values)),
	}
	copy(out.Values, g.Values)
	return out
}

// ShapeEquals reports whether g and o share resolution and cell size.
func (g *Centered) ShapeEquals(o *Centered) bool {
	return g.Nx == o.Nx && g.Ny == o.Ny &&
		almostEqual(g.Dx, o.Dx) && almostEqual(g.Dy, o.Dy)
}

// SameDomain reports whether two grids cover the same physical rectangle,
// regardless of resolution.
func (g *Centered) SameDomain(o *Centered) bool {
	return almostEqual(g.Width(), o.Width()) &&
		almostEqual(g.Height(), o.Height())
}

// AddScaled returns g + a*o. The grids must match in shape.
func (g *Centered) AddScaled(o *Centered, a float64) (*Centered, error) {
	if !g.ShapeEquals(o) {
		return nil, fmt.Errorf(
			"grid: cannot add %dx%d field to %dx%d field without resampling",
			o.Nx, o.Ny, g.Nx, g.Ny,
		)
	}
	out := g.Clone()
	for i, v := range o.Values {
		out.Values[i] += a * v
	}
	return out, nil
}

// Scale returns a*g.
func (g *Centered) Scale(a float64) *Centered {
	out := g.Clone()
	for i := range out.Values {
		out.Values[i] *= a
	}
	return out
}

// Sum returns the sum of all samples. Multiply by Dx*Dy for the integral.
func (g *Centered) Sum() float64 {
	sum := 0.0
	for _, v := range g.Values {
		sum += v
	}
	return sum
}

// Integral returns the field integrated over the domain.
func (g *Centered) Integral() float64 { return g.Sum() * g.Dx * g.Dy }

// Centroid returns the mass-weighted mean position of the field, or the
// domain center if the field integrates to zero.
func (g *Centered) Centroid() (x, y float64) {
	var m, mx, my float64
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			v := g.Values[i*g.Ny+j]
			cx, cy := g.CellCenter(i, j)
			m += v
			mx += v * cx
			my += v * cy
		}
	}
	if m == 0 {
		return 0.5 * g.Width(), 0.5 * g.Height()
	}
	return mx / m, my / m
}

// Sample evaluates the field at an arbitrary physical position with
// bilinear interpolation. Positions outside the domain follow the field's
// boundary condition.
func (g *Centered) Sample(x, y float64) float64 {
	fx := x/g.Dx - 0.5
	fy := y/g.Dy - 0.5
	i0 := int(math.Floor(fx))
	j0 := int(math.Floor(fy))
	tx := fx - float64(i0)
	ty := fy - float64(j0)

	v00 := g.valueAt(i0, j0)
	v10 := g.valueAt(i0+1, j0)
	v01 := g.valueAt(i0, j0+1)
	v11 := g.valueAt(i0+1, j0+1)

	return (1-tx)*(1-ty)*v00 + tx*(1-ty)*v10 +
		(1-tx)*ty*v01 + tx*ty*v11
}

// SampleMinMax returns the smallest and largest of the four stencil values
// that Sample would interpolate at (x, y), boundary condition applied. The
// MacCormack limiter clamps its correction to this range.
func (g *Centered) SampleMinMax(x, y float64) (lo, hi float64) {
	i0 := int(math.Floor(x/g.Dx - 0.5))
	j0 := int(math.Floor(y/g.Dy - 0.5))
	lo = math.Inf(1)
	hi = math.Inf(-1)
	for di := 0; di <= 1; di++ {
		for dj := 0; dj <= 1; dj++ {
			v := g.valueAt(i0+di, j0+dj)
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

// valueAt reads cell (i, j), applying the boundary condition when the index
// falls outside the grid.
func (g *Centered) valueAt(i, j int) float64 {
	if i >= 0 && i < g.Nx && j >= 0 && j < g.Ny {
		return g.Values[i*g.Ny+j]
	}
	switch g.Boundary {
	case ZeroValue:
		return 0
	default: // ZeroGradient
		return g.Values[clamp(i, 0, g.Nx-1)*g.Ny+clamp(j, 0, g.Ny-1)]
	}
}

func clamp(i, lo, hi int) int {
	if i < lo {
		return lo
	}
	if i > hi {
		return hi
	}
	return i
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12*(1+math.Abs(a)+math.Abs(b))
}
