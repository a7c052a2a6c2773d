package plume

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/table"

	"github.com/fluidgrid/plume/geom"
	"github.com/fluidgrid/plume/grid"
)

// Inflow is a fixed source region that injects density at a constant rate.
type Inflow struct {
	Shape geom.Geometry
	Rate  float64
}

// Coverage rasterizes the source onto g's cells: Rate times the soft
// fractional coverage of each cell, so cells the source boundary cuts
// through receive a partial weight rather than a hard 0/1.
func (in Inflow) Coverage(g *grid.Centered) *grid.Centered {
	out := grid.NewCentered(g.Nx, g.Ny, g.Width(), g.Height(), g.Boundary)
	r := 0.5 * math.Hypot(g.Dx, g.Dy) // cell bounding radius
	for i := 0; i < g.Nx; i++ {
		for j := 0; j < g.Ny; j++ {
			x, y := g.CellCenter(i, j)
			out.Values[out.Idx(i, j)] =
				in.Rate * geom.FractionInside(in.Shape, x, y, r)
		}
	}
	return out
}

// SumCoverage rasterizes several sources onto one field.
func SumCoverage(inflows []Inflow, g *grid.Centered) *grid.Centered {
	out := grid.NewCentered(g.Nx, g.Ny, g.Width(), g.Height(), g.Boundary)
	for _, in := range inflows {
		cov := in.Coverage(g)
		for i, v := range cov.Values {
			out.Values[i] += v
		}
	}
	return out
}

// ReadInflowTable reads sources from a whitespace-separated text table with
// columns x, y, radius, rate. Lines starting with '#' are comments.
func ReadInflowTable(fname string) ([]Inflow, error) {
	cols, err := table.ReadTable(fname, []int{0, 1, 2, 3}, nil)
	if err != nil {
		return nil, err
	}
	xs, ys, radii, rates := cols[0], cols[1], cols[2], cols[3]

	inflows := make([]Inflow, len(xs))
	for i := range xs {
		if radii[i] <= 0 {
			return nil, fmt.Errorf(
				"inflow %d: radius must be positive, got %g", i, radii[i],
			)
		}
		inflows[i] = Inflow{
			Shape: geom.Sphere{X: xs[i], Y: ys[i], Radius: radii[i]},
			Rate:  rates[i],
		}
	}
	return inflows, nil
}
