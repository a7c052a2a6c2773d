/*package geom provides the analytic geometry used to describe source
regions. The only shape a smoke source needs is a sphere (a disc in 2D),
but coverage evaluation goes through the Geometry interface so sources of
other shapes can be added without touching the solver.
*/
package geom

import (
	"math"
)

// Geometry is a closed region that can report signed distance to its
// surface. Negative distances are inside.
type Geometry interface {
	SignedDistance(x, y float64) float64
	Contains(x, y float64) bool
}

var (
	_ Geometry = Sphere{}
)

// Sphere is a disc with a center and radius.
type Sphere struct {
	X, Y, Radius float64
}

// SignedDistance returns the distance from (x, y) to the sphere surface,
// negative inside. Very close to the center the distance saturates so its
// gradient stays finite.
func (s Sphere) SignedDistance(x, y float64) float64 {
	dx, dy := x-s.X, y-s.Y
	d2 := dx*dx + dy*dy
	if min := s.Radius * 1e-2; d2 < min {
		d2 = min
	}
	return math.Sqrt(d2) - s.Radius
}

// Contains reports whether (x, y) lies inside the sphere.
func (s Sphere) Contains(x, y float64) bool {
	dx, dy := x-s.X, y-s.Y
	return dx*dx+dy*dy <= s.Radius*s.Radius
}

// FractionInside approximates how much of a cell centered at (x, y) with
// bounding radius r the geometry covers, as a weight in [0, 1]. Cells well
// inside get 1, cells well outside 0, and cells straddling the surface a
// fractional weight proportional to how deep the surface cuts through
// them. This is the "soft" alternative to a binary inside/outside mask.
func FractionInside(g Geometry, x, y, r float64) float64 {
	frac := 0.5 - g.SignedDistance(x, y)/r
	if frac < 0 {
		return 0
	}
	if frac > 1 {
		return 1
	}
	return frac
}
