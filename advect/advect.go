/*package advect implements transport of grid fields along a staggered
velocity field. Schemes are polymorphic so a stepper can swap them without
changing anything else: SemiLagrangian is the plain first-order
backtrace-and-interpolate scheme, MacCormack the predictor-corrector
refinement of it that cancels most of the truncation error. Both are
unconditionally stable for any time step.
*/
package advect

import (
	"github.com/fluidgrid/plume/grid"
)

// Scalar transports a cell-centered field along vel over dt.
type Scalar interface {
	AdvectScalar(s *grid.Centered, vel *grid.Staggered, dt float64) *grid.Centered
}

// Vector transports a staggered field along vel over dt. Self-advection
// passes the same field as both arguments.
type Vector interface {
	AdvectVector(v, vel *grid.Staggered, dt float64) *grid.Staggered
}

var (
	_ Scalar = SemiLagrangian{}
	_ Scalar = MacCormack{}
	_ Vector = SemiLagrangian{}
	_ Vector = MacCormack{}
)
