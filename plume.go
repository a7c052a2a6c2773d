/*package plume simulates a buoyant smoke plume in an incompressible 2D
flow. The core is a pure time-stepper over an immutable (velocity, density,
pressure) field triple: density is transported with flux-limited MacCormack
advection and fed by soft-coverage inflow sources, velocity self-advects
semi-Lagrangian style and picks up a buoyancy force proportional to the
density, and a conjugate-gradient pressure projection restores a
divergence-free velocity each step, warm-started from the previous step's
pressure.

Velocity and density may live at different grid resolutions; every
cross-field operation resamples explicitly.
*/
package plume

import (
	"github.com/fluidgrid/plume/grid"
)

// Version identifies the solver in checkpoints and CLI output.
const Version = "0.3.0"

// State is one time sample of the simulation: a staggered velocity field, a
// cell-centered density field, and the pressure field left behind by the
// most recent projection. Pressure is nil before the first step; the
// projection then starts from zero.
type State struct {
	Velocity *grid.Staggered
	Density  *grid.Centered
	Pressure *grid.Centered
}

// InitialState returns the zero-field triple for a domain of the given
// physical extent, with velocity on an nvx x nvy staggered grid and
// density on an ndx x ndy centered grid with zero-gradient boundaries.
func InitialState(width, height float64, nvx, nvy, ndx, ndy int) State {
	return State{
		Velocity: grid.NewStaggered(nvx, nvy, width, height),
		Density:  grid.NewCentered(ndx, ndy, width, height, grid.ZeroGradient),
	}
}
