package plume

import (
	"fmt"

	"github.com/fluidgrid/plume/advect"
	"github.com/fluidgrid/plume/grid"
	"github.com/fluidgrid/plume/solve"
)

// Stepper advances a State by one time step. The transport schemes and the
// projection are plain fields so callers can substitute variants; the zero
// values fall back to MacCormack density transport and semi-Lagrangian
// velocity transport, matching the reference setup.
type Stepper struct {
	// Density and Velocity are the transport schemes for the two fields.
	Density  advect.Scalar
	Velocity advect.Vector

	// Project removes divergence after the force and advection updates.
	Project solve.Projection

	// Buoyancy couples density to an upward body force b = (0, Buoyancy*s).
	Buoyancy float64

	// Inflows inject density once per Step call, independent of dt.
	Inflows []Inflow

	// LastSolve holds the statistics of the most recent pressure solve.
	LastSolve solve.Stats

	coverage *grid.Centered // Inflows rasterized onto the density grid
}

// NewStepper returns a stepper with the reference configuration: MacCormack
// density advection, semi-Lagrangian velocity advection, and a CG
// projection with the given residual tolerance.
func NewStepper(inflows []Inflow, buoyancy, tolerance float64) *Stepper {
	return &Stepper{
		Density:  advect.MacCormack{},
		Velocity: advect.SemiLagrangian{},
		Project:  solve.Projection{Tolerance: tolerance},
		Buoyancy: buoyancy,
		Inflows:  inflows,
	}
}

// Step advances the triple by dt and returns the new triple. Inputs are
// never modified. The returned velocity is divergence-free to the
// projection tolerance and the returned pressure is the warm start for the
// next call.
func (st *Stepper) Step(s State, dt float64) (State, error) {
	switch {
	case dt <= 0:
		return State{}, fmt.Errorf("plume: dt must be positive, got %g", dt)
	case s.Velocity == nil || s.Density == nil:
		return State{}, fmt.Errorf("plume: state is missing velocity or density")
	}
	if err := grid.CheckSameDomain(s.Density, s.Velocity); err != nil {
		return State{}, err
	}

	// Density transport plus source injection.
	density := st.densityScheme().AdvectScalar(s.Density, s.Velocity, dt)
	density, err := density.AddScaled(st.coverageFor(s.Density), 1)
	if err != nil {
		return State{}, err
	}

	// Buoyancy sampled from the density resolution down to the staggered
	// velocity faces.
	buoyancy := grid.ResampleToStaggered(
		density, 0, st.Buoyancy, s.Velocity.Nx, s.Velocity.Ny,
	)

	// Velocity self-advection, then the body force.
	vel := st.velocityScheme().AdvectVector(s.Velocity, s.Velocity, dt)
	vel, err = vel.AddScaled(buoyancy, dt)
	if err != nil {
		return State{}, err
	}

	vel, pressure, stats, err := st.Project.Project(vel, s.Pressure)
	st.LastSolve = stats
	if err != nil {
		return State{}, err
	}

	return State{Velocity: vel, Density: density, Pressure: pressure}, nil
}

func (st *Stepper) densityScheme() advect.Scalar {
	if st.Density != nil {
		return st.Density
	}
	return advect.MacCormack{}
}

func (st *Stepper) velocityScheme() advect.Vector {
	if st.Velocity != nil {
		return st.Velocity
	}
	return advect.SemiLagrangian{}
}

// coverageFor caches the rasterized sources for the density grid shape in
// use. A stepper is therefore not safe for concurrent Step calls, which
// the synchronous stepping model never makes.
func (st *Stepper) coverageFor(density *grid.Centered) *grid.Centered {
	if st.coverage == nil || !st.coverage.ShapeEquals(density) {
		st.coverage = SumCoverage(st.Inflows, density)
	}
	return st.coverage
}
