package plume

import (
	"fmt"

	"github.com/ctessum/sparse"
)

// StepFunc advances a state by dt. Stepper.Step satisfies it; tests and
// callers may wrap it to observe each sub-step.
type StepFunc func(s State, dt float64) (State, error)

// Trajectory is the ordered record of a simulation run: every recorded
// state including the initial one, with its time stamp.
type Trajectory struct {
	Times  []float64
	States []State
}

// Iterate drives step for the given number of recorded frames. Each frame
// spans dt of simulated time, executed as substeps equal sub-steps of
// dt/substeps; only the state at the end of each frame is recorded, plus
// the initial state, giving frames+1 entries. substeps < 1 is treated
// as 1.
func Iterate(step StepFunc, s0 State, frames, substeps int, dt float64) (*Trajectory, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("plume: dt must be positive, got %g", dt)
	}
	if frames < 0 {
		return nil, fmt.Errorf("plume: frame count must not be negative, got %d", frames)
	}
	if substeps < 1 {
		substeps = 1
	}

	trj := &Trajectory{
		Times:  make([]float64, 0, frames+1),
		States: make([]State, 0, frames+1),
	}
	trj.Times = append(trj.Times, 0)
	trj.States = append(trj.States, s0)

	s := s0
	sub := dt / float64(substeps)
	for f := 0; f < frames; f++ {
		for k := 0; k < substeps; k++ {
			var err error
			if s, err = step(s, sub); err != nil {
				return nil, fmt.Errorf("frame %d sub-step %d: %w", f, k, err)
			}
		}
		trj.Times = append(trj.Times, float64(f+1)*dt)
		trj.States = append(trj.States, s)
	}
	return trj, nil
}

// Len returns the number of recorded time samples.
func (trj *Trajectory) Len() int { return len(trj.States) }

// Final returns the last recorded state.
func (trj *Trajectory) Final() State {
	return trj.States[len(trj.States)-1]
}

// DensityArray packs the density trajectory into a dense array of shape
// (time, x, y) for export and analysis.
func (trj *Trajectory) DensityArray() *sparse.DenseArray {
	if trj.Len() == 0 {
		return sparse.ZerosDense(0, 0, 0)
	}
	d0 := trj.States[0].Density
	out := sparse.ZerosDense(trj.Len(), d0.Nx, d0.Ny)
	for t, s := range trj.States {
		for i := 0; i < d0.Nx; i++ {
			for j := 0; j < d0.Ny; j++ {
				out.Set(s.Density.At(i, j), t, i, j)
			}
		}
	}
	return out
}

// PressureArray packs the pressure trajectory into a dense array of shape
// (time, x, y). The initial state usually has no pressure yet; its slice
// stays zero.
func (trj *Trajectory) PressureArray() *sparse.DenseArray {
	if trj.Len() == 0 {
		return sparse.ZerosDense(0, 0, 0)
	}
	v0 := trj.States[0].Velocity
	out := sparse.ZerosDense(trj.Len(), v0.Nx, v0.Ny)
	for t, s := range trj.States {
		if s.Pressure == nil {
			continue
		}
		for i := 0; i < v0.Nx; i++ {
			for j := 0; j < v0.Ny; j++ {
				out.Set(s.Pressure.At(i, j), t, i, j)
			}
		}
	}
	return out
}
