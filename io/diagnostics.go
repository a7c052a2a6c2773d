package io

import (
	"fmt"
	"math"
	"os"

	"github.com/fluidgrid/plume"
)

// FrameDiagnostics summarizes one recorded frame: the quantities worth
// checking against the physics (mass budget, residual divergence, plume
// position) plus the pressure-solve effort when the caller tracked it.
type FrameDiagnostics struct {
	Frame         int
	Time          float64
	Mass          float64 // integrated density
	MaxDivergence float64
	CentroidX     float64
	CentroidY     float64
	MaxVorticity  float64
	CGIterations  int // -1 when unknown
}

// Diagnose computes per-frame diagnostics for a trajectory. iters, when
// non-nil, supplies the pressure-solve iteration count per recorded frame
// (excluding the initial state).
func Diagnose(trj *plume.Trajectory, iters []int) []FrameDiagnostics {
	rows := make([]FrameDiagnostics, trj.Len())
	for f, s := range trj.States {
		cx, cy := s.Density.Centroid()
		row := FrameDiagnostics{
			Frame:         f,
			Time:          trj.Times[f],
			Mass:          s.Density.Integral(),
			MaxDivergence: s.Velocity.MaxDivergence(),
			CentroidX:     cx,
			CentroidY:     cy,
			CGIterations:  -1,
		}
		for _, w := range s.Velocity.Vorticity().Values {
			if a := math.Abs(w); a > row.MaxVorticity {
				row.MaxVorticity = a
			}
		}
		if f > 0 && iters != nil && f-1 < len(iters) {
			row.CGIterations = iters[f-1]
		}
		rows[f] = row
	}
	return rows
}

// WriteDiagnostics writes the diagnostics as a whitespace-separated table
// with a commented header line, readable by table.ReadTable.
func WriteDiagnostics(fname string, rows []FrameDiagnostics) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(
		f, "# %6s %10s %14s %14s %10s %10s %14s %8s\n",
		"frame", "time", "mass", "max_div",
		"cent_x", "cent_y", "max_vort", "cg_iters",
	)
	if err != nil {
		return err
	}
	for _, r := range rows {
		_, err = fmt.Fprintf(
			f, "  %6d %10.4f %14.6g %14.6g %10.4f %10.4f %14.6g %8d\n",
			r.Frame, r.Time, r.Mass, r.MaxDivergence,
			r.CentroidX, r.CentroidY, r.MaxVorticity, r.CGIterations,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
