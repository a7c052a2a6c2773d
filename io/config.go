/*package io handles the solver's file surfaces: gcfg configuration files,
binary state checkpoints, and the plain-text diagnostics table.
*/
package io

import (
	"fmt"

	"gopkg.in/gcfg.v1"

	"github.com/fluidgrid/plume"
	"github.com/fluidgrid/plume/geom"
)

// SimulationConfig is the [Simulation] section: domain extent, grid
// resolutions, and time stepping.
type SimulationConfig struct {
	// Required
	DomainWidth, DomainHeight      float64
	VelocityCellsX, VelocityCellsY int
	DensityCellsX, DensityCellsY   int
	Dt     float64
	Frames int

	// Optional
	Substeps int     // sub-steps per recorded frame, default 1
	Buoyancy float64 // density-to-force coupling, default 0.1
}

func (c *SimulationConfig) CheckInit() error {
	if c.DomainWidth <= 0 || c.DomainHeight <= 0 {
		return fmt.Errorf(
			"Need positive DomainWidth and DomainHeight, but got %g x %g.",
			c.DomainWidth, c.DomainHeight,
		)
	}
	if c.VelocityCellsX <= 0 || c.VelocityCellsY <= 0 {
		return fmt.Errorf(
			"Need positive VelocityCellsX and VelocityCellsY, but got %d x %d.",
			c.VelocityCellsX, c.VelocityCellsY,
		)
	}
	if c.DensityCellsX <= 0 || c.DensityCellsY <= 0 {
		return fmt.Errorf(
			"Need positive DensityCellsX and DensityCellsY, but got %d x %d.",
			c.DensityCellsX, c.DensityCellsY,
		)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("Need a positive Dt, but got %g.", c.Dt)
	}
	if c.Frames <= 0 {
		return fmt.Errorf("Need a positive Frames count, but got %d.", c.Frames)
	}
	if c.Substeps < 0 {
		return fmt.Errorf("Substeps must not be negative, but is %d.", c.Substeps)
	} else if c.Substeps == 0 {
		c.Substeps = 1
	}
	if c.Buoyancy == 0 {
		c.Buoyancy = 0.1
	}
	return nil
}

// InflowConfig is one [Inflow "name"] subsection: a spherical source
// region and its injection rate.
type InflowConfig struct {
	// Required
	X, Y, Radius float64
	Rate         float64

	// Optional
	Name string
}

func (c *InflowConfig) CheckInit(name string, width, height float64) error {
	if c.Radius <= 0 {
		return fmt.Errorf(
			"Need a positive Radius for Inflow '%s', but got %g.", name, c.Radius,
		)
	}
	if c.X < 0 || c.X >= width {
		return fmt.Errorf(
			"X center of Inflow '%s' must be in range [0, %g), but is %g.",
			name, width, c.X,
		)
	} else if c.Y < 0 || c.Y >= height {
		return fmt.Errorf(
			"Y center of Inflow '%s' must be in range [0, %g), but is %g.",
			name, height, c.Y,
		)
	}
	if c.Rate < 0 {
		return fmt.Errorf(
			"Rate of Inflow '%s' must not be negative, but is %g.", name, c.Rate,
		)
	}
	c.Name = name
	return nil
}

// SolverConfig is the [Solver] section for the pressure projection.
type SolverConfig struct {
	// Optional
	Tolerance     float64 // CG residual target, default 1e-3
	MaxIterations int     // default: one iteration per pressure unknown
}

func (c *SolverConfig) CheckInit() error {
	if c.Tolerance < 0 {
		return fmt.Errorf("Tolerance must not be negative, but is %g.", c.Tolerance)
	} else if c.Tolerance == 0 {
		c.Tolerance = 1e-3
	}
	if c.MaxIterations < 0 {
		return fmt.Errorf(
			"MaxIterations must not be negative, but is %d.", c.MaxIterations,
		)
	}
	return nil
}

// OutputConfig is the [Output] section. Empty paths disable the
// corresponding output.
type OutputConfig struct {
	// Optional
	Diagnostics string // per-frame diagnostics table
	Checkpoint  string // final state checkpoint
	InflowTable string // extra sources, whitespace table of x y radius rate
}

// Config is a fully parsed and validated configuration file.
type Config struct {
	Simulation SimulationConfig
	Solver     SolverConfig
	Output     OutputConfig
	Inflow     map[string]*InflowConfig
}

// ReadConfig parses and validates a gcfg configuration file.
func ReadConfig(fname string) (*Config, error) {
	con := &Config{}
	if err := gcfg.ReadFileInto(con, fname); err != nil {
		return nil, err
	}
	if err := con.Simulation.CheckInit(); err != nil {
		return nil, err
	}
	if err := con.Solver.CheckInit(); err != nil {
		return nil, err
	}
	for name, in := range con.Inflow {
		err := in.CheckInit(
			name, con.Simulation.DomainWidth, con.Simulation.DomainHeight,
		)
		if err != nil {
			return nil, err
		}
	}
	return con, nil
}

// Inflows converts the configured sources into solver inflows.
func (con *Config) Inflows() []plume.Inflow {
	inflows := make([]plume.Inflow, 0, len(con.Inflow))
	for _, c := range con.Inflow {
		inflows = append(inflows, plume.Inflow{
			Shape: geom.Sphere{X: c.X, Y: c.Y, Radius: c.Radius},
			Rate:  c.Rate,
		})
	}
	return inflows
}

// InitialState builds the zero-field triple the configuration describes.
func (con *Config) InitialState() plume.State {
	sim := &con.Simulation
	return plume.InitialState(
		sim.DomainWidth, sim.DomainHeight,
		sim.VelocityCellsX, sim.VelocityCellsY,
		sim.DensityCellsX, sim.DensityCellsY,
	)
}

// ExampleConfig returns a configuration file for the reference smoke-plume
// scenario.
func ExampleConfig() string {
	return `[Simulation]
DomainWidth = 100
DomainHeight = 100
VelocityCellsX = 64
VelocityCellsY = 64
DensityCellsX = 200
DensityCellsY = 200
Dt = 0.5
Frames = 10
Substeps = 3
Buoyancy = 0.1

[Inflow "main"]
X = 50
Y = 9.5
Radius = 5
Rate = 0.2

[Solver]
Tolerance = 1e-3

[Output]
Diagnostics = plume_diagnostics.txt
Checkpoint = plume_final.ckpt
`
}
