package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "plume.config")
	assert.NoError(t, os.WriteFile(fname, []byte(text), 0666))
	return fname
}

func TestReadExampleConfig(t *testing.T) {
	con, err := ReadConfig(writeConfig(t, ExampleConfig()))
	assert.NoError(t, err)

	sim := con.Simulation
	assert.Equal(t, 100.0, sim.DomainWidth)
	assert.Equal(t, 100.0, sim.DomainHeight)
	assert.Equal(t, 64, sim.VelocityCellsX)
	assert.Equal(t, 64, sim.VelocityCellsY)
	assert.Equal(t, 200, sim.DensityCellsX)
	assert.Equal(t, 200, sim.DensityCellsY)
	assert.Equal(t, 0.5, sim.Dt)
	assert.Equal(t, 10, sim.Frames)
	assert.Equal(t, 3, sim.Substeps)
	assert.Equal(t, 0.1, sim.Buoyancy)

	assert.Equal(t, 1e-3, con.Solver.Tolerance)
	assert.Equal(t, "plume_diagnostics.txt", con.Output.Diagnostics)
	assert.Equal(t, "plume_final.ckpt", con.Output.Checkpoint)

	assert.Len(t, con.Inflow, 1)
	main := con.Inflow["main"]
	assert.Equal(t, "main", main.Name)
	assert.Equal(t, 50.0, main.X)
	assert.Equal(t, 9.5, main.Y)
	assert.Equal(t, 5.0, main.Radius)
	assert.Equal(t, 0.2, main.Rate)

	inflows := con.Inflows()
	assert.Len(t, inflows, 1)
	assert.Equal(t, 0.2, inflows[0].Rate)

	s := con.InitialState()
	assert.Equal(t, 64, s.Velocity.Nx)
	assert.Equal(t, 200, s.Density.Nx)
	assert.Nil(t, s.Pressure)
}

func TestConfigDefaults(t *testing.T) {
	con, err := ReadConfig(writeConfig(t, `[Simulation]
DomainWidth = 50
DomainHeight = 80
VelocityCellsX = 16
VelocityCellsY = 16
DensityCellsX = 32
DensityCellsY = 32
Dt = 0.25
Frames = 4
`))
	assert.NoError(t, err)
	assert.Equal(t, 1, con.Simulation.Substeps)
	assert.Equal(t, 0.1, con.Simulation.Buoyancy)
	assert.Equal(t, 1e-3, con.Solver.Tolerance)
	assert.Equal(t, 0, con.Solver.MaxIterations)
	assert.Equal(t, "", con.Output.Diagnostics)
	assert.Len(t, con.Inflow, 0)
}

func TestInvalidConfigs(t *testing.T) {
	base := `[Simulation]
DomainWidth = 100
DomainHeight = 100
VelocityCellsX = 16
VelocityCellsY = 16
DensityCellsX = 32
DensityCellsY = 32
Dt = 0.5
Frames = 4
`
	bad := []string{
		// Missing domain extent.
		`[Simulation]
VelocityCellsX = 16
VelocityCellsY = 16
DensityCellsX = 32
DensityCellsY = 32
Dt = 0.5
Frames = 4
`,
		// Non-positive time step.
		`[Simulation]
DomainWidth = 100
DomainHeight = 100
VelocityCellsX = 16
VelocityCellsY = 16
DensityCellsX = 32
DensityCellsY = 32
Dt = -0.5
Frames = 4
`,
		// Source outside the domain.
		base + `[Inflow "off"]
X = 150
Y = 10
Radius = 5
Rate = 0.2
`,
		// Non-positive source radius.
		base + `[Inflow "flat"]
X = 50
Y = 10
Radius = 0
Rate = 0.2
`,
		// Negative solver tolerance.
		base + `[Solver]
Tolerance = -1e-3
`,
	}
	for i, text := range bad {
		_, err := ReadConfig(writeConfig(t, text))
		assert.Error(t, err, "config %d", i)
	}
}
