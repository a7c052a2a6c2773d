package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fluidgrid/plume"
	"github.com/fluidgrid/plume/grid"
)

func checkpointState() plume.State {
	s := plume.InitialState(100, 80, 8, 6, 12, 10)
	for i := range s.Velocity.U {
		s.Velocity.U[i] = float64(i) * 0.25
	}
	for i := range s.Velocity.V {
		s.Velocity.V[i] = -float64(i) * 0.5
	}
	for i := range s.Density.Values {
		s.Density.Values[i] = float64(i % 7)
	}
	return s
}

func TestCheckpointRoundTrip(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "state.ckpt")
	s := checkpointState()
	s.Pressure = grid.NewCentered(8, 6, 100, 80, grid.ZeroGradient)
	for i := range s.Pressure.Values {
		s.Pressure.Values[i] = float64(i) - 3
	}

	assert.NoError(t, WriteCheckpoint(fname, s, 12.5))
	out, time, err := ReadCheckpoint(fname)
	assert.NoError(t, err)

	assert.Equal(t, 12.5, time)
	assert.Equal(t, s.Velocity.U, out.Velocity.U)
	assert.Equal(t, s.Velocity.V, out.Velocity.V)
	assert.Equal(t, s.Density.Values, out.Density.Values)
	assert.Equal(t, s.Density.Boundary, out.Density.Boundary)
	assert.Equal(t, s.Density.Dx, out.Density.Dx)
	assert.Equal(t, s.Pressure.Values, out.Pressure.Values)
}

func TestCheckpointWithoutPressure(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "state.ckpt")
	s := checkpointState()

	assert.NoError(t, WriteCheckpoint(fname, s, 0))
	out, _, err := ReadCheckpoint(fname)
	assert.NoError(t, err)
	assert.Nil(t, out.Pressure)
	assert.Equal(t, s.Density.Values, out.Density.Values)
}

func TestCheckpointRejectsForeignFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "not_a.ckpt")
	junk := make([]byte, 256)
	for i := range junk {
		junk[i] = byte(i)
	}
	assert.NoError(t, os.WriteFile(fname, junk, 0666))

	_, _, err := ReadCheckpoint(fname)
	assert.Error(t, err)
}

func TestCheckpointRejectsIncompleteState(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "state.ckpt")
	err := WriteCheckpoint(fname, plume.State{}, 0)
	assert.Error(t, err)
}
