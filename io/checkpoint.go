package io

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/fluidgrid/plume"
	"github.com/fluidgrid/plume/grid"
)

/*
The checkpoint binary format is little endian throughout:
    |-- 1 --||-- ... 2 ... --||-- 3 --||-- 4 --||-- 5 --||-- 6 --|

    1 - (checkpointHeader) Magic number, format version, simulation time,
        domain extent, grid resolutions, density boundary condition, and a
        flag for whether a pressure field follows.
    2 - ([]float64) U face samples, (VelNx+1)*VelNy values, x-major.
    3 - ([]float64) V face samples, VelNx*(VelNy+1) values, x-major.
    4 - ([]float64) Density cell samples, DenNx*DenNy values, x-major.
    5 - ([]float64) Pressure cell samples, VelNx*VelNy values; only present
        when HasPressure is 1.
*/

const (
	checkpointMagic   = int64(0x504c554d453031) // "PLUME01"
	checkpointVersion = int64(1)
)

type checkpointHeader struct {
	Magic, Version int64
	Time           float64
	Width, Height  float64
	VelNx, VelNy   int64
	DenNx, DenNy   int64
	Boundary       int64
	HasPressure    int64
}

// WriteCheckpoint saves a state and its simulation time so a later run can
// resume from it.
func WriteCheckpoint(fname string, s plume.State, t float64) error {
	if s.Velocity == nil || s.Density == nil {
		return fmt.Errorf("checkpoint: state is missing velocity or density")
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	hd := checkpointHeader{
		Magic: checkpointMagic, Version: checkpointVersion,
		Time:  t,
		Width: s.Density.Width(), Height: s.Density.Height(),
		VelNx: int64(s.Velocity.Nx), VelNy: int64(s.Velocity.Ny),
		DenNx: int64(s.Density.Nx), DenNy: int64(s.Density.Ny),
		Boundary: int64(s.Density.Boundary),
	}
	if s.Pressure != nil {
		hd.HasPressure = 1
	}

	order := binary.LittleEndian
	if err := binary.Write(f, order, &hd); err != nil {
		return err
	}
	for _, block := range [][]float64{s.Velocity.U, s.Velocity.V, s.Density.Values} {
		if err := binary.Write(f, order, block); err != nil {
			return err
		}
	}
	if s.Pressure != nil {
		if err := binary.Write(f, order, s.Pressure.Values); err != nil {
			return err
		}
	}
	return nil
}

// ReadCheckpoint restores a state written by WriteCheckpoint, returning the
// state and the simulation time it was taken at.
func ReadCheckpoint(fname string) (plume.State, float64, error) {
	f, err := os.Open(fname)
	if err != nil {
		return plume.State{}, 0, err
	}
	defer f.Close()

	order := binary.LittleEndian
	hd := checkpointHeader{}
	if err := binary.Read(f, order, &hd); err != nil {
		return plume.State{}, 0, err
	}
	if hd.Magic != checkpointMagic {
		return plume.State{}, 0, fmt.Errorf(
			"checkpoint: %s is not a plume checkpoint file", fname,
		)
	}
	if hd.Version != checkpointVersion {
		return plume.State{}, 0, fmt.Errorf(
			"checkpoint: %s has format version %d, but version %d is required",
			fname, hd.Version, checkpointVersion,
		)
	}

	s := plume.InitialState(
		hd.Width, hd.Height,
		int(hd.VelNx), int(hd.VelNy), int(hd.DenNx), int(hd.DenNy),
	)
	s.Density.Boundary = grid.Boundary(hd.Boundary)

	for _, block := range [][]float64{s.Velocity.U, s.Velocity.V, s.Density.Values} {
		if err := binary.Read(f, order, block); err != nil {
			return plume.State{}, 0, err
		}
	}
	if hd.HasPressure == 1 {
		s.Pressure = grid.NewCentered(
			int(hd.VelNx), int(hd.VelNy), hd.Width, hd.Height, grid.ZeroGradient,
		)
		if err := binary.Read(f, order, s.Pressure.Values); err != nil {
			return plume.State{}, 0, err
		}
	}
	return s, hd.Time, nil
}
