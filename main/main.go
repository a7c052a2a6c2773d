package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/fluidgrid/plume"
	pio "github.com/fluidgrid/plume/io"
)

var rootCmd = &cobra.Command{
	Use:   "plume",
	Short: "plume simulates buoyant smoke in an incompressible 2D flow",
	Long: `plume advances a smoke density field and a staggered velocity field
through MacCormack advection, soft-coverage source injection, buoyancy, and
a conjugate-gradient incompressibility projection, recording the full field
trajectory.`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation described by a configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		resume, err := cmd.Flags().GetString("resume")
		if err != nil {
			return err
		}
		return run(config, resume)
	},
}

var exampleConfigCmd = &cobra.Command{
	Use:   "example-config",
	Short: "Print a configuration file for the reference plume scenario",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(pio.ExampleConfig())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the solver version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(plume.Version)
	},
}

func init() {
	runCmd.Flags().String("config", "", "configuration file (required)")
	runCmd.Flags().String("resume", "", "checkpoint file to resume from")
	runCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(runCmd, exampleConfigCmd, versionCmd)
}

func run(config, resume string) error {
	con, err := pio.ReadConfig(config)
	if err != nil {
		return err
	}
	sim := &con.Simulation

	inflows := con.Inflows()
	if con.Output.InflowTable != "" {
		extra, err := plume.ReadInflowTable(con.Output.InflowTable)
		if err != nil {
			return err
		}
		inflows = append(inflows, extra...)
	}
	if len(inflows) == 0 {
		log.Println("No inflow sources configured; simulating decay only.")
	}

	stepper := plume.NewStepper(inflows, sim.Buoyancy, con.Solver.Tolerance)
	stepper.Project.MaxIterations = con.Solver.MaxIterations

	s0 := con.InitialState()
	t0 := 0.0
	if resume != "" {
		if s0, t0, err = pio.ReadCheckpoint(resume); err != nil {
			return err
		}
		log.Printf("Resuming from %s at t = %g", resume, t0)
	}

	log.Printf(
		"Running %d frames x %d sub-steps, dt = %g, velocity %dx%d, density %dx%d",
		sim.Frames, sim.Substeps, sim.Dt,
		sim.VelocityCellsX, sim.VelocityCellsY,
		sim.DensityCellsX, sim.DensityCellsY,
	)

	// Wrap the stepper to total the CG iterations each recorded frame
	// costs and to log progress.
	frameIters := make([]int, 0, sim.Frames)
	subCalls, subIters := 0, 0
	step := func(s plume.State, dt float64) (plume.State, error) {
		next, err := stepper.Step(s, dt)
		if err != nil {
			return plume.State{}, err
		}
		subCalls++
		subIters += stepper.LastSolve.Iterations
		if subCalls%sim.Substeps == 0 {
			frame := subCalls / sim.Substeps
			log.Printf(
				"frame %3d/%d: mass %.6g, max divergence %.3g, %d CG iterations",
				frame, sim.Frames, next.Density.Integral(),
				next.Velocity.MaxDivergence(), subIters,
			)
			frameIters = append(frameIters, subIters)
			subIters = 0
		}
		return next, nil
	}

	trj, err := plume.Iterate(step, s0, sim.Frames, sim.Substeps, sim.Dt)
	if err != nil {
		return err
	}

	if con.Output.Diagnostics != "" {
		rows := pio.Diagnose(trj, frameIters)
		if err := pio.WriteDiagnostics(con.Output.Diagnostics, rows); err != nil {
			return err
		}
		log.Printf("Wrote diagnostics to %s", con.Output.Diagnostics)
	}
	if con.Output.Checkpoint != "" {
		tEnd := t0 + float64(sim.Frames)*sim.Dt
		err := pio.WriteCheckpoint(con.Output.Checkpoint, trj.Final(), tEnd)
		if err != nil {
			return err
		}
		log.Printf("Wrote checkpoint to %s", con.Output.Checkpoint)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
