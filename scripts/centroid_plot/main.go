package main

import (
	"log"
	"os"

	plt "github.com/phil-mansfield/pyplot"
	"github.com/phil-mansfield/table"
)

// Plots the plume centroid height and total mass against time from a
// diagnostics table written by plume run.
func main() {
	if len(os.Args) != 3 {
		log.Fatalf("Usage: %s diagnostics_file out.png", os.Args[0])
	}
	fname, out := os.Args[1], os.Args[2]

	// Columns: frame time mass max_div cent_x cent_y max_vort cg_iters.
	cols, err := table.ReadTable(fname, []int{1, 2, 5}, nil)
	if err != nil {
		log.Fatal(err.Error())
	}
	times, masses, centY := cols[0], cols[1], cols[2]

	plt.Reset()
	plt.Figure()
	plt.Plot(times, centY, "b", plt.LW(2))
	plt.Plot(times, centY, "ok")
	plt.XLabel("$t$", plt.FontSize(16))
	plt.YLabel("centroid $y$", plt.FontSize(16))
	plt.Title("Plume rise")
	plt.SaveFig(out)

	plt.Figure()
	plt.Plot(times, masses, "r", plt.LW(2))
	plt.XLabel("$t$", plt.FontSize(16))
	plt.YLabel("total mass", plt.FontSize(16))
	plt.SaveFig("mass_" + out)

	plt.Execute()
}
