/*package solve contains the linear solver used for the pressure system:
matrix-free conjugate gradients over cell-vectors, and the
incompressibility projection built on top of it.
*/
package solve

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrNotConverged reports that an iterative solve hit its iteration cap
// before reaching tolerance. Callers must treat this as a numerical
// failure, not a usable result.
var ErrNotConverged = errors.New("solve: iterative solver did not converge")

// Stats describes a completed (or failed) solve.
type Stats struct {
	Iterations int
	Residual   float64
}

// CG solves A x = b for a symmetric positive (semi-)definite operator A
// supplied matrix-free.
type CG struct {
	// Tolerance is the absolute residual target: the solve stops once
	// ||r||_2 <= Tolerance, which also bounds every component of the
	// residual individually.
	Tolerance float64
	// MaxIterations caps the iteration count. Zero means one iteration
	// per unknown.
	MaxIterations int
}

// Solve runs conjugate gradients. apply must compute dst = A x. The
// initial contents of x are the warm start; the solution is written back
// into x.
func (cg CG) Solve(apply func(dst, x []float64), b, x []float64) (Stats, error) {
	n := len(b)
	if len(x) != n {
		return Stats{}, fmt.Errorf(
			"solve: guess length %d does not match system size %d", len(x), n,
		)
	}

	r := make([]float64, n)
	p := make([]float64, n)
	ap := make([]float64, n)

	apply(ap, x)
	copy(r, b)
	floats.AddScaled(r, -1, ap) // r = b - A x
	copy(p, r)

	stop := cg.Tolerance

	maxIter := cg.MaxIterations
	if maxIter <= 0 {
		maxIter = n
	}

	rr := floats.Dot(r, r)
	res := math.Sqrt(rr)
	for k := 0; k < maxIter; k++ {
		if res <= stop {
			return Stats{Iterations: k, Residual: res}, nil
		}
		apply(ap, p)
		pap := floats.Dot(p, ap)
		if pap == 0 {
			// Search direction annihilated by A; the residual cannot
			// shrink any further.
			break
		}
		alpha := rr / pap
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, ap)

		rrNext := floats.Dot(r, r)
		beta := rrNext / rr
		rr = rrNext
		res = math.Sqrt(rr)

		floats.Scale(beta, p)
		floats.Add(p, r) // p = r + beta*p
	}
	if res <= stop {
		return Stats{Iterations: maxIter, Residual: res}, nil
	}
	return Stats{Iterations: maxIter, Residual: res}, fmt.Errorf(
		"%w: residual %g > %g after %d iterations",
		ErrNotConverged, res, stop, maxIter,
	)
}
