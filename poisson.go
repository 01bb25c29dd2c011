package caproc

import "math"

// DefaultTolerance is the convergence tolerance for LambdaMax when the
// caller passes tol ≤ 0. The stop condition is relative-plus-absolute,
// (hi − lo) < tol·(1 + lo), so it stays meaningful near zero and scales
// with the answer for large capacities.
const DefaultTolerance = 1e-8

// Fixed iteration budgets for the λ_max search. Both loops are hard-capped
// so every call terminates even for δ arbitrarily close to 1 and large C.
const (
	maxBracketSteps = 80  // Doublings of hi while still δ-safe
	maxBisectSteps  = 80  // Bisection refinements inside the bracket
	bracketCeiling  = 1e6 // hi never grows past this rate
)

// PoissonCDF returns P(N ≤ k) for N ~ Poisson(lambda).
//
// Computed with the multiplicative term recurrence
//
//	term₀ = e^(−λ),  termᵢ = termᵢ₋₁ · λ/i,  CDF = Σ termᵢ
//
// rather than explicit factorials and powers: the ratio form keeps every
// term bounded, so moderate k and λ neither overflow nor underflow. The
// sum is clamped symmetrically to [0,1] to absorb floating-point drift.
//
// k < 0 returns 0 exactly. A rate that is negative or NaN is an
// InvalidInputError.
func PoissonCDF(k int, lambda float64) (float64, error) {
	if !(lambda >= 0) {
		return 0, invalidInput("lambda", "Poisson rate must be >= 0, got %g", lambda)
	}
	if k < 0 {
		return 0, nil
	}
	return poissonCDF(k, lambda), nil
}

// poissonCDF is the recurrence with validation already done (lambda ≥ 0).
func poissonCDF(k int, lambda float64) float64 {
	if k < 0 {
		return 0
	}

	term := math.Exp(-lambda)
	total := term
	for i := 1; i <= k; i++ {
		term *= lambda / float64(i)
		total += term
	}

	if total < 0 {
		return 0
	}
	if total > 1 {
		return 1
	}
	return total
}

// OverloadProbability returns P(N > c) for N ~ Poisson(lambda): the chance
// that arrivals in one time unit exceed a discrete capacity c.
//
// For fixed c this is non-decreasing in lambda (more expected arrivals
// never lower the chance of exceeding a fixed threshold), which is the
// monotonicity LambdaMax's bisection relies on.
func OverloadProbability(lambda float64, c int) (float64, error) {
	if !(lambda >= 0) {
		return 0, invalidInput("lambda", "Poisson rate must be >= 0, got %g", lambda)
	}
	return overloadProb(lambda, c), nil
}

func overloadProb(lambda float64, c int) float64 {
	return 1 - poissonCDF(c, lambda)
}

// LambdaMax finds the largest Poisson rate λ whose overload probability at
// capacity c stays within the risk tolerance delta:
//
//	λ_max = max { λ ≥ 0 : P(Poisson(λ) > c) ≤ δ }
//
// by exact CDF inversion: bracket the crossing by doubling hi from
// max(1, c+1), then bisect. Both phases have fixed iteration caps
// (80 each) and the bracket never grows past 1e6, so the search always
// terminates. tol ≤ 0 selects DefaultTolerance.
//
// The returned value is the bisection's lower end — the greatest point at
// which the δ bound was actually verified. The result therefore satisfies
// the bound within tolerance and never overshoots it.
//
// delta must lie strictly inside (0,1) and c must be ≥ 0; violations are
// InvalidInputError. Each probability evaluation costs O(c), so a full
// inversion is O(160·c) worst case.
func LambdaMax(delta float64, c int, tol float64) (float64, error) {
	// The inclusive form also rejects NaN, which no bracket can contain.
	if !(0 < delta && delta < 1) {
		return 0, invalidInput("delta", "risk tolerance must be in the open interval (0,1), got %g", delta)
	}
	if c < 0 {
		return 0, invalidInput("C", "capacity must be >= 0, got %d", c)
	}
	if tol <= 0 {
		tol = DefaultTolerance
	}

	lo := 0.0
	hi := math.Max(1, float64(c)+1)

	// Bracket: grow hi until it is overload-excessive.
	for i := 0; i < maxBracketSteps; i++ {
		if overloadProb(hi, c) > delta {
			break
		}
		hi *= 2
		if hi > bracketCeiling {
			break
		}
	}

	// Bisect: lo advances only through points verified δ-safe.
	for i := 0; i < maxBisectSteps; i++ {
		mid := 0.5 * (lo + hi)
		if overloadProb(mid, c) > delta {
			hi = mid
		} else {
			lo = mid
		}
		if hi-lo < tol*(1+lo) {
			break
		}
	}

	return lo, nil
}
