package caproc

import (
	"math"
	"testing"
)

// Test helpers for capacity-gate properties. Mirrors the shape of the
// evaluation API so property tests read as statements about the model.

// AssertClose fails unless got is within tol of want.
func AssertClose(t *testing.T, name string, got, want, tol float64) {
	t.Helper()

	if math.Abs(got-want) > tol {
		t.Errorf("%s = %.10g, want %.10g (tol %.1g)", name, got, want, tol)
		return
	}
	t.Logf("✓ %s = %.6g (within %.1g of %.6g)", name, got, tol, want)
}

// AssertMeanGate fails unless the mean-gate verdict matches wantPass and
// is consistent with the A ≤ C comparison it summarizes.
func AssertMeanGate(t *testing.T, ev Evaluation, wantPass bool) {
	t.Helper()

	if ev.Rate.PassedMean != wantPass {
		t.Errorf("mean gate: got pass=%v, want %v (A=%.6g, C=%.6g)",
			ev.Rate.PassedMean, wantPass, ev.Rate.A, ev.Inputs.C)
	}
	if ev.Rate.PassedMean != (ev.Rate.A <= ev.Inputs.C) {
		t.Errorf("mean gate verdict inconsistent with A=%.6g vs C=%.6g",
			ev.Rate.A, ev.Inputs.C)
	}
	t.Logf("✓ mean gate %s: A=%.6g, C=%.6g", passFail(ev.Rate.PassedMean), ev.Rate.A, ev.Inputs.C)
}

// AssertBoundDefined fails unless the bound exists, and returns its value.
func AssertBoundDefined(t *testing.T, name string, bd Bound) float64 {
	t.Helper()

	if !bd.Defined {
		t.Errorf("%s: expected a defined bound, got undefined marker", name)
		return 0
	}
	if math.IsNaN(bd.Value) {
		t.Errorf("%s: defined bound carries NaN", name)
	}
	return bd.Value
}

// AssertBoundUndefined fails unless the bound is the undefined marker.
func AssertBoundUndefined(t *testing.T, name string, bd Bound) {
	t.Helper()

	if bd.Defined {
		t.Errorf("%s: expected undefined marker, got defined value %.6g", name, bd.Value)
		return
	}
	t.Logf("✓ %s undefined at this operating point", name)
}

// AssertDeltaSafe fails unless lambda's overload probability at capacity c
// stays within delta plus slack (the bisection tolerance).
func AssertDeltaSafe(t *testing.T, lambda float64, c int, delta, slack float64) {
	t.Helper()

	p, err := OverloadProbability(lambda, c)
	if err != nil {
		t.Fatalf("overload probability at λ=%.6g: %v", lambda, err)
	}
	if p > delta+slack {
		t.Errorf("λ=%.6g not δ-safe at C=%d: P(N>C)=%.8g > δ=%.6g (+%.1g slack)",
			lambda, c, p, delta, slack)
		return
	}
	t.Logf("✓ λ=%.6g is δ-safe at C=%d: P(N>C)=%.6g ≤ %.6g", lambda, c, p, delta)
}

// AssertMonotoneOverload fails if the overload probability ever decreases
// along an increasing sequence of rates — the property the λ_max bisection
// depends on.
func AssertMonotoneOverload(t *testing.T, c int, lambdas []float64) {
	t.Helper()

	prev := -1.0
	for _, lam := range lambdas {
		p, err := OverloadProbability(lam, c)
		if err != nil {
			t.Fatalf("overload probability at λ=%.6g: %v", lam, err)
		}
		if p < prev {
			t.Errorf("overload probability decreased at λ=%.6g: %.10g < %.10g (C=%d)",
				lam, p, prev, c)
		}
		prev = p
	}
	t.Logf("✓ P(N>%d) non-decreasing over %d rate points", c, len(lambdas))
}
