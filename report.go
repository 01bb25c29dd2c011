package caproc

import (
	"fmt"
	"strings"
)

// Report renders an Evaluation as the full human-readable capacity report:
// every structured field, the qualitative notes for out-of-range raw
// bounds, and the Poisson-independence caveat when the δ gate ran.
//
// Rendering only reads the Evaluation — nothing is recomputed, so the
// report always agrees with the structured result.
func Report(ev Evaluation) string {
	var b strings.Builder

	in := ev.Inputs
	rate := ev.Rate

	fmt.Fprintf(&b, "caproc capacity report\n")
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 70))
	fmt.Fprintf(&b, "Inputs: R=%g, p=%g, TPR=%g, FPR=%g, C=%g\n",
		in.R, in.P, in.TPR, in.FPR, in.C)
	fmt.Fprintf(&b, "Expected alert rate A = %.6g alerts/time\n", rate.A)
	fmt.Fprintf(&b, "Mean (expectation) gate: %s (A %s C)\n",
		passFail(rate.PassedMean), cmpSymbol(rate.PassedMean))

	fmt.Fprintf(&b, "\nDerived (mean gate)\n")
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 70))
	fmt.Fprintf(&b, "FPR_max_mean (raw) = %s\n", formatBound(rate.FPRMaxMean))
	switch {
	case rate.FPRMaxMean.Defined && rate.FPRMaxMean.Value < 0:
		b.WriteString("Note: FPR_max_mean < 0 => true positives alone exceed capacity (even if FPR=0).\n")
	case rate.FPRMaxMean.Defined && rate.FPRMaxMean.Value > 1:
		b.WriteString("Note: FPR_max_mean > 1 => capacity is high relative to volume; any valid FPR<=1 satisfies the mean gate at this TPR.\n")
	}
	fmt.Fprintf(&b, "C_required = %.6g alerts/time (minimum capacity to sustain this operating point)\n",
		rate.RequiredCapacity)
	fmt.Fprintf(&b, "TPR_max_mean at this FPR (raw) = %s\n", formatBound(rate.TPRMaxMean))

	if g := ev.Gate; g != nil {
		fmt.Fprintf(&b, "\nDelta (tail-risk) gate — Poisson model\n")
		fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 70))
		fmt.Fprintf(&b, "Target: P(N > C_int) <= δ with δ=%.6g, C_int=%d\n", g.Delta, g.CInt)
		fmt.Fprintf(&b, "λ_max (exact Poisson inversion) = %.6g alerts/time\n", g.LambdaMax)
		fmt.Fprintf(&b, "Overload probability at current A: P(Poisson(A) > C_int) = %.6g\n", g.OverloadProbAtA)
		fmt.Fprintf(&b, "Delta gate: %s (A %s λ_max)\n",
			passFail(g.PassedDelta), cmpSymbol(g.PassedDelta))
		fmt.Fprintf(&b, "FPR_max_delta (raw) = %s\n", formatBound(g.FPRMaxDelta))
		if g.FPRMaxDelta.Defined && g.FPRMaxDelta.Value < 0 {
			b.WriteString("Note: FPR_max_delta < 0 => even anomaly alerts alone exceed the δ-safe mean; increase capacity or narrow scope.\n")
		}
		b.WriteString("\nReminder: Poisson assumes independence. If alerts are bursty/correlated, tail risk may be understated; consider an overdispersed model.\n")
	} else {
		b.WriteString("\nDelta gate: disabled (no δ supplied)\n")
	}

	fmt.Fprintf(&b, "\nFeasibility reminders\n")
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 70))
	b.WriteString("Mean gate:   A = R[p*TPR + (1-p)*FPR] <= C\n")
	if ev.Gate != nil {
		b.WriteString("Delta gate:  Find λ_max s.t. P(Poisson(λ_max) > C_int) <= δ; require A <= λ_max\n")
	}
	b.WriteString("Mean derived:  FPR <= (C/R - p*TPR)/(1-p)  (if p<1)\n")
	if ev.Gate != nil {
		b.WriteString("Delta derived: FPR <= (λ_max/R - p*TPR)/(1-p)  (if p<1)\n")
	}

	return b.String()
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

func cmpSymbol(ok bool) string {
	if ok {
		return "<="
	}
	return ">"
}

func formatBound(bd Bound) string {
	if !bd.Defined {
		return "undefined at this operating point"
	}
	return fmt.Sprintf("%.6g", bd.Value)
}
