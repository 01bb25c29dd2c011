// Package caproc answers a capacity-planning question for alert pipelines:
// will the alerts a detector produces fit through the review process
// downstream of it?
//
// # Overview
//
// A detector watching R items per time unit, with base anomaly prevalence
// p and operating point (TPR, FPR), emits an expected alert rate
//
//	A = R·(p·TPR + (1−p)·FPR)
//
// caproc checks A against a fixed review capacity C under two gates:
//
//   - Mean gate: A ≤ C. The expectation check — on average the queue
//     does not grow.
//   - Delta gate (optional): under a Poisson arrivals assumption, the
//     probability of exceeding C in a time unit stays within a risk
//     tolerance δ. caproc inverts the exact Poisson CDF to find λ_max,
//     the largest arrival rate with P(N > C) ≤ δ, and requires A ≤ λ_max.
//
// # Quick Start
//
//	in, err := caproc.NewRateInputs(20, 0.01, 0.85, 0.07, 4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ev, err := caproc.EvaluateWithDelta(in, 0.01)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("A = %.3f alerts/time\n", ev.Rate.A)
//	fmt.Printf("mean gate: %v, delta gate: %v\n",
//	    ev.Rate.PassedMean, ev.Gate.PassedDelta)
//	fmt.Print(caproc.Report(ev))
//
// # Derived bounds
//
// Besides the verdicts, each evaluation inverts the rate formula to tell
// you how much operating-point headroom exists:
//
//	FPR_max_mean = (C/R − p·TPR)/(1−p)    (undefined when p = 1)
//	TPR_max_mean = (C/R − (1−p)·FPR)/p    (undefined when p = 0)
//	FPR_max_δ    = (λ_max/R − p·TPR)/(1−p)
//
// Bounds are raw on purpose. A negative FPR bound means the true-positive
// stream alone exceeds the target; a bound above 1 means the gate is slack
// at any valid setting. Clamping would erase exactly that information.
// Undefined bounds are explicit markers (Bound.Defined == false), never a
// NaN propagating silently into arithmetic.
//
// # The λ_max inversion
//
// P(N > C) is non-decreasing in the Poisson rate for fixed C, so λ_max is
// found by bracketing (doubling, at most 80 steps, capped at 1e6) and
// bisection (at most 80 steps, stop at (hi−lo) < tol·(1+lo)). The CDF is
// evaluated exactly via the term recurrence termᵢ = termᵢ₋₁·λ/i — no
// normal approximation. The returned λ_max is the last point verified
// safe, so the δ bound is never overshot.
//
// # Errors vs verdicts
//
// Out-of-range inputs (R ≤ 0, probabilities outside [0,1], C < 0, δ
// outside the open (0,1)) fail fast with InvalidInputError. A failing
// gate is not an error: it is a normal result carried in PassedMean /
// PassedDelta.
//
// # Caveat
//
// The delta gate assumes independent arrivals. If alerts are bursty or
// correlated, Poisson understates tail risk; treat λ_max as optimistic
// and consider an overdispersed model.
//
// All computation is pure and synchronous: no I/O, no shared state, fixed
// iteration caps. Safe to call from any number of goroutines.
package caproc
