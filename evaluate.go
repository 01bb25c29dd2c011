package caproc

import "math"

// DeltaGateInputs is the discrete-count model the tail-risk gate runs on:
// the risk tolerance and the capacity rounded to a whole alert count.
type DeltaGateInputs struct {
	Delta float64 `json:"delta"` // Overload risk tolerance, open (0,1)
	C     int     `json:"C_int"` // Capacity as an integer count (≥ 0)
}

// DeltaGateResult is the tail-risk verdict under the Poisson arrivals model.
type DeltaGateResult struct {
	// Delta and CInt echo the gate inputs the verdict was computed at.
	Delta float64 `json:"delta"`
	CInt  int     `json:"C_int"`

	// LambdaMax is the largest Poisson rate whose overload probability at
	// CInt stays within Delta.
	LambdaMax float64 `json:"lambda_max"`

	// OverloadProbAtA is P(Poisson(A) > CInt): the overload chance at the
	// current expected alert rate.
	OverloadProbAtA float64 `json:"overload_prob_at_A"`

	// PassedDelta reports A ≤ LambdaMax.
	PassedDelta bool `json:"passed_delta"`

	// FPRMaxDelta is the largest FPR whose expected rate stays δ-safe:
	// (λ_max/R − p·TPR)/(1−p). Undefined when p = 1. Raw, unclamped.
	FPRMaxDelta Bound `json:"fpr_max_delta"`
}

// Evaluation is the combined result of one capacity check: the mean-gate
// verdict, plus the tail-risk verdict when a δ was supplied (nil Gate
// means the δ gate was not requested).
type Evaluation struct {
	Inputs RateInputs       `json:"inputs"`
	Rate   RateResult       `json:"rate"`
	Gate   *DeltaGateResult `json:"delta_gate,omitempty"`
}

// Evaluate is the single entry point: run the mean gate, and when delta is
// non-nil also the Poisson tail-risk gate. Inputs are never mutated; every
// call assembles a fresh Evaluation, so identical inputs always produce
// identical outputs.
//
// For the discrete Poisson model the real-valued capacity is rounded with
// math.Round — ties away from zero (4.5 → 5, not 4). This differs from
// Python's banker's rounding at exact half-integers and is applied
// consistently everywhere a C_int is derived.
func Evaluate(in RateInputs, delta *float64) (Evaluation, error) {
	rate, err := ComputeExpectedRate(in)
	if err != nil {
		return Evaluation{}, err
	}

	ev := Evaluation{Inputs: in, Rate: rate}
	if delta == nil {
		return ev, nil
	}

	cInt := int(math.Round(in.C))

	lambdaMax, err := LambdaMax(*delta, cInt, DefaultTolerance)
	if err != nil {
		return Evaluation{}, err
	}

	// A ≥ 0 for any validated operating point, so this cannot fail.
	overloadAtA := overloadProb(rate.A, cInt)

	gate := &DeltaGateResult{
		Delta:           *delta,
		CInt:            cInt,
		LambdaMax:       lambdaMax,
		OverloadProbAtA: overloadAtA,
		PassedDelta:     rate.A <= lambdaMax,
		FPRMaxDelta:     UndefinedBound(),
	}
	if in.P < 1 {
		gate.FPRMaxDelta = DefinedBound((lambdaMax/in.R - in.P*in.TPR) / (1 - in.P))
	}

	ev.Gate = gate
	return ev, nil
}

// EvaluateMean runs only the expectation gate.
func EvaluateMean(in RateInputs) (Evaluation, error) {
	return Evaluate(in, nil)
}

// EvaluateWithDelta runs both gates at the given risk tolerance.
func EvaluateWithDelta(in RateInputs, delta float64) (Evaluation, error) {
	return Evaluate(in, &delta)
}
