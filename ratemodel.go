package caproc

import "math"

// RateInputs describes a detection pipeline's operating point.
//
// All rates share the same time unit: if R is items per day, C is alerts
// per day. The struct is a plain value; construct it, validate it, and it
// never changes afterwards.
type RateInputs struct {
	R   float64 `json:"R"`   // Incoming item volume per time unit (> 0)
	P   float64 `json:"p"`   // Base anomaly prevalence, probability in [0,1]
	TPR float64 `json:"tpr"` // Detector true positive rate in [0,1]
	FPR float64 `json:"fpr"` // Detector false positive rate in [0,1]
	C   float64 `json:"C"`   // Downstream review capacity per time unit (≥ 0)
}

// NewRateInputs builds a validated operating point.
func NewRateInputs(r, p, tpr, fpr, c float64) (RateInputs, error) {
	in := RateInputs{R: r, P: p, TPR: tpr, FPR: fpr, C: c}
	if err := in.Validate(); err != nil {
		return RateInputs{}, err
	}
	return in, nil
}

// Validate rejects out-of-range fields with an InvalidInputError naming
// the offending field. Validation happens before any rate is computed.
//
// Every comparison is written in the inclusive form so that NaN fails it:
// a NaN field is out of range, not a pass-through.
func (in RateInputs) Validate() error {
	if math.IsInf(in.R, 0) || !(in.R > 0) {
		return invalidInput("R", "must be finite and > 0, got %g", in.R)
	}
	if !(0 <= in.P && in.P <= 1) {
		return invalidInput("p", "must be in [0,1], got %g", in.P)
	}
	if !(0 <= in.TPR && in.TPR <= 1) {
		return invalidInput("tpr", "must be in [0,1], got %g", in.TPR)
	}
	if !(0 <= in.FPR && in.FPR <= 1) {
		return invalidInput("fpr", "must be in [0,1], got %g", in.FPR)
	}
	if math.IsInf(in.C, 0) || !(in.C >= 0) {
		return invalidInput("C", "must be finite and >= 0, got %g", in.C)
	}
	return nil
}

// Bound is a derived operating-point limit that may be mathematically
// undefined at a valid input (e.g. the FPR bound when p = 1, where FPR has
// no effect on the alert rate). Undefined is a normal outcome, not an
// error — and never a NaN that could leak into downstream arithmetic.
//
// Defined bounds are raw: deliberately not clamped to [0,1].
//
// Interpretation of a defined bound:
//   - value < 0: the fixed term alone already exceeds the target; no
//     setting of this knob can satisfy the gate
//   - 0 ≤ value ≤ 1: the largest operating value that satisfies the gate
//   - value > 1: any valid setting satisfies the gate
type Bound struct {
	Value   float64 `json:"value"`
	Defined bool    `json:"defined"`
}

// DefinedBound wraps a computed limit.
func DefinedBound(v float64) Bound { return Bound{Value: v, Defined: true} }

// UndefinedBound marks a limit that does not exist at this operating point.
func UndefinedBound() Bound { return Bound{} }

// RateResult is the mean-gate verdict for one operating point.
// Read-only; every evaluation produces a fresh value.
type RateResult struct {
	// A is the expected alert rate: A = R·(p·TPR + (1−p)·FPR).
	A float64 `json:"A"`

	// PassedMean reports the expectation gate A ≤ C.
	PassedMean bool `json:"passed_mean"`

	// FPRMaxMean is the largest FPR satisfying the mean gate at this TPR:
	// (C/R − p·TPR)/(1−p). Undefined when p = 1.
	FPRMaxMean Bound `json:"fpr_max_mean"`

	// TPRMaxMean is the largest TPR satisfying the mean gate at this FPR:
	// (C/R − (1−p)·FPR)/p. Undefined when p = 0.
	TPRMaxMean Bound `json:"tpr_max_mean"`

	// RequiredCapacity is the minimum capacity that would sustain this
	// operating point under the mean gate (equal to A).
	RequiredCapacity float64 `json:"required_capacity"`
}

// ComputeExpectedRate evaluates the closed-form alert-rate model:
//
//	A = R·(p·TPR + (1−p)·FPR)
//
// and its algebraic inversions at capacity C. Pure function: no I/O, no
// state, deterministic given the inputs.
//
// The FPR/TPR bounds are returned raw. Clamping them to [0,1] would
// destroy the diagnostics a caller needs: a negative FPRMaxMean says the
// true-positive stream alone exceeds capacity, a bound above 1 says the
// gate is slack at any valid setting.
func ComputeExpectedRate(in RateInputs) (RateResult, error) {
	if err := in.Validate(); err != nil {
		return RateResult{}, err
	}

	a := in.R * (in.P*in.TPR + (1-in.P)*in.FPR)

	res := RateResult{
		A:                a,
		PassedMean:       a <= in.C,
		FPRMaxMean:       UndefinedBound(),
		TPRMaxMean:       UndefinedBound(),
		RequiredCapacity: a,
	}

	// FPR has no effect on A when p = 1; the bound does not exist there.
	if in.P < 1 {
		res.FPRMaxMean = DefinedBound((in.C/in.R - in.P*in.TPR) / (1 - in.P))
	}

	// Symmetrically, TPR has no effect when p = 0.
	if in.P > 0 {
		res.TPRMaxMean = DefinedBound((in.C/in.R - (1-in.P)*in.FPR) / in.P)
	}

	return res, nil
}
