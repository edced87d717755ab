package market

import "strings"

// Status tells a caller how much to trust a computed number.
type Status int

const (
	// Computed means the value was derived from known data only.
	Computed Status = iota
	// Estimated means a documented fallback was substituted somewhere.
	Estimated
	// Invalid means the inputs cannot produce a value; the number is zero.
	Invalid
)

func (s Status) String() string {
	switch s {
	case Computed:
		return "computed"
	case Estimated:
		return "estimated"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Reason names the fallback or defect behind a non-Computed outcome.
type Reason string

const (
	ReasonUnknownPair       Reason = "unknown_pair"
	ReasonCrossPair         Reason = "cross_pair"
	ReasonAccountCurrency   Reason = "account_currency"
	ReasonUnconvertedSize   Reason = "unconverted_size"
	ReasonMissingStopTarget Reason = "missing_stop_or_target"
	ReasonZeroRiskDistance  Reason = "zero_risk_distance"
	ReasonInvalidPrice      Reason = "invalid_price"
	ReasonInvalidLotSize    Reason = "invalid_lot_size"
	ReasonInvalidDirection  Reason = "invalid_direction"
	ReasonInvalidBalance    Reason = "invalid_balance"
	ReasonInvalidRiskPct    Reason = "invalid_risk_percent"
)

// Outcome is attached to every calculator result.
type Outcome struct {
	Status  Status
	Reasons []Reason
}

// Exact is the Outcome of a clean computation.
func Exact() Outcome { return Outcome{Status: Computed} }

// EstimatedBy returns an Estimated outcome with the given reason.
func EstimatedBy(r Reason) Outcome {
	return Outcome{Status: Estimated, Reasons: []Reason{r}}
}

// InvalidBy returns an Invalid outcome with the given reason.
func InvalidBy(r Reason) Outcome {
	return Outcome{Status: Invalid, Reasons: []Reason{r}}
}

func (o Outcome) Valid() bool { return o.Status != Invalid }

func (o Outcome) Exact() bool { return o.Status == Computed }

// Has reports whether r is one of the outcome's reasons.
func (o Outcome) Has(r Reason) bool {
	for _, x := range o.Reasons {
		if x == r {
			return true
		}
	}
	return false
}

// Merge keeps the more severe status and the union of both reason lists.
func (o Outcome) Merge(other Outcome) Outcome {
	out := Outcome{Status: o.Status}
	if other.Status > out.Status {
		out.Status = other.Status
	}
	for _, r := range o.Reasons {
		if !out.Has(r) {
			out.Reasons = append(out.Reasons, r)
		}
	}
	for _, r := range other.Reasons {
		if !out.Has(r) {
			out.Reasons = append(out.Reasons, r)
		}
	}
	return out
}

func (o Outcome) String() string {
	if len(o.Reasons) == 0 {
		return o.Status.String()
	}
	rs := make([]string, len(o.Reasons))
	for i, r := range o.Reasons {
		rs[i] = string(r)
	}
	return o.Status.String() + "(" + strings.Join(rs, ",") + ")"
}
