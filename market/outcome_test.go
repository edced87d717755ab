package market

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeMerge(t *testing.T) {
	t.Parallel()

	out := Exact().Merge(EstimatedBy(ReasonCrossPair))
	assert.Equal(t, Estimated, out.Status)
	assert.Equal(t, []Reason{ReasonCrossPair}, out.Reasons)

	out = out.Merge(EstimatedBy(ReasonCrossPair))
	assert.Len(t, out.Reasons, 1)

	out = out.Merge(InvalidBy(ReasonInvalidPrice))
	assert.Equal(t, Invalid, out.Status)
	assert.False(t, out.Valid())
	assert.Equal(t, []Reason{ReasonCrossPair, ReasonInvalidPrice}, out.Reasons)

	// severity never decreases
	assert.Equal(t, Invalid, out.Merge(Exact()).Status)
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "computed", Exact().String())
	assert.Equal(t, "estimated(unknown_pair)", EstimatedBy(ReasonUnknownPair).String())
	assert.Equal(t, "invalid(zero_risk_distance,invalid_price)",
		InvalidBy(ReasonZeroRiskDistance).Merge(InvalidBy(ReasonInvalidPrice)).String())
}

func TestRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x      float64
		places int32
		want   float64
	}{
		{4.566210045662, 2, 4.57},
		{456.621004566, 2, 456.62},
		{-2.345, 2, -2.35},
		{2.345, 2, 2.35},
		{1.005, 2, 1.01},
		{49.99999999, 1, 50.0},
		{-0.04, 1, 0},
		{0.19999999999, 2, 0.2},
		{math.NaN(), 2, 0},
		{math.Inf(-1), 2, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(tt.x, tt.places), "%v", tt.x)
	}
}
