package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func linearCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + float64(i)
	}
	return out
}

func acceleratingCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 100 + 0.05*float64(i)*float64(i)
	}
	return out
}

func fallingCloses(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 130 - float64(i)
	}
	return out
}

// crossoverCloses declines for 26 sessions, then rallies just enough for the
// histogram to cross from negative to positive on the final bar.
func crossoverCloses() []float64 {
	out := fallingCloses(26)
	return append(out, 108, 111)
}

// stallingCloses rallies for 26 sessions, then drifts lower so the MACD line
// stays above zero while the histogram turns negative and keeps shrinking.
func stallingCloses() []float64 {
	out := linearCloses(26)
	return append(out, 124.5, 123.8, 123.0, 122.0)
}

// chopCloses rallies, dips and stabilizes: MACD line above zero with a
// non-positive histogram that has stopped falling.
func chopCloses() []float64 {
	out := linearCloses(24)
	return append(out, 118, 116, 115.5, 115.8, 116.5, 117.5)
}

func TestClassify(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name   string
		closes []float64
		want   MACDStatus
	}{
		{"histogram sign crossing", crossoverCloses(), StatusEarlyExpansion},
		{"accelerating rally", acceleratingCloses(30), StatusExpansion},
		{"steady rally", linearCloses(30), StatusPositive},
		{"steady decline", fallingCloses(30), StatusNegative},
		{"rally stalling out", stallingCloses(), StatusDistribution},
		{"choppy consolidation", chopCloses(), StatusMixed},
		{"insufficient history", linearCloses(20), StatusUnknown},
		{"empty series", nil, StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.closes, p))
		})
	}
}

func TestClassifyCompactPolicy(t *testing.T) {
	p, err := PolicyForVersion("v1-compact")
	assert.NoError(t, err)

	// The compact rule set folds the extended states into Negative.
	assert.Equal(t, StatusNegative, Classify(stallingCloses(), p))
	assert.Equal(t, StatusNegative, Classify(chopCloses(), p))

	// Positive-histogram states are unaffected.
	assert.Equal(t, StatusExpansion, Classify(acceleratingCloses(30), p))
	assert.Equal(t, StatusEarlyExpansion, Classify(crossoverCloses(), p))
}

func TestClassifyIsPure(t *testing.T) {
	p := DefaultPolicy()
	closes := acceleratingCloses(30)

	first := Classify(closes, p)
	second := Classify(closes, p)
	assert.Equal(t, first, second)

	// The input series must not be mutated.
	assert.Equal(t, acceleratingCloses(30), closes)
}

func TestClassifyRowsAlwaysAssignsStatus(t *testing.T) {
	p := DefaultPolicy()
	rows := []Row{
		{Symbol: "AAA", Closes: linearCloses(30)},
		{Symbol: "BBB", Closes: linearCloses(5)},
		{Symbol: "CCC"},
	}

	classified := ClassifyRows(rows, p)
	valid := map[MACDStatus]bool{
		StatusEarlyExpansion: true, StatusExpansion: true, StatusPositive: true,
		StatusNegative: true, StatusDistribution: true, StatusMixed: true, StatusUnknown: true,
	}
	for _, r := range classified {
		assert.True(t, valid[r.MACDStatus], "row %s has invalid status %q", r.Symbol, r.MACDStatus)
	}

	// Source rows stay untouched.
	assert.Empty(t, rows[0].MACDStatus)
}

func TestEWMASeedsFromFirstSample(t *testing.T) {
	out := ewma([]float64{10, 10, 10}, 12)
	assert.InDeltaSlice(t, []float64{10, 10, 10}, out, 1e-9)

	assert.Empty(t, ewma(nil, 12))
}
