package pipeline

import "fmt"

// MACDStatus is the categorical momentum state derived from a close series.
type MACDStatus string

const (
	StatusEarlyExpansion MACDStatus = "Early Expansion"
	StatusExpansion      MACDStatus = "Expansion"
	StatusPositive       MACDStatus = "Positive"
	StatusNegative       MACDStatus = "Negative"
	StatusDistribution   MACDStatus = "Distribution"
	StatusMixed          MACDStatus = "Mixed"
	StatusUnknown        MACDStatus = "Unknown"
)

// Policy holds every weight, threshold and rule knob used by the pipeline.
// It is immutable once built; different policy versions can run side by side.
type Policy struct {
	Version string

	// MACD classification.
	FastSpan       int
	SlowSpan       int
	SignalSpan     int
	MinHistory     int
	FallbackStatus MACDStatus
	// ExtendedStates splits non-positive histograms into
	// Distribution/Mixed/Negative using the MACD line.
	ExtendedStates bool

	// Momentum states that count as favorable for eligibility.
	FavorableStatuses []MACDStatus

	// Eligibility gates.
	MinLiquidity   float64
	SwingMinADR    float64
	NearMissMinADR float64

	// Swing scoring.
	SwingLiquidityCap    float64
	SwingLiquidityWeight float64
	SwingADRCap          float64
	SwingADRWeight       float64
	SwingBase            float64
	SwingMACDBonus       map[MACDStatus]float64

	// Positional scoring.
	PositionalLiquidityCap    float64
	PositionalLiquidityWeight float64
	PositionalADRCap          float64
	PositionalADRWeight       float64
	PositionalMACDBonus       map[MACDStatus]float64
	PositionalDefaultBonus    float64
	Suitability               float64
	UnfavorableSuitability    float64
	UnfavorableScoreCap       float64
	PositionalMinScore        float64
	PositionalTopN            int

	// Trade-style thresholds.
	SwingHighADR         float64
	SwingHighScore       float64
	PositionalEarlyScore float64
	PositionalTrendScore float64
	PositionalCoreScore  float64

	// Market mood thresholds on mean ADR.
	TrendingMeanADR float64
	RangeMeanADR    float64
}

// DefaultPolicy returns the production v1 rule set.
func DefaultPolicy() Policy {
	return Policy{
		Version: "v1",

		FastSpan:       12,
		SlowSpan:       26,
		SignalSpan:     9,
		MinHistory:     26,
		FallbackStatus: StatusUnknown,
		ExtendedStates: true,

		FavorableStatuses: []MACDStatus{StatusEarlyExpansion, StatusExpansion, StatusPositive},

		MinLiquidity:   100,
		SwingMinADR:    2.5,
		NearMissMinADR: 2.0,

		SwingLiquidityCap:    1000,
		SwingLiquidityWeight: 30,
		SwingADRCap:          5,
		SwingADRWeight:       25,
		SwingBase:            15,
		SwingMACDBonus: map[MACDStatus]float64{
			StatusExpansion:      30,
			StatusPositive:       25,
			StatusEarlyExpansion: 20,
		},

		PositionalLiquidityCap:    2000,
		PositionalLiquidityWeight: 30,
		PositionalADRCap:          5,
		PositionalADRWeight:       15,
		PositionalMACDBonus: map[MACDStatus]float64{
			StatusEarlyExpansion: 25,
			StatusExpansion:      22,
			StatusPositive:       18,
		},
		PositionalDefaultBonus: 10,
		Suitability:            30,
		UnfavorableSuitability: 15,
		UnfavorableScoreCap:    65,
		PositionalMinScore:     70,
		PositionalTopN:         20,

		SwingHighADR:         4,
		SwingHighScore:       80,
		PositionalEarlyScore: 85,
		PositionalTrendScore: 80,
		PositionalCoreScore:  90,

		TrendingMeanADR: 3,
		RangeMeanADR:    2,
	}
}

// PolicyForVersion resolves a configured policy version. An empty version
// selects the current default.
func PolicyForVersion(version string) (Policy, error) {
	switch version {
	case "", "v1":
		return DefaultPolicy(), nil
	case "v1-compact":
		// Same weights as v1 with the 4-state legacy classification.
		p := DefaultPolicy()
		p.Version = "v1-compact"
		p.ExtendedStates = false
		return p, nil
	default:
		return Policy{}, fmt.Errorf("unknown policy version %q", version)
	}
}

// Favorable reports whether the given state is in the policy's favorable set.
// Fallback states such as Unknown are never favorable under the v1 policy.
func (p Policy) Favorable(status MACDStatus) bool {
	for _, s := range p.FavorableStatuses {
		if s == status {
			return true
		}
	}
	return false
}
