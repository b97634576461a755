package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwingScore(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name string
		row  Row
		want float64
	}{
		{"typical candidate", Row{Liquidity: 150, ADR: 3.0, MACDStatus: StatusExpansion}, 64.5},
		{"components clamp at caps", Row{Liquidity: 5000, ADR: 9.0, MACDStatus: StatusExpansion}, 100},
		{"early expansion bonus", Row{Liquidity: 1000, ADR: 5.0, MACDStatus: StatusEarlyExpansion}, 90},
		{"no bonus for negative", Row{Liquidity: 1000, ADR: 5.0, MACDStatus: StatusNegative}, 70},
		{"rounded to two decimals", Row{Liquidity: 333, ADR: 3.33, MACDStatus: StatusPositive}, 66.64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SwingScore(tt.row, p)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.LessOrEqual(t, got, p.SwingLiquidityWeight+p.SwingADRWeight+30+p.SwingBase)
		})
	}
}

func TestPositionalScore(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name string
		row  Row
		want float64
	}{
		{"favorable expansion", Row{Liquidity: 1500, ADR: 4.0, MACDStatus: StatusExpansion}, 86.5},
		{"max favorable", Row{Liquidity: 2000, ADR: 5.0, MACDStatus: StatusEarlyExpansion}, 100},
		{"unfavorable capped", Row{Liquidity: 4000, ADR: 6.0, MACDStatus: StatusNegative}, 65},
		{"unfavorable below cap", Row{Liquidity: 200, ADR: 1.0, MACDStatus: StatusMixed}, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PositionalScore(tt.row, p), 1e-9)
		})
	}
}

func TestSwingStyleFirstMatchWins(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name  string
		row   Row
		score float64
		want  string
	}{
		{"momentum burst", Row{MACDStatus: StatusEarlyExpansion, PctChg: 1.2}, 75, "Momentum Burst"},
		{"early expansion falling stays default", Row{MACDStatus: StatusEarlyExpansion, PctChg: -0.5}, 75, "Trend Continuation"},
		{"high velocity", Row{MACDStatus: StatusExpansion, ADR: 4.5}, 85, "High Velocity Swing"},
		{"expansion below score threshold", Row{MACDStatus: StatusExpansion, ADR: 4.5}, 70, "Trend Continuation"},
		{"pullback entry", Row{MACDStatus: StatusPositive, PctChg: -1.0}, 60, "Pullback Entry"},
		{"default", Row{MACDStatus: StatusPositive, PctChg: 0.4}, 60, "Trend Continuation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SwingStyle(tt.row, tt.score, p))
		})
	}
}

func TestPositionalStyle(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name  string
		row   Row
		score float64
		want  string
	}{
		{"early accumulation", Row{MACDStatus: StatusEarlyExpansion}, 90, "Early Accumulation"},
		{"trend rider", Row{MACDStatus: StatusExpansion}, 82, "Trend Rider"},
		{"core holding", Row{MACDStatus: StatusPositive}, 95, "Core Holding"},
		{"default", Row{MACDStatus: StatusPositive}, 72, "Accumulation Phase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PositionalStyle(tt.row, tt.score, p))
		})
	}
}

func TestTrendStrengthAndPortfolioAction(t *testing.T) {
	assert.Equal(t, "Strong", TrendStrength(StatusEarlyExpansion))
	assert.Equal(t, "Strong", TrendStrength(StatusExpansion))
	assert.Equal(t, "Moderate", TrendStrength(StatusPositive))
	assert.Equal(t, "Weak", TrendStrength(StatusNegative))
	assert.Equal(t, "Weak", TrendStrength(StatusUnknown))

	assert.Equal(t, "Add", PortfolioAction("Strong"))
	assert.Equal(t, "Hold", PortfolioAction("Moderate"))
	assert.Equal(t, "Avoid", PortfolioAction("Weak"))
}

func TestScoreSwingRows(t *testing.T) {
	p := DefaultPolicy()
	rows := []Row{
		{Symbol: "A", Liquidity: 150, ADR: 3.0, PctChg: 0.5, MACDStatus: StatusExpansion},
		{Symbol: "B", Liquidity: 2000, ADR: 5.0, PctChg: 1.0, MACDStatus: StatusEarlyExpansion},
	}

	derived := ScoreSwingRows(rows, p)
	require.Len(t, derived, 2)

	assert.Equal(t, TradeBiasBullish, derived[0].TradeBias)
	assert.InDelta(t, 64.5, derived[0].Score, 1e-9)
	assert.Empty(t, derived[0].Flags)

	assert.Equal(t, "Momentum Burst", derived[1].TradeStyle)
	assert.Equal(t, "Early", derived[1].Flags)
}

func TestScoreNearMissRows(t *testing.T) {
	p := DefaultPolicy()
	derived := ScoreNearMissRows([]Row{
		{Symbol: "B", Liquidity: 120, ADR: 2.2, MACDStatus: StatusPositive},
		{Symbol: "G", Liquidity: 200, ADR: 3.0, MACDStatus: StatusNegative},
	}, p)
	require.Len(t, derived, 2)

	assert.InDelta(t, 54.6, derived[0].Score, 1e-9)
	assert.Equal(t, "Near-Miss", derived[0].TradeStyle)
	assert.Equal(t, "ADR < 2.5%", derived[0].Flags)

	assert.InDelta(t, 36, derived[1].Score, 1e-9)
	assert.Equal(t, "Weak MACD", derived[1].Flags)
}

func TestScorePositionalRowsAndQualityGate(t *testing.T) {
	p := DefaultPolicy()
	rows := []Row{
		{Symbol: "STRONG", Liquidity: 2000, ADR: 5.0, MACDStatus: StatusEarlyExpansion},
		{Symbol: "WEAKSCORE", Liquidity: 150, ADR: 3.0, MACDStatus: StatusExpansion},
		{Symbol: "UNFAVORABLE", Liquidity: 4000, ADR: 6.0, MACDStatus: StatusNegative},
	}

	scored := ScorePositionalRows(rows, p)
	require.Len(t, scored, 3, "every row is scored before filtering")

	assert.Equal(t, "Strong", scored[0].TrendStrength)
	assert.Equal(t, "Add", scored[0].PortfolioAction)
	assert.Equal(t, "Weak", scored[2].TrendStrength)
	assert.Equal(t, "Avoid", scored[2].PortfolioAction)

	kept := FilterPositionalQuality(scored, p)
	require.Len(t, kept, 1)
	assert.Equal(t, "STRONG", kept[0].Symbol)
}
