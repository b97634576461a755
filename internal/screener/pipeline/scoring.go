package pipeline

import (
	"fmt"
	"math"
)

// TradeBiasBullish is the only bias emitted by the current policies.
const TradeBiasBullish = "Bullish"

// DerivedRow is a Row augmented with score, style and, for positional
// candidates, trend strength and portfolio action.
type DerivedRow struct {
	Row
	Score           float64
	TradeBias       string
	TradeStyle      string
	TrendStrength   string
	PortfolioAction string
	Flags           string
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SwingScore computes the row-local weighted swing score. Each component is
// clamped to its cap before summing, so the theoretical maximum is
// liquidity weight + ADR weight + best bonus + base.
func SwingScore(r Row, p Policy) float64 {
	liquidity := math.Min(r.Liquidity/p.SwingLiquidityCap, 1) * p.SwingLiquidityWeight
	adr := math.Min(r.ADR/p.SwingADRCap, 1) * p.SwingADRWeight
	bonus := p.SwingMACDBonus[r.MACDStatus]
	return Round2(liquidity + adr + bonus + p.SwingBase)
}

// PositionalScore computes the row-local weighted positional score. Rows in
// an unfavorable momentum state get the reduced suitability constant and an
// overall cap.
func PositionalScore(r Row, p Policy) float64 {
	liquidity := math.Min(r.Liquidity/p.PositionalLiquidityCap, 1) * p.PositionalLiquidityWeight
	adr := math.Min(r.ADR/p.PositionalADRCap, 1) * p.PositionalADRWeight

	bonus, ok := p.PositionalMACDBonus[r.MACDStatus]
	if !ok {
		bonus = p.PositionalDefaultBonus
	}

	suitability := p.Suitability
	if !p.Favorable(r.MACDStatus) {
		suitability = p.UnfavorableSuitability
	}

	score := liquidity + adr + bonus + suitability
	if !p.Favorable(r.MACDStatus) && score > p.UnfavorableScoreCap {
		score = p.UnfavorableScoreCap
	}
	return Round2(score)
}

// SwingStyle evaluates the swing trade-style rules top to bottom; the first
// matching rule wins.
func SwingStyle(r Row, score float64, p Policy) string {
	switch {
	case r.MACDStatus == StatusEarlyExpansion && r.PctChg > 0:
		return "Momentum Burst"
	case r.MACDStatus == StatusExpansion && r.ADR >= p.SwingHighADR && score >= p.SwingHighScore:
		return "High Velocity Swing"
	case r.MACDStatus == StatusPositive && r.PctChg < 0:
		return "Pullback Entry"
	default:
		return "Trend Continuation"
	}
}

// PositionalStyle evaluates the positional trade-style rules top to bottom.
func PositionalStyle(r Row, score float64, p Policy) string {
	switch {
	case r.MACDStatus == StatusEarlyExpansion && score >= p.PositionalEarlyScore:
		return "Early Accumulation"
	case r.MACDStatus == StatusExpansion && score >= p.PositionalTrendScore:
		return "Trend Rider"
	case score >= p.PositionalCoreScore:
		return "Core Holding"
	default:
		return "Accumulation Phase"
	}
}

// TrendStrength maps momentum state to the positional trend label.
func TrendStrength(status MACDStatus) string {
	switch status {
	case StatusEarlyExpansion, StatusExpansion:
		return "Strong"
	case StatusPositive:
		return "Moderate"
	default:
		return "Weak"
	}
}

// PortfolioAction maps trend strength to the positional action label.
func PortfolioAction(strength string) string {
	switch strength {
	case "Strong":
		return "Add"
	case "Moderate":
		return "Hold"
	default:
		return "Avoid"
	}
}

// ScoreSwingRows derives the swing-eligible rows.
func ScoreSwingRows(rows []Row, p Policy) []DerivedRow {
	out := make([]DerivedRow, 0, len(rows))
	for _, r := range rows {
		score := SwingScore(r, p)
		derived := DerivedRow{
			Row:        r,
			Score:      score,
			TradeBias:  TradeBiasBullish,
			TradeStyle: SwingStyle(r, score, p),
		}
		if r.MACDStatus == StatusEarlyExpansion {
			derived.Flags = "Early"
		}
		out = append(out, derived)
	}
	return out
}

// ScoreNearMissRows derives the near-miss rows. They carry the swing score
// so the reader can compare them against the main swing list directly; the
// flag names which swing gate the row missed.
func ScoreNearMissRows(rows []Row, p Policy) []DerivedRow {
	adrFlag := fmt.Sprintf("ADR < %.1f%%", p.SwingMinADR)
	out := make([]DerivedRow, 0, len(rows))
	for _, r := range rows {
		flag := adrFlag
		if r.ADR >= p.SwingMinADR {
			flag = "Weak MACD"
		}
		out = append(out, DerivedRow{
			Row:        r,
			Score:      SwingScore(r, p),
			TradeBias:  TradeBiasBullish,
			TradeStyle: "Near-Miss",
			Flags:      flag,
		})
	}
	return out
}

// ScorePositionalRows scores every row; the quality gate is applied after
// scoring, unlike the swing path which filters first.
func ScorePositionalRows(rows []Row, p Policy) []DerivedRow {
	out := make([]DerivedRow, 0, len(rows))
	for _, r := range rows {
		score := PositionalScore(r, p)
		strength := TrendStrength(r.MACDStatus)
		out = append(out, DerivedRow{
			Row:             r,
			Score:           score,
			TradeBias:       TradeBiasBullish,
			TradeStyle:      PositionalStyle(r, score, p),
			TrendStrength:   strength,
			PortfolioAction: PortfolioAction(strength),
		})
	}
	return out
}

// FilterPositionalQuality keeps scored rows in a favorable momentum state
// with a score at or above the policy minimum.
func FilterPositionalQuality(rows []DerivedRow, p Policy) []DerivedRow {
	out := make([]DerivedRow, 0, len(rows))
	for _, r := range rows {
		if p.Favorable(r.MACDStatus) && r.Score >= p.PositionalMinScore {
			out = append(out, r)
		}
	}
	return out
}
