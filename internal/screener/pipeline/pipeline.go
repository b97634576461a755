package pipeline

import (
	"strings"
	"time"

	"golang-swing-screener/internal/screener/dto"
	"golang-swing-screener/pkg/utils"
)

// Pipeline runs the full classification flow over one raw snapshot:
// normalize, classify, filter, score, rank. One invocation is a pure
// computation; the clock is only used for metadata.
type Pipeline struct {
	policy Policy
}

// New creates a pipeline bound to an immutable policy.
func New(policy Policy) *Pipeline {
	return &Pipeline{policy: policy}
}

// Policy returns the policy this pipeline runs under.
func (pl *Pipeline) Policy() Policy {
	return pl.policy
}

// Run executes the pipeline over a raw snapshot. The caller supplies the
// source label and the wall-clock time so repeated runs on the same
// snapshot and clock produce identical tables.
func (pl *Pipeline) Run(raw *RawTable, source string, now time.Time) *dto.ScreenerResult {
	p := pl.policy

	rows := ClassifyRows(Normalize(raw), p)

	swing := ScoreSwingRows(FilterSwing(rows, p), p)
	nearMiss := ScoreNearMissRows(FilterNearMiss(rows, p), p)
	positional := FilterPositionalQuality(ScorePositionalRows(rows, p), p)

	result := &dto.ScreenerResult{
		Swing:      BuildSwingTable(swing),
		Positional: BuildPositionalTable(positional, p),
		NearMiss:   BuildNearMissTable(nearMiss),
		Metadata: dto.RunMetadata{
			Source:        source,
			RunTimestamp:  now.Format("2006-01-02 15:04:05"),
			VersionTag:    p.Version,
			MarketSession: utils.MarketSession(now),
			MarketMood:    MarketMood(rows, p),
		},
	}

	for _, r := range result.Swing.Rows {
		if r.MACDStatus == string(StatusEarlyExpansion) {
			var flags []string
			if r.Flags != "" {
				flags = strings.Split(r.Flags, ", ")
			}
			result.EarlyExpansion = append(result.EarlyExpansion, dto.EarlyExpansionSignal{
				Symbol:     r.Symbol,
				MACDStatus: r.MACDStatus,
				Score:      r.Score,
				ADR:        r.ADR,
				Liquidity:  r.Liquidity,
				Flags:      flags,
			})
		}
	}

	return result
}

// MarketMood labels the snapshot by mean ADR.
func MarketMood(rows []Row, p Policy) string {
	if len(rows) == 0 {
		return "Volatile"
	}
	var sum float64
	for _, r := range rows {
		sum += r.ADR
	}
	mean := sum / float64(len(rows))
	switch {
	case mean >= p.TrendingMeanADR:
		return "Trending"
	case mean >= p.RangeMeanADR:
		return "Range"
	default:
		return "Volatile"
	}
}
