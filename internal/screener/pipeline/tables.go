package pipeline

import (
	"sort"

	"golang-swing-screener/internal/screener/dto"
)

// buildTable sorts the derived rows into their locked projection. The sort
// is stable: score descending, ties keeping the pre-sort order. Swing and
// near-miss tables pre-order by ADR descending so score ties fall back to
// the more volatile name; the positional table keeps input order. A topN of
// zero means no cap.
func buildTable(name string, columns []string, rows []DerivedRow, preOrderADR bool, topN int) dto.Table {
	sorted := make([]DerivedRow, len(rows))
	copy(sorted, rows)

	if preOrderADR {
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ADR > sorted[j].ADR
		})
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	if topN > 0 && len(sorted) > topN {
		sorted = sorted[:topN]
	}

	out := dto.Table{Name: name, Columns: columns, Rows: make([]dto.TableRow, 0, len(sorted))}
	for i, r := range sorted {
		out.Rows = append(out.Rows, dto.TableRow{
			Rank:            i + 1,
			Symbol:          r.Symbol,
			TradeBias:       r.TradeBias,
			TradeStyle:      r.TradeStyle,
			MACDStatus:      string(r.MACDStatus),
			Score:           r.Score,
			Price:           r.Price,
			PctChg:          r.PctChg,
			ADR:             r.ADR,
			Liquidity:       r.Liquidity,
			TrendStrength:   r.TrendStrength,
			PortfolioAction: r.PortfolioAction,
			Sector:          r.Sector,
			Flags:           r.Flags,
		})
	}
	return out
}

// BuildSwingTable builds the locked swing projection.
func BuildSwingTable(rows []DerivedRow) dto.Table {
	return buildTable("swing", dto.SwingTableColumns, rows, true, 0)
}

// BuildNearMissTable builds the locked near-miss projection.
func BuildNearMissTable(rows []DerivedRow) dto.Table {
	return buildTable("near_miss", dto.NearMissTableColumns, rows, true, 0)
}

// BuildPositionalTable builds the locked positional projection, capped to
// the policy's top N after sorting.
func BuildPositionalTable(rows []DerivedRow, p Policy) dto.Table {
	return buildTable("positional", dto.PositionalTableColumns, rows, false, p.PositionalTopN)
}
