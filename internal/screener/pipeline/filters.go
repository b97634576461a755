package pipeline

// SwingEligible reports whether a row passes the swing gates: liquid enough,
// volatile enough, and in a favorable momentum state.
func SwingEligible(r Row, p Policy) bool {
	return r.Liquidity >= p.MinLiquidity &&
		r.ADR >= p.SwingMinADR &&
		p.Favorable(r.MACDStatus)
}

// NearMissEligible reports whether a row narrowly fails the swing gates:
// either the ADR sits just under the swing threshold with momentum intact,
// or the ADR qualifies but momentum does not. Disjoint from SwingEligible
// by construction.
func NearMissEligible(r Row, p Policy) bool {
	if r.Liquidity < p.MinLiquidity {
		return false
	}
	favorable := p.Favorable(r.MACDStatus)
	if r.ADR >= p.NearMissMinADR && r.ADR < p.SwingMinADR && favorable {
		return true
	}
	if r.ADR >= p.SwingMinADR && !favorable {
		return true
	}
	return false
}

// FilterSwing returns the swing-eligible subset as a fresh slice.
func FilterSwing(rows []Row, p Policy) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if SwingEligible(r, p) {
			out = append(out, r)
		}
	}
	return out
}

// FilterNearMiss returns the near-miss subset as a fresh slice.
func FilterNearMiss(rows []Row, p Policy) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if NearMissEligible(r, p) {
			out = append(out, r)
		}
	}
	return out
}
