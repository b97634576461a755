package pipeline

// ewma computes an exponential moving average with the given smoothing span,
// seeded from the first sample (alpha = 2/(span+1)). Short series therefore
// carry less smoothing history; that is an accepted approximation since each
// row re-seeds from its own series.
func ewma(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// Classify derives the momentum state for one chronological close series.
// It is a pure function: no smoothing state carries across rows or runs.
func Classify(closes []float64, p Policy) MACDStatus {
	if len(closes) < p.MinHistory {
		return p.FallbackStatus
	}

	fast := ewma(closes, p.FastSpan)
	slow := ewma(closes, p.SlowSpan)

	macdLine := make([]float64, len(closes))
	for i := range macdLine {
		macdLine[i] = fast[i] - slow[i]
	}
	signal := ewma(macdLine, p.SignalSpan)

	n := len(macdLine)
	lastHist := macdLine[n-1] - signal[n-1]
	prevHist := macdLine[n-2] - signal[n-2]

	switch {
	case lastHist > 0 && prevHist <= 0:
		return StatusEarlyExpansion
	case prevHist > 0 && lastHist > prevHist:
		return StatusExpansion
	case lastHist > 0:
		return StatusPositive
	}

	if !p.ExtendedStates {
		return StatusNegative
	}

	// Histogram is non-positive. Split on where the MACD line itself sits:
	// a line still above zero with a shrinking histogram is distribution,
	// above zero otherwise is mixed, below zero is an outright negative.
	switch {
	case macdLine[n-1] > 0 && lastHist < prevHist:
		return StatusDistribution
	case macdLine[n-1] > 0:
		return StatusMixed
	default:
		return StatusNegative
	}
}

// ClassifyRows returns a copy of rows with MACDStatus populated.
func ClassifyRows(rows []Row, p Policy) []Row {
	out := make([]Row, len(rows))
	for i, row := range rows {
		row.MACDStatus = Classify(row.Closes, p)
		out[i] = row
	}
	return out
}
