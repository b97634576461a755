package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// RawTable is an unnormalized tabular snapshot as loaded from the source.
type RawTable struct {
	Columns []string
	Records [][]string
}

// Row is one normalized stock observation. Closes are chronological,
// oldest to newest, with today's close last.
type Row struct {
	Symbol     string
	Price      float64
	PctChg     float64
	ADR        float64
	Liquidity  float64
	Sector     string
	Closes     []float64
	MACDStatus MACDStatus
}

// requiredFields are the canonical columns every row must end up with.
// Missing columns degrade to zero values, they never fail the run.
var requiredFields = []string{"symbol", "price", "pct_chg", "adr", "liquidity", "sector"}

var columnSynonyms = map[string]string{
	"liquidity_rush": "liquidity",
	"daily_change":   "pct_chg",
	"change":         "pct_chg",
	"chg":            "pct_chg",
	"ticker":         "symbol",
	"stock":          "symbol",
	"industry":       "sector",
}

var parenthesized = regexp.MustCompile(`\([^)]*\)`)

// CanonicalColumn maps a raw header to its canonical name: lower-cased,
// trimmed, with percent signs and parenthesized unit suffixes removed and
// separators collapsed to underscores.
func CanonicalColumn(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "%", "")
	s = parenthesized.ReplaceAllString(s, "")
	s = strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '_'
	}), "_")
	if canonical, ok := columnSynonyms[s]; ok {
		return canonical
	}
	return s
}

// closeColumn is one entry of the close-history schema descriptor:
// the column index holding the close `Offset` sessions back.
type closeColumn struct {
	Offset int
	Index  int
}

// tableSchema is resolved once per load; rows are then built by index
// lookups instead of re-parsing column names.
type tableSchema struct {
	fieldIndex map[string]int
	closes     []closeColumn
}

func resolveSchema(columns []string) tableSchema {
	schema := tableSchema{fieldIndex: make(map[string]int)}
	seenOffsets := make(map[int]bool)

	for i, raw := range columns {
		name := CanonicalColumn(raw)

		if offset, ok := parseCloseOffset(name); ok {
			if !seenOffsets[offset] {
				seenOffsets[offset] = true
				schema.closes = append(schema.closes, closeColumn{Offset: offset, Index: i})
			}
			if offset != 0 {
				continue
			}
			// The latest close doubles as price when no price column exists.
			name = "close"
		}

		// Duplicate canonical columns keep the first occurrence.
		if _, ok := schema.fieldIndex[name]; !ok {
			schema.fieldIndex[name] = i
		}
	}

	if _, ok := schema.fieldIndex["price"]; !ok {
		if idx, ok := schema.fieldIndex["close"]; ok {
			schema.fieldIndex["price"] = idx
		}
	}

	// Chronological order: largest offset (oldest) first, today's close last.
	for i := 0; i < len(schema.closes); i++ {
		for j := i + 1; j < len(schema.closes); j++ {
			if schema.closes[j].Offset > schema.closes[i].Offset {
				schema.closes[i], schema.closes[j] = schema.closes[j], schema.closes[i]
			}
		}
	}

	return schema
}

// parseCloseOffset recognizes close-history columns: "close" is offset 0,
// "close-N" is N sessions back.
func parseCloseOffset(name string) (int, bool) {
	if name == "close" {
		return 0, true
	}
	rest, ok := strings.CutPrefix(name, "close-")
	if !ok {
		return 0, false
	}
	offset, err := strconv.Atoi(rest)
	if err != nil || offset < 0 {
		return 0, false
	}
	return offset, true
}

// parseNumeric coerces a cell to a float. Malformed values report ok=false
// so callers can drop them (close series) or default them (metrics).
func parseNumeric(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSuffix(s, "%")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Normalize maps a raw table onto the canonical schema and builds one Row
// per record. Missing required fields degrade silently to zero values.
func Normalize(raw *RawTable) []Row {
	schema := resolveSchema(raw.Columns)

	cell := func(record []string, field string) (string, bool) {
		idx, ok := schema.fieldIndex[field]
		if !ok || idx >= len(record) {
			return "", false
		}
		return record[idx], true
	}

	rows := make([]Row, 0, len(raw.Records))
	for _, record := range raw.Records {
		var row Row

		if v, ok := cell(record, "symbol"); ok {
			row.Symbol = strings.TrimSpace(v)
		}
		if v, ok := cell(record, "sector"); ok {
			row.Sector = strings.TrimSpace(v)
		}
		for field, dst := range map[string]*float64{
			"price":     &row.Price,
			"pct_chg":   &row.PctChg,
			"adr":       &row.ADR,
			"liquidity": &row.Liquidity,
		} {
			if v, ok := cell(record, field); ok {
				if parsed, ok := parseNumeric(v); ok {
					*dst = parsed
				}
			}
		}

		row.Closes = make([]float64, 0, len(schema.closes))
		for _, cc := range schema.closes {
			if cc.Index >= len(record) {
				continue
			}
			if v, ok := parseNumeric(record[cc.Index]); ok {
				row.Closes = append(row.Closes, v)
			}
		}

		rows = append(rows, row)
	}

	return rows
}
