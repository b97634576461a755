package dto

// TableRow is one ranked entry of a locked output table. TrendStrength and
// PortfolioAction are only populated for the positional table.
type TableRow struct {
	Rank            int     `json:"rank"`
	Symbol          string  `json:"symbol"`
	TradeBias       string  `json:"trade_bias"`
	TradeStyle      string  `json:"trade_style"`
	MACDStatus      string  `json:"macd_status"`
	Score           float64 `json:"score"`
	Price           float64 `json:"price"`
	PctChg          float64 `json:"pct_chg"`
	ADR             float64 `json:"adr"`
	Liquidity       float64 `json:"liquidity"`
	TrendStrength   string  `json:"trend_strength,omitempty"`
	PortfolioAction string  `json:"portfolio_action,omitempty"`
	Sector          string  `json:"sector"`
	Flags           string  `json:"flags"`
}

// Table is an immutable ranked projection with its locked display columns.
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    []TableRow `json:"rows"`
}

// Locked display column sets, in presentation order.
var (
	SwingTableColumns = []string{
		"Rank", "Symbol", "Trade Bias", "Trade Style", "MACD Status", "Score",
		"Price (₹)", "% Chg", "ADR %", "Liquidity (₹ Cr)", "Sector", "Flags",
	}
	PositionalTableColumns = []string{
		"Rank", "Symbol", "Trade Bias", "Trade Style", "MACD Status", "Score",
		"Price (₹)", "% Chg", "ADR %", "Liquidity (₹ Cr)", "Trend Strength",
		"Portfolio Action", "Sector", "Flags",
	}
	NearMissTableColumns = []string{
		"Rank", "Symbol", "Trade Bias", "Trade Style", "MACD Status", "Score",
		"Price (₹)", "% Chg", "ADR %", "Liquidity (₹ Cr)", "Sector", "Flags",
	}
)

// RunMetadata describes one pipeline run.
type RunMetadata struct {
	Source        string `json:"source"`
	RunID         string `json:"run_id"`
	RunTimestamp  string `json:"run_timestamp"`
	VersionTag    string `json:"version_tag"`
	MarketSession string `json:"market_session"`
	MarketMood    string `json:"market_mood"`
}

// EarlyExpansionSignal is one swing row whose momentum just turned positive;
// the alert side-channel consumes these.
type EarlyExpansionSignal struct {
	Symbol     string   `json:"symbol"`
	MACDStatus string   `json:"macd_status"`
	Score      float64  `json:"score"`
	ADR        float64  `json:"adr"`
	Liquidity  float64  `json:"liquidity"`
	Flags      []string `json:"flags,omitempty"`
}

// ScreenerResult is the full output of one pipeline run.
type ScreenerResult struct {
	Swing          Table                  `json:"swing"`
	Positional     Table                  `json:"positional"`
	NearMiss       Table                  `json:"near_miss"`
	Metadata       RunMetadata            `json:"metadata"`
	EarlyExpansion []EarlyExpansionSignal `json:"early_expansion"`
}
