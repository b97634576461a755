package common

const (
	// RedisKeyLatestResult stores the JSON snapshot of the most recent screener run.
	RedisKeyLatestResult = "screener:latest_result"

	// RedisKeyEarlyExpansionAlert marks a symbol as already alerted. Format args: symbol.
	RedisKeyEarlyExpansionAlert = "screener:early_expansion_alert:%s"

	MarketSessionLive = "LIVE"
	MarketSessionPre  = "PRE"
	MarketSessionPost = "POST"
)
