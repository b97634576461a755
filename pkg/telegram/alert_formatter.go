package telegram

import (
	"fmt"
	"strings"

	"golang-swing-screener/internal/screener/dto"
)

// FormatEarlyExpansionAlert formats a single Early Expansion signal as a
// Markdown message for Telegram.
func FormatEarlyExpansionAlert(signal dto.EarlyExpansionSignal, meta dto.RunMetadata) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🚀 *Early Expansion: %s*\n\n", signal.Symbol))
	b.WriteString(fmt.Sprintf("📊 *MACD:* %s\n", signal.MACDStatus))
	b.WriteString(fmt.Sprintf("🎯 *Score:* %.2f\n", signal.Score))
	b.WriteString(fmt.Sprintf("📈 *ADR:* %.2f%%\n", signal.ADR))
	b.WriteString(fmt.Sprintf("💧 *Liquidity:* %.2f Cr\n", signal.Liquidity))
	b.WriteString(fmt.Sprintf("\n🕒 %s · %s", meta.RunTimestamp, meta.MarketSession))
	return b.String()
}

// FormatEarlyExpansionAlerts formats a batch of signals into one message per
// signal, preserving table order.
func FormatEarlyExpansionAlerts(signals []dto.EarlyExpansionSignal, meta dto.RunMetadata) []string {
	messages := make([]string, 0, len(signals))
	for _, s := range signals {
		messages = append(messages, FormatEarlyExpansionAlert(s, meta))
	}
	return messages
}
