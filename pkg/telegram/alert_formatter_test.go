package telegram

import (
	"testing"

	"golang-swing-screener/internal/screener/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEarlyExpansionAlert(t *testing.T) {
	signal := dto.EarlyExpansionSignal{
		Symbol:     "EPSILON",
		MACDStatus: "Early Expansion",
		Score:      90,
		ADR:        5,
		Liquidity:  2000,
	}
	meta := dto.RunMetadata{
		RunTimestamp:  "2024-01-15 10:30:00",
		MarketSession: "LIVE",
	}

	msg := FormatEarlyExpansionAlert(signal, meta)

	assert.Contains(t, msg, "*Early Expansion: EPSILON*")
	assert.Contains(t, msg, "*Score:* 90.00")
	assert.Contains(t, msg, "*ADR:* 5.00%")
	assert.Contains(t, msg, "*Liquidity:* 2000.00 Cr")
	assert.Contains(t, msg, "2024-01-15 10:30:00 · LIVE")
}

func TestFormatEarlyExpansionAlertsPreservesOrder(t *testing.T) {
	signals := []dto.EarlyExpansionSignal{
		{Symbol: "FIRST"},
		{Symbol: "SECOND"},
	}

	messages := FormatEarlyExpansionAlerts(signals, dto.RunMetadata{})
	require.Len(t, messages, 2)
	assert.Contains(t, messages[0], "FIRST")
	assert.Contains(t, messages[1], "SECOND")

	assert.Empty(t, FormatEarlyExpansionAlerts(nil, dto.RunMetadata{}))
}
