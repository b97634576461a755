package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwingEligible(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name string
		row  Row
		want bool
	}{
		{"qualifies", Row{Liquidity: 150, ADR: 3.0, MACDStatus: StatusExpansion}, true},
		{"liquidity below gate", Row{Liquidity: 99, ADR: 3.0, MACDStatus: StatusExpansion}, false},
		{"adr below gate", Row{Liquidity: 150, ADR: 2.4, MACDStatus: StatusExpansion}, false},
		{"unfavorable momentum", Row{Liquidity: 150, ADR: 3.0, MACDStatus: StatusNegative}, false},
		{"fallback state is not favorable", Row{Liquidity: 150, ADR: 3.0, MACDStatus: StatusUnknown}, false},
		{"boundary values pass", Row{Liquidity: 100, ADR: 2.5, MACDStatus: StatusPositive}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SwingEligible(tt.row, p))
		})
	}
}

func TestNearMissEligible(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name string
		row  Row
		want bool
	}{
		{"adr just under swing threshold", Row{Liquidity: 120, ADR: 2.2, MACDStatus: StatusPositive}, true},
		{"adr band lower bound", Row{Liquidity: 120, ADR: 2.0, MACDStatus: StatusPositive}, true},
		{"adr band upper bound excluded", Row{Liquidity: 120, ADR: 2.5, MACDStatus: StatusPositive}, false},
		{"swing adr with stalled momentum", Row{Liquidity: 120, ADR: 3.0, MACDStatus: StatusDistribution}, true},
		{"swing adr with favorable momentum", Row{Liquidity: 120, ADR: 3.0, MACDStatus: StatusExpansion}, false},
		{"illiquid never near-miss", Row{Liquidity: 50, ADR: 2.2, MACDStatus: StatusPositive}, false},
		{"low adr unfavorable", Row{Liquidity: 120, ADR: 1.5, MACDStatus: StatusNegative}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NearMissEligible(tt.row, p))
		})
	}
}

// Swing and near-miss sets are disjoint for any input.
func TestSwingAndNearMissDisjoint(t *testing.T) {
	p := DefaultPolicy()

	statuses := []MACDStatus{
		StatusEarlyExpansion, StatusExpansion, StatusPositive,
		StatusNegative, StatusDistribution, StatusMixed, StatusUnknown,
	}
	liquidities := []float64{0, 50, 100, 500, 5000}
	adrs := []float64{0, 1.9, 2.0, 2.4, 2.5, 3.0, 8.0}

	for _, status := range statuses {
		for _, liq := range liquidities {
			for _, adr := range adrs {
				row := Row{Liquidity: liq, ADR: adr, MACDStatus: status}
				name := fmt.Sprintf("%s/liq=%.0f/adr=%.1f", status, liq, adr)
				assert.False(t, SwingEligible(row, p) && NearMissEligible(row, p), name)
			}
		}
	}
}

func TestFiltersCopyRows(t *testing.T) {
	p := DefaultPolicy()
	rows := []Row{
		{Symbol: "A", Liquidity: 150, ADR: 3.0, MACDStatus: StatusExpansion},
		{Symbol: "B", Liquidity: 120, ADR: 2.2, MACDStatus: StatusPositive},
	}

	swing := FilterSwing(rows, p)
	near := FilterNearMiss(rows, p)

	assert.Len(t, swing, 1)
	assert.Equal(t, "A", swing[0].Symbol)
	assert.Len(t, near, 1)
	assert.Equal(t, "B", near[0].Symbol)

	swing[0].Symbol = "MUTATED"
	assert.Equal(t, "A", rows[0].Symbol)
}
