package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ScreenerSignal records one Early Expansion alert emitted by a screener run.
type ScreenerSignal struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	RunID      string         `json:"run_id" gorm:"not null"`
	Symbol     string         `json:"symbol" gorm:"not null"`
	MACDStatus string         `json:"macd_status" gorm:"column:macd_status"`
	Score      float64        `json:"score"`
	ADR        float64        `json:"adr" gorm:"column:adr"`
	Liquidity  float64        `json:"liquidity"`
	Flags      pq.StringArray `json:"flags" gorm:"column:flags;type:text[]"`
	CreatedAt  time.Time      `json:"created_at" gorm:"autoCreateTime"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// TableName overrides the gorm table name.
func (ScreenerSignal) TableName() string {
	return "screener_signals"
}
