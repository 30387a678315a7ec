package saldo

import "time"

// Balance is one snapshot of the bank account balance, recorded whenever a
// statement import detects an ending balance.
type Balance struct {
	ID         uint      `gorm:"primaryKey"`
	Amount     float64   `gorm:"type:numeric(12,2);not null"`
	RecordedAt time.Time `gorm:"not null"`
}

func (Balance) TableName() string {
	return "balances"
}
