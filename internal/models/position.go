package models

// Position represents a user's holding of a single symbol. One row per
// (user_id, symbol); quantity never goes negative and the row survives a
// full sell with quantity 0.
type Position struct {
	Base
	UserID       uint     `gorm:"not null;uniqueIndex:uq_positions_user_symbol" json:"user_id"`
	Symbol       string   `gorm:"not null;uniqueIndex:uq_positions_user_symbol" json:"symbol"`
	Quantity     float64  `gorm:"not null" json:"quantity"`
	AveragePrice *float64 `json:"average_price"`
}

// TableName keeps the table name from the original schema.
func (Position) TableName() string { return "portfolios" }
