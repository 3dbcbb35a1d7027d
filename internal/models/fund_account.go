package models

// FundAccount holds a user's simulated cash balance. One account per user,
// created lazily on the first approved deposit.
type FundAccount struct {
	Base
	UserID  uint    `gorm:"not null;uniqueIndex" json:"user_id"`
	Balance float64 `gorm:"not null;default:0" json:"balance"`
}
