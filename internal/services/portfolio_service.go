package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "tradesim/internal/errors"
	"tradesim/internal/models"
)

// portfolioService maintains per-user positions under buy/sell mutations.
type portfolioService struct {
	db *gorm.DB
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB) PortfolioServicer {
	return &portfolioService{db: db}
}

// ApplyTrade applies a buy (positive quantityDelta) or sell (negative
// quantityDelta) to the caller's position in symbol, inside its own
// transaction. Buys with a price recompute the weighted average cost;
// sells leave the average untouched. The position row survives a full
// sell with quantity 0.
func (s *portfolioService) ApplyTrade(userID uint, symbol string, quantityDelta float64, price *float64) (*models.Position, error) {
	var position *models.Position
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		position, txErr = s.ApplyTradeTx(tx, userID, symbol, quantityDelta, price)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return position, nil
}

// ApplyTradeTx is ApplyTrade on the caller's transaction, used by the
// request workflow to combine the ledger effect with the status change.
func (s *portfolioService) ApplyTradeTx(tx *gorm.DB, userID uint, symbol string, quantityDelta float64, price *float64) (*models.Position, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required")
	}

	var position models.Position
	err := tx.Where("user_id = ? AND symbol = ?", userID, symbol).First(&position).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		// No existing position: only a buy may create one.
		if quantityDelta <= 0 {
			return nil, apperrors.ErrInsufficientHoldings
		}
		position = models.Position{
			UserID:       userID,
			Symbol:       symbol,
			Quantity:     quantityDelta,
			AveragePrice: price,
		}
		if err := tx.Create(&position).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &position, nil
	}

	newQuantity := position.Quantity + quantityDelta
	if newQuantity < 0 {
		return nil, apperrors.ErrInsufficientHoldings
	}

	// Average price is recomputed only when buying at a known price;
	// sells keep the existing cost basis (realized P&L is out of scope).
	newAverage := position.AveragePrice
	if quantityDelta > 0 && price != nil {
		existingAvg := 0.0
		if position.AveragePrice != nil {
			existingAvg = *position.AveragePrice
		}
		avg := (position.Quantity*existingAvg + quantityDelta**price) / newQuantity
		newAverage = &avg
	}

	updates := map[string]interface{}{
		"quantity":      newQuantity,
		"average_price": newAverage,
	}
	if err := tx.Model(&position).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	position.Quantity = newQuantity
	position.AveragePrice = newAverage
	return &position, nil
}

// GetPositions returns all positions for a user in insertion order.
func (s *portfolioService) GetPositions(userID uint) ([]models.Position, error) {
	var positions []models.Position
	if err := s.db.Where("user_id = ?", userID).Find(&positions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return positions, nil
}
