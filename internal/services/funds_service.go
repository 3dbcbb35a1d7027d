package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "tradesim/internal/errors"
	"tradesim/internal/models"
)

// fundsService manages the simulated cash balance behind Add Funds and
// Withdraw Funds approvals.
type fundsService struct {
	db *gorm.DB
}

// NewFundsService creates a new FundsServicer.
func NewFundsService(db *gorm.DB) FundsServicer {
	return &fundsService{db: db}
}

// Deposit credits a user's fund account, creating it on first use.
func (s *fundsService) Deposit(tx *gorm.DB, userID uint, amount float64) (*models.FundAccount, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}

	var account models.FundAccount
	err := tx.Where("user_id = ?", userID).First(&account).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		account = models.FundAccount{UserID: userID, Balance: amount}
		if err := tx.Create(&account).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &account, nil
	}

	newBalance := account.Balance + amount
	if err := tx.Model(&account).Update("balance", newBalance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	account.Balance = newBalance
	return &account, nil
}

// Withdraw debits a user's fund account. The balance never goes negative.
func (s *fundsService) Withdraw(tx *gorm.DB, userID uint, amount float64) (*models.FundAccount, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}

	var account models.FundAccount
	if err := tx.Where("user_id = ?", userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInsufficientFunds
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	newBalance := account.Balance - amount
	if newBalance < 0 {
		return nil, apperrors.ErrInsufficientFunds
	}

	if err := tx.Model(&account).Update("balance", newBalance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	account.Balance = newBalance
	return &account, nil
}

// GetBalance returns a user's fund balance; users without an account have 0.
func (s *fundsService) GetBalance(userID uint) (float64, error) {
	var account models.FundAccount
	if err := s.db.Where("user_id = ?", userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account.Balance, nil
}
