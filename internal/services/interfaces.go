package services

import (
	"encoding/json"

	"gorm.io/gorm"

	"tradesim/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password string, role models.Role) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	ResetPassword(tx *gorm.DB, email, newPassword string) error
}

// PortfolioServicer defines the contract for the position ledger.
type PortfolioServicer interface {
	ApplyTrade(userID uint, symbol string, quantityDelta float64, price *float64) (*models.Position, error)
	ApplyTradeTx(tx *gorm.DB, userID uint, symbol string, quantityDelta float64, price *float64) (*models.Position, error)
	GetPositions(userID uint) ([]models.Position, error)
}

// FundsServicer defines the contract for the simulated cash balance.
// Mutations take a transaction handle so request resolution can apply
// them atomically with the status change.
type FundsServicer interface {
	Deposit(tx *gorm.DB, userID uint, amount float64) (*models.FundAccount, error)
	Withdraw(tx *gorm.DB, userID uint, amount float64) (*models.FundAccount, error)
	GetBalance(userID uint) (float64, error)
}

// Decision is an admin's verdict on a pending action request.
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// RequestServicer defines the contract for the approval workflow.
type RequestServicer interface {
	Submit(userID uint, requestType models.RequestType, payload json.RawMessage) (*models.ActionRequest, error)
	List() ([]models.ActionRequest, error)
	GetByID(id uint) (*models.ActionRequest, error)
	GetByUserID(userID uint) ([]models.ActionRequest, error)
	Resolve(id, adminID uint, decision Decision, clientIP string) (*models.ActionRequest, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
