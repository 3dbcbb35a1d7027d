package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "tradesim/internal/errors"
	"tradesim/internal/models"
)

// requestService records user-submitted action requests and moves them
// through the approval lifecycle, applying side effects on approval.
type requestService struct {
	db        *gorm.DB
	portfolio PortfolioServicer
	funds     FundsServicer
	users     UserServicer
	audit     AuditServicer
}

// NewRequestService creates a new RequestServicer.
func NewRequestService(db *gorm.DB, portfolio PortfolioServicer, funds FundsServicer, users UserServicer, audit AuditServicer) RequestServicer {
	return &requestService{
		db:        db,
		portfolio: portfolio,
		funds:     funds,
		users:     users,
		audit:     audit,
	}
}

// Submit validates the payload against the request type and records the
// request. Status is always PENDING at creation; any client-supplied
// status or user id is ignored by construction.
func (s *requestService) Submit(userID uint, requestType models.RequestType, payload json.RawMessage) (*models.ActionRequest, error) {
	parsed, err := models.ParsePayload(requestType, payload)
	if err != nil {
		return nil, err
	}

	// Re-serialize the typed payload so only recognized fields are stored.
	stored, err := json.Marshal(parsed)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	request := &models.ActionRequest{
		UserID:         userID,
		RequestType:    requestType,
		Status:         models.RequestStatusPending,
		AdditionalInfo: string(stored),
	}
	if err := s.db.Create(request).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return request, nil
}

// List returns all requests in insertion order.
func (s *requestService) List() ([]models.ActionRequest, error) {
	var requests []models.ActionRequest
	if err := s.db.Find(&requests).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return requests, nil
}

// GetByID returns a single request.
func (s *requestService) GetByID(id uint) (*models.ActionRequest, error) {
	var request models.ActionRequest
	if err := s.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &request, nil
}

// GetByUserID returns all requests submitted by one user.
func (s *requestService) GetByUserID(userID uint) ([]models.ActionRequest, error) {
	var requests []models.ActionRequest
	if err := s.db.Where("user_id = ?", userID).Find(&requests).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return requests, nil
}

// Resolve applies an admin decision to a pending request. Approval
// dispatches the side effect by request type; the effect and the status
// change commit in one transaction. Resolved requests are terminal.
func (s *requestService) Resolve(id, adminID uint, decision Decision, clientIP string) (*models.ActionRequest, error) {
	if decision != DecisionApprove && decision != DecisionReject {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "decision must be APPROVE or REJECT")
	}

	var request models.ActionRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if txErr := tx.First(&request, id).Error; txErr != nil {
			if errors.Is(txErr, gorm.ErrRecordNotFound) {
				return apperrors.ErrRequestNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}

		if request.Status != models.RequestStatusPending {
			return apperrors.ErrRequestAlreadyResolved
		}

		if decision == DecisionApprove {
			if txErr := s.dispatch(tx, &request); txErr != nil {
				return txErr
			}
			request.Status = models.RequestStatusApproved
		} else {
			request.Status = models.RequestStatusRejected
		}

		request.ActionAdminID = &adminID
		updates := map[string]interface{}{
			"status":          request.Status,
			"action_admin_id": adminID,
		}
		if txErr := tx.Model(&request).Updates(updates).Error; txErr != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Log(adminID, "request_"+string(request.Status), "request", request.ID, clientIP, map[string]interface{}{
		"request_type": request.RequestType,
		"request_user": request.UserID,
	})

	return &request, nil
}

// dispatch applies the approved request's effect on the caller's transaction.
func (s *requestService) dispatch(tx *gorm.DB, request *models.ActionRequest) error {
	payload, err := request.Payload()
	if err != nil {
		return err
	}

	switch request.RequestType {
	case models.RequestTypeBuyStock:
		stock := payload.(*models.StockPayload)
		_, err = s.portfolio.ApplyTradeTx(tx, request.UserID, stock.StockSymbol, stock.Quantity, stock.Price)
		return err

	case models.RequestTypeSellStock:
		stock := payload.(*models.StockPayload)
		_, err = s.portfolio.ApplyTradeTx(tx, request.UserID, stock.StockSymbol, -stock.Quantity, nil)
		return err

	case models.RequestTypeAddFunds:
		fund := payload.(*models.FundPayload)
		_, err = s.funds.Deposit(tx, request.UserID, fund.Amount)
		return err

	case models.RequestTypeWithdrawFunds:
		fund := payload.(*models.FundPayload)
		_, err = s.funds.Withdraw(tx, request.UserID, fund.Amount)
		return err

	case models.RequestTypePasswordReset:
		reset := payload.(*models.PasswordResetPayload)
		return s.users.ResetPassword(tx, reset.Email, reset.NewPassword)

	default:
		// Unreachable for persisted rows; Submit rejects unknown types.
		return apperrors.Wrap(apperrors.ErrInvalidRequestType, fmt.Errorf("stored request %d has type %q", request.ID, request.RequestType))
	}
}
