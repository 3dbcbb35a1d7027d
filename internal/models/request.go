package models

import (
	"encoding/json"

	apperrors "tradesim/internal/errors"
)

// RequestType identifies the action a user is asking an admin to approve.
type RequestType string

const (
	RequestTypeBuyStock      RequestType = "Buy Stock"
	RequestTypeSellStock     RequestType = "Sell Stock"
	RequestTypeWithdrawFunds RequestType = "Withdraw Funds"
	RequestTypeAddFunds      RequestType = "Add Funds"
	RequestTypePasswordReset RequestType = "Password Reset"
)

// RequestStatus is the approval state of an action request.
// PENDING transitions once, to APPROVED or REJECTED.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// ActionRequest is a user-submitted instruction that takes effect only
// after an admin resolves it. AdditionalInfo holds the type-dependent
// payload serialized as JSON text.
type ActionRequest struct {
	Base
	UserID         uint          `gorm:"not null;index" json:"user_id"`
	RequestType    RequestType   `gorm:"not null" json:"request_type"`
	Status         RequestStatus `gorm:"not null;default:'PENDING'" json:"status"`
	AdditionalInfo string        `gorm:"type:text" json:"additional_info"`
	ActionAdminID  *uint         `json:"action_admin_id"`
}

// TableName keeps the table name from the original schema.
func (ActionRequest) TableName() string { return "requests" }

// StockPayload is the additional_info shape for Buy Stock and Sell Stock.
type StockPayload struct {
	StockSymbol string   `json:"stock_symbol"`
	Quantity    float64  `json:"quantity"`
	Price       *float64 `json:"price,omitempty"`
}

// Validate checks the required stock fields. A zero quantity counts as
// missing, matching the original behavior.
func (p *StockPayload) Validate() error {
	if p.StockSymbol == "" || p.Quantity <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "stock_symbol and quantity are required")
	}
	return nil
}

// FundPayload is the additional_info shape for Add Funds and Withdraw Funds.
type FundPayload struct {
	Amount float64 `json:"amount"`
}

// Validate checks the required fund fields.
func (p *FundPayload) Validate() error {
	if p.Amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount is required")
	}
	return nil
}

// PasswordResetPayload is the additional_info shape for Password Reset.
type PasswordResetPayload struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

// Validate checks the required password-reset fields.
func (p *PasswordResetPayload) Validate() error {
	if p.Email == "" || p.NewPassword == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "email and new_password are required")
	}
	return nil
}

// RequestPayload is implemented by every additional_info variant.
type RequestPayload interface {
	Validate() error
}

// ParsePayload decodes and validates raw additional_info against the shape
// required by the request type. It returns the typed payload, or
// ErrInvalidRequestType when the type is not one of the five recognized
// values.
func ParsePayload(requestType RequestType, raw []byte) (RequestPayload, error) {
	var payload RequestPayload

	switch requestType {
	case RequestTypeBuyStock, RequestTypeSellStock:
		payload = &StockPayload{}
	case RequestTypeWithdrawFunds, RequestTypeAddFunds:
		payload = &FundPayload{}
	case RequestTypePasswordReset:
		payload = &PasswordResetPayload{}
	default:
		return nil, apperrors.ErrInvalidRequestType
	}

	if len(raw) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "additional_info is required")
	}
	if err := json.Unmarshal(raw, payload); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "malformed additional_info")
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	return payload, nil
}

// Payload re-parses the stored additional_info of a persisted request.
func (r *ActionRequest) Payload() (RequestPayload, error) {
	return ParsePayload(r.RequestType, []byte(r.AdditionalInfo))
}
