package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tradesim/internal/errors"
	"tradesim/internal/services"
)

// PortfolioHandler handles position ledger requests
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
	fundsService     services.FundsServicer
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService services.PortfolioServicer, fundsService services.FundsServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, fundsService: fundsService}
}

// TradeRequest represents an admin-side trade on a user's portfolio.
// Price is optional on sells; the cost basis is left unchanged then.
type TradeRequest struct {
	Symbol   string   `json:"symbol" binding:"required,symbol"`
	Quantity float64  `json:"quantity" binding:"required,gt=0"`
	Price    *float64 `json:"price" binding:"omitempty,gt=0"`
}

// GetPortfolio returns the caller's positions and cash balance
// @Summary     Get own portfolio
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Positions and balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /auth/portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	positions, err := h.portfolioService.GetPositions(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	balance, err := h.fundsService.GetBalance(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": positions, "balance": balance})
}

// Buy applies an admin-initiated buy to a user's portfolio
// @Summary     Buy stock for a user (admin)
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Param       request body TradeRequest true "Trade"
// @Success     200 {object} map[string]interface{} "Updated positions"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Router      /auth/portfolio/{id}/buy [get]
func (h *PortfolioHandler) Buy(c *gin.Context) {
	h.trade(c, false)
}

// Sell applies an admin-initiated sell to a user's portfolio
// @Summary     Sell stock for a user (admin)
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "User ID"
// @Param       request body TradeRequest true "Trade"
// @Success     200 {object} map[string]interface{} "Updated positions"
// @Failure     400 {object} ErrorResponse "Invalid input or oversell"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Router      /auth/portfolio/{id}/sell [get]
func (h *PortfolioHandler) Sell(c *gin.Context) {
	h.trade(c, true)
}

// trade runs a buy or sell against the ledger. Sells are expressed as a
// negative quantity delta with no price.
func (h *PortfolioHandler) trade(c *gin.Context, sell bool) {
	targetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	quantityDelta := req.Quantity
	price := req.Price
	if sell {
		quantityDelta = -req.Quantity
		price = nil
	}

	if _, err := h.portfolioService.ApplyTrade(targetID, req.Symbol, quantityDelta, price); err != nil {
		respondWithError(c, err)
		return
	}

	positions, err := h.portfolioService.GetPositions(targetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": positions})
}
