package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tradesim/internal/quote"
)

// QuoteHandler proxies market data requests to the quote gateway
type QuoteHandler struct {
	quoteService *quote.Service
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService *quote.Service) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// Ticker returns snapshots for one or more comma-separated symbols
// @Summary     Current quotes
// @Tags        quotes
// @Produce     json
// @Param       symbol path string true "Comma-separated symbols"
// @Success     200 {array} quote.Snapshot
// @Failure     400 {object} ErrorResponse "No symbols"
// @Failure     500 {object} ErrorResponse "Upstream failure or timeout"
// @Router      /quote/ticker/{symbol} [get]
func (h *QuoteHandler) Ticker(c *gin.Context) {
	symbols := strings.Split(c.Param("symbol"), ",")

	snapshots, err := h.quoteService.Quote(c.Request.Context(), symbols)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshots)
}

// History returns OHLCV candles for a symbol
// @Summary     Price history
// @Tags        quotes
// @Produce     json
// @Param       symbol path string true "Symbol"
// @Param       start query string true "Start date"
// @Param       end query string false "End date"
// @Param       interval query string false "Candle width, defaults to 1d"
// @Success     200 {array} quote.Candle
// @Failure     400 {object} ErrorResponse "Missing or unparseable start"
// @Failure     500 {object} ErrorResponse "Upstream failure or timeout"
// @Router      /quote/history/{symbol} [get]
func (h *QuoteHandler) History(c *gin.Context) {
	candles, err := h.quoteService.History(
		c.Request.Context(),
		c.Param("symbol"),
		c.Query("start"),
		c.Query("end"),
		c.Query("interval"),
	)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, candles)
}
