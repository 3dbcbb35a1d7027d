package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tradesim/internal/errors"
	"tradesim/internal/models"
	"tradesim/internal/services"
)

// RequestHandler handles the action-request approval workflow
type RequestHandler struct {
	requestService services.RequestServicer
}

// NewRequestHandler creates a new RequestHandler
func NewRequestHandler(requestService services.RequestServicer) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// SubmitRequest represents a user-submitted action request. Any
// client-supplied status or user_id is ignored.
type SubmitRequest struct {
	RequestType    string          `json:"request_type" binding:"required"`
	AdditionalInfo json.RawMessage `json:"additional_info" binding:"required"`
}

// ResolveRequest carries the admin's decision; an empty body means APPROVE.
type ResolveRequest struct {
	Decision string `json:"decision" binding:"omitempty,decision"`
}

// List returns all action requests
// @Summary     List action requests (admin)
// @Tags        requests
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "All requests"
// @Failure     403 {object} ErrorResponse "Admin only"
// @Router      /request [get]
func (h *RequestHandler) List(c *gin.Context) {
	requests, err := h.requestService.List()
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// Submit records a new action request
// @Summary     Submit an action request
// @Tags        requests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SubmitRequest true "Request"
// @Success     200 {object} map[string]interface{} "Created request, status PENDING"
// @Failure     400 {object} ErrorResponse "Invalid payload or request type"
// @Router      /request/add [post]
func (h *RequestHandler) Submit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	request, err := h.requestService.Submit(userID, models.RequestType(req.RequestType), req.AdditionalInfo)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "request": request})
}

// Resolve applies an admin decision to a pending request
// @Summary     Resolve an action request (admin)
// @Tags        requests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Request ID"
// @Param       request body ResolveRequest false "Decision, APPROVE when omitted"
// @Success     200 {object} map[string]interface{} "Resolved request"
// @Failure     404 {object} ErrorResponse "Unknown request"
// @Failure     409 {object} ErrorResponse "Already resolved"
// @Router      /request/accept/{id} [post]
func (h *RequestHandler) Resolve(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	// The decision body is optional; no body means APPROVE.
	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	decision := services.DecisionApprove
	if req.Decision != "" {
		decision = services.Decision(req.Decision)
	}

	request, err := h.requestService.Resolve(id, adminID, decision, c.ClientIP())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "request": request})
}

// GetByID returns one request.
func (h *RequestHandler) GetByID(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	request, err := h.requestService.GetByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": request})
}

// Mine returns the caller's own requests.
func (h *RequestHandler) Mine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	requests, err := h.requestService.GetByUserID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}
