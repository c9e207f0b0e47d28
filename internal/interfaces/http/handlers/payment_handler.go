package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"waitlist.backend/internal/domain/entities"
	domainerrors "waitlist.backend/internal/domain/errors"
	"waitlist.backend/internal/interfaces/http/response"
	"waitlist.backend/pkg/utils"
)

const maxPageLimit = 100

type PaymentService interface {
	ListByWallet(ctx context.Context, address string, pagination utils.PaginationParams) (*entities.PaymentHistoryResponse, error)
	UpdateStatus(ctx context.Context, input *entities.UpdatePaymentStatusInput) error
}

// PaymentHandler handles payment log endpoints
type PaymentHandler struct {
	paymentUsecase PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

// ListPayments returns a wallet's payment attempts, newest first.
// Without a limit the whole history is returned.
// GET /api/payments?address=&page=&limit=
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	resp, err := h.paymentUsecase.ListByWallet(c.Request.Context(), c.Query("address"), utils.GetPaginationParams(page, limit))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// UpdateStatus applies a settlement status reported by the payment webhook
// POST /api/webhooks/payment-status
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	var input entities.UpdatePaymentStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	if err := h.paymentUsecase.UpdateStatus(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true})
}
