package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"waitlist.backend/internal/domain/entities"
	domainerrors "waitlist.backend/internal/domain/errors"
	"waitlist.backend/internal/interfaces/http/response"
)

const (
	// PaymentHeader carries the base64 x402 payment proof
	PaymentHeader = "X-PAYMENT"

	protectedContentPath = "/api/protected-content"
)

type AccessService interface {
	Access(ctx context.Context, req *entities.AccessRequest) (*entities.AccessOutcome, error)
}

// AccessHandler serves the payment-gated content
type AccessHandler struct {
	accessUsecase AccessService
	publicBaseURL string
}

// NewAccessHandler creates a new access handler. publicBaseURL, when set,
// replaces the request origin in the advertised resource URL.
func NewAccessHandler(accessUsecase AccessService, publicBaseURL string) *AccessHandler {
	return &AccessHandler{accessUsecase: accessUsecase, publicBaseURL: publicBaseURL}
}

// Access grants members the protected content or answers with a payment challenge
// POST /api/protected-content
func (h *AccessHandler) Access(c *gin.Context) {
	var input entities.AccessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation("Wallet address is required"))
		return
	}

	outcome, err := h.accessUsecase.Access(c.Request.Context(), &entities.AccessRequest{
		WalletAddress: input.WalletAddress,
		PaymentData:   c.GetHeader(PaymentHeader),
		ResourceURL:   h.resourceURL(c),
		Method:        c.Request.Method,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if outcome.Settlement != nil {
		response.Settlement(c, outcome.Settlement)
		return
	}

	for k, v := range outcome.Headers {
		c.Header(k, v)
	}
	response.Success(c, http.StatusOK, outcome.Response)
}

func (h *AccessHandler) resourceURL(c *gin.Context) string {
	if h.publicBaseURL != "" {
		return h.publicBaseURL + protectedContentPath
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host + protectedContentPath
}
