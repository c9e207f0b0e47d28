package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"waitlist.backend/internal/domain/entities"
	"waitlist.backend/internal/interfaces/http/response"
)

type WaitlistService interface {
	IsInWaitlist(ctx context.Context, address string) (*entities.WaitlistCheckResponse, error)
}

// WaitlistHandler answers membership checks
type WaitlistHandler struct {
	waitlistUsecase WaitlistService
}

// NewWaitlistHandler creates a new waitlist handler
func NewWaitlistHandler(waitlistUsecase WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{waitlistUsecase: waitlistUsecase}
}

// Check reports whether the wallet is a paid waitlist member
// GET /api/waitlist/check?address=
func (h *WaitlistHandler) Check(c *gin.Context) {
	resp, err := h.waitlistUsecase.IsInWaitlist(c.Request.Context(), c.Query("address"))
	if err != nil {
		response.ErrorWithoutDetails(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}
