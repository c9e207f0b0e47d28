package handlers

import (
	"context"

	"waitlist.backend/internal/domain/entities"
	"waitlist.backend/pkg/utils"
)

type accessServiceStub struct {
	accessFn func(context.Context, *entities.AccessRequest) (*entities.AccessOutcome, error)
}

func (s accessServiceStub) Access(ctx context.Context, req *entities.AccessRequest) (*entities.AccessOutcome, error) {
	return s.accessFn(ctx, req)
}

type waitlistServiceStub struct {
	checkFn func(context.Context, string) (*entities.WaitlistCheckResponse, error)
}

func (s waitlistServiceStub) IsInWaitlist(ctx context.Context, address string) (*entities.WaitlistCheckResponse, error) {
	return s.checkFn(ctx, address)
}

type paymentServiceStub struct {
	listFn   func(context.Context, string, utils.PaginationParams) (*entities.PaymentHistoryResponse, error)
	updateFn func(context.Context, *entities.UpdatePaymentStatusInput) error
}

func (s paymentServiceStub) ListByWallet(ctx context.Context, address string, p utils.PaginationParams) (*entities.PaymentHistoryResponse, error) {
	return s.listFn(ctx, address, p)
}

func (s paymentServiceStub) UpdateStatus(ctx context.Context, input *entities.UpdatePaymentStatusInput) error {
	return s.updateFn(ctx, input)
}

type pingerStub struct {
	err error
}

func (p pingerStub) PingContext(context.Context) error { return p.err }
