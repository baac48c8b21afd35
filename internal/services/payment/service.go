package payment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"salesdrive/internal/apierr"
	"salesdrive/internal/domain/payment"
	"salesdrive/internal/query"
	"salesdrive/internal/transport"
)

const (
	listPath   = "/api/payment/list/"
	createPath = "/api/payment/"
)

// Query is the payment list builder
type Query = query.LedgerQuery[*payment.ListResponse]

// Service handles the payment endpoints
type Service struct {
	doer transport.Doer
	log  zerolog.Logger
}

// NewService creates a new payment service
func NewService(doer transport.Doer, logger zerolog.Logger) *Service {
	return &Service{
		doer: doer,
		log:  logger.With().Str("service", "payment").Logger(),
	}
}

// List starts a payment list query
func (s *Service) List(initial *query.Params) *Query {
	return query.NewLedgerQuery(initial, s.FetchPayments)
}

// FetchPayments shapes the date filters of p and fetches one page of payments
func (s *Service) FetchPayments(ctx context.Context, p query.Params) (*payment.ListResponse, error) {
	shaped, err := query.ShapeDateFilters(p, query.DocumentDateFields)
	if err != nil {
		return nil, err
	}

	var resp payment.ListResponse
	if err := s.doer.Get(ctx, listPath, shaped.Values(), &resp); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	if err := apierr.CheckAuthMessage(resp.Message); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create registers a payment and returns its id. Required fields are checked
// before anything is sent.
func (s *Service) Create(ctx context.Context, params payment.CreateParams) (int, error) {
	if err := params.Validate(); err != nil {
		return 0, apierr.InvalidArgument("payment: %v", err)
	}

	var resp payment.CreateResponse
	if err := s.doer.Post(ctx, createPath, params, &resp); err != nil {
		return 0, fmt.Errorf("create payment: %w", err)
	}
	if resp.Status == "error" {
		if err := apierr.CheckAuthMessage(resp.Message); err != nil {
			return 0, err
		}
		return 0, apierr.Validation(resp.Message)
	}
	if resp.Data == nil || resp.Data.PaymentID == 0 {
		return 0, apierr.NotFound("payment created but no id returned")
	}

	s.log.Info().
		Int("payment_id", resp.Data.PaymentID).
		Int("order_id", params.OrderID).
		Msg("payment created")
	return resp.Data.PaymentID, nil
}
