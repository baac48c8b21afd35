package document

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"salesdrive/internal/apierr"
	"salesdrive/internal/domain/document"
	"salesdrive/internal/query"
	"salesdrive/internal/transport"
)

// Query lists one document kind
type Query = query.DocumentQuery[*document.ListResponse]

// LedgerQuery lists cash orders, which also filter by direction
type LedgerQuery = query.LedgerQuery[*document.ListResponse]

// Service wraps the document list endpoints
type Service struct {
	doer transport.Doer
	log  zerolog.Logger
}

func NewService(doer transport.Doer, logger zerolog.Logger) *Service {
	return &Service{
		doer: doer,
		log:  logger.With().Str("service", "document").Logger(),
	}
}

func (s *Service) Invoices(initial *query.Params) *Query {
	return s.find(document.KindInvoice, initial)
}

func (s *Service) SalesInvoices(initial *query.Params) *Query {
	return s.find(document.KindSalesInvoice, initial)
}

func (s *Service) CashOrders(initial *query.Params) *LedgerQuery {
	return query.NewLedgerQuery(initial, s.fetcher(document.KindCashOrder))
}

func (s *Service) ArrivalProducts(initial *query.Params) *Query {
	return s.find(document.KindArrivalProduct, initial)
}

func (s *Service) Acts(initial *query.Params) *Query {
	return s.find(document.KindAct, initial)
}

func (s *Service) Contracts(initial *query.Params) *Query {
	return s.find(document.KindContract, initial)
}

func (s *Service) Checks(initial *query.Params) *Query {
	return s.find(document.KindCheck, initial)
}

func (s *Service) find(kind document.Kind, initial *query.Params) *Query {
	return query.NewDocumentQuery(initial, s.fetcher(kind))
}

func (s *Service) fetcher(kind document.Kind) query.Fetcher[*document.ListResponse] {
	return func(ctx context.Context, p query.Params) (*document.ListResponse, error) {
		return s.FetchDocuments(ctx, kind, p)
	}
}

// FetchDocuments shapes the date filters of p and fetches one page of kind
func (s *Service) FetchDocuments(ctx context.Context, kind document.Kind, p query.Params) (*document.ListResponse, error) {
	shaped, err := query.ShapeDateFilters(p, query.DocumentDateFields)
	if err != nil {
		return nil, err
	}

	var resp document.ListResponse
	if err := s.doer.Get(ctx, kind.Endpoint(), shaped.Values(), &resp); err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	if err := apierr.CheckAuthMessage(resp.Message); err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("kind", string(kind)).
		Int("count", len(resp.Data)).
		Int("page", resp.Pagination.CurrentPage).
		Msg("documents fetched")
	return &resp, nil
}
