package order

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"salesdrive/internal/apierr"
	"salesdrive/internal/domain/order"
	"salesdrive/internal/query"
	"salesdrive/internal/transport"
)

const (
	listPath   = "/api/order/list/"
	createPath = "/handler/"
	updatePath = "/api/order/update/"
	notePath   = "/api/order/note/"
)

// Service wraps the order endpoints
type Service struct {
	doer transport.Doer
	log  zerolog.Logger
}

// NewService creates the order service
func NewService(doer transport.Doer, logger zerolog.Logger) *Service {
	return &Service{
		doer: doer,
		log:  logger.With().Str("service", "order").Logger(),
	}
}

// Query is the order list builder
type Query struct {
	query.Builder[*Query, *order.ListResponse]
	query.OrderFilters[*Query]
}

// Find starts an order list query. initial is copied and may be nil.
func (s *Service) Find(initial *query.Params) *Query {
	q := &Query{}
	st := query.NewState(initial)
	q.Builder = query.NewBuilder(q, st, s.FetchOrders)
	q.OrderFilters = query.NewOrderFilters(q, st)
	return q
}

// FetchOrders shapes the date filters of p and fetches one page of orders
func (s *Service) FetchOrders(ctx context.Context, p query.Params) (*order.ListResponse, error) {
	shaped, err := query.ShapeDateFilters(p, query.OrderDateFields)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, shaped.Values())
}

func (s *Service) list(ctx context.Context, q url.Values) (*order.ListResponse, error) {
	var resp order.ListResponse
	if err := s.doer.Get(ctx, listPath, q, &resp); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if err := apierr.CheckAuthMessage(resp.Message); err != nil {
		return nil, err
	}

	s.log.Debug().
		Int("count", len(resp.Data)).
		Int("page", resp.Pagination.CurrentPage).
		Int("page_count", resp.Pagination.PageCount).
		Msg("orders fetched")
	return &resp, nil
}

// FindByID returns the order with the given id or an ErrNotFound error
func (s *Service) FindByID(ctx context.Context, id int) (*order.Order, error) {
	resp, err := s.list(ctx, url.Values{"filter[id]": {strconv.Itoa(id)}})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, apierr.NotFound("order %d not found", id)
	}
	return &resp.Data[0], nil
}

// Create creates an order and returns its id
func (s *Service) Create(ctx context.Context, fields order.CreateFields) (int, error) {
	var resp order.CreateResponse
	if err := s.doer.Post(ctx, createPath, fields, &resp); err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}
	if resp.Error != "" {
		return 0, apierr.Validation(resp.Error)
	}
	if resp.Data == nil || resp.Data.OrderID == 0 {
		return 0, apierr.NotFound("order created but no id returned")
	}

	s.log.Debug().Int("order_id", resp.Data.OrderID).Msg("order created")
	return resp.Data.OrderID, nil
}

type updateByID struct {
	ID   int              `json:"id"`
	Data order.UpdateData `json:"data"`
}

type updateByExternalID struct {
	ExternalID string           `json:"externalId"`
	Data       order.UpdateData `json:"data"`
}

// UpdateByID updates the order with the given SalesDrive id
func (s *Service) UpdateByID(ctx context.Context, id int, data order.UpdateData) error {
	return s.update(ctx, strconv.Itoa(id), data, updateByID{ID: id, Data: data})
}

// UpdateByExternalID updates the order with the given shop-side id
func (s *Service) UpdateByExternalID(ctx context.Context, externalID string, data order.UpdateData) error {
	if externalID == "" {
		return apierr.InvalidArgument("external id is required")
	}
	return s.update(ctx, externalID, data, updateByExternalID{ExternalID: externalID, Data: data})
}

func (s *Service) update(ctx context.Context, ref string, data order.UpdateData, body any) error {
	if err := data.Validate(); err != nil {
		return apierr.InvalidArgument("order %s: %v", ref, err)
	}

	var resp order.UpdateResponse
	if err := s.doer.Post(ctx, updatePath, body, &resp); err != nil {
		return fmt.Errorf("update order %s: %w", ref, err)
	}
	if resp.Message != "" {
		if err := apierr.CheckAuthMessage(resp.Message); err != nil {
			return err
		}
		return apierr.NotFound("update order %s: %s", ref, resp.Message)
	}
	if resp.Success == nil || !*resp.Success {
		return apierr.New(apierr.KindAPI, "update order %s: not confirmed by server", ref)
	}

	s.log.Debug().Str("order", ref).Msg("order updated")
	return nil
}

// AddNote adds a note to the order's client communication block
func (s *Service) AddNote(ctx context.Context, orderID int, note string) (*order.NoteResponse, error) {
	body := map[string]any{"orderId": orderID, "note": note}

	var resp order.NoteResponse
	if err := s.doer.Post(ctx, notePath, body, &resp); err != nil {
		return nil, fmt.Errorf("add note to order %d: %w", orderID, err)
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "note was not added"
		}
		return nil, apierr.New(apierr.KindAPI, "%s", msg)
	}
	return &resp, nil
}
