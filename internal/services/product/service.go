package product

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"salesdrive/internal/apierr"
	"salesdrive/internal/domain/product"
	"salesdrive/internal/transport"
)

const (
	productPath  = "/product-handler/"
	categoryPath = "/category-handler/"
)

// Service manages the product catalogue
type Service struct {
	doer transport.Doer
	log  zerolog.Logger
}

func NewService(doer transport.Doer, logger zerolog.Logger) *Service {
	return &Service{
		doer: doer,
		log:  logger.With().Str("service", "product").Logger(),
	}
}

func (s *Service) CreateProducts(ctx context.Context, products []product.Product) (*product.Response, error) {
	return s.send(ctx, productPath, product.ProductRequest{Action: product.ActionAdd, Product: products})
}

// UpdateProducts updates products in place. Fields named in dontUpdateFields
// keep their current value on the server.
func (s *Service) UpdateProducts(ctx context.Context, products []product.Product, dontUpdateFields ...string) (*product.Response, error) {
	return s.send(ctx, productPath, product.ProductRequest{
		Action:           product.ActionUpdate,
		Product:          products,
		DontUpdateFields: dontUpdateFields,
	})
}

func (s *Service) DeleteProducts(ctx context.Context, ids ...string) (*product.Response, error) {
	if len(ids) == 0 {
		return nil, apierr.InvalidArgument("no product ids to delete")
	}
	products := make([]product.Product, len(ids))
	for i, id := range ids {
		products[i] = product.Product{ID: id}
	}
	return s.send(ctx, productPath, product.ProductRequest{Action: product.ActionDelete, Product: products})
}

func (s *Service) CreateCategories(ctx context.Context, categories []product.Category) (*product.Response, error) {
	return s.send(ctx, categoryPath, product.CategoryRequest{Action: product.ActionAdd, Category: categories})
}

func (s *Service) UpdateCategories(ctx context.Context, categories []product.Category) (*product.Response, error) {
	return s.send(ctx, categoryPath, product.CategoryRequest{Action: product.ActionUpdate, Category: categories})
}

func (s *Service) DeleteCategories(ctx context.Context, ids ...int) (*product.Response, error) {
	if len(ids) == 0 {
		return nil, apierr.InvalidArgument("no category ids to delete")
	}
	categories := make([]product.Category, len(ids))
	for i, id := range ids {
		categories[i] = product.Category{ID: id}
	}
	return s.send(ctx, categoryPath, product.CategoryRequest{Action: product.ActionDelete, Category: categories})
}

func (s *Service) send(ctx context.Context, path string, body any) (*product.Response, error) {
	var resp product.Response
	if err := s.doer.Post(ctx, path, body, &resp); err != nil {
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	if resp.Failed() {
		if err := apierr.CheckAuthMessage(resp.Message); err != nil {
			return nil, err
		}
		return nil, apierr.Validation(resp.Message)
	}

	s.log.Debug().Str("path", path).Str("status", resp.Status).Msg("catalogue updated")
	return &resp, nil
}
