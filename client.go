// Package salesdrive is a typed client for the SalesDrive CRM REST API.
//
//	c, err := salesdrive.New(apiKey, "myshop")
//	orders, err := c.FindOrders(nil).StatusID(5).Limit(20).Execute(ctx)
package salesdrive

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"salesdrive/internal/apierr"
	"salesdrive/internal/config"
	"salesdrive/internal/domain/manager"
	"salesdrive/internal/domain/order"
	"salesdrive/internal/domain/product"
	"salesdrive/internal/domain/reference"
	"salesdrive/internal/query"
	documentsvc "salesdrive/internal/services/document"
	managersvc "salesdrive/internal/services/manager"
	ordersvc "salesdrive/internal/services/order"
	paymentsvc "salesdrive/internal/services/payment"
	productsvc "salesdrive/internal/services/product"
	referencesvc "salesdrive/internal/services/reference"
	webhooksvc "salesdrive/internal/services/webhook"
	"salesdrive/internal/transport"
)

// Client groups the SalesDrive services behind one API key
type Client struct {
	Orders    *ordersvc.Service
	Products  *productsvc.Service
	Documents *documentsvc.Service
	Payments  *paymentsvc.Service
	Managers  *managersvc.Service
	Webhooks  *webhooksvc.Service
	Utils     *referencesvc.Service
}

type options struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	logger     *zerolog.Logger
	doer       transport.Doer
}

// Option customizes New
type Option func(*options)

// WithBaseURL replaces https://{domain}.salesdrive.me/
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = &l }
}

// WithRetry sets how many times a failed GET is retried and the first delay
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(o *options) {
		o.maxRetries = maxRetries
		o.retryDelay = delay
	}
}

// WithDoer routes every call through d instead of the HTTP transport
func WithDoer(d transport.Doer) Option {
	return func(o *options) { o.doer = d }
}

// New creates a client for the account at domain
func New(apiKey, domain string, opts ...Option) (*Client, error) {
	o := options{
		timeout:    transport.DefaultTimeout,
		maxRetries: transport.DefaultMaxRetries,
		retryDelay: transport.DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(&o)
	}

	logger := log.Logger
	if o.logger != nil {
		logger = *o.logger
	}

	doer := o.doer
	if doer == nil {
		if apiKey == "" {
			return nil, apierr.InvalidArgument("api key is required")
		}
		base := o.baseURL
		if base == "" {
			if domain == "" {
				return nil, apierr.InvalidArgument("domain is required")
			}
			base = transport.BaseURL(domain)
		}
		hc, err := transport.New(transport.Config{
			BaseURL:    base,
			APIKey:     apiKey,
			Timeout:    o.timeout,
			MaxRetries: o.maxRetries,
			RetryDelay: o.retryDelay,
			HTTPClient: o.httpClient,
			Logger:     &logger,
		})
		if err != nil {
			return nil, err
		}
		doer = hc
	}

	return &Client{
		Orders:    ordersvc.NewService(doer, logger),
		Products:  productsvc.NewService(doer, logger),
		Documents: documentsvc.NewService(doer, logger),
		Payments:  paymentsvc.NewService(doer, logger),
		Managers:  managersvc.NewService(doer, logger),
		Webhooks:  webhooksvc.NewService(doer, logger),
		Utils:     referencesvc.NewService(doer, logger),
	}, nil
}

// NewFromConfig creates a client from the SALESDRIVE_* settings
func NewFromConfig(cfg config.SalesDriveCfg, opts ...Option) (*Client, error) {
	base := []Option{
		WithTimeout(cfg.Timeout),
		WithRetry(cfg.MaxRetries, cfg.RetryDelay),
	}
	if cfg.BaseURL != "" {
		base = append(base, WithBaseURL(cfg.BaseURL))
	}
	return New(cfg.APIKey, cfg.Domain, append(base, opts...)...)
}

func (c *Client) FindOrders(initial *query.Params) *ordersvc.Query {
	return c.Orders.Find(initial)
}

func (c *Client) CreateOrder(ctx context.Context, fields order.CreateFields) (int, error) {
	return c.Orders.Create(ctx, fields)
}

func (c *Client) FindOrderByID(ctx context.Context, id int) (*order.Order, error) {
	return c.Orders.FindByID(ctx, id)
}

func (c *Client) UpdateOrder(ctx context.Context, id int, data order.UpdateData) error {
	return c.Orders.UpdateByID(ctx, id, data)
}

func (c *Client) UpdateOrderByExternalID(ctx context.Context, externalID string, data order.UpdateData) error {
	return c.Orders.UpdateByExternalID(ctx, externalID, data)
}

func (c *Client) AddNoteToOrder(ctx context.Context, orderID int, note string) (*order.NoteResponse, error) {
	return c.Orders.AddNote(ctx, orderID, note)
}

func (c *Client) CreateProducts(ctx context.Context, products []product.Product) (*product.Response, error) {
	return c.Products.CreateProducts(ctx, products)
}

func (c *Client) UpdateProducts(ctx context.Context, products []product.Product, dontUpdateFields ...string) (*product.Response, error) {
	return c.Products.UpdateProducts(ctx, products, dontUpdateFields...)
}

func (c *Client) DeleteProducts(ctx context.Context, ids ...string) (*product.Response, error) {
	return c.Products.DeleteProducts(ctx, ids...)
}

func (c *Client) CreateCategories(ctx context.Context, categories []product.Category) (*product.Response, error) {
	return c.Products.CreateCategories(ctx, categories)
}

func (c *Client) UpdateCategories(ctx context.Context, categories []product.Category) (*product.Response, error) {
	return c.Products.UpdateCategories(ctx, categories)
}

func (c *Client) DeleteCategories(ctx context.Context, ids ...int) (*product.Response, error) {
	return c.Products.DeleteCategories(ctx, ids...)
}

func (c *Client) GetCurrencies(ctx context.Context) (*reference.Currencies, error) {
	return c.Utils.Currencies(ctx)
}

func (c *Client) UpdateCurrencies(ctx context.Context, updates []reference.CurrencyUpdate) (*reference.StatusResponse, error) {
	return c.Utils.UpdateCurrencies(ctx, updates)
}

func (c *Client) GetPaymentMethods(ctx context.Context) ([]reference.Method, error) {
	return c.Utils.PaymentMethods(ctx)
}

func (c *Client) GetDeliveryMethods(ctx context.Context) ([]reference.Method, error) {
	return c.Utils.DeliveryMethods(ctx)
}

func (c *Client) GetStatuses(ctx context.Context) ([]reference.Status, error) {
	return c.Utils.Statuses(ctx)
}

func (c *Client) FindManagerByPhone(ctx context.Context, phone string) (*manager.Match, error) {
	return c.Managers.FindByPhone(ctx, phone)
}
