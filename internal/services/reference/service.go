// Package reference reads and updates the account dictionaries.
package reference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"salesdrive/internal/apierr"
	"salesdrive/internal/domain/reference"
	"salesdrive/internal/transport"
)

const (
	currenciesPath      = "/api/currencies/"
	paymentMethodsPath  = "/api/payment-methods/"
	deliveryMethodsPath = "/api/delivery-methods/"
	statusesPath        = "/api/statuses/"
)

type Service struct {
	doer transport.Doer
	log  zerolog.Logger
}

func NewService(doer transport.Doer, logger zerolog.Logger) *Service {
	return &Service{
		doer: doer,
		log:  logger.With().Str("service", "reference").Logger(),
	}
}

type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (e errorBody) err(what string) error {
	if err := apierr.CheckAuthMessage(e.Message); err != nil {
		return err
	}
	msg := e.Message
	if msg == "" {
		msg = "request rejected"
	}
	return apierr.New(apierr.KindAPI, "%s: %s", what, msg)
}

// Currencies returns the account currencies. A bare array answer is returned
// with an empty BaseCurrency.
func (s *Service) Currencies(ctx context.Context) (*reference.Currencies, error) {
	var raw json.RawMessage
	if err := s.doer.Get(ctx, currenciesPath, nil, &raw); err != nil {
		return nil, fmt.Errorf("get currencies: %w", err)
	}

	if b := bytes.TrimSpace(raw); len(b) > 0 && b[0] == '{' {
		var e errorBody
		if err := json.Unmarshal(b, &e); err == nil && e.Status == "error" {
			return nil, e.err("get currencies")
		}
	}

	var out reference.Currencies
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, apierr.New(apierr.KindAPI, "decode currencies: %v", err)
		}
	}
	return &out, nil
}

// UpdateCurrencies sets currency rates
func (s *Service) UpdateCurrencies(ctx context.Context, updates []reference.CurrencyUpdate) (*reference.StatusResponse, error) {
	if len(updates) == 0 {
		return nil, apierr.InvalidArgument("no currencies to update")
	}

	var resp reference.StatusResponse
	if err := s.doer.Post(ctx, currenciesPath, updates, &resp); err != nil {
		return nil, fmt.Errorf("update currencies: %w", err)
	}
	if resp.Status == "error" {
		return nil, errorBody{Status: resp.Status, Message: resp.Message}.err("update currencies")
	}

	s.log.Info().Int("count", len(updates)).Msg("currency rates updated")
	return &resp, nil
}

func (s *Service) PaymentMethods(ctx context.Context) ([]reference.Method, error) {
	return list[reference.Method](ctx, s.doer, paymentMethodsPath, "get payment methods")
}

func (s *Service) DeliveryMethods(ctx context.Context) ([]reference.Method, error) {
	return list[reference.Method](ctx, s.doer, deliveryMethodsPath, "get delivery methods")
}

func (s *Service) Statuses(ctx context.Context) ([]reference.Status, error) {
	return list[reference.Status](ctx, s.doer, statusesPath, "get statuses")
}

func list[T any](ctx context.Context, doer transport.Doer, path, what string) ([]T, error) {
	var env reference.Envelope[T]
	if err := doer.Get(ctx, path, nil, &env); err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	if env.Failed() {
		return nil, errorBody{Status: env.Status, Message: env.Message}.err(what)
	}
	return env.Data, nil
}
